package prdoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPlan_MaxSeverityWins(t *testing.T) {
	tests := map[string]struct {
		records  []*Record
		expected []PlanEntry
	}{
		"major beats patch": {
			records: []*Record{
				{Title: "a", Crates: []CrateBump{{Name: "pallet-assets", Bump: BumpMajor}}},
				{Title: "b", Crates: []CrateBump{{Name: "pallet-assets", Bump: BumpPatch}}},
			},
			expected: []PlanEntry{{Crate: "pallet-assets", Bump: BumpMajor}},
		},
		"order does not matter": {
			records: []*Record{
				{Title: "a", Crates: []CrateBump{{Name: "pallet-assets", Bump: BumpPatch}}},
				{Title: "b", Crates: []CrateBump{{Name: "pallet-assets", Bump: BumpMajor}}},
				{Title: "c", Crates: []CrateBump{{Name: "pallet-assets", Bump: BumpMinor}}},
			},
			expected: []PlanEntry{{Crate: "pallet-assets", Bump: BumpMajor}},
		},
		"duplicate crate within one record": {
			records: []*Record{
				{Title: "a", Crates: []CrateBump{
					{Name: "pallet-balances", Bump: BumpPatch},
					{Name: "pallet-balances", Bump: BumpMinor},
				}},
			},
			expected: []PlanEntry{{Crate: "pallet-balances", Bump: BumpMinor}},
		},
		"independent crates keep their own levels": {
			records: []*Record{
				{Title: "a", Crates: []CrateBump{
					{Name: "pallet-balances", Bump: BumpMajor},
					{Name: "sp-runtime", Bump: BumpPatch},
				}},
				{Title: "b", Crates: []CrateBump{{Name: "pallet-assets", Bump: BumpMinor}}},
			},
			expected: []PlanEntry{
				{Crate: "pallet-assets", Bump: BumpMinor},
				{Crate: "pallet-balances", Bump: BumpMajor},
				{Crate: "sp-runtime", Bump: BumpPatch},
			},
		},
		"empty crates contribute nothing": {
			records: []*Record{
				{Title: "a", Crates: []CrateBump{}},
				{Title: "b", Crates: []CrateBump{{Name: "pallet-xcm", Bump: BumpPatch}}},
			},
			expected: []PlanEntry{{Crate: "pallet-xcm", Bump: BumpPatch}},
		},
		"no records": {
			records:  nil,
			expected: []PlanEntry{},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			plan := BuildPlan(tc.records)
			assert.Equal(t, tc.expected, plan.Entries())
			assert.Equal(t, len(tc.expected), plan.Len())
		})
	}
}

func TestPlan_Bump(t *testing.T) {
	plan := BuildPlan([]*Record{
		{Title: "a", Crates: []CrateBump{{Name: "pallet-assets", Bump: BumpMinor}}},
	})

	bump, ok := plan.Bump("pallet-assets")
	require.True(t, ok)
	assert.Equal(t, BumpMinor, bump)

	_, ok = plan.Bump("pallet-balances")
	assert.False(t, ok)
}

func TestBuildPlan_DoesNotMutateRecords(t *testing.T) {
	rec := &Record{Title: "a", Crates: []CrateBump{{Name: "pallet-assets", Bump: BumpPatch}}}
	other := &Record{Title: "b", Crates: []CrateBump{{Name: "pallet-assets", Bump: BumpMajor}}}

	BuildPlan([]*Record{rec, other})

	assert.Equal(t, BumpPatch, rec.Crates[0].Bump)
	assert.Equal(t, BumpMajor, other.Crates[0].Bump)
}

func TestBuildReport_GroupsByAudience(t *testing.T) {
	records := []*Record{
		{
			Title: "First change",
			Doc: []DocEntry{
				{Audience: "Runtime Dev", Description: "dev note one"},
				{Audience: "Node Operator", Description: "ops note one"},
			},
		},
		{
			Title: "Second change",
			Doc: []DocEntry{
				{Audience: "Runtime Dev", Description: "dev note two"},
			},
		},
	}

	report := BuildReport(records, KnownAudiences())
	require.Len(t, report.Sections, 2)

	// Canonical order: Runtime Dev before Node Operator.
	assert.Equal(t, "Runtime Dev", report.Sections[0].Audience)
	assert.Equal(t, []ReportEntry{
		{Title: "First change", Description: "dev note one"},
		{Title: "Second change", Description: "dev note two"},
	}, report.Sections[0].Entries)

	assert.Equal(t, "Node Operator", report.Sections[1].Audience)
	assert.Equal(t, []ReportEntry{
		{Title: "First change", Description: "ops note one"},
	}, report.Sections[1].Entries)

	assert.Equal(t, 3, report.EntryCount())
}

func TestBuildReport_UnknownAndUntaggedAudiences(t *testing.T) {
	records := []*Record{
		{Title: "a", Doc: []DocEntry{{Audience: "Wallet Vendor", Description: "w"}}},
		{Title: "b", Doc: []DocEntry{{Description: "untagged"}}},
		{Title: "c", Doc: []DocEntry{{Audience: "Runtime User", Description: "u"}}},
		{Title: "d", Doc: []DocEntry{{Audience: "Bridge Team", Description: "x"}}},
	}

	report := BuildReport(records, KnownAudiences())
	var order []string
	for _, s := range report.Sections {
		order = append(order, s.Audience)
	}

	// Known audiences first, then unknown in first-seen order, General last.
	assert.Equal(t, []string{"Runtime User", "Wallet Vendor", "Bridge Team", GeneralAudience}, order)
}

func TestBuildReport_Empty(t *testing.T) {
	report := BuildReport(nil, KnownAudiences())
	assert.True(t, report.IsEmpty())
	assert.Equal(t, 0, report.EntryCount())

	noDocs := BuildReport([]*Record{{Title: "a", Crates: []CrateBump{}}}, KnownAudiences())
	assert.True(t, noDocs.IsEmpty())
}

func TestMaxBump(t *testing.T) {
	assert.Equal(t, BumpMajor, MaxBump(BumpPatch, BumpMajor))
	assert.Equal(t, BumpMajor, MaxBump(BumpMajor, BumpPatch))
	assert.Equal(t, BumpMinor, MaxBump(BumpMinor, BumpPatch))
	assert.Equal(t, BumpPatch, MaxBump(BumpPatch, BumpPatch))
}
