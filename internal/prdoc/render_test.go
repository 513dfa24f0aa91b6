package prdoc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reportFixture() ([]*Record, *Report, Plan) {
	records := []*Record{
		{
			Title: "Rework held balance accounting",
			Doc: []DocEntry{
				{Audience: "Runtime Dev", Description: "Held balance no longer counts towards the ED."},
			},
			Crates: []CrateBump{
				{Name: "pallet-balances", Bump: BumpMajor},
				{Name: "pallet-assets", Bump: BumpPatch},
			},
		},
		{
			Title: "Fix overflow in transfer",
			Doc: []DocEntry{
				{Audience: "Runtime Dev", Description: "Transfers saturate instead of wrapping."},
				{Audience: "Runtime User", Description: "Large transfers no longer fail."},
			},
			Crates: []CrateBump{
				{Name: "pallet-assets", Bump: BumpMinor},
			},
		},
	}
	return records, BuildReport(records, KnownAudiences()), BuildPlan(records)
}

func TestRenderMarkdown(t *testing.T) {
	_, report, plan := reportFixture()

	got, err := RenderMarkdownString(report, plan)
	require.NoError(t, err)

	expected := `# Release notes

## Runtime Dev

### Rework held balance accounting

Held balance no longer counts towards the ED.

### Fix overflow in transfer

Transfers saturate instead of wrapping.

## Runtime User

### Fix overflow in transfer

Large transfers no longer fail.

## Version bumps

| Crate | Bump |
|---|---|
| pallet-assets | minor |
| pallet-balances | major |
`
	assert.Equal(t, expected, got)
}

func TestRenderMarkdown_Idempotent(t *testing.T) {
	_, report, plan := reportFixture()

	first, err := RenderMarkdownString(report, plan)
	require.NoError(t, err)
	second, err := RenderMarkdownString(report, plan)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRenderMarkdown_EmptyPlanOmitsTable(t *testing.T) {
	records := []*Record{{Title: "Docs only", Crates: []CrateBump{}}}
	report := BuildReport(records, KnownAudiences())
	plan := BuildPlan(records)

	got, err := RenderMarkdownString(report, plan)
	require.NoError(t, err)
	assert.NotContains(t, got, "Version bumps")
}

func TestRenderPlanText(t *testing.T) {
	_, _, plan := reportFixture()

	var b strings.Builder
	require.NoError(t, RenderPlanText(plan, &b))

	expected := "pallet-assets    minor\npallet-balances  major\n"
	assert.Equal(t, expected, b.String())
}

func TestRenderPlanYAML(t *testing.T) {
	_, _, plan := reportFixture()

	var b strings.Builder
	require.NoError(t, RenderPlanYAML(plan, &b))

	expected := `- name: pallet-assets
  bump: minor
- name: pallet-balances
  bump: major
`
	assert.Equal(t, expected, b.String())
}

func TestRenderPlanJSON(t *testing.T) {
	_, _, plan := reportFixture()

	var b strings.Builder
	require.NoError(t, RenderPlanJSON(plan, &b))

	expected := `[
  {
    "name": "pallet-assets",
    "bump": "minor"
  },
  {
    "name": "pallet-balances",
    "bump": "major"
  }
]
`
	assert.Equal(t, expected, b.String())
}

func TestBumpLevel_JSONRoundTrip(t *testing.T) {
	for _, level := range []BumpLevel{BumpPatch, BumpMinor, BumpMajor} {
		data, err := level.MarshalJSON()
		require.NoError(t, err)

		var decoded BumpLevel
		require.NoError(t, decoded.UnmarshalJSON(data))
		assert.Equal(t, level, decoded)
	}

	var invalid BumpLevel
	assert.Error(t, invalid.UnmarshalJSON([]byte(`"huge"`)))
}
