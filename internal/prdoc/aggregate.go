package prdoc

import "sort"

// Plan maps crate names to their resolved bump levels across a set of
// records. Plans are derived values; building one never mutates the records.
type Plan struct {
	bumps map[string]BumpLevel
}

// PlanEntry is one crate's resolved bump in a plan.
type PlanEntry struct {
	Crate string    `yaml:"name" json:"name"`
	Bump  BumpLevel `yaml:"bump" json:"bump"`
}

// BuildPlan resolves the bump level for every crate touched by the given
// records. When multiple records bump the same crate, the maximum level under
// patch < minor < major wins, regardless of input order.
func BuildPlan(records []*Record) Plan {
	bumps := make(map[string]BumpLevel)
	for _, rec := range records {
		for _, crate := range rec.Crates {
			if current, ok := bumps[crate.Name]; ok {
				bumps[crate.Name] = MaxBump(current, crate.Bump)
			} else {
				bumps[crate.Name] = crate.Bump
			}
		}
	}
	return Plan{bumps: bumps}
}

// Bump returns the resolved bump level for a crate, if the crate appears in
// the plan.
func (p Plan) Bump(crate string) (BumpLevel, bool) {
	b, ok := p.bumps[crate]
	return b, ok
}

// Len returns the number of crates in the plan.
func (p Plan) Len() int {
	return len(p.bumps)
}

// Entries returns the plan's entries sorted by crate name, so that identical
// input always yields identical output.
func (p Plan) Entries() []PlanEntry {
	entries := make([]PlanEntry, 0, len(p.bumps))
	for crate, bump := range p.bumps {
		entries = append(entries, PlanEntry{Crate: crate, Bump: bump})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Crate < entries[j].Crate
	})
	return entries
}

// Report is a consolidated view of many records' documentation entries,
// partitioned by audience.
type Report struct {
	Sections []AudienceSection
}

// AudienceSection holds the entries addressed to a single audience, in the
// order the source records were given.
type AudienceSection struct {
	Audience string
	Entries  []ReportEntry
}

// ReportEntry is one documentation entry together with its record's title.
type ReportEntry struct {
	Title       string
	Description string
}

// GeneralAudience is the section label for doc entries without an audience tag.
const GeneralAudience = "General"

// BuildReport partitions the records' doc entries by audience tag, preserving
// record order within each section. Sections appear in the given canonical
// audience order first; audiences outside that order follow in the order they
// are first seen. Untagged entries are grouped under GeneralAudience at the end.
func BuildReport(records []*Record, audienceOrder []string) *Report {
	grouped := make(map[string][]ReportEntry)
	var extraOrder []string
	seen := make(map[string]bool, len(audienceOrder))
	for _, a := range audienceOrder {
		seen[a] = true
	}

	for _, rec := range records {
		for _, entry := range rec.Doc {
			audience := entry.Audience
			if audience == "" {
				audience = GeneralAudience
			} else if audience != GeneralAudience && !seen[audience] {
				seen[audience] = true
				extraOrder = append(extraOrder, audience)
			}
			grouped[audience] = append(grouped[audience], ReportEntry{
				Title:       rec.Title,
				Description: entry.Description,
			})
		}
	}

	report := &Report{}
	appendSection := func(audience string) {
		if entries, ok := grouped[audience]; ok {
			report.Sections = append(report.Sections, AudienceSection{
				Audience: audience,
				Entries:  entries,
			})
		}
	}

	for _, audience := range audienceOrder {
		if audience != GeneralAudience {
			appendSection(audience)
		}
	}
	for _, audience := range extraOrder {
		if audience != GeneralAudience {
			appendSection(audience)
		}
	}
	appendSection(GeneralAudience)

	return report
}

// EntryCount returns the total number of entries across all sections.
func (r *Report) EntryCount() int {
	count := 0
	for _, s := range r.Sections {
		count += len(s.Entries)
	}
	return count
}

// IsEmpty returns true if the report has no sections.
func (r *Report) IsEmpty() bool {
	return len(r.Sections) == 0
}
