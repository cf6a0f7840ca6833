package models

// Changelog section names. SectionOrder fixes the order they appear in the
// rendered document; classification tables reference them by name.
const (
	SectionHighlights    = "Highlights"
	SectionNewFeatures   = "New Features"
	SectionImprovements  = "Improvements"
	SectionPerformance   = "Performance"
	SectionBugFixes      = "Bug Fixes"
	SectionAPIChanges    = "API Changes"
	SectionDeprecations  = "Deprecations"
	SectionBuildTools    = "Build Tools"
	SectionDocumentation = "Documentation"
	SectionOther         = "Other Pull Requests"
)

var SectionOrder = []string{
	SectionHighlights,
	SectionNewFeatures,
	SectionImprovements,
	SectionPerformance,
	SectionBugFixes,
	SectionAPIChanges,
	SectionDeprecations,
	SectionBuildTools,
	SectionDocumentation,
	SectionOther,
}

// SectionEntry is one changelog bullet: the pull request number, its title
// and the repository it was merged into (main repo or docs repo).
type SectionEntry struct {
	Number    int
	Summary   string
	RepoLabel string
}

// Sections maps section names to their entries. Entries keep insertion
// order, which is the pagination order of the underlying query.
type Sections struct {
	entries map[string][]SectionEntry
}

func NewSections() *Sections {
	return &Sections{entries: make(map[string][]SectionEntry)}
}

func (s *Sections) Add(section string, entry SectionEntry) {
	s.entries[section] = append(s.entries[section], entry)
}

func (s *Sections) Entries(section string) []SectionEntry {
	return s.entries[section]
}

// Total returns the number of entries across all sections.
func (s *Sections) Total() int {
	n := 0
	for _, entries := range s.entries {
		n += len(entries)
	}
	return n
}
