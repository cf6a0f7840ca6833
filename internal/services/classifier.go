package services

import "github.com/Czaki/napari-release-tools/internal/domain/models"

type labelRule struct {
	label   string
	section string
}

// labelTable maps pull request labels to changelog sections. Order matters:
// the first matching entry wins, so a pull request lands in exactly one
// section even when it carries several recognized labels.
var labelTable = []labelRule{
	{"bug", models.SectionBugFixes},
	{"bugfix", models.SectionBugFixes},
	{"feature", models.SectionNewFeatures},
	{"api", models.SectionAPIChanges},
	{"highlight", models.SectionHighlights},
	{"performance", models.SectionPerformance},
	{"enhancement", models.SectionImprovements},
	{"deprecation", models.SectionDeprecations},
	{"dependencies", models.SectionBuildTools},
	{"documentation", models.SectionDocumentation},
}

// ClassifyMain returns the section for a main repository pull request.
func ClassifyMain(labels models.LabelSet) string {
	for _, rule := range labelTable {
		if labels.Contains(rule.label) {
			return rule.section
		}
	}
	return models.SectionOther
}

// ClassifyDocs returns the section for a docs repository pull request. The
// label table is not consulted here: maintenance work goes to Other Pull
// Requests, everything else counts as documentation.
func ClassifyDocs(labels models.LabelSet) string {
	if labels.Contains("maintenance") {
		return models.SectionOther
	}
	return models.SectionDocumentation
}
