package services

import (
	"context"
	"strings"
	"testing"

	"github.com/Czaki/napari-release-tools/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// renderReport builds a report whose display names come from the given
// table, so no lookup collaborator is needed.
func renderReport(t *testing.T, milestone string, sections *models.Sections, contributors *models.Contributors, names map[string]string) *MilestoneReport {
	t.Helper()

	directory := NewUserDirectory(nil, names)
	for login := range names {
		require.NoError(t, directory.Resolve(context.Background(), login))
	}

	return &MilestoneReport{
		Milestone:    milestone,
		Sections:     sections,
		Contributors: contributors,
		Directory:    directory,
	}
}

func TestRenderReleaseNotes_Document(t *testing.T) {
	// Arrange
	sections := models.NewSections()
	sections.Add(models.SectionBugFixes, models.SectionEntry{Number: 100, Summary: "Fix crash on load", RepoLabel: "napari"})

	contributors := models.NewContributors()
	contributors.Authors.Add("alice")
	contributors.Committers.Add("alice")

	report := renderReport(t, "0.15.0", sections, contributors, map[string]string{"alice": "alice"})

	// Act
	var out strings.Builder
	err := RenderReleaseNotes(&out, testConfig(), report, RenderOptions{})

	// Assert
	require.NoError(t, err)
	doc := out.String()

	assert.True(t, strings.HasPrefix(doc, "# napari 0.15.0\n"))
	assert.Contains(t, doc, "We're happy to announce the release of napari 0.15.0!")
	assert.Contains(t, doc, "https://github.com/napari/napari\n")
	assert.Contains(t, doc, "## Bug Fixes\n\n- Fix crash on load ([napari/napari/#100](https://github.com/napari/napari/pull/100))\n")
	assert.Contains(t, doc, "## 1 authors added to this release (alphabetical)\n\n- [alice](https://github.com/napari/napari/commits?author=alice) - @alice\n")
	// Committers are collected but never rendered.
	assert.NotContains(t, doc, "committers added to this release")
	// Stream output mode never shows new contributors.
	assert.NotContains(t, doc, "## New Contributors")
}

func TestRenderReleaseNotes_SectionAndRoleOrder(t *testing.T) {
	report := renderReport(t, "0.15.0", models.NewSections(), models.NewContributors(), nil)

	var out strings.Builder
	require.NoError(t, RenderReleaseNotes(&out, testConfig(), report, RenderOptions{}))
	doc := out.String()

	ordered := []string{
		"## Highlights",
		"## New Features",
		"## Improvements",
		"## Performance",
		"## Bug Fixes",
		"## API Changes",
		"## Deprecations",
		"## Build Tools",
		"## Documentation",
		"## Other Pull Requests",
		"## 0 authors added to this release (alphabetical)",
		"## 0 reviewers added to this release (alphabetical)",
		"## 0 docs authors added to this release (alphabetical)",
		"## 0 docs reviewers added to this release (alphabetical)",
	}

	last := -1
	for _, heading := range ordered {
		idx := strings.Index(doc, heading)
		require.NotEqual(t, -1, idx, "missing heading %q", heading)
		assert.Greater(t, idx, last, "heading %q out of order", heading)
		last = idx
	}
}

func TestRenderReleaseNotes_SortIsCaseInsensitiveByDisplayName(t *testing.T) {
	// Login "b" resolves to "Alice" and login "a" to "bob": Alice must
	// render first despite the login order.
	contributors := models.NewContributors()
	contributors.Authors.Add("a")
	contributors.Authors.Add("b")

	report := renderReport(t, "0.15.0", models.NewSections(), contributors, map[string]string{
		"a": "bob",
		"b": "Alice",
	})

	var out strings.Builder
	require.NoError(t, RenderReleaseNotes(&out, testConfig(), report, RenderOptions{}))
	doc := out.String()

	aliceIdx := strings.Index(doc, "- [Alice](https://github.com/napari/napari/commits?author=b) - @b")
	bobIdx := strings.Index(doc, "- [bob](https://github.com/napari/napari/commits?author=a) - @a")
	require.NotEqual(t, -1, aliceIdx)
	require.NotEqual(t, -1, bobIdx)
	assert.Less(t, aliceIdx, bobIdx)
}

func TestRenderReleaseNotes_NewContributors(t *testing.T) {
	contributors := models.NewContributors()
	contributors.Authors.Add("veteran")
	contributors.DocsAuthors.Add("newbie")

	names := map[string]string{"veteran": "Veteran", "newbie": "Newbie"}

	tests := []struct {
		name     string
		opts     RenderOptions
		expected bool
	}{
		{
			name:     "prior reports and a new contributor",
			opts:     RenderOptions{OldContributors: models.NewLoginSet("veteran"), PriorReports: 1},
			expected: true,
		},
		{
			name:     "no prior reports",
			opts:     RenderOptions{},
			expected: false,
		},
		{
			name:     "everyone already known",
			opts:     RenderOptions{OldContributors: models.NewLoginSet("veteran", "newbie"), PriorReports: 2},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := renderReport(t, "0.15.0", models.NewSections(), contributors, names)

			var out strings.Builder
			require.NoError(t, RenderReleaseNotes(&out, testConfig(), report, tt.opts))
			doc := out.String()

			if tt.expected {
				newIdx := strings.Index(doc, "## New Contributors")
				require.NotEqual(t, -1, newIdx)
				assert.Contains(t, doc, "## New Contributors\n\nThere are 1 new contributors for this release:\n\n")
				assert.Contains(t, doc[newIdx:], "- [Newbie](https://github.com/napari/napari/commits?author=newbie) - @newbie")
				// The veteran still shows up as author, just not as new.
				assert.NotContains(t, doc[newIdx:], "@veteran")
				assert.Contains(t, doc[:newIdx], "@veteran")
			} else {
				assert.NotContains(t, doc, "## New Contributors")
			}
		})
	}
}

func TestReleaseFileName(t *testing.T) {
	assert.Equal(t, "release_0_15_0.md", ReleaseFileName("0.15.0"))
	assert.Equal(t, "release_v0_15_0_rc1.md", ReleaseFileName("v0.15.0-rc1"))
	assert.Equal(t, "release_0_16_0.md", ReleaseFileName("0.16.0"))
}
