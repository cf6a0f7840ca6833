package services

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/Czaki/napari-release-tools/internal/config"
	"github.com/Czaki/napari-release-tools/internal/domain/models"
	"github.com/Czaki/napari-release-tools/internal/regex"
)

// ReleaseFileName derives the deterministic output file name from the
// milestone, normalizing separators to underscores.
func ReleaseFileName(milestone string) string {
	return "release_" + regex.NonAlphanumeric.ReplaceAllString(milestone, "_") + ".md"
}

// RenderOptions carries the new-contributor inputs. Stream output leaves
// both at their zero value, which suppresses the New Contributors section.
type RenderOptions struct {
	OldContributors models.LoginSet
	PriorReports    int
}

// RenderReleaseNotes writes the whole document in its fixed order: title,
// intro, sections, role sets, then conditionally the new contributors.
// Heading text and bullet syntax are part of the output contract; prior
// documents are re-parsed for @login mentions.
func RenderReleaseNotes(w io.Writer, cfg *config.Config, report *MilestoneReport, opts RenderOptions) error {
	b := &strings.Builder{}

	fmt.Fprintf(b, "# %s %s\n", cfg.Organization, report.Milestone)

	fmt.Fprintf(b, "\nWe're happy to announce the release of %s %s!\n", cfg.Organization, report.Milestone)
	b.WriteString(`napari is a fast, interactive, multi-dimensional image viewer for Python.
It's designed for browsing, annotating, and analyzing large multi-dimensional
images. It's built on top of Qt (for the GUI), vispy (for performant GPU-based
rendering), and the scientific Python stack (numpy, scipy).
`)
	b.WriteString("\n")

	fmt.Fprintf(b, "\nFor more information, examples, and documentation, please visit our website:\nhttps://%s/%s/%s\n\n", cfg.GitHubHost, cfg.Organization, cfg.MainRepo)

	for _, section := range models.SectionOrder {
		fmt.Fprintf(b, "## %s\n\n", section)
		for _, entry := range report.Sections.Entries(section) {
			fmt.Fprintf(b, "- %s ([%s/%s/#%d](https://%s/%s/%s/pull/%d))\n",
				entry.Summary, cfg.Organization, entry.RepoLabel, entry.Number,
				cfg.GitHubHost, cfg.Organization, entry.RepoLabel, entry.Number)
		}
		b.WriteString("\n")
	}

	// Committers and docs committers are collected but not rendered.
	roleSets := []struct {
		name string
		set  models.LoginSet
	}{
		{"authors", report.Contributors.Authors},
		{"reviewers", report.Contributors.Reviewers},
		{"docs authors", report.Contributors.DocsAuthors},
		{"docs reviewers", report.Contributors.DocsReviewers},
	}

	for _, role := range roleSets {
		b.WriteString("\n")
		fmt.Fprintf(b, "## %d %s added to this release (alphabetical)\n\n", role.set.Len(), role.name)
		for _, login := range sortedByDisplayName(role.set, report.Directory) {
			writeContributorBullet(b, cfg, login, report.Directory.DisplayName(login))
		}
		b.WriteString("\n")
	}

	if opts.PriorReports > 0 {
		newContributors := report.Contributors.Authors.Union(report.Contributors.DocsAuthors)
		if opts.OldContributors != nil {
			newContributors.Subtract(opts.OldContributors)
		}

		if newContributors.Len() > 0 {
			b.WriteString("## New Contributors\n\n")
			fmt.Fprintf(b, "There are %d new contributors for this release:\n\n", newContributors.Len())
			for _, login := range sortedByDisplayName(newContributors, report.Directory) {
				writeContributorBullet(b, cfg, login, report.Directory.DisplayName(login))
			}
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// sortedByDisplayName orders logins by their resolved display name,
// case-insensitively. Ties keep the incoming order.
func sortedByDisplayName(set models.LoginSet, directory *UserDirectory) []string {
	logins := set.Logins()
	sort.SliceStable(logins, func(i, j int) bool {
		return strings.ToLower(directory.DisplayName(logins[i])) < strings.ToLower(directory.DisplayName(logins[j]))
	})
	return logins
}

func writeContributorBullet(b *strings.Builder, cfg *config.Config, login, displayName string) {
	fmt.Fprintf(b, "- [%s](https://%s/%s/%s/commits?author=%s) - @%s\n",
		displayName, cfg.GitHubHost, cfg.Organization, cfg.MainRepo, login, login)
}
