package services

import (
	"context"

	"github.com/Czaki/napari-release-tools/internal/config"
	domainerrors "github.com/Czaki/napari-release-tools/internal/domain/errors"
	"github.com/Czaki/napari-release-tools/internal/domain/models"
	"github.com/Czaki/napari-release-tools/internal/domain/ports"
	"github.com/Czaki/napari-release-tools/internal/logger"
)

// MilestoneReport is everything the renderer needs: classified sections,
// role sets and the resolved display names.
type MilestoneReport struct {
	Milestone    string
	Sections     *models.Sections
	Contributors *models.Contributors
	Directory    *UserDirectory
}

// Collector walks the merged pull requests of a milestone across the main
// and docs repositories and aggregates sections and contributor credit.
// A single collector owns all the state it mutates; runs are sequential.
type Collector struct {
	source    ports.PullRequestSource
	commits   ports.CommitLookup
	directory *UserDirectory
	cfg       *config.Config
}

func NewCollector(source ports.PullRequestSource, commits ports.CommitLookup, directory *UserDirectory, cfg *config.Config) *Collector {
	return &Collector{
		source:    source,
		commits:   commits,
		directory: directory,
		cfg:       cfg,
	}
}

func (c *Collector) Collect(ctx context.Context, milestone string) (*MilestoneReport, error) {
	sections := models.NewSections()
	contributors := models.NewContributors()

	logger.Info(ctx, "collecting pull requests", "repo", c.cfg.MainRepo, "milestone", milestone)
	err := c.source.EachMergedPR(ctx, c.cfg.MainRepo, milestone, func(ctx context.Context, pr models.PullRequest) error {
		return c.recordMainPR(ctx, pr, sections, contributors)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "collecting pull requests", "repo", c.cfg.DocsRepo, "milestone", milestone)
	err = c.source.EachMergedPR(ctx, c.cfg.DocsRepo, milestone, func(ctx context.Context, pr models.PullRequest) error {
		return c.recordDocsPR(ctx, pr, sections, contributors)
	})
	if err != nil {
		return nil, err
	}

	contributors.ExcludeBots(models.NewLoginSet(c.cfg.BotLogins...))

	return &MilestoneReport{
		Milestone:    milestone,
		Sections:     sections,
		Contributors: contributors,
		Directory:    c.directory,
	}, nil
}

// recordMainPR credits the merge commit's author and committer, records the
// reviewers and classifies the pull request through the label table.
func (c *Collector) recordMainPR(ctx context.Context, pr models.PullRequest, sections *models.Sections, contributors *models.Contributors) error {
	if !pr.Merged {
		return domainerrors.NewUnmergedPullRequestError(c.cfg.MainRepo, pr.Number)
	}

	commit, err := c.commits.GetCommit(ctx, pr.MergeCommitSHA)
	if err != nil {
		return err
	}

	// A commit without an associated account skips that role only.
	if commit.Committer != nil {
		if err := c.directory.Resolve(ctx, commit.Committer.Login); err != nil {
			return err
		}
		contributors.Committers.Add(commit.Committer.Login)
	}
	if commit.Author != nil {
		if err := c.directory.Resolve(ctx, commit.Author.Login); err != nil {
			return err
		}
		contributors.Authors.Add(commit.Author.Login)
	}

	if err := c.recordReviews(ctx, c.cfg.MainRepo, pr.Number, contributors.Reviewers); err != nil {
		return err
	}

	sections.Add(ClassifyMain(pr.Labels), models.SectionEntry{
		Number:    pr.Number,
		Summary:   pr.Title,
		RepoLabel: c.cfg.MainRepo,
	})
	return nil
}

// recordDocsPR credits the opening user as docs author and records docs
// reviewers. Classification is the docs special case, not the label table.
func (c *Collector) recordDocsPR(ctx context.Context, pr models.PullRequest, sections *models.Sections, contributors *models.Contributors) error {
	if !pr.Merged {
		return domainerrors.NewUnmergedPullRequestError(c.cfg.DocsRepo, pr.Number)
	}

	if err := c.directory.Resolve(ctx, pr.Author.Login); err != nil {
		return err
	}
	contributors.DocsAuthors.Add(pr.Author.Login)

	if err := c.recordReviews(ctx, c.cfg.DocsRepo, pr.Number, contributors.DocsReviewers); err != nil {
		return err
	}

	sections.Add(ClassifyDocs(pr.Labels), models.SectionEntry{
		Number:    pr.Number,
		Summary:   pr.Title,
		RepoLabel: c.cfg.DocsRepo,
	})
	return nil
}

func (c *Collector) recordReviews(ctx context.Context, repo string, number int, into models.LoginSet) error {
	reviews, err := c.source.ListReviews(ctx, repo, number)
	if err != nil {
		return err
	}

	for _, review := range reviews {
		// Deleted accounts leave reviews without a user.
		if review.User == nil {
			continue
		}
		if err := c.directory.Resolve(ctx, review.User.Login); err != nil {
			return err
		}
		into.Add(review.User.Login)
	}
	return nil
}
