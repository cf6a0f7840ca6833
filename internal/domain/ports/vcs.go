package ports

import (
	"context"

	"github.com/Czaki/napari-release-tools/internal/domain/models"
)

// PullRequestVisitor receives one pull request at a time, in pagination
// order. Returning an error stops the traversal.
type PullRequestVisitor func(ctx context.Context, pr models.PullRequest) error

// PullRequestSource walks the merged pull requests of a milestone for one
// repository and exposes their review events.
type PullRequestSource interface {
	EachMergedPR(ctx context.Context, repo, milestone string, visit PullRequestVisitor) error
	ListReviews(ctx context.Context, repo string, number int) ([]models.Review, error)
}

// CommitLookup resolves a commit SHA to its authorship metadata.
type CommitLookup interface {
	GetCommit(ctx context.Context, sha string) (models.Commit, error)
}

// UserLookup resolves a login to the account's profile data.
type UserLookup interface {
	GetUser(ctx context.Context, login string) (models.User, error)
}
