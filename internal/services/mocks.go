package services

import (
	"context"

	"github.com/Czaki/napari-release-tools/internal/domain/models"
	"github.com/Czaki/napari-release-tools/internal/domain/ports"
	"github.com/stretchr/testify/mock"
)

type MockPullRequestSource struct {
	mock.Mock
}

func (m *MockPullRequestSource) EachMergedPR(ctx context.Context, repo, milestone string, visit ports.PullRequestVisitor) error {
	args := m.Called(ctx, repo, milestone)
	prs, _ := args.Get(0).([]models.PullRequest)
	for _, pr := range prs {
		if err := visit(ctx, pr); err != nil {
			return err
		}
	}
	return args.Error(1)
}

func (m *MockPullRequestSource) ListReviews(ctx context.Context, repo string, number int) ([]models.Review, error) {
	args := m.Called(ctx, repo, number)
	reviews, _ := args.Get(0).([]models.Review)
	return reviews, args.Error(1)
}

type MockCommitLookup struct {
	mock.Mock
}

func (m *MockCommitLookup) GetCommit(ctx context.Context, sha string) (models.Commit, error) {
	args := m.Called(ctx, sha)
	return args.Get(0).(models.Commit), args.Error(1)
}

type MockUserLookup struct {
	mock.Mock
}

func (m *MockUserLookup) GetUser(ctx context.Context, login string) (models.User, error) {
	args := m.Called(ctx, login)
	return args.Get(0).(models.User), args.Error(1)
}
