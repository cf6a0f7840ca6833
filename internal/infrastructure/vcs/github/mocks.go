package github

import (
	"context"

	"github.com/google/go-github/v68/github"
	"github.com/stretchr/testify/mock"
)

type MockSearchService struct {
	mock.Mock
}

func (m *MockSearchService) Issues(ctx context.Context, query string, opts *github.SearchOptions) (*github.IssuesSearchResult, *github.Response, error) {
	args := m.Called(ctx, query, opts)
	result, _ := args.Get(0).(*github.IssuesSearchResult)
	resp, _ := args.Get(1).(*github.Response)
	return result, resp, args.Error(2)
}

type MockPullRequestsService struct {
	mock.Mock
}

func (m *MockPullRequestsService) Get(ctx context.Context, owner, repo string, number int) (*github.PullRequest, *github.Response, error) {
	args := m.Called(ctx, owner, repo, number)
	pr, _ := args.Get(0).(*github.PullRequest)
	resp, _ := args.Get(1).(*github.Response)
	return pr, resp, args.Error(2)
}

func (m *MockPullRequestsService) ListReviews(ctx context.Context, owner, repo string, number int, opts *github.ListOptions) ([]*github.PullRequestReview, *github.Response, error) {
	args := m.Called(ctx, owner, repo, number, opts)
	reviews, _ := args.Get(0).([]*github.PullRequestReview)
	resp, _ := args.Get(1).(*github.Response)
	return reviews, resp, args.Error(2)
}

type MockRepositoriesService struct {
	mock.Mock
}

func (m *MockRepositoriesService) GetCommit(ctx context.Context, owner, repo, sha string, opts *github.ListOptions) (*github.RepositoryCommit, *github.Response, error) {
	args := m.Called(ctx, owner, repo, sha, opts)
	commit, _ := args.Get(0).(*github.RepositoryCommit)
	resp, _ := args.Get(1).(*github.Response)
	return commit, resp, args.Error(2)
}

type MockUsersService struct {
	mock.Mock
}

func (m *MockUsersService) Get(ctx context.Context, user string) (*github.User, *github.Response, error) {
	args := m.Called(ctx, user)
	u, _ := args.Get(0).(*github.User)
	resp, _ := args.Get(1).(*github.Response)
	return u, resp, args.Error(2)
}
