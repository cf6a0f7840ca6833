package github

import (
	"context"
	"testing"
	"time"

	"github.com/Czaki/napari-release-tools/internal/domain/models"
	"github.com/Czaki/napari-release-tools/internal/i18n"
	"github.com/Czaki/napari-release-tools/internal/infrastructure/cache"
	"github.com/google/go-github/v68/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testTranslations(t *testing.T) *i18n.Translations {
	t.Helper()
	trans, err := i18n.NewTranslations("en", "")
	require.NoError(t, err)
	return trans
}

func newTestClient(t *testing.T, search *MockSearchService, prs *MockPullRequestsService, repos *MockRepositoriesService, users *MockUsersService, responseCache *cache.Cache) *Client {
	t.Helper()
	return NewClientWithServices(search, prs, repos, users, "napari", "napari", responseCache, testTranslations(t))
}

func TestClient_EachMergedPR_Paginates(t *testing.T) {
	// Arrange
	ctx := context.Background()
	query := "repo:napari/napari milestone:0.15.0 is:merged type:pr"

	mockSearch := new(MockSearchService)
	mockSearch.On("Issues", ctx, query, mock.Anything).Return(&github.IssuesSearchResult{
		Issues: []*github.Issue{{Number: github.Ptr(100)}},
	}, &github.Response{NextPage: 2}, nil).Once()
	mockSearch.On("Issues", ctx, query, mock.Anything).Return(&github.IssuesSearchResult{
		Issues: []*github.Issue{{Number: github.Ptr(101)}},
	}, &github.Response{NextPage: 0}, nil).Once()

	mockPRs := new(MockPullRequestsService)
	mockPRs.On("Get", ctx, "napari", "napari", 100).Return(&github.PullRequest{
		Number:         github.Ptr(100),
		Title:          github.Ptr("Fix crash on load"),
		Merged:         github.Ptr(true),
		MergeCommitSHA: github.Ptr("abc123"),
		Labels:         []*github.Label{{Name: github.Ptr("Bug")}},
		User:           &github.User{Login: github.Ptr("alice")},
	}, nil, nil).Once()
	mockPRs.On("Get", ctx, "napari", "napari", 101).Return(&github.PullRequest{
		Number:         github.Ptr(101),
		Title:          github.Ptr("Add widget"),
		Merged:         github.Ptr(true),
		MergeCommitSHA: github.Ptr("def456"),
		User:           &github.User{Login: github.Ptr("bob")},
	}, nil, nil).Once()

	client := newTestClient(t, mockSearch, mockPRs, new(MockRepositoriesService), new(MockUsersService), nil)

	// Act
	var visited []models.PullRequest
	err := client.EachMergedPR(ctx, "napari", "0.15.0", func(ctx context.Context, pr models.PullRequest) error {
		visited = append(visited, pr)
		return nil
	})

	// Assert
	require.NoError(t, err)
	require.Len(t, visited, 2)
	assert.Equal(t, 100, visited[0].Number)
	assert.Equal(t, "Fix crash on load", visited[0].Title)
	assert.True(t, visited[0].Merged)
	assert.Equal(t, "abc123", visited[0].MergeCommitSHA)
	assert.True(t, visited[0].Labels.Contains("bug"), "labels are matched case-insensitively")
	assert.Equal(t, "alice", visited[0].Author.Login)
	assert.Equal(t, 101, visited[1].Number)
	mockSearch.AssertExpectations(t)
	mockPRs.AssertExpectations(t)
}

func TestClient_EachMergedPR_VisitorErrorStopsTraversal(t *testing.T) {
	ctx := context.Background()

	mockSearch := new(MockSearchService)
	mockSearch.On("Issues", ctx, mock.Anything, mock.Anything).Return(&github.IssuesSearchResult{
		Issues: []*github.Issue{{Number: github.Ptr(1)}, {Number: github.Ptr(2)}},
	}, &github.Response{NextPage: 0}, nil).Once()

	mockPRs := new(MockPullRequestsService)
	mockPRs.On("Get", ctx, "napari", "napari", 1).Return(&github.PullRequest{
		Number: github.Ptr(1),
		Merged: github.Ptr(true),
	}, nil, nil).Once()

	client := newTestClient(t, mockSearch, mockPRs, new(MockRepositoriesService), new(MockUsersService), nil)

	calls := 0
	err := client.EachMergedPR(ctx, "napari", "0.15.0", func(ctx context.Context, pr models.PullRequest) error {
		calls++
		return assert.AnError
	})

	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, 1, calls)
	mockPRs.AssertNumberOfCalls(t, "Get", 1)
}

func TestClient_ListReviews_KeepsNilUsers(t *testing.T) {
	ctx := context.Background()

	mockPRs := new(MockPullRequestsService)
	mockPRs.On("ListReviews", ctx, "napari", "napari", 100, mock.Anything).Return([]*github.PullRequestReview{
		{User: &github.User{Login: github.Ptr("bob"), Name: github.Ptr("Bob Jones")}},
		{User: nil},
	}, &github.Response{NextPage: 0}, nil).Once()

	client := newTestClient(t, new(MockSearchService), mockPRs, new(MockRepositoriesService), new(MockUsersService), nil)

	reviews, err := client.ListReviews(ctx, "napari", 100)

	require.NoError(t, err)
	require.Len(t, reviews, 2)
	require.NotNil(t, reviews[0].User)
	assert.Equal(t, "bob", reviews[0].User.Login)
	assert.Nil(t, reviews[1].User)
}

func TestClient_GetCommit_NilAuthor(t *testing.T) {
	ctx := context.Background()

	mockRepos := new(MockRepositoriesService)
	mockRepos.On("GetCommit", ctx, "napari", "napari", "abc123", mock.Anything).Return(&github.RepositoryCommit{
		SHA:       github.Ptr("abc123"),
		Committer: &github.User{Login: github.Ptr("web-flow")},
	}, nil, nil).Once()

	client := newTestClient(t, new(MockSearchService), new(MockPullRequestsService), mockRepos, new(MockUsersService), nil)

	commit, err := client.GetCommit(ctx, "abc123")

	require.NoError(t, err)
	assert.Nil(t, commit.Author)
	require.NotNil(t, commit.Committer)
	assert.Equal(t, "web-flow", commit.Committer.Login)
}

func TestClient_GetUser(t *testing.T) {
	ctx := context.Background()

	mockUsers := new(MockUsersService)
	mockUsers.On("Get", ctx, "alice").Return(&github.User{
		Login: github.Ptr("alice"),
		Name:  github.Ptr("Alice Smith"),
	}, nil, nil).Once()

	client := newTestClient(t, new(MockSearchService), new(MockPullRequestsService), new(MockRepositoriesService), mockUsers, nil)

	user, err := client.GetUser(ctx, "alice")

	require.NoError(t, err)
	assert.Equal(t, models.User{Login: "alice", Name: "Alice Smith"}, user)
}

func TestClient_GetUser_MemoizedAcrossClients(t *testing.T) {
	// Arrange: two clients sharing one cache directory simulate two runs.
	ctx := context.Background()
	responseCache, err := cache.NewCacheAt(t.TempDir(), time.Hour)
	require.NoError(t, err)

	mockUsers := new(MockUsersService)
	mockUsers.On("Get", ctx, "alice").Return(&github.User{
		Login: github.Ptr("alice"),
		Name:  github.Ptr("Alice Smith"),
	}, nil, nil).Once()

	first := newTestClient(t, new(MockSearchService), new(MockPullRequestsService), new(MockRepositoriesService), mockUsers, responseCache)
	second := newTestClient(t, new(MockSearchService), new(MockPullRequestsService), new(MockRepositoriesService), mockUsers, responseCache)

	// Act
	fromAPI, err := first.GetUser(ctx, "alice")
	require.NoError(t, err)
	fromCache, err := second.GetUser(ctx, "alice")
	require.NoError(t, err)

	// Assert
	assert.Equal(t, fromAPI, fromCache)
	mockUsers.AssertNumberOfCalls(t, "Get", 1)
}

func TestClient_EachMergedPR_SearchError(t *testing.T) {
	ctx := context.Background()

	mockSearch := new(MockSearchService)
	mockSearch.On("Issues", ctx, mock.Anything, mock.Anything).Return(nil, nil, assert.AnError).Once()

	client := newTestClient(t, mockSearch, new(MockPullRequestsService), new(MockRepositoriesService), new(MockUsersService), nil)

	err := client.EachMergedPR(ctx, "napari", "0.15.0", func(ctx context.Context, pr models.PullRequest) error {
		t.Fatal("visitor must not run on search error")
		return nil
	})

	assert.ErrorIs(t, err, assert.AnError)
}
