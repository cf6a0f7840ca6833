package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Czaki/napari-release-tools/internal/domain/models"
	"github.com/Czaki/napari-release-tools/internal/domain/ports"
	"github.com/Czaki/napari-release-tools/internal/i18n"
	"github.com/Czaki/napari-release-tools/internal/infrastructure/cache"
	"github.com/Czaki/napari-release-tools/internal/logger"
	"github.com/google/go-github/v68/github"
	"golang.org/x/oauth2"
)

var (
	_ ports.PullRequestSource = (*Client)(nil)
	_ ports.CommitLookup      = (*Client)(nil)
	_ ports.UserLookup        = (*Client)(nil)
)

type SearchService interface {
	Issues(ctx context.Context, query string, opts *github.SearchOptions) (*github.IssuesSearchResult, *github.Response, error)
}

type PullRequestsService interface {
	Get(ctx context.Context, owner, repo string, number int) (*github.PullRequest, *github.Response, error)
	ListReviews(ctx context.Context, owner, repo string, number int, opts *github.ListOptions) ([]*github.PullRequestReview, *github.Response, error)
}

type RepositoriesService interface {
	GetCommit(ctx context.Context, owner, repo, sha string, opts *github.ListOptions) (*github.RepositoryCommit, *github.Response, error)
}

type UsersService interface {
	Get(ctx context.Context, user string) (*github.User, *github.Response, error)
}

// Client walks merged pull requests and resolves commits and users through
// the GitHub API. Lookups are memoized in the persisted response cache so
// reruns for the same milestone skip most round-trips.
type Client struct {
	searchService SearchService
	prService     PullRequestsService
	repoService   RepositoriesService
	usersService  UsersService
	owner         string
	mainRepo      string
	cache         *cache.Cache
	trans         *i18n.Translations
}

func NewClient(owner, mainRepo, token string, responseCache *cache.Cache, trans *i18n.Translations) *Client {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}

	client := github.NewClient(httpClient)
	return &Client{
		searchService: client.Search,
		prService:     client.PullRequests,
		repoService:   client.Repositories,
		usersService:  client.Users,
		owner:         owner,
		mainRepo:      mainRepo,
		cache:         responseCache,
		trans:         trans,
	}
}

func NewClientWithServices(
	searchService SearchService,
	prService PullRequestsService,
	repoService RepositoriesService,
	usersService UsersService,
	owner string,
	mainRepo string,
	responseCache *cache.Cache,
	trans *i18n.Translations,
) *Client {
	return &Client{
		searchService: searchService,
		prService:     prService,
		repoService:   repoService,
		usersService:  usersService,
		owner:         owner,
		mainRepo:      mainRepo,
		cache:         responseCache,
		trans:         trans,
	}
}

// EachMergedPR pages through the merged pull requests of a milestone in one
// repository and visits them in pagination order.
func (c *Client) EachMergedPR(ctx context.Context, repo, milestone string, visit ports.PullRequestVisitor) error {
	query := fmt.Sprintf("repo:%s/%s milestone:%s is:merged type:pr", c.owner, repo, milestone)
	opts := &github.SearchOptions{
		ListOptions: github.ListOptions{PerPage: 100},
	}

	for {
		result, resp, err := c.searchService.Issues(ctx, query, opts)
		if err != nil {
			return fmt.Errorf("%s: %w", c.trans.GetMessage("error.search_prs", 0, map[string]interface{}{
				"Repo":      repo,
				"Milestone": milestone,
			}), err)
		}

		for _, issue := range result.Issues {
			pr, err := c.getPullRequest(ctx, repo, issue)
			if err != nil {
				return err
			}
			if err := visit(ctx, pr); err != nil {
				return err
			}
		}

		if resp == nil || resp.NextPage == 0 {
			return nil
		}
		opts.Page = resp.NextPage
	}
}

func (c *Client) getPullRequest(ctx context.Context, repo string, issue *github.Issue) (models.PullRequest, error) {
	key := fmt.Sprintf("pr:%s/%s#%d", c.owner, repo, issue.GetNumber())

	var pr models.PullRequest
	if c.fromCache(ctx, key, &pr) {
		return pr, nil
	}

	full, _, err := c.prService.Get(ctx, c.owner, repo, issue.GetNumber())
	if err != nil {
		return models.PullRequest{}, fmt.Errorf("%s: %w", c.trans.GetMessage("error.get_pr", 0, map[string]interface{}{
			"PRNumber": issue.GetNumber(),
		}), err)
	}

	labels := models.NewLabelSet()
	for _, label := range full.Labels {
		labels.Add(label.GetName())
	}

	pr = models.PullRequest{
		Number:         full.GetNumber(),
		Title:          full.GetTitle(),
		Labels:         labels,
		Merged:         full.GetMerged(),
		MergeCommitSHA: full.GetMergeCommitSHA(),
		Author: models.User{
			Login: full.GetUser().GetLogin(),
			Name:  full.GetUser().GetName(),
		},
	}

	c.toCache(ctx, key, pr)
	return pr, nil
}

// ListReviews returns the review events of a pull request. Reviews whose
// account was deleted come back with a nil user.
func (c *Client) ListReviews(ctx context.Context, repo string, number int) ([]models.Review, error) {
	key := fmt.Sprintf("reviews:%s/%s#%d", c.owner, repo, number)

	var reviews []models.Review
	if c.fromCache(ctx, key, &reviews) {
		return reviews, nil
	}

	opts := &github.ListOptions{PerPage: 100}
	for {
		page, resp, err := c.prService.ListReviews(ctx, c.owner, repo, number, opts)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", c.trans.GetMessage("error.get_reviews", 0, map[string]interface{}{
				"PRNumber": number,
			}), err)
		}

		for _, review := range page {
			r := models.Review{}
			if user := review.GetUser(); user != nil {
				r.User = &models.User{Login: user.GetLogin(), Name: user.GetName()}
			}
			reviews = append(reviews, r)
		}

		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	c.toCache(ctx, key, reviews)
	return reviews, nil
}

// GetCommit resolves a merge commit SHA in the main repository.
func (c *Client) GetCommit(ctx context.Context, sha string) (models.Commit, error) {
	key := fmt.Sprintf("commit:%s/%s@%s", c.owner, c.mainRepo, sha)

	var commit models.Commit
	if c.fromCache(ctx, key, &commit) {
		return commit, nil
	}

	full, _, err := c.repoService.GetCommit(ctx, c.owner, c.mainRepo, sha, nil)
	if err != nil {
		return models.Commit{}, fmt.Errorf("%s: %w", c.trans.GetMessage("error.get_commit", 0, map[string]interface{}{
			"SHA": sha,
		}), err)
	}

	commit = models.Commit{SHA: sha}
	if author := full.GetAuthor(); author != nil {
		commit.Author = &models.User{Login: author.GetLogin(), Name: author.GetName()}
	}
	if committer := full.GetCommitter(); committer != nil {
		commit.Committer = &models.User{Login: committer.GetLogin(), Name: committer.GetName()}
	}

	c.toCache(ctx, key, commit)
	return commit, nil
}

// GetUser resolves a login to its profile data.
func (c *Client) GetUser(ctx context.Context, login string) (models.User, error) {
	key := "user:" + login

	var user models.User
	if c.fromCache(ctx, key, &user) {
		return user, nil
	}

	full, _, err := c.usersService.Get(ctx, login)
	if err != nil {
		return models.User{}, fmt.Errorf("%s: %w", c.trans.GetMessage("error.get_user", 0, map[string]interface{}{
			"Login": login,
		}), err)
	}

	user = models.User{Login: full.GetLogin(), Name: full.GetName()}

	c.toCache(ctx, key, user)
	return user, nil
}

// fromCache loads a memoized response. Cache failures only disable
// memoization for that lookup.
func (c *Client) fromCache(ctx context.Context, key string, out interface{}) bool {
	if c.cache == nil {
		return false
	}

	raw, ok, err := c.cache.Get(c.cache.GenerateHash(key))
	if err != nil || !ok {
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		logger.Debug(ctx, "discarding undecodable cache entry", "key", key)
		return false
	}

	logger.Debug(ctx, "cache hit", "key", key)
	return true
}

func (c *Client) toCache(ctx context.Context, key string, v interface{}) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Set(c.cache.GenerateHash(key), v); err != nil {
		logger.Debug(ctx, "could not store cache entry", "key", key)
	}
}
