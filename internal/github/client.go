// internal/github/client.go
package github

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sort"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"

	"github-outreach/internal/model"
)

// Client is a wrapper around the go-github client. It translates upstream
// response shapes into internal model records so the pipeline stages never
// branch on optional fields.
type Client struct {
	gh     *github.Client
	logger *slog.Logger
}

// NewClient creates and configures a new Client instance.
// The provided token is used to create an authenticated http.Client.
func NewClient(token string, logger *slog.Logger) *Client {
	ctx := context.Background()
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)

	return &Client{
		gh:     github.NewClient(tc),
		logger: logger,
	}
}

// OverrideBaseURL points the underlying client at a different API host.
// Used by tests to target an httptest server.
func (c *Client) OverrideBaseURL(url string) error {
	gh, err := c.gh.WithEnterpriseURLs(url, url)
	if err != nil {
		return err
	}
	c.gh = gh
	return nil
}

// ListOrgRepos fetches a single page of an organization's public repositories.
func (c *Client) ListOrgRepos(ctx context.Context, org string, pageSize int) ([]model.RepoSummary, error) {
	opts := &github.RepositoryListByOrgOptions{
		Type:        "public",
		ListOptions: github.ListOptions{PerPage: pageSize},
	}
	repos, _, err := c.gh.Repositories.ListByOrg(ctx, org, opts)
	if err != nil {
		return nil, err
	}

	out := make([]model.RepoSummary, 0, len(repos))
	for _, r := range repos {
		out = append(out, model.RepoSummary{
			Name:  r.GetName(),
			Link:  r.GetHTMLURL(),
			Stars: r.GetStargazersCount(),
		})
	}
	return out, nil
}

// ListCommitSHAs fetches a single page of recent commit identifiers for a
// repository, in the service's most-recent-first order.
func (c *Client) ListCommitSHAs(ctx context.Context, owner, repo string, pageSize int) ([]string, error) {
	opts := &github.CommitsListOptions{
		ListOptions: github.ListOptions{PerPage: pageSize},
	}
	commits, _, err := c.gh.Repositories.ListCommits(ctx, owner, repo, opts)
	if err != nil {
		return nil, err
	}

	shas := make([]string, 0, len(commits))
	for _, commit := range commits {
		shas = append(shas, commit.GetSHA())
	}
	return shas, nil
}

// GetCommit fetches the full detail for one commit: message, authorship,
// per-file patches and change stats.
func (c *Client) GetCommit(ctx context.Context, owner, repo, sha string) (*model.CommitDetail, error) {
	commit, _, err := c.gh.Repositories.GetCommit(ctx, owner, repo, sha, nil)
	if err != nil {
		return nil, err
	}
	return toCommitDetail(commit), nil
}

// ListContributors fetches a single page of a repository's contributors,
// ranked by contribution count as the service returns them.
func (c *Client) ListContributors(ctx context.Context, owner, repo string, pageSize int) ([]model.Contributor, error) {
	opts := &github.ListContributorsOptions{
		ListOptions: github.ListOptions{PerPage: pageSize},
	}
	contributors, _, err := c.gh.Repositories.ListContributors(ctx, owner, repo, opts)
	if err != nil {
		return nil, err
	}

	out := make([]model.Contributor, 0, len(contributors))
	for _, contrib := range contributors {
		out = append(out, model.Contributor{
			Login:         contrib.GetLogin(),
			Contributions: contrib.GetContributions(),
		})
	}
	return out, nil
}

// GetUser fetches a user's public profile.
func (c *Client) GetUser(ctx context.Context, login string) (*model.UserProfile, error) {
	user, _, err := c.gh.Users.Get(ctx, login)
	if err != nil {
		return nil, err
	}
	return &model.UserProfile{
		Login: user.GetLogin(),
		Name:  user.GetName(),
		Bio:   user.GetBio(),
	}, nil
}

// TopStarredUserRepo fetches a user's repositories and returns the one with
// the most stars, or nil when the user owns none. The listing endpoint does
// not rank by stars, so the ranking happens here.
func (c *Client) TopStarredUserRepo(ctx context.Context, login string, pageSize int) (*model.UserRepo, error) {
	opts := &github.RepositoryListByUserOptions{
		ListOptions: github.ListOptions{PerPage: pageSize},
	}
	repos, _, err := c.gh.Repositories.ListByUser(ctx, login, opts)
	if err != nil {
		return nil, err
	}
	if len(repos) == 0 {
		return nil, nil
	}

	out := make([]model.UserRepo, 0, len(repos))
	for _, r := range repos {
		out = append(out, model.UserRepo{
			Name:     r.GetName(),
			Stars:    r.GetStargazersCount(),
			Language: r.GetLanguage(),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Stars > out[j].Stars })
	return &out[0], nil
}

// toCommitDetail translates a github.RepositoryCommit into our internal
// model.CommitDetail.
func toCommitDetail(c *github.RepositoryCommit) *model.CommitDetail {
	detail := &model.CommitDetail{
		SHA:         c.GetSHA(),
		Message:     c.GetCommit().GetMessage(),
		AuthorLogin: c.GetAuthor().GetLogin(),
		AuthorName:  c.GetCommit().GetAuthor().GetName(),
	}

	if s := c.GetStats(); s != nil {
		detail.Stats = &model.CommitStats{
			Additions: s.GetAdditions(),
			Deletions: s.GetDeletions(),
			Total:     s.GetTotal(),
		}
	}

	for _, f := range c.Files {
		detail.Files = append(detail.Files, model.CommitFile{
			Filename: f.GetFilename(),
			Patch:    f.Patch,
		})
	}
	return detail
}

// IsNotFound reports whether an upstream error is a 404 response.
func IsNotFound(err error) bool {
	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) {
		return ghErr.Response != nil && ghErr.Response.StatusCode == http.StatusNotFound
	}
	return false
}
