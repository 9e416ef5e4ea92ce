// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"log/slog"
	"sync"

	"github-outreach/internal/config"
	"github-outreach/internal/model"
	"github-outreach/internal/narrative"
	"github-outreach/internal/store"
)

// RepoService is the slice of the repository data service the pipeline
// consumes. Implemented by github.Client; mocked in tests.
type RepoService interface {
	ListOrgRepos(ctx context.Context, org string, pageSize int) ([]model.RepoSummary, error)
	ListCommitSHAs(ctx context.Context, owner, repo string, pageSize int) ([]string, error)
	GetCommit(ctx context.Context, owner, repo, sha string) (*model.CommitDetail, error)
	ListContributors(ctx context.Context, owner, repo string, pageSize int) ([]model.Contributor, error)
	GetUser(ctx context.Context, login string) (*model.UserProfile, error)
	TopStarredUserRepo(ctx context.Context, login string, pageSize int) (*model.UserRepo, error)
}

// ItemError records one degraded item: a repository, commit, or contributor
// that was skipped or substituted with a placeholder.
type ItemError struct {
	Stage string
	Item  string
	Err   error
}

// Report collects per-item degradations for one stage run. A stage that
// completes with a non-empty report still succeeded; completeness is
// best-effort. Safe for concurrent use by fan-out workers.
type Report struct {
	mu       sync.Mutex
	Degraded []ItemError
}

// Degrade records one skipped or placeholder-substituted item.
func (r *Report) Degrade(stage, item string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Degraded = append(r.Degraded, ItemError{Stage: stage, Item: item, Err: err})
}

// DegradedCount returns the number of degraded items.
func (r *Report) DegradedCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Degraded)
}

// Pipeline holds the collaborators shared by the three stage entry points.
type Pipeline struct {
	store  store.Querier
	gh     RepoService
	gen    *narrative.Generator
	cfg    *config.Config
	logger *slog.Logger
}

// New creates a Pipeline.
func New(st store.Querier, gh RepoService, gen *narrative.Generator, cfg *config.Config, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		store:  st,
		gh:     gh,
		gen:    gen,
		cfg:    cfg,
		logger: logger,
	}
}
