// internal/pipeline/mocks_test.go
package pipeline

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/mock"

	"github-outreach/internal/config"
	"github-outreach/internal/model"
	"github-outreach/internal/narrative"
)

// MockRepoService is a mock of the RepoService interface.
type MockRepoService struct {
	mock.Mock
}

func (m *MockRepoService) ListOrgRepos(ctx context.Context, org string, pageSize int) ([]model.RepoSummary, error) {
	args := m.Called(ctx, org, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.RepoSummary), args.Error(1)
}

func (m *MockRepoService) ListCommitSHAs(ctx context.Context, owner, repo string, pageSize int) ([]string, error) {
	args := m.Called(ctx, owner, repo, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockRepoService) GetCommit(ctx context.Context, owner, repo, sha string) (*model.CommitDetail, error) {
	args := m.Called(ctx, owner, repo, sha)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CommitDetail), args.Error(1)
}

func (m *MockRepoService) ListContributors(ctx context.Context, owner, repo string, pageSize int) ([]model.Contributor, error) {
	args := m.Called(ctx, owner, repo, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Contributor), args.Error(1)
}

func (m *MockRepoService) GetUser(ctx context.Context, login string) (*model.UserProfile, error) {
	args := m.Called(ctx, login)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserProfile), args.Error(1)
}

func (m *MockRepoService) TopStarredUserRepo(ctx context.Context, login string, pageSize int) (*model.UserRepo, error) {
	args := m.Called(ctx, login, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserRepo), args.Error(1)
}

// MockQuerier is a mock of the store.Querier interface.
type MockQuerier struct {
	mock.Mock
}

func (m *MockQuerier) GetCompany(ctx context.Context, id int64) (*model.CompanyProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CompanyProfile), args.Error(1)
}

func (m *MockQuerier) CreateCompany(ctx context.Context, company *model.CompanyProfile) error {
	args := m.Called(ctx, company)
	return args.Error(0)
}

func (m *MockQuerier) UpdateScrapedData(ctx context.Context, id int64, data []byte) error {
	args := m.Called(ctx, id, data)
	return args.Error(0)
}

func (m *MockQuerier) UpdateNiceData(ctx context.Context, id int64, data []byte) error {
	args := m.Called(ctx, id, data)
	return args.Error(0)
}

func (m *MockQuerier) UpdateEmail(ctx context.Context, id int64, email string) error {
	args := m.Called(ctx, id, email)
	return args.Error(0)
}

// stubCompleter is a canned text-completion backend.
type stubCompleter struct {
	response string
	err      error
}

func (s *stubCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	return s.response, s.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testConfig() *config.Config {
	return &config.Config{
		LogLevel:         "error",
		RepoSampleSize:   1,
		CommitSampleSize: 10,
		ContributorLimit: 50,
		FetchConcurrency: 5,
	}
}

// newTestPipeline builds a Pipeline over mocks with a canned completion
// response.
func newTestPipeline(t *testing.T, st *MockQuerier, gh *MockRepoService, completer *stubCompleter) *Pipeline {
	t.Helper()
	if completer == nil {
		completer = &stubCompleter{response: "ok"}
	}
	logger := testLogger()
	return New(st, gh, narrative.New(completer, logger), testConfig(), logger)
}
