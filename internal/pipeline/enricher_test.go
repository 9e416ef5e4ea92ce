// internal/pipeline/enricher_test.go
package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github-outreach/internal/model"
)

func TestUniqueAuthors(t *testing.T) {
	commits := []model.CommitRecord{
		{Author: "a"}, {Author: "b"}, {Author: "a"}, {Author: "c"},
	}
	assert.Equal(t, []string{"a", "b", "c"}, UniqueAuthors(commits))
	assert.Nil(t, UniqueAuthors(nil))
}

func TestResolveContributorNames(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves display names with per-contributor fallback", func(t *testing.T) {
		ghMock := new(MockRepoService)
		ghMock.On("ListContributors", ctx, "acme", "repo", 50).Return([]model.Contributor{
			{Login: "alice", Contributions: 40},
			{Login: "bob", Contributions: 20},
			{Login: "carol", Contributions: 5},
		}, nil).Once()
		ghMock.On("GetUser", ctx, "alice").Return(&model.UserProfile{Login: "alice", Name: "Alice Doe"}, nil).Once()
		ghMock.On("GetUser", ctx, "bob").Return(nil, errors.New("boom")).Once()
		ghMock.On("GetUser", ctx, "carol").Return(&model.UserProfile{Login: "carol"}, nil).Once()

		p := newTestPipeline(t, new(MockQuerier), ghMock, nil)
		report := &Report{}
		names := p.resolveContributorNames(ctx, "acme", "repo", report)

		assert.Equal(t, []string{"Alice Doe", "bob", "carol"}, names)
		assert.Equal(t, 1, report.DegradedCount())
		ghMock.AssertExpectations(t)
	})

	t.Run("failed listing yields an empty contributor set", func(t *testing.T) {
		ghMock := new(MockRepoService)
		ghMock.On("ListContributors", ctx, "acme", "repo", 50).Return(nil, errors.New("boom")).Once()

		p := newTestPipeline(t, new(MockQuerier), ghMock, nil)
		report := &Report{}
		names := p.resolveContributorNames(ctx, "acme", "repo", report)

		assert.Empty(t, names)
		assert.Equal(t, 1, report.DegradedCount())
	})
}

func TestBuildPeople(t *testing.T) {
	ctx := context.Background()
	commits := []model.CommitRecord{
		{Author: "a"}, {Author: "b"}, {Author: "a"}, {Author: "c"},
	}

	t.Run("one profile per distinct author, empty technologies on failure", func(t *testing.T) {
		ghMock := new(MockRepoService)
		// Every lookup fails; enrichment must still produce three entries.
		ghMock.On("GetUser", ctx, "a").Return(nil, errors.New("boom")).Once()
		ghMock.On("GetUser", ctx, "b").Return(nil, errors.New("boom")).Once()
		ghMock.On("GetUser", ctx, "c").Return(nil, errors.New("boom")).Once()

		p := newTestPipeline(t, new(MockQuerier), ghMock, nil)
		report := &Report{}
		people := p.buildPeople(ctx, commits, report)

		require.Len(t, people, 3)
		for i, login := range []string{"a", "b", "c"} {
			assert.Equal(t, login, people[i].Login)
			assert.Equal(t, login, people[i].DisplayName)
			assert.Empty(t, people[i].Technologies)
		}
		assert.Equal(t, 3, report.DegradedCount())
	})

	t.Run("infers technologies from bio and top repository language", func(t *testing.T) {
		ghMock := new(MockRepoService)
		ghMock.On("GetUser", ctx, "a").Return(&model.UserProfile{Login: "a", Name: "Ada", Bio: "distributed systems"}, nil).Once()
		ghMock.On("TopStarredUserRepo", ctx, "a", userRepoPageSize).
			Return(&model.UserRepo{Name: "raft", Stars: 900, Language: "Go"}, nil).Once()

		completer := &stubCompleter{response: "Go, Kubernetes, , gRPC "}
		p := newTestPipeline(t, new(MockQuerier), ghMock, completer)
		people := p.buildPeople(ctx, commits[:1], &Report{})

		require.Len(t, people, 1)
		assert.Equal(t, "Ada", people[0].DisplayName)
		assert.Equal(t, []string{"Go", "Kubernetes", "gRPC"}, people[0].Technologies)
	})

	t.Run("generation failure degrades to an empty list", func(t *testing.T) {
		ghMock := new(MockRepoService)
		ghMock.On("GetUser", ctx, "a").Return(&model.UserProfile{Login: "a", Name: "Ada"}, nil).Once()
		ghMock.On("TopStarredUserRepo", ctx, "a", userRepoPageSize).Return(nil, nil).Once()

		completer := &stubCompleter{err: errors.New("model unavailable")}
		p := newTestPipeline(t, new(MockQuerier), ghMock, completer)
		report := &Report{}
		people := p.buildPeople(ctx, commits[:1], report)

		require.Len(t, people, 1)
		assert.Empty(t, people[0].Technologies)
		assert.Equal(t, 1, report.DegradedCount())
	})
}
