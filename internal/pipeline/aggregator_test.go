// internal/pipeline/aggregator_test.go
package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github-outreach/internal/model"
)

func strPtr(s string) *string { return &s }

func TestRenderDiff(t *testing.T) {
	t.Run("renders patched and patchless files as File blocks", func(t *testing.T) {
		diff := RenderDiff([]model.CommitFile{
			{Filename: "main.go", Patch: strPtr("@@ -1 +1 @@\n-old\n+new")},
			{Filename: "image.png", Patch: nil},
		})

		assert.Equal(t,
			"File: main.go\n@@ -1 +1 @@\n-old\n+new\n"+
				"\n"+
				"File: image.png (no patch available)\n",
			diff)
	})

	t.Run("zero changed files renders the sentinel", func(t *testing.T) {
		assert.Equal(t, "No file changes found for this commit.", RenderDiff(nil))
	})
}

func TestResolveAuthor(t *testing.T) {
	t.Run("prefers the linked profile handle", func(t *testing.T) {
		author := ResolveAuthor(&model.CommitDetail{AuthorLogin: "octocat", AuthorName: "The Octocat"})
		assert.Equal(t, "octocat", author)
	})

	t.Run("falls back to the commit metadata name", func(t *testing.T) {
		author := ResolveAuthor(&model.CommitDetail{AuthorName: "The Octocat"})
		assert.Equal(t, "The Octocat", author)
	})

	t.Run("falls back to Unknown", func(t *testing.T) {
		assert.Equal(t, "Unknown", ResolveAuthor(&model.CommitDetail{}))
	})
}

func TestAggregateCommits(t *testing.T) {
	ctx := context.Background()
	repo := model.RepoSummary{Name: "repo", Link: "https://example.com/repo", Stars: 1}

	t.Run("preserves upstream list order despite concurrent fetches", func(t *testing.T) {
		ghMock := new(MockRepoService)
		shas := []string{"s1", "s2", "s3", "s4"}
		ghMock.On("ListCommitSHAs", ctx, "acme", "repo", 10).Return(shas, nil).Once()
		for _, sha := range shas {
			detail := &model.CommitDetail{SHA: sha, Message: "msg " + sha, AuthorLogin: "dev"}
			ghMock.On("GetCommit", mock.Anything, "acme", "repo", sha).Return(detail, nil).Once()
		}

		p := newTestPipeline(t, new(MockQuerier), ghMock, nil)
		commits := p.aggregateCommits(ctx, "acme", repo, &Report{})

		require.Len(t, commits, 4)
		for i, sha := range shas {
			assert.Equal(t, sha, commits[i].SHA)
		}
		ghMock.AssertExpectations(t)
	})

	t.Run("a failed detail fetch skips only that commit", func(t *testing.T) {
		ghMock := new(MockRepoService)
		ghMock.On("ListCommitSHAs", ctx, "acme", "repo", 10).Return([]string{"s1", "s2", "s3"}, nil).Once()
		ghMock.On("GetCommit", mock.Anything, "acme", "repo", "s1").Return(&model.CommitDetail{SHA: "s1"}, nil).Once()
		ghMock.On("GetCommit", mock.Anything, "acme", "repo", "s2").Return(nil, errors.New("boom")).Once()
		ghMock.On("GetCommit", mock.Anything, "acme", "repo", "s3").Return(&model.CommitDetail{SHA: "s3"}, nil).Once()

		p := newTestPipeline(t, new(MockQuerier), ghMock, nil)
		report := &Report{}
		commits := p.aggregateCommits(ctx, "acme", repo, report)

		require.Len(t, commits, 2)
		assert.Equal(t, "s1", commits[0].SHA)
		assert.Equal(t, "s3", commits[1].SHA)
		assert.Equal(t, 1, report.DegradedCount())
		assert.Equal(t, "commit-detail", report.Degraded[0].Stage)
	})

	t.Run("a failed listing records an empty commit set", func(t *testing.T) {
		ghMock := new(MockRepoService)
		ghMock.On("ListCommitSHAs", ctx, "acme", "repo", 10).Return(nil, errors.New("boom")).Once()

		p := newTestPipeline(t, new(MockQuerier), ghMock, nil)
		report := &Report{}
		commits := p.aggregateCommits(ctx, "acme", repo, report)

		assert.Empty(t, commits)
		assert.Equal(t, 1, report.DegradedCount())
	})

	t.Run("translates details into commit records", func(t *testing.T) {
		ghMock := new(MockRepoService)
		ghMock.On("ListCommitSHAs", ctx, "acme", "repo", 10).Return([]string{"s1"}, nil).Once()
		ghMock.On("GetCommit", mock.Anything, "acme", "repo", "s1").Return(&model.CommitDetail{
			SHA:        "s1",
			Message:    "fix: bug",
			AuthorName: "Jo Dev",
			Files:      []model.CommitFile{{Filename: "a.go", Patch: strPtr("+x")}},
			Stats:      &model.CommitStats{Additions: 1, Deletions: 0, Total: 1},
		}, nil).Once()

		p := newTestPipeline(t, new(MockQuerier), ghMock, nil)
		commits := p.aggregateCommits(ctx, "acme", repo, &Report{})

		require.Len(t, commits, 1)
		assert.Equal(t, "fix: bug", commits[0].Message)
		assert.Equal(t, "Jo Dev", commits[0].Author)
		assert.Equal(t, "File: a.go\n+x\n", commits[0].Diff)
		require.NotNil(t, commits[0].Stats)
		assert.Equal(t, 1, commits[0].Stats.Additions)
	})
}
