// internal/pipeline/aggregator.go
package pipeline

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github-outreach/internal/model"
)

const (
	// Author when neither a linked profile nor commit metadata names one.
	unknownAuthor = "Unknown"
	// Rendered in place of a diff for commits touching zero files.
	noFileChanges = "No file changes found for this commit."
)

// RenderDiff concatenates per-file patches into the diff text stored on a
// CommitRecord. Each file renders as a "File:" block; files without a
// retrievable patch are marked explicitly; blocks are separated by blank
// lines.
func RenderDiff(files []model.CommitFile) string {
	if len(files) == 0 {
		return noFileChanges
	}
	blocks := make([]string, 0, len(files))
	for _, f := range files {
		if f.Patch == nil {
			blocks = append(blocks, fmt.Sprintf("File: %s (no patch available)\n", f.Filename))
		} else {
			blocks = append(blocks, fmt.Sprintf("File: %s\n%s\n", f.Filename, *f.Patch))
		}
	}
	return strings.Join(blocks, "\n")
}

// ResolveAuthor picks the commit author identity: linked profile handle
// first, then the raw name from the commit metadata, then "Unknown".
func ResolveAuthor(detail *model.CommitDetail) string {
	if detail.AuthorLogin != "" {
		return detail.AuthorLogin
	}
	if detail.AuthorName != "" {
		return detail.AuthorName
	}
	return unknownAuthor
}

// aggregateCommits fetches the most recent commits for one repository and
// enriches each with full detail. Detail fetches fan out through a bounded
// errgroup; results land in an index-addressed slice so the surviving
// commits keep the upstream list order, which the metrics and digest stages
// depend on. A commit whose detail fetch fails is skipped; a failed listing
// records the repository's commit set as empty.
func (p *Pipeline) aggregateCommits(ctx context.Context, org string, repo model.RepoSummary, report *Report) []model.CommitRecord {
	logger := p.logger.With("org", org, "repo", repo.Name)

	shas, err := p.gh.ListCommitSHAs(ctx, org, repo.Name, p.cfg.CommitSampleSize)
	if err != nil {
		logger.Error("Commit listing failed, recording empty commit set", "error", err)
		report.Degrade("commits", org+"/"+repo.Name, err)
		return nil
	}

	results := make([]*model.CommitRecord, len(shas))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.FetchConcurrency)

	for i, sha := range shas {
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			detail, err := p.gh.GetCommit(gctx, org, repo.Name, sha)
			if err != nil {
				logger.Warn("Commit detail fetch failed, skipping commit", "sha", sha, "error", err)
				report.Degrade("commit-detail", sha, err)
				return nil
			}
			results[i] = &model.CommitRecord{
				SHA:     detail.SHA,
				Message: detail.Message,
				Author:  ResolveAuthor(detail),
				Diff:    RenderDiff(detail.Files),
				Stats:   detail.Stats,
			}
			return nil
		})
	}
	_ = g.Wait()

	commits := make([]model.CommitRecord, 0, len(shas))
	for _, r := range results {
		if r != nil {
			commits = append(commits, *r)
		}
	}
	return commits
}
