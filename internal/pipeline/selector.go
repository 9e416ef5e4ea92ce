// internal/pipeline/selector.go
package pipeline

import (
	"context"
	"sort"

	custom_errors "github-outreach/internal/errors"
	"github-outreach/internal/github"
	"github-outreach/internal/model"
)

// Single page from the listing service; no pagination beyond this.
const repoPageSize = 100

// TopRepositories ranks repositories by descending star count (stable, so
// ties keep the service's natural return order) and takes the first n.
func TopRepositories(repos []model.RepoSummary, n int) []model.RepoSummary {
	ranked := make([]model.RepoSummary, len(repos))
	copy(ranked, repos)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Stars > ranked[j].Stars })
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// selectRepositories fetches one page of the organization's public
// repositories and selects the top n by stars. A missing organization aborts
// the stage; a transient upstream failure degrades to zero repositories and
// the run continues.
func (p *Pipeline) selectRepositories(ctx context.Context, org string, report *Report) ([]model.RepoSummary, error) {
	repos, err := p.gh.ListOrgRepos(ctx, org, repoPageSize)
	if err != nil {
		if github.IsNotFound(err) {
			return nil, &custom_errors.ErrOrgNotFound{Org: org}
		}
		p.logger.Error("Repository listing failed, continuing with zero repositories", "org", org, "error", err)
		report.Degrade("select", org, err)
		return nil, nil
	}
	return TopRepositories(repos, p.cfg.RepoSampleSize), nil
}
