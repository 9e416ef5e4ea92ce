// internal/pipeline/stages.go
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github-outreach/internal/model"
	"github-outreach/internal/narrative"
)

// Scrape resolves the company's organization, selects its top repositories,
// aggregates recent commits with churn averages and contributor names, and
// persists the sample set into scraped_data. A missing company or
// organization aborts without touching the store; transient upstream
// failures degrade per item and an empty but valid sample set is still
// persisted.
func (p *Pipeline) Scrape(ctx context.Context, companyID int64) (*Report, error) {
	logger := p.logger.With("company_id", companyID)
	report := &Report{}

	company, err := p.store.GetCompany(ctx, companyID)
	if err != nil {
		return report, err
	}

	org, err := ResolveOrg(company.Website)
	if err != nil {
		return report, err
	}
	logger.Info("Resolved organization", "org", org)

	repos, err := p.selectRepositories(ctx, org, report)
	if err != nil {
		return report, err
	}
	logger.Info("Selected repositories", "count", len(repos))

	samples := make([]model.RepositorySample, len(repos))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.FetchConcurrency)

	for i, repo := range repos {
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			commits := p.aggregateCommits(gctx, org, repo, report)
			avgAdd, avgDel := AverageChurn(commits, churnWindow)
			samples[i] = model.RepositorySample{
				Name:         repo.Name,
				Link:         repo.Link,
				Stars:        repo.Stars,
				Contributors: p.resolveContributorNames(gctx, org, repo.Name, report),
				Commits:      commits,
				AvgAdditions: avgAdd,
				AvgDeletions: avgDel,
			}
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return report, err
	}

	data, err := json.Marshal(samples)
	if err != nil {
		return report, fmt.Errorf("failed to encode samples: %w", err)
	}
	if err := p.store.UpdateScrapedData(ctx, companyID, data); err != nil {
		return report, fmt.Errorf("failed to persist scraped data: %w", err)
	}

	logger.Info("Scrape stage finished", "repositories", len(samples), "degraded_items", report.DegradedCount())
	return report, nil
}

// Generate renders the digest from the stored sample set, generates the
// outreach email through the prompt template, and persists it. Generation
// failure substitutes a sentinel instead of aborting.
func (p *Pipeline) Generate(ctx context.Context, companyID int64) (*Report, error) {
	logger := p.logger.With("company_id", companyID)
	report := &Report{}

	company, err := p.store.GetCompany(ctx, companyID)
	if err != nil {
		return report, err
	}

	samples := p.decodeSamples(company, report)
	digest := Summarize(samples)

	email, err := p.gen.OutreachEmail(ctx, digest, company)
	if err != nil {
		logger.Error("Email generation failed, persisting sentinel", "error", err)
		report.Degrade("email", strconv.FormatInt(companyID, 10), err)
		email = narrative.SentinelNoSummary
	}

	if err := p.store.UpdateEmail(ctx, companyID, email); err != nil {
		return report, fmt.Errorf("failed to persist email: %w", err)
	}

	logger.Info("Generate stage finished", "degraded_items", report.DegradedCount())
	return report, nil
}

// Enrich rebuilds the stored sample set as EnrichedRepository records:
// commit message and diff summaries, plus one resolved ContributorProfile
// per distinct commit author. Every lookup and generation failure degrades
// to a sentinel or an empty list at item granularity.
func (p *Pipeline) Enrich(ctx context.Context, companyID int64) (*Report, error) {
	logger := p.logger.With("company_id", companyID)
	report := &Report{}

	company, err := p.store.GetCompany(ctx, companyID)
	if err != nil {
		return report, err
	}

	samples := p.decodeSamples(company, report)
	enriched := make([]model.EnrichedRepository, 0, len(samples))

	for _, sample := range samples {
		for i := range sample.Commits {
			p.summarizeCommit(ctx, &sample.Commits[i], report)
		}
		enriched = append(enriched, model.EnrichedRepository{
			RepositorySample: sample,
			People:           p.buildPeople(ctx, sample.Commits, report),
		})
	}

	data, err := json.Marshal(enriched)
	if err != nil {
		return report, fmt.Errorf("failed to encode enriched data: %w", err)
	}
	if err := p.store.UpdateNiceData(ctx, companyID, data); err != nil {
		return report, fmt.Errorf("failed to persist enriched data: %w", err)
	}

	logger.Info("Enrich stage finished", "repositories", len(enriched), "degraded_items", report.DegradedCount())
	return report, nil
}

// decodeSamples reads the persisted sample set. Missing or malformed
// scraped_data degrades to an empty set rather than failing the stage.
func (p *Pipeline) decodeSamples(company *model.CompanyProfile, report *Report) []model.RepositorySample {
	if len(company.ScrapedData) == 0 {
		return nil
	}
	var samples []model.RepositorySample
	if err := json.Unmarshal(company.ScrapedData, &samples); err != nil {
		p.logger.Error("Stored sample set is malformed, treating as empty", "company_id", company.ID, "error", err)
		report.Degrade("decode", strconv.FormatInt(company.ID, 10), err)
		return nil
	}
	return samples
}

func (p *Pipeline) summarizeCommit(ctx context.Context, commit *model.CommitRecord, report *Report) {
	msgSummary, err := p.gen.SummarizeMessage(ctx, commit.Message)
	if err != nil {
		p.logger.Warn("Commit message summary failed", "sha", commit.SHA, "error", err)
		report.Degrade("message-summary", commit.SHA, err)
		msgSummary = narrative.SentinelNoSummary
	}
	commit.MessageSummary = msgSummary

	diffSummary, err := p.gen.SummarizeDiff(ctx, commit.Diff)
	if err != nil {
		p.logger.Warn("Commit diff summary failed", "sha", commit.SHA, "error", err)
		report.Degrade("diff-summary", commit.SHA, err)
		diffSummary = narrative.SentinelSummaryNA
	}
	commit.DiffSummary = diffSummary
}
