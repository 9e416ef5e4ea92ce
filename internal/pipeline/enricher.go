// internal/pipeline/enricher.go
package pipeline

import (
	"context"

	"github-outreach/internal/model"
)

// User repo listing page used when hunting for the top-starred project.
const userRepoPageSize = 100

// resolveContributorNames fetches the ranked contributor list (bounded by
// CONTRIBUTOR_LIMIT) and resolves each login to a profile display name. A
// failed or empty lookup falls back to the raw login; a failed listing
// yields an empty sequence. Order follows the service's contribution-count
// ranking.
func (p *Pipeline) resolveContributorNames(ctx context.Context, org, repo string, report *Report) []string {
	logger := p.logger.With("org", org, "repo", repo)

	contributors, err := p.gh.ListContributors(ctx, org, repo, p.cfg.ContributorLimit)
	if err != nil {
		logger.Warn("Contributor listing failed, recording empty contributor set", "error", err)
		report.Degrade("contributors", org+"/"+repo, err)
		return nil
	}

	names := make([]string, 0, len(contributors))
	for _, c := range contributors {
		user, err := p.gh.GetUser(ctx, c.Login)
		if err != nil {
			logger.Warn("Contributor profile lookup failed, using login", "login", c.Login, "error", err)
			report.Degrade("contributor-name", c.Login, err)
			names = append(names, c.Login)
			continue
		}
		if user.Name != "" {
			names = append(names, user.Name)
		} else {
			names = append(names, c.Login)
		}
	}
	return names
}

// UniqueAuthors returns the distinct commit author identifiers in order of
// first appearance. The deduplication key is the author string exactly as
// stored on the CommitRecord.
func UniqueAuthors(commits []model.CommitRecord) []string {
	seen := make(map[string]bool, len(commits))
	var authors []string
	for _, c := range commits {
		if !seen[c.Author] {
			seen[c.Author] = true
			authors = append(authors, c.Author)
		}
	}
	return authors
}

// buildPeople produces one ContributorProfile per distinct commit author.
// Technology inference chains a profile lookup, a top-starred repository
// lookup and a generation call; any failure along the chain leaves that
// author with an empty technology list, never a stage failure.
func (p *Pipeline) buildPeople(ctx context.Context, commits []model.CommitRecord, report *Report) []model.ContributorProfile {
	authors := UniqueAuthors(commits)
	people := make([]model.ContributorProfile, 0, len(authors))

	for _, author := range authors {
		profile := model.ContributorProfile{
			Login:       author,
			DisplayName: author,
		}

		user, err := p.gh.GetUser(ctx, author)
		if err != nil {
			p.logger.Warn("Author profile lookup failed, skipping technology inference", "login", author, "error", err)
			report.Degrade("author-profile", author, err)
			people = append(people, profile)
			continue
		}
		if user.Name != "" {
			profile.DisplayName = user.Name
		}

		profile.Technologies = p.inferTechnologies(ctx, author, user.Bio, report)
		people = append(people, profile)
	}
	return people
}

func (p *Pipeline) inferTechnologies(ctx context.Context, login, bio string, report *Report) []string {
	topRepo, err := p.gh.TopStarredUserRepo(ctx, login, userRepoPageSize)
	if err != nil {
		p.logger.Warn("User repository lookup failed", "login", login, "error", err)
		report.Degrade("author-repos", login, err)
		return nil
	}
	var language string
	if topRepo != nil {
		language = topRepo.Language
	}

	techs, err := p.gen.Technologies(ctx, bio, language)
	if err != nil {
		p.logger.Warn("Technology inference failed", "login", login, "error", err)
		report.Degrade("tech-inference", login, err)
		return nil
	}
	return techs
}
