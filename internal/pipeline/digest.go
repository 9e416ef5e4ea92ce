// internal/pipeline/digest.go
package pipeline

import (
	"fmt"
	"strings"

	"github-outreach/internal/model"
)

// NoRepositoryData is returned when there is nothing to summarize.
const NoRepositoryData = "No repository data available."

const (
	digestCommitCount = 3
	diffExcerptLen    = 200
)

// Summarize renders the bounded plain-text synopsis consumed by the
// narrative generator: the top repository by stars, up to three of its
// commits with flattened diff excerpts, and the averaged churn across
// exactly those commits when any of them carries stats. The top repository
// is re-derived from star counts rather than trusting the input order.
func Summarize(samples []model.RepositorySample) string {
	if len(samples) == 0 {
		return NoRepositoryData
	}

	top := topByStars(samples)

	var b strings.Builder
	fmt.Fprintf(&b, "Repository: %s\n", top.Name)
	fmt.Fprintf(&b, "Stars: %d\n", top.Stars)
	fmt.Fprintf(&b, "Link: %s\n\n", top.Link)

	included := top.Commits
	if len(included) > digestCommitCount {
		included = included[:digestCommitCount]
	}
	for i, c := range included {
		fmt.Fprintf(&b, "Commit %d by %s:\n%s...\n", i+1, c.Author, excerpt(c.Diff))
	}

	if hasStats(included) {
		avgAdd, avgDel := AverageChurn(included, len(included))
		fmt.Fprintf(&b, "\nAverage lines added: %d, average lines deleted: %d\n", avgAdd, avgDel)
	}
	return b.String()
}

func topByStars(samples []model.RepositorySample) model.RepositorySample {
	top := samples[0]
	for _, s := range samples[1:] {
		if s.Stars > top.Stars {
			top = s
		}
	}
	return top
}

// excerpt takes the first diffExcerptLen characters and flattens newlines
// into spaces.
func excerpt(diff string) string {
	if len(diff) > diffExcerptLen {
		diff = diff[:diffExcerptLen]
	}
	return strings.ReplaceAll(diff, "\n", " ")
}

func hasStats(commits []model.CommitRecord) bool {
	for _, c := range commits {
		if c.Stats != nil {
			return true
		}
	}
	return false
}
