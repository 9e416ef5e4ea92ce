// internal/pipeline/metrics.go
package pipeline

import (
	"math"

	"github-outreach/internal/model"
)

// Averages cover the most recent churnWindow commits.
const churnWindow = 3

// AverageChurn computes average lines added and deleted over the first
// window commits that carry a stats tuple. Commits without stats are
// excluded from both numerator and denominator; zero qualifying commits
// yields (0, 0). Results are rounded to the nearest integer.
func AverageChurn(commits []model.CommitRecord, window int) (int, int) {
	if window > len(commits) {
		window = len(commits)
	}

	var additions, deletions, counted int
	for _, c := range commits[:window] {
		if c.Stats == nil {
			continue
		}
		additions += c.Stats.Additions
		deletions += c.Stats.Deletions
		counted++
	}
	if counted == 0 {
		return 0, 0
	}
	avgAdd := int(math.Round(float64(additions) / float64(counted)))
	avgDel := int(math.Round(float64(deletions) / float64(counted)))
	return avgAdd, avgDel
}
