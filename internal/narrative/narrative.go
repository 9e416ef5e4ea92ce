// internal/narrative/narrative.go
package narrative

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github-outreach/internal/llm"
	"github-outreach/internal/model"
)

// Sentinel values substituted when generation fails. Downstream stages treat
// these as ordinary text, never as errors.
const (
	SentinelNoSummary = "No summary available."
	SentinelSummaryNA = "Summary not available."
)

const emailPrompt = `You are writing a short, friendly outreach email on behalf of a developer tooling company.

Company: %s
Recipient: %s

Here is a digest of the company's recent public repository activity:

%s

Write a personalized email that references their recent work in a natural way.
Keep the tone warm and professional, three short paragraphs at most, and close
by inviting them to book a quick intro call. Do not include a subject line.`

const techPrompt = `Based on the following GitHub profile bio and the primary language of the user's most popular repository, list the technologies this person most likely works with.

Bio: %s
Top repository language: %s

Respond with a comma-separated list of technology names only, no other text.`

const messageSummaryPrompt = `Summarize the following commit message in one short sentence:

%s`

const diffSummaryPrompt = `Summarize what the following code diff changes in one or two short sentences:

%s`

// Generator turns pipeline data into prose through the text-completion
// service.
type Generator struct {
	llm    llm.Completer
	logger *slog.Logger
}

// New creates a Generator.
func New(completer llm.Completer, logger *slog.Logger) *Generator {
	return &Generator{llm: completer, logger: logger}
}

// OutreachEmail composes the templated outreach message from a digest and the
// company's personalization fields.
func (g *Generator) OutreachEmail(ctx context.Context, digest string, company *model.CompanyProfile) (string, error) {
	recipient := company.Name
	if company.ManagerName != nil && *company.ManagerName != "" {
		recipient = *company.ManagerName
	}
	prompt := fmt.Sprintf(emailPrompt, company.Name, recipient, digest)
	return g.llm.Complete(ctx, prompt)
}

// Technologies infers a technology list for one commit author from profile
// bio and top-repository language signals. The response is parsed by
// splitting on commas; empty entries are discarded.
func (g *Generator) Technologies(ctx context.Context, bio, language string) ([]string, error) {
	if bio == "" {
		bio = "(no bio)"
	}
	if language == "" {
		language = "(unknown)"
	}
	resp, err := g.llm.Complete(ctx, fmt.Sprintf(techPrompt, bio, language))
	if err != nil {
		return nil, err
	}
	return parseTechList(resp), nil
}

// SummarizeMessage produces a one-line summary of a commit message.
func (g *Generator) SummarizeMessage(ctx context.Context, message string) (string, error) {
	return g.llm.Complete(ctx, fmt.Sprintf(messageSummaryPrompt, message))
}

// SummarizeDiff produces a short summary of a rendered diff.
func (g *Generator) SummarizeDiff(ctx context.Context, diff string) (string, error) {
	return g.llm.Complete(ctx, fmt.Sprintf(diffSummaryPrompt, diff))
}

func parseTechList(resp string) []string {
	var techs []string
	for _, part := range strings.Split(resp, ",") {
		if t := strings.TrimSpace(part); t != "" {
			techs = append(techs, t)
		}
	}
	return techs
}
