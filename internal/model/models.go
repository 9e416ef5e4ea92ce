// internal/model/models.go
package model

import "encoding/json"

// CompanyProfile is the root record the pipeline operates on. It is created
// externally (seed data) and each stage persists its output into one of the
// mutable fields.
type CompanyProfile struct {
	ID          int64
	Name        string
	Website     string
	ManagerName *string
	ScrapedData json.RawMessage
	NiceData    json.RawMessage
	Email       *string
}

// CommitStats holds the change statistics reported for a single commit.
type CommitStats struct {
	Additions int `json:"additions"`
	Deletions int `json:"deletions"`
	Total     int `json:"total"`
}

// CommitRecord is one aggregated commit: message, resolved author, the
// rendered diff text and, when the upstream reported them, change stats.
// MessageSummary and DiffSummary are filled during enrichment.
type CommitRecord struct {
	SHA            string       `json:"sha"`
	Message        string       `json:"message"`
	Author         string       `json:"author"`
	Diff           string       `json:"diff"`
	Stats          *CommitStats `json:"stats,omitempty"`
	MessageSummary string       `json:"message_summary,omitempty"`
	DiffSummary    string       `json:"diff_summary,omitempty"`
}

// RepositorySample is the snapshot taken for one selected repository.
// Contributors and Commits reflect the state at fetch time only.
type RepositorySample struct {
	Name         string         `json:"name"`
	Link         string         `json:"link"`
	Stars        int            `json:"stars"`
	Contributors []string       `json:"contributors"`
	Commits      []CommitRecord `json:"commits"`
	AvgAdditions int            `json:"avg_additions"`
	AvgDeletions int            `json:"avg_deletions"`
}

// ContributorProfile is one resolved commit author. DisplayName falls back to
// the login when the profile lookup fails; Technologies may be empty.
type ContributorProfile struct {
	Login        string   `json:"login"`
	DisplayName  string   `json:"display_name"`
	Technologies []string `json:"technologies"`
}

// EnrichedRepository is a RepositorySample plus one ContributorProfile per
// distinct commit author observed in its commit records.
type EnrichedRepository struct {
	RepositorySample
	People []ContributorProfile `json:"people"`
}

// RepoSummary is the boundary record for one repository returned by the
// listing service.
type RepoSummary struct {
	Name  string
	Link  string
	Stars int
}

// CommitFile is one changed file inside a commit detail. Patch is nil when
// the service did not return one (binary files, oversized diffs).
type CommitFile struct {
	Filename string
	Patch    *string
}

// CommitDetail is the full per-commit record fetched individually for each
// commit summary. AuthorLogin is the linked profile handle (empty when the
// commit is not linked to an account); AuthorName is the raw name recorded in
// the commit metadata.
type CommitDetail struct {
	SHA         string
	Message     string
	AuthorLogin string
	AuthorName  string
	Files       []CommitFile
	Stats       *CommitStats
}

// UserRepo is one repository owned by a user, used to infer technologies
// from the user's highest-starred project.
type UserRepo struct {
	Name     string
	Stars    int
	Language string
}

// Contributor is one entry of the ranked contributor list.
type Contributor struct {
	Login         string
	Contributions int
}

// UserProfile is the boundary record for a user lookup. Name and Bio are
// empty strings when the profile does not carry them.
type UserProfile struct {
	Login string
	Name  string
	Bio   string
}
