// internal/errors/errors.go
package errors

import "fmt"

// ErrInvalidProfileURL is returned when a company's website URL cannot be
// parsed or carries no path segment to resolve an organization from.
type ErrInvalidProfileURL struct {
	URL string
}

func (e *ErrInvalidProfileURL) Error() string {
	return fmt.Sprintf("invalid profile URL: %q, expected 'https://host/<org>'", e.URL)
}

// ErrCompanyNotFound is returned when no company record exists for the id.
type ErrCompanyNotFound struct {
	ID int64
}

func (e *ErrCompanyNotFound) Error() string {
	return fmt.Sprintf("company %d not found", e.ID)
}

// ErrOrgNotFound is returned when the repository service reports no such
// organization.
type ErrOrgNotFound struct {
	Org string
}

func (e *ErrOrgNotFound) Error() string {
	return fmt.Sprintf("organization %q not found", e.Org)
}
