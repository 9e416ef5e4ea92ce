// internal/pipeline/resolver.go
package pipeline

import (
	"net/url"
	"strings"

	custom_errors "github-outreach/internal/errors"
)

// ResolveOrg extracts the organization identifier from a company's profile
// URL: the first non-empty path segment. No network access.
func ResolveOrg(website string) (string, error) {
	u, err := url.Parse(website)
	if err != nil {
		return "", &custom_errors.ErrInvalidProfileURL{URL: website}
	}
	for _, seg := range strings.Split(u.Path, "/") {
		if seg != "" {
			return seg, nil
		}
	}
	return "", &custom_errors.ErrInvalidProfileURL{URL: website}
}
