package entities

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

const gitSuffix = ".git"

// ErrInvalidRepositoryURL is returned when a repository URL does not have the
// "<scheme>://<host>/<owner>/<repo>.git" shape.
var ErrInvalidRepositoryURL = errors.New("invalid repository URL")

// RepositoryRef pins a hosted repository to a single commit.
type RepositoryRef struct {
	URL    string // Repository URL exactly as it appeared in the input
	Host   string // Lower-cased host, e.g. "github.com"
	Owner  string // Owner or namespace; nested GitLab groups keep their slashes
	Name   string // Repository name without the ".git" suffix
	Commit string // Commit reference to scan
}

// ParseRepositoryURL splits a clone URL into host, owner and repository name.
func ParseRepositoryURL(rawURL, commit string) (RepositoryRef, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return RepositoryRef{}, fmt.Errorf("%w %q: %w", ErrInvalidRepositoryURL, rawURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return RepositoryRef{}, fmt.Errorf("%w %q: scheme must be http or https", ErrInvalidRepositoryURL, rawURL)
	}
	if parsed.Host == "" {
		return RepositoryRef{}, fmt.Errorf("%w %q: missing host", ErrInvalidRepositoryURL, rawURL)
	}
	if parsed.RawQuery != "" || parsed.Fragment != "" {
		return RepositoryRef{}, fmt.Errorf("%w %q: unexpected query or fragment", ErrInvalidRepositoryURL, rawURL)
	}

	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if len(segments) < 2 { //nolint:mnd // owner/repo
		return RepositoryRef{}, fmt.Errorf("%w %q: expected <owner>/<repo>%s", ErrInvalidRepositoryURL, rawURL, gitSuffix)
	}
	for _, segment := range segments {
		if segment == "" {
			return RepositoryRef{}, fmt.Errorf("%w %q: empty path segment", ErrInvalidRepositoryURL, rawURL)
		}
	}

	last := segments[len(segments)-1]
	name := strings.TrimSuffix(last, gitSuffix)
	if name == last || name == "" {
		return RepositoryRef{}, fmt.Errorf("%w %q: expected <owner>/<repo>%s", ErrInvalidRepositoryURL, rawURL, gitSuffix)
	}

	return RepositoryRef{
		URL:    rawURL,
		Host:   strings.ToLower(parsed.Host),
		Owner:  strings.Join(segments[:len(segments)-1], "/"),
		Name:   name,
		Commit: commit,
	}, nil
}

// FullName returns "<owner>/<repo>", the identifier used in API paths.
func (r RepositoryRef) FullName() string {
	return r.Owner + "/" + r.Name
}

// Key returns the report key "<repo_url>:<commit>".
func (r RepositoryRef) Key() string {
	return r.URL + ":" + r.Commit
}
