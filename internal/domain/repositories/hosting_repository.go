package repositories

import (
	"context"

	"github.com/rios0rios0/dockerscanner/internal/domain/entities"
)

// HostingRepository abstracts a source-control hosting service (GitHub, GitLab, etc.)
// with the read-only capabilities the scanner needs.
type HostingRepository interface {
	// Name returns the provider identifier (e.g. "github").
	Name() string

	// Host returns the repository URL host this instance serves (e.g. "github.com").
	Host() string

	// CommitExists probes whether the commit exists in the repository.
	CommitExists(ctx context.Context, ref entities.RepositoryRef) (bool, error)

	// ListTree returns the recursive tree listing at the commit.
	ListTree(ctx context.Context, ref entities.RepositoryRef) ([]entities.TreeEntry, error)

	// GetFileContent fetches a file at the commit, as returned by the API.
	GetFileContent(ctx context.Context, ref entities.RepositoryRef, path string) (entities.FileContent, error)
}
