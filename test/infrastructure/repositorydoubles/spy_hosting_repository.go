//go:build integration || unit || test

// Package repositorydoubles provides test doubles (spies, stubs, dummies) for
// repository interfaces. These are hand-crafted implementations, no mock frameworks.
package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"fmt"

	"github.com/rios0rios0/dockerscanner/internal/domain/entities"
	"github.com/rios0rios0/dockerscanner/internal/domain/repositories"
)

// SpyHostingRepository implements repositories.HostingRepository as a configurable spy.
type SpyHostingRepository struct {
	// --- identity ---
	ProviderName string
	ProviderHost string

	// --- CommitExists ---
	ExistingCommits map[string]bool // commit -> exists
	CommitErr       error
	ProbedCommits   []string

	// --- ListTree ---
	Trees       map[string][]entities.TreeEntry // "<owner>/<repo>" -> entries
	ListTreeErr error
	ListedRefs  []entities.RepositoryRef

	// --- GetFileContent ---
	FileContents   map[string]entities.FileContent // path -> content
	FileContentErr error
	FetchedPaths   []string
}

var _ repositories.HostingRepository = (*SpyHostingRepository)(nil)

func (p *SpyHostingRepository) Name() string { return p.ProviderName }
func (p *SpyHostingRepository) Host() string { return p.ProviderHost }

func (p *SpyHostingRepository) CommitExists(
	_ context.Context, ref entities.RepositoryRef,
) (bool, error) {
	p.ProbedCommits = append(p.ProbedCommits, ref.Commit)
	if p.CommitErr != nil {
		return false, p.CommitErr
	}
	return p.ExistingCommits[ref.Commit], nil
}

func (p *SpyHostingRepository) ListTree(
	_ context.Context, ref entities.RepositoryRef,
) ([]entities.TreeEntry, error) {
	p.ListedRefs = append(p.ListedRefs, ref)
	if p.ListTreeErr != nil {
		return nil, p.ListTreeErr
	}
	return p.Trees[ref.FullName()], nil
}

func (p *SpyHostingRepository) GetFileContent(
	_ context.Context, _ entities.RepositoryRef, path string,
) (entities.FileContent, error) {
	p.FetchedPaths = append(p.FetchedPaths, path)
	if p.FileContentErr != nil {
		return entities.FileContent{}, p.FileContentErr
	}
	if content, ok := p.FileContents[path]; ok {
		return content, nil
	}
	return entities.FileContent{}, fmt.Errorf("file not found: %s", path)
}
