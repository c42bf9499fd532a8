//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"time"

	"github.com/rios0rios0/dockerscanner/internal/domain/repositories"
)

// StubInputRepository is a stub implementation of repositories.InputRepository.
type StubInputRepository struct {
	Lines    []string
	FetchErr error

	FetchCallCount int
	LastURL        string
	LastTimeout    time.Duration
}

var _ repositories.InputRepository = (*StubInputRepository)(nil)

func (s *StubInputRepository) FetchLines(
	_ context.Context, url string, timeout time.Duration,
) ([]string, error) {
	s.FetchCallCount++
	s.LastURL = url
	s.LastTimeout = timeout
	return s.Lines, s.FetchErr
}
