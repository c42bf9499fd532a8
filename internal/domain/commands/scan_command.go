package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/rios0rios0/dockerscanner/internal/domain/entities"
	"github.com/rios0rios0/dockerscanner/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/dockerscanner/internal/infrastructure/repositories"
)

const lineTokens = 2

// Scan is the interface for the scan command.
type Scan interface {
	Execute(ctx context.Context, settings *entities.Settings, opts ScanOptions) (*entities.Report, error)
}

// ScanOptions holds runtime options for a single scan.
type ScanOptions struct {
	InputURL  string // URL of the "<repository URL> <commit>" list
	Normalize bool   // Report fully qualified image references
}

// ScanCommand runs the pipeline for every input line, one at a time:
// validate line -> list tree -> fetch Dockerfiles -> extract FROM images.
type ScanCommand struct {
	providerRegistry *infraRepos.ProviderRegistry
	inputRepository  repositories.InputRepository
	log              logrus.FieldLogger
}

// NewScanCommand creates a new ScanCommand.
func NewScanCommand(
	providerRegistry *infraRepos.ProviderRegistry,
	inputRepository repositories.InputRepository,
	log logrus.FieldLogger,
) *ScanCommand {
	return &ScanCommand{
		providerRegistry: providerRegistry,
		inputRepository:  inputRepository,
		log:              log,
	}
}

// Execute builds the report for the lines served at opts.InputURL.
// Failing to fetch the list, a tree or a file aborts the whole scan;
// malformed lines and unknown commits are logged and skipped.
func (it *ScanCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts ScanOptions,
) (*entities.Report, error) {
	lines, err := it.inputRepository.FetchLines(ctx, opts.InputURL, settings.InputTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch repository list: %w", err)
	}
	it.log.Debugf("Fetched %d lines from %s", len(lines), opts.InputURL)

	providers, err := it.providerRegistry.ByHost(settings.Providers)
	if err != nil {
		return nil, err
	}

	report := entities.NewReport()
	for _, line := range lines {
		ref, provider, ok := it.validateLine(ctx, providers, line)
		if !ok {
			it.log.Warnf("Invalid repository URL and/or commit. Skipping line %q", line)
			continue
		}

		dockerfiles, scanErr := it.scanRepository(ctx, provider, ref, opts)
		if scanErr != nil {
			return nil, scanErr
		}
		report.Set(ref.Key(), dockerfiles)
	}

	it.log.Debugf("Scanned %d of %d lines", report.Len(), len(lines))
	return report, nil
}

// validateLine checks the "<repository URL> <commit>" shape, resolves the
// hosting provider and probes the commit.
func (it *ScanCommand) validateLine(
	ctx context.Context,
	providers map[string]repositories.HostingRepository,
	line string,
) (entities.RepositoryRef, repositories.HostingRepository, bool) {
	fields := strings.Fields(line)
	if len(fields) != lineTokens {
		it.log.Debugf("Expected %d tokens, got %d", lineTokens, len(fields))
		return entities.RepositoryRef{}, nil, false
	}

	ref, err := entities.ParseRepositoryURL(fields[0], fields[1])
	if err != nil {
		it.log.WithError(err).Debug("Cannot parse repository URL")
		return entities.RepositoryRef{}, nil, false
	}

	provider, found := providers[ref.Host]
	if !found {
		it.log.Debugf("No provider configured for host %q", ref.Host)
		return entities.RepositoryRef{}, nil, false
	}

	exists, err := provider.CommitExists(ctx, ref)
	if err != nil {
		it.log.WithError(err).Debugf("Commit probe failed for %s", ref.Key())
		return entities.RepositoryRef{}, nil, false
	}
	if !exists {
		it.log.Debugf("Commit %s not found in %s", ref.Commit, ref.FullName())
		return entities.RepositoryRef{}, nil, false
	}

	return ref, provider, true
}

// scanRepository extracts the base images of every Dockerfile in the tree.
func (it *ScanCommand) scanRepository(
	ctx context.Context,
	provider repositories.HostingRepository,
	ref entities.RepositoryRef,
	opts ScanOptions,
) (*entities.Dockerfiles, error) {
	tree, err := provider.ListTree(ctx, ref)
	if err != nil {
		return nil, err
	}

	dockerfiles := entities.NewDockerfiles()
	for _, entry := range tree {
		if !entities.IsDockerfile(entry) {
			continue
		}

		file, fetchErr := provider.GetFileContent(ctx, ref, entry.Path)
		if fetchErr != nil {
			return nil, fetchErr
		}

		text, decodeErr := file.Decode()
		if decodeErr != nil {
			return nil, decodeErr
		}

		var images []string
		if opts.Normalize {
			images = entities.NormalizeImages(entities.ExtractStages(text))
		} else {
			images = entities.ExtractBaseImages(text)
		}

		it.log.Debugf("[%s] %s: %d FROM instructions", ref.FullName(), entry.Path, len(images))
		dockerfiles.Add(entry.Path, images)
	}

	return dockerfiles, nil
}
