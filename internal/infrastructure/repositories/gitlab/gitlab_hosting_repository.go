package gitlab

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/sirupsen/logrus"
	gl "gitlab.com/gitlab-org/api/client-go"

	"github.com/rios0rios0/dockerscanner/internal/domain/entities"
	"github.com/rios0rios0/dockerscanner/internal/domain/repositories"
)

const (
	providerName = "gitlab"
	defaultHost  = "gitlab.com"
	perPage      = 100
)

var errClientNotInitialized = errors.New("gitlab client not initialized")

// GitLabHostingRepository implements repositories.HostingRepository for GitLab.
type GitLabHostingRepository struct {
	host   string
	client *gl.Client
	log    logrus.FieldLogger
}

// NewHostingRepository creates a GitLab provider from its settings.
func NewHostingRepository(settings entities.ProviderSettings, log logrus.FieldLogger) repositories.HostingRepository {
	host := settings.Host
	if host == "" {
		host = defaultHost
	}

	opts := []gl.ClientOptionFunc{
		gl.WithHTTPClient(cleanhttp.DefaultPooledClient()),
		gl.WithCustomRetryMax(0),
	}
	if settings.APIURL != "" {
		opts = append(opts, gl.WithBaseURL(settings.APIURL))
	}

	client, err := gl.NewClient(settings.Token, opts...)
	if err != nil {
		// Return a provider that will fail on use rather than panicking at construction
		log.Warnf("Failed to create GitLab client for %s: %v", host, err)
		return &GitLabHostingRepository{host: host, client: nil, log: log}
	}

	return &GitLabHostingRepository{
		host:   host,
		client: client,
		log:    log,
	}
}

func (p *GitLabHostingRepository) Name() string { return providerName }
func (p *GitLabHostingRepository) Host() string { return p.host }

// CommitExists looks the commit up through the commits API; 404 means it does not exist.
func (p *GitLabHostingRepository) CommitExists(ctx context.Context, ref entities.RepositoryRef) (bool, error) {
	if p.client == nil {
		return false, errClientNotInitialized
	}

	_, resp, err := p.client.Commits.GetCommit(ref.FullName(), ref.Commit, nil, gl.WithContext(ctx))
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return false, nil
		}
		return false, fmt.Errorf("failed to get commit %s of %s: %w", ref.Commit, ref.FullName(), err)
	}

	return true, nil
}

func (p *GitLabHostingRepository) ListTree(
	ctx context.Context,
	ref entities.RepositoryRef,
) ([]entities.TreeEntry, error) {
	if p.client == nil {
		return nil, errClientNotInitialized
	}

	var entries []entities.TreeEntry
	opts := &gl.ListTreeOptions{
		ListOptions: gl.ListOptions{PerPage: perPage},
		Ref:         gl.Ptr(ref.Commit),
		Recursive:   gl.Ptr(true),
	}

	for {
		nodes, resp, err := p.client.Repositories.ListTree(
			ref.FullName(),
			opts,
			gl.WithContext(ctx),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to list tree of %s at %s: %w", ref.FullName(), ref.Commit, err)
		}

		for _, node := range nodes {
			entries = append(entries, entities.TreeEntry{
				Path: node.Path,
				Type: node.Type,
				SHA:  node.ID,
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return entries, nil
}

func (p *GitLabHostingRepository) GetFileContent(
	ctx context.Context,
	ref entities.RepositoryRef,
	path string,
) (entities.FileContent, error) {
	if p.client == nil {
		return entities.FileContent{}, errClientNotInitialized
	}

	file, _, err := p.client.RepositoryFiles.GetFile(
		ref.FullName(), path,
		&gl.GetFileOptions{Ref: gl.Ptr(ref.Commit)},
		gl.WithContext(ctx),
	)
	if err != nil {
		return entities.FileContent{}, fmt.Errorf("failed to get file %q of %s: %w", path, ref.FullName(), err)
	}

	return entities.FileContent{
		Path:     path,
		Encoding: file.Encoding,
		Content:  file.Content,
	}, nil
}
