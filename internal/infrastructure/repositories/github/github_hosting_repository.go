package github

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	gh "github.com/google/go-github/v66/github"
	"github.com/hashicorp/go-cleanhttp"
	"github.com/sirupsen/logrus"

	"github.com/rios0rios0/dockerscanner/internal/domain/entities"
	"github.com/rios0rios0/dockerscanner/internal/domain/repositories"
)

const (
	providerName = "github"
	defaultHost  = "github.com"
)

// GitHubHostingRepository implements repositories.HostingRepository for GitHub.
type GitHubHostingRepository struct {
	host       string
	webURL     string
	client     *gh.Client
	httpClient *http.Client
	log        logrus.FieldLogger
}

// NewHostingRepository creates a GitHub provider from its settings.
// An empty token means anonymous access.
func NewHostingRepository(settings entities.ProviderSettings, log logrus.FieldLogger) repositories.HostingRepository {
	host := settings.Host
	if host == "" {
		host = defaultHost
	}

	webURL := strings.TrimSuffix(settings.WebURL, "/")
	if webURL == "" {
		webURL = "https://" + host
	}

	httpClient := cleanhttp.DefaultPooledClient()
	client := gh.NewClient(httpClient)
	if settings.Token != "" {
		client = client.WithAuthToken(settings.Token)
	}
	if settings.APIURL != "" {
		baseURL, err := url.Parse(strings.TrimSuffix(settings.APIURL, "/") + "/")
		if err != nil {
			log.Warnf("Ignoring invalid api_url %q: %v", settings.APIURL, err)
		} else {
			client.BaseURL = baseURL
		}
	}

	return &GitHubHostingRepository{
		host:       host,
		webURL:     webURL,
		client:     client,
		httpClient: httpClient,
		log:        log,
	}
}

func (p *GitHubHostingRepository) Name() string { return providerName }
func (p *GitHubHostingRepository) Host() string { return p.host }

// CommitExists requests the commit page on the GitHub web front end, which does not
// count against the anonymous API rate limit. Only HTTP 200 means the commit exists.
func (p *GitHubHostingRepository) CommitExists(ctx context.Context, ref entities.RepositoryRef) (bool, error) {
	commitURL, err := url.JoinPath(p.webURL, ref.Owner, ref.Name, "commit", ref.Commit)
	if err != nil {
		return false, fmt.Errorf("failed to build commit URL for %s: %w", ref.FullName(), err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, commitURL, nil)
	if err != nil {
		return false, fmt.Errorf("creating request for %s: %w", commitURL, err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("HTTP error for %s: %w", commitURL, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	p.log.Debugf("Commit probe %s returned HTTP %d", commitURL, resp.StatusCode)
	return resp.StatusCode == http.StatusOK, nil
}

func (p *GitHubHostingRepository) ListTree(
	ctx context.Context,
	ref entities.RepositoryRef,
) ([]entities.TreeEntry, error) {
	tree, _, err := p.client.Git.GetTree(ctx, ref.Owner, ref.Name, ref.Commit, true)
	if err != nil {
		return nil, fmt.Errorf("failed to get tree of %s at %s: %w", ref.FullName(), ref.Commit, err)
	}

	if tree.GetTruncated() {
		p.log.Warnf("Tree of %s at %s is truncated, some Dockerfiles may be missing", ref.FullName(), ref.Commit)
	}

	entries := make([]entities.TreeEntry, 0, len(tree.Entries))
	for _, entry := range tree.Entries {
		entries = append(entries, entities.TreeEntry{
			Path: entry.GetPath(),
			Type: entry.GetType(),
			SHA:  entry.GetSHA(),
		})
	}

	return entries, nil
}

func (p *GitHubHostingRepository) GetFileContent(
	ctx context.Context,
	ref entities.RepositoryRef,
	path string,
) (entities.FileContent, error) {
	fileContent, _, _, err := p.client.Repositories.GetContents(
		ctx, ref.Owner, ref.Name, path,
		&gh.RepositoryContentGetOptions{Ref: ref.Commit},
	)
	if err != nil {
		return entities.FileContent{}, fmt.Errorf("failed to get file %q of %s: %w", path, ref.FullName(), err)
	}
	if fileContent == nil {
		return entities.FileContent{}, fmt.Errorf("path %q is a directory, not a file", path)
	}

	content := entities.FileContent{
		Path:     path,
		Encoding: fileContent.GetEncoding(),
	}
	if fileContent.Content != nil {
		content.Content = *fileContent.Content
	}
	return content, nil
}
