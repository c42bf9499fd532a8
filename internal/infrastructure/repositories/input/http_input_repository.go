package input

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
)

// ErrUnexpectedStatus is returned when the repository list is served with a non-2xx status.
var ErrUnexpectedStatus = errors.New("unexpected HTTP status")

// HTTPInputRepository downloads the repository list over HTTP.
type HTTPInputRepository struct {
	httpClient *http.Client
}

// NewHTTPInputRepository creates an input repository backed by a non-shared HTTP client.
func NewHTTPInputRepository() *HTTPInputRepository {
	return &HTTPInputRepository{httpClient: cleanhttp.DefaultClient()}
}

// FetchLines downloads url within timeout and splits the body into lines.
// Line endings ("\n" or "\r\n") are stripped; empty lines are kept.
func (r *HTTPInputRepository) FetchLines(ctx context.Context, url string, timeout time.Duration) ([]string, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request for %s: %w", url, err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP error for %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w %s for %s", ErrUnexpectedStatus, resp.Status, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body for %s: %w", url, err)
	}

	return splitLines(string(body)), nil
}

func splitLines(body string) []string {
	body = strings.TrimSuffix(body, "\n")
	if body == "" {
		return []string{}
	}

	lines := strings.Split(body, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
