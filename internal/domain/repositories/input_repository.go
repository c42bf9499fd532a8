package repositories

import (
	"context"
	"time"
)

// InputRepository retrieves the list of "<repository URL> <commit>" lines.
type InputRepository interface {
	FetchLines(ctx context.Context, url string, timeout time.Duration) ([]string, error)
}
