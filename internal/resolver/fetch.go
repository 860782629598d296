package resolver

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/lisc-lang/lisc/internal/errors"
)

// Fetcher retrieves source text for a resolved specifier.
type Fetcher interface {
	Fetch(ctx context.Context, resolved string) (string, error)
}

// LocalFetcher reads local relative/absolute paths straight off disk.
type LocalFetcher struct{}

func (LocalFetcher) Fetch(_ context.Context, resolved string) (string, error) {
	data, err := os.ReadFile(resolved)
	if err != nil {
		return "", errors.NewResolveError(resolved, err)
	}
	return string(data), nil
}

// RemoteFetcher fetches URL- and package-scheme specifiers over HTTP,
// retrying per spec.md §4.5's "exponential backoff, default three
// retries, server-5xx only" policy.
type RemoteFetcher struct {
	Client      *http.Client
	MaxRetries  int
	BaseBackoff time.Duration
	// PackageResolver, when non-nil, maps a package-prefixed specifier
	// (no URL scheme) to a fetchable URL. Left nil by default: package
	// resolution is host-specific and out of the compiler's scope.
	PackageResolver func(specifier string) (string, error)
}

// NewRemoteFetcher returns a RemoteFetcher with the spec's default
// retry policy: 3 retries, exponential backoff starting at 200ms.
func NewRemoteFetcher() *RemoteFetcher {
	return &RemoteFetcher{
		Client:      &http.Client{Timeout: 30 * time.Second},
		MaxRetries:  3,
		BaseBackoff: 200 * time.Millisecond,
	}
}

func (f *RemoteFetcher) Fetch(ctx context.Context, resolved string) (string, error) {
	url := resolved
	if Classify(resolved) == SchemePackage {
		if f.PackageResolver == nil {
			return "", errors.NewResolveError(resolved, fmt.Errorf("no package resolver configured"))
		}
		u, err := f.PackageResolver(resolved)
		if err != nil {
			return "", errors.NewResolveError(resolved, err)
		}
		url = u
	}

	var lastErr error
	for attempt := 0; attempt <= f.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := f.BaseBackoff * time.Duration(1<<uint(attempt-1))
			select {
			case <-ctx.Done():
				return "", errors.NewResolveError(resolved, ctx.Err())
			case <-time.After(backoff):
			}
		}
		body, retryable, err := f.attempt(ctx, url)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !retryable {
			break
		}
	}
	return "", errors.NewResolveError(resolved, lastErr)
}

func (f *RemoteFetcher) attempt(ctx context.Context, url string) (body string, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", false, err
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return "", false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return "", true, fmt.Errorf("http %d from %s", resp.StatusCode, url)
	}
	if resp.StatusCode >= 400 {
		return "", false, fmt.Errorf("http %d from %s", resp.StatusCode, url)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", false, err
	}
	return string(data), false, nil
}
