package ports

import (
	"context"
	"net/http"
)

// Fetcher performs outbound GET requests. Implementations own any pacing state;
// callers share one instance so the spacing holds across clients.
type Fetcher interface {
	// Fetch dispatches a GET for url and returns the raw response.
	// It does not inspect status codes and does not retry.
	Fetch(ctx context.Context, url string) (*http.Response, error)
}
