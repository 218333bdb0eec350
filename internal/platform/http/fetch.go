package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// maxBodyBytes caps upstream payloads; five years of daily bars is well under this.
const maxBodyBytes = 8 << 20

// APIError is returned for a non-2xx upstream response.
type APIError struct {
	Provider   string
	StatusCode int
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s http %d (%s)", e.Provider, e.StatusCode, e.Endpoint)
}

// GetBody performs a GET and returns the response body.
// Status codes >= 400 yield *APIError; the endpoint recorded is the path only so
// query-string credentials never reach logs.
func GetBody(ctx context.Context, client *http.Client, provider, rawURL string, header http.Header) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", provider, err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: request %s: %w", provider, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, &APIError{Provider: provider, StatusCode: resp.StatusCode, Endpoint: req.URL.Path}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%s: read body: %w", provider, err)
	}
	return body, nil
}
