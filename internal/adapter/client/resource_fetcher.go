package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"snowday/internal/domain/entity"
)

// HTTPResourceFetcher resolves resource paths against a base URL, like a
// relative fetch from the page would.
type HTTPResourceFetcher struct {
	base       *url.URL
	httpClient *http.Client
}

// NewHTTPResourceFetcher builds a fetcher; a nil client gets one with no
// timeout, so only the caller's context bounds a request.
func NewHTTPResourceFetcher(baseURL string, httpClient *http.Client) (*HTTPResourceFetcher, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	if !base.IsAbs() {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &HTTPResourceFetcher{base: base, httpClient: httpClient}, nil
}

func (f *HTTPResourceFetcher) FetchText(ctx context.Context, path string) (string, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return "", fmt.Errorf("invalid resource path %q: %w", path, err)
	}
	target := f.base.ResolveReference(ref)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return "", err
	}
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: %s %s", entity.ErrResourceStatus, target, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", target, err)
	}
	return string(body), nil
}
