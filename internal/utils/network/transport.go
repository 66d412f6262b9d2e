package network

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// HTTPTransport issues plain GET requests against a release server.
type HTTPTransport struct {
	Client    *http.Client
	UserAgent string
}

// NewHTTPTransport wraps client, falling back to NewSecureHTTPClient.
func NewHTTPTransport(client *http.Client) *HTTPTransport {
	if client == nil {
		client = NewSecureHTTPClient()
	}
	return &HTTPTransport{Client: client, UserAgent: "node-release-info"}
}

// FetchText returns the status code and full body of a GET request. HTTP
// error statuses are not errors here; only transport failures are.
func (t *HTTPTransport) FetchText(ctx context.Context, url string) (int, string, error) {
	resp, err := t.get(ctx, url)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, "", fmt.Errorf("reading response body: %w", err)
	}
	return resp.StatusCode, string(body), nil
}

// Download streams the body of url into w and returns the number of bytes
// written. Any status other than 200 is an error.
func (t *HTTPTransport) Download(ctx context.Context, url string, w io.Writer) (int64, error) {
	resp, err := t.get(ctx, url)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("bad status: %s", resp.Status)
	}
	return io.Copy(w, resp.Body)
}

func (t *HTTPTransport) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	t.decorate(req)
	return t.Client.Do(req)
}

func (t *HTTPTransport) decorate(req *http.Request) {
	if t.UserAgent != "" {
		req.Header.Set("User-Agent", t.UserAgent)
	}
}
