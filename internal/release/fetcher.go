package release

import (
	"context"
	"net/http"
)

// TextFetcher performs a GET request and returns the status code and body.
// Only transport-level failures (DNS, connection, TLS) are errors; HTTP error
// statuses come back as a status code.
type TextFetcher interface {
	FetchText(ctx context.Context, url string) (status int, body string, err error)
}

// ManifestFetcher retrieves SHASUMS256.txt manifests from a release server.
type ManifestFetcher struct {
	client TextFetcher
	urls   URLFormatter
}

func NewManifestFetcher(client TextFetcher, urls URLFormatter) *ManifestFetcher {
	return &ManifestFetcher{client: client, urls: urls}
}

// Fetch returns the manifest body for an already validated version.
func (m *ManifestFetcher) Fetch(ctx context.Context, version string) (string, error) {
	return m.get(ctx, version, m.urls.ManifestURL(version))
}

// FetchSignature returns the detached OpenPGP signature of the manifest.
func (m *ManifestFetcher) FetchSignature(ctx context.Context, version string) (string, error) {
	return m.get(ctx, version, m.urls.SignatureURL(version))
}

func (m *ManifestFetcher) get(ctx context.Context, version, url string) (string, error) {
	status, body, err := m.client.FetchText(ctx, url)
	if err != nil {
		return "", &TransportError{URL: url, Err: err}
	}
	// manifests are namespaced by version, so any failure status means the
	// version is not published
	if status >= http.StatusBadRequest {
		return "", &UnrecognizedVersionError{Version: version}
	}
	return body, nil
}
