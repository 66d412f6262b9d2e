package pkgfetcher

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/open-edge-platform/node-release-info/internal/platform"
	"github.com/open-edge-platform/node-release-info/internal/release"
	"github.com/open-edge-platform/node-release-info/internal/utils/network"
)

func artifactsFor(serverURL string, names ...string) []release.Artifact {
	var out []release.Artifact
	for _, name := range names {
		out = append(out, release.Artifact{
			OS:       platform.Linux,
			Arch:     platform.X64,
			Format:   platform.TarGz,
			Version:  "20.6.1",
			Filename: name,
			URL:      serverURL + "/v20.6.1/" + name,
		})
	}
	return out
}

func TestFetchArtifacts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "missing") {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("payload:" + filepath.Base(r.URL.Path)))
	}))
	defer server.Close()

	destDir := filepath.Join(t.TempDir(), "downloads")
	artifacts := artifactsFor(server.URL, "a.tar.gz", "missing.tar.gz", "b.tar.gz", "c.tar.gz")

	var progress bytes.Buffer
	results, err := FetchArtifacts(context.Background(), network.NewHTTPTransport(server.Client()), artifacts, destDir, Options{Workers: 3, Progress: &progress})
	if err == nil {
		t.Fatal("expected an error for the missing artifact")
	}
	if !strings.Contains(err.Error(), "missing.tar.gz") {
		t.Errorf("error should name the failed artifact: %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("expected 3 successful downloads, got %d", len(results))
	}
	for i, want := range []string{"a.tar.gz", "b.tar.gz", "c.tar.gz"} {
		if results[i].Artifact.Filename != want {
			t.Errorf("result %d = %s, want %s (input order)", i, results[i].Artifact.Filename, want)
		}
		data, err := os.ReadFile(results[i].Path)
		if err != nil {
			t.Fatalf("reading %s: %v", results[i].Path, err)
		}
		if string(data) != "payload:"+want || results[i].Bytes != int64(len(data)) {
			t.Errorf("unexpected content %q (%d bytes)", data, results[i].Bytes)
		}
	}

	if _, err := os.Stat(filepath.Join(destDir, "missing.tar.gz")); !os.IsNotExist(err) {
		t.Error("failed download must not leave a file behind")
	}
	if _, err := os.Stat(filepath.Join(destDir, "missing.tar.gz.part")); !os.IsNotExist(err) {
		t.Error("failed download must not leave a partial file behind")
	}
}

func TestFetchArtifactsEmpty(t *testing.T) {
	results, err := FetchArtifacts(context.Background(), network.NewHTTPTransport(nil), nil, t.TempDir(), Options{})
	if err != nil || len(results) != 0 {
		t.Fatalf("expected no results and no error, got %v %v", results, err)
	}
}

func TestFetchArtifactsCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("unreachable"))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := FetchArtifacts(ctx, network.NewHTTPTransport(server.Client()), artifactsFor(server.URL, "a.tar.gz", "b.tar.gz"), t.TempDir(), Options{Workers: 2})
	if err == nil {
		t.Fatal("expected cancellation errors")
	}
	if len(results) != 0 {
		t.Fatalf("expected no results, got %d", len(results))
	}
}
