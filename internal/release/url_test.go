package release

import (
	"testing"

	"github.com/open-edge-platform/node-release-info/internal/platform"
)

func TestNewURLFormatter(t *testing.T) {
	u := NewURLFormatter()
	if u.Protocol != "https:" || u.Host != "nodejs.org" || u.PathPrefix != "/download/release" {
		t.Fatalf("unexpected defaults %+v", u)
	}
}

func TestURLFormatter(t *testing.T) {
	u := NewURLFormatter()

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"manifest path", u.ManifestPath("1.0.0"), "/download/release/v1.0.0/SHASUMS256.txt"},
		{"manifest url", u.ManifestURL("1.0.0"), "https://nodejs.org/download/release/v1.0.0/SHASUMS256.txt"},
		{"signature url", u.SignatureURL("1.0.0"), "https://nodejs.org/download/release/v1.0.0/SHASUMS256.txt.sig"},
		{"artifact path", u.ArtifactPath("1.0.0", "fake-filename"), "/download/release/v1.0.0/fake-filename"},
		{"artifact url", u.ArtifactURL("1.0.0", "fake-filename"), "https://nodejs.org/download/release/v1.0.0/fake-filename"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %q, want %q", tt.name, tt.got, tt.want)
		}
	}

	local := URLFormatter{Protocol: "http:", Host: "127.0.0.1:8080", PathPrefix: "/dist"}
	if got := local.ManifestURL("20.6.1"); got != "http://127.0.0.1:8080/dist/v20.6.1/SHASUMS256.txt" {
		t.Errorf("unexpected custom manifest url %q", got)
	}
}

func TestArtifactFilename(t *testing.T) {
	tests := []struct {
		os     platform.OS
		arch   platform.Arch
		format platform.Format
		want   string
	}{
		{platform.Darwin, platform.X64, platform.Zip, "node-v1.0.0-darwin-x64.zip"},
		{platform.Linux, platform.X64, platform.TarGz, "node-v1.0.0-linux-x64.tar.gz"},
		{platform.Windows, platform.X64, platform.Msi, "node-v1.0.0-x64.msi"},
		// installers never carry an OS segment
		{platform.Linux, platform.ARM64, platform.Msi, "node-v1.0.0-arm64.msi"},
		{platform.Windows, platform.X86, platform.SevenZip, "node-v1.0.0-win-x86.7z"},
	}
	for _, tt := range tests {
		if got := ArtifactFilename("node", "1.0.0", tt.os, tt.arch, tt.format); got != tt.want {
			t.Errorf("ArtifactFilename = %q, want %q", got, tt.want)
		}
	}
}
