package release

import (
	"fmt"

	"github.com/open-edge-platform/node-release-info/internal/platform"
)

// Query selects one artifact of a version. Unset classification fields are
// the platform zero values: linux, x64, tar.gz.
type Query struct {
	Version string
	OS      platform.OS
	Arch    platform.Arch
	Format  platform.Format
}

// HostQuery targets the platform this binary runs on, picking zip on
// Windows and tar.gz elsewhere.
func HostQuery(version string) (Query, error) {
	os, ok := platform.HostOS()
	if !ok {
		return Query{}, fmt.Errorf("host operating system has no release artifacts")
	}
	arch, ok := platform.HostArch()
	if !ok {
		return Query{}, fmt.Errorf("host architecture has no release artifacts")
	}
	return Query{
		Version: version,
		OS:      os,
		Arch:    arch,
		Format:  platform.DefaultFormatFor(os),
	}, nil
}

// Artifact is one resolved download.
type Artifact struct {
	OS       platform.OS     `json:"os"`
	Arch     platform.Arch   `json:"arch"`
	Format   platform.Format `json:"format"`
	Version  string          `json:"version"`
	Filename string          `json:"filename"`
	SHA256   string          `json:"sha256"`
	URL      string          `json:"url"`
}
