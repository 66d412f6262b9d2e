package release

import (
	"fmt"

	"github.com/open-edge-platform/node-release-info/internal/platform"
)

const (
	DefaultProtocol   = "https:"
	DefaultHost       = "nodejs.org"
	DefaultPathPrefix = "/download/release"
	DefaultProduct    = "node"

	manifestName  = "SHASUMS256.txt"
	signatureName = "SHASUMS256.txt.sig"
)

// URLFormatter builds release server URLs from a protocol ("https:"), a host
// (optionally with port) and a path prefix.
type URLFormatter struct {
	Protocol   string `yaml:"protocol" json:"protocol"`
	Host       string `yaml:"host" json:"host"`
	PathPrefix string `yaml:"path_prefix" json:"path_prefix"`
}

// NewURLFormatter returns a formatter for the public release server.
func NewURLFormatter() URLFormatter {
	return URLFormatter{
		Protocol:   DefaultProtocol,
		Host:       DefaultHost,
		PathPrefix: DefaultPathPrefix,
	}
}

func (u URLFormatter) ManifestPath(version string) string {
	return u.ArtifactPath(version, manifestName)
}

func (u URLFormatter) ManifestURL(version string) string {
	return u.absolute(u.ManifestPath(version))
}

func (u URLFormatter) SignaturePath(version string) string {
	return u.ArtifactPath(version, signatureName)
}

func (u URLFormatter) SignatureURL(version string) string {
	return u.absolute(u.SignaturePath(version))
}

func (u URLFormatter) ArtifactPath(version, filename string) string {
	return fmt.Sprintf("%s/v%s/%s", u.PathPrefix, version, filename)
}

func (u URLFormatter) ArtifactURL(version, filename string) string {
	return u.absolute(u.ArtifactPath(version, filename))
}

func (u URLFormatter) absolute(path string) string {
	return fmt.Sprintf("%s//%s%s", u.Protocol, u.Host, path)
}

// ArtifactFilename renders the upstream naming scheme. Installer packages
// carry no OS segment: "node-v20.6.1-x64.msi" vs "node-v20.6.1-linux-x64.tar.gz".
func ArtifactFilename(product, version string, os platform.OS, arch platform.Arch, format platform.Format) string {
	if format == platform.Msi {
		return fmt.Sprintf("%s-v%s-%s.%s", product, version, arch, format)
	}
	return fmt.Sprintf("%s-v%s-%s-%s.%s", product, version, os, arch, format)
}
