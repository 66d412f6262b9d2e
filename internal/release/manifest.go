package release

import (
	"strings"
	"unicode"

	"github.com/open-edge-platform/node-release-info/internal/platform"
)

// ManifestEntry is one "<sha256> <filename>" line of a manifest.
type ManifestEntry struct {
	SHA256   string
	Filename string
}

// ParsedSpec is a manifest entry whose filename decomposed into a known
// os/arch/format combination.
type ParsedSpec struct {
	OS       platform.OS
	Arch     platform.Arch
	Format   platform.Format
	SHA256   string
	Filename string
}

// SplitEntry splits a manifest line on its first whitespace run.
func SplitEntry(line string) (ManifestEntry, bool) {
	line = strings.TrimSpace(line)
	i := strings.IndexFunc(line, unicode.IsSpace)
	if i < 0 {
		return ManifestEntry{}, false
	}
	e := ManifestEntry{
		SHA256:   line[:i],
		Filename: strings.TrimSpace(line[i:]),
	}
	if e.SHA256 == "" || e.Filename == "" {
		return ManifestEntry{}, false
	}
	return e, true
}

// ParseLine decomposes one manifest line for the given product and version.
// Lines that are not release artifacts (headers, source tarballs, bare
// binaries, other versions) are rejected with false.
func ParseLine(product, version, line string) (ParsedSpec, bool) {
	entry, ok := SplitEntry(line)
	if !ok {
		return ParsedSpec{}, false
	}
	filename := entry.Filename

	if !hasVersionPrefix(filename, product+"-v"+version) {
		return ParsedSpec{}, false
	}

	parts := strings.Split(filename, "-")
	last := parts[len(parts)-1]

	var osToken string
	if strings.HasSuffix(last, "."+platform.Msi.String()) {
		osToken = platform.Windows.String()
	} else {
		// product, v{version}, os, arch.ext
		if len(parts) < 4 {
			return ParsedSpec{}, false
		}
		osToken = parts[len(parts)-2]
	}

	archToken, extToken, found := strings.Cut(last, ".")
	if !found {
		return ParsedSpec{}, false
	}

	os, ok := platform.OSFromCanonical(osToken)
	if !ok {
		return ParsedSpec{}, false
	}
	arch, ok := platform.ArchFromCanonical(archToken)
	if !ok {
		return ParsedSpec{}, false
	}
	format, ok := platform.FormatFromCanonical(extToken)
	if !ok {
		return ParsedSpec{}, false
	}

	return ParsedSpec{
		OS:       os,
		Arch:     arch,
		Format:   format,
		SHA256:   entry.SHA256,
		Filename: filename,
	}, true
}

// ParseManifest runs ParseLine over every line of text, keeping manifest
// order. The result is empty, not an error, when nothing decomposes.
func ParseManifest(product, version, text string) []ParsedSpec {
	var all []ParsedSpec
	for _, line := range strings.Split(text, "\n") {
		if spec, ok := ParseLine(product, version, line); ok {
			all = append(all, spec)
		}
	}
	return all
}

// hasVersionPrefix requires the prefix to end at a '-' or '.' so that
// "node-v20.6.1" does not match "node-v20.6.10-linux-x64.tar.gz".
func hasVersionPrefix(filename, prefix string) bool {
	if !strings.HasPrefix(filename, prefix) || len(filename) == len(prefix) {
		return false
	}
	next := filename[len(prefix)]
	return next == '-' || next == '.'
}
