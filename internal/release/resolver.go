// Package release resolves downloadable release artifacts for a runtime
// version from the SHASUMS256.txt manifest published by its release server.
package release

import (
	"context"
	"strings"

	"github.com/ProtonMail/go-crypto/openpgp"
	"go.uber.org/zap"

	"github.com/open-edge-platform/node-release-info/internal/utils/logger"
)

// Resolver answers single-configuration (Fetch) and all-configuration
// (FetchAll) queries. It holds no mutable state and is safe for concurrent
// use; every call fetches the manifest afresh.
type Resolver struct {
	manifests *ManifestFetcher
	urls      URLFormatter
	product   string
	keyring   openpgp.KeyRing
	log       *zap.SugaredLogger
}

type Option func(*Resolver)

// WithURLFormatter points the resolver at a different release server.
func WithURLFormatter(urls URLFormatter) Option {
	return func(r *Resolver) { r.urls = urls }
}

// WithProduct changes the filename product prefix ("node").
func WithProduct(product string) Option {
	return func(r *Resolver) { r.product = product }
}

// WithKeyring enables detached signature verification of every manifest.
func WithKeyring(keyring openpgp.KeyRing) Option {
	return func(r *Resolver) { r.keyring = keyring }
}

func WithLogger(log *zap.SugaredLogger) Option {
	return func(r *Resolver) { r.log = log }
}

func NewResolver(client TextFetcher, opts ...Option) *Resolver {
	r := &Resolver{
		urls:    NewURLFormatter(),
		product: DefaultProduct,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.log == nil {
		r.log = logger.Logger()
	}
	r.manifests = NewManifestFetcher(client, r.urls)
	return r
}

// URLs returns the formatter the resolver builds URLs with.
func (r *Resolver) URLs() URLFormatter {
	return r.urls
}

// Filename is the expected artifact filename for a query whose version is
// already canonical.
func (r *Resolver) Filename(q Query) string {
	return ArtifactFilename(r.product, q.Version, q.OS, q.Arch, q.Format)
}

// Fetch resolves the checksum and URL of the artifact selected by q.
func (r *Resolver) Fetch(ctx context.Context, q Query) (*Artifact, error) {
	version, err := ValidateVersion(q.Version)
	if err != nil {
		return nil, err
	}
	q.Version = version
	filename := r.Filename(q)

	manifest, err := r.manifest(ctx, version)
	if err != nil {
		return nil, err
	}

	for _, line := range strings.Split(manifest, "\n") {
		entry, ok := SplitEntry(line)
		if !ok || entry.Filename != filename {
			continue
		}
		r.log.Debugf("matched %s (sha256 %s)", filename, entry.SHA256)
		return &Artifact{
			OS:       q.OS,
			Arch:     q.Arch,
			Format:   q.Format,
			Version:  version,
			Filename: filename,
			SHA256:   entry.SHA256,
			URL:      r.urls.ArtifactURL(version, filename),
		}, nil
	}

	return nil, &UnrecognizedConfigurationError{Filename: filename}
}

// FetchAll resolves every artifact published for version, in manifest order.
func (r *Resolver) FetchAll(ctx context.Context, version string) ([]Artifact, error) {
	version, err := ValidateVersion(version)
	if err != nil {
		return nil, err
	}

	manifest, err := r.manifest(ctx, version)
	if err != nil {
		return nil, err
	}

	specs := ParseManifest(r.product, version, manifest)
	if len(specs) == 0 {
		return nil, &UnrecognizedVersionError{Version: version}
	}
	if skipped := countEntries(manifest) - len(specs); skipped > 0 {
		r.log.Debugf("skipped %d non-artifact manifest entries", skipped)
	}

	all := make([]Artifact, 0, len(specs))
	for _, spec := range specs {
		all = append(all, Artifact{
			OS:       spec.OS,
			Arch:     spec.Arch,
			Format:   spec.Format,
			Version:  version,
			Filename: spec.Filename,
			SHA256:   spec.SHA256,
			URL:      r.urls.ArtifactURL(version, spec.Filename),
		})
	}
	r.log.Infof("resolved %d artifacts for v%s", len(all), version)
	return all, nil
}

func (r *Resolver) manifest(ctx context.Context, version string) (string, error) {
	r.log.Debugf("fetching manifest %s", r.urls.ManifestURL(version))
	manifest, err := r.manifests.Fetch(ctx, version)
	if err != nil {
		return "", err
	}
	if r.keyring == nil {
		return manifest, nil
	}

	signature, err := r.manifests.FetchSignature(ctx, version)
	if err != nil {
		return "", &SignatureError{Version: version, Err: err}
	}
	signer, err := VerifyManifest(r.keyring, manifest, signature)
	if err != nil {
		return "", &SignatureError{Version: version, Err: err}
	}
	r.log.Infof("manifest for v%s signed by %s", version, signer)
	return manifest, nil
}

func countEntries(manifest string) int {
	n := 0
	for _, line := range strings.Split(manifest, "\n") {
		if _, ok := SplitEntry(line); ok {
			n++
		}
	}
	return n
}
