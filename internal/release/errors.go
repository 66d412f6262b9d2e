package release

import "fmt"

// InvalidVersionError reports input that is not a semantic version.
type InvalidVersionError struct {
	Input string
}

func (e *InvalidVersionError) Error() string {
	return fmt.Sprintf("invalid version %q", e.Input)
}

// UnrecognizedVersionError reports a version the release server does not
// publish: the manifest request failed with a 4xx/5xx status or the manifest
// held no usable entries.
type UnrecognizedVersionError struct {
	Version string
}

func (e *UnrecognizedVersionError) Error() string {
	return fmt.Sprintf("unrecognized version %q", e.Version)
}

// UnrecognizedConfigurationError reports a published version that has no
// artifact for the requested os/arch/format.
type UnrecognizedConfigurationError struct {
	Filename string
}

func (e *UnrecognizedConfigurationError) Error() string {
	return fmt.Sprintf("unrecognized configuration %q", e.Filename)
}

// TransportError wraps a network failure unchanged.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// SignatureError reports a manifest whose detached signature could not be
// fetched or verified against the configured keyring.
type SignatureError struct {
	Version string
	Err     error
}

func (e *SignatureError) Error() string {
	return fmt.Sprintf("manifest signature for %q: %v", e.Version, e.Err)
}

func (e *SignatureError) Unwrap() error {
	return e.Err
}
