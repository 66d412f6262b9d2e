package platform

import (
	"fmt"
	"strings"
)

// Format is the archive or installer format of an artifact. The canonical
// token is the file extension; "tar.gz" is a single token. The zero value is
// TarGz.
type Format int

const (
	TarGz Format = iota
	TarXz
	Zip
	Msi
	SevenZip
)

var formatTable = []struct {
	format  Format
	token   string
	aliases []string
}{
	{TarGz, "tar.gz", []string{"tgz"}},
	{TarXz, "tar.xz", []string{"txz"}},
	{Zip, "zip", nil},
	{Msi, "msi", nil},
	{SevenZip, "7z", nil},
}

// AllFormats lists every known format in table order.
func AllFormats() []Format {
	out := make([]Format, 0, len(formatTable))
	for _, e := range formatTable {
		out = append(out, e.format)
	}
	return out
}

func (f Format) String() string {
	for _, e := range formatTable {
		if e.format == f {
			return e.token
		}
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// FormatFromCanonical matches only exact canonical tokens.
func FormatFromCanonical(s string) (Format, bool) {
	for _, e := range formatTable {
		if e.token == s {
			return e.format, true
		}
	}
	return TarGz, false
}

// FormatFromAlias accepts canonical tokens, synonyms and a leading dot
// (".zip").
func FormatFromAlias(s string) (Format, bool) {
	s = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), ".")
	for _, e := range formatTable {
		if e.token == s {
			return e.format, true
		}
		for _, a := range e.aliases {
			if a == s {
				return e.format, true
			}
		}
	}
	return TarGz, false
}

// DefaultFormatFor is the format a host of the given OS would normally
// install from.
func DefaultFormatFor(o OS) Format {
	if o == Windows {
		return Zip
	}
	return TarGz
}

func (f Format) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

func (f *Format) UnmarshalText(text []byte) error {
	v, ok := FormatFromAlias(string(text))
	if !ok {
		return fmt.Errorf("unrecognized format %q", string(text))
	}
	*f = v
	return nil
}
