// Package platform holds the closed classifications used to describe a
// release artifact: operating system, CPU architecture and archive format.
//
// Every classification has a canonical token, which is the exact string used
// inside release manifest filenames, and a set of aliases accepted only when
// interpreting caller input. FromCanonical lookups are strict; FromAlias
// lookups are lenient.
package platform

import (
	"fmt"
	"runtime"
	"strings"
)

// OS is the operating system an artifact targets. The zero value is Linux.
type OS int

const (
	Linux OS = iota
	Darwin
	Windows
	AIX
)

var osTable = []struct {
	os      OS
	token   string
	aliases []string
}{
	{Linux, "linux", nil},
	{Darwin, "darwin", []string{"macos", "mac", "osx"}},
	{Windows, "win", []string{"windows"}},
	{AIX, "aix", nil},
}

// AllOS lists every known operating system in table order.
func AllOS() []OS {
	out := make([]OS, 0, len(osTable))
	for _, e := range osTable {
		out = append(out, e.os)
	}
	return out
}

// String returns the canonical manifest token, e.g. "win" for Windows.
func (o OS) String() string {
	for _, e := range osTable {
		if e.os == o {
			return e.token
		}
	}
	return fmt.Sprintf("OS(%d)", int(o))
}

// OSFromCanonical matches only exact canonical tokens.
func OSFromCanonical(s string) (OS, bool) {
	for _, e := range osTable {
		if e.token == s {
			return e.os, true
		}
	}
	return Linux, false
}

// OSFromAlias accepts canonical tokens and known synonyms, ignoring case and
// surrounding whitespace.
func OSFromAlias(s string) (OS, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, e := range osTable {
		if e.token == s {
			return e.os, true
		}
		for _, a := range e.aliases {
			if a == s {
				return e.os, true
			}
		}
	}
	return Linux, false
}

// HostOS classifies the operating system this binary runs on.
func HostOS() (OS, bool) {
	return OSFromAlias(runtime.GOOS)
}

// MarshalText implements encoding.TextMarshaler.
func (o OS) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using alias lookup.
func (o *OS) UnmarshalText(text []byte) error {
	v, ok := OSFromAlias(string(text))
	if !ok {
		return fmt.Errorf("unrecognized os %q", string(text))
	}
	*o = v
	return nil
}
