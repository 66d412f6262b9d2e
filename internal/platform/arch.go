package platform

import (
	"fmt"
	"runtime"
	"strings"
)

// Arch is the CPU architecture an artifact targets. The zero value is X64.
type Arch int

const (
	X64 Arch = iota
	X86
	ARM64
	ARMV7L
	PPC64
	PPC64LE
	S390X
)

// Aliases cover uname -m style names and Go's GOARCH values.
var archTable = []struct {
	arch    Arch
	token   string
	aliases []string
}{
	{X64, "x64", []string{"x86_64", "amd64"}},
	{X86, "x86", []string{"386", "i386", "i686"}},
	{ARM64, "arm64", []string{"aarch64"}},
	{ARMV7L, "armv7l", []string{"arm", "armv7"}},
	{PPC64, "ppc64", []string{"powerpc64"}},
	{PPC64LE, "ppc64le", []string{"powerpc64le"}},
	{S390X, "s390x", nil},
}

// AllArch lists every known architecture in table order.
func AllArch() []Arch {
	out := make([]Arch, 0, len(archTable))
	for _, e := range archTable {
		out = append(out, e.arch)
	}
	return out
}

func (a Arch) String() string {
	for _, e := range archTable {
		if e.arch == a {
			return e.token
		}
	}
	return fmt.Sprintf("Arch(%d)", int(a))
}

// ArchFromCanonical matches only exact canonical tokens.
func ArchFromCanonical(s string) (Arch, bool) {
	for _, e := range archTable {
		if e.token == s {
			return e.arch, true
		}
	}
	return X64, false
}

// ArchFromAlias accepts canonical tokens and known synonyms.
func ArchFromAlias(s string) (Arch, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, e := range archTable {
		if e.token == s {
			return e.arch, true
		}
		for _, a := range e.aliases {
			if a == s {
				return e.arch, true
			}
		}
	}
	return X64, false
}

// HostArch classifies the architecture this binary runs on.
func HostArch() (Arch, bool) {
	return ArchFromAlias(runtime.GOARCH)
}

func (a Arch) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Arch) UnmarshalText(text []byte) error {
	v, ok := ArchFromAlias(string(text))
	if !ok {
		return fmt.Errorf("unrecognized arch %q", string(text))
	}
	*a = v
	return nil
}
