package platform_test

import (
	"encoding/json"
	"testing"

	"github.com/open-edge-platform/node-release-info/internal/platform"
)

func TestOSCanonicalTokens(t *testing.T) {
	tests := []struct {
		os    platform.OS
		token string
	}{
		{platform.Linux, "linux"},
		{platform.Darwin, "darwin"},
		{platform.Windows, "win"},
		{platform.AIX, "aix"},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			if got := tt.os.String(); got != tt.token {
				t.Errorf("String() = %q, want %q", got, tt.token)
			}
			got, ok := platform.OSFromCanonical(tt.token)
			if !ok || got != tt.os {
				t.Errorf("OSFromCanonical(%q) = %v, %v", tt.token, got, ok)
			}
		})
	}
}

func TestOSFromCanonicalRejectsAliases(t *testing.T) {
	for _, in := range []string{"macos", "windows", "Linux", " linux", "NOPE!", ""} {
		if _, ok := platform.OSFromCanonical(in); ok {
			t.Errorf("OSFromCanonical(%q) matched, want no match", in)
		}
	}
}

func TestOSFromAlias(t *testing.T) {
	tests := []struct {
		in   string
		want platform.OS
	}{
		{"linux", platform.Linux},
		{"darwin", platform.Darwin},
		{"macos", platform.Darwin},
		{"MacOS", platform.Darwin},
		{"windows", platform.Windows},
		{"win", platform.Windows},
		{"aix", platform.AIX},
	}

	for _, tt := range tests {
		got, ok := platform.OSFromAlias(tt.in)
		if !ok || got != tt.want {
			t.Errorf("OSFromAlias(%q) = %v, %v; want %v", tt.in, got, ok, tt.want)
		}
	}

	if _, ok := platform.OSFromAlias("NOPE!"); ok {
		t.Error("OSFromAlias should not match unknown input")
	}
}

func TestArchCanonicalTokens(t *testing.T) {
	want := []string{"x64", "x86", "arm64", "armv7l", "ppc64", "ppc64le", "s390x"}
	all := platform.AllArch()
	if len(all) != len(want) {
		t.Fatalf("expected %d architectures, got %d", len(want), len(all))
	}
	for i, a := range all {
		if a.String() != want[i] {
			t.Errorf("arch %d: got %q, want %q", i, a.String(), want[i])
		}
		got, ok := platform.ArchFromCanonical(want[i])
		if !ok || got != a {
			t.Errorf("ArchFromCanonical(%q) = %v, %v", want[i], got, ok)
		}
	}
}

func TestArchFromAlias(t *testing.T) {
	tests := []struct {
		in   string
		want platform.Arch
	}{
		{"x86_64", platform.X64},
		{"amd64", platform.X64},
		{"386", platform.X86},
		{"aarch64", platform.ARM64},
		{"arm", platform.ARMV7L},
		{"powerpc64", platform.PPC64},
		{"ppc64le", platform.PPC64LE},
		{"s390x", platform.S390X},
	}

	for _, tt := range tests {
		got, ok := platform.ArchFromAlias(tt.in)
		if !ok || got != tt.want {
			t.Errorf("ArchFromAlias(%q) = %v, %v; want %v", tt.in, got, ok, tt.want)
		}
		if _, ok := platform.ArchFromCanonical(tt.in); ok && tt.in != tt.want.String() {
			t.Errorf("ArchFromCanonical(%q) should not accept an alias", tt.in)
		}
	}
}

func TestFormatTokens(t *testing.T) {
	tests := []struct {
		format platform.Format
		token  string
	}{
		{platform.TarGz, "tar.gz"},
		{platform.TarXz, "tar.xz"},
		{platform.Zip, "zip"},
		{platform.Msi, "msi"},
		{platform.SevenZip, "7z"},
	}

	for _, tt := range tests {
		if got := tt.format.String(); got != tt.token {
			t.Errorf("String() = %q, want %q", got, tt.token)
		}
		if got, ok := platform.FormatFromCanonical(tt.token); !ok || got != tt.format {
			t.Errorf("FormatFromCanonical(%q) = %v, %v", tt.token, got, ok)
		}
		if got, ok := platform.FormatFromAlias("." + tt.token); !ok || got != tt.format {
			t.Errorf("FormatFromAlias(%q) = %v, %v", "."+tt.token, got, ok)
		}
	}

	for _, in := range []string{"gz", "tar", "tgz", ".zip"} {
		if _, ok := platform.FormatFromCanonical(in); ok {
			t.Errorf("FormatFromCanonical(%q) matched, want no match", in)
		}
	}
}

func TestZeroValuesAreDefaults(t *testing.T) {
	var (
		o platform.OS
		a platform.Arch
		f platform.Format
	)
	if o != platform.Linux || a != platform.X64 || f != platform.TarGz {
		t.Fatalf("unexpected zero values: %v %v %v", o, a, f)
	}
}

func TestDefaultFormatFor(t *testing.T) {
	if platform.DefaultFormatFor(platform.Windows) != platform.Zip {
		t.Error("expected zip for windows")
	}
	if platform.DefaultFormatFor(platform.Darwin) != platform.TarGz {
		t.Error("expected tar.gz for darwin")
	}
}

func TestHostProbe(t *testing.T) {
	// CI runs on linux/darwin/windows with amd64 or arm64.
	if _, ok := platform.HostOS(); !ok {
		t.Skip("host OS has no release artifacts")
	}
	if _, ok := platform.HostArch(); !ok {
		t.Skip("host arch has no release artifacts")
	}
}

func TestTextRoundTrip(t *testing.T) {
	type record struct {
		OS     platform.OS     `json:"os"`
		Arch   platform.Arch   `json:"arch"`
		Format platform.Format `json:"format"`
	}

	b, err := json.Marshal(record{platform.Windows, platform.ARM64, platform.SevenZip})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"os":"win","arch":"arm64","format":"7z"}` {
		t.Fatalf("unexpected json %s", b)
	}

	var r record
	if err := json.Unmarshal([]byte(`{"os":"macos","arch":"aarch64","format":"tgz"}`), &r); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if r.OS != platform.Darwin || r.Arch != platform.ARM64 || r.Format != platform.TarGz {
		t.Fatalf("unexpected record %+v", r)
	}

	if err := json.Unmarshal([]byte(`{"os":"plan9"}`), &r); err == nil {
		t.Fatal("expected error for unknown os")
	}
}
