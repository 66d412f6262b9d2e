package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/open-edge-platform/node-release-info/internal/platform"
	"github.com/open-edge-platform/node-release-info/internal/release"
)

// enumValue adapts a platform enum to pflag.Value. Set accepts aliases.
type enumValue struct {
	typ string
	get func() string
	set func(string) error
}

func (e *enumValue) String() string     { return e.get() }
func (e *enumValue) Set(s string) error { return e.set(s) }
func (e *enumValue) Type() string       { return e.typ }

func osValue(p *platform.OS) pflag.Value {
	return &enumValue{
		typ: "os",
		get: func() string { return p.String() },
		set: func(s string) error { return p.UnmarshalText([]byte(s)) },
	}
}

func archValue(p *platform.Arch) pflag.Value {
	return &enumValue{
		typ: "arch",
		get: func() string { return p.String() },
		set: func(s string) error { return p.UnmarshalText([]byte(s)) },
	}
}

func formatValue(p *platform.Format) pflag.Value {
	return &enumValue{
		typ: "format",
		get: func() string { return p.String() },
		set: func(s string) error { return p.UnmarshalText([]byte(s)) },
	}
}

// queryFlags selects a single artifact on the command line.
type queryFlags struct {
	os           platform.OS
	arch         platform.Arch
	format       platform.Format
	hostPlatform bool
}

func (q *queryFlags) register(cmd *cobra.Command) {
	cmd.Flags().Var(osValue(&q.os), "os", "Operating system: linux, darwin, win, aix")
	cmd.Flags().Var(archValue(&q.arch), "arch", "Architecture: x64, x86, arm64, armv7l, ppc64, ppc64le, s390x")
	cmd.Flags().Var(formatValue(&q.format), "format", "Artifact format: tar.gz, tar.xz, zip, msi, 7z")
	cmd.Flags().BoolVar(&q.hostPlatform, "host-platform", false,
		"Start from the platform this command runs on; --os/--arch/--format still override")
}

// query builds the release query; explicitly set flags override the host
// platform when --host-platform is given.
func (q *queryFlags) query(cmd *cobra.Command, version string) (release.Query, error) {
	out := release.Query{Version: version, OS: q.os, Arch: q.arch, Format: q.format}
	if !q.hostPlatform {
		return out, nil
	}

	host, err := release.HostQuery(version)
	if err != nil {
		return release.Query{}, fmt.Errorf("--host-platform: %w", err)
	}
	if cmd.Flags().Changed("os") {
		host.OS = q.os
	}
	if cmd.Flags().Changed("arch") {
		host.Arch = q.arch
	}
	if cmd.Flags().Changed("format") {
		host.Format = q.format
	}
	return host, nil
}
