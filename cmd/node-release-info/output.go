package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/open-edge-platform/node-release-info/internal/release"
)

func validateOutputFormat(format string) (string, error) {
	format = strings.ToLower(format)
	switch format {
	case "text", "json":
		return format, nil
	default:
		return "", fmt.Errorf("invalid --output %q (expected text|json)", format)
	}
}

func writeJSON(cmd *cobra.Command, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return nil
}

func printArtifact(w io.Writer, a *release.Artifact) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "version\t%s\n", a.Version)
	fmt.Fprintf(tw, "platform\t%s-%s\n", a.OS, a.Arch)
	fmt.Fprintf(tw, "format\t%s\n", a.Format)
	fmt.Fprintf(tw, "filename\t%s\n", a.Filename)
	fmt.Fprintf(tw, "sha256\t%s\n", a.SHA256)
	fmt.Fprintf(tw, "url\t%s\n", a.URL)
	tw.Flush()
}

func printArtifactTable(w io.Writer, artifacts []release.Artifact) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "OS\tARCH\tFORMAT\tSHA256\tURL")
	for _, a := range artifacts {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", a.OS, a.Arch, a.Format, a.SHA256, a.URL)
	}
	tw.Flush()
}
