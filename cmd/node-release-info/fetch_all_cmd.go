package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// createFetchAllCommand creates the fetch-all subcommand
func createFetchAllCommand() *cobra.Command {
	var output string

	fetchAllCmd := &cobra.Command{
		Use:   "fetch-all [flags] VERSION",
		Short: "List every artifact published for a release",
		Long: `Fetch-all parses the release manifest of VERSION and lists every
recognized artifact in manifest order. Headers, source tarballs, macOS
installers and per-platform loose files are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeFetchAll(cmd, args[0], output)
		},
	}

	fetchAllCmd.Flags().StringVarP(&output, "output", "o", "text", "Output format: text or json")
	return fetchAllCmd
}

// executeFetchAll handles the fetch-all command logic
func executeFetchAll(cmd *cobra.Command, version, output string) error {
	format, err := validateOutputFormat(output)
	if err != nil {
		return err
	}

	resolver, err := newResolver(newTransport())
	if err != nil {
		return err
	}

	artifacts, err := resolver.FetchAll(cmd.Context(), version)
	if err != nil {
		return fmt.Errorf("fetch-all failed: %w", err)
	}

	if format == "json" {
		return writeJSON(cmd, artifacts)
	}
	printArtifactTable(cmd.OutOrStdout(), artifacts)
	return nil
}
