package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/open-edge-platform/node-release-info/internal/utils/logger"
)

// createFetchCommand creates the fetch subcommand
func createFetchCommand() *cobra.Command {
	var (
		q      queryFlags
		output string
	)

	fetchCmd := &cobra.Command{
		Use:   "fetch [flags] VERSION",
		Short: "Resolve the checksum and URL of one release artifact",
		Long: `Fetch looks up a single artifact of VERSION in the release manifest.
Without flags it selects the linux-x64 tar.gz archive. VERSION is a strict
semantic version without a leading "v", e.g. 20.6.1.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeFetch(cmd, args[0], &q, output)
		},
	}

	q.register(fetchCmd)
	fetchCmd.Flags().StringVarP(&output, "output", "o", "text", "Output format: text or json")
	return fetchCmd
}

// executeFetch handles the fetch command logic
func executeFetch(cmd *cobra.Command, version string, q *queryFlags, output string) error {
	log := logger.Logger()

	format, err := validateOutputFormat(output)
	if err != nil {
		return err
	}
	query, err := q.query(cmd, version)
	if err != nil {
		return err
	}

	resolver, err := newResolver(newTransport())
	if err != nil {
		return err
	}
	log.Debugf("resolving %s", resolver.Filename(query))

	artifact, err := resolver.Fetch(cmd.Context(), query)
	if err != nil {
		return fmt.Errorf("fetch failed: %w", err)
	}

	if format == "json" {
		return writeJSON(cmd, artifact)
	}
	printArtifact(cmd.OutOrStdout(), artifact)
	return nil
}
