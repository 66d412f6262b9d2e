package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/open-edge-platform/node-release-info/internal/pkgfetcher"
	"github.com/open-edge-platform/node-release-info/internal/release"
	"github.com/open-edge-platform/node-release-info/internal/utils/config"
	"github.com/open-edge-platform/node-release-info/internal/utils/logger"
)

type downloadOptions struct {
	query   queryFlags
	all     bool
	dest    string
	workers int
	extract bool
	report  bool
}

// createDownloadCommand creates the download subcommand
func createDownloadCommand() *cobra.Command {
	var opts downloadOptions

	downloadCmd := &cobra.Command{
		Use:   "download [flags] VERSION",
		Short: "Download release artifacts",
		Long: `Download resolves one artifact (selected with --os/--arch/--format) or,
with --all, every artifact of VERSION and downloads them into the download
directory using a pool of workers. With --extract, tar.gz, tar.xz and zip
archives are unpacked next to the downloaded file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeDownload(cmd, args[0], &opts)
		},
	}

	opts.query.register(downloadCmd)
	downloadCmd.Flags().BoolVar(&opts.all, "all", false, "Download every artifact of the release")
	downloadCmd.Flags().StringVar(&opts.dest, "dest", "", "Download directory (overrides config download_dir)")
	downloadCmd.Flags().IntVar(&opts.workers, "workers", 0, "Concurrent downloads (overrides config workers)")
	downloadCmd.Flags().BoolVar(&opts.extract, "extract", false, "Unpack downloaded archives")
	downloadCmd.Flags().BoolVar(&opts.report, "report", false, "Write the downloaded URLs to a report file")
	downloadCmd.MarkFlagsMutuallyExclusive("all", "os")
	downloadCmd.MarkFlagsMutuallyExclusive("all", "arch")
	downloadCmd.MarkFlagsMutuallyExclusive("all", "format")
	downloadCmd.MarkFlagsMutuallyExclusive("all", "host-platform")

	return downloadCmd
}

// executeDownload handles the download command logic
func executeDownload(cmd *cobra.Command, version string, opts *downloadOptions) error {
	log := logger.Logger()
	helpers := config.NewConfigHelpers(config.GlConfig)

	transport := newTransport()
	resolver, err := newResolver(transport)
	if err != nil {
		return err
	}

	artifacts, err := resolveDownloads(cmd, resolver, version, opts)
	if err != nil {
		return err
	}

	destDir := opts.dest
	if destDir == "" {
		if destDir, err = helpers.CreateDownloadDir(); err != nil {
			return err
		}
	}
	workers := opts.workers
	if workers < 1 {
		workers = helpers.Workers()
	}

	log.Infof("downloading %d artifacts to %s using %d workers", len(artifacts), destDir, workers)
	results, fetchErr := pkgfetcher.FetchArtifacts(cmd.Context(), transport, artifacts, destDir,
		pkgfetcher.Options{Workers: workers, Progress: cmd.ErrOrStderr()})

	for _, r := range results {
		fmt.Fprintln(cmd.OutOrStdout(), r.Path)
		if !opts.extract {
			continue
		}
		err := pkgfetcher.Extract(r.Path, destDir, r.Artifact.Format)
		switch {
		case errors.Is(err, pkgfetcher.ErrUnsupportedFormat):
			log.Warnf("not extracting %s: %v", r.Artifact.Filename, err)
		case err != nil:
			return err
		default:
			log.Infof("extracted %s", r.Artifact.Filename)
		}
	}

	if opts.report {
		scope := "all"
		if !opts.all && len(artifacts) == 1 {
			scope = strings.TrimSuffix(artifacts[0].Filename, "."+artifacts[0].Format.String())
		}
		logger.GlobalStringListReport.Title = fmt.Sprintf("v%s %s", artifacts[0].Version, scope)
		path, err := logger.WriteListFetchedToFile()
		if err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		log.Infof("report written to %s", path)
	}

	if fetchErr != nil {
		return fmt.Errorf("download failed: %w", fetchErr)
	}
	return nil
}

func resolveDownloads(cmd *cobra.Command, resolver *release.Resolver, version string, opts *downloadOptions) ([]release.Artifact, error) {
	if opts.all {
		artifacts, err := resolver.FetchAll(cmd.Context(), version)
		if err != nil {
			return nil, fmt.Errorf("fetch-all failed: %w", err)
		}
		return artifacts, nil
	}

	query, err := opts.query.query(cmd, version)
	if err != nil {
		return nil, err
	}
	artifact, err := resolver.Fetch(cmd.Context(), query)
	if err != nil {
		return nil, fmt.Errorf("fetch failed: %w", err)
	}
	return []release.Artifact{*artifact}, nil
}
