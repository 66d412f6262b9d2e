package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/open-edge-platform/node-release-info/internal/release"
	"github.com/open-edge-platform/node-release-info/internal/utils/config"
)

// createURLCommand creates the url subcommand
func createURLCommand() *cobra.Command {
	var signature bool

	urlCmd := &cobra.Command{
		Use:   "url [flags] VERSION",
		Short: "Print the manifest URL of a release",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			version, err := release.ValidateVersion(args[0])
			if err != nil {
				return err
			}
			urls := config.NewConfigHelpers(config.GlConfig).URLFormatter()
			if signature {
				fmt.Fprintln(cmd.OutOrStdout(), urls.SignatureURL(version))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), urls.ManifestURL(version))
			return nil
		},
	}

	urlCmd.Flags().BoolVar(&signature, "signature", false, "Print the detached signature URL instead")
	return urlCmd
}
