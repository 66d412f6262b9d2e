package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/open-edge-platform/node-release-info/internal/release"
	"github.com/open-edge-platform/node-release-info/internal/utils/config"
	"github.com/open-edge-platform/node-release-info/internal/utils/logger"
	"github.com/open-edge-platform/node-release-info/internal/utils/network"
)

// Global flags
var (
	configFile     string
	logLevel       string
	verbose        bool
	serverProtocol string
	serverHost     string
	serverPrefix   string
	product        string
	keyringPath    string
)

// httpClient is used for every request when set; nil selects the TLS 1.2+
// client from the network package.
var httpClient *http.Client

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := createRootCommand().ExecuteContext(ctx)
	logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// createRootCommand builds the root command with all subcommands attached.
func createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "node-release-info",
		Short: "Resolve Node.js release artifacts from SHASUMS256.txt manifests",
		Long: `node-release-info looks up the published artifacts of a Node.js release.
It fetches the release's SHASUMS256.txt manifest and reports the checksum and
download URL of one os/arch/format combination or of every artifact, and can
download and unpack them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"Path to a YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Log level: debug, info, warn, error (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Shorthand for --log-level debug")
	addServerFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(createFetchCommand())
	rootCmd.AddCommand(createFetchAllCommand())
	rootCmd.AddCommand(createDownloadCommand())
	rootCmd.AddCommand(createURLCommand())

	attachLoggingHooks(rootCmd)
	return rootCmd
}

func addServerFlags(fs *pflag.FlagSet) {
	fs.StringVar(&serverProtocol, "protocol", "",
		fmt.Sprintf("Release server protocol, including the colon (default %q)", release.DefaultProtocol))
	fs.StringVar(&serverHost, "host", "",
		fmt.Sprintf("Release server host (default %q)", release.DefaultHost))
	fs.StringVar(&serverPrefix, "path-prefix", "",
		fmt.Sprintf("Release path prefix (default %q)", release.DefaultPathPrefix))
	fs.StringVar(&product, "product", "",
		fmt.Sprintf("Artifact filename prefix (default %q)", release.DefaultProduct))
	fs.StringVar(&keyringPath, "keyring", "",
		"Armored OpenPGP keyring; when set, manifest signatures are verified")
}

// attachLoggingHooks installs the config/logging initializer on every
// subcommand.
func attachLoggingHooks(root *cobra.Command) {
	for _, cmd := range root.Commands() {
		cmd.PersistentPreRunE = initialize
	}
}

// initialize loads the config file, applies flag overrides and builds the
// logger for this run.
func initialize(cmd *cobra.Command, _ []string) error {
	cfg := config.DefaultGlobalConfig()
	if configFile != "" {
		loaded, err := config.LoadGlobalConfig(configFile)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	applyFlagOverrides(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	config.GlConfig = cfg

	level := resolveRequestedLogLevel(cmd)
	if level == "" {
		level = cfg.Logging.Level
	}
	log, err := logger.Init(level)
	if err != nil {
		return err
	}
	logger.Replace(log.With("run", uuid.NewString()))
	logger.ReportPath = config.NewConfigHelpers(cfg).ReportDir()
	return nil
}

// resolveRequestedLogLevel returns the level asked for on the command line:
// an explicit --log-level wins, then --verbose. Empty means use the config.
func resolveRequestedLogLevel(cmd *cobra.Command) string {
	if logLevel != "" {
		return logLevel
	}
	if cmd == nil {
		return ""
	}
	if flag := cmd.Flags().Lookup("verbose"); flag != nil && flag.Changed && flag.Value.String() == "true" {
		return "debug"
	}
	return ""
}

func applyFlagOverrides(cmd *cobra.Command, cfg *config.GlobalConfig) {
	flags := cmd.Flags()
	if flags.Changed("protocol") {
		cfg.Server.Protocol = serverProtocol
	}
	if flags.Changed("host") {
		cfg.Server.Host = serverHost
	}
	if flags.Changed("path-prefix") {
		cfg.Server.PathPrefix = serverPrefix
	}
	if flags.Changed("product") {
		cfg.Product = product
	}
	if flags.Changed("keyring") {
		cfg.Keyring = keyringPath
	}
}

func newTransport() *network.HTTPTransport {
	return network.NewHTTPTransport(httpClient)
}

// newResolver builds a resolver from the loaded configuration.
func newResolver(transport release.TextFetcher) (*release.Resolver, error) {
	helpers := config.NewConfigHelpers(config.GlConfig)
	opts := []release.Option{
		release.WithURLFormatter(helpers.URLFormatter()),
		release.WithProduct(helpers.Product()),
		release.WithLogger(logger.Logger()),
	}
	if helpers.HasKeyring() {
		keyring, err := release.LoadKeyring(config.GlConfig.Keyring)
		if err != nil {
			return nil, err
		}
		opts = append(opts, release.WithKeyring(keyring))
	}
	return release.NewResolver(transport, opts...), nil
}
