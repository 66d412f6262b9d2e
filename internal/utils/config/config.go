package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
	sigsyaml "sigs.k8s.io/yaml"

	"github.com/open-edge-platform/node-release-info/internal/release"
)

//go:embed schema.json
var globalConfigSchema []byte

const schemaURL = "https://schemas.open-edge-platform.org/node-release-info/config.schema.json"

// ServerConfig selects the release server artifacts are resolved against.
type ServerConfig struct {
	Protocol   string `yaml:"protocol"`
	Host       string `yaml:"host"`
	PathPrefix string `yaml:"path_prefix"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// GlobalConfig is the tool-wide configuration file.
type GlobalConfig struct {
	Server      ServerConfig  `yaml:"server"`
	Product     string        `yaml:"product"`
	Workers     int           `yaml:"workers"`
	DownloadDir string        `yaml:"download_dir"`
	Keyring     string        `yaml:"keyring"`
	ReportDir   string        `yaml:"report_dir"`
	Logging     LoggingConfig `yaml:"logging"`
}

// GlConfig is the process-wide configuration. Commands read it after the root
// command has loaded the config file.
var GlConfig = DefaultGlobalConfig()

// DefaultGlobalConfig returns the configuration used when no file is given.
func DefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		Server: ServerConfig{
			Protocol:   release.DefaultProtocol,
			Host:       release.DefaultHost,
			PathPrefix: release.DefaultPathPrefix,
		},
		Product:     release.DefaultProduct,
		Workers:     4,
		DownloadDir: "downloads",
		ReportDir:   "reports",
		Logging:     LoggingConfig{Level: "info"},
	}
}

// LoadGlobalConfig reads, validates and decodes a config file. Fields absent
// from the file keep their defaults.
func LoadGlobalConfig(path string) (*GlobalConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	cfg, err := ParseGlobalConfig(data)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return cfg, nil
}

// ParseGlobalConfig validates data against the embedded schema and decodes it
// on top of DefaultGlobalConfig.
func ParseGlobalConfig(data []byte) (*GlobalConfig, error) {
	cfg := DefaultGlobalConfig()
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}

	if err := validateAgainstSchema(data); err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the invariants the schema cannot express.
func (c *GlobalConfig) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if !strings.HasSuffix(c.Server.Protocol, ":") {
		return fmt.Errorf("server protocol %q must end with ':'", c.Server.Protocol)
	}
	if c.Server.Host == "" {
		return fmt.Errorf("server host must not be empty")
	}
	if c.Product == "" {
		return fmt.Errorf("product must not be empty")
	}
	return nil
}

func validateAgainstSchema(data []byte) error {
	jsonData, err := sigsyaml.YAMLToJSON(data)
	if err != nil {
		return fmt.Errorf("converting config to JSON: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, bytes.NewReader(globalConfigSchema)); err != nil {
		return fmt.Errorf("loading config schema: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return fmt.Errorf("compiling config schema: %w", err)
	}

	var doc interface{}
	if err := json.Unmarshal(jsonData, &doc); err != nil {
		return fmt.Errorf("parsing config JSON: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}
