package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	yaml "gopkg.in/yaml.v2"
)

// DefaultConfigPath is read when no --config flag is given. A missing file
// at this path is not an error.
const DefaultConfigPath = "config.yml"

// Config is the YAML configuration of endpointmap.
type Config struct {
	Logger     Logger     `yaml:"logger"`
	HTTPClient HTTPClient `yaml:"http_client"`
	Merge      Merge      `yaml:"merge"`
	Server     Server     `yaml:"server"`
	Store      Store      `yaml:"store"`
}

type Logger struct {
	Level           string `yaml:"level"`
	DisableTime     *bool  `yaml:"disable_time"`
	JSONFormat      *bool  `yaml:"json_format"`
	IncludeLocation *bool  `yaml:"include_location"`
}

type HTTPClient struct {
	RetryCount       int             `yaml:"retry_count"`
	RetryWaitTime    time.Duration   `yaml:"retry_wait_time"`
	RetryMaxWaitTime time.Duration   `yaml:"retry_max_wait_time"`
	Timeout          time.Duration   `yaml:"timeout"`
	TLSClientConfig  TLSClientConfig `yaml:"tls_client_config"`
	Proxy            Proxy           `yaml:"proxy"`
}

type TLSClientConfig struct {
	Verify *bool `yaml:"verify"`
}

type Proxy struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Merge holds the settings of the finding translation step.
type Merge struct {
	Framework        string `yaml:"framework"`
	SourceCodeAccess string `yaml:"source_code_access"`
	// StrictPaths turns degraded endpoint paths into errors.
	StrictPaths *bool `yaml:"strict_paths"`
	Workers     int   `yaml:"workers"`
}

// Server points at the central vulnerability management server.
type Server struct {
	URL    string `yaml:"url"`
	APIKey string `yaml:"api_key"`
}

// Store configures the local scan store.
type Store struct {
	Path string `yaml:"path"`
}

// LoadYAML decodes the YAML file at configPath into data.
func LoadYAML(configPath string, data interface{}) error {
	s, err := os.Stat(configPath)
	if err != nil {
		return err
	}
	if s.IsDir() {
		return fmt.Errorf("'%s' is a directory, not a file", configPath)
	}

	file, err := os.Open(configPath)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := yaml.NewDecoder(file).Decode(data); err != nil {
		return fmt.Errorf("failed to decode %q: %w", configPath, err)
	}
	return nil
}

// LoadConfig reads the configuration file and applies environment overrides.
// An absent default config file yields an empty configuration.
func LoadConfig(configPath string) (*Config, error) {
	cfg := &Config{}

	if configPath == "" {
		configPath = DefaultConfigPath
	}
	if err := LoadYAML(configPath, cfg); err != nil {
		if !(os.IsNotExist(err) && configPath == DefaultConfigPath) {
			return nil, err
		}
	}

	applyEnvironment(cfg)
	return cfg, nil
}

// applyEnvironment lets environment variables take precedence over the file.
func applyEnvironment(cfg *Config) {
	if v := os.Getenv("ENDPOINTMAP_SERVER_URL"); v != "" {
		cfg.Server.URL = v
	}
	if v := os.Getenv("ENDPOINTMAP_API_KEY"); v != "" {
		cfg.Server.APIKey = v
	}
	if v := os.Getenv("ENDPOINTMAP_STRICT_PATHS"); v != "" {
		strict := strings.EqualFold(v, "true") || v == "1"
		cfg.Merge.StrictPaths = &strict
	}
}
