package config

import (
	"crypto/tls"
	"reflect"
	"runtime"
	"strings"
	"time"

	"github.com/scan-io-git/endpointmap/pkg/framework"
)

// BaseHTTPConfig holds common HTTP client configuration settings.
type BaseHTTPConfig struct {
	RetryCount       int           // Number of retries for failed requests
	RetryWaitTime    time.Duration // Wait time between retries
	RetryMaxWaitTime time.Duration // Maximum wait time for retries
	Timeout          time.Duration // Timeout for requests
	TLSClientConfig  *tls.Config   // TLS configuration
	Proxy            string        // Proxy address
}

// RestyHTTPClientConfig holds additional configuration settings for the Resty HTTP client.
type RestyHTTPClientConfig struct {
	BaseHTTPConfig
	Debug bool // Flag to enable Resty debug mode
}

// DefaultHTTPConfig returns a base configuration for HTTP clients with default values.
func DefaultHTTPConfig() BaseHTTPConfig {
	return BaseHTTPConfig{
		RetryCount:       3,
		RetryWaitTime:    1 * time.Second,
		RetryMaxWaitTime: 5 * time.Second,
		Timeout:          30 * time.Second,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
		Proxy: "",
	}
}

// DefaultRestyConfig returns a default configuration for the Resty HTTP client.
func DefaultRestyConfig() RestyHTTPClientConfig {
	return RestyHTTPClientConfig{
		BaseHTTPConfig: DefaultHTTPConfig(),
		Debug:          false,
	}
}

// GetBoolValue retrieves a boolean value from a nested struct based on a dot-separated path.
// It returns defaultValue if the field is missing or is a nil pointer.
func GetBoolValue(config interface{}, fieldPath string, defaultValue bool) bool {
	if config == nil {
		return defaultValue
	}

	val := reflect.ValueOf(config)
	for _, field := range strings.Split(fieldPath, ".") {
		if val.Kind() == reflect.Ptr {
			if val.IsNil() {
				return defaultValue
			}
			val = val.Elem()
		}
		if val.Kind() != reflect.Struct {
			return defaultValue
		}
		val = val.FieldByName(field)
		if !val.IsValid() {
			return defaultValue
		}
	}

	if val.Kind() == reflect.Ptr && !val.IsNil() {
		return val.Elem().Bool()
	} else if val.Kind() == reflect.Bool {
		return val.Bool()
	}
	return defaultValue
}

// SetThen returns value when it is set, otherwise defaultValue.
func SetThen[T any](value T, defaultValue T) T {
	if reflect.ValueOf(&value).Elem().IsZero() {
		return defaultValue
	}
	return value
}

// GetWorkers returns the configured number of translation workers.
func GetWorkers(cfg *Config) int {
	if cfg == nil {
		return runtime.NumCPU()
	}
	return SetThen(cfg.Merge.Workers, runtime.NumCPU())
}

// GetMergeConfiguration parses the merge directive into the translator settings.
func GetMergeConfiguration(cfg *Config) (framework.MergeConfiguration, error) {
	var mc framework.MergeConfiguration
	if cfg == nil {
		return mc, nil
	}

	ft, err := framework.ParseType(cfg.Merge.Framework)
	if err != nil {
		return mc, err
	}
	level, err := framework.ParseSourceCodeAccessLevel(cfg.Merge.SourceCodeAccess)
	if err != nil {
		return mc, err
	}

	mc.FrameworkType = ft
	mc.SourceCodeAccessLevel = level
	return mc, nil
}

// IsStrictPaths reports whether degraded URL paths must fail endpoint construction.
func IsStrictPaths(cfg *Config) bool {
	return GetBoolValue(cfg, "Merge.StrictPaths", false)
}
