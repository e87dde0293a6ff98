package push

import (
	"fmt"
	"net/url"

	"github.com/scan-io-git/endpointmap/internal/config"
)

// validatePushArgs validates the arguments provided to the push command.
func validatePushArgs(options *RunOptions, args []string, cfg *config.Config) error {
	if len(args) > 0 {
		return fmt.Errorf("invalid argument(s) received, positional arguments are not supported")
	}

	if options.SarifPath == "" {
		return fmt.Errorf("the 'sarif' flag must be specified")
	}

	byName := options.TeamName != "" || options.ApplicationName != ""
	switch {
	case options.ApplicationID < 0:
		return fmt.Errorf("the 'app-id' flag must be positive: %d", options.ApplicationID)
	case options.ApplicationID > 0 && byName:
		return fmt.Errorf("you cannot use both 'app-id' and 'team'/'app' flags at the same time")
	case options.ApplicationID == 0 && (options.TeamName == "" || options.ApplicationName == ""):
		return fmt.Errorf("either 'app-id' or both 'team' and 'app' flags must be specified")
	}

	serverURL := options.ServerURL
	if serverURL == "" && cfg != nil {
		serverURL = cfg.Server.URL
	}
	if serverURL == "" {
		return fmt.Errorf("the server url must be set with the 'server' flag or server.url")
	}
	if _, err := url.ParseRequestURI(serverURL); err != nil {
		return fmt.Errorf("provided server URL is not valid: %w", err)
	}

	if cfg == nil || cfg.Server.APIKey == "" {
		return fmt.Errorf("the api key must be set with server.api_key or ENDPOINTMAP_API_KEY")
	}
	return nil
}
