package endpoints

import (
	"fmt"

	"github.com/scan-io-git/endpointmap/pkg/framework"
)

// validateEndpointsArgs validates the arguments provided to the endpoints command.
func validateEndpointsArgs(options *RunOptions, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("invalid argument(s) received, positional arguments are not supported")
	}

	if options.ExtractionsPath == "" {
		return fmt.Errorf("the 'extractions' flag must be specified")
	}

	if options.Framework != "" {
		ft, err := framework.ParseType(options.Framework)
		if err != nil {
			return err
		}
		if ft == framework.TypeNone {
			return fmt.Errorf("the 'framework' flag must name a framework with endpoints: webforms or jsp")
		}
	}

	if options.JSON && options.OutputPath != "" {
		return fmt.Errorf("the 'json' and 'output' flags cannot be used together")
	}
	return nil
}
