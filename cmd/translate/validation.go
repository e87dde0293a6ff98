package translate

import (
	"fmt"

	"github.com/scan-io-git/endpointmap/pkg/framework"
)

// validateTranslateArgs validates the arguments provided to the translate command.
func validateTranslateArgs(options *RunOptions, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("invalid argument(s) received, positional arguments are not supported")
	}

	if options.SarifPath == "" {
		return fmt.Errorf("the 'sarif' flag must be specified")
	}

	if options.OutputPath == "" {
		return fmt.Errorf("the 'output' flag must be specified")
	}

	if _, err := framework.ParseType(options.Framework); err != nil {
		return err
	}
	if _, err := framework.ParseSourceCodeAccessLevel(options.Access); err != nil {
		return err
	}

	if options.Workers < 0 || options.Workers > 256 {
		return fmt.Errorf("workers must be between 0 and 256: %d", options.Workers)
	}
	return nil
}
