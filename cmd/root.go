package cmd

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/scan-io-git/endpointmap/cmd/endpoints"
	"github.com/scan-io-git/endpointmap/cmd/push"
	"github.com/scan-io-git/endpointmap/cmd/translate"
	"github.com/scan-io-git/endpointmap/cmd/version"
	"github.com/scan-io-git/endpointmap/internal/config"
	"github.com/scan-io-git/endpointmap/internal/logger"
	"github.com/scan-io-git/endpointmap/pkg/shared/errors"
)

var (
	cfgFile   string
	AppConfig *config.Config
	Logger    hclog.Logger
	rootCmd   = &cobra.Command{
		Use:                   "endpointmap [command]",
		SilenceUsage:          true,
		SilenceErrors:         true,
		DisableFlagsInUseLine: true,
		Short:                 "Endpointmap translates scanner findings into canonical file and URL paths.",
		Long: `Endpointmap models application endpoints from parser output and translates the
	coordinates of static and dynamic scanner findings to one canonical file path and URL path,
	so findings of different scanners about the same page can be merged.
	`,
	}
)

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is config.yml)")
	rootCmd.AddCommand(version.NewVersionCmd())
	rootCmd.AddCommand(endpoints.EndpointsCmd)
	rootCmd.AddCommand(translate.TranslateCmd)
	rootCmd.AddCommand(push.PushCmd)
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)

		var cmdErr *errors.CommandError
		if stderrors.As(err, &cmdErr) {
			return cmdErr.ExitCode
		}
		return 1
	}
	return 0
}

func initConfig() {
	var err error

	if cfgFile == "" {
		cfgFile = config.DefaultConfigPath
	}
	AppConfig, err = config.LoadConfig(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "initializing config file function is crashed - %v \n", err)
		os.Exit(1)
	}
	if err := config.ValidateConfig(AppConfig); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	Logger = logger.NewLogger(AppConfig, "core")

	version.Init(AppConfig)
	endpoints.Init(AppConfig, Logger.Named("endpoints"))
	translate.Init(AppConfig, Logger.Named("translate"))
	push.Init(AppConfig, Logger.Named("push"))
}
