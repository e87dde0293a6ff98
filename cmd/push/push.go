package push

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/scan-io-git/endpointmap/internal/config"
	"github.com/scan-io-git/endpointmap/internal/sarif"
	"github.com/scan-io-git/endpointmap/internal/threadfix"
	"github.com/scan-io-git/endpointmap/pkg/shared"
	"github.com/scan-io-git/endpointmap/pkg/shared/errors"
	"github.com/scan-io-git/endpointmap/pkg/shared/httpclient"
)

// RunOptions holds the arguments of the push command.
type RunOptions struct {
	SarifPath       string `json:"sarif_path"`
	ApplicationID   int    `json:"application_id,omitempty"`
	TeamName        string `json:"team_name,omitempty"`
	ApplicationName string `json:"application_name,omitempty"`
	Upload          bool   `json:"upload"`
	ServerURL       string `json:"server_url,omitempty"`
}

// Result is the outcome of a push.
type Result struct {
	ApplicationID int                  `json:"application_id"`
	Uploaded      bool                 `json:"uploaded"`
	Pushed        threadfix.PushResult `json:"pushed"`
}

var (
	AppConfig    *config.Config
	logger       hclog.Logger
	runOptions   RunOptions
	exampleUsage = `  # Push translated findings to an application by id
  endpointmap push --sarif translated.sarif --app-id 12

  # Look the application up by team and name, and upload the raw report instead
  endpointmap push --sarif report.sarif --team payments --app shop --upload`
)

// PushCmd represents the push command.
var PushCmd = &cobra.Command{
	Use:                   "push --sarif PATH {--app-id ID | --team TEAM --app NAME} [--upload] [--server URL]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleUsage,
	Short:                 "Push findings to the central vulnerability server",
	RunE:                  runPushCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config, l hclog.Logger) {
	AppConfig = cfg
	logger = l
}

func runPushCommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !shared.HasFlags(cmd.Flags()) {
		return cmd.Help()
	}

	if err := validatePushArgs(&runOptions, args, AppConfig); err != nil {
		logger.Error("invalid push arguments", "error", err)
		return errors.NewCommandError(runOptions, nil, fmt.Errorf("invalid push arguments: %w", err), 1)
	}

	result, err := Run(cmd.Context(), runOptions, AppConfig, logger)
	if err != nil {
		logger.Error("push command failed", "error", err)
		return errors.NewCommandError(runOptions, result, fmt.Errorf("push command failed: %w", err), 2)
	}

	logger.Info("push command completed successfully", "application", result.ApplicationID,
		"static", result.Pushed.Static, "dynamic", result.Pushed.Dynamic, "uploaded", result.Uploaded)
	return nil
}

// Run pushes the findings of a SARIF report to the configured server.
func Run(ctx context.Context, opts RunOptions, cfg *config.Config, logger hclog.Logger) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	serverURL := opts.ServerURL
	apiKey := ""
	if cfg != nil {
		if serverURL == "" {
			serverURL = cfg.Server.URL
		}
		apiKey = cfg.Server.APIKey
	}

	client, err := threadfix.New(httpclient.InitializeRestyClient(logger, cfg), serverURL, apiKey, logger.Named("threadfix"))
	if err != nil {
		return nil, err
	}

	appID := opts.ApplicationID
	if appID == 0 {
		app, err := client.SearchApplicationByName(ctx, opts.ApplicationName, opts.TeamName)
		if err != nil {
			return nil, fmt.Errorf("failed to look up application %q of team %q: %w", opts.ApplicationName, opts.TeamName, err)
		}
		appID = app.ID
	}

	result := &Result{ApplicationID: appID}
	if opts.Upload {
		if err := client.UploadScan(ctx, appID, opts.SarifPath); err != nil {
			return result, err
		}
		result.Uploaded = true
		return result, nil
	}

	report, err := sarif.ReadReport(opts.SarifPath, logger.Named("sarif"), true)
	if err != nil {
		return result, err
	}
	pushed, err := client.PushFindings(ctx, appID, report.Findings())
	result.Pushed = pushed
	if err != nil {
		return result, err
	}
	return result, nil
}

func init() {
	PushCmd.Flags().StringVarP(&runOptions.SarifPath, "sarif", "s", "", "Path to the SARIF report to push.")
	PushCmd.Flags().IntVar(&runOptions.ApplicationID, "app-id", 0, "Identifier of the application on the server.")
	PushCmd.Flags().StringVar(&runOptions.TeamName, "team", "", "Team owning the application, used with --app.")
	PushCmd.Flags().StringVar(&runOptions.ApplicationName, "app", "", "Name of the application, used with --team.")
	PushCmd.Flags().BoolVar(&runOptions.Upload, "upload", false, "Upload the report file as a scan instead of adding findings one by one.")
	PushCmd.Flags().StringVar(&runOptions.ServerURL, "server", "", "Server REST URL; overrides server.url.")
	PushCmd.Flags().BoolP("help", "h", false, "Show help for the push command.")
}
