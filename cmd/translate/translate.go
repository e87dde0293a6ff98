package translate

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/scan-io-git/endpointmap/internal/config"
	"github.com/scan-io-git/endpointmap/internal/extraction"
	"github.com/scan-io-git/endpointmap/internal/findings"
	"github.com/scan-io-git/endpointmap/internal/merge"
	"github.com/scan-io-git/endpointmap/internal/pathfinder"
	"github.com/scan-io-git/endpointmap/internal/sarif"
	"github.com/scan-io-git/endpointmap/internal/scanstore"
	"github.com/scan-io-git/endpointmap/pkg/framework"
	"github.com/scan-io-git/endpointmap/pkg/framework/registry"
	"github.com/scan-io-git/endpointmap/pkg/shared"
	"github.com/scan-io-git/endpointmap/pkg/shared/errors"
	"github.com/scan-io-git/endpointmap/pkg/shared/files"
)

// RunOptions holds the arguments of the translate command.
type RunOptions struct {
	SarifPath       string `json:"sarif_path"`
	ExtractionsPath string `json:"extractions_path,omitempty"`
	Framework       string `json:"framework,omitempty"`
	Access          string `json:"source_code_access,omitempty"`
	OutputPath      string `json:"output_path"`
	ScanID          string `json:"scan_id,omitempty"`
	ScanName        string `json:"scan_name,omitempty"`
	StorePath       string `json:"store_path,omitempty"`
	Workers         int    `json:"workers,omitempty"`
	KeepSuppressed  bool   `json:"keep_suppressed"`
}

// Result is the outcome of a translate run.
type Result struct {
	ScanID       string      `json:"scan_id"`
	Scanner      string      `json:"scanner"`
	Framework    string      `json:"framework"`
	FilePathRoot string      `json:"file_path_root"`
	URLPathRoot  string      `json:"url_path_root"`
	Endpoints    int         `json:"endpoints"`
	Stats        merge.Stats `json:"stats"`
	OutputPath   string      `json:"output_path"`
}

var (
	AppConfig    *config.Config
	logger       hclog.Logger
	runOptions   RunOptions
	exampleUsage = `  # Translate a JSP scanner report with syntactic strategies only
  endpointmap translate --sarif zap.sarif --framework jsp -o translated.sarif

  # Use parser output to resolve code-behind files of a Web Forms project
  endpointmap translate --sarif report.sarif --framework webforms --access full --extractions pages.yml -o out/

  # Reuse the roots stored for an earlier run of the same scan
  endpointmap translate --sarif report.sarif --scan-id 6f1c... --store ~/.endpointmap -o translated.sarif`
)

// TranslateCmd represents the translate command.
var TranslateCmd = &cobra.Command{
	Use:                   "translate --sarif PATH --output/-o PATH [--framework webforms|jsp] [--access none|partial|full] [--extractions PATH] [--scan-id ID] [--store DIR]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleUsage,
	Short:                 "Translate finding coordinates of a SARIF report",
	RunE:                  runTranslateCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config, l hclog.Logger) {
	AppConfig = cfg
	logger = l
}

func runTranslateCommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !shared.HasFlags(cmd.Flags()) {
		return cmd.Help()
	}

	if err := validateTranslateArgs(&runOptions, args); err != nil {
		logger.Error("invalid translate arguments", "error", err)
		return errors.NewCommandError(runOptions, nil, fmt.Errorf("invalid translate arguments: %w", err), 1)
	}

	result, err := Run(cmd.Context(), runOptions, AppConfig, logger)
	if err != nil {
		logger.Error("translate command failed", "error", err)
		return errors.NewCommandError(runOptions, result, fmt.Errorf("translate command failed: %w", err), 2)
	}

	logger.Info("translate command completed successfully")
	logger.Info("results saved to file", "path", result.OutputPath)
	logger.Info("statistic", "total", result.Stats.Total, "translated", result.Stats.Translated, "untouched", result.Stats.Untouched)
	return nil
}

// Run translates every finding of the SARIF report and writes the enriched
// report. Roots are resolved once per scan before translation starts.
func Run(ctx context.Context, opts RunOptions, cfg *config.Config, logger hclog.Logger) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	mc, err := mergeConfiguration(opts, cfg)
	if err != nil {
		return nil, err
	}

	report, err := sarif.ReadReport(opts.SarifPath, logger.Named("sarif"), !opts.KeepSuppressed)
	if err != nil {
		return nil, err
	}
	fs := report.Findings()

	scan := findings.NewScan(opts.ScanName, report.ToolName(), fs)
	if opts.ScanID != "" {
		scan.ID = opts.ScanID
	}

	storePath := opts.StorePath
	if storePath == "" && cfg != nil {
		storePath = cfg.Store.Path
	}
	var store *scanstore.Store
	if storePath != "" {
		expanded, err := files.ExpandPath(storePath)
		if err != nil {
			return nil, err
		}
		store, err = scanstore.Open(expanded)
		if err != nil {
			return nil, err
		}
		defer store.Close()

		restored, err := store.Restore(ctx, scan)
		if err != nil {
			return nil, err
		}
		logger.Debug("scan store consulted", "scan", scan.ID, "restored", restored)
	}

	var db framework.EndpointDatabase
	endpointCount := 0
	if opts.ExtractionsPath != "" {
		ex, err := extraction.Load(opts.ExtractionsPath, logger.Named("extraction"))
		if err != nil {
			return nil, err
		}
		endpoints, err := ex.Endpoints(mc.FrameworkType, config.IsStrictPaths(cfg), logger)
		if err != nil {
			return nil, err
		}
		endpointCount = len(endpoints)
		db = framework.NewEndpointDatabase(endpoints)
	}
	if mc.SourceCodeAccessLevel == framework.AccessFull && db == nil {
		logger.Warn("full source code access without extractions, falling back to syntactic paths")
	}

	translator := registry.NewTranslator(mc, scan, pathfinder.New(logger.Named("pathfinder")), db, logger)

	workers := opts.Workers
	if workers == 0 {
		workers = config.GetWorkers(cfg)
	}
	stats, err := merge.TranslateAll(ctx, translator, fs, workers, logger.Named("merge"))
	if err != nil {
		return nil, err
	}

	if store != nil {
		if err := store.SaveRoots(ctx, scan); err != nil {
			return nil, err
		}
	}

	if err := report.ApplyTranslations(fs); err != nil {
		return nil, err
	}
	outputFile, folder, err := files.DetermineFileFullPath(opts.OutputPath, "translated.sarif")
	if err != nil {
		return nil, err
	}
	if err := files.CreateFolderIfNotExists(folder); err != nil {
		return nil, err
	}
	if err := report.WriteFile(outputFile); err != nil {
		return nil, err
	}

	return &Result{
		ScanID:       scan.ID,
		Scanner:      scan.Scanner,
		Framework:    string(mc.FrameworkType),
		FilePathRoot: scan.FilePathRoot,
		URLPathRoot:  scan.URLPathRoot,
		Endpoints:    endpointCount,
		Stats:        stats,
		OutputPath:   outputFile,
	}, nil
}

// mergeConfiguration applies the flags on top of the merge directive.
func mergeConfiguration(opts RunOptions, cfg *config.Config) (framework.MergeConfiguration, error) {
	mc, err := config.GetMergeConfiguration(cfg)
	if err != nil {
		return mc, err
	}
	if opts.Framework != "" {
		if mc.FrameworkType, err = framework.ParseType(opts.Framework); err != nil {
			return mc, err
		}
	}
	if opts.Access != "" {
		if mc.SourceCodeAccessLevel, err = framework.ParseSourceCodeAccessLevel(opts.Access); err != nil {
			return mc, err
		}
	}
	return mc, nil
}

func init() {
	TranslateCmd.Flags().StringVarP(&runOptions.SarifPath, "sarif", "s", "", "Path to the SARIF report to translate.")
	TranslateCmd.Flags().StringVarP(&runOptions.ExtractionsPath, "extractions", "e", "", "Path to the parser output used as endpoint evidence.")
	TranslateCmd.Flags().StringVarP(&runOptions.Framework, "framework", "f", "", "Framework of the application: none, webforms or jsp.")
	TranslateCmd.Flags().StringVar(&runOptions.Access, "access", "", "Source code access level: none, partial or full.")
	TranslateCmd.Flags().StringVarP(&runOptions.OutputPath, "output", "o", "", "Path to the output file or directory for the translated report.")
	TranslateCmd.Flags().StringVar(&runOptions.ScanID, "scan-id", "", "Identifier of the scan; reuses stored roots when known.")
	TranslateCmd.Flags().StringVar(&runOptions.ScanName, "scan-name", "", "Human readable scan name saved with the roots.")
	TranslateCmd.Flags().StringVar(&runOptions.StorePath, "store", "", "Directory of the scan store; overrides store.path.")
	TranslateCmd.Flags().IntVarP(&runOptions.Workers, "workers", "j", 0, "Number of findings translated in parallel.")
	TranslateCmd.Flags().BoolVar(&runOptions.KeepSuppressed, "keep-suppressed", false, "Translate suppressed results too.")
	TranslateCmd.Flags().BoolP("help", "h", false, "Show help for the translate command.")
}
