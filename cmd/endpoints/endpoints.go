package endpoints

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/scan-io-git/endpointmap/internal/config"
	"github.com/scan-io-git/endpointmap/internal/extraction"
	"github.com/scan-io-git/endpointmap/pkg/framework"
	"github.com/scan-io-git/endpointmap/pkg/shared"
	"github.com/scan-io-git/endpointmap/pkg/shared/errors"
	"github.com/scan-io-git/endpointmap/pkg/shared/files"
)

// RunOptions holds the arguments of the endpoints command.
type RunOptions struct {
	ExtractionsPath string `json:"extractions_path"`
	Root            string `json:"root,omitempty"`
	Framework       string `json:"framework,omitempty"`
	OutputPath      string `json:"output_path,omitempty"`
	Strict          bool   `json:"strict"`
	JSON            bool   `json:"json"`
}

// EndpointView is the printable form of an endpoint.
type EndpointView struct {
	URLPath     string         `json:"url_path"`
	FilePath    string         `json:"file_path"`
	HTTPMethods []string       `json:"http_methods"`
	StartLine   int            `json:"start_line"`
	Parameters  map[string]int `json:"parameters"`
}

var (
	AppConfig    *config.Config
	logger       hclog.Logger
	runOptions   RunOptions
	exampleUsage = `  # Print the endpoints of a Web Forms project
  endpointmap endpoints --extractions parsed/pages.yml --framework webforms

  # Build JSP endpoints against an explicit web root and save them as JSON
  endpointmap endpoints --extractions pages.json --framework jsp --root /srv/app/WebContent -o endpoints.json`
)

// EndpointsCmd represents the endpoints command.
var EndpointsCmd = &cobra.Command{
	Use:                   "endpoints --extractions PATH [--framework webforms|jsp] [--root DIR] [--strict] [--json] [--output/-o PATH]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleUsage,
	Short:                 "Build endpoints from parser output",
	RunE:                  runEndpointsCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config, l hclog.Logger) {
	AppConfig = cfg
	logger = l
}

func runEndpointsCommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !shared.HasFlags(cmd.Flags()) {
		return cmd.Help()
	}

	if err := validateEndpointsArgs(&runOptions, args); err != nil {
		logger.Error("invalid endpoints arguments", "error", err)
		return errors.NewCommandError(runOptions, nil, fmt.Errorf("invalid endpoints arguments: %w", err), 1)
	}

	f, err := extraction.Load(runOptions.ExtractionsPath, logger)
	if err != nil {
		logger.Error("failed to load extractions", "error", err)
		return errors.NewCommandError(runOptions, nil, fmt.Errorf("failed to load extractions: %w", err), 1)
	}
	if runOptions.Root != "" {
		f.Root = runOptions.Root
	}

	ft, err := frameworkType(f)
	if err != nil {
		return errors.NewCommandError(runOptions, nil, err, 1)
	}

	strict := runOptions.Strict || config.IsStrictPaths(AppConfig)
	eps, err := f.Endpoints(ft, strict, logger)
	if err != nil {
		logger.Error("failed to build endpoints", "error", err)
		return errors.NewCommandError(runOptions, nil, fmt.Errorf("failed to build endpoints: %w", err), 2)
	}

	views := make([]EndpointView, 0, len(eps))
	for _, e := range eps {
		views = append(views, NewEndpointView(e))
	}
	logger.Info("endpoints built", "framework", ft, "root", f.Root, "count", len(views))

	if runOptions.OutputPath != "" {
		outputFile, folder, err := files.DetermineFileFullPath(runOptions.OutputPath, "endpoints.json")
		if err != nil {
			return errors.NewCommandError(runOptions, nil, err, 1)
		}
		if err := files.CreateFolderIfNotExists(folder); err != nil {
			return errors.NewCommandError(runOptions, nil, err, 1)
		}
		data, err := json.MarshalIndent(views, "", "  ")
		if err != nil {
			return fmt.Errorf("error marshaling the result data: %w", err)
		}
		if err := files.WriteJsonFile(outputFile, data); err != nil {
			logger.Error("failed to write result", "error", err)
			return errors.NewCommandError(runOptions, nil, err, 1)
		}
		logger.Info("results saved to file", "path", outputFile)
		return nil
	}

	if runOptions.JSON {
		return shared.PrintResultAsJSON(views)
	}
	return printTable(views)
}

// frameworkType picks the flag, then the extraction file, then the config.
func frameworkType(f *extraction.File) (framework.Type, error) {
	if runOptions.Framework != "" {
		return framework.ParseType(runOptions.Framework)
	}
	def := framework.TypeNone
	if AppConfig != nil {
		ft, err := framework.ParseType(AppConfig.Merge.Framework)
		if err != nil {
			return def, err
		}
		def = ft
	}
	return f.FrameworkType(def)
}

// NewEndpointView flattens an endpoint into its printable form.
func NewEndpointView(e framework.Endpoint) EndpointView {
	params := make(map[string]int, len(e.Parameters()))
	for _, p := range e.Parameters() {
		params[p] = e.LineNumberForParameter(p)
	}
	return EndpointView{
		URLPath:     e.URLPath(),
		FilePath:    e.FilePath(),
		HTTPMethods: e.HTTPMethods(),
		StartLine:   e.StartingLineNumber(),
		Parameters:  params,
	}
}

func printTable(views []EndpointView) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "URL PATH\tFILE PATH\tMETHODS\tPARAMETERS")
	for _, v := range views {
		params := make([]string, 0, len(v.Parameters))
		for name, line := range v.Parameters {
			params = append(params, fmt.Sprintf("%s:%d", name, line))
		}
		sort.Strings(params)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", v.URLPath, v.FilePath, strings.Join(v.HTTPMethods, ","), strings.Join(params, " "))
	}
	return w.Flush()
}

func init() {
	EndpointsCmd.Flags().StringVarP(&runOptions.ExtractionsPath, "extractions", "e", "", "Path to the parser output (YAML or JSON).")
	EndpointsCmd.Flags().StringVar(&runOptions.Root, "root", "", "Filesystem root of the application; overrides the root of the extraction file.")
	EndpointsCmd.Flags().StringVarP(&runOptions.Framework, "framework", "f", "", "Framework of the application: webforms or jsp.")
	EndpointsCmd.Flags().StringVarP(&runOptions.OutputPath, "output", "o", "", "Path to the output file or directory where endpoints are saved as JSON.")
	EndpointsCmd.Flags().BoolVar(&runOptions.Strict, "strict", false, "Fail when a page lies outside of the root.")
	EndpointsCmd.Flags().BoolVar(&runOptions.JSON, "json", false, "Print endpoints as JSON instead of a table.")
	EndpointsCmd.Flags().BoolP("help", "h", false, "Show help for the endpoints command.")
}
