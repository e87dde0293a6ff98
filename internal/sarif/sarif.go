package sarif

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/scan-io-git/endpointmap/internal/findings"
	"github.com/scan-io-git/endpointmap/pkg/shared/files"
)

// Result property keys written by ApplyTranslations.
const (
	PropertyFilePath = "endpointmap/filePath"
	PropertyURLPath  = "endpointmap/urlPath"
)

// Report wraps a SARIF report and remembers which result every extracted
// finding came from.
type Report struct {
	*sarif.Report
	logger  hclog.Logger
	results []*sarif.Result
}

func readSarifReport(inputPath string) (*sarif.Report, error) {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return nil, err
	}

	var sarifReport sarif.Report
	if err := json.Unmarshal(data, &sarifReport); err != nil {
		return nil, fmt.Errorf("failed to parse SARIF report %q: %w", inputPath, err)
	}
	return &sarifReport, nil
}

// remove all results with Suppressions property
func removeSuppressedResults(report *sarif.Report) {
	for _, run := range report.Runs {
		var filteredResults []*sarif.Result

		for _, result := range run.Results {
			if len(result.Suppressions) == 0 {
				filteredResults = append(filteredResults, result)
			}
		}

		run.Results = filteredResults
	}
}

// ReadReport reads the SARIF report at inputPath.
func ReadReport(inputPath string, logger hclog.Logger, noSuppressions bool) (*Report, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	expanded, err := files.ExpandPath(inputPath)
	if err != nil {
		return nil, err
	}
	if err := files.ValidatePath(expanded); err != nil {
		return nil, err
	}

	sarifReport, err := readSarifReport(expanded)
	if err != nil {
		return nil, err
	}
	if noSuppressions {
		removeSuppressedResults(sarifReport)
	}

	return &Report{
		Report: sarifReport,
		logger: logger,
	}, nil
}

// ToolName returns the driver name of the first run.
func (r *Report) ToolName() string {
	if len(r.Runs) == 0 || r.Runs[0].Tool.Driver == nil {
		return ""
	}
	return r.Runs[0].Tool.Driver.Name
}

// Findings converts every result into a finding. Results without a usable
// location are skipped.
func (r *Report) Findings() []*findings.Finding {
	r.results = r.results[:0]
	var out []*findings.Finding

	for _, run := range r.Runs {
		scanner := ""
		rules := map[string]*sarif.ReportingDescriptor{}
		if run.Tool.Driver != nil {
			scanner = run.Tool.Driver.Name
			for _, rule := range run.Tool.Driver.Rules {
				rules[rule.ID] = rule
			}
		}

		for _, res := range run.Results {
			f := resultToFinding(res, rules, scanner)
			if f == nil {
				r.logger.Debug("skipping result without location", "rule", derefString(res.RuleID))
				continue
			}
			out = append(out, f)
			r.results = append(r.results, res)
		}
	}
	return out
}

func resultToFinding(res *sarif.Result, rules map[string]*sarif.ReportingDescriptor, scanner string) *findings.Finding {
	if res == nil || len(res.Locations) == 0 || res.Locations[0].PhysicalLocation == nil {
		return nil
	}
	art := res.Locations[0].PhysicalLocation.ArtifactLocation
	if art == nil || art.URI == nil {
		return nil
	}
	filePath, urlPath, fullURL := SplitArtifactURI(*art.URI)
	if filePath == "" && urlPath == "" {
		return nil
	}

	ruleID := derefString(res.RuleID)
	f := &findings.Finding{
		RuleID:    ruleID,
		Title:     DisplayRuleHeading(rules[ruleID]),
		Severity:  derefString(res.Level),
		Scanner:   scanner,
		FilePath:  filePath,
		URLPath:   urlPath,
		FullURL:   fullURL,
		Parameter: stringProperty(res.Properties, "parameter"),
		NativeID:  stringProperty(res.Properties, "nativeId"),

		CalculatedFilePath: stringProperty(res.Properties, PropertyFilePath),
		CalculatedURLPath:  stringProperty(res.Properties, PropertyURLPath),
	}
	if res.Message.Text != nil {
		f.Description = *res.Message.Text
	}
	if f.Severity == "" {
		f.Severity = "warning"
	}
	f.StartLine, f.EndLine = ExtractRegionFromResult(res)
	if region := res.Locations[0].PhysicalLocation.Region; region != nil {
		if region.StartColumn != nil {
			f.Column = *region.StartColumn
		}
		if region.Snippet != nil && region.Snippet.Text != nil {
			f.LineText = *region.Snippet.Text
		}
	}
	return f
}

// ApplyTranslations writes the calculated paths of fs back into the result
// properties. fs must be the slice returned by the last Findings call.
func (r *Report) ApplyTranslations(fs []*findings.Finding) error {
	if len(fs) != len(r.results) {
		return fmt.Errorf("got %d findings for %d results", len(fs), len(r.results))
	}
	for i, f := range fs {
		res := r.results[i]
		if res.Properties == nil {
			res.Properties = make(map[string]interface{})
		}
		res.Properties[PropertyFilePath] = f.CalculatedFilePath
		res.Properties[PropertyURLPath] = f.CalculatedURLPath
	}
	return nil
}

// WriteFile writes the report as indented JSON.
func (r *Report) WriteFile(outputPath string) error {
	data, err := json.MarshalIndent(r.Report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode SARIF report: %w", err)
	}
	return files.WriteJsonFile(outputPath, data)
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

func stringProperty(props map[string]interface{}, key string) string {
	if props == nil {
		return ""
	}
	if v, ok := props[key].(string); ok {
		return v
	}
	return ""
}
