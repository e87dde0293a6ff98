package threadfix

import (
	"context"
	"fmt"

	"github.com/scan-io-git/endpointmap/internal/findings"
)

// PushResult counts what PushFindings sent.
type PushResult struct {
	Static  int
	Dynamic int
	Skipped int
}

// PushFindings records every finding on the application using its translated
// coordinates where present. Findings carrying neither a file nor a URL are
// skipped. The first failing call aborts the push.
func (c *Client) PushFindings(ctx context.Context, appID int, fs []*findings.Finding) (PushResult, error) {
	var res PushResult
	for _, f := range fs {
		if f == nil {
			res.Skipped++
			continue
		}

		switch {
		case f.IsDynamic():
			if err := c.AddDynamicFinding(ctx, appID, toDynamic(f)); err != nil {
				return res, fmt.Errorf("finding %q: %w", f.RuleID, err)
			}
			res.Dynamic++
		case f.IsStatic():
			if err := c.AddStaticFinding(ctx, appID, toStatic(f)); err != nil {
				return res, fmt.Errorf("finding %q: %w", f.RuleID, err)
			}
			res.Static++
		default:
			res.Skipped++
		}
	}

	c.logger.Info("findings pushed", "application", appID, "static", res.Static, "dynamic", res.Dynamic, "skipped", res.Skipped)
	return res, nil
}

func toStatic(f *findings.Finding) StaticFinding {
	return StaticFinding{
		VulnType:        f.RuleID,
		Severity:        f.Severity,
		NativeID:        f.NativeID,
		Parameter:       f.Parameter,
		LongDescription: f.Description,
		FilePath:        firstNonEmpty(f.CalculatedFilePath, f.FilePath),
		Column:          f.Column,
		LineText:        f.LineText,
		LineNumber:      f.StartLine,
	}
}

func toDynamic(f *findings.Finding) DynamicFinding {
	return DynamicFinding{
		VulnType:        f.RuleID,
		Severity:        f.Severity,
		NativeID:        f.NativeID,
		Parameter:       f.Parameter,
		LongDescription: f.Description,
		FullURL:         f.FullURL,
		Path:            firstNonEmpty(f.CalculatedURLPath, f.URLPath),
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
