// Package merge applies a translator to every finding of a scan.
package merge

import (
	"context"
	"runtime"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"

	"github.com/scan-io-git/endpointmap/internal/findings"
	"github.com/scan-io-git/endpointmap/pkg/framework"
)

// Stats summarizes a translation run.
type Stats struct {
	Total      int
	Translated int
	Untouched  int
}

// TranslateAll fills CalculatedFilePath and CalculatedURLPath of every finding
// using translator. Up to workers findings are translated at once; zero or
// less means one worker per CPU. The translator must be fully constructed
// before this is called.
func TranslateAll(ctx context.Context, translator framework.Translator, fs []*findings.Finding, workers int, logger hclog.Logger) (Stats, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	logger.Debug("translating findings", "total", len(fs), "workers", workers)

	// each worker writes only its own slot
	translated := make([]bool, len(fs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, f := range fs {
		if f == nil {
			continue
		}
		i, f := i, f
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			f.CalculatedFilePath = translator.FileName(f)
			f.CalculatedURLPath = translator.URLPath(f)
			translated[i] = f.CalculatedFilePath != "" || f.CalculatedURLPath != ""
			return nil
		})
	}

	err := g.Wait()

	stats := Stats{Total: len(fs)}
	for i, ok := range translated {
		if ok {
			stats.Translated++
		} else {
			stats.Untouched++
			if fs[i] != nil {
				logger.Debug("finding not translated", "rule", fs[i].RuleID, "file", fs[i].FilePath, "url", fs[i].URLPath)
			}
		}
	}

	if err != nil {
		return stats, err
	}
	logger.Info("findings translated", "total", stats.Total, "translated", stats.Translated, "untouched", stats.Untouched)
	return stats, nil
}
