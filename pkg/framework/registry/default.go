package registry

import (
	"github.com/hashicorp/go-hclog"

	"github.com/scan-io-git/endpointmap/internal/findings"
	"github.com/scan-io-git/endpointmap/pkg/framework"
)

// DefaultTranslator is used when the framework is unknown. Roots are resolved
// from every reported file and the syntactic strategies are used, except for
// file names under full source access.
type DefaultTranslator struct {
	config framework.MergeConfiguration
	roots  framework.Roots
	db     framework.EndpointDatabase
}

// NewDefaultTranslator resolves and persists the scan roots without an
// extension filter.
func NewDefaultTranslator(cfg framework.MergeConfiguration, scan *findings.Scan, resolver framework.RootResolver, db framework.EndpointDatabase, logger hclog.Logger) *DefaultTranslator {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	roots := framework.ResolveRoots(resolver, scan, "")
	roots.ApplyTo(scan)
	logger.Info("using default translator", "filesystem", roots.FilePathRoot, "url", roots.URLPathRoot)

	return &DefaultTranslator{
		config: cfg,
		roots:  roots,
		db:     db,
	}
}

func (t *DefaultTranslator) FileName(f *findings.Finding) string {
	if t.config.SourceCodeAccessLevel == framework.AccessFull {
		return framework.FileNameWithSourceCode(t.roots, t.db, f)
	}
	return framework.FileNameDefault(t.roots, f)
}

func (t *DefaultTranslator) URLPath(f *findings.Finding) string {
	return framework.URLPathDefault(t.roots, f)
}

var _ framework.Translator = (*DefaultTranslator)(nil)
