package webforms

import (
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/scan-io-git/endpointmap/internal/findings"
	"github.com/scan-io-git/endpointmap/pkg/framework"
)

// Translator maps Web Forms findings. Static findings on a code-behind file are
// reported at the URL of the page the code-behind belongs to.
type Translator struct {
	config framework.MergeConfiguration
	roots  framework.Roots
	db     framework.EndpointDatabase
}

// NewTranslator resolves the roots of the scan for ".aspx" pages and persists
// them on the scan.
func NewTranslator(cfg framework.MergeConfiguration, scan *findings.Scan, resolver framework.RootResolver, db framework.EndpointDatabase, logger hclog.Logger) *Translator {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	roots := framework.ResolveRoots(resolver, scan, ".aspx")
	roots.ApplyTo(scan)

	logger.Info("using Web Forms URL - path translator")
	logger.Info("calculated roots", "filesystem", roots.FilePathRoot, "url", roots.URLPathRoot, "degraded", roots.Degraded())

	return NewTranslatorFromRoots(cfg, roots, db)
}

// NewTranslatorFromRoots builds a translator from already resolved roots.
func NewTranslatorFromRoots(cfg framework.MergeConfiguration, roots framework.Roots, db framework.EndpointDatabase) *Translator {
	return &Translator{
		config: cfg,
		roots:  roots,
		db:     db,
	}
}

// Roots returns the roots the translator works with.
func (t *Translator) Roots() framework.Roots {
	return t.roots
}

func (t *Translator) FileName(f *findings.Finding) string {
	switch t.config.SourceCodeAccessLevel {
	case framework.AccessFull:
		return framework.FileNameWithSourceCode(t.roots, t.db, f)
	default:
		return framework.FileNameDefault(t.roots, f)
	}
}

func (t *Translator) URLPath(f *findings.Finding) string {
	if t.config.SourceCodeAccessLevel == framework.AccessFull && t.db != nil && f != nil {
		if e := t.db.FindBestMatch(framework.QueryFor(t.roots, f)); e != nil {
			return e.URLPath()
		}
	}
	urlPath := framework.URLPathDefault(t.roots, f)
	if f != nil && !f.IsDynamic() && strings.HasSuffix(strings.ToLower(urlPath), ".aspx"+CodeBehindSuffix) {
		urlPath = urlPath[:len(urlPath)-len(CodeBehindSuffix)]
	}
	return urlPath
}

var _ framework.Translator = (*Translator)(nil)
