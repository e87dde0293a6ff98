// Package jsp translates findings for JavaServer Pages applications, where the
// deployed URL layout mirrors the web content directory.
package jsp

import (
	"github.com/hashicorp/go-hclog"

	"github.com/scan-io-git/endpointmap/internal/findings"
	"github.com/scan-io-git/endpointmap/pkg/framework"
)

// Extension is the page extension used to locate the project root.
const Extension = ".jsp"

// Translator is the JSP URL - path translator.
type Translator struct {
	config framework.MergeConfiguration
	roots  framework.Roots
	db     framework.EndpointDatabase
}

// NewTranslator resolves the filesystem and URL roots of the scan, defaults the
// URL root to the filesystem root and persists both on the scan.
func NewTranslator(cfg framework.MergeConfiguration, scan *findings.Scan, resolver framework.RootResolver, db framework.EndpointDatabase, logger hclog.Logger) *Translator {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	roots := framework.ResolveRoots(resolver, scan, Extension)
	roots.ApplyTo(scan)

	logger.Info("using JSP URL - path translator")
	logger.Info("calculated filesystem root", "root", roots.FilePathRoot)
	logger.Info("calculated url path root", "root", roots.URLPathRoot)
	if roots.Degraded() {
		logger.Warn("roots are not fully resolved, paths are best effort", "scan", scan.ID)
	}

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

// FileName uses endpoint evidence only with full source code access.
func (t *Translator) FileName(f *findings.Finding) string {
	switch t.config.SourceCodeAccessLevel {
	case framework.AccessFull:
		return framework.FileNameWithSourceCode(t.roots, t.db, f)
	default:
		return framework.FileNameDefault(t.roots, f)
	}
}

// URLPath does not depend on the access level: the URL shape is observable
// without source.
func (t *Translator) URLPath(f *findings.Finding) string {
	return framework.URLPathDefault(t.roots, f)
}

var _ framework.Translator = (*Translator)(nil)
