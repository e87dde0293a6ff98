// Package registry selects the framework variant for a merge configuration.
// Callers only ever see the framework.Endpoint and framework.Translator
// interfaces.
package registry

import (
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/scan-io-git/endpointmap/internal/findings"
	"github.com/scan-io-git/endpointmap/pkg/framework"
	"github.com/scan-io-git/endpointmap/pkg/framework/jsp"
	"github.com/scan-io-git/endpointmap/pkg/framework/webforms"
	"github.com/scan-io-git/endpointmap/pkg/shared/errors"
)

// NewTranslator builds the translator of the configured framework. It resolves
// and persists the scan roots, so at most one call may run per scan at a time.
func NewTranslator(cfg framework.MergeConfiguration, scan *findings.Scan, resolver framework.RootResolver, db framework.EndpointDatabase, logger hclog.Logger) framework.Translator {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	switch cfg.FrameworkType {
	case framework.TypeJSP:
		return jsp.NewTranslator(cfg, scan, resolver, db, logger.Named("jsp"))
	case framework.TypeWebForms:
		return webforms.NewTranslator(cfg, scan, resolver, db, logger.Named("webforms"))
	default:
		return NewDefaultTranslator(cfg, scan, resolver, db, logger.Named("default"))
	}
}

// BuildEndpoints turns parser output into endpoints of the configured framework.
func BuildEndpoints(frameworkType framework.Type, root string, extractions []framework.PageExtraction, strictPaths bool, logger hclog.Logger) ([]framework.Endpoint, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	switch frameworkType {
	case framework.TypeWebForms:
		return webforms.GenerateEndpoints(root, extractions, logger.Named("webforms"), webforms.WithStrictPaths(strictPaths))
	case framework.TypeJSP:
		endpoints := make([]framework.Endpoint, 0, len(extractions))
		for _, ex := range extractions {
			e := jsp.NewEndpoint(root, ex, logger.Named("jsp"))
			if e.Degraded() && strictPaths {
				file := ex.File
				if file == "" {
					file = ex.Identity
				}
				return nil, fmt.Errorf("failed to build endpoint for %q: %w", ex.Identity,
					framework.NewDegradedPathError(root, file, e.URLPath()))
			}
			endpoints = append(endpoints, e)
		}
		return endpoints, nil
	default:
		return nil, errors.NewNotImplementedError("BuildEndpoints", string(frameworkType))
	}
}
