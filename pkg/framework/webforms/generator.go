package webforms

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/scan-io-git/endpointmap/pkg/framework"
)

var markupExtensions = []string{".aspx", ".ascx", ".master"}

// IsMarkup reports whether the identity names a Web Forms markup file.
func IsMarkup(identity string) bool {
	lower := strings.ToLower(identity)
	for _, ext := range markupExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// GenerateEndpoints pairs every markup extraction with its code-behind and
// builds one endpoint per pair. Markup without a code-behind is skipped.
// Endpoints are returned in URL path order.
func GenerateEndpoints(root string, extractions []framework.PageExtraction, logger hclog.Logger, opts ...Option) ([]framework.Endpoint, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	byIdentity := make(map[string]framework.PageExtraction, len(extractions))
	unique := make([]framework.PageExtraction, 0, len(extractions))
	for _, ex := range extractions {
		if _, ok := byIdentity[ex.Identity]; ok {
			logger.Warn("duplicate extraction, keeping the first one", "identity", ex.Identity)
			continue
		}
		byIdentity[ex.Identity] = ex
		unique = append(unique, ex)
	}

	opts = append([]Option{WithLogger(logger)}, opts...)

	var endpoints []framework.Endpoint
	for _, markup := range unique {
		if !IsMarkup(markup.Identity) {
			continue
		}
		codeBehind, ok := byIdentity[markup.Identity+CodeBehindSuffix]
		if !ok {
			logger.Warn("markup file has no code-behind, skipping", "identity", markup.Identity)
			continue
		}
		e, err := NewEndpoint(root, markup, codeBehind, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to build endpoint for %q: %w", markup.Identity, err)
		}
		logger.Debug("built endpoint", "url", e.URLPath(), "parameters", len(e.Parameters()), "degraded", e.Degraded())
		endpoints = append(endpoints, e)
	}

	sort.SliceStable(endpoints, func(i, j int) bool {
		return endpoints[i].URLPath() < endpoints[j].URLPath()
	})
	return endpoints, nil
}
