package sarif

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/owenrumney/go-sarif/v2/sarif"
)

// SplitArtifactURI classifies a SARIF artifact URI. http(s) URIs are reported
// by dynamic scanners and yield the URL path and the full URL; anything else is
// a source file and yields a forward-slash file path without the file:// scheme.
func SplitArtifactURI(rawURI string) (filePath, urlPath, fullURL string) {
	rawURI = strings.TrimSpace(rawURI)
	if rawURI == "" {
		return "", "", ""
	}

	lower := strings.ToLower(rawURI)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		u, err := url.Parse(rawURI)
		if err != nil {
			return "", "", ""
		}
		urlPath = u.EscapedPath()
		if unescaped, err := url.PathUnescape(urlPath); err == nil {
			urlPath = unescaped
		}
		if urlPath == "" {
			urlPath = "/"
		}
		return "", urlPath, rawURI
	}

	filePath = strings.TrimPrefix(rawURI, "file://")
	if unescaped, err := url.PathUnescape(filePath); err == nil {
		filePath = unescaped
	}
	filePath = filepath.ToSlash(filePath)
	filePath = strings.ReplaceAll(filePath, "\\", "/")
	return filePath, "", ""
}

// ExtractRegionFromResult returns start and end line numbers (0 when not present)
// taken from the SARIF result's first location region.
func ExtractRegionFromResult(res *sarif.Result) (int, int) {
	if res == nil || len(res.Locations) == 0 {
		return 0, 0
	}

	loc := res.Locations[0]
	if loc.PhysicalLocation == nil || loc.PhysicalLocation.Region == nil {
		return 0, 0
	}
	start := 0
	end := 0

	if loc.PhysicalLocation.Region.StartLine != nil {
		start = *loc.PhysicalLocation.Region.StartLine
	}
	if loc.PhysicalLocation.Region.EndLine != nil {
		end = *loc.PhysicalLocation.Region.EndLine
	}
	if end == 0 {
		end = start
	}
	return start, end
}

// DisplayRuleHeading returns the preferred human-friendly rule heading:
// 1. rule.ShortDescription.Text when available.
// 2. rule.Name when available.
// 3. rule.ID as a fallback.
func DisplayRuleHeading(rule *sarif.ReportingDescriptor) string {
	if rule != nil {
		if rule.ShortDescription != nil && rule.ShortDescription.Text != nil {
			if heading := strings.TrimSpace(*rule.ShortDescription.Text); heading != "" {
				return heading
			}
		}
		if rule.Name != nil {
			if heading := strings.TrimSpace(*rule.Name); heading != "" {
				return heading
			}
		}
		return strings.TrimSpace(rule.ID)
	}
	return ""
}
