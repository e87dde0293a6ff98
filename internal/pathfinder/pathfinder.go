// Package pathfinder infers the filesystem and URL roots of an application
// from the paths reported in a scan.
package pathfinder

import (
	"path"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/scan-io-git/endpointmap/internal/findings"
)

// CommonPathFinder resolves roots as the longest common directory of the
// reported paths. Roots already stored on the scan take precedence.
type CommonPathFinder struct {
	logger hclog.Logger
}

// New creates a CommonPathFinder.
func New(logger hclog.Logger) *CommonPathFinder {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &CommonPathFinder{logger: logger}
}

// FindOrParseProjectRoot returns the scan's file root or the common directory
// of the static findings. Files with the given extension are preferred; when
// none exist, all static files are considered.
func (f *CommonPathFinder) FindOrParseProjectRoot(scan *findings.Scan, extension string) string {
	if scan == nil {
		return ""
	}
	if scan.FilePathRoot != "" {
		return scan.FilePathRoot
	}

	var all, matching []string
	for _, finding := range scan.StaticFindings() {
		all = append(all, finding.FilePath)
		if extension != "" && strings.HasSuffix(strings.ToLower(finding.FilePath), strings.ToLower(extension)) {
			matching = append(matching, finding.FilePath)
		}
	}
	if len(matching) == 0 {
		matching = all
	}

	root := CommonDirectory(matching)
	f.logger.Debug("parsed project root", "extension", extension, "files", len(matching), "root", root)
	return root
}

// FindOrParseURLPath returns the scan's URL root or the common directory of
// the dynamic findings' URL paths.
func (f *CommonPathFinder) FindOrParseURLPath(scan *findings.Scan) string {
	if scan == nil {
		return ""
	}
	if scan.URLPathRoot != "" {
		return scan.URLPathRoot
	}

	var urls []string
	for _, finding := range scan.DynamicFindings() {
		if finding.URLPath != "" {
			urls = append(urls, finding.URLPath)
		}
	}

	root := CommonDirectory(urls)
	f.logger.Debug("parsed url root", "urls", len(urls), "root", root)
	return root
}

// CommonDirectory returns the longest directory shared by all paths. The last
// segment of every path is treated as a file name. Paths use either separator;
// the result uses forward slashes. It is empty when nothing is shared.
func CommonDirectory(paths []string) string {
	var common []string
	absolute := true
	for _, p := range paths {
		p = strings.ReplaceAll(strings.TrimSpace(p), "\\", "/")
		if p == "" {
			continue
		}
		if q := strings.IndexAny(p, "?#"); q >= 0 {
			p = p[:q]
		}
		absolute = absolute && strings.HasPrefix(p, "/")

		segments := strings.Split(strings.Trim(path.Clean(p), "/"), "/")
		dir := segments[:len(segments)-1]
		if common == nil {
			common = append([]string{}, dir...)
			continue
		}
		n := 0
		for n < len(common) && n < len(dir) && common[n] == dir[n] {
			n++
		}
		common = common[:n]
		if n == 0 {
			break
		}
	}

	if len(common) == 0 {
		return ""
	}
	joined := strings.Join(common, "/")
	if absolute {
		return "/" + joined
	}
	return joined
}
