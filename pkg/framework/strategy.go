package framework

import (
	"github.com/scan-io-git/endpointmap/internal/findings"
)

// FileNameDefault derives the file path purely from the finding's own fields.
// Static findings are made relative to the file root; dynamic findings assume
// the URL layout mirrors the file layout.
func FileNameDefault(roots Roots, f *findings.Finding) string {
	switch {
	case f == nil:
		return ""
	case f.IsStatic():
		return relativeOrSelf(roots.FilePathRoot, f.FilePath)
	case f.URLPath != "":
		return relativeOrSelf(roots.URLPathRoot, f.URLPath)
	case f.FilePath != "":
		return relativeOrSelf(roots.FilePathRoot, f.FilePath)
	}
	return ""
}

// URLPathDefault derives the URL path purely from the finding's own fields.
func URLPathDefault(roots Roots, f *findings.Finding) string {
	switch {
	case f == nil:
		return ""
	case f.URLPath != "":
		return relativeOrSelf(roots.URLPathRoot, f.URLPath)
	case f.FilePath != "":
		return relativeOrSelf(roots.FilePathRoot, f.FilePath)
	}
	return ""
}

// QueryFor builds the endpoint lookup for a finding.
func QueryFor(roots Roots, f *findings.Finding) EndpointQuery {
	q := EndpointQuery{
		Parameter: f.Parameter,
		Line:      f.StartLine,
	}
	if f.IsDynamic() {
		q.URLPath = URLPathDefault(roots, f)
	} else {
		q.FilePath = FileNameDefault(roots, f)
	}
	return q
}

// FileNameWithSourceCode resolves the file through the endpoint database and
// falls back to FileNameDefault when no endpoint matches.
func FileNameWithSourceCode(roots Roots, db EndpointDatabase, f *findings.Finding) string {
	if f == nil {
		return ""
	}
	if db != nil {
		if e := db.FindBestMatch(QueryFor(roots, f)); e != nil {
			return e.FilePath()
		}
	}
	return FileNameDefault(roots, f)
}
