package framework

import (
	"github.com/scan-io-git/endpointmap/internal/findings"
)

// RootResolver infers the filesystem and URL roots of an application from the
// evidence collected in a scan. An empty string means the root is unresolved.
type RootResolver interface {
	FindOrParseProjectRoot(scan *findings.Scan, extension string) string
	FindOrParseURLPath(scan *findings.Scan) string
}

// Roots is the resolved root pair of a scan. It is computed once and then
// shared read-only by every translator working on that scan.
type Roots struct {
	FilePathRoot string
	URLPathRoot  string
	// URLRootInferred is set when the URL root was copied from the file root
	// for lack of better evidence.
	URLRootInferred bool
}

// ResolveRoots asks the resolver for both roots. When no URL root can be found
// but a file root exists, the layout is assumed to be mirrored.
func ResolveRoots(resolver RootResolver, scan *findings.Scan, extension string) Roots {
	roots := Roots{
		FilePathRoot: resolver.FindOrParseProjectRoot(scan, extension),
		URLPathRoot:  resolver.FindOrParseURLPath(scan),
	}
	if roots.URLPathRoot == "" && roots.FilePathRoot != "" {
		roots.URLPathRoot = roots.FilePathRoot
		roots.URLRootInferred = true
	}
	return roots
}

// ApplyTo persists the roots on the scan, overwriting previous values.
func (r Roots) ApplyTo(scan *findings.Scan) {
	scan.SetFilePathRoot(r.FilePathRoot)
	scan.SetURLPathRoot(r.URLPathRoot)
}

// Degraded reports whether translation will run on best-effort roots.
func (r Roots) Degraded() bool {
	return r.FilePathRoot == "" || r.URLRootInferred
}
