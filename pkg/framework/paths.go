package framework

import (
	"path"
	"strings"
)

// PathResult is a computed path together with a flag telling whether it is
// exact or a best-effort fallback.
type PathResult struct {
	Path     string
	Degraded bool
	Err      error
}

// NormalizePath converts separators to forward slashes and cleans the path.
// An empty input stays empty.
func NormalizePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return ""
	}
	p = strings.ReplaceAll(p, "\\", "/")
	return path.Clean(p)
}

// WithLeadingSlash returns p with exactly one leading slash. An empty p stays empty.
func WithLeadingSlash(p string) string {
	if p == "" {
		return ""
	}
	return "/" + strings.TrimLeft(p, "/")
}

// TrimRoot strips root from p on a path segment boundary. The result keeps a
// leading slash, so "/site/Login.aspx" under "/site" becomes "/Login.aspx".
// When p is not under root, the result carries fallback and is flagged as
// degraded. An empty root leaves p untouched.
func TrimRoot(root, p, fallback string) PathResult {
	cleanPath := NormalizePath(p)
	cleanRoot := NormalizePath(root)

	if cleanRoot == "" {
		return PathResult{Path: cleanPath}
	}
	if cleanRoot == "/" || cleanRoot == "." {
		return PathResult{Path: WithLeadingSlash(cleanPath)}
	}
	if cleanPath == cleanRoot {
		return PathResult{Path: "/"}
	}
	if strings.HasPrefix(cleanPath, cleanRoot+"/") {
		return PathResult{Path: cleanPath[len(cleanRoot):]}
	}

	return PathResult{
		Path:     fallback,
		Degraded: true,
		Err:      NewDegradedPathError(cleanRoot, cleanPath, fallback),
	}
}

// relativeOrSelf strips root from p when possible and otherwise returns p
// itself, normalized with a leading slash.
func relativeOrSelf(root, p string) string {
	if p == "" {
		return ""
	}
	self := WithLeadingSlash(NormalizePath(p))
	res := TrimRoot(root, p, self)
	if res.Degraded {
		return res.Path
	}
	return WithLeadingSlash(res.Path)
}
