package jsp

import (
	"sort"

	"github.com/hashicorp/go-hclog"

	"github.com/scan-io-git/endpointmap/pkg/framework"
)

// Endpoint is a single JSP page.
type Endpoint struct {
	identity  string
	urlPath   string
	degraded  bool
	startLine int
	endLine   int
	lines     map[string][]int
}

// NewEndpoint builds the endpoint of one JSP file. webRoot is the directory
// the application is deployed from. Declared parameters without line evidence
// are attributed to the first line that carries parameters.
func NewEndpoint(webRoot string, page framework.PageExtraction, logger hclog.Logger) *Endpoint {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	file := page.File
	if file == "" {
		file = page.Identity
	}
	fallback := framework.WithLeadingSlash(framework.NormalizePath(page.Identity))
	res := framework.TrimRoot(webRoot, file, fallback)
	if res.Degraded {
		logger.Warn("jsp file is outside of the web root", "error", res.Err)
	}

	urlPath := res.Path
	if !res.Degraded {
		urlPath = framework.WithLeadingSlash(urlPath)
	}

	e := &Endpoint{
		identity: page.Identity,
		urlPath:  urlPath,
		degraded: res.Degraded,
		lines:    make(map[string][]int),
	}

	first := true
	for line, params := range page.LineParameters {
		if len(params) == 0 {
			continue
		}
		if first || line < e.startLine {
			e.startLine = line
		}
		if first || line > e.endLine {
			e.endLine = line
		}
		first = false
		seen := make(map[string]struct{}, len(params))
		for _, p := range params {
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			e.lines[p] = append(e.lines[p], line)
		}
	}
	for _, p := range page.Parameters {
		if _, ok := e.lines[p]; !ok {
			e.lines[p] = []int{e.startLine}
		}
	}
	for _, lines := range e.lines {
		sort.Ints(lines)
	}
	return e
}

func (e *Endpoint) URLPath() string {
	return e.urlPath
}

func (e *Endpoint) FilePath() string {
	return e.identity
}

func (e *Endpoint) Parameters() []string {
	params := make([]string, 0, len(e.lines))
	for p := range e.lines {
		params = append(params, p)
	}
	sort.Strings(params)
	return params
}

// HTTPMethods is fixed: a JSP page serves both verbs.
func (e *Endpoint) HTTPMethods() []string {
	return []string{"GET", "POST"}
}

func (e *Endpoint) StartingLineNumber() int {
	return e.startLine
}

func (e *Endpoint) LineNumberForParameter(name string) int {
	if lines, ok := e.lines[name]; ok && len(lines) > 0 {
		return lines[0]
	}
	return -1
}

// MatchesLineNumber accepts lines between the first and last line carrying
// parameters. A page without line evidence accepts any line.
func (e *Endpoint) MatchesLineNumber(line int) bool {
	if e.startLine == 0 && e.endLine == 0 {
		return true
	}
	return line >= e.startLine && line <= e.endLine
}

func (e *Endpoint) LintLine() []string {
	return []string{}
}

// Degraded reports whether URLPath is the identity fallback.
func (e *Endpoint) Degraded() bool {
	return e.degraded
}

var _ framework.Endpoint = (*Endpoint)(nil)
