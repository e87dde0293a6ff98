// Package webforms models ASP.NET Web Forms pages: a markup file and its
// code-behind reconciled into one endpoint.
package webforms

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/hashicorp/go-hclog"

	"github.com/scan-io-git/endpointmap/pkg/framework"
)

// CodeBehindSuffix is appended to a markup identity to name its code-behind.
const CodeBehindSuffix = ".cs"

// Endpoint is a Web Forms page. It is immutable after NewEndpoint returns.
type Endpoint struct {
	markupIdentity     string
	codeBehindIdentity string
	urlPath            string
	degraded           bool
	lines              map[string][]int
}

type options struct {
	logger      hclog.Logger
	strictPaths bool
}

// Option configures NewEndpoint.
type Option func(*options)

// WithLogger sets the logger used to report degraded paths.
func WithLogger(logger hclog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithStrictPaths turns a markup file outside the root into a construction error.
func WithStrictPaths(strict bool) Option {
	return func(o *options) {
		o.strictPaths = strict
	}
}

// NewEndpoint pairs a markup extraction with its code-behind extraction. The
// code-behind identity must be the markup identity followed by ".cs".
func NewEndpoint(root string, markup, codeBehind framework.PageExtraction, opts ...Option) (*Endpoint, error) {
	o := options{logger: hclog.NewNullLogger()}
	for _, opt := range opts {
		opt(&o)
	}

	if codeBehind.Identity != markup.Identity+CodeBehindSuffix {
		return nil, framework.NewConfigurationError("webforms",
			fmt.Sprintf("markup %q and code-behind %q do not describe the same page", markup.Identity, codeBehind.Identity),
			framework.ErrInvalidPairing)
	}

	res := calculateURLPath(root, markup)
	if res.Degraded {
		o.logger.Error("markup file is outside of the web root", "error", res.Err)
		if o.strictPaths {
			return nil, res.Err
		}
	}

	return &Endpoint{
		markupIdentity:     markup.Identity,
		codeBehindIdentity: codeBehind.Identity,
		urlPath:            res.Path,
		degraded:           res.Degraded,
		lines:              collectParameters(markup, codeBehind),
	}, nil
}

// calculateURLPath strips the absolute root from the absolute markup path and
// falls back to the bare markup identity.
func calculateURLPath(root string, markup framework.PageExtraction) framework.PathResult {
	file := markup.File
	if file == "" {
		file = markup.Identity
	}
	absFile, err := filepath.Abs(file)
	if err != nil {
		absFile = filepath.Clean(file)
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		absRoot = filepath.Clean(root)
	}
	return framework.TrimRoot(filepath.ToSlash(absRoot), filepath.ToSlash(absFile), markup.Identity)
}

// collectParameters builds the parameter to line index. Markup parameters have
// no line attribution and are put on line 0 next to whatever the code-behind
// recorded there.
func collectParameters(markup, codeBehind framework.PageExtraction) map[string][]int {
	buckets := make(map[int]map[string]struct{}, len(codeBehind.LineParameters)+1)
	buckets[0] = make(map[string]struct{})
	for line, params := range codeBehind.LineParameters {
		if buckets[line] == nil {
			buckets[line] = make(map[string]struct{}, len(params))
		}
		for _, p := range params {
			buckets[line][p] = struct{}{}
		}
	}
	for _, p := range markup.Parameters {
		buckets[0][p] = struct{}{}
	}

	index := make(map[string][]int)
	for line, params := range buckets {
		for p := range params {
			index[p] = append(index[p], line)
		}
	}
	for _, lines := range index {
		sort.Ints(lines)
	}
	return index
}

func (e *Endpoint) URLPath() string {
	return e.urlPath
}

// FilePath is the code-behind identity; findings on the page logic land there.
func (e *Endpoint) FilePath() string {
	return e.codeBehindIdentity
}

// MarkupIdentity is the identity of the markup file.
func (e *Endpoint) MarkupIdentity() string {
	return e.markupIdentity
}

func (e *Endpoint) Parameters() []string {
	params := make([]string, 0, len(e.lines))
	for p := range e.lines {
		params = append(params, p)
	}
	sort.Strings(params)
	return params
}

// HTTPMethods is always GET; verbs are not observable from parameter collection.
func (e *Endpoint) HTTPMethods() []string {
	return []string{"GET"}
}

func (e *Endpoint) StartingLineNumber() int {
	return 0
}

func (e *Endpoint) LineNumberForParameter(name string) int {
	if lines, ok := e.lines[name]; ok && len(lines) > 0 {
		return lines[0]
	}
	return -1
}

// MatchesLineNumber is always true: page lifecycle code cannot be attributed
// to line ranges.
func (e *Endpoint) MatchesLineNumber(int) bool {
	return true
}

func (e *Endpoint) LintLine() []string {
	return []string{}
}

// Degraded reports whether URLPath is the bare identity fallback.
func (e *Endpoint) Degraded() bool {
	return e.degraded
}

func (e *Endpoint) String() string {
	return fmt.Sprintf("[%s -> %s] %v", e.urlPath, e.codeBehindIdentity, e.Parameters())
}

var _ framework.Endpoint = (*Endpoint)(nil)
