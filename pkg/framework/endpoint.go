// Package framework holds the contracts shared by every framework variant:
// endpoints that know both URL-space and file-space coordinates of a page,
// and translators that turn raw finding coordinates into canonical ones.
package framework

// PageExtraction is the parse result of a single physical file as produced by
// an external parser. Values are never mutated once produced.
type PageExtraction struct {
	Identity       string           `yaml:"identity" json:"identity"`
	File           string           `yaml:"file" json:"file"`
	Parameters     []string         `yaml:"parameters" json:"parameters"`
	LineParameters map[int][]string `yaml:"lines" json:"lines"`
}

// Endpoint is a modeled application entry point. Implementations are
// immutable after construction and safe for concurrent reads.
type Endpoint interface {
	URLPath() string
	FilePath() string
	Parameters() []string
	HTTPMethods() []string
	StartingLineNumber() int
	// LineNumberForParameter returns the first line the parameter was seen
	// on, or -1 when the endpoint does not know the parameter.
	LineNumberForParameter(name string) int
	MatchesLineNumber(line int) bool
	LintLine() []string
}
