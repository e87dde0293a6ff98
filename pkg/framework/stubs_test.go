package framework

import (
	"github.com/scan-io-git/endpointmap/internal/findings"
)

type stubEndpoint struct {
	url    string
	file   string
	params map[string]int
	lines  [2]int
}

func (e stubEndpoint) URLPath() string  { return e.url }
func (e stubEndpoint) FilePath() string { return e.file }
func (e stubEndpoint) Parameters() []string {
	var out []string
	for p := range e.params {
		out = append(out, p)
	}
	return out
}
func (e stubEndpoint) HTTPMethods() []string   { return []string{"GET"} }
func (e stubEndpoint) StartingLineNumber() int { return e.lines[0] }
func (e stubEndpoint) LineNumberForParameter(name string) int {
	if l, ok := e.params[name]; ok {
		return l
	}
	return -1
}
func (e stubEndpoint) MatchesLineNumber(line int) bool {
	return e.lines == [2]int{} || (line >= e.lines[0] && line <= e.lines[1])
}
func (e stubEndpoint) LintLine() []string { return nil }

type stubResolver struct {
	fileRoot string
	urlRoot  string
	calls    []string
}

func (r *stubResolver) FindOrParseProjectRoot(_ *findings.Scan, ext string) string {
	r.calls = append(r.calls, "project:"+ext)
	return r.fileRoot
}

func (r *stubResolver) FindOrParseURLPath(_ *findings.Scan) string {
	r.calls = append(r.calls, "url")
	return r.urlRoot
}
