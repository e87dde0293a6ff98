package framework

import (
	"sort"
	"strings"
)

// EndpointQuery describes what is known about a finding when looking up the
// endpoint it belongs to.
type EndpointQuery struct {
	URLPath   string
	FilePath  string
	Parameter string
	Line      int
}

// EndpointDatabase answers which endpoint a finding most likely hits.
type EndpointDatabase interface {
	FindBestMatch(q EndpointQuery) Endpoint
	Endpoints() []Endpoint
}

type endpointDatabase struct {
	endpoints []Endpoint
	byURL     map[string][]Endpoint
}

// NewEndpointDatabase indexes the given endpoints. The database is read-only
// after construction.
func NewEndpointDatabase(endpoints []Endpoint) EndpointDatabase {
	sorted := make([]Endpoint, len(endpoints))
	copy(sorted, endpoints)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].URLPath() != sorted[j].URLPath() {
			return sorted[i].URLPath() < sorted[j].URLPath()
		}
		return sorted[i].FilePath() < sorted[j].FilePath()
	})

	db := &endpointDatabase{
		endpoints: sorted,
		byURL:     make(map[string][]Endpoint),
	}
	for _, e := range sorted {
		key := urlKey(e.URLPath())
		db.byURL[key] = append(db.byURL[key], e)
	}
	return db
}

func (db *endpointDatabase) Endpoints() []Endpoint {
	return db.endpoints
}

// FindBestMatch looks endpoints up by URL path first and by file path when no
// URL path is given. Among the candidates an endpoint that knows the queried
// parameter wins; ties go to the first endpoint in URL order.
func (db *endpointDatabase) FindBestMatch(q EndpointQuery) Endpoint {
	var candidates []Endpoint
	switch {
	case q.URLPath != "":
		candidates = db.byURL[urlKey(q.URLPath)]
	case q.FilePath != "":
		for _, e := range db.endpoints {
			if sameFile(e.FilePath(), q.FilePath) && (q.Line <= 0 || e.MatchesLineNumber(q.Line)) {
				candidates = append(candidates, e)
			}
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	if q.Parameter != "" {
		for _, e := range candidates {
			if e.LineNumberForParameter(q.Parameter) >= 0 {
				return e
			}
		}
	}
	return candidates[0]
}

// urlKey normalizes a URL path for lookups: no query string, lower case,
// one leading slash and no trailing slash.
func urlKey(p string) string {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	p = NormalizePath(p)
	if p == "" || p == "." {
		return "/"
	}
	return strings.ToLower(WithLeadingSlash(p))
}

// sameFile reports whether two paths name the same file, allowing either one
// to be a suffix of the other on a segment boundary.
func sameFile(a, b string) bool {
	a = strings.TrimLeft(NormalizePath(a), "/")
	b = strings.TrimLeft(NormalizePath(b), "/")
	if a == "" || b == "" {
		return false
	}
	if a == b {
		return true
	}
	return strings.HasSuffix(a, "/"+b) || strings.HasSuffix(b, "/"+a)
}
