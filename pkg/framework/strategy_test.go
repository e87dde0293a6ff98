package framework

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scan-io-git/endpointmap/internal/findings"
)

func TestDefaultStrategies(t *testing.T) {
	roots := Roots{FilePathRoot: "/src/web", URLPathRoot: "/app"}

	tests := []struct {
		name     string
		finding  *findings.Finding
		wantFile string
		wantURL  string
	}{
		{
			name:     "static under root",
			finding:  &findings.Finding{FilePath: "/src/web/login.jsp", StartLine: 5},
			wantFile: "/login.jsp",
			wantURL:  "/login.jsp",
		},
		{
			name:     "static outside root",
			finding:  &findings.Finding{FilePath: `lib\util.jsp`},
			wantFile: "/lib/util.jsp",
			wantURL:  "/lib/util.jsp",
		},
		{
			name:     "dynamic",
			finding:  &findings.Finding{URLPath: "/app/search.jsp", Parameter: "q"},
			wantFile: "/search.jsp",
			wantURL:  "/search.jsp",
		},
		{
			name:    "nothing",
			finding: &findings.Finding{},
		},
		{
			name: "nil",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantFile, FileNameDefault(roots, tt.finding))
			assert.Equal(t, tt.wantURL, URLPathDefault(roots, tt.finding))
		})
	}
}

func TestFileNameWithSourceCode(t *testing.T) {
	roots := Roots{FilePathRoot: "/src", URLPathRoot: "/app"}
	db := NewEndpointDatabase([]Endpoint{
		stubEndpoint{url: "/login.jsp", file: "WebContent/jsp/login.jsp", params: map[string]int{"user": 3}},
	})

	dynamic := &findings.Finding{URLPath: "/app/login.jsp", Parameter: "user"}
	assert.Equal(t, "WebContent/jsp/login.jsp", FileNameWithSourceCode(roots, db, dynamic))
	assert.Equal(t, "/login.jsp", FileNameDefault(roots, dynamic))

	unknown := &findings.Finding{URLPath: "/app/other.jsp"}
	assert.Equal(t, "/other.jsp", FileNameWithSourceCode(roots, db, unknown))
	assert.Equal(t, "/other.jsp", FileNameWithSourceCode(roots, nil, unknown))
	assert.Equal(t, "", FileNameWithSourceCode(roots, db, nil))
}
