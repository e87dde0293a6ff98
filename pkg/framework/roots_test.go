package framework

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scan-io-git/endpointmap/internal/findings"
)

func TestResolveRoots(t *testing.T) {
	tests := []struct {
		name         string
		fileRoot     string
		urlRoot      string
		want         Roots
		wantDegraded bool
	}{
		{
			name:     "both resolved",
			fileRoot: "/src",
			urlRoot:  "/app",
			want:     Roots{FilePathRoot: "/src", URLPathRoot: "/app"},
		},
		{
			name:         "url root falls back to file root",
			fileRoot:     "/src",
			want:         Roots{FilePathRoot: "/src", URLPathRoot: "/src", URLRootInferred: true},
			wantDegraded: true,
		},
		{
			name:         "nothing resolved",
			want:         Roots{},
			wantDegraded: true,
		},
		{
			name:         "url only",
			urlRoot:      "/app",
			want:         Roots{URLPathRoot: "/app"},
			wantDegraded: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := &stubResolver{fileRoot: tt.fileRoot, urlRoot: tt.urlRoot}
			roots := ResolveRoots(resolver, findings.NewScan("s", "x", nil), ".jsp")
			assert.Equal(t, tt.want, roots)
			assert.Equal(t, tt.wantDegraded, roots.Degraded())
			assert.Equal(t, []string{"project:.jsp", "url"}, resolver.calls)
		})
	}
}

func TestRootsApplyToOverwrites(t *testing.T) {
	scan := findings.NewScan("s", "x", nil)
	scan.SetFilePathRoot("/old")
	scan.SetURLPathRoot("/old-url")

	roots := Roots{FilePathRoot: "/src", URLPathRoot: "/src"}
	roots.ApplyTo(scan)
	roots.ApplyTo(scan)

	assert.Equal(t, "/src", scan.FilePathRoot)
	assert.Equal(t, "/src", scan.URLPathRoot)
}
