package registry

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scan-io-git/endpointmap/internal/findings"
	"github.com/scan-io-git/endpointmap/internal/pathfinder"
	"github.com/scan-io-git/endpointmap/pkg/framework"
	"github.com/scan-io-git/endpointmap/pkg/framework/jsp"
	"github.com/scan-io-git/endpointmap/pkg/framework/webforms"
	"github.com/scan-io-git/endpointmap/pkg/shared/errors"
)

func TestNewTranslatorSelectsVariant(t *testing.T) {
	tests := []struct {
		name          string
		frameworkType framework.Type
		check         func(t *testing.T, tr framework.Translator)
	}{
		{
			name:          "jsp",
			frameworkType: framework.TypeJSP,
			check: func(t *testing.T, tr framework.Translator) {
				_, ok := tr.(*jsp.Translator)
				assert.True(t, ok)
			},
		},
		{
			name:          "webforms",
			frameworkType: framework.TypeWebForms,
			check: func(t *testing.T, tr framework.Translator) {
				_, ok := tr.(*webforms.Translator)
				assert.True(t, ok)
			},
		},
		{
			name:          "none",
			frameworkType: framework.TypeNone,
			check: func(t *testing.T, tr framework.Translator) {
				_, ok := tr.(*DefaultTranslator)
				assert.True(t, ok)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scan := findings.NewScan("s", "sast", []*findings.Finding{{FilePath: "/src/a/x.jsp"}, {FilePath: "/src/b/y.jsp"}})
			tr := NewTranslator(framework.MergeConfiguration{FrameworkType: tt.frameworkType}, scan, pathfinder.New(nil), nil, nil)
			tt.check(t, tr)
			assert.Equal(t, "/src", scan.FilePathRoot)
			assert.Equal(t, "/src", scan.URLPathRoot)
		})
	}
}

func TestDefaultTranslator(t *testing.T) {
	scan := findings.NewScan("s", "dast", []*findings.Finding{
		{URLPath: "/shop/cart.php", Parameter: "id"},
		{URLPath: "/shop/admin/users.php"},
	})
	tr := NewDefaultTranslator(framework.MergeConfiguration{}, scan, pathfinder.New(nil), nil, nil)

	assert.Equal(t, "", scan.FilePathRoot)
	assert.Equal(t, "/shop", scan.URLPathRoot)
	assert.Equal(t, "/cart.php", tr.URLPath(scan.Findings[0]))
	assert.Equal(t, "/admin/users.php", tr.FileName(scan.Findings[1]))
}

func TestBuildEndpoints(t *testing.T) {
	extractions := []framework.PageExtraction{
		{Identity: "Login.aspx", File: "/site/Login.aspx", Parameters: []string{"username"}},
		{Identity: "Login.aspx.cs", LineParameters: map[int][]string{12: {"password"}}},
	}

	endpoints, err := BuildEndpoints(framework.TypeWebForms, "/site", extractions, false, nil)
	require.NoError(t, err)
	require.Len(t, endpoints, 1)
	assert.Equal(t, "/Login.aspx", endpoints[0].URLPath())

	jspPages := []framework.PageExtraction{
		{Identity: "web/index.jsp", LineParameters: map[int][]string{3: {"q"}}},
		{Identity: "other/x.jsp"},
	}
	endpoints, err = BuildEndpoints(framework.TypeJSP, "web", jspPages, false, nil)
	require.NoError(t, err)
	require.Len(t, endpoints, 2)
	assert.Equal(t, "/index.jsp", endpoints[0].URLPath())

	_, err = BuildEndpoints(framework.TypeJSP, "web", jspPages, true, nil)
	assert.Error(t, err)

	_, err = BuildEndpoints(framework.TypeNone, "/", nil, false, nil)
	var notImplemented *errors.NotImplementedError
	assert.True(t, stderrors.As(err, &notImplemented))
}
