package jsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scan-io-git/endpointmap/internal/findings"
	"github.com/scan-io-git/endpointmap/internal/pathfinder"
	"github.com/scan-io-git/endpointmap/pkg/framework"
)

type fixedResolver struct {
	fileRoot string
	urlRoot  string
}

func (r fixedResolver) FindOrParseProjectRoot(_ *findings.Scan, ext string) string {
	if ext != Extension {
		return ""
	}
	return r.fileRoot
}

func (r fixedResolver) FindOrParseURLPath(_ *findings.Scan) string {
	return r.urlRoot
}

func TestNewTranslatorURLRootFallsBackToFileRoot(t *testing.T) {
	scan := findings.NewScan("s", "sast", nil)

	tr := NewTranslator(framework.MergeConfiguration{}, scan, fixedResolver{fileRoot: "/src"}, nil, nil)

	assert.Equal(t, "/src", scan.FilePathRoot)
	assert.Equal(t, "/src", scan.URLPathRoot)
	assert.Equal(t, "/src", tr.Roots().URLPathRoot)
	assert.True(t, tr.Roots().URLRootInferred)
}

func TestNewTranslatorKeepsResolvedURLRoot(t *testing.T) {
	scan := findings.NewScan("s", "dast", nil)
	scan.SetURLPathRoot("/stale")

	NewTranslator(framework.MergeConfiguration{}, scan, fixedResolver{fileRoot: "/src", urlRoot: "/app"}, nil, nil)

	assert.Equal(t, "/src", scan.FilePathRoot)
	assert.Equal(t, "/app", scan.URLPathRoot)
}

func TestNewTranslatorUnresolvedRoots(t *testing.T) {
	scan := findings.NewScan("s", "dast", nil)
	scan.SetFilePathRoot("/previous")

	tr := NewTranslator(framework.MergeConfiguration{}, scan, fixedResolver{}, nil, nil)

	assert.Equal(t, "", scan.FilePathRoot)
	assert.Equal(t, "", scan.URLPathRoot)
	assert.True(t, tr.Roots().Degraded())

	f := &findings.Finding{URLPath: "/app/a.jsp"}
	assert.Equal(t, "/app/a.jsp", tr.URLPath(f))
}

func TestNewTranslatorIsIdempotent(t *testing.T) {
	scan := findings.NewScan("s", "mixed", []*findings.Finding{
		{FilePath: "/src/main/webapp/login.jsp", StartLine: 4},
		{FilePath: "/src/main/webapp/admin/users.jsp", StartLine: 9},
		{FilePath: "/src/main/java/Util.java", StartLine: 2},
	})
	resolver := pathfinder.New(nil)

	NewTranslator(framework.MergeConfiguration{}, scan, resolver, nil, nil)
	firstFile, firstURL := scan.FilePathRoot, scan.URLPathRoot
	require.Equal(t, "/src/main/webapp", firstFile)
	require.Equal(t, "/src/main/webapp", firstURL)

	NewTranslator(framework.MergeConfiguration{}, scan, resolver, nil, nil)
	assert.Equal(t, firstFile, scan.FilePathRoot)
	assert.Equal(t, firstURL, scan.URLPathRoot)
}

func TestFileNameDispatchesOnAccessLevel(t *testing.T) {
	roots := framework.Roots{FilePathRoot: "/src", URLPathRoot: "/app"}
	db := framework.NewEndpointDatabase([]framework.Endpoint{
		NewEndpoint("WebContent", framework.PageExtraction{
			Identity:       "WebContent/jsp/login.jsp",
			LineParameters: map[int][]string{5: {"user"}},
		}, nil),
	})
	f := &findings.Finding{URLPath: "/app/jsp/login.jsp", Parameter: "user"}

	full := NewTranslatorFromRoots(framework.MergeConfiguration{SourceCodeAccessLevel: framework.AccessFull}, roots, db)
	partial := NewTranslatorFromRoots(framework.MergeConfiguration{SourceCodeAccessLevel: framework.AccessPartial}, roots, db)
	none := NewTranslatorFromRoots(framework.MergeConfiguration{SourceCodeAccessLevel: framework.AccessNone}, roots, db)

	assert.Equal(t, "WebContent/jsp/login.jsp", full.FileName(f))
	assert.Equal(t, "/jsp/login.jsp", partial.FileName(f))
	assert.Equal(t, "/jsp/login.jsp", none.FileName(f))

	for _, tr := range []*Translator{full, partial, none} {
		assert.Equal(t, "/jsp/login.jsp", tr.URLPath(f))
	}
}

func TestStaticFindingTranslation(t *testing.T) {
	roots := framework.Roots{FilePathRoot: "/src/web", URLPathRoot: "/src/web"}
	tr := NewTranslatorFromRoots(framework.MergeConfiguration{}, roots, nil)

	f := &findings.Finding{FilePath: "/src/web/orders/list.jsp", StartLine: 17}
	assert.Equal(t, "/orders/list.jsp", tr.FileName(f))
	assert.Equal(t, "/orders/list.jsp", tr.URLPath(f))
}
