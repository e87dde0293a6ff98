package extraction

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scan-io-git/endpointmap/pkg/framework"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "pages.yml", `
root: site
framework: webforms
pages:
  - identity: /Login.aspx
    file: site/Login.aspx
    parameters: [ReturnUrl]
  - identity: /Login.aspx.cs
    file: site/Login.aspx.cs
    lines:
      10: [txtUser]
      12: [txtPass, txtUser]
`)

	f, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "site"), f.Root)
	require.Len(t, f.Pages, 2)
	assert.Equal(t, []string{"ReturnUrl"}, f.Pages[0].Parameters)
	assert.Equal(t, filepath.Join(dir, "site", "Login.aspx"), f.Pages[0].File)
	assert.Equal(t, map[int][]string{10: {"txtUser"}, 12: {"txtPass", "txtUser"}}, f.Pages[1].LineParameters)

	ft, err := f.FrameworkType(framework.TypeJSP)
	require.NoError(t, err)
	assert.Equal(t, framework.TypeWebForms, ft)
}

func TestLoadJSON(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "pages.json", `{
  "root": "/srv/app/WebContent",
  "pages": [
    {"identity": "/index.jsp", "file": "index.jsp", "lines": {"3": ["q"]}}
  ]
}`)

	f, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "/srv/app/WebContent", f.Root)
	require.Len(t, f.Pages, 1)
	assert.Equal(t, []string{"q"}, f.Pages[0].LineParameters[3])
	assert.Equal(t, filepath.Join(dir, "index.jsp"), f.Pages[0].File)

	ft, err := f.FrameworkType(framework.TypeJSP)
	require.NoError(t, err)
	assert.Equal(t, framework.TypeJSP, ft)
}

func TestLoadDefaultsRootToFolder(t *testing.T) {
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	path := writeFile(t, dir, "pages.yml", "pages: []\n")

	f, err := Load(path, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, f.Root)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		path string
	}{
		{name: "missing", path: filepath.Join(dir, "absent.yml")},
		{name: "directory", path: dir},
		{name: "malformed", path: writeFile(t, dir, "bad.yml", "pages: [: :")},
		{name: "no identity", path: writeFile(t, dir, "anon.yml", "pages:\n  - file: a.jsp\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path, nil)
			assert.Error(t, err)
		})
	}
}

func TestFrameworkTypeUnknown(t *testing.T) {
	f := &File{Framework: "rails"}
	_, err := f.FrameworkType(framework.TypeNone)
	assert.Error(t, err)
}

func TestEndpointsWebForms(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "pages.yml", `
root: site
pages:
  - identity: /Account/Login.aspx
    file: site/Account/Login.aspx
    parameters: [ReturnUrl]
  - identity: /Account/Login.aspx.cs
    file: site/Account/Login.aspx.cs
    lines:
      10: [txtUser]
  - identity: /Orphan.aspx
    file: site/Orphan.aspx
`)

	f, err := Load(path, nil)
	require.NoError(t, err)

	endpoints, err := f.Endpoints(framework.TypeWebForms, true, nil)
	require.NoError(t, err)
	require.Len(t, endpoints, 1)
	assert.Equal(t, "/Account/Login.aspx", endpoints[0].URLPath())
	assert.Equal(t, "/Account/Login.aspx.cs", endpoints[0].FilePath())
	assert.Equal(t, []string{"ReturnUrl", "txtUser"}, endpoints[0].Parameters())
	assert.Equal(t, 10, endpoints[0].LineNumberForParameter("txtUser"))
}

func TestEndpointsJSPStrict(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "pages.yml", `
root: WebContent
pages:
  - identity: /index.jsp
    file: WebContent/index.jsp
  - identity: /stray.jsp
    file: other/stray.jsp
`)

	f, err := Load(path, nil)
	require.NoError(t, err)

	_, err = f.Endpoints(framework.TypeJSP, true, nil)
	assert.ErrorIs(t, err, framework.ErrRootMismatch)

	endpoints, err := f.Endpoints(framework.TypeJSP, false, nil)
	require.NoError(t, err)
	require.Len(t, endpoints, 2)
	assert.Equal(t, "/index.jsp", endpoints[0].URLPath())
	assert.Equal(t, "/stray.jsp", endpoints[1].URLPath())
}
