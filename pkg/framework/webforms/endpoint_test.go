package webforms

import (
	"errors"
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scan-io-git/endpointmap/pkg/framework"
)

func loginPages() (framework.PageExtraction, framework.PageExtraction) {
	markup := framework.PageExtraction{
		Identity:   "Login.aspx",
		File:       "/site/Login.aspx",
		Parameters: []string{"username"},
	}
	codeBehind := framework.PageExtraction{
		Identity: "Login.aspx.cs",
		File:     "/site/Login.aspx.cs",
		LineParameters: map[int][]string{
			12: {"password"},
			20: {"username"},
		},
	}
	return markup, codeBehind
}

func TestNewEndpointLoginPage(t *testing.T) {
	markup, codeBehind := loginPages()

	e, err := NewEndpoint("/site", markup, codeBehind)
	require.NoError(t, err)

	assert.Equal(t, "/Login.aspx", e.URLPath())
	assert.Equal(t, "Login.aspx.cs", e.FilePath())
	assert.Equal(t, "Login.aspx", e.MarkupIdentity())
	assert.Equal(t, []string{"password", "username"}, e.Parameters())
	assert.Equal(t, 0, e.LineNumberForParameter("username"))
	assert.Equal(t, 12, e.LineNumberForParameter("password"))
	assert.Equal(t, -1, e.LineNumberForParameter("csrf"))
	assert.True(t, e.MatchesLineNumber(999))
	assert.True(t, e.MatchesLineNumber(-5))
	assert.Equal(t, []string{"GET"}, e.HTTPMethods())
	assert.Equal(t, 0, e.StartingLineNumber())
	assert.Empty(t, e.LintLine())
	assert.NotNil(t, e.LintLine())
	assert.False(t, e.Degraded())
}

func TestNewEndpointNamingConvention(t *testing.T) {
	tests := []struct {
		markup     string
		codeBehind string
		wantErr    bool
	}{
		{markup: "Login.aspx", codeBehind: "Login.aspx.cs"},
		{markup: "Admin/Users.aspx", codeBehind: "Admin/Users.aspx.cs"},
		{markup: "Site.master", codeBehind: "Site.master.cs"},
		{markup: "", codeBehind: ".cs"},
		{markup: "Login.aspx", codeBehind: "Login.aspx.vb", wantErr: true},
		{markup: "Login.aspx", codeBehind: "login.aspx.cs", wantErr: true},
		{markup: "Login.aspx", codeBehind: "Login.cs", wantErr: true},
		{markup: "Login.aspx", codeBehind: "Login.aspx", wantErr: true},
		{markup: "Login.aspx", codeBehind: "Login.aspx.cs.cs", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s+%s", tt.markup, tt.codeBehind), func(t *testing.T) {
			markup := framework.PageExtraction{Identity: tt.markup, File: "/site/" + tt.markup}
			codeBehind := framework.PageExtraction{Identity: tt.codeBehind}

			e, err := NewEndpoint("/site", markup, codeBehind)
			if !tt.wantErr {
				require.NoError(t, err)
				assert.NotNil(t, e)
				return
			}
			require.Error(t, err)
			assert.Nil(t, e)

			var cfgErr *framework.ConfigurationError
			assert.True(t, errors.As(err, &cfgErr))
			assert.True(t, errors.Is(err, framework.ErrInvalidPairing))
		})
	}
}

func TestNewEndpointURLPathFallback(t *testing.T) {
	markup, codeBehind := loginPages()
	markup.File = "/elsewhere/Login.aspx"

	e, err := NewEndpoint("/site", markup, codeBehind)
	require.NoError(t, err)
	assert.Equal(t, "Login.aspx", e.URLPath())
	assert.True(t, e.Degraded())

	markup.File = "/site2/Login.aspx"
	e, err = NewEndpoint("/site", markup, codeBehind)
	require.NoError(t, err)
	assert.Equal(t, "Login.aspx", e.URLPath())
	assert.True(t, e.Degraded())
}

func TestNewEndpointStrictPaths(t *testing.T) {
	markup, codeBehind := loginPages()
	markup.File = "/elsewhere/Login.aspx"

	e, err := NewEndpoint("/site", markup, codeBehind, WithStrictPaths(true))
	require.Error(t, err)
	assert.Nil(t, e)
	assert.True(t, errors.Is(err, framework.ErrRootMismatch))
}

func TestNewEndpointNestedPage(t *testing.T) {
	markup := framework.PageExtraction{Identity: "Users.aspx", File: "/site/Admin/Users.aspx"}
	codeBehind := framework.PageExtraction{Identity: "Users.aspx.cs"}

	e, err := NewEndpoint("/site/", markup, codeBehind)
	require.NoError(t, err)
	assert.Equal(t, "/Admin/Users.aspx", e.URLPath())
	assert.Empty(t, e.Parameters())
}

func TestParametersUnionAcrossBuckets(t *testing.T) {
	markup := framework.PageExtraction{
		Identity:   "Order.aspx",
		File:       "/site/Order.aspx",
		Parameters: []string{"qty", "sku", "note"},
	}
	codeBehind := framework.PageExtraction{
		Identity: "Order.aspx.cs",
		LineParameters: map[int][]string{
			0:  {"session"},
			7:  {"sku", "coupon"},
			3:  {"sku", "sku"},
			41: {"qty", "coupon", "address"},
			19: {},
		},
	}

	e, err := NewEndpoint("/site", markup, codeBehind)
	require.NoError(t, err)

	want := map[string]struct{}{}
	for _, p := range markup.Parameters {
		want[p] = struct{}{}
	}
	for _, params := range codeBehind.LineParameters {
		for _, p := range params {
			want[p] = struct{}{}
		}
	}
	var wantList []string
	for p := range want {
		wantList = append(wantList, p)
	}
	sort.Strings(wantList)

	assert.Equal(t, wantList, e.Parameters())
	assert.Equal(t, 0, e.LineNumberForParameter("sku"))
	assert.Equal(t, 0, e.LineNumberForParameter("session"))
	assert.Equal(t, 7, e.LineNumberForParameter("coupon"))
	assert.Equal(t, 41, e.LineNumberForParameter("address"))
	assert.Equal(t, []int{0, 3, 7}, e.lines["sku"])
	assert.Equal(t, []int{0, 41}, e.lines["qty"])
}

func TestNewEndpointDoesNotMutateExtractions(t *testing.T) {
	markup, codeBehind := loginPages()

	_, err := NewEndpoint("/site", markup, codeBehind)
	require.NoError(t, err)

	_, hasZero := codeBehind.LineParameters[0]
	assert.False(t, hasZero)
	assert.Len(t, codeBehind.LineParameters, 2)
}
