package bundler

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/jsmodule/cli/internal/errors"
	"github.com/jsmodule/cli/internal/source"
)

func TestBanner(t *testing.T) {
	want := "/***************************************************\n" +
		" * Bundled from 'lib/a.js'\n" +
		" ***************************************************/\n"
	assert.Equal(t, want, Banner("lib/a.js"))
}

func TestBundle_SingleResource(t *testing.T) {
	p := source.NewMap(map[string]string{"a.js": "var x=1;"})

	bundle, err := Bundle([]string{"a.js"}, ProviderContent(p))
	require.NoError(t, err)
	assert.Equal(t,
		"/***************************************************\n"+
			" * Bundled from 'a.js'\n"+
			" ***************************************************/\n"+
			"var x=1;\n",
		bundle)
}

func TestBundle_KeepsOrderAndExistingNewlines(t *testing.T) {
	p := source.NewMap(map[string]string{
		"jquery.js":   "var jQuery = {};\n",
		"calendar.js": "calendar();",
		"blank.js":    "",
		"crlf.js":     "a();\r\n",
	})

	bundle, err := Bundle([]string{"jquery.js", "calendar.js", "blank.js", "crlf.js"}, ProviderContent(p))
	require.NoError(t, err)
	assert.Equal(t,
		Banner("jquery.js")+"var jQuery = {};\n"+
			Banner("calendar.js")+"calendar();\n"+
			Banner("blank.js")+"\n"+
			Banner("crlf.js")+"a();\r\n",
		bundle)
}

func TestBundle_PreservesContentBytes(t *testing.T) {
	content := "/* ünïcødé */\n\tvar s = 'a\\nb';\n\n"
	bundle, err := Bundle([]string{"u.js"}, func(string) (string, error) { return content, nil })
	require.NoError(t, err)
	assert.Equal(t, Banner("u.js")+content, bundle)
}

func TestBundle_Empty(t *testing.T) {
	bundle, err := Bundle([]string{}, func(string) (string, error) {
		t.Fatal("contentOf should not be called")
		return "", nil
	})
	require.NoError(t, err)
	assert.Empty(t, bundle)
}

func TestBundle_InvalidArguments(t *testing.T) {
	_, err := Bundle(nil, func(string) (string, error) { return "", nil })
	assert.ErrorIs(t, err, oerrors.ErrInvalidArgument)

	_, err = Bundle([]string{"a.js"}, nil)
	assert.ErrorIs(t, err, oerrors.ErrInvalidArgument)
}

func TestBundle_MissingResource(t *testing.T) {
	p := source.NewMap(map[string]string{"a.js": "a();"})

	bundle, err := Bundle([]string{"a.js", "missing.js"}, ProviderContent(p))
	assert.Empty(t, bundle, "no partial bundle on failure")
	assert.ErrorIs(t, err, oerrors.ErrResourceUnavailable)
	assert.ErrorIs(t, err, source.ErrNotFound)

	var unavailable *oerrors.ResourceUnavailableError
	require.True(t, errors.As(err, &unavailable))
	assert.Equal(t, "missing.js", unavailable.Resource)
}
