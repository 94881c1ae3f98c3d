// Package bundler concatenates resolved resources into a single script.
//
// Each resource is preceded by a banner naming where it came from:
//
//	/***************************************************
//	 * Bundled from 'lib/jquery.js'
//	 ***************************************************/
//
// Content is copied verbatim; only a missing trailing newline is added.
package bundler

import (
	"strings"

	oerrors "github.com/jsmodule/cli/internal/errors"
	"github.com/jsmodule/cli/internal/source"
)

const bannerRule = "***************************************************"

// ContentFunc returns the text of a resource.
type ContentFunc func(id string) (string, error)

// Banner returns the provenance banner for id, newline terminated.
func Banner(id string) string {
	return "/" + bannerRule + "\n" +
		" * Bundled from '" + id + "'\n" +
		" " + bannerRule + "/\n"
}

// Bundle concatenates the banner and content of every id, in order.
// A nil ids slice or contentOf is rejected. If any content cannot be read
// the whole bundle fails with a ResourceUnavailableError.
func Bundle(ids []string, contentOf ContentFunc) (string, error) {
	if ids == nil {
		return "", oerrors.InvalidArgument("resources", "cannot be nil")
	}
	if contentOf == nil {
		return "", oerrors.InvalidArgument("contentOf", "cannot be nil")
	}

	var b strings.Builder
	for _, id := range ids {
		content, err := contentOf(id)
		if err != nil {
			return "", &oerrors.ResourceUnavailableError{Resource: id, Cause: err}
		}
		b.WriteString(Banner(id))
		b.WriteString(content)
		if !strings.HasSuffix(content, "\n") {
			b.WriteByte('\n')
		}
	}
	return b.String(), nil
}

// ProviderContent adapts a source.Provider to a ContentFunc.
func ProviderContent(p source.Provider) ContentFunc {
	return p.Content
}
