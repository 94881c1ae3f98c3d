// Package descriptor looks up the declared dependencies of a resource.
//
// The dependencies of "lib/calendar.js" are declared in the sibling resource
// "lib/calendar.dep.js", whose whole content is a JSON array of resource ids:
//
//	["lib/jquery.js", "lib/jquery-ui.js"]
//
// A resource without a descriptor has no dependencies. A descriptor that
// exists but is empty or not an array of strings is an error.
package descriptor

import (
	"encoding/json"
	"fmt"
	"path"
	"strings"

	oerrors "github.com/jsmodule/cli/internal/errors"
	"github.com/jsmodule/cli/internal/source"
)

const (
	// SourceExt is the extension a resource id must carry when the
	// extension check is enabled.
	SourceExt = ".js"

	// DescriptorExt replaces the source extension to form the descriptor id.
	DescriptorExt = ".dep.js"
)

// Finder returns the direct dependencies of a resource.
type Finder struct {
	provider       source.Provider
	extensionCheck bool
}

// Option configures a Finder.
type Option func(*Finder)

// WithExtensionCheck enables or disables the ".js" check on ids passed to
// Find. It is enabled by default.
func WithExtensionCheck(enabled bool) Option {
	return func(f *Finder) {
		f.extensionCheck = enabled
	}
}

// NewFinder creates a Finder reading descriptors from p.
func NewFinder(p source.Provider, opts ...Option) *Finder {
	f := &Finder{provider: p, extensionCheck: true}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// DescriptorPath returns the descriptor id for a resource id by replacing
// the last extension with ".dep.js". Ids without an extension get the suffix
// appended.
func DescriptorPath(id string) string {
	ext := path.Ext(id)
	return strings.TrimSuffix(id, ext) + DescriptorExt
}

// Find returns the dependencies declared for id, in declared order.
// The result is never nil.
func (f *Finder) Find(id string) ([]string, error) {
	if id == "" {
		return nil, oerrors.InvalidArgument("resource", "cannot be empty")
	}
	if f.extensionCheck && !strings.HasSuffix(id, SourceExt) {
		return nil, oerrors.InvalidArgument("resource", fmt.Sprintf("%q must have a %s extension", id, SourceExt))
	}

	descriptorID := DescriptorPath(id)
	content, err := f.provider.Content(descriptorID)
	if err != nil {
		if source.IsNotFound(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("reading descriptor %s: %w", descriptorID, err)
	}

	deps, formatErr := Parse(content)
	if formatErr != nil {
		formatErr.Resource = id
		formatErr.Descriptor = descriptorID
		return nil, formatErr
	}
	return deps, nil
}

// Parse decodes descriptor content. The returned error, if any, has its
// Resource and Descriptor fields unset.
func Parse(content string) ([]string, *oerrors.DescriptorFormatError) {
	if strings.TrimSpace(content) == "" {
		return nil, &oerrors.DescriptorFormatError{Reason: "descriptor is empty"}
	}

	var raw interface{}
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil, &oerrors.DescriptorFormatError{Reason: "invalid JSON", Cause: err}
	}

	items, ok := raw.([]interface{})
	if !ok {
		return nil, &oerrors.DescriptorFormatError{Reason: fmt.Sprintf("expected a JSON array, got %s", jsonKind(raw))}
	}

	deps := make([]string, 0, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, &oerrors.DescriptorFormatError{Reason: fmt.Sprintf("element %d is %s, not a string", i, jsonKind(item))}
		}
		deps = append(deps, s)
	}
	return deps, nil
}

func jsonKind(v interface{}) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "a boolean"
	case float64:
		return "a number"
	case string:
		return "a string"
	case []interface{}:
		return "an array"
	case map[string]interface{}:
		return "an object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
