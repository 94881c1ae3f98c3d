// Package jsmodule ties resolution, bundling and caching together into the
// operation a page loader calls: "give me what to load for these files".
//
// In debug mode the answer is the resolved list of files, so each one can be
// loaded and debugged individually. Otherwise the files are bundled once and
// the answer is the path of the cached bundle.
package jsmodule

import (
	"sort"
	"strings"

	"github.com/jsmodule/cli/internal/bundler"
	"github.com/jsmodule/cli/internal/cache"
	oerrors "github.com/jsmodule/cli/internal/errors"
	"github.com/jsmodule/cli/internal/output"
	"github.com/jsmodule/cli/internal/resolver"
	"github.com/jsmodule/cli/internal/source"
)

// DefaultBundlePath is the path prefix bundle keys are served under.
const DefaultBundlePath = "/bundle/"

// Result is what Resolve returns to a loader.
type Result struct {
	// JS lists the scripts to load, in order.
	JS []string `json:"js" yaml:"js"`

	// Bundled is true when JS holds a single bundle path.
	Bundled bool `json:"-" yaml:"-"`

	// Key is the bundle cache key when Bundled is true.
	Key string `json:"-" yaml:"-"`
}

// Service answers resolve requests.
type Service struct {
	resolver   *resolver.Resolver
	cache      *cache.BundleCache
	provider   source.Provider
	debug      bool
	bundlePath string
}

// Option configures a Service.
type Option func(*Service)

// WithDebug selects debug mode: resolved files are returned unbundled.
func WithDebug(debug bool) Option {
	return func(s *Service) {
		s.debug = debug
	}
}

// WithBundlePath sets the prefix prepended to bundle keys.
func WithBundlePath(prefix string) Option {
	return func(s *Service) {
		s.bundlePath = prefix
	}
}

// NewService creates a Service. All collaborators are required.
func NewService(r *resolver.Resolver, c *cache.BundleCache, p source.Provider, opts ...Option) (*Service, error) {
	switch {
	case r == nil:
		return nil, oerrors.InvalidArgument("resolver", "cannot be nil")
	case c == nil:
		return nil, oerrors.InvalidArgument("cache", "cannot be nil")
	case p == nil:
		return nil, oerrors.InvalidArgument("provider", "cannot be nil")
	}

	s := &Service{
		resolver:   r,
		cache:      c,
		provider:   p,
		bundlePath: DefaultBundlePath,
	}
	for _, opt := range opts {
		opt(s)
	}
	if !strings.HasSuffix(s.bundlePath, "/") {
		s.bundlePath += "/"
	}
	return s, nil
}

// Debug reports whether the service runs in debug mode.
func (s *Service) Debug() bool {
	return s.debug
}

// BundlePath returns the prefix bundle keys are served under.
func (s *Service) BundlePath() string {
	return s.bundlePath
}

// Content returns the text of a single script, as listed by Resolve in debug
// mode. A script the provider cannot supply is reported as unavailable.
func (s *Service) Content(id string) (string, error) {
	if id == "" {
		return "", oerrors.InvalidArgument("id", "cannot be empty")
	}
	content, err := s.provider.Content(id)
	if err != nil {
		return "", &oerrors.ResourceUnavailableError{Resource: id, Cause: err}
	}
	return content, nil
}

// Cache returns the bundle cache the service stores into.
func (s *Service) Cache() *cache.BundleCache {
	return s.cache
}

// Resolve returns the scripts to load for files.
//
// files is sorted (on a copy) before use so that debug and bundled mode see
// the same order and the same set of files always hits the same cache entry.
func (s *Service) Resolve(files []string) (*Result, error) {
	if files == nil {
		return nil, oerrors.InvalidArgument("files", "cannot be nil")
	}

	sorted := sortedCopy(files)

	log := output.With("jsmodule")

	if s.debug {
		order, err := s.resolver.Resolve(sorted)
		if err != nil {
			return nil, err
		}
		log.Debug("resolved for debug", "files", len(sorted), "resources", len(order))
		return &Result{JS: order}, nil
	}

	if len(sorted) == 0 {
		return &Result{JS: []string{}}, nil
	}

	key, err := s.cache.GetOrBuild(sorted, func() (string, error) {
		return s.build(sorted)
	})
	if err != nil {
		return nil, err
	}
	log.Debug("bundle ready", "key", key)
	return &Result{JS: []string{s.bundlePath + key}, Bundled: true, Key: key}, nil
}

// Graph resolves files, sorted the same way Resolve sorts them, and returns
// the dependency edges along with the order.
func (s *Service) Graph(files []string) (*resolver.Graph, error) {
	if files == nil {
		return nil, oerrors.InvalidArgument("files", "cannot be nil")
	}
	return s.resolver.ResolveGraph(sortedCopy(files))
}

// sortedCopy returns a sorted copy of files. The copy is never nil, so an
// empty request resolves to an empty sequence.
func sortedCopy(files []string) []string {
	sorted := make([]string, len(files))
	copy(sorted, files)
	sort.Strings(sorted)
	return sorted
}

// Build resolves and bundles files without touching the cache.
func (s *Service) Build(files []string) (string, error) {
	if files == nil {
		return "", oerrors.InvalidArgument("files", "cannot be nil")
	}
	return s.build(files)
}

func (s *Service) build(files []string) (string, error) {
	order, err := s.resolver.Resolve(files)
	if err != nil {
		return "", err
	}
	return bundler.Bundle(order, bundler.ProviderContent(s.provider))
}
