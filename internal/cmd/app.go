package cmd

import (
	"fmt"

	"github.com/jsmodule/cli/internal/cache"
	"github.com/jsmodule/cli/internal/config"
	"github.com/jsmodule/cli/internal/descriptor"
	"github.com/jsmodule/cli/internal/jsmodule"
	"github.com/jsmodule/cli/internal/output"
	"github.com/jsmodule/cli/internal/resolver"
	"github.com/jsmodule/cli/internal/source"
)

// newProvider builds the file provider for cfg: the debug root (if any)
// layered over the root. Lookups go through an LRU unless debug is set or a
// debug root is configured, so edits to scripts are picked up on the next
// request.
func newProvider(cfg *config.Config, debug bool) (source.Provider, error) {
	root, err := config.ExpandPath(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("expanding root: %w", err)
	}
	var p source.Provider = source.NewDir(root)

	if cfg.DebugRoot != "" {
		debugRoot, err := config.ExpandPath(cfg.DebugRoot)
		if err != nil {
			return nil, fmt.Errorf("expanding debug root: %w", err)
		}
		p = source.NewLayered(source.NewDir(debugRoot), p)
		output.Debug("debug root enabled", "debug_root", debugRoot, "root", root)
	}

	if debug || cfg.DebugRoot != "" {
		return p, nil
	}
	return source.NewCaching(p, cfg.DescriptorCacheSize)
}

// newService wires the resolver, bundler and cache for cfg.
func newService(cfg *config.Config, debug bool) (*jsmodule.Service, error) {
	p, err := newProvider(cfg, debug)
	if err != nil {
		return nil, err
	}

	finder := descriptor.NewFinder(p, descriptor.WithExtensionCheck(cfg.ExtensionCheck))
	r, err := resolver.New(finder)
	if err != nil {
		return nil, err
	}

	return jsmodule.NewService(r, cache.New(), p,
		jsmodule.WithDebug(debug),
		jsmodule.WithBundlePath(cfg.BundlePath),
	)
}
