package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsmodule/cli/internal/config"
	"github.com/jsmodule/cli/internal/source"
	"github.com/jsmodule/cli/internal/testutil"
)

func TestNewProvider_EditsVisibleWhenDebugging(t *testing.T) {
	tests := []struct {
		name     string
		debug    bool
		useDebug bool
	}{
		{"debug mode", true, false},
		{"debug root", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			debugDir := t.TempDir()
			target := dir
			cfg := config.DefaultConfig()
			cfg.Root = dir
			if tt.useDebug {
				cfg.DebugRoot = debugDir
				target = debugDir
			}
			testutil.WriteFile(t, target, "a.dep.js", `["b.js"]`)

			p, err := newProvider(cfg, tt.debug)
			require.NoError(t, err)
			_, cached := p.(*source.Caching)
			assert.False(t, cached)

			got, err := p.Content("a.dep.js")
			require.NoError(t, err)
			assert.Equal(t, `["b.js"]`, got)

			testutil.WriteFile(t, target, "a.dep.js", `["c.js"]`)
			got, err = p.Content("a.dep.js")
			require.NoError(t, err)
			assert.Equal(t, `["c.js"]`, got)
		})
	}
}

func TestNewProvider_CachesInBundledMode(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Root = dir

	p, err := newProvider(cfg, false)
	require.NoError(t, err)
	_, cached := p.(*source.Caching)
	assert.True(t, cached)
}
