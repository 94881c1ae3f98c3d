// Package config provides configuration loading and management.
package config

// ServerConfig contains settings for `jsm serve`.
type ServerConfig struct {
	// Addr is the listen address.
	// Env: JSM_SERVER_ADDR, Default: 127.0.0.1:8080
	Addr string `mapstructure:"addr" yaml:"addr"`
}

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: true. Override with --timestamps flag.
	Timestamps *bool `mapstructure:"timestamps" yaml:"timestamps,omitempty"`
}

// Config represents the jsm configuration.
// Loaded from ~/.jsm/config.yaml, validated against the embedded CUE schema.
type Config struct {
	// Root is the directory scripts and descriptors are read from.
	// Env: JSM_ROOT, Default: "."
	Root string `mapstructure:"root" yaml:"root"`

	// DebugRoot is an optional directory consulted before Root, so locally
	// edited scripts shadow the packaged ones.
	// Env: JSM_DEBUG_ROOT
	DebugRoot string `mapstructure:"debugRoot" yaml:"debugRoot,omitempty"`

	// Debug returns resolved scripts individually instead of as one bundle.
	// Env: JSM_DEBUG
	Debug bool `mapstructure:"debug" yaml:"debug"`

	// ExtensionCheck rejects resource ids that do not end in ".js".
	// Env: JSM_EXTENSION_CHECK, Default: true
	ExtensionCheck bool `mapstructure:"extensionCheck" yaml:"extensionCheck"`

	// BundlePath is the URL prefix bundle keys are served under.
	// Env: JSM_BUNDLE_PATH, Default: "/bundle/"
	BundlePath string `mapstructure:"bundlePath" yaml:"bundlePath"`

	// DescriptorCacheSize bounds the number of memoized file lookups.
	// Env: JSM_DESCRIPTOR_CACHE_SIZE, Default: 1024
	DescriptorCacheSize int `mapstructure:"descriptorCacheSize" yaml:"descriptorCacheSize"`

	// Server contains HTTP server settings.
	Server ServerConfig `mapstructure:"server" yaml:"server"`

	// Log contains logging-related settings.
	Log LogConfig `mapstructure:"log" yaml:"log"`
}

// Defaults for every key.
const (
	DefaultRoot                = "."
	DefaultExtensionCheck      = true
	DefaultBundlePath          = "/bundle/"
	DefaultDescriptorCacheSize = 1024
	DefaultServerAddr          = "127.0.0.1:8080"
)

// DefaultConfig returns a Config with all default values populated.
// Used by `jsm config init` to generate an initial config file.
func DefaultConfig() *Config {
	timestamps := true
	return &Config{
		Root:                DefaultRoot,
		ExtensionCheck:      DefaultExtensionCheck,
		BundlePath:          DefaultBundlePath,
		DescriptorCacheSize: DefaultDescriptorCacheSize,
		Server:              ServerConfig{Addr: DefaultServerAddr},
		Log:                 LogConfig{Timestamps: &timestamps},
	}
}
