package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Environment variable prefix for jsm configuration.
const envPrefix = "JSM"

// EnvConfig names the environment variable that selects the config file.
const EnvConfig = "JSM_CONFIG"

// Configuration keys, as they appear in the config file.
const (
	KeyRoot                = "root"
	KeyDebugRoot           = "debugRoot"
	KeyDebug               = "debug"
	KeyExtensionCheck      = "extensionCheck"
	KeyBundlePath          = "bundlePath"
	KeyDescriptorCacheSize = "descriptorCacheSize"
	KeyServerAddr          = "server.addr"
	KeyLogTimestamps       = "log.timestamps"
)

// Keys lists every configuration key in display order.
var Keys = []string{
	KeyRoot,
	KeyDebugRoot,
	KeyDebug,
	KeyExtensionCheck,
	KeyBundlePath,
	KeyDescriptorCacheSize,
	KeyServerAddr,
	KeyLogTimestamps,
}

// envVars maps each key to its environment variable.
var envVars = map[string]string{
	KeyRoot:                "JSM_ROOT",
	KeyDebugRoot:           "JSM_DEBUG_ROOT",
	KeyDebug:               "JSM_DEBUG",
	KeyExtensionCheck:      "JSM_EXTENSION_CHECK",
	KeyBundlePath:          "JSM_BUNDLE_PATH",
	KeyDescriptorCacheSize: "JSM_DESCRIPTOR_CACHE_SIZE",
	KeyServerAddr:          "JSM_SERVER_ADDR",
	KeyLogTimestamps:       "JSM_LOG_TIMESTAMPS",
}

// EnvVar returns the environment variable bound to key.
func EnvVar(key string) string {
	return envVars[key]
}

// Loader handles loading and merging configuration from multiple sources.
//
// Precedence, highest first: values set with SetFlag, environment variables,
// the config file, built-in defaults.
type Loader struct {
	v *viper.Viper

	// file holds the config file alone, so values shadowed by env or flags
	// can still be reported.
	file *viper.Viper

	flags map[string]bool
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	v := viper.New()

	// Set up environment variable bindings
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range Keys {
		_ = v.BindEnv(key, envVars[key])
	}

	v.SetDefault(KeyRoot, DefaultRoot)
	v.SetDefault(KeyDebug, false)
	v.SetDefault(KeyExtensionCheck, DefaultExtensionCheck)
	v.SetDefault(KeyBundlePath, DefaultBundlePath)
	v.SetDefault(KeyDescriptorCacheSize, DefaultDescriptorCacheSize)
	v.SetDefault(KeyServerAddr, DefaultServerAddr)

	return &Loader{v: v, file: viper.New(), flags: make(map[string]bool)}
}

// SetFlag records a value given on the command line. It overrides every
// other source for key.
func (l *Loader) SetFlag(key string, value any) {
	l.v.Set(key, value)
	l.flags[key] = true
}

// Load loads configuration from the given file path.
// If configFile is empty, it uses the default config file path.
// A missing file is not an error; defaults and env vars still apply.
func (l *Loader) Load(configFile string) (*Config, error) {
	if configFile == "" {
		var err error
		configFile, err = GetConfigFile()
		if err != nil {
			return nil, fmt.Errorf("getting config file path: %w", err)
		}
	}

	// Expand ~ in path
	expandedPath, err := ExpandPath(configFile)
	if err != nil {
		return nil, fmt.Errorf("expanding config path: %w", err)
	}

	for _, v := range []*viper.Viper{l.v, l.file} {
		v.SetConfigFile(expandedPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil && !isNotExist(err) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || os.IsNotExist(err) || errors.Is(err, os.ErrNotExist)
}

// ConfigFileUsed returns the config file path Load was pointed at.
func (l *Loader) ConfigFileUsed() string {
	return l.v.ConfigFileUsed()
}

// Source reports where the effective value of key came from.
func (l *Loader) Source(key string) ConfigSource {
	switch {
	case l.flags[key]:
		return SourceFlag
	case l.envValue(key) != "":
		return SourceEnv
	case l.file.IsSet(key):
		return SourceConfig
	default:
		return SourceDefault
	}
}

func (l *Loader) envValue(key string) string {
	name, ok := envVars[key]
	if !ok {
		return ""
	}
	return os.Getenv(name)
}

// Resolved returns the effective value and source of every key, together
// with any lower-precedence values they shadow.
func (l *Loader) Resolved() []ResolvedValue {
	values := make([]ResolvedValue, 0, len(Keys))
	for _, key := range Keys {
		rv := ResolvedValue{
			Key:      key,
			Value:    l.v.Get(key),
			Source:   l.Source(key),
			Shadowed: make(map[ConfigSource]any),
		}
		if rv.Source == SourceFlag {
			if env := l.envValue(key); env != "" {
				rv.Shadowed[SourceEnv] = env
			}
		}
		if (rv.Source == SourceFlag || rv.Source == SourceEnv) && l.file.IsSet(key) {
			rv.Shadowed[SourceConfig] = l.file.Get(key)
		}
		values = append(values, rv)
	}
	return values
}
