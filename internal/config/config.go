package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentx-labs/aotreflect/internal/branding"
	"github.com/agentx-labs/aotreflect/internal/classpath"
	"github.com/agentx-labs/aotreflect/internal/closure"
	"github.com/agentx-labs/aotreflect/internal/tracing"
	"github.com/spf13/viper"
)

const fileType = "yaml"

// Default values for keys that are not set.
const (
	DefaultIndex             = "build/type-index.yaml"
	DefaultOutput            = "build/native-image"
	DefaultMarker            = closure.DefaultMarker
	DefaultServiceDescriptor = closure.DefaultServiceDescriptor
	DefaultSingletonField    = closure.DefaultSingletonField
)

// DefaultEntityAnnotations trigger resource preservation for persistent types.
var DefaultEntityAnnotations = closure.DefaultEntityAnnotations

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the full project configuration.
type Config struct {
	Reflection       ReflectionConfig `mapstructure:"reflection"`
	Index            string           `mapstructure:"index"`
	Classpath        []string         `mapstructure:"classpath"`
	PlatformPackages []string         `mapstructure:"platform_packages"`
	Output           string           `mapstructure:"output"`
	Cache            string           `mapstructure:"cache"`
	Trace            TraceConfig      `mapstructure:"trace"`
	Tracing          tracing.Config   `mapstructure:"tracing"`

	// File is the config file that was read, empty when none was found.
	File string `mapstructure:"-"`
}

// ReflectionConfig holds the seeds of a pass.
type ReflectionConfig struct {
	Enabled           bool     `mapstructure:"enabled"`
	Annotations       []string `mapstructure:"annotations"`
	Hierarchy         []string `mapstructure:"hierarchy"`
	FullHierarchy     []string `mapstructure:"full_hierarchy"`
	Classes           []string `mapstructure:"classes"`
	Exclude           []string `mapstructure:"exclude"`
	Marker            string   `mapstructure:"marker"`
	EntityAnnotations []string `mapstructure:"entity_annotations"`
	ServiceDescriptor string   `mapstructure:"service_descriptor"`
	SingletonField    string   `mapstructure:"singleton_field"`
}

// TraceConfig controls the diagnostic channel.
type TraceConfig struct {
	Verbose bool `mapstructure:"verbose"`
}

// FileName returns the project config file name (aotreflect.yaml).
func FileName() string {
	return branding.ConfigName() + "." + fileType
}

func newViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("reflection.enabled", true)
	v.SetDefault("reflection.annotations", []string{})
	v.SetDefault("reflection.hierarchy", []string{})
	v.SetDefault("reflection.full_hierarchy", []string{})
	v.SetDefault("reflection.classes", []string{})
	v.SetDefault("reflection.exclude", []string{})
	v.SetDefault("reflection.marker", DefaultMarker)
	v.SetDefault("reflection.entity_annotations", DefaultEntityAnnotations)
	v.SetDefault("reflection.service_descriptor", DefaultServiceDescriptor)
	v.SetDefault("reflection.singleton_field", DefaultSingletonField)
	v.SetDefault("index", DefaultIndex)
	v.SetDefault("classpath", []string{})
	v.SetDefault("platform_packages", classpath.DefaultPlatformPackages)
	v.SetDefault("output", DefaultOutput)
	v.SetDefault("cache", "")
	v.SetDefault("trace.verbose", false)

	td := tracing.DefaultConfig()
	v.SetDefault("tracing.enabled", td.Enabled)
	v.SetDefault("tracing.exporter", td.Exporter)
	v.SetDefault("tracing.otlp_endpoint", td.OTLPEndpoint)
	v.SetDefault("tracing.sample_rate", td.SampleRate)
	v.SetDefault("tracing.service_name", td.ServiceName)

	v.SetConfigType(fileType)
	v.SetEnvPrefix(branding.EnvPrefix())
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the configuration. An empty path searches the working
// directory for aotreflect.yaml and falls back to defaults when it is absent.
// An explicit path must exist.
func Load(path string) (*Config, error) {
	v := newViper()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(branding.ConfigName())
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	if strings.TrimSpace(cfg.Index) == "" {
		return fmt.Errorf("%w: index path must not be empty", ErrInvalidConfig)
	}
	if !tracing.ValidExporter(cfg.Tracing.Exporter) {
		return fmt.Errorf("%w: unknown tracing exporter %q", ErrInvalidConfig, cfg.Tracing.Exporter)
	}
	if cfg.Tracing.SampleRate < 0 || cfg.Tracing.SampleRate > 1 {
		return fmt.Errorf("%w: tracing.sample_rate must be within [0, 1], got %v", ErrInvalidConfig, cfg.Tracing.SampleRate)
	}
	if cfg.Reflection.SingletonField == "" {
		return fmt.Errorf("%w: reflection.singleton_field must not be empty", ErrInvalidConfig)
	}
	return nil
}

// Get returns the effective value of key as a string, taking defaults and
// environment into account.
func Get(path, key string) (string, error) {
	v := newViper()
	if path == "" {
		path = FileName()
	}
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return "", fmt.Errorf("reading config file: %w", err)
		}
	}
	val := v.Get(key)
	switch t := val.(type) {
	case nil:
		return "", nil
	case []string:
		return strings.Join(t, ","), nil
	case []any:
		parts := make([]string, len(t))
		for i, p := range t {
			parts[i] = fmt.Sprint(p)
		}
		return strings.Join(parts, ","), nil
	default:
		return fmt.Sprint(t), nil
	}
}

// Set writes a key-value pair into the config file at path, creating it if
// needed. Comma-separated values are stored as lists for list keys.
func Set(path, key, value string) error {
	if path == "" {
		path = FileName()
	}

	v := viper.New()
	v.SetConfigType(fileType)
	v.SetConfigFile(path)

	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("checking config file %s: %w", path, err)
	}

	if isListKey(key) {
		v.Set(key, splitList(value))
	} else {
		v.Set(key, value)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating config directory %s: %w", dir, err)
		}
	}
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

var listKeys = map[string]bool{
	"reflection.annotations":        true,
	"reflection.hierarchy":          true,
	"reflection.full_hierarchy":     true,
	"reflection.classes":            true,
	"reflection.exclude":            true,
	"reflection.entity_annotations": true,
	"classpath":                     true,
	"platform_packages":             true,
}

func isListKey(key string) bool {
	return listKeys[strings.ToLower(key)]
}

func splitList(value string) []string {
	var out []string
	for _, p := range strings.Split(value, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
