package config

import (
	"fmt"
	"os"

	"github.com/viewmodes/vmi/internal/output"
)

// ConfigSource indicates where a configuration value came from.
type ConfigSource string

const (
	// SourceFlag indicates value came from command-line flag.
	SourceFlag ConfigSource = "flag"
	// SourceEnv indicates value came from environment variable.
	SourceEnv ConfigSource = "env"
	// SourceConfig indicates value came from config file.
	SourceConfig ConfigSource = "config"
	// SourceDefault indicates value is the built-in default.
	SourceDefault ConfigSource = "default"
)

// ResolvedValue is a configuration value with its source and the lower
// precedence values it shadows.
type ResolvedValue struct {
	Key      string
	Value    string
	Source   ConfigSource
	Shadowed map[ConfigSource]string
}

// ResolveOptions are the candidate values for one key.
type ResolveOptions struct {
	Key string

	// FlagValue is used when FlagSet is true.
	FlagValue string
	FlagSet   bool

	// EnvVar overrides the environment variable derived from Key.
	EnvVar string

	// ConfigValue is used when ConfigSet is true.
	ConfigValue string
	ConfigSet   bool

	Default string
}

// Resolve picks a value using precedence flag > env > config > default.
// An empty environment variable counts as unset.
func Resolve(opts ResolveOptions) ResolvedValue {
	envName := opts.EnvVar
	if envName == "" {
		envName = EnvVar(opts.Key)
	}
	envValue, envSet := os.LookupEnv(envName)
	envSet = envSet && envValue != ""

	type candidate struct {
		source ConfigSource
		value  string
		set    bool
	}
	candidates := []candidate{
		{SourceFlag, opts.FlagValue, opts.FlagSet},
		{SourceEnv, envValue, envSet},
		{SourceConfig, opts.ConfigValue, opts.ConfigSet},
		{SourceDefault, opts.Default, true},
	}

	result := ResolvedValue{Key: opts.Key, Shadowed: make(map[ConfigSource]string)}
	for _, c := range candidates {
		if !c.set {
			continue
		}
		if result.Source == "" {
			result.Value = c.value
			result.Source = c.source
			continue
		}
		if c.source != SourceDefault || c.value != "" {
			result.Shadowed[c.source] = c.value
		}
	}
	return result
}

// ResolveKey resolves key against the loaded file. Environment and
// defaults are taken from the loader.
func (l *Loader) ResolveKey(key, flagValue string, flagSet bool) ResolvedValue {
	opts := ResolveOptions{
		Key:       key,
		FlagValue: flagValue,
		FlagSet:   flagSet,
		Default:   defaultString(key),
	}
	if l.file.IsSet(key) {
		opts.ConfigValue = l.file.GetString(key)
		opts.ConfigSet = true
	}
	return Resolve(opts)
}

func defaultString(key string) string {
	def := DefaultConfig()
	switch key {
	case KeyAssetsDir:
		return def.Assets.Dir
	case KeyStoreBackend:
		return def.Store.Backend
	case KeyStoreDir:
		return def.Store.Dir
	case KeyKubeconfig:
		return def.Store.Kubernetes.Kubeconfig
	case KeyKubeContext:
		return def.Store.Kubernetes.Context
	case KeyNamespace:
		return def.Store.Kubernetes.Namespace
	case KeyEntityType:
		return def.Fields.EntityType
	case KeyApplyConcurrency:
		return fmt.Sprint(def.Apply.Concurrency)
	case KeyLogTimestamps:
		return "true"
	default:
		return ""
	}
}

// ResolveConfigPathOptions contains options for config path resolution.
type ResolveConfigPathOptions struct {
	// FlagValue is the --config flag value (empty if not set).
	FlagValue string
}

// ResolveConfigPath resolves the config file path using precedence:
// (1) --config flag, (2) VMI_CONFIG env, (3) ~/.vmi/config.yaml default
func ResolveConfigPath(opts ResolveConfigPathOptions) (ResolvedValue, error) {
	paths, err := DefaultPaths()
	if err != nil {
		return ResolvedValue{}, err
	}

	return Resolve(ResolveOptions{
		Key:       "config",
		FlagValue: opts.FlagValue,
		FlagSet:   opts.FlagValue != "",
		EnvVar:    "VMI_CONFIG",
		Default:   paths.ConfigFile,
	}), nil
}

// LogResolvedValues logs configuration resolution at DEBUG level.
func LogResolvedValues(values []ResolvedValue) {
	for _, v := range values {
		output.Debug("config value resolved",
			"key", v.Key,
			"value", v.Value,
			"source", v.Source,
		)
		for source, shadowed := range v.Shadowed {
			output.Debug("  shadowed by higher precedence",
				"key", v.Key,
				"shadowed_source", source,
				"shadowed_value", shadowed,
			)
		}
	}
}
