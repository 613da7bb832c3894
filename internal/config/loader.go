package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Environment variable prefix for vmi configuration.
const envPrefix = "VMI"

// Keys recognised in the config file.
const (
	KeyAssetsDir        = "assets.dir"
	KeyStoreBackend     = "store.backend"
	KeyStoreDir         = "store.dir"
	KeyKubeconfig       = "store.kubernetes.kubeconfig"
	KeyKubeContext      = "store.kubernetes.context"
	KeyNamespace        = "store.kubernetes.namespace"
	KeySupportedFields  = "fields.supported"
	KeyEntityType       = "fields.entityType"
	KeyRegions          = "regions"
	KeyLogTimestamps    = "log.timestamps"
	KeyApplyConcurrency = "apply.concurrency"
)

// EnvVar returns the environment variable bound to a config key,
// e.g. store.dir -> VMI_STORE_DIR.
func EnvVar(key string) string {
	return envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// Loader handles loading and merging configuration from multiple sources.
type Loader struct {
	v *viper.Viper

	// file holds only what the config file sets, for precedence reporting.
	file *viper.Viper

	path  string
	found bool
}

// NewLoader creates a new configuration loader with defaults and
// VMI_* environment bindings.
func NewLoader() *Loader {
	v := viper.New()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	def := DefaultConfig()
	v.SetDefault(KeyAssetsDir, def.Assets.Dir)
	v.SetDefault(KeyStoreBackend, def.Store.Backend)
	v.SetDefault(KeyStoreDir, def.Store.Dir)
	v.SetDefault(KeyKubeconfig, def.Store.Kubernetes.Kubeconfig)
	v.SetDefault(KeyKubeContext, def.Store.Kubernetes.Context)
	v.SetDefault(KeyNamespace, def.Store.Kubernetes.Namespace)
	v.SetDefault(KeySupportedFields, def.Fields.Supported)
	v.SetDefault(KeyEntityType, def.Fields.EntityType)
	v.SetDefault(KeyRegions, def.Regions)
	v.SetDefault(KeyApplyConcurrency, def.Apply.Concurrency)

	return &Loader{v: v, file: viper.New()}
}

// Load loads configuration from the given file path.
// If configFile is empty, it uses the default config file path.
// A missing file is not an error. Environment variables take precedence
// over file values.
func (l *Loader) Load(configFile string) (*Config, error) {
	if configFile == "" {
		var err error
		configFile, err = GetConfigFile()
		if err != nil {
			return nil, fmt.Errorf("getting config file path: %w", err)
		}
	}

	expandedPath, err := ExpandPath(configFile)
	if err != nil {
		return nil, fmt.Errorf("expanding config path: %w", err)
	}
	l.path = expandedPath

	data, err := os.ReadFile(expandedPath)
	switch {
	case err == nil:
		l.found = true
		for _, v := range []*viper.Viper{l.v, l.file} {
			v.SetConfigType("yaml")
			if err := v.ReadConfig(strings.NewReader(string(data))); err != nil {
				return nil, fmt.Errorf("reading config file %s: %w", expandedPath, err)
			}
		}
	case errors.Is(err, fs.ErrNotExist):
		// defaults + env
	default:
		return nil, fmt.Errorf("reading config file %s: %w", expandedPath, err)
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if l.v.IsSet(KeyLogTimestamps) {
		ts := l.v.GetBool(KeyLogTimestamps)
		cfg.Log.Timestamps = &ts
	}

	return &cfg, nil
}

// Path returns the config file path used by the last Load.
func (l *Loader) Path() string {
	return l.path
}

// Found reports whether the last Load read a config file.
func (l *Loader) Found() bool {
	return l.found
}

// ConfigFileExists checks if the config file exists.
func ConfigFileExists(configFile string) (bool, error) {
	if configFile == "" {
		var err error
		configFile, err = GetConfigFile()
		if err != nil {
			return false, err
		}
	}

	expandedPath, err := ExpandPath(configFile)
	if err != nil {
		return false, err
	}

	_, err = os.Stat(expandedPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}
