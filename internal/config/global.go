package config

import (
	"strconv"
)

// GlobalFlags holds the raw values of the root command's persistent flags.
// A value is only considered when its Changed entry is set.
type GlobalFlags struct {
	Config     string
	AssetsDir  string
	Store      string
	StoreDir   string
	Kubeconfig string
	Context    string
	Namespace  string
	Output     string
	Verbose    bool

	// Changed reports whether a flag was given on the command line, by flag name.
	Changed func(name string) bool
}

func (f GlobalFlags) changed(name string) bool {
	return f.Changed != nil && f.Changed(name)
}

// GlobalConfig holds CLI-wide configuration resolved during PersistentPreRunE.
// It is populated once at startup and passed explicitly into every
// sub-command constructor.
type GlobalConfig struct {
	// Config is the loaded file configuration merged with env and defaults.
	Config *Config

	// ConfigPath is the resolved config file path.
	ConfigPath string

	// ConfigFound reports whether ConfigPath existed.
	ConfigFound bool

	// Resolved store and asset settings after flag precedence.
	AssetsDir    string
	StoreBackend string
	StoreDir     string
	Kubeconfig   string
	Context      string
	Namespace    string

	// Output is the raw --output value. Empty means the command default.
	Output string

	Verbose bool

	// Values lists each resolved key with its source, for debug logging.
	Values []ResolvedValue
}

// LoadGlobal loads the config file and resolves the global flags against
// env, config and defaults.
func LoadGlobal(flags GlobalFlags) (*GlobalConfig, error) {
	pathResult, err := ResolveConfigPath(ResolveConfigPathOptions{FlagValue: flags.Config})
	if err != nil {
		return nil, err
	}

	loader := NewLoader()
	cfg, err := loader.Load(pathResult.Value)
	if err != nil {
		return nil, err
	}

	gc := &GlobalConfig{
		Config:      cfg,
		ConfigPath:  loader.Path(),
		ConfigFound: loader.Found(),
		Output:      flags.Output,
		Verbose:     flags.Verbose,
	}

	resolve := func(key, flagName, flagValue string) string {
		rv := loader.ResolveKey(key, flagValue, flags.changed(flagName))
		gc.Values = append(gc.Values, rv)
		return rv.Value
	}

	gc.Values = append(gc.Values, pathResult)
	gc.AssetsDir = resolve(KeyAssetsDir, "assets-dir", flags.AssetsDir)
	gc.StoreBackend = resolve(KeyStoreBackend, "store", flags.Store)
	gc.StoreDir = resolve(KeyStoreDir, "store-dir", flags.StoreDir)
	gc.Kubeconfig = resolve(KeyKubeconfig, "kubeconfig", flags.Kubeconfig)
	gc.Context = resolve(KeyKubeContext, "context", flags.Context)
	gc.Namespace = resolve(KeyNamespace, "namespace", flags.Namespace)

	return gc, nil
}

// Concurrency returns the apply concurrency, flag value first when set.
func (g *GlobalConfig) Concurrency(flagValue int, flagSet bool) int {
	rv := Resolve(ResolveOptions{
		Key:         KeyApplyConcurrency,
		FlagValue:   strconv.Itoa(flagValue),
		FlagSet:     flagSet,
		ConfigValue: strconv.Itoa(g.Config.Apply.Concurrency),
		ConfigSet:   g.Config.Apply.Concurrency > 0,
		Default:     strconv.Itoa(DefaultConcurrency),
	})
	n, err := strconv.Atoi(rv.Value)
	if err != nil || n < 1 {
		return DefaultConcurrency
	}
	return n
}
