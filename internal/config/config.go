// Package config provides configuration loading and management.
package config

import (
	"github.com/viewmodes/vmi/internal/viewmode"
)

// Store backends.
const (
	BackendFile       = "file"
	BackendKubernetes = "kubernetes"
)

// DefaultConcurrency is the default number of bundles applied in parallel.
const DefaultConcurrency = 4

// AssetsConfig locates the inventories and layout templates.
type AssetsConfig struct {
	// Dir overrides the bundled assets.
	// Env: VMI_ASSETS_DIR, Default: bundled
	Dir string `mapstructure:"dir" json:"dir,omitempty"`
}

// KubernetesConfig contains settings for the ConfigMap store.
type KubernetesConfig struct {
	// Kubeconfig is the path to the kubeconfig file.
	// Env: VMI_STORE_KUBERNETES_KUBECONFIG, Default: ~/.kube/config
	Kubeconfig string `mapstructure:"kubeconfig" json:"kubeconfig,omitempty"`

	// Context is the Kubernetes context to use.
	// Default: current-context from kubeconfig
	Context string `mapstructure:"context" json:"context,omitempty"`

	// Namespace holds the ConfigMaps.
	// Env: VMI_STORE_KUBERNETES_NAMESPACE, Default: "default"
	Namespace string `mapstructure:"namespace" json:"namespace,omitempty"`
}

// StoreConfig selects and configures the configuration store.
type StoreConfig struct {
	// Backend is "file" or "kubernetes".
	Backend string `mapstructure:"backend" json:"backend,omitempty"`

	// Dir is the FileStore directory.
	// Default: ~/.vmi/store
	Dir string `mapstructure:"dir" json:"dir,omitempty"`

	Kubernetes KubernetesConfig `mapstructure:"kubernetes" json:"kubernetes,omitempty"`
}

// FieldsConfig controls field pruning.
type FieldsConfig struct {
	// Supported are the fields checked for existence and pruned when absent.
	Supported []string `mapstructure:"supported" json:"supported,omitempty"`

	// EntityType is used in field identifiers and config names.
	EntityType string `mapstructure:"entityType" json:"entityType,omitempty"`
}

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: true. Override with --timestamps flag.
	Timestamps *bool `mapstructure:"timestamps" json:"timestamps,omitempty"`
}

// ApplyConfig contains settings for vmi apply.
type ApplyConfig struct {
	// Concurrency is the number of bundles applied in parallel.
	Concurrency int `mapstructure:"concurrency" json:"concurrency,omitempty"`
}

// Config represents the vmi CLI configuration.
// Loaded from ~/.vmi/config.yaml, validated against the embedded CUE schema.
type Config struct {
	Assets AssetsConfig `mapstructure:"assets" json:"assets,omitempty"`
	Store  StoreConfig  `mapstructure:"store" json:"store,omitempty"`
	Fields FieldsConfig `mapstructure:"fields" json:"fields,omitempty"`

	// Regions are the layout regions inspected during pruning.
	Regions []string `mapstructure:"regions" json:"regions,omitempty"`

	Log   LogConfig   `mapstructure:"log" json:"log,omitempty"`
	Apply ApplyConfig `mapstructure:"apply" json:"apply,omitempty"`
}

// DefaultConfig returns a Config with all default values populated.
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Backend: BackendFile,
			Dir:     "~/.vmi/store",
			Kubernetes: KubernetesConfig{
				Kubeconfig: "~/.kube/config",
				Namespace:  "default",
			},
		},
		Fields: FieldsConfig{
			Supported:  append([]string(nil), viewmode.DefaultSupportedFields...),
			EntityType: viewmode.DefaultEntityType,
		},
		Regions: append([]string(nil), viewmode.DefaultRegions...),
		Apply:   ApplyConfig{Concurrency: DefaultConcurrency},
	}
}

// Filter returns the field filter described by the configuration.
func (c *Config) Filter() *viewmode.Filter {
	return &viewmode.Filter{
		EntityType:      c.Fields.EntityType,
		SupportedFields: c.Fields.Supported,
		Regions:         c.Regions,
	}
}

// DefaultConfigTemplate is written by vmi config init.
const DefaultConfigTemplate = `# vmi configuration
# Validate with: vmi config vet

# assets:
#   dir: ./viewmodes   # overrides the bundled inventories and templates

store:
  backend: file        # file | kubernetes
  dir: ~/.vmi/store
  kubernetes:
    kubeconfig: ~/.kube/config
    namespace: default
    # context: my-cluster

fields:
  entityType: node
  supported:
    - field_image
    - field_video
    - field_media
    - body

regions:
  - left
  - right
  - main

log:
  timestamps: true

apply:
  concurrency: 4
`
