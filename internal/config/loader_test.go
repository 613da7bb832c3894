package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoader_MissingFileUsesDefaults(t *testing.T) {
	l := NewLoader()
	cfg, err := l.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.False(t, l.Found())
	assert.Equal(t, DefaultConfig().Store, cfg.Store)
	assert.Equal(t, DefaultConfig().Fields, cfg.Fields)
	assert.Equal(t, DefaultConcurrency, cfg.Apply.Concurrency)
}

func TestLoader_FileValues(t *testing.T) {
	path := writeConfig(t, `
store:
  backend: kubernetes
  kubernetes:
    namespace: cms
fields:
  entityType: media
  supported: [field_caption]
regions: [header, footer]
log:
  timestamps: false
apply:
  concurrency: 8
`)

	l := NewLoader()
	cfg, err := l.Load(path)
	require.NoError(t, err)

	assert.True(t, l.Found())
	assert.Equal(t, path, l.Path())
	assert.Equal(t, BackendKubernetes, cfg.Store.Backend)
	assert.Equal(t, "cms", cfg.Store.Kubernetes.Namespace)
	assert.Equal(t, "~/.kube/config", cfg.Store.Kubernetes.Kubeconfig)
	assert.Equal(t, "media", cfg.Fields.EntityType)
	assert.Equal(t, []string{"field_caption"}, cfg.Fields.Supported)
	assert.Equal(t, []string{"header", "footer"}, cfg.Regions)
	require.NotNil(t, cfg.Log.Timestamps)
	assert.False(t, *cfg.Log.Timestamps)
	assert.Equal(t, 8, cfg.Apply.Concurrency)
}

func TestLoader_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "store:\n  backend: file\n  dir: /from/file\n")
	t.Setenv("VMI_STORE_DIR", "/from/env")

	cfg, err := NewLoader().Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/from/env", cfg.Store.Dir)
	assert.Equal(t, BackendFile, cfg.Store.Backend)
}

func TestLoader_MalformedFile(t *testing.T) {
	path := writeConfig(t, "store: [unclosed\n")
	_, err := NewLoader().Load(path)
	assert.Error(t, err)
}

func TestConfigFileExists(t *testing.T) {
	path := writeConfig(t, "{}\n")

	ok, err := ConfigFileExists(path)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = ConfigFileExists(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEnvVar(t *testing.T) {
	assert.Equal(t, "VMI_STORE_DIR", EnvVar(KeyStoreDir))
	assert.Equal(t, "VMI_STORE_KUBERNETES_NAMESPACE", EnvVar(KeyNamespace))
	assert.Equal(t, "VMI_FIELDS_ENTITYTYPE", EnvVar(KeyEntityType))
}
