package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/viewmodes/vmi/internal/errors"
)

// testEnv isolates HOME and the store directory for one test.
type testEnv struct {
	t        *testing.T
	home     string
	storeDir string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("VMI_CONFIG", "")
	t.Setenv("NO_COLOR", "1")
	return &testEnv{t: t, home: home, storeDir: filepath.Join(home, "store")}
}

// run executes vmi with the test store and returns stdout.
func (e *testEnv) run(args ...string) (string, error) {
	e.t.Helper()
	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--store-dir", e.storeDir, "--timestamps=false"}, args...))
	err := root.Execute()
	return out.String(), err
}

func (e *testEnv) mustRun(args ...string) string {
	e.t.Helper()
	out, err := e.run(args...)
	require.NoError(e.t, err, "vmi %s", strings.Join(args, " "))
	return out
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	var exitErr *oerrors.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return oerrors.ExitCodeFromError(err)
}

func TestNewRootCmd_Commands(t *testing.T) {
	root := NewRootCmd()

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"view-modes", "layouts", "render", "apply", "diff", "field", "config", "version"} {
		assert.Contains(t, names, want)
	}

	for _, flag := range []string{"config", "verbose", "timestamps", "output", "store", "store-dir", "assets-dir", "kubeconfig", "context", "namespace"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), flag)
	}
}

func TestViewModes_JSON(t *testing.T) {
	env := newTestEnv(t)
	out := env.mustRun("view-modes", "-o", "json")

	var rows []struct {
		ID      string   `json:"id"`
		Label   string   `json:"label"`
		Layouts []string `json:"layouts"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 17)

	found := false
	for _, r := range rows {
		if r.ID == "tout_large" {
			found = true
			assert.Equal(t, []string{"vmi_tout"}, r.Layouts)
		}
	}
	assert.True(t, found)
}

func TestViewModes_Table(t *testing.T) {
	env := newTestEnv(t)
	out := env.mustRun("view-modes")
	assert.Contains(t, out, "hero_xlarge")
	assert.Contains(t, out, "LAYOUTS")
}

func TestViewModes_BadOutput(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run("view-modes", "-o", "xml")
	assert.Equal(t, oerrors.ExitValidationError, exitCode(t, err))
}

func TestLayouts(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun("layouts", "-o", "yaml")
	assert.Contains(t, out, "id: vmi_tout")

	out = env.mustRun("layouts", "--check")
	assert.Contains(t, out, "mapping is consistent")
}

func TestLayouts_CheckReportsProblems(t *testing.T) {
	env := newTestEnv(t)
	assets := filepath.Join(env.home, "assets")
	require.NoError(t, os.MkdirAll(assets, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(assets, "view_modes.list.yml"), []byte("teaser: Teaser\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(assets, "layouts.mapping.yml"), []byte("one_col: [teaser, full]\n"), 0o644))

	_, err := env.run("layouts", "--check", "--assets-dir", assets)
	require.Error(t, err)
	assert.Equal(t, oerrors.ExitValidationError, exitCode(t, err))
}

func TestViewModes_MissingAssets(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run("view-modes", "--assets-dir", filepath.Join(env.home, "nowhere"))
	require.Error(t, err)
	assert.Equal(t, oerrors.ExitNotFound, exitCode(t, err))
}

func TestVersion_JSON(t *testing.T) {
	env := newTestEnv(t)
	out := env.mustRun("version", "-o", "json")

	var info map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.NotEmpty(t, info["version"])
	assert.NotEmpty(t, info["goVersion"])
}

func TestVersion_Text(t *testing.T) {
	env := newTestEnv(t)
	out := env.mustRun("version")
	assert.Contains(t, out, "vmi version")
}
