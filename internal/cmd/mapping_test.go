package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/viewmodes/vmi/internal/errors"
)

const toutName = "core.entity_view_display.node.article.tout_large"

func TestRender(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("field", "add", "article", "body", "field_image")

	out := env.mustRun("render", "vmi_tout", "tout_large", "--bundle", "article")
	assert.Contains(t, out, "# "+toutName+"\n")
	assert.Contains(t, out, "bundle: article")
	assert.Contains(t, out, "field.field.node.article.field_image")
	assert.NotContains(t, out, "field_video")
	assert.NotContains(t, out, "field_media")
	assert.NotContains(t, out, "CONTENT_TYPE_NAME")

	_, err := os.Stat(filepath.Join(env.storeDir, toutName+".yml"))
	assert.True(t, os.IsNotExist(err), "render must not save")
}

func TestRender_JSON(t *testing.T) {
	env := newTestEnv(t)
	out := env.mustRun("render", "vmi_tout", "tout_large", "-b", "article", "-o", "json")

	var got struct {
		Name     string                 `json:"name"`
		Document map[string]interface{} `json:"document"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, toutName, got.Name)
	assert.Equal(t, "article", got.Document["bundle"])
	assert.NotContains(t, got.Document["content"], "body")
}

func TestRender_Errors(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run("render", "vmi_hero", "tout_large", "-b", "article")
	assert.Equal(t, oerrors.ExitValidationError, exitCode(t, err))

	_, err = env.run("render", "vmi_nope", "tout_large", "-b", "article")
	assert.Equal(t, oerrors.ExitNotFound, exitCode(t, err))

	_, err = env.run("render", "vmi_tout", "tout_large")
	assert.Error(t, err)

	_, err = env.run("render", "vmi_tout", "tout_large", "-b", "a", "-b", "b")
	assert.Error(t, err)
}

func TestApplyAndDiff(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("field", "add", "article", "body", "field_image", "field_media", "field_video")

	_, err := env.run("diff", "vmi_tout", "tout_large", "-b", "article")
	assert.Equal(t, oerrors.ExitGeneralError, exitCode(t, err), "nothing stored yet")

	out := env.mustRun("apply", "vmi_tout", "tout_large", "-b", "article")
	assert.Contains(t, out, "1 created, 0 configured, 0 unchanged")
	assert.FileExists(t, filepath.Join(env.storeDir, toutName+".yml"))

	out = env.mustRun("diff", "vmi_tout", "tout_large", "-b", "article")
	assert.Contains(t, out, "No changes detected.")

	out = env.mustRun("apply", "vmi_tout", "tout_large", "-b", "article")
	assert.Contains(t, out, "0 created, 0 configured, 1 unchanged")

	env.mustRun("field", "rm", "article", "field_video")

	out, err = env.run("diff", "vmi_tout", "tout_large", "-b", "article")
	assert.Equal(t, oerrors.ExitGeneralError, exitCode(t, err))
	assert.Contains(t, out, toutName)
	assert.Contains(t, out, "1 modified")

	out = env.mustRun("apply", "vmi_tout", "tout_large", "-b", "article")
	assert.Contains(t, out, "0 created, 1 configured, 0 unchanged")

	data, err := os.ReadFile(filepath.Join(env.storeDir, toutName+".yml"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "field_video")
}

func TestApply_MultipleBundles(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun("apply", "vmi_text_teaser", "text_teaser_small",
		"-b", "article", "-b", "page", "-b", "event", "--concurrency", "2")
	assert.Contains(t, out, "3 created")

	for _, b := range []string{"article", "page", "event"} {
		assert.FileExists(t, filepath.Join(env.storeDir, "core.entity_view_display.node."+b+".text_teaser_small.yml"))
	}
}

func TestApply_EntityType(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("apply", "vmi_hero", "hero_xlarge", "-b", "tags", "--entity-type", "taxonomy_term")
	assert.FileExists(t, filepath.Join(env.storeDir, "core.entity_view_display.taxonomy_term.tags.hero_xlarge.yml"))
}

func TestApply_UnknownStoreBackend(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run("apply", "vmi_hero", "hero_xlarge", "-b", "article", "--store", "s3")
	assert.Equal(t, oerrors.ExitValidationError, exitCode(t, err))
}
