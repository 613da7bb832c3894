package inventory

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/viewmodes/vmi/internal/errors"
	"github.com/viewmodes/vmi/internal/viewmode"
)

func TestEmbeddedAssets_Consistent(t *testing.T) {
	assets := NewEmbeddedAssets()

	modes, err := LoadViewModes(assets)
	require.NoError(t, err)
	layouts, err := LoadLayoutsMapping(assets)
	require.NoError(t, err)

	assert.Len(t, modes, 17)
	assert.Equal(t, "hero_xlarge", modes[0].ID)
	assert.Equal(t, "Hero - xlarge", modes[0].Label)
	assert.Empty(t, CheckMapping(assets, modes, layouts))
}

func TestEmbeddedTemplates_ResolveForAnyBundle(t *testing.T) {
	assets := NewEmbeddedAssets()
	layouts, err := LoadLayoutsMapping(assets)
	require.NoError(t, err)

	for _, l := range layouts {
		for _, vm := range l.ViewModes {
			raw, err := LoadTemplate(assets, l.ID, vm)
			require.NoError(t, err, "%s/%s", l.ID, vm)

			name, doc, err := viewmode.ResolveTemplate(string(raw), ConfigNamePattern("node", vm), "article")
			require.NoError(t, err, "%s/%s", l.ID, vm)
			assert.Equal(t, "core.entity_view_display.node.article."+vm, name)

			mode, ok := doc.Get("mode")
			require.True(t, ok)
			text, _ := mode.Scalar()
			assert.Equal(t, vm, text)
		}
	}
}

func TestLoadViewModes_Formats(t *testing.T) {
	fsys := fstest.MapFS{
		ViewModesListPath: {Data: []byte("teaser: Teaser\nfull:\n  label: Full content\n  description: Everything\nbare: {}\n")},
	}

	modes, err := LoadViewModes(NewFSAssets(fsys, "test"))
	require.NoError(t, err)
	assert.Equal(t, []ViewMode{
		{ID: "teaser", Label: "Teaser"},
		{ID: "full", Label: "Full content", Description: "Everything"},
		{ID: "bare", Label: "bare"},
	}, modes)
}

func TestLoadViewModes_MissingFile(t *testing.T) {
	_, err := LoadViewModes(NewFSAssets(fstest.MapFS{}, "test"))
	require.Error(t, err)

	var target *oerrors.TemplateLookupError
	require.True(t, errors.As(err, &target))
	assert.Equal(t, ViewModesListPath, target.Path)
	assert.ErrorIs(t, err, oerrors.ErrNotFound)
	assert.Contains(t, err.Error(), "view modes inventory list file does not exist")
}

func TestLoadViewModes_Malformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"syntax", "teaser: [\n"},
		{"not a mapping", "- teaser\n- full\n"},
		{"nested list", "teaser:\n  - a\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := fstest.MapFS{ViewModesListPath: {Data: []byte(tt.data)}}
			_, err := LoadViewModes(NewFSAssets(fsys, "test"))
			var parseErr *oerrors.TemplateParseError
			require.True(t, errors.As(err, &parseErr), "got %v", err)
		})
	}
}

func TestLoadLayoutsMapping_Formats(t *testing.T) {
	fsys := fstest.MapFS{
		LayoutsMappingPath: {Data: []byte("ds_1col: [teaser, full]\nvmi_tout:\n  label: Tout\n  view_modes: [tout_large]\nempty: {}\n")},
	}

	layouts, err := LoadLayoutsMapping(NewFSAssets(fsys, "test"))
	require.NoError(t, err)
	assert.Equal(t, Layouts{
		{ID: "ds_1col", Label: "ds_1col", ViewModes: []string{"teaser", "full"}},
		{ID: "vmi_tout", Label: "Tout", ViewModes: []string{"tout_large"}},
		{ID: "empty", Label: "empty"},
	}, layouts)

	l, ok := layouts.Find("vmi_tout")
	require.True(t, ok)
	assert.True(t, l.Renders("tout_large"))
	assert.False(t, l.Renders("teaser"))

	assert.Len(t, layouts.ForViewMode("teaser"), 1)
	_, ok = layouts.Find("missing")
	assert.False(t, ok)
}

func TestLoadLayoutsMapping_MissingFile(t *testing.T) {
	_, err := LoadLayoutsMapping(NewFSAssets(fstest.MapFS{}, "test"))

	var target *oerrors.TemplateLookupError
	require.True(t, errors.As(err, &target))
	assert.Equal(t, LayoutsMappingPath, target.Path)
}

func TestLoadTemplate_Missing(t *testing.T) {
	_, err := LoadTemplate(NewEmbeddedAssets(), "vmi_tout", "hero_xlarge")

	var target *oerrors.TemplateLookupError
	require.True(t, errors.As(err, &target))
	assert.Equal(t, "templates/vmi_tout/hero_xlarge.yml", target.Path)
	assert.Contains(t, err.Error(), "config template file does not exist")
}

func TestCheckMapping(t *testing.T) {
	fsys := fstest.MapFS{
		"templates/ds_1col/teaser.yml": {Data: []byte("mode: teaser\n")},
	}
	modes := []ViewMode{{ID: "teaser"}}
	layouts := Layouts{
		{ID: "ds_1col", ViewModes: []string{"teaser", "ghost"}},
		{ID: "unused"},
	}

	problems := CheckMapping(NewFSAssets(fsys, "test"), modes, layouts)

	assert.Equal(t, []Problem{
		{Layout: "ds_1col", ViewMode: "ghost", Message: "unknown view mode"},
		{Layout: "ds_1col", ViewMode: "ghost", Message: "missing template templates/ds_1col/ghost.yml"},
		{Layout: "unused", Message: "maps no view modes"},
	}, problems)
	assert.Contains(t, FormatProblems(problems), "ds_1col/ghost: unknown view mode")
}

func TestConfigNamePattern(t *testing.T) {
	assert.Equal(t, "core.entity_view_display.node.CONTENT_TYPE_NAME.tout_large", ConfigNamePattern("node", "tout_large"))
}
