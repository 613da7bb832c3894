package viewmode

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/viewmodes/vmi/internal/errors"
)

const rawTemplate = `langcode: en
status: true
id: node.CONTENT_TYPE_NAME.tout_large
targetEntityType: node
bundle: CONTENT_TYPE_NAME
mode: tout_large
dependencies:
  config:
    - core.entity_view_mode.node.tout_large
    - field.field.node.CONTENT_TYPE_NAME.field_image
    - field.field.node.CONTENT_TYPE_NAME.body
  module:
    - ds
third_party_settings:
  ds:
    layout:
      id: vmi_tout
    regions:
      main:
        - field_image
        - body
content:
  field_image:
    weight: 0
  body:
    weight: 1
`

func TestSubstitute(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"none", "core.entity_view_display.node.article.full", "core.entity_view_display.node.article.full"},
		{"one", "node.CONTENT_TYPE_NAME.teaser", "node.article.teaser"},
		{"many", "CONTENT_TYPE_NAME/CONTENT_TYPE_NAME", "article/article"},
		{"case sensitive", "content_type_name CONTENT_TYPE_NAME", "content_type_name article"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Substitute(tt.in, "article"))
		})
	}
}

func TestSubstitute_Idempotent(t *testing.T) {
	once := Substitute(rawTemplate, "article")
	twice := Substitute(once, "article")
	assert.Equal(t, once, twice)
}

func TestResolveTemplate(t *testing.T) {
	name, doc, err := ResolveTemplate(rawTemplate, "core.entity_view_display.node.CONTENT_TYPE_NAME.tout_large", "article")
	require.NoError(t, err)

	assert.Equal(t, "core.entity_view_display.node.article.tout_large", name)

	bundle, ok := doc.Get("bundle")
	require.True(t, ok)
	text, _ := bundle.Scalar()
	assert.Equal(t, "article", text)

	deps, ok := doc.Lookup("dependencies", "config")
	require.True(t, ok)
	list, _ := deps.Strings()
	assert.Equal(t, []string{
		"core.entity_view_mode.node.tout_large",
		"field.field.node.article.field_image",
		"field.field.node.article.body",
	}, list)

	encoded, err := doc.Encode()
	require.NoError(t, err)
	assert.NotContains(t, string(encoded), PlaceholderToken)
	assert.NotContains(t, name, PlaceholderToken)
}

func TestResolveTemplate_PlaceholderInKey(t *testing.T) {
	_, doc, err := ResolveTemplate("content:\n  CONTENT_TYPE_NAME_summary:\n    weight: 2\n", "x", "page")
	require.NoError(t, err)

	_, ok := doc.Lookup("content", "page_summary")
	assert.True(t, ok)
}

func TestResolveTemplate_ParseError(t *testing.T) {
	_, _, err := ResolveTemplate("content: [CONTENT_TYPE_NAME\n", "cfg.CONTENT_TYPE_NAME", "article")
	require.Error(t, err)

	var parseErr *oerrors.TemplateParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "cfg.article", parseErr.Source)
}

func TestResolveTemplate_EmptyBundle(t *testing.T) {
	_, _, err := ResolveTemplate(rawTemplate, "cfg", "")
	assert.ErrorIs(t, err, ErrEmptyBundle)
}

func TestResolveTemplate_NoPlaceholder(t *testing.T) {
	name, doc, err := ResolveTemplate("status: true\n", "system.site", "article")
	require.NoError(t, err)
	assert.Equal(t, "system.site", name)
	assert.Equal(t, []string{"status"}, doc.Keys())
	assert.False(t, strings.Contains(name, "article"))
}
