package document

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	oerrors "github.com/viewmodes/vmi/internal/errors"
)

const displayYAML = `langcode: en
status: true
dependencies:
  config:
    - field.field.node.article.field_image
    - field.field.node.article.body
third_party_settings:
  ds:
    regions:
      main:
        - field_image
        - body
      left: []
content:
  field_image:
    weight: 0
    label: hidden
  body:
    weight: 1
`

func TestParse_KeepsOrderAndShape(t *testing.T) {
	doc, err := Parse([]byte(displayYAML))
	require.NoError(t, err)

	assert.True(t, doc.IsMapping())
	assert.Equal(t, []string{"langcode", "status", "dependencies", "third_party_settings", "content"}, doc.Keys())

	deps, ok := doc.Lookup("dependencies", "config")
	require.True(t, ok)
	list, ok := deps.Strings()
	require.True(t, ok)
	assert.Equal(t, []string{"field.field.node.article.field_image", "field.field.node.article.body"}, list)

	status, ok := doc.Get("status")
	require.True(t, ok)
	assert.Equal(t, "!!bool", status.Tag())
}

func TestLookup_AbsentVersusEmpty(t *testing.T) {
	doc, err := Parse([]byte(displayYAML))
	require.NoError(t, err)

	left, ok := doc.Lookup("third_party_settings", "ds", "regions", "left")
	require.True(t, ok, "empty region is present")
	assert.True(t, left.IsSequence())
	assert.Equal(t, 0, left.Len())

	_, ok = doc.Lookup("third_party_settings", "ds", "regions", "right")
	assert.False(t, ok, "missing region is absent")

	_, ok = doc.Lookup("langcode", "nested")
	assert.False(t, ok, "lookup through a scalar is absent")
}

func TestParse_EmptyInput(t *testing.T) {
	doc, err := Parse([]byte(""))
	require.NoError(t, err)
	assert.True(t, doc.IsMapping())
	assert.Equal(t, 0, doc.Len())
}

func TestParse_SyntaxError(t *testing.T) {
	_, err := ParseNamed("broken.yml", []byte("content:\n  body: [unterminated\n"))
	require.Error(t, err)

	var parseErr *oerrors.TemplateParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "broken.yml", parseErr.Source)
	assert.True(t, errors.Is(err, oerrors.ErrValidation))
}

func TestParse_ResolvesAliases(t *testing.T) {
	doc, err := Parse([]byte("base: &b\n  weight: 1\ncopy: *b\n"))
	require.NoError(t, err)

	weight, ok := doc.Lookup("copy", "weight")
	require.True(t, ok)
	text, _ := weight.Scalar()
	assert.Equal(t, "1", text)
}

// aliasBomb nests levels of ten-fold alias references.
func aliasBomb(levels int) string {
	var b strings.Builder
	b.WriteString("l0: &l0 [x, x, x, x, x, x, x, x, x, x]\n")
	for i := 1; i <= levels; i++ {
		ref := fmt.Sprintf("*l%d", i-1)
		refs := strings.TrimSuffix(strings.Repeat(ref+", ", 10), ", ")
		fmt.Fprintf(&b, "l%d: &l%d [%s]\n", i, i, refs)
	}
	return b.String()
}

func TestParse_MalformedStructure(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"self-referencing anchor", "a: &x\n  b: *x\n"},
		{"anchor cycle through sequence", "a: &x [1, *x]\n"},
		{"duplicate key", "content:\n  field_image: {weight: 1}\n  field_image: {weight: 2}\n"},
		{"duplicate top-level key", "status: true\nstatus: false\n"},
		{"excessive aliasing", aliasBomb(7)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseNamed("bad.yml", []byte(tt.yaml))
			require.Error(t, err)

			var parseErr *oerrors.TemplateParseError
			require.True(t, errors.As(err, &parseErr))
			assert.Equal(t, "bad.yml", parseErr.Source)
			assert.ErrorIs(t, err, oerrors.ErrValidation)
		})
	}
}

func TestFromNode_Guards(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"alias cycle", "a: &x\n  b: *x\n", "contains itself"},
		{"duplicate key", "a: 1\nb: 2\na: 3\n", `mapping key "a" already defined at line 1`},
		{"expansion limit", aliasBomb(7), "excessive aliasing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var node yaml.Node
			require.NoError(t, yaml.Unmarshal([]byte(tt.yaml), &node))

			_, err := fromNode(&node)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestFromNode_SharedAnchorIsNotACycle(t *testing.T) {
	doc, err := Parse([]byte("base: &b {weight: 1}\nleft: *b\nright: [*b, *b]\n"))
	require.NoError(t, err)

	right, ok := doc.Get("right")
	require.True(t, ok)
	assert.Equal(t, 2, right.Len())
}

func TestRemoveScalars(t *testing.T) {
	seq := NewStrings("body", "field_image", "field_tags", "field_image")

	removed := seq.RemoveScalars("field_image")

	assert.Equal(t, 2, removed)
	got, _ := seq.Strings()
	assert.Equal(t, []string{"body", "field_tags"}, got)
	assert.Equal(t, 0, seq.RemoveScalars("missing"))
}

func TestSetAndDelete(t *testing.T) {
	m := NewMapping()
	m.Set("a", NewString("1"))
	m.Set("b", NewString("2"))
	m.Set("a", NewString("3"))

	assert.Equal(t, []string{"a", "b"}, m.Keys())
	a, _ := m.Get("a")
	text, _ := a.Scalar()
	assert.Equal(t, "3", text)

	assert.True(t, m.Delete("a"))
	assert.False(t, m.Delete("a"))
	assert.Equal(t, []string{"b"}, m.Keys())
}

func TestDeepCopy_IsIndependent(t *testing.T) {
	doc, err := Parse([]byte(displayYAML))
	require.NoError(t, err)
	original, err := doc.Encode()
	require.NoError(t, err)

	cp := doc.DeepCopy()
	main, _ := cp.Lookup("third_party_settings", "ds", "regions", "main")
	main.RemoveScalars("body")
	content, _ := cp.Get("content")
	content.Delete("field_image")

	after, err := doc.Encode()
	require.NoError(t, err)
	assert.Equal(t, string(original), string(after))
	assert.False(t, Equal(doc, cp))
}

func TestEncode_RoundTrip(t *testing.T) {
	doc, err := Parse([]byte(displayYAML))
	require.NoError(t, err)

	out, err := doc.Encode()
	require.NoError(t, err)

	again, err := Parse(out)
	require.NoError(t, err)
	assert.True(t, Equal(doc, again))
	assert.True(t, strings.HasPrefix(string(out), "langcode: en\n"))
}

func TestEncode_QuotesStringsThatLookTyped(t *testing.T) {
	doc := NewMapping(Entry{Key: "version", Value: NewString("10")})

	out, err := doc.Encode()
	require.NoError(t, err)
	assert.Equal(t, "version: \"10\"\n", string(out))
}

func TestJSON(t *testing.T) {
	doc := NewMapping(
		Entry{Key: "id", Value: NewString("node.article.teaser")},
		Entry{Key: "status", Value: NewBool(true)},
	)

	out, err := doc.JSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"node.article.teaser","status":true}`, string(out))
}

func TestInterface(t *testing.T) {
	doc, err := Parse([]byte("a:\n  - x\n  - 2\n"))
	require.NoError(t, err)

	v, err := doc.Interface()
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"a": []interface{}{"x", 2}}, v)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "mapping", MappingKind.String())
	assert.Equal(t, "sequence", SequenceKind.String())
	assert.Equal(t, "scalar", ScalarKind.String())
}
