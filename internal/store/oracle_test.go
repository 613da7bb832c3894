package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viewmodes/vmi/internal/document"
)

type failingStore struct {
	Store
	err error
}

func (f failingStore) Get(context.Context, string) (*document.Value, error) {
	return nil, f.err
}

func TestOracle_FieldExists(t *testing.T) {
	s := NewFileStore(t.TempDir())
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "field.field.node.article.body", NewFieldConfig("node", "article", "body")))

	placeholder := NewFieldConfig("node", "article", "field_image")
	placeholder.Set("status", document.NewString(FieldStatusNew))
	require.NoError(t, s.Save(ctx, "field.field.node.article.field_image", placeholder))

	oracle := NewOracle(s)
	tests := []struct {
		bundle, field string
		want          bool
	}{
		{"article", "body", true},
		{"article", "field_image", false},
		{"article", "field_video", false},
		{"page", "body", false},
	}

	for _, tt := range tests {
		t.Run(tt.bundle+"/"+tt.field, func(t *testing.T) {
			got, err := oracle.FieldExists(ctx, "node", tt.bundle, tt.field)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOracle_StoreError(t *testing.T) {
	down := errors.New("store unavailable")
	oracle := NewOracle(failingStore{err: down})

	_, err := oracle.FieldExists(context.Background(), "node", "article", "body")
	assert.ErrorIs(t, err, down)
}

func TestNewFieldConfig(t *testing.T) {
	doc := NewFieldConfig("node", "article", "field_media")

	id, ok := doc.Get("id")
	require.True(t, ok)
	text, _ := id.Scalar()
	assert.Equal(t, "node.article.field_media", text)

	deps, ok := doc.Lookup("dependencies", "config")
	require.True(t, ok)
	list, _ := deps.Strings()
	assert.Equal(t, []string{"field.storage.node.field_media", "node.type.article"}, list)

	assert.Equal(t, "field.field.node.article.", FieldPrefix("node", "article"))
}
