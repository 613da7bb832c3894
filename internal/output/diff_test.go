package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderDiff_NoChanges(t *testing.T) {
	out := RenderDiff([]DiffItem{{Name: "a", Status: StatusUnchanged}}, NoColorStyles())
	assert.Equal(t, "No changes detected.", out)
}

func TestRenderDiff(t *testing.T) {
	items := []DiffItem{
		{Name: "core.entity_view_display.node.article.tout_large", Status: StatusCreated},
		{Name: "core.entity_view_display.node.page.tout_large", Status: StatusConfigured, Diff: "content.body\n  - one map entry removed\n"},
		{Name: "core.entity_view_display.node.blog.tout_large", Status: StatusUnchanged},
	}

	out := RenderDiff(items, NoColorStyles())
	assert.Contains(t, out, "  + core.entity_view_display.node.article.tout_large\n")
	assert.Contains(t, out, "  ~ core.entity_view_display.node.page.tout_large\n")
	assert.Contains(t, out, "    content.body\n")
	assert.Contains(t, out, "Summary: 1 added, 1 modified, 1 unchanged")
	assert.NotContains(t, out, "node.blog")
}

func TestIndentDiff(t *testing.T) {
	assert.Equal(t, "", IndentDiff("", "  "))
	assert.Equal(t, "  a\n  b\n", IndentDiff("a\n\nb", "  "))
}
