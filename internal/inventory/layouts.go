package inventory

import (
	"fmt"
	"strings"

	"github.com/viewmodes/vmi/internal/document"
	"github.com/viewmodes/vmi/internal/viewmode"
)

// Layout maps a layout template to the view modes it renders.
type Layout struct {
	ID        string   `json:"id"`
	Label     string   `json:"label"`
	ViewModes []string `json:"viewModes"`
}

// Renders reports whether the layout maps viewMode.
func (l Layout) Renders(viewMode string) bool {
	for _, vm := range l.ViewModes {
		if vm == viewMode {
			return true
		}
	}
	return false
}

// Layouts is the layout mapping in file order.
type Layouts []Layout

// Find returns the layout with the given ID.
func (ls Layouts) Find(id string) (Layout, bool) {
	for _, l := range ls {
		if l.ID == id {
			return l, true
		}
	}
	return Layout{}, false
}

// ForViewMode returns the layouts that render viewMode.
func (ls Layouts) ForViewMode(viewMode string) Layouts {
	var out Layouts
	for _, l := range ls {
		if l.Renders(viewMode) {
			out = append(out, l)
		}
	}
	return out
}

// LoadLayoutsMapping reads the layout mapping. An entry is either a list
// of view modes or a mapping with label and view_modes.
func LoadLayoutsMapping(assets AssetResolver) (Layouts, error) {
	data, err := assets.ReadAsset(LayoutsMappingPath)
	if err != nil {
		return nil, err
	}

	doc, err := document.ParseNamed(LayoutsMappingPath, data)
	if err != nil {
		return nil, err
	}
	if !doc.IsMapping() {
		return nil, invalidAsset(LayoutsMappingPath, "expected a mapping of layout IDs")
	}

	layouts := make(Layouts, 0, doc.Len())
	for _, e := range doc.Entries() {
		layout := Layout{ID: e.Key, Label: e.Key}

		modes := e.Value
		if e.Value.IsMapping() {
			if label := scalarAt(e.Value, "label"); label != "" {
				layout.Label = label
			}
			modes, _ = e.Value.Get("view_modes")
		}

		if modes != nil {
			list, ok := modes.Strings()
			if !ok {
				return nil, invalidAsset(LayoutsMappingPath, fmt.Sprintf("layout %q: view_modes must be a list of IDs", e.Key))
			}
			layout.ViewModes = list
		}
		layouts = append(layouts, layout)
	}
	return layouts, nil
}

// LoadTemplate reads the raw template text for a view mode rendered with
// a layout.
func LoadTemplate(assets AssetResolver, layout, viewMode string) ([]byte, error) {
	return assets.ReadAsset(TemplatePath(layout, viewMode))
}

// ConfigNamePattern returns the config object name pattern of the entity
// view display for a view mode. The bundle part is PlaceholderToken.
func ConfigNamePattern(entityType, viewMode string) string {
	return fmt.Sprintf("core.entity_view_display.%s.%s.%s", entityType, viewmode.PlaceholderToken, viewMode)
}

// Problem is an inconsistency found by CheckMapping.
type Problem struct {
	Layout   string
	ViewMode string
	Message  string
}

// String formats the problem for display.
func (p Problem) String() string {
	return fmt.Sprintf("%s/%s: %s", p.Layout, p.ViewMode, p.Message)
}

// CheckMapping reports layout entries that reference unknown view modes
// or have no template asset.
func CheckMapping(assets AssetResolver, modes []ViewMode, layouts Layouts) []Problem {
	known := make(map[string]bool, len(modes))
	for _, m := range modes {
		known[m.ID] = true
	}

	var problems []Problem
	for _, l := range layouts {
		if len(l.ViewModes) == 0 {
			problems = append(problems, Problem{Layout: l.ID, Message: "maps no view modes"})
		}
		for _, vm := range l.ViewModes {
			if !known[vm] {
				problems = append(problems, Problem{Layout: l.ID, ViewMode: vm, Message: "unknown view mode"})
			}
			if !assets.HasAsset(TemplatePath(l.ID, vm)) {
				problems = append(problems, Problem{
					Layout:   l.ID,
					ViewMode: vm,
					Message:  "missing template " + TemplatePath(l.ID, vm),
				})
			}
		}
	}
	return problems
}

// FormatProblems joins problems one per line.
func FormatProblems(problems []Problem) string {
	lines := make([]string, 0, len(problems))
	for _, p := range problems {
		lines = append(lines, p.String())
	}
	return strings.Join(lines, "\n")
}
