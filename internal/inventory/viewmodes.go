package inventory

import (
	"fmt"

	"github.com/viewmodes/vmi/internal/document"
	oerrors "github.com/viewmodes/vmi/internal/errors"
)

// ViewMode is one entry of the view-mode inventory.
type ViewMode struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
}

// LoadViewModes reads the view-mode inventory. Entries keep file order.
// An entry is either a plain label or a mapping with label and description.
func LoadViewModes(assets AssetResolver) ([]ViewMode, error) {
	data, err := assets.ReadAsset(ViewModesListPath)
	if err != nil {
		return nil, err
	}

	doc, err := document.ParseNamed(ViewModesListPath, data)
	if err != nil {
		return nil, err
	}
	if !doc.IsMapping() {
		return nil, invalidAsset(ViewModesListPath, "expected a mapping of view mode IDs")
	}

	modes := make([]ViewMode, 0, doc.Len())
	for _, e := range doc.Entries() {
		mode := ViewMode{ID: e.Key}
		switch {
		case e.Value.IsScalar():
			mode.Label, _ = e.Value.Scalar()
		case e.Value.IsMapping():
			mode.Label = scalarAt(e.Value, "label")
			mode.Description = scalarAt(e.Value, "description")
		default:
			return nil, invalidAsset(ViewModesListPath, fmt.Sprintf("view mode %q must be a label or a mapping", e.Key))
		}
		if mode.Label == "" {
			mode.Label = e.Key
		}
		modes = append(modes, mode)
	}
	return modes, nil
}

func scalarAt(v *document.Value, key string) string {
	field, ok := v.Get(key)
	if !ok {
		return ""
	}
	s, _ := field.Scalar()
	return s
}

func invalidAsset(name, msg string) error {
	return &oerrors.TemplateParseError{Source: name, Cause: fmt.Errorf("%s", msg)}
}
