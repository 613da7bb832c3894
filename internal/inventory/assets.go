// Package inventory loads the view-mode inventory, the layout mapping and
// the per-layout configuration templates.
package inventory

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"

	oerrors "github.com/viewmodes/vmi/internal/errors"
)

//go:embed assets
var embeddedAssets embed.FS

// Fixed asset paths relative to the asset root.
const (
	ViewModesListPath  = "view_modes.list.yml"
	LayoutsMappingPath = "layouts.mapping.yml"
	TemplatesDir       = "templates"
)

// AssetResolver locates and reads assets by their path relative to the
// asset root.
type AssetResolver interface {
	// ReadAsset returns the content of the asset at name. A missing asset
	// is reported as *errors.TemplateLookupError.
	ReadAsset(name string) ([]byte, error)

	// HasAsset reports whether the asset exists.
	HasAsset(name string) bool

	// Root describes where assets are read from, for messages.
	Root() string
}

// FSAssets serves assets from an fs.FS.
type FSAssets struct {
	fsys fs.FS
	root string
}

// NewEmbeddedAssets returns the assets compiled into the binary.
func NewEmbeddedAssets() *FSAssets {
	sub, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		// fs.Sub only fails on an invalid path literal.
		panic(err)
	}
	return &FSAssets{fsys: sub, root: "embedded"}
}

// NewDirAssets returns assets read from dir on disk.
func NewDirAssets(dir string) *FSAssets {
	return &FSAssets{fsys: os.DirFS(dir), root: dir}
}

// NewFSAssets wraps an arbitrary filesystem. Used by tests.
func NewFSAssets(fsys fs.FS, root string) *FSAssets {
	return &FSAssets{fsys: fsys, root: root}
}

// ReadAsset implements AssetResolver.
func (a *FSAssets) ReadAsset(name string) ([]byte, error) {
	data, err := fs.ReadFile(a.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &oerrors.TemplateLookupError{Path: name, Asset: assetKind(name), Cause: err}
		}
		return nil, fmt.Errorf("reading asset %s from %s: %w", name, a.root, err)
	}
	return data, nil
}

// HasAsset implements AssetResolver.
func (a *FSAssets) HasAsset(name string) bool {
	info, err := fs.Stat(a.fsys, name)
	return err == nil && !info.IsDir()
}

// Root implements AssetResolver.
func (a *FSAssets) Root() string {
	return a.root
}

// TemplatePath returns the asset path of the template for a view mode
// rendered with a layout.
func TemplatePath(layout, viewMode string) string {
	return path.Join(TemplatesDir, layout, viewMode+".yml")
}

func assetKind(name string) string {
	switch name {
	case ViewModesListPath:
		return "view modes inventory list"
	case LayoutsMappingPath:
		return "view modes inventory layouts mapping"
	default:
		return "config template"
	}
}
