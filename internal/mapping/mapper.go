// Package mapping binds a view mode to a layout for a content bundle.
//
// It loads the layout template from the inventory, substitutes the bundle
// into it, prunes references to absent fields and persists the result.
package mapping

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/viewmodes/vmi/internal/document"
	oerrors "github.com/viewmodes/vmi/internal/errors"
	"github.com/viewmodes/vmi/internal/inventory"
	"github.com/viewmodes/vmi/internal/output"
	"github.com/viewmodes/vmi/internal/store"
	"github.com/viewmodes/vmi/internal/viewmode"
)

// ErrLayoutMismatch is returned when a layout does not map the requested view mode.
var ErrLayoutMismatch = fmt.Errorf("%w: layout does not render view mode", oerrors.ErrValidation)

// Mapper renders and applies view mode configurations.
type Mapper struct {
	// Assets serves the inventories and layout templates.
	Assets inventory.AssetResolver

	// Store receives applied configurations.
	Store store.Store

	// Oracle answers field existence queries during filtering.
	Oracle viewmode.FieldOracle

	// Filter holds the supported fields and regions. Nil uses the defaults.
	Filter *viewmode.Filter
}

// Request selects one view mode, layout and bundle.
type Request struct {
	ViewMode string
	Layout   string

	// EntityType defaults to the filter's entity type.
	EntityType string

	Bundle string
}

// String returns a short description for log lines.
func (r Request) String() string {
	return fmt.Sprintf("%s/%s@%s", r.Layout, r.ViewMode, r.Bundle)
}

// Result is a rendered configuration object.
type Result struct {
	// ConfigName is the bound config object name.
	ConfigName string

	// Document is the resolved and filtered template.
	Document *document.Value

	// Pruned lists the supported fields removed because they are absent.
	Pruned []string

	// Status is set by Apply: created, configured or unchanged.
	Status string
}

// New returns a Mapper whose oracle is backed by s.
func New(assets inventory.AssetResolver, s store.Store, filter *viewmode.Filter) *Mapper {
	return &Mapper{
		Assets: assets,
		Store:  s,
		Oracle: store.NewOracle(s),
		Filter: filter,
	}
}

func (m *Mapper) filterFor(req Request) *viewmode.Filter {
	f := viewmode.Filter{}
	if m.Filter != nil {
		f = *m.Filter
	}
	if req.EntityType != "" {
		f.EntityType = req.EntityType
	}
	if f.EntityType == "" {
		f.EntityType = viewmode.DefaultEntityType
	}
	return &f
}

// Render produces the configuration for req without persisting it.
func (m *Mapper) Render(ctx context.Context, req Request) (*Result, error) {
	if req.Bundle == "" {
		return nil, viewmode.ErrEmptyBundle
	}

	layouts, err := inventory.LoadLayoutsMapping(m.Assets)
	if err != nil {
		return nil, err
	}

	layout, ok := layouts.Find(req.Layout)
	if !ok {
		return nil, oerrors.NewNotFoundError(
			fmt.Sprintf("layout %q is not in the layouts mapping", req.Layout),
			inventory.LayoutsMappingPath,
			"run 'vmi layouts' to list available layouts",
		)
	}
	if !layout.Renders(req.ViewMode) {
		return nil, fmt.Errorf("%w: %s does not map %s", ErrLayoutMismatch, req.Layout, req.ViewMode)
	}

	raw, err := inventory.LoadTemplate(m.Assets, req.Layout, req.ViewMode)
	if err != nil {
		return nil, err
	}

	filter := m.filterFor(req)
	pattern := inventory.ConfigNamePattern(filter.EntityType, req.ViewMode)

	name, tmpl, err := viewmode.ResolveTemplate(string(raw), pattern, req.Bundle)
	if err != nil {
		return nil, err
	}

	res, err := filter.Apply(ctx, req.Bundle, tmpl, m.Oracle)
	if err != nil {
		return nil, err
	}

	if len(res.Pruned) > 0 {
		output.Debug("pruned absent fields", "config", name, "fields", res.Pruned)
	}

	return &Result{
		ConfigName: name,
		Document:   res.Template,
		Pruned:     res.Pruned,
	}, nil
}

// Apply renders req and saves the result. Nothing is persisted when
// rendering fails. An identical stored document is left untouched.
func (m *Mapper) Apply(ctx context.Context, req Request) (*Result, error) {
	res, err := m.Render(ctx, req)
	if err != nil {
		return nil, err
	}

	current, err := m.Store.Get(ctx, res.ConfigName)
	switch {
	case err == nil:
		if document.Equal(current, res.Document) {
			res.Status = output.StatusUnchanged
			output.Debug("config unchanged", "config", res.ConfigName)
			return res, nil
		}
		res.Status = output.StatusConfigured
	case errors.Is(err, store.ErrNotFound):
		res.Status = output.StatusCreated
	default:
		return nil, fmt.Errorf("reading %s: %w", res.ConfigName, err)
	}

	if err := m.Store.Save(ctx, res.ConfigName, res.Document); err != nil {
		return nil, fmt.Errorf("saving %s: %w", res.ConfigName, err)
	}

	output.Debug("config saved", "config", res.ConfigName, "status", res.Status)
	return res, nil
}

// ApplyAll applies reqs with at most concurrency in flight. Results are
// returned in request order. The first error cancels the remaining
// requests; results of requests that completed are still returned.
func (m *Mapper) ApplyAll(ctx context.Context, reqs []Request, concurrency int) ([]*Result, error) {
	results := make([]*Result, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}

	for i, req := range reqs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := m.Apply(gctx, req)
			if err != nil {
				return fmt.Errorf("%s: %w", req, err)
			}
			results[i] = res
			return nil
		})
	}

	err := g.Wait()
	return results, err
}
