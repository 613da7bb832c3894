package viewmode

import (
	"context"
	"fmt"

	"github.com/viewmodes/vmi/internal/document"
	oerrors "github.com/viewmodes/vmi/internal/errors"
)

// DefaultEntityType is the entity type whose field configs are checked.
const DefaultEntityType = "node"

// DefaultSupportedFields lists the fields the filter prunes when absent.
var DefaultSupportedFields = []string{"field_image", "field_video", "field_media", "body"}

// DefaultRegions lists the Display Suite regions the filter inspects.
var DefaultRegions = []string{"left", "right", "main"}

// FieldOracle answers whether a field exists on a bundle. A field that is
// only defined as a new, unsaved placeholder must be reported as absent.
// Implementations must be safe for concurrent use when filters run in
// parallel.
type FieldOracle interface {
	FieldExists(ctx context.Context, entityType, bundle, field string) (bool, error)
}

// OracleFunc adapts a function to FieldOracle.
type OracleFunc func(ctx context.Context, entityType, bundle, field string) (bool, error)

// FieldExists implements FieldOracle.
func (f OracleFunc) FieldExists(ctx context.Context, entityType, bundle, field string) (bool, error) {
	return f(ctx, entityType, bundle, field)
}

// FieldIdentifier returns the config object name of a field instance,
// e.g. field.field.node.article.body.
func FieldIdentifier(entityType, bundle, field string) string {
	return fmt.Sprintf("field.field.%s.%s.%s", entityType, bundle, field)
}

// Filter prunes references to absent fields from a bound template.
// The zero value uses the defaults.
type Filter struct {
	// EntityType is used to build field identifiers. Default: node.
	EntityType string

	// SupportedFields are the only fields checked and pruned.
	// Default: DefaultSupportedFields.
	SupportedFields []string

	// Regions are the third_party_settings.ds.regions entries inspected.
	// Default: DefaultRegions.
	Regions []string
}

// FilterResult is the outcome of Filter.Apply.
type FilterResult struct {
	// Template is the pruned copy.
	Template *document.Value

	// Pruned lists the supported fields found absent, in check order.
	Pruned []string
}

func (f *Filter) entityType() string {
	if f == nil || f.EntityType == "" {
		return DefaultEntityType
	}
	return f.EntityType
}

func (f *Filter) supportedFields() []string {
	if f == nil || len(f.SupportedFields) == 0 {
		return DefaultSupportedFields
	}
	return f.SupportedFields
}

func (f *Filter) regions() []string {
	if f == nil || len(f.Regions) == 0 {
		return DefaultRegions
	}
	return f.Regions
}

// Apply copies tmpl and removes every supported field the oracle reports
// absent on bundle from dependencies.config, each inspected region, and
// content. The input is never modified. Oracle errors abort the filter
// and are returned as *errors.OracleError.
func (f *Filter) Apply(ctx context.Context, bundle string, tmpl *document.Value, oracle FieldOracle) (*FilterResult, error) {
	if bundle == "" {
		return nil, ErrEmptyBundle
	}

	out := tmpl.DeepCopy()
	result := &FilterResult{Template: out}
	entityType := f.entityType()

	for _, field := range f.supportedFields() {
		exists, err := oracle.FieldExists(ctx, entityType, bundle, field)
		if err != nil {
			return nil, &oerrors.OracleError{Field: FieldIdentifier(entityType, bundle, field), Cause: err}
		}
		if exists {
			continue
		}
		f.prune(out, FieldIdentifier(entityType, bundle, field), field)
		result.Pruned = append(result.Pruned, field)
	}

	return result, nil
}

// prune removes one field from every place it can be referenced.
func (f *Filter) prune(doc *document.Value, identifier, field string) {
	if deps, ok := doc.Lookup("dependencies", "config"); ok {
		deps.RemoveScalars(identifier)
	}

	if regions, ok := doc.Lookup("third_party_settings", "ds", "regions"); ok {
		for _, name := range f.regions() {
			if region, ok := regions.Get(name); ok {
				region.RemoveScalars(field)
			}
		}
	}

	if content, ok := doc.Get("content"); ok {
		content.Delete(field)
	}
}

// FilterForExistingFields is Apply with the given filter settings,
// returning only the pruned template.
func (f *Filter) FilterForExistingFields(ctx context.Context, bundle string, tmpl *document.Value, oracle FieldOracle) (*document.Value, error) {
	res, err := f.Apply(ctx, bundle, tmpl, oracle)
	if err != nil {
		return nil, err
	}
	return res.Template, nil
}

// FilterForExistingFields prunes tmpl for bundle using the default
// entity type, supported fields and regions.
func FilterForExistingFields(ctx context.Context, bundle string, tmpl *document.Value, oracle FieldOracle) (*document.Value, error) {
	var f *Filter
	return f.FilterForExistingFields(ctx, bundle, tmpl, oracle)
}
