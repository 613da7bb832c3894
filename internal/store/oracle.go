package store

import (
	"context"
	"errors"

	"github.com/viewmodes/vmi/internal/document"
	"github.com/viewmodes/vmi/internal/viewmode"
)

// FieldStatusNew marks a field config that was created but never saved
// for real. Such fields count as absent.
const FieldStatusNew = "new"

// Oracle answers field-existence questions from field configs kept in a
// Store. It holds no state of its own.
type Oracle struct {
	Store Store
}

var _ viewmode.FieldOracle = (*Oracle)(nil)

// NewOracle returns an oracle reading from s.
func NewOracle(s Store) *Oracle {
	return &Oracle{Store: s}
}

// FieldExists implements viewmode.FieldOracle.
func (o *Oracle) FieldExists(ctx context.Context, entityType, bundle, field string) (bool, error) {
	doc, err := o.Store.Get(ctx, viewmode.FieldIdentifier(entityType, bundle, field))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if status, ok := doc.Get("status"); ok {
		if s, _ := status.Scalar(); s == FieldStatusNew {
			return false, nil
		}
	}
	return true, nil
}

// NewFieldConfig builds the stored document for a field instance.
func NewFieldConfig(entityType, bundle, field string) *document.Value {
	return document.NewMapping(
		document.Entry{Key: "langcode", Value: document.NewString("en")},
		document.Entry{Key: "status", Value: document.NewBool(true)},
		document.Entry{Key: "id", Value: document.NewString(entityType + "." + bundle + "." + field)},
		document.Entry{Key: "field_name", Value: document.NewString(field)},
		document.Entry{Key: "entity_type", Value: document.NewString(entityType)},
		document.Entry{Key: "bundle", Value: document.NewString(bundle)},
		document.Entry{Key: "dependencies", Value: document.NewMapping(
			document.Entry{Key: "config", Value: document.NewStrings(
				"field.storage." + entityType + "." + field,
				entityType + ".type." + bundle,
			)},
		)},
	)
}

// FieldPrefix returns the config name prefix of all field instances on a
// bundle.
func FieldPrefix(entityType, bundle string) string {
	return "field.field." + entityType + "." + bundle + "."
}
