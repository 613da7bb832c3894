// Package viewmode binds configuration templates to content bundles.
//
// Binding happens in two stages. ResolveTemplate substitutes the bundle
// name for PlaceholderToken in the raw template text and the config object
// name, then parses the text. FilterForExistingFields then prunes every
// reference to a supported field that the bundle does not have.
package viewmode

import (
	"errors"
	"strings"

	"github.com/viewmodes/vmi/internal/document"
)

// PlaceholderToken marks where the bundle name goes in templates and
// config object names.
const PlaceholderToken = "CONTENT_TYPE_NAME"

// ErrEmptyBundle is returned when a bundle identifier is empty.
var ErrEmptyBundle = errors.New("bundle identifier must not be empty")

// Substitute replaces every occurrence of PlaceholderToken in text with
// bundle. It is a literal, case-sensitive replacement.
func Substitute(text, bundle string) string {
	return strings.ReplaceAll(text, PlaceholderToken, bundle)
}

// ResolveTemplate binds a raw template to bundle. It returns the config
// object name with the placeholder replaced and the parsed template body.
// Substitution happens on the raw text before parsing, so the placeholder
// may appear anywhere: keys, values, or the object name itself.
func ResolveTemplate(rawTemplate, configNamePattern, bundle string) (string, *document.Value, error) {
	if bundle == "" {
		return "", nil, ErrEmptyBundle
	}

	name := Substitute(configNamePattern, bundle)
	body := Substitute(rawTemplate, bundle)

	doc, err := document.ParseNamed(name, []byte(body))
	if err != nil {
		return "", nil, err
	}
	return name, doc, nil
}
