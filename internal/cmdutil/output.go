package cmdutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"sigs.k8s.io/yaml"

	"github.com/viewmodes/vmi/internal/config"
	"github.com/viewmodes/vmi/internal/document"
	oerrors "github.com/viewmodes/vmi/internal/errors"
	"github.com/viewmodes/vmi/internal/output"
)

// ResolveFormat returns the --output format, or def when it was not given.
// Unknown formats are validation errors.
func ResolveFormat(gc *config.GlobalConfig, def output.Format) (output.Format, error) {
	if gc == nil || gc.Output == "" {
		return def, nil
	}
	format, ok := output.ParseFormat(gc.Output)
	if !ok {
		return "", &oerrors.ExitError{
			Code: oerrors.ExitValidationError,
			Err:  fmt.Errorf("%w: unsupported output format %q (valid: yaml, json, table)", oerrors.ErrValidation, gc.Output),
		}
	}
	return format, nil
}

// WriteDocument writes a document as YAML or JSON. Table falls back to YAML.
func WriteDocument(w io.Writer, doc *document.Value, format output.Format) error {
	var data []byte
	var err error
	if format == output.FormatJSON {
		data, err = doc.JSON()
	} else {
		data, err = doc.Encode()
	}
	if err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	if format == output.FormatJSON {
		_, err = io.WriteString(w, "\n")
	}
	return err
}

// WriteStructured writes v as YAML or indented JSON using its json tags.
func WriteStructured(w io.Writer, v interface{}, format output.Format) error {
	if format == output.FormatJSON {
		return WriteJSON(w, v)
	}
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// PrintError reports err through the logger and returns an *ExitError
// marked as printed, so main does not print it again.
func PrintError(msg string, err error) error {
	var exitErr *oerrors.ExitError
	if errors.As(err, &exitErr) && exitErr.Printed {
		return err
	}

	var detail *oerrors.DetailError
	var lookup *oerrors.TemplateLookupError
	var parse *oerrors.TemplateParseError
	switch {
	case errors.As(err, &detail):
		output.Error(msg)
		output.Details(detail.Error())
	case errors.As(err, &lookup):
		output.Error(msg, "error", lookup.Error())
		output.Details("Hint: check --assets-dir or the bundled inventory")
	case errors.As(err, &parse):
		output.Error(msg, "source", parse.Source)
		output.Details(parse.Error())
	default:
		output.Error(msg, "error", err)
	}

	return &oerrors.ExitError{Code: oerrors.ExitCodeFromError(err), Err: err, Printed: true}
}
