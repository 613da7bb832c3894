package mapping

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gonvenience/ytbx"
	"github.com/homeport/dyff/pkg/dyff"
	"github.com/k14s/difflib"

	"github.com/viewmodes/vmi/internal/document"
	"github.com/viewmodes/vmi/internal/output"
	"github.com/viewmodes/vmi/internal/store"
)

// DiffResult compares a stored configuration with a fresh render.
type DiffResult struct {
	// ConfigName is the bound config object name.
	ConfigName string

	// Status is created when nothing is stored, configured when the stored
	// document differs, unchanged otherwise.
	Status string

	// Diff is the rendered dyff report for a configured object.
	Diff string
}

// HasChanges reports whether applying would change the store.
func (r *DiffResult) HasChanges() bool {
	return r.Status != output.StatusUnchanged
}

// DiffOptions configures Diff.
type DiffOptions struct {
	// UseColor enables colorized dyff output.
	UseColor bool

	// Lines selects a plain line diff of the YAML text instead of the
	// structural dyff report.
	Lines bool
}

// Diff renders req and compares it with the stored document.
func (m *Mapper) Diff(ctx context.Context, req Request, opts DiffOptions) (*DiffResult, error) {
	res, err := m.Render(ctx, req)
	if err != nil {
		return nil, err
	}

	out := &DiffResult{ConfigName: res.ConfigName}

	current, err := m.Store.Get(ctx, res.ConfigName)
	if errors.Is(err, store.ErrNotFound) {
		out.Status = output.StatusCreated
		return out, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", res.ConfigName, err)
	}

	if document.Equal(current, res.Document) {
		out.Status = output.StatusUnchanged
		return out, nil
	}

	var diff string
	if opts.Lines {
		diff, err = LineDiff(current, res.Document)
	} else {
		diff, err = DiffDocuments(current, res.Document, opts.UseColor)
	}
	if err != nil {
		return nil, fmt.Errorf("comparing %s: %w", res.ConfigName, err)
	}

	// dyff does not report reordered keys.
	if diff == "" {
		diff = "(order of entries differs)"
	}

	out.Status = output.StatusConfigured
	out.Diff = diff
	return out, nil
}

// DiffDocuments returns a human-readable dyff report from stored to
// desired, or "" when dyff finds no differences.
func DiffDocuments(stored, desired *document.Value, useColor bool) (string, error) {
	storedInput, err := documentInput("stored", stored)
	if err != nil {
		return "", fmt.Errorf("parsing stored document: %w", err)
	}

	desiredInput, err := documentInput("desired", desired)
	if err != nil {
		return "", fmt.Errorf("parsing desired document: %w", err)
	}

	report, err := dyff.CompareInputFiles(storedInput, desiredInput)
	if err != nil {
		return "", fmt.Errorf("comparing YAML: %w", err)
	}

	if len(report.Diffs) == 0 {
		return "", nil
	}

	return renderReport(report, useColor)
}

// LineDiff returns a line-by-line diff of the YAML encodings of stored and
// desired. Unchanged lines are kept for context.
func LineDiff(stored, desired *document.Value) (string, error) {
	a, err := stored.Encode()
	if err != nil {
		return "", err
	}
	b, err := desired.Encode()
	if err != nil {
		return "", err
	}
	if bytes.Equal(a, b) {
		return "", nil
	}
	return strings.TrimRight(difflib.PPDiff(splitLines(a), splitLines(b)), "\n"), nil
}

func splitLines(data []byte) []string {
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

func documentInput(name string, doc *document.Value) (ytbx.InputFile, error) {
	data, err := doc.Encode()
	if err != nil {
		return ytbx.InputFile{}, err
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return ytbx.InputFile{Location: name}, nil
	}

	docs, err := ytbx.LoadYAMLDocuments(data)
	if err != nil {
		return ytbx.InputFile{}, err
	}

	return ytbx.InputFile{Location: name, Documents: docs}, nil
}

func renderReport(report dyff.Report, useColor bool) (string, error) {
	var buf bytes.Buffer

	writer := &dyff.HumanReport{
		Report:            report,
		DoNotInspectCerts: true,
		NoTableStyle:      !useColor,
		OmitHeader:        true,
	}

	if err := writer.WriteReport(io.Writer(&buf)); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}

	lines := strings.Split(buf.String(), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}

	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}
