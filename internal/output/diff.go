package output

import (
	"fmt"
	"strings"
)

// DiffItem is one config object in a diff report.
type DiffItem struct {
	// Name is the config object name.
	Name string

	// Status is StatusCreated, StatusConfigured or StatusUnchanged.
	Status string

	// Diff is the rendered document diff for modified objects.
	Diff string
}

// RenderDiff renders a diff report for config objects.
func RenderDiff(items []DiffItem, styles *Styles) string {
	var added, modified, unchanged int
	var sb strings.Builder

	for _, item := range items {
		switch item.Status {
		case StatusCreated:
			added++
			sb.WriteString("  + ")
			sb.WriteString(styles.Success.Render(item.Name))
			sb.WriteString("\n")
		case StatusConfigured:
			modified++
			sb.WriteString("  ~ ")
			sb.WriteString(styles.Warning.Render(item.Name))
			sb.WriteString("\n")
			sb.WriteString(IndentDiff(item.Diff, "    "))
		default:
			unchanged++
		}
	}

	if added == 0 && modified == 0 {
		return "No changes detected."
	}

	sb.WriteString("\nSummary: ")
	sb.WriteString(diffSummary(added, modified, unchanged))
	sb.WriteString("\n")
	return sb.String()
}

func diffSummary(added, modified, unchanged int) string {
	parts := make([]string, 0, 3)
	if added > 0 {
		parts = append(parts, fmt.Sprintf("%d added", added))
	}
	if modified > 0 {
		parts = append(parts, fmt.Sprintf("%d modified", modified))
	}
	if unchanged > 0 {
		parts = append(parts, fmt.Sprintf("%d unchanged", unchanged))
	}
	return strings.Join(parts, ", ")
}

// IndentDiff indents every non-empty line of diff.
func IndentDiff(diff string, indent string) string {
	if diff == "" {
		return ""
	}

	var sb strings.Builder
	for _, line := range strings.Split(diff, "\n") {
		if line != "" {
			sb.WriteString(indent)
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
