package rewrite

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Formatter writes a run Result for the user.
type Formatter interface {
	Format(w io.Writer, result *Result) error
}

// NewFormatter returns the formatter for format ("text" or "json").
func NewFormatter(format string) Formatter {
	switch format {
	case "json":
		return NewJSONFormatter()
	default:
		return NewTextFormatter()
	}
}

// TextFormatter formats results as human-readable text.
type TextFormatter struct{}

func NewTextFormatter() *TextFormatter {
	return &TextFormatter{}
}

// Format outputs results in human-readable text format.
func (f *TextFormatter) Format(w io.Writer, result *Result) error {
	if _, err := fmt.Fprintf(w, "Rewriting links in: %s\n", result.Root); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, strings.Repeat("━", 60)); err != nil {
		return err
	}

	for _, c := range result.Changes {
		if _, err := fmt.Fprintf(w, "  %s (%d link%s)\n", c.Path, c.Replacements, pluralize(c.Replacements)); err != nil {
			return err
		}
	}
	if len(result.Changes) > 0 {
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w, result.Summary())
	return err
}

// JSONFormatter formats results as JSON.
type JSONFormatter struct{}

func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// JSONOutput represents the JSON output structure.
type JSONOutput struct {
	RunID          string        `json:"run_id"`
	Root           string        `json:"root"`
	FilesScanned   int           `json:"files_scanned"`
	FilesRewritten int           `json:"files_rewritten"`
	FilesSkipped   int           `json:"files_skipped"`
	Replacements   int           `json:"replacements"`
	DurationMS     int64         `json:"duration_ms"`
	Changes        []JSONChange  `json:"changes"`
	Failures       []JSONFailure `json:"failures"`
}

type JSONChange struct {
	Path         string `json:"path"`
	Replacements int    `json:"replacements"`
}

type JSONFailure struct {
	Path  string `json:"path"`
	Op    string `json:"op"`
	Error string `json:"error"`
}

// Format outputs results in JSON format.
func (f *JSONFormatter) Format(w io.Writer, result *Result) error {
	output := JSONOutput{
		RunID:          result.RunID,
		Root:           result.Root,
		FilesScanned:   result.FilesScanned,
		FilesRewritten: result.FilesRewritten(),
		FilesSkipped:   result.FilesSkipped,
		Replacements:   result.Replacements(),
		DurationMS:     result.Duration.Milliseconds(),
		Changes:        make([]JSONChange, 0, len(result.Changes)),
		Failures:       make([]JSONFailure, 0, len(result.Failures)),
	}
	for _, c := range result.Changes {
		output.Changes = append(output.Changes, JSONChange(c))
	}
	for _, fl := range result.Failures {
		output.Failures = append(output.Failures, JSONFailure{
			Path:  fl.Path,
			Op:    string(fl.Op),
			Error: fl.Err.Error(),
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// pluralize returns "s" if count != 1, otherwise empty string.
func pluralize(count int) string {
	if count == 1 {
		return ""
	}
	return "s"
}
