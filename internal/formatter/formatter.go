// package formatter provides functions to export credit sequences to various formats (CSV, Markdown, plain text, JSON)
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/desertthunder/creditx/internal/credits"
	"github.com/desertthunder/creditx/internal/models"
	"github.com/desertthunder/creditx/internal/shared"
)

// Format is an export format.
type Format string

const (
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "md"
	FormatText     Format = "txt"
	FormatJSON     Format = "json"
)

// ParseFormat maps a format name or file extension to a [Format].
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "csv":
		return FormatCSV, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "txt", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, s)
	}
}

// FormatFromPath picks a [Format] from the extension of path.
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// ExportToCSV converts a CreditSequence to CSV format with columns: Index, Entity, DisplayName, Connective
func ExportToCSV(seq models.CreditSequence) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Index", "Entity", "DisplayName", "Connective"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for i, c := range seq {
		record := []string{strconv.Itoa(i), c.Entity, c.DisplayName, c.Connective}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a CreditSequence to a Markdown table.
//
// Connectives are shown in code spans so their whitespace stays visible.
func ExportToMarkdown(seq models.CreditSequence) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Credits\n\n")
	buf.WriteString(fmt.Sprintf("**Rendered**: %s\n\n", mdEscape(credits.Format(seq))))
	buf.WriteString("| # | Entity | Credited As | Join Phrase |\n")
	buf.WriteString("|---|--------|-------------|-------------|\n")

	for i, c := range seq {
		join := ""
		if c.Connective != "" {
			join = "`" + strings.ReplaceAll(c.Connective, "`", "'") + "`"
		}
		buf.WriteString(fmt.Sprintf("| %d | %s | %s | %s |\n", i+1, mdEscape(c.Entity), mdEscape(c.DisplayName), join))
	}

	return buf.Bytes(), nil
}

func mdEscape(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// ExportToText converts a CreditSequence to plain text format
func ExportToText(seq models.CreditSequence) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(credits.Format(seq))
	buf.WriteString("\n\n")
	buf.WriteString(fmt.Sprintf("Credits: %d\n", len(seq)))

	for i, c := range seq {
		line := fmt.Sprintf("%d. %s", i+1, c.Entity)
		if c.DisplayName != "" && c.DisplayName != c.Entity {
			line += fmt.Sprintf(" (as %s)", c.DisplayName)
		}
		if c.Connective != "" {
			line += fmt.Sprintf(" %q", c.Connective)
		}
		buf.WriteString(line + "\n")
	}

	return buf.Bytes(), nil
}

// ExportToJSON converts a CreditSequence to JSON, indented when pretty is set.
func ExportToJSON(seq models.CreditSequence, pretty bool) ([]byte, error) {
	if seq == nil {
		seq = models.CreditSequence{}
	}

	var data []byte
	var err error
	if pretty {
		data, err = json.MarshalIndent(seq, "", "  ")
	} else {
		data, err = json.Marshal(seq)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// Export renders seq in the given format.
func Export(seq models.CreditSequence, format Format) ([]byte, error) {
	switch format {
	case FormatCSV:
		return ExportToCSV(seq)
	case FormatMarkdown:
		return ExportToMarkdown(seq)
	case FormatText:
		return ExportToText(seq)
	case FormatJSON:
		return ExportToJSON(seq, true)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, format)
	}
}

// WriteExport renders seq and writes it to path, creating parent directories.
//
// An empty format is inferred from the extension of path.
func WriteExport(seq models.CreditSequence, format Format, path string) error {
	if path == "" {
		return fmt.Errorf("%w: export path", shared.ErrMissingArgument)
	}

	if format == "" {
		f, err := FormatFromPath(path)
		if err != nil {
			return err
		}
		format = f
	}

	data, err := Export(seq, format)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	return nil
}
