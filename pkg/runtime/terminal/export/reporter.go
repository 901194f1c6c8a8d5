package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"
	"unicode/utf8"

	"github.com/de-tools/sales-stats/pkg/models/api"
)

type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatTable, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (use %q or %q)", s, FormatTable, FormatJSON)
	}
}

// Report is one rendered report: a table for humans and the payload served over HTTP.
type Report struct {
	Name    string
	Title   string
	Columns []string
	Rows    [][]string
	Payload any
}

type TableConfig struct {
	MinColumnWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{MinColumnWidth: 8}
}

type Reporter struct {
	writer io.Writer
	format Format
	config TableConfig
}

func NewReporter(writer io.Writer, format Format) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	if format == "" {
		format = FormatTable
	}
	return &Reporter{
		writer: writer,
		format: format,
		config: DefaultTableConfig(),
	}
}

// Handle writes the reports in order. In JSON mode a single report is written as
// is; several are wrapped in one object keyed by report name.
func (c *Reporter) Handle(reports ...Report) error {
	if c.format == FormatJSON {
		return c.writeJSON(reports)
	}
	for _, report := range reports {
		if err := c.writeTable(report); err != nil {
			return err
		}
	}
	return nil
}

func (c *Reporter) writeJSON(reports []Report) error {
	var payload any
	if len(reports) == 1 {
		payload = reports[0].Payload
	} else {
		obj := make(api.OrderedObject, 0, len(reports))
		for _, report := range reports {
			obj = append(obj, api.Member{Key: report.Name, Value: report.Payload})
		}
		payload = obj
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode reports: %w", err)
	}

	var out bytes.Buffer
	if err := json.Indent(&out, encoded, "", "  "); err != nil {
		return fmt.Errorf("failed to indent output: %w", err)
	}
	out.WriteByte('\n')
	_, err = c.writer.Write(out.Bytes())
	return err
}

func (c *Reporter) columnWidths(report Report) []int {
	widths := make([]int, len(report.Columns))
	for i, col := range report.Columns {
		widths[i] = max(c.config.MinColumnWidth, utf8.RuneCountInString(col))
	}
	for _, row := range report.Rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], utf8.RuneCountInString(cell))
			}
		}
	}
	return widths
}

func (c *Reporter) writeTable(report Report) error {
	widths := c.columnWidths(report)

	funcMap := template.FuncMap{
		"formatRow": func(cells []string) string {
			parts := make([]string, len(widths))
			for i, w := range widths {
				cell := ""
				if i < len(cells) {
					cell = cells[i]
				}
				parts[i] = cell + strings.Repeat(" ", w-utf8.RuneCountInString(cell))
			}
			return "| " + strings.Join(parts, " | ") + " |"
		},
		"separator": func() string {
			parts := make([]string, len(widths))
			for i, w := range widths {
				parts[i] = strings.Repeat("-", w+2)
			}
			return "+" + strings.Join(parts, "+") + "+"
		},
	}

	tmpl := `
=== {{.Title}} ===

{{separator}}
{{formatRow .Columns}}
{{separator}}
{{range .Rows}}{{formatRow .}}
{{end}}{{separator}}
{{if not .Rows}}(no rows)
{{end}}`

	t, err := template.New("report").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, report)
}
