package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Tiliavir/cora-hours/internal/model"
)

// Export formats.
const (
	FormatCSV      = "csv"
	FormatJSON     = "json"
	FormatYAML     = "yaml"
	FormatMarkdown = "md"
)

// Export writes entries in the given format.
func Export(w io.Writer, entries []model.Entry, format string) error {
	if entries == nil {
		entries = []model.Entry{}
	}
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(entries); err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(entries); err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
	case FormatMarkdown:
		Entries(w, entries, 0)
	case FormatCSV, "":
		CSV(w, entries)
	default:
		return fmt.Errorf("unknown format %q (want csv, json, yaml or md)", format)
	}
	return nil
}

// CSV writes one row per entry.
func CSV(w io.Writer, entries []model.Entry) {
	fmt.Fprintln(w, "id,date,consultant,client,module,task,start,end,hours,billable_hours,extra_hours,locked,description")
	for _, e := range entries {
		fields := []string{
			strconv.FormatInt(e.ID, 10),
			csvEscape(e.DateKey()),
			csvEscape(e.Consultant),
			csvEscape(e.Client),
			csvEscape(e.Module),
			csvEscape(e.Task),
			csvEscape(e.Start),
			csvEscape(e.End),
			strconv.FormatFloat(e.Hours, 'f', -1, 64),
			strconv.FormatFloat(e.BillableHours, 'f', -1, 64),
			csvEscape(e.ExtraHours),
			strconv.FormatBool(e.Locked),
			csvEscape(e.Description),
		}
		fmt.Fprintln(w, strings.Join(fields, ","))
	}
}

// csvEscape wraps a field in quotes if it contains a comma, quote, or newline.
func csvEscape(s string) string {
	if !strings.ContainsAny(s, ",\"\n\r") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
