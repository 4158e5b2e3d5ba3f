package diagfmt

import (
	"encoding/json"
	"io"

	"logtag/internal/diag"
)

// DiagnosticOutput is the JSON shape of one diagnostic.
type DiagnosticOutput struct {
	Severity string   `json:"severity"`
	Code     string   `json:"code"`
	Unit     string   `json:"unit,omitempty"`
	Message  string   `json:"message"`
	Notes    []string `json:"notes,omitempty"`
}

// JSON writes the bag as a JSON array.
func JSON(w io.Writer, bag *diag.Bag, opts JSONOpts) error {
	items := bag.Items()
	if opts.Max > 0 && len(items) > opts.Max {
		items = items[:opts.Max]
	}
	out := make([]DiagnosticOutput, 0, len(items))
	for _, d := range items {
		entry := DiagnosticOutput{
			Severity: d.Severity.String(),
			Code:     d.Code.String(),
			Unit:     d.Unit,
			Message:  d.Message,
		}
		if opts.IncludeNotes {
			for _, n := range d.Notes {
				entry.Notes = append(entry.Notes, n.Msg)
			}
		}
		out = append(out, entry)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
