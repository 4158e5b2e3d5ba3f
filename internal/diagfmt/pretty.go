package diagfmt

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"logtag/internal/diag"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan)
	noteColor    = color.New(color.Faint)
)

// Pretty formats diagnostics in a human-readable form, one per line:
//
//	<unit>: <SEV> <CODE>: <message>
//	    note: <note>
//
// Iterates bag.Items() as-is; call bag.Sort() beforehand for deterministic
// output.
func Pretty(w io.Writer, bag *diag.Bag, opts PrettyOpts) {
	if w == nil || bag == nil {
		return
	}
	for i, d := range bag.Items() {
		if opts.Max > 0 && i >= opts.Max {
			fmt.Fprintf(w, "... and %d more\n", bag.Len()-opts.Max)
			return
		}
		sev := d.Severity.String()
		if opts.Color {
			sev = severityColor(d.Severity).Sprint(sev)
		}
		unit := d.Unit
		if unit == "" {
			unit = "<unattributed>"
		}
		fmt.Fprintf(w, "%s: %s %s: %s\n", unit, sev, d.Code, d.Message)
		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			line := fmt.Sprintf("    note: %s", n.Msg)
			if opts.Color {
				line = noteColor.Sprint(line)
			}
			fmt.Fprintln(w, line)
		}
	}
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errorColor
	case diag.SevWarning:
		return warningColor
	default:
		return infoColor
	}
}
