// Package tag derives the log tag for an annotated unit.
//
// Derivation is a pure function of the unit's qualified name and the optional
// explicit override. Both consumers — the source-property generator and the
// instruction-stream rewriter — call the same Derive, so their tags are
// identical by construction.
package tag

import (
	"fmt"
	"strings"

	"logtag/internal/diag"
)

// MaxLength is the facade's tag length limit. Derived tags are truncated to
// the first MaxLength characters; explicit overrides are exempt.
const MaxLength = 23

// Derive returns the log tag for a unit.
//
// A non-blank override is used verbatim, at any length, with no diagnostic.
// Otherwise the tag is the unit's simple name, truncated to MaxLength
// characters with a warning on the reporter. Idempotent: identical inputs
// always produce identical results.
func Derive(qualifiedName, override string, r diag.Reporter) string {
	if strings.TrimSpace(override) != "" {
		return override
	}
	simple := SimpleName(qualifiedName)
	runes := []rune(simple)
	if len(runes) <= MaxLength {
		return simple
	}
	truncated := string(runes[:MaxLength])
	diag.ReportWarning(r, diag.TagTooLong, qualifiedName,
		fmt.Sprintf("name %q exceeds %d characters; log tag truncated to %q", simple, MaxLength, truncated)).
		WithNote("set an explicit tag in the annotation value to override the derived name").
		Emit()
	return truncated
}

// SimpleName returns the unqualified part of a dot-separated name.
func SimpleName(qualifiedName string) string {
	if i := strings.LastIndexByte(qualifiedName, '.'); i >= 0 {
		return qualifiedName[i+1:]
	}
	return qualifiedName
}
