// Package gen emits the per-unit source artifact: one file declaring a
// read-only string property whose accessor returns the unit's derived tag.
//
// File and property names are mangled from the full qualified name, so two
// units sharing a simple name in different namespaces never collide. The
// generator is also where the upstream visibility precondition is enforced:
// privately visible annotated units are rejected with a compile error, which
// is why the rewriter never has to re-validate visibility.
package gen

import (
	"fmt"
	"strings"

	"logtag/internal/bytecode"
	"logtag/internal/diag"
	"logtag/internal/tag"
)

// PropertySuffix is appended to the mangled unit name to build the property.
const PropertySuffix = "_LOG_TAG"

// Artifact is one generated source file for an annotated unit.
type Artifact struct {
	// FileName is unique per unit, e.g. "cmgapps_test_TestClass_LogTag.kt".
	FileName string
	// PropertyName is unique per unit, e.g. "cmgapps_test_TestClass_LOG_TAG".
	PropertyName string
	// Source is the full file content.
	Source string
}

// Property builds the artifact for a unit. It returns false (with no
// diagnostic) for unannotated units, and false with an error diagnostic for
// privately visible ones.
func Property(u *bytecode.Unit, r diag.Reporter) (Artifact, bool) {
	if u == nil || !u.Annotation.Present {
		return Artifact{}, false
	}
	if u.Visibility == bytecode.VisibilityPrivate {
		diag.ReportError(r, diag.UnitPrivate, u.QualifiedName,
			fmt.Sprintf("%q must not be private to carry a log tag annotation", u.QualifiedName)).
			WithNote("raise the unit's visibility or remove the annotation").
			Emit()
		return Artifact{}, false
	}

	derived := tag.Derive(u.QualifiedName, u.Annotation.Value, r)
	mangled := Mangle(u.QualifiedName)
	property := mangled + PropertySuffix

	var b strings.Builder
	b.WriteString("// Generated by logtag. Do not edit.\n")
	if pkg := packageName(u.QualifiedName); pkg != "" {
		fmt.Fprintf(&b, "package %s\n\n", pkg)
	} else {
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "val %s: String\n", property)
	fmt.Fprintf(&b, "    inline get() = %q\n", derived)

	return Artifact{
		FileName:     mangled + "_LogTag.kt",
		PropertyName: property,
		Source:       b.String(),
	}, true
}

// Mangle flattens a dot-separated qualified name into an identifier.
func Mangle(qualifiedName string) string {
	return strings.ReplaceAll(qualifiedName, ".", "_")
}

func packageName(qualifiedName string) string {
	if i := strings.LastIndexByte(qualifiedName, '.'); i >= 0 {
		return qualifiedName[:i]
	}
	return ""
}
