package bytecode

// Visibility of a compiled unit, as recorded by the host compiler.
type Visibility uint8

const (
	// VisibilityPublic is the default, externally visible unit.
	VisibilityPublic Visibility = iota
	// VisibilityInternal is visible within the compilation module.
	VisibilityInternal
	// VisibilityProtected is visible to subtypes.
	VisibilityProtected
	// VisibilityPrivate is file-local. Annotated private units are rejected
	// by the generator before rewriting ever sees them.
	VisibilityPrivate
)

func (v Visibility) String() string {
	switch v {
	case VisibilityPublic:
		return "public"
	case VisibilityInternal:
		return "internal"
	case VisibilityProtected:
		return "protected"
	case VisibilityPrivate:
		return "private"
	}
	return "unknown"
}

// Annotation records the tag marker on a unit. Value is the optional explicit
// override; blank means name-based derivation.
type Annotation struct {
	Present bool
	Value   string
}

// Method is one compiled method body as a linear instruction stream.
type Method struct {
	Name       string
	Descriptor string
	Body       []Instr
}

// Unit is a compiled program unit (class or singleton object) as handed over
// by the host compiler.
type Unit struct {
	QualifiedName string
	Visibility    Visibility
	Annotation    Annotation
	Methods       []Method
}

// Clone returns a deep copy of the unit; method bodies are copied so the
// original streams stay untouched by rewriting.
func (u *Unit) Clone() *Unit {
	if u == nil {
		return nil
	}
	out := *u
	out.Methods = make([]Method, len(u.Methods))
	for i, m := range u.Methods {
		out.Methods[i] = m
		out.Methods[i].Body = append([]Instr(nil), m.Body...)
	}
	return &out
}
