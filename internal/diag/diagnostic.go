package diag

// Note carries secondary context attached to a diagnostic.
type Note struct {
	Msg string
}

// Diagnostic is a single finding attributed to a program unit.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	// Unit is the qualified name of the unit the finding belongs to.
	// Empty for findings not tied to a particular unit (e.g. codec errors
	// before the unit name is known).
	Unit  string
	Notes []Note
}

func New(sev Severity, code Code, unit, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Unit:     unit,
		Message:  msg,
	}
}

func NewError(code Code, unit, msg string) Diagnostic {
	return New(SevError, code, unit, msg)
}

func NewWarning(code Code, unit, msg string) Diagnostic {
	return New(SevWarning, code, unit, msg)
}

func (d Diagnostic) WithNote(msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Msg: msg})
	return d
}
