package bytecode

import (
	"fmt"
	"io"
)

// DumpUnit writes a human-readable representation of a unit.
// The output is deterministic: methods and bodies keep their original order.
func DumpUnit(w io.Writer, u *Unit) error {
	if w == nil || u == nil {
		return nil
	}
	marker := ""
	if u.Annotation.Present {
		marker = " @LogTag"
		if u.Annotation.Value != "" {
			marker = fmt.Sprintf(" @LogTag(%q)", u.Annotation.Value)
		}
	}
	if _, err := fmt.Fprintf(w, "unit %s (%s)%s methods=%d\n",
		u.QualifiedName, u.Visibility, marker, len(u.Methods)); err != nil {
		return err
	}
	for i := range u.Methods {
		if err := dumpMethod(w, &u.Methods[i]); err != nil {
			return err
		}
	}
	return nil
}

func dumpMethod(w io.Writer, m *Method) error {
	if _, err := fmt.Fprintf(w, "  method %s %s\n", m.Name, m.Descriptor); err != nil {
		return err
	}
	for _, in := range m.Body {
		if _, err := fmt.Fprintf(w, "    %s\n", FormatInstr(in)); err != nil {
			return err
		}
	}
	return nil
}

// FormatInstr renders one instruction in the dump syntax.
func FormatInstr(in Instr) string {
	switch in.Kind {
	case InstrLoadConst:
		return fmt.Sprintf("ldc %q", in.LoadConst.Value)
	case InstrInvoke:
		return fmt.Sprintf("invoke%s %s.%s %s",
			in.Invoke.Dispatch, in.Invoke.Owner, in.Invoke.Name, in.Invoke.Descriptor)
	case InstrPop:
		return "pop"
	case InstrReturn:
		return "return"
	case InstrRaw:
		return in.Raw.Text
	}
	return fmt.Sprintf("?%d", in.Kind)
}
