package rewrite

import (
	"logtag/internal/bytecode"
	"logtag/internal/diag"
	"logtag/internal/facade"
	"logtag/internal/tag"
)

// Unit rewrites every method body of u and returns the rewritten copy along
// with the number of injections performed. The input unit is never mutated.
//
// The tag is derived once per unit and reused for every method and call site.
// For unannotated units and absent facades the copy is identical to the
// input and the count is zero.
func Unit(u *bytecode.Unit, fac facade.Facade, r diag.Reporter) (*bytecode.Unit, int) {
	out := u.Clone()
	if out == nil || !u.Annotation.Present || !fac.Present() {
		return out, 0
	}

	derived := tag.Derive(u.QualifiedName, u.Annotation.Value, r)

	injections := 0
	for i := range out.Methods {
		collected := &bytecode.SliceSink{Instrs: make([]bytecode.Instr, 0, len(out.Methods[i].Body))}
		sink := WrapMethodSink(out, derived, fac, collected)
		for _, in := range out.Methods[i].Body {
			// SliceSink never fails; wrapper errors would be host failures.
			_ = sink.Emit(in)
		}
		injections += (len(collected.Instrs) - len(out.Methods[i].Body)) / 3
		out.Methods[i].Body = collected.Instrs
	}
	return out, injections
}
