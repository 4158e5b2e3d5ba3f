// Package rewrite injects tag-binding calls in front of recognized logging
// calls inside compiled method bodies.
//
// The rewriter is a decorator over a bytecode.Sink: every instruction is
// forwarded unchanged and in order; a matching call site is preceded by a
// fixed three-instruction injection built from the unit's derived tag. The
// match test depends only on the current instruction's own fields — the
// rewriter keeps no history and does not track whether an explicit
// tag-binding call already happened earlier in the stream.
package rewrite

import (
	"logtag/internal/bytecode"
	"logtag/internal/facade"
)

// WrapMethodSink wraps the sink for one method of unit.
//
// The wrapper forwards every instruction to inner unchanged; each static call
// into the facade's log-method family is first preceded by the injection
// sequence: push tag constant, invoke the static tag-binding method, pop the
// returned handle.
//
// When the unit carries no annotation, or the facade is absent from the
// modelled classpath, inner is returned as-is: rewriting silently bypasses
// the method with zero injections. Absence is a valid configuration, not an
// error.
func WrapMethodSink(unit *bytecode.Unit, derivedTag string, fac facade.Facade, inner bytecode.Sink) bytecode.Sink {
	if unit == nil || !unit.Annotation.Present || !fac.Present() {
		return inner
	}
	return &tagInjector{tag: derivedTag, fac: fac, inner: inner}
}

type tagInjector struct {
	tag   string
	fac   facade.Facade
	inner bytecode.Sink
}

// Emit forwards in, prefixing it with the injection when it is a matching
// call site. Errors from the inner sink propagate unmodified: after a failed
// forward there is no way to keep producing a valid stream.
func (t *tagInjector) Emit(in bytecode.Instr) error {
	if t.matches(in) {
		for _, pre := range t.injection() {
			if err := t.inner.Emit(pre); err != nil {
				return err
			}
		}
	}
	return t.inner.Emit(in)
}

func (t *tagInjector) matches(in bytecode.Instr) bool {
	if in.Kind != bytecode.InstrInvoke {
		return false
	}
	call := in.Invoke
	return t.fac.RecognizesLogCall(call.Owner, call.Name, call.Dispatch)
}

func (t *tagInjector) injection() [3]bytecode.Instr {
	return [3]bytecode.Instr{
		bytecode.LoadConst(t.tag),
		bytecode.Invoke(facade.DispatchStatic, t.fac.Owner(), t.fac.TagMethod(), t.fac.TagDescriptor()),
		bytecode.Pop(),
	}
}
