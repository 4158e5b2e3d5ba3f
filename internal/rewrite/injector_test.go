package rewrite_test

import (
	"errors"
	"reflect"
	"testing"

	"logtag/internal/bytecode"
	"logtag/internal/facade"
	"logtag/internal/rewrite"
)

func annotatedUnit(name string) *bytecode.Unit {
	return &bytecode.Unit{
		QualifiedName: name,
		Visibility:    bytecode.VisibilityPublic,
		Annotation:    bytecode.Annotation{Present: true},
	}
}

func emitAll(t *testing.T, sink bytecode.Sink, body []bytecode.Instr) {
	t.Helper()
	for _, in := range body {
		if err := sink.Emit(in); err != nil {
			t.Fatalf("Emit(%v): %v", in, err)
		}
	}
}

func TestWrapMethodSink_InjectsBeforeStaticLogCall(t *testing.T) {
	fac := facade.Default()
	unit := annotatedUnit("cmgapps.test.TestClass")

	body := []bytecode.Instr{
		bytecode.Raw("aload_0"),
		bytecode.LoadConst("hello"),
		bytecode.Invoke(facade.DispatchStatic, "timber/log/Timber", "d", "(Ljava/lang/String;[Ljava/lang/Object;)V"),
		bytecode.Return(),
	}

	out := &bytecode.SliceSink{}
	sink := rewrite.WrapMethodSink(unit, "TestClass", fac, out)
	emitAll(t, sink, body)

	want := []bytecode.Instr{
		bytecode.Raw("aload_0"),
		bytecode.LoadConst("hello"),
		bytecode.LoadConst("TestClass"),
		bytecode.Invoke(facade.DispatchStatic, "timber/log/Timber", "tag", "(Ljava/lang/String;)Ltimber/log/Timber$Tree;"),
		bytecode.Pop(),
		bytecode.Invoke(facade.DispatchStatic, "timber/log/Timber", "d", "(Ljava/lang/String;[Ljava/lang/Object;)V"),
		bytecode.Return(),
	}
	if !reflect.DeepEqual(out.Instrs, want) {
		t.Errorf("rewritten stream mismatch\n got: %v\nwant: %v", out.Instrs, want)
	}
}

func TestWrapMethodSink_UnannotatedUnitIsNoop(t *testing.T) {
	unit := &bytecode.Unit{QualifiedName: "cmgapps.test.TestClass"}

	body := []bytecode.Instr{
		bytecode.LoadConst("hello"),
		bytecode.Invoke(facade.DispatchStatic, "timber/log/Timber", "d", "(Ljava/lang/String;)V"),
		bytecode.Return(),
	}

	out := &bytecode.SliceSink{}
	sink := rewrite.WrapMethodSink(unit, "TestClass", facade.Default(), out)
	if sink != bytecode.Sink(out) {
		t.Errorf("expected the inner sink to be returned unchanged")
	}
	emitAll(t, sink, body)

	if !reflect.DeepEqual(out.Instrs, body) {
		t.Errorf("unannotated unit: stream changed\n got: %v\nwant: %v", out.Instrs, body)
	}
}

func TestWrapMethodSink_AbsentFacadeIsNoop(t *testing.T) {
	unit := annotatedUnit("cmgapps.test.TestClass")

	body := []bytecode.Instr{
		bytecode.Invoke(facade.DispatchStatic, "timber/log/Timber", "d", "(Ljava/lang/String;)V"),
	}

	out := &bytecode.SliceSink{}
	sink := rewrite.WrapMethodSink(unit, "TestClass", facade.Absent(), out)
	emitAll(t, sink, body)

	if !reflect.DeepEqual(out.Instrs, body) {
		t.Errorf("absent facade: stream changed\n got: %v\nwant: %v", out.Instrs, body)
	}
}

func TestWrapMethodSink_UnrecognizedNameNeverInjected(t *testing.T) {
	unit := annotatedUnit("cmgapps.test.TestClass")

	body := []bytecode.Instr{
		bytecode.Invoke(facade.DispatchStatic, "timber/log/Timber", "plant", "(Ltimber/log/Timber$Tree;)V"),
		bytecode.Invoke(facade.DispatchStatic, "timber/log/Timber", "uprootAll", "()V"),
	}

	out := &bytecode.SliceSink{}
	sink := rewrite.WrapMethodSink(unit, "TestClass", facade.Default(), out)
	emitAll(t, sink, body)

	if !reflect.DeepEqual(out.Instrs, body) {
		t.Errorf("unrecognized names: stream changed\n got: %v\nwant: %v", out.Instrs, body)
	}
}

func TestWrapMethodSink_InstanceDispatchNeverInjected(t *testing.T) {
	unit := annotatedUnit("cmgapps.test.TestClass")

	for _, dispatch := range []facade.Dispatch{facade.DispatchVirtual, facade.DispatchInterface, facade.DispatchSpecial} {
		t.Run(dispatch.String(), func(t *testing.T) {
			body := []bytecode.Instr{
				bytecode.Raw("aload_1"),
				bytecode.LoadConst("hello"),
				bytecode.Invoke(dispatch, "timber/log/Timber", "d", "(Ljava/lang/String;)V"),
			}

			out := &bytecode.SliceSink{}
			sink := rewrite.WrapMethodSink(unit, "TestClass", facade.Default(), out)
			emitAll(t, sink, body)

			if !reflect.DeepEqual(out.Instrs, body) {
				t.Errorf("%s dispatch: stream changed\n got: %v\nwant: %v", dispatch, out.Instrs, body)
			}
		})
	}
}

func TestWrapMethodSink_AdjacentMatchesEachGetInjection(t *testing.T) {
	unit := annotatedUnit("cmgapps.test.TestClass")
	logCall := bytecode.Invoke(facade.DispatchStatic, "timber/log/Timber", "i", "(Ljava/lang/String;)V")

	out := &bytecode.SliceSink{}
	sink := rewrite.WrapMethodSink(unit, "TestClass", facade.Default(), out)
	emitAll(t, sink, []bytecode.Instr{logCall, logCall})

	tagBind := bytecode.Invoke(facade.DispatchStatic, "timber/log/Timber", "tag", "(Ljava/lang/String;)Ltimber/log/Timber$Tree;")
	want := []bytecode.Instr{
		bytecode.LoadConst("TestClass"), tagBind, bytecode.Pop(), logCall,
		bytecode.LoadConst("TestClass"), tagBind, bytecode.Pop(), logCall,
	}
	if !reflect.DeepEqual(out.Instrs, want) {
		t.Errorf("adjacent matches\n got: %v\nwant: %v", out.Instrs, want)
	}
}

type failingSink struct {
	failAt int
	seen   int
	err    error
}

func (s *failingSink) Emit(bytecode.Instr) error {
	s.seen++
	if s.seen >= s.failAt {
		return s.err
	}
	return nil
}

func TestWrapMethodSink_InnerErrorPropagatesUnwrapped(t *testing.T) {
	unit := annotatedUnit("cmgapps.test.TestClass")
	hostErr := errors.New("pipeline write failed")
	inner := &failingSink{failAt: 2, err: hostErr}

	sink := rewrite.WrapMethodSink(unit, "TestClass", facade.Default(), inner)
	err := sink.Emit(bytecode.Invoke(facade.DispatchStatic, "timber/log/Timber", "e", "(Ljava/lang/String;)V"))
	if err != hostErr {
		t.Errorf("inner error must propagate unmodified, got %v", err)
	}
}

func TestWrapMethodSink_CustomFacade(t *testing.T) {
	fac := facade.New("acme/Logging", []string{"trace"}, "withTag", "(Ljava/lang/String;)Lacme/Logging;")
	unit := annotatedUnit("acme.app.Service")

	out := &bytecode.SliceSink{}
	sink := rewrite.WrapMethodSink(unit, "Service", fac, out)
	emitAll(t, sink, []bytecode.Instr{
		bytecode.Invoke(facade.DispatchStatic, "acme/Logging", "trace", "(Ljava/lang/String;)V"),
		bytecode.Invoke(facade.DispatchStatic, "timber/log/Timber", "d", "(Ljava/lang/String;)V"),
	})

	want := []bytecode.Instr{
		bytecode.LoadConst("Service"),
		bytecode.Invoke(facade.DispatchStatic, "acme/Logging", "withTag", "(Ljava/lang/String;)Lacme/Logging;"),
		bytecode.Pop(),
		bytecode.Invoke(facade.DispatchStatic, "acme/Logging", "trace", "(Ljava/lang/String;)V"),
		bytecode.Invoke(facade.DispatchStatic, "timber/log/Timber", "d", "(Ljava/lang/String;)V"),
	}
	if !reflect.DeepEqual(out.Instrs, want) {
		t.Errorf("custom facade\n got: %v\nwant: %v", out.Instrs, want)
	}
}
