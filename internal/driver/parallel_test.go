package driver_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"logtag/internal/bytecode"
	"logtag/internal/diag"
	"logtag/internal/driver"
	"logtag/internal/facade"
	"logtag/internal/pipeline"
)

func writeUnit(t *testing.T, dir, base string, u *bytecode.Unit) string {
	t.Helper()
	path := filepath.Join(dir, base+bytecode.UnitFileExt)
	if err := bytecode.WriteUnitFile(path, u); err != nil {
		t.Fatalf("write unit: %v", err)
	}
	return path
}

func loggingUnit(name string, annotated bool) *bytecode.Unit {
	return &bytecode.Unit{
		QualifiedName: name,
		Annotation:    bytecode.Annotation{Present: annotated},
		Methods: []bytecode.Method{{
			Name:       "run",
			Descriptor: "()V",
			Body: []bytecode.Instr{
				bytecode.LoadConst("hello"),
				bytecode.Invoke(facade.DispatchStatic, "timber/log/Timber", "d", "(Ljava/lang/String;)V"),
				bytecode.Return(),
			},
		}},
	}
}

func TestRewriteDir_Batch(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")
	writeUnit(t, dir, "a", loggingUnit("app.a.Alpha", true))
	writeUnit(t, dir, "b", loggingUnit("app.b.Beta", false))
	writeUnit(t, dir, "c", loggingUnit("app.c.Gamma", true))

	results, err := driver.RewriteDir(context.Background(), dir, driver.Options{
		Jobs:   2,
		OutDir: out,
		Facade: facade.Default(),
	})
	if err != nil {
		t.Fatalf("RewriteDir: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("results = %d, want 3", len(results))
	}

	// Input order regardless of scheduling.
	wantNames := []string{"app.a.Alpha", "app.b.Beta", "app.c.Gamma"}
	wantInjections := []int{1, 0, 1}
	for i, res := range results {
		if res.Err != nil {
			t.Fatalf("%s: %v", res.Path, res.Err)
		}
		if res.QualifiedName != wantNames[i] {
			t.Errorf("result %d: unit %q, want %q", i, res.QualifiedName, wantNames[i])
		}
		if res.Injections != wantInjections[i] {
			t.Errorf("%s: injections = %d, want %d", res.QualifiedName, res.Injections, wantInjections[i])
		}
	}

	rewritten, err := bytecode.ReadUnitFile(results[0].OutPath)
	if err != nil {
		t.Fatalf("read rewritten: %v", err)
	}
	if got := len(rewritten.Methods[0].Body); got != 6 {
		t.Errorf("rewritten body length = %d, want 6 (3 original + 3 injected)", got)
	}

	unchanged, err := bytecode.ReadUnitFile(results[1].OutPath)
	if err != nil {
		t.Fatalf("read unannotated: %v", err)
	}
	if got := len(unchanged.Methods[0].Body); got != 3 {
		t.Errorf("unannotated body length = %d, want 3", got)
	}
}

func TestRewriteDir_EmptyDir(t *testing.T) {
	results, err := driver.RewriteDir(context.Background(), t.TempDir(), driver.Options{Facade: facade.Default()})
	if err != nil {
		t.Fatalf("RewriteDir: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("results = %d, want 0", len(results))
	}
}

func TestRewriteFiles_DecodeFailureIsPerFile(t *testing.T) {
	dir := t.TempDir()
	good := writeUnit(t, dir, "good", loggingUnit("app.Good", true))
	bad := filepath.Join(dir, "bad"+bytecode.UnitFileExt)
	if err := os.WriteFile(bad, []byte("not msgpack"), 0o644); err != nil {
		t.Fatalf("write bad file: %v", err)
	}

	results, err := driver.RewriteFiles(context.Background(), []string{bad, good}, driver.Options{Facade: facade.Default()})
	if err != nil {
		t.Fatalf("RewriteFiles: %v", err)
	}
	if results[0].Err == nil {
		t.Errorf("corrupt file must fail")
	}
	if results[1].Err != nil {
		t.Errorf("good file failed: %v", results[1].Err)
	}
}

func TestRewriteDir_GenerationGuardsPrivateUnits(t *testing.T) {
	dir := t.TempDir()
	private := loggingUnit("app.Hidden", true)
	private.Visibility = bytecode.VisibilityPrivate
	path := writeUnit(t, dir, "hidden", private)

	results, err := driver.RewriteDir(context.Background(), dir, driver.Options{
		Facade: facade.Default(),
		GenDir: filepath.Join(dir, "gen"),
		OutDir: filepath.Join(dir, "out"),
	})
	if err != nil {
		t.Fatalf("RewriteDir: %v", err)
	}
	res := results[0]
	if !res.Bag.HasErrors() {
		t.Fatalf("private annotated unit must error")
	}
	if res.Injections != 0 {
		t.Errorf("rejected unit must not be rewritten")
	}
	if _, statErr := os.Stat(filepath.Join(dir, "out", filepath.Base(path))); statErr == nil {
		t.Errorf("rejected unit must not be written out")
	}
}

func TestRewriteDir_TruncationWarningReportedOnce(t *testing.T) {
	dir := t.TempDir()
	writeUnit(t, dir, "long", loggingUnit("app.ExtremelyLongClassNameThatExceedsLimit", true))

	results, err := driver.RewriteDir(context.Background(), dir, driver.Options{
		Facade: facade.Default(),
		GenDir: filepath.Join(dir, "gen"),
		OutDir: filepath.Join(dir, "out"),
	})
	if err != nil {
		t.Fatalf("RewriteDir: %v", err)
	}
	res := results[0]

	warnings := 0
	for _, d := range res.Bag.Items() {
		if d.Code == diag.TagTooLong {
			warnings++
		}
	}
	// Generator and rewriter both derive; the dedup reporter keeps one.
	if warnings != 1 {
		t.Errorf("truncation warnings = %d, want 1", warnings)
	}
	if res.Artifact == nil {
		t.Fatalf("expected a generated artifact")
	}
}

func TestRewriteDir_ProgressEvents(t *testing.T) {
	dir := t.TempDir()
	writeUnit(t, dir, "a", loggingUnit("app.Alpha", true))

	ch := make(chan pipeline.Event, 64)
	_, err := driver.RewriteDir(context.Background(), dir, driver.Options{
		Facade:   facade.Default(),
		OutDir:   filepath.Join(dir, "out"),
		Progress: pipeline.ChannelSink{Ch: ch},
	})
	if err != nil {
		t.Fatalf("RewriteDir: %v", err)
	}
	close(ch)

	var events []pipeline.Event
	for evt := range ch {
		events = append(events, evt)
	}

	// Every emitted stage is one the driver actually runs; derivation is
	// part of rewriting and never gets its own event.
	wantStages := []pipeline.Stage{pipeline.StageDecode, pipeline.StageRewrite, pipeline.StageEncode, pipeline.StageEncode}
	if len(events) != len(wantStages) {
		t.Fatalf("events = %d, want %d: %v", len(events), len(wantStages), events)
	}
	for i, evt := range events {
		if evt.Stage != wantStages[i] {
			t.Errorf("event %d stage = %q, want %q", i, evt.Stage, wantStages[i])
		}
	}
	if last := events[len(events)-1]; last.Status != pipeline.StatusDone {
		t.Errorf("final event status = %q, want done", last.Status)
	}
}
