package project_test

import (
	"os"
	"path/filepath"
	"testing"

	"logtag/internal/facade"
	"logtag/internal/project"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, project.ManifestName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestLoad_MissingManifestIsNotAnError(t *testing.T) {
	dir := t.TempDir()
	m, ok, err := project.Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ok || m != nil {
		t.Errorf("expected no manifest in empty dir")
	}
}

func TestLoad_FoundInParentDir(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[output]\ndir = \"out\"\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	m, ok, err := project.Load(nested)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !ok {
		t.Fatalf("manifest not found from nested dir")
	}
	if m.Root != root {
		t.Errorf("root = %q, want %q", m.Root, root)
	}
	if m.Config.Output.Dir != "out" {
		t.Errorf("output dir = %q", m.Config.Output.Dir)
	}
}

func TestResolveFacade_Defaults(t *testing.T) {
	fac := project.Config{}.ResolveFacade()
	if !fac.Present() {
		t.Fatalf("default facade must be present")
	}
	if fac.Owner() != "timber/log/Timber" {
		t.Errorf("owner = %q", fac.Owner())
	}
	if !fac.RecognizesLogCall("timber/log/Timber", "wtf", facade.DispatchStatic) {
		t.Errorf("default facade must recognize wtf")
	}
}

func TestResolveFacade_Overrides(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
[facade]
owner = "acme/Logging"
log_methods = ["trace", "debug"]
tag_method = "withTag"
tag_descriptor = "(Ljava/lang/String;)Lacme/Logging;"
`)

	cfg, err := project.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	fac := cfg.ResolveFacade()
	if fac.Owner() != "acme/Logging" {
		t.Errorf("owner = %q", fac.Owner())
	}
	if !fac.RecognizesLogCall("acme/Logging", "trace", facade.DispatchStatic) {
		t.Errorf("custom method not recognized")
	}
	if fac.RecognizesLogCall("acme/Logging", "d", facade.DispatchStatic) {
		t.Errorf("default method leaked into custom facade")
	}
	if fac.TagMethod() != "withTag" {
		t.Errorf("tag method = %q", fac.TagMethod())
	}
}

func TestResolveFacade_ClasspathFalseMeansAbsent(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "[facade]\nclasspath = false\n")

	cfg, err := project.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.ResolveFacade().Present() {
		t.Errorf("classpath = false must yield an absent facade")
	}
}

func TestLoadConfig_BlankOwnerRejected(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "[facade]\nowner = \"  \"\n")

	if _, err := project.LoadConfig(path); err == nil {
		t.Errorf("blank owner must be rejected")
	}
}
