package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestResolveDefaults(t *testing.T) {
	dir := t.TempDir()

	got, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	want := &Resolved{Root: dir, Debug: true, Namespace: DefaultNamespace}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Resolve mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveFromModulePath(t *testing.T) {
	tests := []struct {
		module string
		want   string
	}{
		{"github.com/acme/todo-app", "todo_app"},
		{"github.com/acme/store/v2", "store"},
		{"example.com/9lives", "_9lives"},
		{"local", "local"},
	}
	for _, tt := range tests {
		t.Run(tt.module, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, "go.mod", "module "+tt.module+"\n\ngo 1.24\n")

			got, err := Resolve(dir)
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if got.ModulePath != tt.module {
				t.Errorf("ModulePath = %q, want %q", got.ModulePath, tt.module)
			}
			if got.Namespace != tt.want {
				t.Errorf("Namespace = %q, want %q", got.Namespace, tt.want)
			}
		})
	}
}

func TestResolveFromFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileName, "debug:\n  enabled: false\n  verbose: true\nmetrics:\n  namespace: ui\n")

	got, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	want := &Resolved{Root: dir, Debug: false, Verbose: true, Namespace: "ui"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Resolve mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveInvalidNamespace(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileName, "metrics:\n  namespace: \"bad-name\"\n")

	if _, err := Resolve(dir); err == nil {
		t.Error("expected an error for an invalid namespace")
	}
}

func TestParseInvalidYAML(t *testing.T) {
	if _, err := Parse([]byte("debug: [")); err == nil {
		t.Error("expected a parse error")
	}
}

func TestLoadOptionalMissing(t *testing.T) {
	cfg, err := LoadOptional(t.TempDir())
	if err != nil {
		t.Fatalf("LoadOptional: %v", err)
	}
	if cfg.Debug.Enabled != nil || cfg.Metrics.Namespace != "" {
		t.Errorf("expected an empty config, got %+v", cfg)
	}
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "go.mod", "module example.com/app\n")
	nested := filepath.Join(root, "internal", "state")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	t.Chdir(nested)

	got, err := FindProjectRoot()
	if err != nil {
		t.Fatalf("FindProjectRoot: %v", err)
	}
	want, _ := filepath.EvalSymlinks(root)
	if got, _ = filepath.EvalSymlinks(got); got != want {
		t.Errorf("FindProjectRoot = %q, want %q", got, want)
	}
}
