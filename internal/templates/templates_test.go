package templates

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGet(t *testing.T) {
	for _, name := range []string{"minimal", "counter", "todo"} {
		tmpl, err := Get(name)
		if err != nil {
			t.Fatalf("Get(%q): %v", name, err)
		}
		if tmpl.Name != name {
			t.Errorf("expected name %q, got %q", name, tmpl.Name)
		}
		if len(tmpl.Files) == 0 {
			t.Errorf("template %q has no files", name)
		}
	}
}

func TestGetUnknown(t *testing.T) {
	_, err := Get("nope")
	if err == nil {
		t.Fatal("expected error for unknown template")
	}
	if !strings.Contains(err.Error(), "L100") {
		t.Errorf("expected L100, got %v", err)
	}
}

func TestList(t *testing.T) {
	names := List()
	if len(names) != 3 {
		t.Errorf("expected 3 templates, got %d", len(names))
	}
}

func TestCreateWritesFiles(t *testing.T) {
	dir := t.TempDir()

	tmpl, err := Get("minimal")
	if err != nil {
		t.Fatal(err)
	}
	cfg := Config{
		ProjectName: "demo",
		ModulePath:  "example.com/demo",
		Description: "A demo app",
	}
	if err := tmpl.Create(dir, cfg); err != nil {
		t.Fatalf("Create: %v", err)
	}

	for _, rel := range []string{"main.go", "go.mod", "lumen.json"} {
		data, err := os.ReadFile(filepath.Join(dir, rel))
		if err != nil {
			t.Fatalf("missing %s: %v", rel, err)
		}
		if strings.Contains(string(data), "{{") {
			t.Errorf("%s has unexpanded template markers", rel)
		}
	}

	mod, _ := os.ReadFile(filepath.Join(dir, "go.mod"))
	if !strings.Contains(string(mod), "module example.com/demo") {
		t.Errorf("go.mod missing module path: %s", mod)
	}
	main, _ := os.ReadFile(filepath.Join(dir, "main.go"))
	if !strings.Contains(string(main), "Welcome to demo") {
		t.Errorf("main.go missing project name: %s", main)
	}
}
