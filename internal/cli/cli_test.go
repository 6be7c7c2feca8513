package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
)

const testIndex = `version: "1.0.0"
types:
  - name: com.example.Shape
    kind: class
    modifiers: [public, abstract]
  - name: com.example.Circle
    kind: class
    modifiers: [public, final]
    superclass: com.example.Shape
    fields:
      - name: radius
        type: double
        modifiers: [public]
    constructors:
      - params: [double]
        modifiers: [public]
  - name: com.example.Square
    kind: class
    modifiers: [public]
    superclass: com.example.Legacy
`

// project writes an index, a class root and a config file into a temp dir
// and returns the config path.
func project(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	if err := os.WriteFile(filepath.Join(dir, "type-index.yaml"), []byte(testIndex), 0644); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"Shape", "Circle", "Square"} {
		path := filepath.Join(dir, "classes", "com", "example", name+".class")
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(name), 0644); err != nil {
			t.Fatal(err)
		}
	}

	cfg := "reflection:\n  full_hierarchy: [com.example.Shape]\n" +
		"index: " + filepath.Join(dir, "type-index.yaml") + "\n" +
		"classpath: [" + filepath.Join(dir, "classes") + "]\n" +
		"output: " + filepath.Join(dir, "out") + "\n"
	path := filepath.Join(dir, "aotreflect.yaml")
	if err := os.WriteFile(path, []byte(cfg), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true

	configPath, verbose = "", false
	buildDryRun, buildIndex, buildOutput = false, "", ""
	classpathJSON = false
	versionShort, versionJSON = false, false

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestBuildCommand(t *testing.T) {
	cfg := project(t)

	out, err := run(t, "build", "--config", cfg)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	for _, want := range []string{"Registered:", "2 types", "Dropped:", "com.example.Square (missing com.example.Legacy)", "reflect-config.json"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	outDir := filepath.Join(filepath.Dir(cfg), "out")
	if _, err := os.Stat(filepath.Join(outDir, "reflect-config.json")); err != nil {
		t.Errorf("reflect-config.json not written: %v", err)
	}
}

func TestBuildCommand_DryRun(t *testing.T) {
	cfg := project(t)

	out, err := run(t, "build", "--config", cfg, "--dry-run")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !strings.Contains(out, "Dry run") {
		t.Errorf("output missing dry run notice:\n%s", out)
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(cfg), "out")); !os.IsNotExist(err) {
		t.Errorf("dry run wrote output: %v", err)
	}
}

func TestIndexCommands(t *testing.T) {
	cfg := project(t)

	out, err := run(t, "index", "validate", "--config", cfg)
	if err != nil {
		t.Fatalf("index validate: %v", err)
	}
	if !strings.Contains(out, "is valid (3 types") {
		t.Errorf("unexpected output:\n%s", out)
	}

	out, err = run(t, "index", "tree", "com.example.Shape", "--config", cfg)
	if err != nil {
		t.Fatalf("index tree: %v", err)
	}
	for _, want := range []string{"class: com.example.Shape", "com.example.Circle (final)", "3 type(s)"} {
		if !strings.Contains(out, want) {
			t.Errorf("tree output missing %q:\n%s", want, out)
		}
	}
}

func TestIndexValidate_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("version: \"1.0.0\"\ntypes:\n  - name: a.B\n    kind: struct\n"), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "index", "validate", path)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(out, "/types/0") {
		t.Errorf("output missing issue path:\n%s", out)
	}
}

func TestClasspathCommands(t *testing.T) {
	cfg := project(t)

	out, err := run(t, "classpath", "list", "--config", cfg)
	if err != nil {
		t.Fatalf("classpath list: %v", err)
	}
	if !strings.Contains(out, "com.example.Circle") {
		t.Errorf("list output missing class:\n%s", out)
	}

	out, err = run(t, "classpath", "resolve", "--config", cfg, "com.example.Shape", "java.util.List", "com.example.Legacy")
	if err == nil {
		t.Fatal("expected error for missing class")
	}
	if !strings.Contains(out, "java.util.List\t(platform)") || !strings.Contains(out, "com.example.Legacy\tmissing") {
		t.Errorf("unexpected resolve output:\n%s", out)
	}
}

func TestConfigCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aotreflect.yaml")

	if _, err := run(t, "config", "set", "--config", path, "output", "dist"); err != nil {
		t.Fatalf("config set: %v", err)
	}
	out, err := run(t, "config", "get", "--config", path, "output")
	if err != nil {
		t.Fatalf("config get: %v", err)
	}
	if strings.TrimSpace(out) != "dist" {
		t.Errorf("config get output = %q, want dist", out)
	}
}

func TestVersionCommand(t *testing.T) {
	buildVersion, buildCommit, buildDate = "1.2.3", "abc", "today"

	out, err := run(t, "version", "--short")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != "1.2.3" {
		t.Errorf("version --short = %q", out)
	}

	out, err = run(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "aotreflect version 1.2.3") {
		t.Errorf("version = %q", out)
	}
}
