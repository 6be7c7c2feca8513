//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// testEnv holds paths to an isolated project.
type testEnv struct {
	ProjectDir string // project root holding aotreflect.yaml
	ClassesDir string // runtime class root
	IndexPath  string // type index document
	OutputDir  string // native-image configuration output
}

// setupTestEnv creates an isolated project directory, makes it the working
// directory and clears AOTREFLECT_* variables for the duration of the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dir := t.TempDir()
	env := &testEnv{
		ProjectDir: dir,
		ClassesDir: filepath.Join(dir, "build", "classes"),
		IndexPath:  filepath.Join(dir, "build", "type-index.yaml"),
		OutputDir:  filepath.Join(dir, "build", "native-image"),
	}

	for _, kv := range os.Environ() {
		if name, _, ok := strings.Cut(kv, "="); ok && strings.HasPrefix(name, "AOTREFLECT_") {
			t.Setenv(name, "")
			os.Unsetenv(name)
		}
	}
	t.Chdir(dir)

	return env
}

// setupProject writes a type index modelling a small application, the class
// files of every type present at runtime, and a project config.
func setupProject(t *testing.T, env *testEnv) {
	t.Helper()

	writeFile(t, env.IndexPath, `version: "1.0.0"
types:
  - name: com.acme.shapes.Shape
    kind: class
    modifiers: [public, abstract]
    fields:
      - name: id
        type: long
        modifiers: [private]
    methods:
      - name: area
        returns: double
        modifiers: [public, abstract]
      - name: toString
        returns: java.lang.String
        modifiers: [public]
  - name: com.acme.shapes.Circle
    kind: class
    modifiers: [public, final]
    superclass: com.acme.shapes.Shape
    interfaces: [com.acme.shapes.Drawable]
    fields:
      - name: radius
        type: double
        modifiers: [private]
    constructors:
      - params: [double]
        modifiers: [public]
  - name: com.acme.shapes.Drawable
    kind: interface
    modifiers: [public]
    methods:
      - name: draw
        params: [com.acme.gfx.Canvas]
        returns: void
  - name: com.acme.ui.Widget
    kind: class
    modifiers: [public]
    superclass: com.legacy.LegacyBase
    annotations: [com.acme.Serializable]
  - name: com.acme.ui.Button
    kind: class
    modifiers: [public]
    annotations: [com.acme.Serializable]
    fields:
      - name: label
        type: java.lang.String
        modifiers: [public]
  - name: com.acme.db.Customer
    kind: class
    annotations: [jakarta.persistence.Entity]
    fields:
      - name: name
        type: java.lang.String
        modifiers: [private]
  - name: com.acme.spi.Codec
    kind: interface
  - name: com.acme.spi.JsonCodec
    kind: class
    interfaces: [com.acme.spi.Codec]
    constructors:
      - modifiers: [public]
services:
  - service: com.acme.spi.Codec
    providers: [com.acme.spi.JsonCodec, com.acme.spi.YamlCodec]
`)

	for _, name := range []string{
		"com.acme.shapes.Shape",
		"com.acme.shapes.Circle",
		"com.acme.shapes.Drawable",
		"com.acme.ui.Widget",
		"com.acme.ui.Button",
		"com.acme.db.Customer",
		"com.acme.spi.Codec",
		"com.acme.spi.JsonCodec",
	} {
		writeFile(t, filepath.Join(env.ClassesDir, filepath.FromSlash(strings.ReplaceAll(name, ".", "/"))+".class"), "bytes of "+name)
	}

	writeFile(t, filepath.Join(env.ProjectDir, "aotreflect.yaml"), `reflection:
  annotations: [com.acme.Serializable]
  full_hierarchy: [com.acme.shapes.Shape]
index: build/type-index.yaml
classpath: [build/classes]
output: build/native-image
`)
}

// writeFile is a test helper that creates a file with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("expected file to exist: %s", path)
	}
}

// assertNotExists fails the test if the path exists.
func assertNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Lstat(path); err == nil {
		t.Errorf("expected path to not exist: %s", path)
	}
}

// assertFileContains fails the test if the file does not contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q\ncontent:\n%s", path, substr, string(data))
	}
}
