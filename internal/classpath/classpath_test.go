package classpath

import (
	"os"
	"path/filepath"
	"testing"
)

// writeClass creates root/<resource> with the given content.
func writeClass(t *testing.T, root, resource, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(resource))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func TestResolveFindsClassInAnySource(t *testing.T) {
	app := t.TempDir()
	lib := t.TempDir()
	writeClass(t, app, "com/acme/Widget.class", "app")
	writeClass(t, lib, "org/lib/Helper.class", "lib")

	cp := New([]Source{{Name: "app", BasePath: app}, {Name: "lib", BasePath: lib}}, nil)

	for _, name := range []string{"com.acme.Widget", "org.lib.Helper", "java.lang.String", "int", "com.acme.Widget[]"} {
		if !cp.Resolve(name) {
			t.Errorf("Resolve(%q) = false, want true", name)
		}
	}
	if cp.Resolve("com.legacy.LegacyBase") {
		t.Error("Resolve(LegacyBase) = true, want false")
	}
}

func TestResolveIsMemoized(t *testing.T) {
	app := t.TempDir()
	cp := New([]Source{{Name: "app", BasePath: app}}, nil)

	if cp.Resolve("com.acme.Late") {
		t.Fatal("class should not resolve before it exists")
	}
	writeClass(t, app, "com/acme/Late.class", "late")
	if cp.Resolve("com.acme.Late") {
		t.Error("Resolve should return the memoized result within one classpath")
	}
	if !New(cp.Sources(), nil).Resolve("com.acme.Late") {
		t.Error("a fresh classpath should see the new class")
	}
}

func TestLocatePriorityOrder(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	writeClass(t, first, "com/acme/Dup.class", "first")
	writeClass(t, second, "com/acme/Dup.class", "second")

	cp := New([]Source{{Name: "first", BasePath: first}, {Name: "second", BasePath: second}}, nil)
	loc, err := cp.Locate("com.acme.Dup")
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if loc.SourceName != "first" {
		t.Errorf("SourceName = %q, want %q", loc.SourceName, "first")
	}
	if loc.Resource != "com/acme/Dup.class" {
		t.Errorf("Resource = %q", loc.Resource)
	}

	data, err := cp.ReadResource("com/acme/Dup.class")
	if err != nil {
		t.Fatalf("ReadResource: %v", err)
	}
	if string(data) != "first" {
		t.Errorf("ReadResource = %q, want %q", data, "first")
	}
}

func TestReadResourceMissing(t *testing.T) {
	cp := New([]Source{{Name: "app", BasePath: t.TempDir()}}, nil)
	if _, err := cp.ReadResource("com/acme/Nope.class"); err == nil {
		t.Fatal("expected error for missing resource")
	}
}

func TestCustomPlatformPackages(t *testing.T) {
	cp := New(nil, []string{"kotlin."})
	if !cp.Resolve("kotlin.Unit") {
		t.Error("kotlin.Unit should resolve as a platform type")
	}
	if cp.Resolve("java.lang.String") {
		t.Error("java.lang.String should not resolve when platform packages are overridden")
	}
}

func TestSourcesFromPaths(t *testing.T) {
	dir := t.TempDir()
	sources := SourcesFromPaths([]string{filepath.Join(dir, "classes")})
	if len(sources) != 1 || sources[0].Name != "classes" {
		t.Errorf("SourcesFromPaths = %+v", sources)
	}
}
