package classpath

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWalkListsClassesWithPriority(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	writeClass(t, first, "com/acme/A.class", "a")
	writeClass(t, first, "com/acme/README.txt", "not a class")
	writeClass(t, second, "com/acme/A.class", "shadowed")
	writeClass(t, second, "com/acme/sub/B.class", "b")

	entries, err := Walk([]Source{{Name: "first", BasePath: first}, {Name: "second", BasePath: second}})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Walk returned %d entries %+v, want 2", len(entries), entries)
	}

	byName := make(map[string]Entry)
	for _, e := range entries {
		byName[e.Name] = e
	}
	if byName["com.acme.A"].Source != "first" {
		t.Errorf("com.acme.A source = %q, want first", byName["com.acme.A"].Source)
	}
	if byName["com.acme.sub.B"].Resource != "com/acme/sub/B.class" {
		t.Errorf("com.acme.sub.B resource = %q", byName["com.acme.sub.B"].Resource)
	}
}

func TestWalkSkipsMissingSource(t *testing.T) {
	entries, err := Walk([]Source{{Name: "gone", BasePath: filepath.Join(t.TempDir(), "gone")}})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries, got %d", len(entries))
	}
}

func TestListCachedWritesAndReusesCache(t *testing.T) {
	root := t.TempDir()
	writeClass(t, root, "com/acme/A.class", "a")
	sources := []Source{{Name: "app", BasePath: root}}
	cachePath := filepath.Join(t.TempDir(), "cache", "classpath.json")

	first, err := ListCached(sources, cachePath)
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	if _, err := os.Stat(cachePath); err != nil {
		t.Fatalf("expected cache file: %v", err)
	}

	second, err := ListCached(sources, cachePath)
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if len(first) != len(second) {
		t.Errorf("expected same count: %d vs %d", len(first), len(second))
	}
}

func TestIsCacheValid(t *testing.T) {
	root := t.TempDir()
	writeClass(t, root, "com/acme/A.class", "a")
	sources := []Source{{Name: "app", BasePath: root}}

	fresh := &CachedListing{SourceMods: map[string]int64{"app": latestMtime(root)}}
	if !isCacheValid(fresh, sources) {
		t.Error("cache with current mtimes should be valid")
	}

	stale := &CachedListing{SourceMods: map[string]int64{"app": 1}}
	if isCacheValid(stale, sources) {
		t.Error("cache with old mtime should be invalid")
	}

	mismatched := &CachedListing{SourceMods: map[string]int64{"other": latestMtime(root)}}
	if isCacheValid(mismatched, sources) {
		t.Error("cache for a different source set should be invalid")
	}

	if isCacheValid(nil, sources) {
		t.Error("nil cache should be invalid")
	}
}
