package classpath

import (
	"os"
	"path/filepath"
	"strings"
)

// Entry is one class found while walking the classpath.
type Entry struct {
	Name     string `json:"name"`
	Resource string `json:"resource"`
	Source   string `json:"source"`
}

// Walk lists every class on the classpath. Classes found in earlier
// sources take priority; later duplicates are skipped.
func Walk(sources []Source) ([]Entry, error) {
	seen := make(map[string]bool)
	var result []Entry

	for _, src := range sources {
		entries, err := walkSource(src)
		if err != nil {
			continue // skip inaccessible roots
		}
		for _, e := range entries {
			if !seen[e.Name] {
				seen[e.Name] = true
				result = append(result, e)
			}
		}
	}

	return result, nil
}

// walkSource finds all class files below one root.
func walkSource(source Source) ([]Entry, error) {
	if _, err := os.Stat(source.BasePath); err != nil {
		return nil, err
	}

	var result []Entry
	err := filepath.WalkDir(source.BasePath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // skip inaccessible entries
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".class") {
			return nil
		}
		rel, err := filepath.Rel(source.BasePath, path)
		if err != nil {
			return nil
		}
		resource := filepath.ToSlash(rel)
		result = append(result, Entry{
			Name:     nameFromResource(resource),
			Resource: resource,
			Source:   source.Name,
		})
		return nil
	})
	return result, err
}

// nameFromResource maps "com/acme/Widget.class" to "com.acme.Widget".
func nameFromResource(resource string) string {
	return strings.ReplaceAll(strings.TrimSuffix(resource, ".class"), "/", ".")
}
