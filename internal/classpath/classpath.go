package classpath

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gocache "github.com/patrickmn/go-cache"

	"github.com/agentx-labs/aotreflect/internal/typeindex"
)

// DefaultPlatformPackages are package prefixes provided by the runtime
// itself; their types always resolve.
var DefaultPlatformPackages = []string{"java.", "javax.", "jdk.", "sun."}

// Source represents one class root.
type Source struct {
	Name     string // e.g., "app", "lib/netty"
	BasePath string // absolute path to the root directory
}

// Location is where a class was found.
type Location struct {
	Name       string // qualified class name
	Resource   string // e.g., "com/acme/Widget.class"
	Path       string // absolute path to the class file
	SourceName string // name of the root it was found in
}

// Classpath resolves qualified names against ordered class roots. Results
// of Resolve are memoized for the lifetime of the Classpath.
type Classpath struct {
	sources  []Source
	platform []string
	memo     *gocache.Cache
}

// New creates a Classpath over sources. A nil platform list selects
// DefaultPlatformPackages.
func New(sources []Source, platform []string) *Classpath {
	if platform == nil {
		platform = DefaultPlatformPackages
	}
	return &Classpath{
		sources:  sources,
		platform: platform,
		memo:     gocache.New(gocache.NoExpiration, 0),
	}
}

// SourcesFromPaths turns directory paths into sources named after their
// base name.
func SourcesFromPaths(paths []string) []Source {
	sources := make([]Source, 0, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			abs = p
		}
		sources = append(sources, Source{Name: filepath.Base(abs), BasePath: abs})
	}
	return sources
}

// Sources returns the class roots in priority order.
func (cp *Classpath) Sources() []Source { return cp.sources }

// Resolve reports whether name is loadable at runtime. Primitives and
// platform packages always resolve.
func (cp *Classpath) Resolve(name string) bool {
	name = typeindex.Erasure(name)
	if typeindex.IsPrimitive(name) || cp.isPlatform(name) {
		return true
	}
	if v, ok := cp.memo.Get(name); ok {
		return v.(bool)
	}
	_, err := cp.Locate(name)
	found := err == nil
	cp.memo.Set(name, found, gocache.NoExpiration)
	return found
}

// Locate searches for the class file of name across sources in priority
// order and returns the first match.
func (cp *Classpath) Locate(name string) (*Location, error) {
	resource := typeindex.ResourceName(name)
	path, src, err := cp.find(resource)
	if err != nil {
		return nil, fmt.Errorf("class %q not found on classpath: %w", name, err)
	}
	return &Location{
		Name:       name,
		Resource:   resource,
		Path:       path,
		SourceName: src.Name,
	}, nil
}

// ReadResource returns the bytes of a resource such as
// "com/acme/Widget.class" from the first root that has it.
func (cp *Classpath) ReadResource(resource string) ([]byte, error) {
	path, _, err := cp.find(resource)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading resource %s: %w", resource, err)
	}
	return data, nil
}

func (cp *Classpath) find(resource string) (string, Source, error) {
	rel := filepath.FromSlash(resource)
	for _, src := range cp.sources {
		p := filepath.Join(src.BasePath, rel)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, src, nil
		}
	}
	return "", Source{}, fmt.Errorf("resource %s: %w", resource, os.ErrNotExist)
}

func (cp *Classpath) isPlatform(name string) bool {
	for _, prefix := range cp.platform {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}
