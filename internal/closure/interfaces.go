package closure

import "github.com/agentx-labs/aotreflect/internal/typeindex"

// Index is the build-time view of the type graph.
type Index interface {
	// Lookup returns the indexed type with the given qualified name.
	Lookup(name string) (*typeindex.Type, bool)
	// Types returns every indexed type.
	Types() []*typeindex.Type
	// AnnotatedBy returns the types carrying the annotation.
	AnnotatedBy(annotation string) []*typeindex.Type
	// Subtypes returns the direct subtypes of name.
	Subtypes(name string) []*typeindex.Type
	// Interfaces returns the indexed direct interfaces of name.
	Interfaces(name string) []*typeindex.Type
	// Superclasses returns the superclass chain of name, nearest first.
	Superclasses(name string) []string
	// Services returns the service locator entries.
	Services() []typeindex.Service
}

// Resolver answers whether a type exists on the runtime classpath.
type Resolver interface {
	Resolve(name string) bool
}

// ResourceReader reads raw resources such as class files from the runtime
// classpath.
type ResourceReader interface {
	ReadResource(name string) ([]byte, error)
}

// Classpath is a runtime classpath that can both resolve and read.
type Classpath interface {
	Resolver
	ResourceReader
}

// ResourceSink receives resources that must be preserved verbatim in the
// compiled image.
type ResourceSink interface {
	AddResource(name string, data []byte)
}

var _ Index = (*typeindex.Index)(nil)
