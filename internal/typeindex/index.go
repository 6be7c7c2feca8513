package typeindex

import (
	"fmt"
)

// Index is the read-only query view over a Document. All lookups are keyed
// by qualified name and return types in document order.
type Index struct {
	types     map[string]*Type
	order     []*Type
	annotated map[string][]*Type
	subtypes  map[string][]*Type
	services  []Service
}

// New builds an Index from doc. Duplicate type names are rejected.
func New(doc *Document) (*Index, error) {
	idx := &Index{
		types:     make(map[string]*Type, len(doc.Types)),
		annotated: make(map[string][]*Type),
		subtypes:  make(map[string][]*Type),
		services:  doc.Services,
	}

	for i := range doc.Types {
		t := &doc.Types[i]
		if _, dup := idx.types[t.Name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateType, t.Name)
		}
		idx.types[t.Name] = t
		idx.order = append(idx.order, t)
	}

	for _, t := range idx.order {
		for _, a := range t.Annotations {
			idx.annotated[a] = append(idx.annotated[a], t)
		}
		if t.Superclass != "" && t.Superclass != RootType {
			idx.subtypes[t.Superclass] = append(idx.subtypes[t.Superclass], t)
		}
		for _, iface := range t.Interfaces {
			idx.subtypes[iface] = append(idx.subtypes[iface], t)
		}
	}

	return idx, nil
}

// Len returns the number of indexed types.
func (idx *Index) Len() int { return len(idx.order) }

// Types returns all indexed types in document order.
func (idx *Index) Types() []*Type { return idx.order }

// Lookup returns the type with the given qualified name.
func (idx *Index) Lookup(name string) (*Type, bool) {
	t, ok := idx.types[name]
	return t, ok
}

// AnnotatedBy returns the types carrying the annotation.
func (idx *Index) AnnotatedBy(annotation string) []*Type {
	return idx.annotated[annotation]
}

// Subtypes returns the direct subtypes of name: classes extending it and
// classes or interfaces declaring it as an interface.
func (idx *Index) Subtypes(name string) []*Type {
	return idx.subtypes[name]
}

// Interfaces returns the indexed direct interfaces of name. Interfaces the
// index does not know are skipped.
func (idx *Index) Interfaces(name string) []*Type {
	t, ok := idx.types[name]
	if !ok {
		return nil
	}
	var result []*Type
	for _, iface := range t.Interfaces {
		if it, ok := idx.types[iface]; ok {
			result = append(result, it)
		}
	}
	return result
}

// Superclasses returns the ordered superclass chain of name, nearest first,
// excluding RootType. The chain stops at the first ancestor missing from
// the index; that ancestor's name is still included so callers can check
// it against the runtime classpath.
func (idx *Index) Superclasses(name string) []string {
	var chain []string
	seen := map[string]bool{name: true}

	current, ok := idx.types[name]
	for ok {
		super := current.Superclass
		if super == "" || super == RootType || seen[super] {
			break
		}
		seen[super] = true
		chain = append(chain, super)
		current, ok = idx.types[super]
	}
	return chain
}

// Services returns the service-locator entries in document order.
func (idx *Index) Services() []Service { return idx.services }
