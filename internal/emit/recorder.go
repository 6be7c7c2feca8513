package emit

import (
	"slices"
	"sort"

	"github.com/agentx-labs/aotreflect/internal/closure"
	"github.com/agentx-labs/aotreflect/internal/typeindex"
)

// Recorder is an in-memory Sink.
type Recorder struct {
	types     map[string]*entry
	resources map[string][]byte
}

type entry struct {
	typ          *typeindex.Type
	fields       map[string]bool
	methods      map[string]typeindex.Method
	constructors map[string]typeindex.Constructor
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		types:     make(map[string]*entry),
		resources: make(map[string][]byte),
	}
}

var _ Sink = (*Recorder)(nil)
var _ closure.ResourceSink = (*Recorder)(nil)

func (r *Recorder) entry(t *typeindex.Type) *entry {
	e, ok := r.types[t.Name]
	if !ok {
		e = &entry{
			typ:          t,
			fields:       make(map[string]bool),
			methods:      make(map[string]typeindex.Method),
			constructors: make(map[string]typeindex.Constructor),
		}
		r.types[t.Name] = e
	}
	return e
}

// RegisterType records t.
func (r *Recorder) RegisterType(t *typeindex.Type) { r.entry(t) }

// RegisterField records a field of t.
func (r *Recorder) RegisterField(t *typeindex.Type, f typeindex.Field) {
	r.entry(t).fields[f.Name] = true
}

// RegisterMethod records a method of t.
func (r *Recorder) RegisterMethod(t *typeindex.Type, m typeindex.Method) {
	r.entry(t).methods[m.Signature()] = m
}

// RegisterConstructor records a constructor of t.
func (r *Recorder) RegisterConstructor(t *typeindex.Type, c typeindex.Constructor) {
	r.entry(t).constructors[c.Signature()] = c
}

// AddResource records a preserved resource. The first data for a name wins.
func (r *Recorder) AddResource(name string, data []byte) {
	if _, ok := r.resources[name]; ok {
		return
	}
	r.resources[name] = slices.Clone(data)
}

// Types returns the registered type names sorted.
func (r *Recorder) Types() []string {
	return sortedKeys(r.types)
}

// Fields returns the registered field names of a type sorted.
func (r *Recorder) Fields(typeName string) []string {
	e, ok := r.types[typeName]
	if !ok {
		return nil
	}
	return sortedKeys(e.fields)
}

// Methods returns the registered method signatures of a type sorted.
func (r *Recorder) Methods(typeName string) []string {
	e, ok := r.types[typeName]
	if !ok {
		return nil
	}
	return sortedKeys(e.methods)
}

// Constructors returns the registered constructor signatures of a type
// sorted.
func (r *Recorder) Constructors(typeName string) []string {
	e, ok := r.types[typeName]
	if !ok {
		return nil
	}
	return sortedKeys(e.constructors)
}

// Resources returns the preserved resource names sorted.
func (r *Recorder) Resources() []string {
	return sortedKeys(r.resources)
}

// Resource returns the bytes of a preserved resource.
func (r *Recorder) Resource(name string) ([]byte, bool) {
	data, ok := r.resources[name]
	return data, ok
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortByName(records []*closure.Record) {
	sort.Slice(records, func(i, j int) bool { return records[i].Name() < records[j].Name() })
}
