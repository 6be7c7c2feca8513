package closure

import (
	"fmt"
	"sort"

	"github.com/agentx-labs/aotreflect/internal/diag"
	"github.com/agentx-labs/aotreflect/internal/typeindex"
	"go.uber.org/zap"
)

// Pass is the state of one closure computation: the records built so far,
// the types already expanded and the excluded types. A Pass is driven by a
// single goroutine and discarded once its records are emitted.
type Pass struct {
	id        string
	idx       Index
	cp        Classpath
	resources ResourceSink
	opts      Options
	log       *diag.Tracer

	processed map[string]bool
	excluded  map[string]bool
	records   map[string]*Record
}

// NewPass creates an empty pass. resources may be nil when no entity
// annotations are configured.
func NewPass(id string, idx Index, cp Classpath, resources ResourceSink, opts Options) *Pass {
	opts = opts.withDefaults()
	return &Pass{
		id:        id,
		idx:       idx,
		cp:        cp,
		resources: resources,
		opts:      opts,
		log:       opts.Tracer.With(zap.String("pass", id)),
		processed: make(map[string]bool),
		excluded:  make(map[string]bool),
		records:   make(map[string]*Record),
	}
}

// ID returns the pass identifier.
func (p *Pass) ID() string { return p.id }

// Exclude prevents the named types from ever getting a record.
func (p *Pass) Exclude(names ...string) {
	for _, name := range names {
		p.excluded[name] = true
	}
}

// Excluded reports whether name is excluded.
func (p *Pass) Excluded(name string) bool { return p.excluded[name] }

// Processed reports whether name has been expanded.
func (p *Pass) Processed(name string) bool { return p.processed[name] }

// Record returns the record of name, if one exists.
func (p *Pass) Record(name string) (*Record, bool) {
	r, ok := p.records[name]
	return r, ok
}

// Records returns all records sorted by type name.
func (p *Pass) Records() []*Record {
	out := make([]*Record, 0, len(p.records))
	for _, r := range p.records {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// ProcessAnnotated walks every type carrying annotation as a hierarchy root
// in Defaults mode.
func (p *Pass) ProcessAnnotated(annotation string) {
	types := p.idx.AnnotatedBy(annotation)
	p.log.Trace("annotation seed", zap.String("annotation", annotation), zap.Int("types", len(types)))
	for _, t := range types {
		p.ProcessHierarchy(t.Name, ModeDefaults)
	}
}

// ProcessHierarchy registers root and its transitive subtypes. In Full mode
// the declared interfaces of every walked type are registered with all
// their members, but their implementers are not walked. In Defaults mode
// the root's direct interfaces are added as explicit classes.
func (p *Pass) ProcessHierarchy(root string, mode Mode) {
	t, ok := p.idx.Lookup(root)
	if !ok {
		p.log.Trace("hierarchy root not indexed", zap.String("type", root))
		return
	}
	if p.excluded[root] {
		p.log.Trace("excluded", zap.String("type", root))
		return
	}

	p.walk(t, mode)

	if mode == ModeDefaults {
		for _, iface := range p.idx.Interfaces(root) {
			p.AddExplicitClass(iface.Name)
		}
	}
}

func (p *Pass) walk(t *typeindex.Type, mode Mode) {
	if p.register(t, mode) == nil {
		return
	}
	if p.processed[t.Name] {
		return
	}
	p.processed[t.Name] = true

	if !t.IsFinal() {
		for _, sub := range p.idx.Subtypes(t.Name) {
			p.walk(sub, mode)
		}
	}
	if mode == ModeFull {
		for _, iface := range p.idx.Interfaces(t.Name) {
			p.addFullSingle(iface)
		}
	}
}

// addFullSingle registers every member of t and its superclass chain
// without walking t's subtypes. It marks t processed.
func (p *Pass) addFullSingle(t *typeindex.Type) {
	if p.register(t, ModeFull) == nil {
		return
	}
	p.processed[t.Name] = true
}

// AddExplicitClass registers name in Defaults mode together with its
// superclass chain. The type is not expanded into its subtypes.
func (p *Pass) AddExplicitClass(name string) {
	t, ok := p.idx.Lookup(name)
	if !ok {
		p.log.Trace("explicit class not indexed", zap.String("type", name))
		return
	}
	p.register(t, ModeDefaults)
}

// register adds the mode's member contribution to t's record and registers
// every ancestor in Defaults mode. It returns nil for excluded types.
func (p *Pass) register(t *typeindex.Type, mode Mode) *Record {
	rec := p.record(t)
	if rec == nil {
		return nil
	}

	switch mode {
	case ModeFull:
		rec.AddAll()
	default:
		rec.AddDefaults()
	}
	p.log.Trace("registered", zap.String("type", t.Name), zap.Stringer("mode", mode), zap.Stringer("state", rec.State()))

	for _, name := range p.idx.Superclasses(t.Name) {
		st, ok := p.idx.Lookup(name)
		if !ok {
			p.log.Trace("superclass not indexed", zap.String("type", t.Name), zap.String("superclass", name))
			continue
		}
		p.record(st).AddDefaults()
	}
	return rec
}

// record returns the record of t, creating it on first use. It returns nil
// for excluded types and the root object type.
func (p *Pass) record(t *typeindex.Type) *Record {
	if t.Name == typeindex.RootType {
		return nil
	}
	if p.excluded[t.Name] {
		p.log.Trace("excluded", zap.String("type", t.Name))
		return nil
	}
	if rec, ok := p.records[t.Name]; ok {
		return rec
	}
	rec := NewRecord(t, p.idx.Superclasses(t.Name), p.cp, p.opts.Marker)
	p.records[t.Name] = rec
	return rec
}

// ProcessServiceDescriptors registers the singleton field of every
// transitive subtype of the service descriptor root.
func (p *Pass) ProcessServiceDescriptors() {
	root := p.opts.ServiceDescriptor
	if root == "" {
		return
	}
	p.walkDescriptors(root, map[string]bool{root: true})
}

func (p *Pass) walkDescriptors(name string, seen map[string]bool) {
	for _, sub := range p.idx.Subtypes(name) {
		if seen[sub.Name] {
			continue
		}
		seen[sub.Name] = true

		if f, ok := sub.Field(p.opts.SingletonField); ok {
			p.record(sub).AddField(f)
			p.log.Trace("service descriptor", zap.String("type", sub.Name), zap.String("field", f.Name))
		} else {
			p.log.Trace("service descriptor without singleton", zap.String("type", sub.Name))
		}
		p.walkDescriptors(sub.Name, seen)
	}
}

// ProcessServiceLoaders registers the public no-argument constructor of
// every service provider present on the runtime classpath. A present,
// non-excluded provider without one fails the pass with
// ErrMissingRequiredConstructor.
func (p *Pass) ProcessServiceLoaders() error {
	for _, svc := range p.idx.Services() {
		for _, provider := range svc.Providers {
			if p.excluded[provider] {
				p.log.Trace("excluded", zap.String("service", svc.Service), zap.String("provider", provider))
				continue
			}
			if !p.cp.Resolve(provider) {
				p.log.Trace("service provider not on classpath", zap.String("service", svc.Service), zap.String("provider", provider))
				continue
			}
			t, ok := p.idx.Lookup(provider)
			if !ok {
				p.log.Trace("service provider not indexed", zap.String("service", svc.Service), zap.String("provider", provider))
				continue
			}
			ctor, ok := t.NoArgConstructor()
			if !ok {
				return fmt.Errorf("%w: service provider %s for %s", ErrMissingRequiredConstructor, provider, svc.Service)
			}
			p.record(t).AddConstructor(ctor)
		}
	}
	return nil
}

// ProcessEntities preserves the class file of every type carrying one of
// the entity annotations and registers its non-public, unannotated fields.
// A class file that cannot be read fails the pass with
// ErrUnreadableResource.
func (p *Pass) ProcessEntities() error {
	seen := make(map[string]bool)
	for _, annotation := range p.opts.EntityAnnotations {
		for _, t := range p.idx.AnnotatedBy(annotation) {
			if seen[t.Name] || p.excluded[t.Name] {
				continue
			}
			seen[t.Name] = true

			resource := t.ResourceName()
			data, err := p.cp.ReadResource(resource)
			if err != nil {
				return fmt.Errorf("%w: %s (%s): %w", ErrUnreadableResource, t.Name, resource, err)
			}
			if p.resources != nil {
				p.resources.AddResource(resource, data)
			}

			rec := p.record(t)
			for _, f := range t.Fields {
				if !f.IsPublic() && len(f.Annotations) == 0 {
					rec.AddField(f)
				}
			}
			p.log.Trace("entity", zap.String("type", t.Name), zap.String("resource", resource), zap.Int("bytes", len(data)))
		}
	}
	return nil
}

// ProcessReflected registers every member of types carrying the marker
// annotation, and individually each marked field, method and constructor.
func (p *Pass) ProcessReflected() {
	marker := p.opts.Marker
	if marker == "" {
		return
	}
	for _, t := range p.idx.AnnotatedBy(marker) {
		p.record(t).AddAll()
	}
	for _, t := range p.idx.Types() {
		p.addMarkedMembers(t, marker)
	}
}

func (p *Pass) addMarkedMembers(t *typeindex.Type, marker string) {
	var rec *Record
	get := func() *Record {
		if rec == nil {
			rec = p.record(t)
		}
		return rec
	}
	for _, f := range t.Fields {
		if f.Annotations.Has(marker) {
			get().AddField(f)
		}
	}
	for _, m := range t.Methods {
		if m.Annotations.Has(marker) {
			get().AddMethod(m)
		}
	}
	for _, c := range t.Constructors {
		if c.Annotations.Has(marker) {
			get().AddConstructor(c)
		}
	}
}
