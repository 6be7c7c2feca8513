package closure

import (
	"context"

	"github.com/agentx-labs/aotreflect/internal/diag"
	"github.com/agentx-labs/aotreflect/internal/tracing"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
)

// Default option values.
const (
	DefaultMarker            = "io.aotreflect.Reflected"
	DefaultServiceDescriptor = "io.aotreflect.service.ServiceDescriptor"
	DefaultSingletonField    = "INSTANCE"
)

// DefaultEntityAnnotations are the annotations that mark persistent types.
var DefaultEntityAnnotations = []string{
	"jakarta.persistence.Entity",
	"jakarta.persistence.MappedSuperclass",
}

// Options tune a pass.
type Options struct {
	// Marker opts types and members into registration.
	Marker string
	// EntityAnnotations mark types whose class files are preserved. A nil
	// slice selects DefaultEntityAnnotations; an empty one disables entities.
	EntityAnnotations []string
	// ServiceDescriptor is the root type of service descriptor classes.
	ServiceDescriptor string
	// SingletonField is the field registered on each service descriptor.
	SingletonField string

	Tracer *diag.Tracer
	OTel   trace.Tracer
}

func (o Options) withDefaults() Options {
	if o.Marker == "" {
		o.Marker = DefaultMarker
	}
	if o.EntityAnnotations == nil {
		o.EntityAnnotations = DefaultEntityAnnotations
	}
	if o.ServiceDescriptor == "" {
		o.ServiceDescriptor = DefaultServiceDescriptor
	}
	if o.SingletonField == "" {
		o.SingletonField = DefaultSingletonField
	}
	if o.Tracer == nil {
		o.Tracer = diag.Nop()
	}
	if o.OTel == nil {
		o.OTel = noop.NewTracerProvider().Tracer("noop")
	}
	return o
}

// Seeds are the starting points of a pass.
type Seeds struct {
	Annotations []string
	Hierarchies []HierarchySeed
	Classes     []string
	Exclude     []string
}

// Result is the outcome of a pass.
type Result struct {
	PassID  string
	Records []*Record
}

// Builder runs closure passes over one index and classpath.
type Builder struct {
	idx  Index
	cp   Classpath
	opts Options
}

// NewBuilder returns a Builder.
func NewBuilder(idx Index, cp Classpath, opts Options) *Builder {
	return &Builder{idx: idx, cp: cp, opts: opts.withDefaults()}
}

// Build runs one pass from seeds. Fatal errors abort the pass; missing
// dependent types only invalidate their records. resources receives the
// preserved entity class files and may be nil.
func (b *Builder) Build(ctx context.Context, seeds Seeds, resources ResourceSink) (*Result, error) {
	id := uuid.NewString()
	ctx, span := b.opts.OTel.Start(ctx, tracing.SpanBuild, trace.WithAttributes(
		attribute.String(tracing.AttrPassID, id),
	))
	defer span.End()

	p := NewPass(id, b.idx, b.cp, resources, b.opts)
	p.Exclude(seeds.Exclude...)

	b.phase(ctx, "annotations", func() error {
		for _, a := range seeds.Annotations {
			p.ProcessAnnotated(a)
		}
		return nil
	})
	b.phase(ctx, "hierarchies", func() error {
		for _, h := range seeds.Hierarchies {
			p.ProcessHierarchy(h.Root, h.Mode)
		}
		return nil
	})
	b.phase(ctx, "classes", func() error {
		for _, c := range seeds.Classes {
			p.AddExplicitClass(c)
		}
		return nil
	})
	b.phase(ctx, "service_descriptors", func() error {
		p.ProcessServiceDescriptors()
		return nil
	})
	if err := b.phase(ctx, "service_loaders", p.ProcessServiceLoaders); err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}
	if err := b.phase(ctx, "entities", p.ProcessEntities); err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}
	b.phase(ctx, "reflected", func() error {
		p.ProcessReflected()
		return nil
	})

	records := p.Records()
	span.SetAttributes(attribute.Int(tracing.AttrRecordCount, len(records)))
	p.log.Section("closure complete", zap.Int("records", len(records)), zap.Int("expanded", len(p.processed)))

	return &Result{PassID: id, Records: records}, nil
}

func (b *Builder) phase(ctx context.Context, name string, fn func() error) error {
	_, span := b.opts.OTel.Start(ctx, tracing.SpanSeedPrefix+name)
	defer span.End()
	err := fn()
	tracing.RecordError(span, err)
	return err
}
