package emit

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"

	"github.com/agentx-labs/aotreflect/internal/closure"
	"github.com/agentx-labs/aotreflect/internal/diag"
	"github.com/agentx-labs/aotreflect/internal/tracing"
)

// Dropped names a record that was not emitted and the dependency that
// invalidated it.
type Dropped struct {
	Type    string
	Missing string
}

// Summary counts what an emission did.
type Summary struct {
	Records      int
	Emitted      int
	Fields       int
	Methods      int
	Constructors int
	Dropped      []Dropped
}

// Emitter drives records into a Sink.
type Emitter struct {
	log    *diag.Tracer
	tracer trace.Tracer
}

// New returns an Emitter. Nil arguments select no-op implementations.
func New(log *diag.Tracer, tracer trace.Tracer) *Emitter {
	if log == nil {
		log = diag.Nop()
	}
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("noop")
	}
	return &Emitter{log: log, tracer: tracer}
}

// FinalizeAndEmit is Emitter.FinalizeAndEmit without diagnostics or spans.
func FinalizeAndEmit(records []*closure.Record, sink Sink) Summary {
	return New(nil, nil).FinalizeAndEmit(context.Background(), records, sink)
}

// FinalizeAndEmit validates any record not yet validated and registers the
// valid ones in name order: the type, then for classes its fields and
// constructors, then its methods. Invalid records only produce a
// diagnostic.
func (e *Emitter) FinalizeAndEmit(ctx context.Context, records []*closure.Record, sink Sink) Summary {
	_, span := e.tracer.Start(ctx, tracing.SpanFinalizeEmit)
	defer span.End()

	sorted := sortRecords(records)
	sum := Summary{Records: len(sorted)}

	for _, r := range sorted {
		if !r.Validate() {
			e.log.Dropped(r.Name(), r.Missing())
			sum.Dropped = append(sum.Dropped, Dropped{Type: r.Name(), Missing: r.Missing()})
			continue
		}

		t := r.Type()
		sink.RegisterType(t)
		sum.Emitted++

		if !t.IsInterface() {
			for _, f := range r.Fields() {
				sink.RegisterField(t, f)
				sum.Fields++
			}
			for _, c := range r.Constructors() {
				sink.RegisterConstructor(t, c)
				sum.Constructors++
			}
		}
		for _, m := range r.Methods() {
			sink.RegisterMethod(t, m)
			sum.Methods++
		}
	}

	span.SetAttributes(
		attribute.Int(tracing.AttrRecordCount, sum.Emitted),
		attribute.Int(tracing.AttrDroppedCount, len(sum.Dropped)),
	)
	e.log.Section("registered types for reflection",
		zap.Int("types", sum.Emitted),
		zap.Int("dropped", len(sum.Dropped)),
		zap.Int("fields", sum.Fields),
		zap.Int("methods", sum.Methods),
		zap.Int("constructors", sum.Constructors),
	)
	return sum
}

func sortRecords(records []*closure.Record) []*closure.Record {
	out := make([]*closure.Record, 0, len(records))
	for _, r := range records {
		if r != nil {
			out = append(out, r)
		}
	}
	sortByName(out)
	return out
}
