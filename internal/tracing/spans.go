package tracing

import (
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Span attribute keys.
const (
	// Pass attributes
	AttrPassID = "pass.id"

	// Seed attributes
	AttrSeedKind = "seed.kind"
	AttrSeedName = "seed.name"
	AttrSeedMode = "seed.mode"

	// Result attributes
	AttrRecordCount  = "records.count"
	AttrDroppedCount = "records.dropped"
	AttrTypeName     = "type.name"

	// Error attributes
	AttrErrorMessage = "error.message"
)

// Span names.
const (
	SpanBuild          = "closure.build"
	SpanSeedPrefix     = "closure.seed."
	SpanFinalizeEmit   = "emit.finalize"
	SpanLoadIndex      = "typeindex.load"
	SpanWriteArtifacts = "emit.write"
)

// RecordError marks the span as failed when err is non-nil.
func RecordError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
