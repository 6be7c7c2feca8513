// Package pipeline runs one complete reflection build: it loads the type
// index, opens the runtime classpath, computes the closure from the
// configured seeds and emits the result.
package pipeline

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"

	"github.com/agentx-labs/aotreflect/internal/classpath"
	"github.com/agentx-labs/aotreflect/internal/closure"
	"github.com/agentx-labs/aotreflect/internal/config"
	"github.com/agentx-labs/aotreflect/internal/diag"
	"github.com/agentx-labs/aotreflect/internal/emit"
	"github.com/agentx-labs/aotreflect/internal/tracing"
	"github.com/agentx-labs/aotreflect/internal/typeindex"
)

// Options controls a Run beyond what the configuration holds.
type Options struct {
	// DryRun computes and emits into memory without writing files.
	DryRun bool

	// Log receives diagnostics. Nil discards them.
	Log *diag.Tracer

	// Tracer creates spans. Nil disables tracing.
	Tracer trace.Tracer
}

// Report describes a finished build.
type Report struct {
	// Disabled is set when reflection.enabled was false and nothing ran.
	Disabled bool

	PassID  string
	Types   int
	Summary emit.Summary

	// ClasspathClasses is the number of classes listed on the runtime
	// classpath. It is only computed when a listing cache is configured.
	ClasspathClasses int

	// Resources are the preserved resource names.
	Resources []string

	// Written are the files written, empty for dry runs.
	Written []string

	// Sink holds the registrations for inspection.
	Sink *emit.Recorder
}

// Run executes one build.
func Run(ctx context.Context, cfg *config.Config, opts Options) (*Report, error) {
	if opts.Log == nil {
		opts.Log = diag.Nop()
	}
	if opts.Tracer == nil {
		opts.Tracer = noop.NewTracerProvider().Tracer("noop")
	}

	if !cfg.Reflection.Enabled {
		opts.Log.Section("reflection registration disabled")
		return &Report{Disabled: true}, nil
	}

	idx, err := loadIndex(ctx, cfg.Index, opts)
	if err != nil {
		return nil, err
	}

	sources := classpath.SourcesFromPaths(cfg.Classpath)
	cp := classpath.New(sources, cfg.PlatformPackages)

	report := &Report{Types: idx.Len()}
	if cfg.Cache != "" {
		entries, err := classpath.ListCached(sources, cfg.Cache)
		if err != nil {
			return nil, fmt.Errorf("listing classpath: %w", err)
		}
		report.ClasspathClasses = len(entries)
		opts.Log.Parsing("listed runtime classpath", zap.Int("classes", len(entries)), zap.String("cache", cfg.Cache))
	}

	writer := emit.NewConfigWriter()

	copts := cfg.Reflection.Options()
	copts.Tracer = opts.Log
	copts.OTel = opts.Tracer
	builder := closure.NewBuilder(idx, cp, copts)

	result, err := builder.Build(ctx, cfg.Reflection.Seeds(), writer)
	if err != nil {
		return nil, fmt.Errorf("computing reflection closure: %w", err)
	}
	report.PassID = result.PassID

	log := opts.Log.With(zap.String("pass", result.PassID))
	report.Summary = emit.New(log, opts.Tracer).FinalizeAndEmit(ctx, result.Records, writer)
	report.Resources = writer.Resources()
	report.Sink = writer.Recorder

	if opts.DryRun {
		return report, nil
	}

	_, span := opts.Tracer.Start(ctx, tracing.SpanWriteArtifacts)
	written, err := writer.Write(cfg.Output)
	tracing.RecordError(span, err)
	span.End()
	if err != nil {
		return nil, fmt.Errorf("writing native-image configuration: %w", err)
	}
	report.Written = written
	log.Section("wrote native-image configuration", zap.String("dir", cfg.Output), zap.Int("files", len(written)))

	return report, nil
}

func loadIndex(ctx context.Context, path string, opts Options) (*typeindex.Index, error) {
	_, span := opts.Tracer.Start(ctx, tracing.SpanLoadIndex, trace.WithAttributes(attribute.String("index.path", path)))
	defer span.End()

	idx, err := typeindex.Load(path)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, fmt.Errorf("loading type index: %w", err)
	}
	opts.Log.Parsing("loaded type index", zap.String("path", path), zap.Int("types", idx.Len()))
	return idx, nil
}
