// Package diag is the operator-facing diagnostic channel of a closure pass.
//
// Two severities exist: per-type traces, which are only written when the
// channel is verbose, and section summaries, which are always written.
// Parsing is a trace variant for messages about input documents.
package diag

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger names used for the named children of the root logger.
const (
	NameParse   = "parse"
	NameClosure = "closure"
	NameEmit    = "emit"
)

// Tracer writes diagnostics to a zap logger.
type Tracer struct {
	log     *zap.Logger
	verbose bool
}

// New returns a Tracer writing console-encoded entries to w.
// A nil w selects stderr.
func New(w io.Writer, verbose bool) *Tracer {
	if w == nil {
		w = os.Stderr
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	encCfg.CallerKey = ""

	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), level)
	return &Tracer{log: zap.New(core), verbose: verbose}
}

// FromLogger wraps an existing logger. Traces are emitted at debug level, so
// the logger's core decides whether they are kept.
func FromLogger(l *zap.Logger) *Tracer {
	if l == nil {
		return Nop()
	}
	return &Tracer{log: l, verbose: l.Core().Enabled(zapcore.DebugLevel)}
}

// Nop returns a Tracer that discards everything.
func Nop() *Tracer {
	return &Tracer{log: zap.NewNop()}
}

// Verbose reports whether per-type traces are written.
func (t *Tracer) Verbose() bool {
	return t != nil && t.verbose
}

// With returns a Tracer that adds fields to every entry.
func (t *Tracer) With(fields ...zap.Field) *Tracer {
	if t == nil {
		return Nop()
	}
	return &Tracer{log: t.log.With(fields...), verbose: t.verbose}
}

// Parsing traces a message about an input document.
func (t *Tracer) Parsing(msg string, fields ...zap.Field) {
	if t == nil {
		return
	}
	t.log.Named(NameParse).Debug(msg, fields...)
}

// Trace writes a per-type message from the closure builder.
func (t *Tracer) Trace(msg string, fields ...zap.Field) {
	if t == nil {
		return
	}
	t.log.Named(NameClosure).Debug(msg, fields...)
}

// Dropped reports a record that was not emitted. It is a trace, so it only
// shows up in verbose output.
func (t *Tracer) Dropped(typeName, missing string) {
	if t == nil {
		return
	}
	t.log.Named(NameEmit).Debug("dropped type with missing dependency",
		zap.String("type", typeName),
		zap.String("missing", missing),
	)
}

// Section writes a pass-level summary.
func (t *Tracer) Section(msg string, fields ...zap.Field) {
	if t == nil {
		return
	}
	t.log.Info(msg, fields...)
}

// Sync flushes buffered entries.
func (t *Tracer) Sync() error {
	if t == nil {
		return nil
	}
	return t.log.Sync()
}
