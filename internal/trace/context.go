package trace

import "context"

type tracerKey struct{}

type spanKey struct{}

// FromContext returns the tracer carried by ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	if ctx == nil {
		return Nop
	}
	if t, ok := ctx.Value(tracerKey{}).(Tracer); ok {
		return t
	}
	return Nop
}

// WithTracer attaches t to ctx; nil means Nop.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, tracerKey{}, t)
}

// SpanFrom returns the innermost span started with Start, or nil.
func SpanFrom(ctx context.Context) *Span {
	if ctx == nil {
		return nil
	}
	s, _ := ctx.Value(spanKey{}).(*Span)
	return s
}

// Start begins a span below the one carried by ctx, using ctx's tracer.
// The returned context carries the new span; disabled spans leave ctx as is.
func Start(ctx context.Context, scope Scope, name string) (*Span, context.Context) {
	parent := SpanFrom(ctx)
	s := begin(FromContext(ctx), scope, name, parent.ID(), parentFile(parent))
	if s.disabled() {
		return s, ctx
	}
	return s, context.WithValue(ctx, spanKey{}, s)
}

// StartFile begins a ScopeFile span for path below the span carried by ctx.
func StartFile(ctx context.Context, name, path string) (*Span, context.Context) {
	s := begin(FromContext(ctx), ScopeFile, name, SpanFrom(ctx).ID(), path)
	if s.disabled() {
		return s, ctx
	}
	return s, context.WithValue(ctx, spanKey{}, s)
}

func parentFile(s *Span) string {
	if s == nil {
		return ""
	}
	return s.file
}
