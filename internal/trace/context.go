package trace

import "context"

type ctxKey struct{}

// ctxState is what a context carries: the tracer and the innermost open span.
type ctxState struct {
	tracer Tracer
	parent uint64
}

func state(ctx context.Context) ctxState {
	if ctx != nil {
		if st, ok := ctx.Value(ctxKey{}).(ctxState); ok {
			return st
		}
	}
	return ctxState{tracer: Nop}
}

// WithTracer returns ctx carrying t; nil means Nop.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, ctxKey{}, ctxState{tracer: t, parent: state(ctx).parent})
}

// FromContext returns the tracer in ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	return state(ctx).tracer
}

// ParentID is the id of the innermost span opened with Start, or 0.
func ParentID(ctx context.Context) uint64 {
	return state(ctx).parent
}

// Start opens a span under the one in ctx and returns a context in which
// the new span is the parent.
func Start(ctx context.Context, scope Scope, name string) (context.Context, *Span) {
	st := state(ctx)
	sp := Begin(st.tracer, scope, name, st.parent)
	if sp.ID() == 0 {
		return ctx, sp
	}
	return context.WithValue(ctx, ctxKey{}, ctxState{tracer: st.tracer, parent: sp.ID()}), sp
}
