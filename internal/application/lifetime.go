package application

import "context"

// lifetime ties the requests a view issues to the span during which the view
// is displayed. Once closed, every in-flight request is cancelled and any
// result that arrives afterwards is dropped.
type lifetime struct {
	ctx    context.Context
	cancel context.CancelFunc
}

func newLifetime(parent context.Context) lifetime {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	return lifetime{ctx: ctx, cancel: cancel}
}

// bind derives a request context that ends with either ctx or the lifetime.
func (l lifetime) bind(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	bound, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(l.ctx, cancel)
	return bound, func() {
		stop()
		cancel()
	}
}

// stale reports whether a result obtained under ctx must be discarded.
func (l lifetime) stale(ctx context.Context) bool {
	return l.ctx.Err() != nil || (ctx != nil && ctx.Err() != nil)
}

func (l lifetime) close() {
	l.cancel()
}
