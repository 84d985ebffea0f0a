package httpapi

import (
	"context"
)

// serverBaseCtx is canceled when the process shuts down. Background until set.
var serverBaseCtx = context.Background()

// SetBaseContext sets the process-level context that ends long-polling
// requests such as POST /menu/run?wait=true on shutdown.
func SetBaseContext(ctx context.Context) {
	if ctx == nil {
		serverBaseCtx = context.Background()
		return
	}
	serverBaseCtx = ctx
}

// joinContexts returns a context canceled when either a or b is done.
// The returned cancel func must be called when the handler ends.
func joinContexts(a, b context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(a)
	stop := context.AfterFunc(b, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}
