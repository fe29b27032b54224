package async

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/msnipe/pkg/utils/errutil"
	"github.com/secmon-lab/msnipe/pkg/utils/logging"
)

// Dispatch executes a handler function asynchronously in a new goroutine.
// It creates a background context that keeps the caller's logger, and
// recovers panics so that one failing event never takes the process down.
func Dispatch(ctx context.Context, handler func(ctx context.Context) error) {
	bgCtx := context.Background()
	if logger := logging.From(ctx); logger != nil {
		bgCtx = logging.With(bgCtx, logger)
	}

	go func() {
		defer Recover(bgCtx)

		if err := handler(bgCtx); err != nil {
			_ = errutil.Handle(bgCtx, err, "async handler failed")
		}
	}()
}

// Recover logs and reports a panic. It must be called directly via defer.
func Recover(ctx context.Context) {
	if r := recover(); r != nil {
		_ = errutil.Handle(ctx, goerr.New("panic in event handler", goerr.V("panic", r)), "panic recovered")
	}
}
