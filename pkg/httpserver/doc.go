// Package httpserver wraps http.Server with context-driven graceful shutdown
// and functional-option configuration.
//
//	srv := httpserver.New(
//	    httpserver.WithAddr(":8080"),
//	    httpserver.WithLogger(log),
//	)
//	if err := srv.Run(ctx, handler); err != nil && !errors.Is(err, context.Canceled) {
//	    // handle startup or shutdown failure
//	}
//
// Run blocks until the context is cancelled or the listener fails; shutdown
// waits for in-flight requests up to the configured timeout.
package httpserver
