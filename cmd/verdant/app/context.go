package app

import (
	"context"
	"os/signal"
	"syscall"
)

// Context creates a context that is cancelled when the application
// receives an interrupt or termination signal.
func Context() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
