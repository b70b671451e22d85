// Command server runs the HTTP API and, when enabled, the background
// audio pipeline.
//
// Configuration is read from the file named by CONFIG_PATH (default
// ./config.yaml) with environment variable overrides.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/lingosteps/backend/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("application error: %v", err)
	}
}
