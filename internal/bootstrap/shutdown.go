package bootstrap

import (
	"context"
	"log/slog"

	"github.com/agrocampo/api/internal/scheduler"
	"github.com/agrocampo/api/internal/server"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server    *server.Server
	Scheduler *scheduler.Scheduler
}

// GracefulShutdown performs graceful shutdown of all application components.
// The HTTP server stops first so no new requests arrive while the
// background scheduler drains.
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if err := components.Server.Stop(ctx); err != nil {
		slog.Error(LogMsgServerForcedShutdown, "error", err)
	}

	if components.Scheduler != nil {
		components.Scheduler.Stop()
	}

	slog.Info(LogMsgServerStopped)
}
