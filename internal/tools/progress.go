package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/giantswarm/mcp-flights/internal/logging"
)

// ProgressObserver receives advisory progress updates from long-running tools.
// Tool output must not depend on whether updates are delivered.
type ProgressObserver interface {
	Progress(ctx context.Context, progress, total float64, message string)
}

// NoopObserver discards progress updates.
type NoopObserver struct{}

// Progress implements ProgressObserver.
func (NoopObserver) Progress(context.Context, float64, float64, string) {}

// notificationObserver forwards progress to the client as
// notifications/progress messages.
type notificationObserver struct {
	server *mcpserver.MCPServer
	token  mcp.ProgressToken
	logger logging.Logger
}

// NewProgressObserver returns an observer for request. It falls back to
// NoopObserver when the client sent no progress token or ctx carries no server.
func NewProgressObserver(ctx context.Context, request mcp.CallToolRequest, logger logging.Logger) ProgressObserver {
	if request.Params.Meta == nil || request.Params.Meta.ProgressToken == nil {
		return NoopObserver{}
	}
	srv := mcpserver.ServerFromContext(ctx)
	if srv == nil {
		return NoopObserver{}
	}
	if logger == nil {
		logger = logging.DefaultLogger()
	}
	return &notificationObserver{
		server: srv,
		token:  request.Params.Meta.ProgressToken,
		logger: logger,
	}
}

// Progress implements ProgressObserver. Delivery failures are logged and dropped.
func (o *notificationObserver) Progress(ctx context.Context, progress, total float64, message string) {
	params := map[string]any{
		"progressToken": o.token,
		"progress":      progress,
		"total":         total,
	}
	if message != "" {
		params["message"] = message
	}
	if err := o.server.SendNotificationToClient(ctx, "notifications/progress", params); err != nil {
		o.logger.Debug("Failed to send progress notification", logging.Err(err))
	}
}
