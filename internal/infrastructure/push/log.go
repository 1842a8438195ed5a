package push

import (
	"context"
	"fmt"

	"heyday/internal/domain/notification"
	"heyday/internal/pkg/logger"
)

// LogGateway logs batches instead of delivering them. Used in
// development and as the fallback when no real provider is configured.
type LogGateway struct {
	log logger.Logger
}

// NewLogGateway creates a LogGateway.
func NewLogGateway(log logger.Logger) *LogGateway {
	return &LogGateway{log: log}
}

// SendBatch logs every message and always succeeds.
func (g *LogGateway) SendBatch(ctx context.Context, messages []notification.PushMessage) error {
	for _, m := range messages {
		g.log.Info(fmt.Sprintf("PUSH (dry-run): to=%s title=%q body=%q data=%v", m.Token, m.Title, m.Body, m.Data))
	}
	return nil
}
