package push

import (
	"context"
	"fmt"

	"github.com/line/line-bot-sdk-go/v7/linebot"

	"heyday/internal/domain/notification"
	appErrors "heyday/internal/pkg/errors"
	"heyday/internal/pkg/logger"
)

// LineGateway delivers dispatcher batches over the LINE Messaging API.
// Device tokens registered on the line platform hold LINE user IDs.
type LineGateway struct {
	bot *linebot.Client
	log logger.Logger
}

// NewLineGateway creates a LINE Bot client from the channel credentials.
func NewLineGateway(channelSecret, channelToken string, log logger.Logger) (*LineGateway, error) {
	if channelSecret == "" || channelToken == "" {
		return nil, fmt.Errorf("CHANNEL_SECRET and CHANNEL_ACCESS_TOKEN must be set")
	}
	bot, err := linebot.New(channelSecret, channelToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create LINE Bot client: %w", err)
	}
	log.Info("Successfully created LINE Bot client.")
	return &LineGateway{bot: bot, log: log}, nil
}

// SendBatch pushes each message to its destination. The LINE API has no
// multi-destination batch call, so the fan-out happens here and the
// batch reports a single result: the first failure fails the call.
func (g *LineGateway) SendBatch(ctx context.Context, messages []notification.PushMessage) error {
	for _, m := range messages {
		text := m.Title
		if m.Body != "" {
			text = m.Title + "\n" + m.Body
		}
		if _, err := g.bot.PushMessage(m.Token, linebot.NewTextMessage(text)).WithContext(ctx).Do(); err != nil {
			return fmt.Errorf("%w: %v", appErrors.ErrPushGateway, err)
		}
	}
	g.log.Debug(fmt.Sprintf("Pushed %d LINE messages.", len(messages)))
	return nil
}
