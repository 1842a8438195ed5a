// Package push provides the delivery gateways the batch dispatcher
// submits its notification payloads to.
package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"heyday/internal/domain/notification"
	appErrors "heyday/internal/pkg/errors"
	"heyday/internal/pkg/logger"
)

// ExpoClient submits dispatcher batches to an Expo-compatible push
// endpoint in a single HTTP call.
type ExpoClient struct {
	url         string
	accessToken string
	httpClient  *http.Client
	log         logger.Logger
}

// NewExpoClient creates an ExpoClient for the given endpoint.
// accessToken may be empty for endpoints without enhanced security.
func NewExpoClient(url, accessToken string, log logger.Logger) *ExpoClient {
	return &ExpoClient{
		url:         url,
		accessToken: accessToken,
		httpClient:  &http.Client{Timeout: 15 * time.Second},
		log:         log,
	}
}

type expoMessage struct {
	To    string            `json:"to"`
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
}

// SendBatch submits every message in one POST. Any transport or
// non-2xx response fails the whole batch; per-message receipts are not
// consumed.
func (c *ExpoClient) SendBatch(ctx context.Context, messages []notification.PushMessage) error {
	if len(messages) == 0 {
		return nil
	}

	payload := make([]expoMessage, len(messages))
	for i, m := range messages {
		payload[i] = expoMessage{
			To:    m.Token,
			Title: m.Title,
			Body:  m.Body,
			Data:  m.Data,
		}
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: encode batch: %v", appErrors.ErrPushGateway, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", appErrors.ErrPushGateway, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", appErrors.ErrPushGateway, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: status %d: %s", appErrors.ErrPushGateway, resp.StatusCode, detail)
	}

	c.log.Debug(fmt.Sprintf("Submitted %d push messages.", len(messages)))
	return nil
}
