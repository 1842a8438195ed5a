// Package genai calls the Gemini generateContent REST API.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	appErrors "heyday/internal/pkg/errors"
	"heyday/internal/pkg/logger"
)

// Client generates text with a Gemini model.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	log        logger.Logger
}

// NewClient creates a Client for the given API base URL, key, and model.
func NewClient(baseURL, apiKey, model string, log logger.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        log,
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Model returns the configured model name (recorded on persisted rows).
func (c *Client) Model() string {
	return c.model
}

// GenerateJSON sends prompt to the model and returns the raw response
// text. The caller strips any markdown fencing and parses the JSON.
func (c *Client) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("%w: encode request: %v", appErrors.ErrGenerative, err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", appErrors.ErrGenerative, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", appErrors.ErrGenerative, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", appErrors.ErrGenerative, resp.StatusCode)
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", appErrors.ErrGenerative, err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: empty response", appErrors.ErrGenerative)
	}

	text := out.Candidates[0].Content.Parts[0].Text
	c.log.Debug(fmt.Sprintf("Generated %d characters with %s.", len(text), c.model))
	return text, nil
}
