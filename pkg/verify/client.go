package verify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Mahatir-Ahmed-Tusher/WordVia/pkg/wordvia"
)

// Client calls the verification service and satisfies the game's Judge
// interface. Errors are returned as-is; the challenge arbitration layer is
// the one that fails open.
type Client struct {
	baseURL string
	http    *http.Client
}

var _ wordvia.Judge = (*Client)(nil)

func NewClient(baseURL string, opts ...func(*Client)) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func WithClientHTTP(h *http.Client) func(*Client) {
	return func(c *Client) { c.http = h }
}

// VerifyMeaning submits the word and meaning for judgment.
func (c *Client) VerifyMeaning(ctx context.Context, word, meaning string) (bool, error) {
	body, err := json.Marshal(VerifyRequest{Word: word, Meaning: meaning})
	if err != nil {
		return false, fmt.Errorf("failed to encode verify request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/verify", bytes.NewReader(body))
	if err != nil {
		return false, fmt.Errorf("failed to build verify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return false, fmt.Errorf("verify request failed: %w", err)
	}
	defer resp.Body.Close()

	var vr VerifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&vr); err != nil {
		return false, fmt.Errorf("failed to decode verify response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("verify service returned status %d: %s", resp.StatusCode, vr.Error)
	}
	return vr.IsCorrect, nil
}
