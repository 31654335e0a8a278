package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/cataloglens/backend/internal/domain"
	"golang.org/x/time/rate"
)

// Client talks to a local Ollama server's chat API
type Client struct {
	httpClient  *http.Client
	baseURL     string
	model       string
	rateLimiter *rate.Limiter
	debug       bool
}

// NewClient creates a new Ollama chat client. Local model serving is
// single-tenant, so outbound calls are throttled to keep concurrent
// request handlers from piling up on the model.
func NewClient(baseURL, model string) *Client {
	limiter := rate.NewLimiter(rate.Limit(2), 4)

	return &Client{
		httpClient: &http.Client{
			// Generation on CPU-bound hosts can take minutes
			Timeout: 120 * time.Second,
		},
		baseURL:     baseURL,
		model:       model,
		rateLimiter: limiter,
	}
}

// SetDebug toggles verbose request logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Format   string        `json:"format"`
	Stream   bool          `json:"stream"`
}

type chatResponse struct {
	Message chatMessage `json:"message"`
	Done    bool        `json:"done"`
}

// Chat sends the system prompt and user input to the model in JSON format
// mode and returns the raw response content. Transient failures are
// retried up to 3 times with exponential backoff.
func (c *Client) Chat(ctx context.Context, systemPrompt, userInput string) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userInput},
		},
		Format: "json",
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/api/chat", c.baseURL)

	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limiter error: %w", err)
		}

		if c.debug {
			log.Printf("[OLLAMA] attempt %d: model=%s input=%d bytes", attempt, c.model, len(userInput))
		}

		content, err := c.doChat(ctx, endpoint, payload)
		if err == nil {
			return content, nil
		}

		log.Printf("[OLLAMA] request error (attempt %d): %v", attempt, err)
		lastErr = err

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(exponentialBackoff(attempt)):
		}
	}

	return "", fmt.Errorf("%w: %v", domain.ErrExtractionFailed, lastErr)
}

func (c *Client) doChat(ctx context.Context, endpoint string, payload []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if chatResp.Message.Content == "" {
		return "", fmt.Errorf("empty model response")
	}
	return chatResp.Message.Content, nil
}

// exponentialBackoff returns the delay before the next retry attempt
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(1<<(attempt-1)) * 500 * time.Millisecond
}
