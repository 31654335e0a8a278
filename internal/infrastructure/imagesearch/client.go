package imagesearch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/cataloglens/backend/internal/domain"
)

const (
	maxAttempts = 3
	retryDelay  = 2 * time.Second
)

// Client queries an image metasearch endpoint for product pictures.
// Image lookup is best-effort enrichment; callers treat any failure as
// "no image" rather than an error on the parse request.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a new image search client
func NewClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: baseURL,
	}
}

type searchResponse struct {
	Results []searchResult `json:"results"`
}

type searchResult struct {
	Title  string `json:"title"`
	URL    string `json:"url"`
	Image  string `json:"img_src"`
	Source string `json:"source,omitempty"`
}

// FirstImageURL returns the first image hit for the query. Rate-limit and
// transient failures are retried with a fixed delay; an empty result set
// is reported as ErrImageUnavailable without retrying.
func (c *Client) FirstImageURL(ctx context.Context, query string) (string, error) {
	params := url.Values{}
	params.Add("q", query)
	params.Add("format", "json")
	params.Add("categories", "images")
	reqURL := fmt.Sprintf("%s/search?%s", c.baseURL, params.Encode())

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		image, err := c.search(ctx, reqURL)
		if err == nil {
			return image, nil
		}
		if errors.Is(err, domain.ErrImageUnavailable) {
			return "", err
		}

		log.Printf("[IMAGES] search attempt %d failed: %v", attempt, err)
		lastErr = err

		if attempt < maxAttempts {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(retryDelay):
			}
		}
	}

	return "", lastErr
}

func (c *Client) search(ctx context.Context, reqURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "CatalogLens/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
	}

	var searchResp searchResponse
	if err := json.Unmarshal(body, &searchResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	for _, result := range searchResp.Results {
		if result.Image != "" {
			return result.Image, nil
		}
	}
	return "", domain.ErrImageUnavailable
}
