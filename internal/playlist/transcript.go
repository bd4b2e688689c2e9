package playlist

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTimedtextBaseURL = "https://www.youtube.com/api/timedtext"

// TimedtextClient fetches caption tracks from YouTube's timedtext endpoint
// and flattens them to plain transcript text.
type TimedtextClient struct {
	baseURL    string
	languages  []string
	httpClient *http.Client
}

var _ TranscriptFetcher = (*TimedtextClient)(nil)

// TimedtextOption configures a TimedtextClient.
type TimedtextOption func(*TimedtextClient)

// WithTimedtextHTTPClient overrides the default HTTP client.
func WithTimedtextHTTPClient(client *http.Client) TimedtextOption {
	return func(c *TimedtextClient) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimedtextBaseURL overrides the endpoint, mainly for tests.
func WithTimedtextBaseURL(baseURL string) TimedtextOption {
	return func(c *TimedtextClient) {
		if trimmed := strings.TrimSpace(baseURL); trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// NewTimedtextClient creates a transcript fetcher that tries the supplied
// language codes in order.
func NewTimedtextClient(languages []string, opts ...TimedtextOption) *TimedtextClient {
	if len(languages) == 0 {
		languages = []string{"en"}
	}
	client := &TimedtextClient{
		baseURL:    defaultTimedtextBaseURL,
		languages:  languages,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

type timedtextResponse struct {
	Events []struct {
		Segs []struct {
			UTF8 string `json:"utf8"`
		} `json:"segs"`
	} `json:"events"`
}

// Fetch returns the first transcript found among the configured languages.
// A video with no captions yields an empty string and a nil error.
func (c *TimedtextClient) Fetch(ctx context.Context, videoID string) (string, error) {
	videoID = strings.TrimSpace(videoID)
	if videoID == "" {
		return "", fmt.Errorf("video id must not be empty")
	}
	for _, lang := range c.languages {
		text, err := c.fetchLanguage(ctx, videoID, lang)
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			continue
		}
		if text != "" {
			return text, nil
		}
	}
	return "", nil
}

func (c *TimedtextClient) fetchLanguage(ctx context.Context, videoID, lang string) (string, error) {
	params := url.Values{}
	params.Set("v", videoID)
	params.Set("lang", lang)
	params.Set("fmt", "json3")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("timedtext request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("timedtext returned %d for %s lang %s", resp.StatusCode, videoID, lang)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read timedtext body: %w", err)
	}
	// A captionless video answers 200 with an empty body.
	if len(strings.TrimSpace(string(body))) == 0 {
		return "", nil
	}

	var payload timedtextResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("parse timedtext response: %w", err)
	}
	var builder strings.Builder
	for _, event := range payload.Events {
		for _, seg := range event.Segs {
			builder.WriteString(seg.UTF8)
		}
		if len(event.Segs) > 0 {
			builder.WriteString(" ")
		}
	}
	return strings.Join(strings.Fields(builder.String()), " "), nil
}
