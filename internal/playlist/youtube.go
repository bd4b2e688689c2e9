package playlist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	defaultDataAPIBaseURL = "https://www.googleapis.com/youtube/v3"
	maxPageSize           = 50
)

// Provider returns raw per-video records for a playlist.
type Provider interface {
	Info(ctx context.Context, playlistID string) (*Info, error)
	Collect(ctx context.Context, playlistID string, maxItems int) ([]RawItem, error)
}

// TranscriptFetcher retrieves the transcript text for a single video. An
// empty string with a nil error means no transcript exists.
type TranscriptFetcher interface {
	Fetch(ctx context.Context, videoID string) (string, error)
}

// YouTubeClient talks to the YouTube Data API v3.
type YouTubeClient struct {
	apiKey      string
	baseURL     string
	httpClient  *http.Client
	transcripts TranscriptFetcher
}

var _ Provider = (*YouTubeClient)(nil)

// YouTubeOption configures a YouTubeClient.
type YouTubeOption func(*YouTubeClient)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) YouTubeOption {
	return func(c *YouTubeClient) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTranscripts attaches a transcript fetcher. Without one, every record is
// collected with an empty transcript.
func WithTranscripts(fetcher TranscriptFetcher) YouTubeOption {
	return func(c *YouTubeClient) {
		c.transcripts = fetcher
	}
}

// NewYouTubeClient creates a YouTube Data API client.
func NewYouTubeClient(apiKey, baseURL string, opts ...YouTubeOption) (*YouTubeClient, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("youtube api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = defaultDataAPIBaseURL
	}
	client := &YouTubeClient{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

type playlistListResponse struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			Title        string `json:"title"`
			Description  string `json:"description"`
			ChannelTitle string `json:"channelTitle"`
		} `json:"snippet"`
		ContentDetails struct {
			ItemCount int `json:"itemCount"`
		} `json:"contentDetails"`
	} `json:"items"`
}

type playlistItemsResponse struct {
	NextPageToken string `json:"nextPageToken"`
	Items         []struct {
		Snippet struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			Position    int    `json:"position"`
			ResourceID  struct {
				VideoID string `json:"videoId"`
			} `json:"resourceId"`
		} `json:"snippet"`
	} `json:"items"`
}

type videoListResponse struct {
	Items []struct {
		ID             string `json:"id"`
		ContentDetails struct {
			Duration string `json:"duration"`
		} `json:"contentDetails"`
	} `json:"items"`
}

// Info fetches playlist-level metadata.
func (c *YouTubeClient) Info(ctx context.Context, playlistID string) (*Info, error) {
	playlistID = strings.TrimSpace(playlistID)
	if playlistID == "" {
		return nil, errors.New("playlist id must not be empty")
	}
	params := url.Values{}
	params.Set("part", "snippet,contentDetails")
	params.Set("id", playlistID)

	var payload playlistListResponse
	if err := c.getJSON(ctx, "/playlists", params, &payload); err != nil {
		return nil, err
	}
	if len(payload.Items) == 0 {
		return nil, fmt.Errorf("%w: playlist %s not found", ErrSourceUnavailable, playlistID)
	}
	entry := payload.Items[0]
	return &Info{
		ID:           playlistID,
		Title:        entry.Snippet.Title,
		Description:  entry.Snippet.Description,
		ChannelTitle: entry.Snippet.ChannelTitle,
		ItemCount:    entry.ContentDetails.ItemCount,
	}, nil
}

// Collect pages through the playlist and assembles raw records, fetching
// per-video durations in batches and transcripts where a fetcher is attached.
// Transcript failures never fail collection; the record just loses its
// transcript.
func (c *YouTubeClient) Collect(ctx context.Context, playlistID string, maxItems int) ([]RawItem, error) {
	playlistID = strings.TrimSpace(playlistID)
	if playlistID == "" {
		return nil, errors.New("playlist id must not be empty")
	}
	if maxItems <= 0 {
		maxItems = maxPageSize
	}

	var records []RawItem
	pageToken := ""
	for len(records) < maxItems {
		params := url.Values{}
		params.Set("part", "snippet")
		params.Set("playlistId", playlistID)
		params.Set("maxResults", strconv.Itoa(min(maxPageSize, maxItems-len(records))))
		if pageToken != "" {
			params.Set("pageToken", pageToken)
		}

		var payload playlistItemsResponse
		if err := c.getJSON(ctx, "/playlistItems", params, &payload); err != nil {
			return nil, err
		}
		for _, entry := range payload.Items {
			videoID := strings.TrimSpace(entry.Snippet.ResourceID.VideoID)
			if videoID == "" {
				continue
			}
			records = append(records, RawItem{
				ID:          videoID,
				Title:       entry.Snippet.Title,
				Description: entry.Snippet.Description,
				Position:    entry.Snippet.Position,
				URL:         "https://www.youtube.com/watch?v=" + videoID,
			})
		}
		pageToken = payload.NextPageToken
		if pageToken == "" {
			break
		}
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: playlist %s has no videos", ErrSourceUnavailable, playlistID)
	}

	if err := c.fillDurations(ctx, records); err != nil {
		return nil, err
	}
	c.fillTranscripts(ctx, records)
	return records, nil
}

func (c *YouTubeClient) fillDurations(ctx context.Context, records []RawItem) error {
	byID := make(map[string]int, len(records))
	for i, record := range records {
		byID[record.ID] = i
	}
	ids := make([]string, 0, len(records))
	for _, record := range records {
		ids = append(ids, record.ID)
	}

	for start := 0; start < len(ids); start += maxPageSize {
		end := min(start+maxPageSize, len(ids))
		params := url.Values{}
		params.Set("part", "contentDetails")
		params.Set("id", strings.Join(ids[start:end], ","))

		var payload videoListResponse
		if err := c.getJSON(ctx, "/videos", params, &payload); err != nil {
			return err
		}
		for _, entry := range payload.Items {
			if idx, ok := byID[entry.ID]; ok {
				records[idx].Duration = entry.ContentDetails.Duration
			}
		}
	}
	return nil
}

func (c *YouTubeClient) fillTranscripts(ctx context.Context, records []RawItem) {
	if c.transcripts == nil {
		return
	}
	for i := range records {
		if ctx.Err() != nil {
			return
		}
		text, err := c.transcripts.Fetch(ctx, records[i].ID)
		if err != nil {
			continue
		}
		records[i].Transcript = text
	}
}

func (c *YouTubeClient) getJSON(ctx context.Context, path string, params url.Values, target any) error {
	endpoint, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("parse youtube url: %w", err)
	}
	params.Set("key", c.apiKey)
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: execute request: %v", ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: youtube api returned %d for %s", ErrSourceUnavailable, resp.StatusCode, path)
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("decode youtube response: %w", err)
	}
	return nil
}
