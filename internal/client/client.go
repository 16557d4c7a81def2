// Package client fetches channel and video data from the analytics API and
// shapes it into the view models the dashboard renders.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/yt-insights/dashboard/internal/models"
)

const defaultTimeout = 15 * time.Second

// HTTPClient interface for making HTTP requests (allows injection for testing).
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient HTTPClient) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets the timeout of the default HTTP client.
// It has no effect when combined with WithHTTPClient.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if hc, ok := c.httpClient.(*http.Client); ok {
			hc.Timeout = d
		}
	}
}

// Client is a read-only client for the analytics API.
type Client struct {
	baseURL    string
	httpClient HTTPClient
}

// New creates a client for the API rooted at baseURL, e.g. http://localhost:8080/api.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SearchChannels returns the channels matching query. No match is an empty
// slice, not an error.
func (c *Client) SearchChannels(ctx context.Context, query string) ([]models.ChannelBasic, error) {
	const op = "search channels"

	params := url.Values{}
	params.Set("query", query)

	var body struct {
		Channels *[]models.ChannelBasic `json:"channels"`
	}
	if err := c.get(ctx, op, "/channels/search?"+params.Encode(), &body); err != nil {
		return nil, err
	}
	if body.Channels == nil {
		return nil, c.fail(&DecodeError{Op: op, Err: fmt.Errorf("%w: channels", models.ErrMissingField)})
	}
	if *body.Channels == nil {
		return []models.ChannelBasic{}, nil
	}
	return *body.Channels, nil
}

// GetChannelStatistics fetches a channel's counters and details. Missing
// nested objects or non-numeric counters fail with a DecodeError.
func (c *Client) GetChannelStatistics(ctx context.Context, channelID string) (*models.ChannelStatistics, error) {
	const op = "get channel statistics"

	var stats models.ChannelStatistics
	if err := c.get(ctx, op, "/channels/"+url.PathEscape(channelID), &stats); err != nil {
		return nil, err
	}
	if err := stats.Validate(); err != nil {
		return nil, c.fail(&DecodeError{Op: op, Err: err})
	}
	return &stats, nil
}

// GetChannelVideos fetches one page of a channel's videos. An empty
// pageToken requests the first page; any other value is sent as-is.
func (c *Client) GetChannelVideos(ctx context.Context, channelID, pageToken string) (*models.ChannelVideosResponse, error) {
	const op = "get channel videos"

	path := "/channels/" + url.PathEscape(channelID) + "/videos"
	if pageToken != "" {
		params := url.Values{}
		params.Set("pageToken", pageToken)
		path += "?" + params.Encode()
	}

	var body struct {
		Videos        *[]models.VideoStatistics `json:"videos"`
		NextPageToken string                    `json:"nextPageToken"`
		TotalResults  int64                     `json:"totalResults"`
	}
	if err := c.get(ctx, op, path, &body); err != nil {
		return nil, err
	}
	if body.Videos == nil {
		return nil, c.fail(&DecodeError{Op: op, Err: fmt.Errorf("%w: videos", models.ErrMissingField)})
	}

	videos := *body.Videos
	if videos == nil {
		videos = []models.VideoStatistics{}
	}
	for i := range videos {
		if videos[i].VideoURL == "" {
			videos[i].VideoURL = models.WatchURL(videos[i].ID)
		}
	}

	return &models.ChannelVideosResponse{
		Videos:        videos,
		NextPageToken: body.NextPageToken,
		TotalResults:  body.TotalResults,
	}, nil
}

// GetVideoStatistics fetches a single video. Unlike the other operations it
// is lenient: absent nested fields become "" (or "0" for counters), and the
// call only fails when the statistics or snippet object is missing entirely.
func (c *Client) GetVideoStatistics(ctx context.Context, videoID string) (*models.VideoStatistics, error) {
	const op = "get video statistics"

	var raw models.RawVideo
	if err := c.get(ctx, op, "/videos/"+url.PathEscape(videoID), &raw); err != nil {
		return nil, err
	}
	video, err := normalizeVideo(&raw)
	if err != nil {
		return nil, c.fail(&DecodeError{Op: op, Err: err})
	}
	return video, nil
}

func normalizeVideo(raw *models.RawVideo) (*models.VideoStatistics, error) {
	if raw.Statistics == nil {
		return nil, fmt.Errorf("%w: statistics", models.ErrMissingField)
	}
	if raw.Snippet == nil {
		return nil, fmt.Errorf("%w: snippet", models.ErrMissingField)
	}

	thumbnail := ""
	if t := raw.Snippet.Thumbnails; t != nil && t.Default != nil {
		thumbnail = t.Default.URL
	}

	return &models.VideoStatistics{
		ID:           raw.ID,
		Title:        raw.Snippet.Title,
		Description:  raw.Snippet.Description,
		PublishedAt:  raw.Snippet.PublishedAt,
		ThumbnailURL: thumbnail,
		ViewCount:    countOrZero(raw.Statistics.ViewCount),
		LikeCount:    countOrZero(raw.Statistics.LikeCount),
		CommentCount: countOrZero(raw.Statistics.CommentCount),
		Duration:     raw.Duration,
		VideoURL:     models.WatchURL(raw.ID),
	}, nil
}

func countOrZero(s string) string {
	if s == "" {
		return "0"
	}
	return s
}

func (c *Client) get(ctx context.Context, op, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return c.fail(&NetworkError{Op: op, Err: fmt.Errorf("failed to create request: %w", err)})
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.fail(&NetworkError{Op: op, Err: err})
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.fail(&NetworkError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read response: %w", err)})
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr models.ErrorResponse
		_ = json.Unmarshal(body, &apiErr)
		return c.fail(&NetworkError{Op: op, StatusCode: resp.StatusCode, Message: apiErr.Error})
	}

	if err := json.Unmarshal(body, out); err != nil {
		return c.fail(&DecodeError{Op: op, Err: err})
	}
	return nil
}

func (c *Client) fail(err error) error {
	if !errors.Is(err, context.Canceled) {
		log.Printf("API client: %v", err)
	}
	return err
}
