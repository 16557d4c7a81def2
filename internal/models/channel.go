package models

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrMissingField is returned when a required object or value is absent from a response
var ErrMissingField = errors.New("missing required field")

// ChannelBasic represents a channel returned by a search
type ChannelBasic struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	ThumbnailURL string `json:"thumbnailUrl"`
}

// SearchResponse represents the body of the channel search endpoint
type SearchResponse struct {
	Channels []ChannelBasic `json:"channels"`
}

// ChannelCounts holds the aggregate counters of a channel as decimal strings
type ChannelCounts struct {
	SubscriberCount string `json:"subscriberCount"`
	VideoCount      string `json:"videoCount"`
	ViewCount       string `json:"viewCount"`
}

// ChannelDetails holds the descriptive part of a channel
type ChannelDetails struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	PublishedAt  string `json:"publishedAt"`
	ThumbnailURL string `json:"thumbnailUrl"`
}

// ChannelStatistics represents the statistics endpoint response for a single channel.
// Statistics and Details are pointers so that an absent object can be told apart
// from an empty one.
type ChannelStatistics struct {
	ID         string          `json:"id"`
	Statistics *ChannelCounts  `json:"statistics"`
	Details    *ChannelDetails `json:"details"`
}

// Validate checks that both nested objects are present and every counter is a decimal integer
func (c *ChannelStatistics) Validate() error {
	if c.Statistics == nil {
		return fmt.Errorf("%w: statistics", ErrMissingField)
	}
	if c.Details == nil {
		return fmt.Errorf("%w: details", ErrMissingField)
	}

	counts := []struct {
		name  string
		value string
	}{
		{"statistics.subscriberCount", c.Statistics.SubscriberCount},
		{"statistics.videoCount", c.Statistics.VideoCount},
		{"statistics.viewCount", c.Statistics.ViewCount},
	}
	for _, count := range counts {
		if count.value == "" {
			return fmt.Errorf("%w: %s", ErrMissingField, count.name)
		}
		if _, err := strconv.ParseInt(count.value, 10, 64); err != nil {
			return fmt.Errorf("invalid %s %q: %w", count.name, count.value, err)
		}
	}
	return nil
}

// Channel represents a channel card in the comparison view
type Channel struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Subscribers int64  `json:"subscriberCount"`
	ViewCount   int64  `json:"viewCount"`
	VideoCount  int64  `json:"videoCount"`
	Thumbnail   string `json:"thumbnailUrl"`
}

// ErrorResponse represents the body of every non-2xx API response
type ErrorResponse struct {
	Error string `json:"error"`
}
