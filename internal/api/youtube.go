package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

var (
	channelParts = []string{"snippet", "statistics", "brandingSettings"}
	videoParts   = []string{"statistics", "snippet", "contentDetails"}
)

// YouTubeAPI implements Upstream with the YouTube Data API v3 client
type YouTubeAPI struct {
	service *youtube.Service
}

// NewYouTubeAPI creates a new YouTube API upstream. Extra options are
// appended after the API key, e.g. option.WithEndpoint in tests.
func NewYouTubeAPI(ctx context.Context, apiKey string, opts ...option.ClientOption) (*YouTubeAPI, error) {
	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	service, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}
	return &YouTubeAPI{service: service}, nil
}

// SearchChannels searches for channels matching query
func (y *YouTubeAPI) SearchChannels(ctx context.Context, query string, maxResults int64) (*youtube.SearchListResponse, error) {
	response, err := y.service.Search.List([]string{"snippet"}).
		Q(query).
		Type("channel").
		MaxResults(maxResults).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("error searching for channels: %w", err)
	}
	return response, nil
}

// GetChannel fetches a channel by id
func (y *YouTubeAPI) GetChannel(ctx context.Context, channelID string) (*youtube.Channel, error) {
	call := y.service.Channels.List(channelParts).Id(channelID).Context(ctx)
	return firstChannel(call.Do())
}

// FindChannel fetches a channel by id, handle or username
func (y *YouTubeAPI) FindChannel(ctx context.Context, ref ChannelRef) (*youtube.Channel, error) {
	call := y.service.Channels.List(channelParts).Context(ctx)
	switch ref.Kind {
	case RefID:
		return y.GetChannel(ctx, ref.Value)
	case RefUsername:
		return firstChannel(call.ForUsername(ref.Value).Do())
	case RefHandle:
		return firstChannel(call.Do(googleapi.QueryParameter("forHandle", ref.Value)))
	default:
		return nil, fmt.Errorf("unsupported channel reference kind %d", ref.Kind)
	}
}

func firstChannel(response *youtube.ChannelListResponse, err error) (*youtube.Channel, error) {
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("channel %w", ErrNotFound)
		}
		return nil, fmt.Errorf("error fetching channel info: %w", err)
	}
	if len(response.Items) == 0 {
		return nil, fmt.Errorf("channel %w", ErrNotFound)
	}
	channel := response.Items[0]
	if channel.Snippet != nil {
		log.Printf("Channel found: %s", channel.Snippet.Title)
	}
	return channel, nil
}

// SearchChannelVideos lists a channel's videos newest first, one page at a time
func (y *YouTubeAPI) SearchChannelVideos(ctx context.Context, channelID, pageToken string, maxResults int64) (*youtube.SearchListResponse, error) {
	call := y.service.Search.List([]string{"snippet"}).
		ChannelId(channelID).
		Order("date").
		Type("video").
		MaxResults(maxResults).
		Context(ctx)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	response, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("error fetching videos: %w", err)
	}
	return response, nil
}

// ListVideos fetches statistics, snippet and content details for the given ids
func (y *YouTubeAPI) ListVideos(ctx context.Context, videoIDs []string) ([]*youtube.Video, error) {
	if len(videoIDs) == 0 {
		return nil, nil
	}

	response, err := y.service.Videos.List(videoParts).
		Id(videoIDs...).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("error fetching video details: %w", err)
	}
	return response.Items, nil
}

func isNotFound(err error) bool {
	var apiErr *googleapi.Error
	return errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound
}
