package api

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"google.golang.org/api/youtube/v3"
)

// CachedUpstream keeps successful upstream responses for a fixed TTL to
// spare the YouTube API quota. Errors are never cached.
type CachedUpstream struct {
	next  Upstream
	cache *cache.Cache
}

// NewCachedUpstream wraps next with a TTL cache
func NewCachedUpstream(next Upstream, ttl time.Duration) *CachedUpstream {
	return &CachedUpstream{
		next:  next,
		cache: cache.New(ttl, 2*ttl),
	}
}

func cached[T any](c *cache.Cache, key string, fetch func() (T, error)) (T, error) {
	if v, found := c.Get(key); found {
		return v.(T), nil
	}
	v, err := fetch()
	if err != nil {
		return v, err
	}
	c.SetDefault(key, v)
	return v, nil
}

func (u *CachedUpstream) SearchChannels(ctx context.Context, query string, maxResults int64) (*youtube.SearchListResponse, error) {
	key := fmt.Sprintf("search|%s|%d", query, maxResults)
	return cached(u.cache, key, func() (*youtube.SearchListResponse, error) {
		return u.next.SearchChannels(ctx, query, maxResults)
	})
}

func (u *CachedUpstream) GetChannel(ctx context.Context, channelID string) (*youtube.Channel, error) {
	return cached(u.cache, "channel|"+channelID, func() (*youtube.Channel, error) {
		return u.next.GetChannel(ctx, channelID)
	})
}

func (u *CachedUpstream) FindChannel(ctx context.Context, ref ChannelRef) (*youtube.Channel, error) {
	key := fmt.Sprintf("ref|%d|%s", ref.Kind, ref.Value)
	return cached(u.cache, key, func() (*youtube.Channel, error) {
		return u.next.FindChannel(ctx, ref)
	})
}

func (u *CachedUpstream) SearchChannelVideos(ctx context.Context, channelID, pageToken string, maxResults int64) (*youtube.SearchListResponse, error) {
	key := fmt.Sprintf("videos|%s|%s|%d", channelID, pageToken, maxResults)
	return cached(u.cache, key, func() (*youtube.SearchListResponse, error) {
		return u.next.SearchChannelVideos(ctx, channelID, pageToken, maxResults)
	})
}

func (u *CachedUpstream) ListVideos(ctx context.Context, videoIDs []string) ([]*youtube.Video, error) {
	return cached(u.cache, "video|"+strings.Join(videoIDs, ","), func() ([]*youtube.Video, error) {
		return u.next.ListVideos(ctx, videoIDs)
	})
}

// ItemCount returns the number of cached responses, expired ones included
func (u *CachedUpstream) ItemCount() int {
	return u.cache.ItemCount()
}
