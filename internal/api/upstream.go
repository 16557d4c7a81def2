package api

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"google.golang.org/api/youtube/v3"
)

// ErrNotFound is returned when the platform has no channel or video with the requested id
var ErrNotFound = errors.New("not found")

// Upstream is the subset of the YouTube Data API the analytics endpoints use
type Upstream interface {
	SearchChannels(ctx context.Context, query string, maxResults int64) (*youtube.SearchListResponse, error)
	GetChannel(ctx context.Context, channelID string) (*youtube.Channel, error)
	FindChannel(ctx context.Context, ref ChannelRef) (*youtube.Channel, error)
	SearchChannelVideos(ctx context.Context, channelID, pageToken string, maxResults int64) (*youtube.SearchListResponse, error)
	ListVideos(ctx context.Context, videoIDs []string) ([]*youtube.Video, error)
}

// ChannelRefKind says how a ChannelRef identifies its channel
type ChannelRefKind int

const (
	RefID ChannelRefKind = iota
	RefHandle
	RefUsername
)

// ChannelRef identifies a channel by id, @handle or legacy username
type ChannelRef struct {
	Kind  ChannelRefKind
	Value string
}

// ParseChannelRef recognizes the channel URL formats people paste into the
// search box (youtube.com/channel/UC..., /@handle, /c/name, /user/name) as
// well as a bare @handle. ok is false for anything else, including plain
// search terms.
func ParseChannelRef(query string) (ChannelRef, bool) {
	query = strings.TrimSpace(query)
	if strings.HasPrefix(query, "@") && !strings.ContainsAny(query, " /") && len(query) > 1 {
		return ChannelRef{Kind: RefHandle, Value: strings.TrimPrefix(query, "@")}, true
	}

	raw := query
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	parsedURL, err := url.Parse(raw)
	if err != nil {
		return ChannelRef{}, false
	}
	host := strings.TrimPrefix(strings.ToLower(parsedURL.Host), "www.")
	host = strings.TrimPrefix(host, "m.")
	if host != "youtube.com" {
		return ChannelRef{}, false
	}

	path := parsedURL.Path
	segment := func(prefix string) string {
		rest := strings.TrimPrefix(path, prefix)
		if i := strings.Index(rest, "/"); i >= 0 {
			rest = rest[:i]
		}
		return rest
	}

	var ref ChannelRef
	switch {
	case strings.HasPrefix(path, "/channel/"):
		// Format: youtube.com/channel/UC...
		ref = ChannelRef{Kind: RefID, Value: segment("/channel/")}
	case strings.HasPrefix(path, "/@"):
		// Format: youtube.com/@Handle
		ref = ChannelRef{Kind: RefHandle, Value: segment("/@")}
	case strings.HasPrefix(path, "/c/"):
		// Format: youtube.com/c/ChannelName
		ref = ChannelRef{Kind: RefUsername, Value: segment("/c/")}
	case strings.HasPrefix(path, "/user/"):
		// Format: youtube.com/user/Username
		ref = ChannelRef{Kind: RefUsername, Value: segment("/user/")}
	default:
		return ChannelRef{}, false
	}
	if ref.Value == "" {
		return ChannelRef{}, false
	}
	return ref, true
}
