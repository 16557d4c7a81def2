package models

const watchURLPrefix = "https://www.youtube.com/watch?v="

// VideoStatistics represents one video's public metrics at fetch time
type VideoStatistics struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	PublishedAt  string `json:"publishedAt"`
	ThumbnailURL string `json:"thumbnailUrl"`
	ViewCount    string `json:"viewCount"`
	LikeCount    string `json:"likeCount"`
	CommentCount string `json:"commentCount"`
	Duration     string `json:"duration"`
	VideoURL     string `json:"videoUrl,omitempty"`
}

// ChannelVideosResponse represents one page of a channel's videos.
// TotalResults is the platform's estimate and need not equal len(Videos).
type ChannelVideosResponse struct {
	Videos        []VideoStatistics `json:"videos"`
	NextPageToken string            `json:"nextPageToken,omitempty"`
	TotalResults  int64             `json:"totalResults"`
}

// Thumbnail represents a single thumbnail image
type Thumbnail struct {
	URL string `json:"url"`
}

// Thumbnails represents the thumbnail sizes the platform returns
type Thumbnails struct {
	Default *Thumbnail `json:"default,omitempty"`
	High    *Thumbnail `json:"high,omitempty"`
	Maxres  *Thumbnail `json:"maxres,omitempty"`
}

// RawVideoStatistics represents the statistics object of a platform-shaped video
type RawVideoStatistics struct {
	ViewCount    string `json:"viewCount,omitempty"`
	LikeCount    string `json:"likeCount,omitempty"`
	CommentCount string `json:"commentCount,omitempty"`
}

// RawVideoSnippet represents the snippet object of a platform-shaped video
type RawVideoSnippet struct {
	Title       string      `json:"title,omitempty"`
	Description string      `json:"description,omitempty"`
	PublishedAt string      `json:"publishedAt,omitempty"`
	Thumbnails  *Thumbnails `json:"thumbnails,omitempty"`
}

// RawVideo represents the platform-shaped body of the single video endpoint
type RawVideo struct {
	ID         string              `json:"id"`
	Statistics *RawVideoStatistics `json:"statistics,omitempty"`
	Snippet    *RawVideoSnippet    `json:"snippet,omitempty"`
	Duration   string              `json:"duration,omitempty"`
}

// WatchURL returns the public watch page for a video
func WatchURL(videoID string) string {
	if videoID == "" {
		return ""
	}
	return watchURLPrefix + videoID
}
