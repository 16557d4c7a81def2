package view

import (
	"github.com/yt-insights/dashboard/internal/models"
)

const (
	chartVideos    = 10
	chartTitleLen  = 20
	chartTitleTail = "..."
)

// ChartPoint is one video in the performance chart.
type ChartPoint struct {
	Name     string
	Views    int64
	Likes    int64
	Comments int64
}

// ChartData takes the first ten videos, shortens their titles and returns
// them oldest first.
func ChartData(videos []models.VideoStatistics) []ChartPoint {
	n := min(len(videos), chartVideos)
	points := make([]ChartPoint, n)
	for i, v := range videos[:n] {
		views, _ := ParseCount(v.ViewCount)
		likes, _ := ParseCount(v.LikeCount)
		comments, _ := ParseCount(v.CommentCount)
		points[n-1-i] = ChartPoint{
			Name:     truncate(v.Title, chartTitleLen) + chartTitleTail,
			Views:    views,
			Likes:    likes,
			Comments: comments,
		}
	}
	return points
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// EngagementRate returns likes plus comments as a percentage of views.
func EngagementRate(v models.VideoStatistics) float64 {
	views, ok := ParseCount(v.ViewCount)
	if !ok || views == 0 {
		return 0
	}
	likes, _ := ParseCount(v.LikeCount)
	comments, _ := ParseCount(v.CommentCount)
	return float64(likes+comments) / float64(views) * 100
}

// ChannelFromStatistics builds the comparison card for a channel.
// stats must have passed Validate.
func ChannelFromStatistics(stats *models.ChannelStatistics) models.Channel {
	subscribers, _ := ParseCount(stats.Statistics.SubscriberCount)
	views, _ := ParseCount(stats.Statistics.ViewCount)
	videos, _ := ParseCount(stats.Statistics.VideoCount)
	return models.Channel{
		ID:          stats.ID,
		Title:       stats.Details.Title,
		Description: stats.Details.Description,
		Subscribers: subscribers,
		ViewCount:   views,
		VideoCount:  videos,
		Thumbnail:   stats.Details.ThumbnailURL,
	}
}
