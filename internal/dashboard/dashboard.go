// Package dashboard loads the data behind each dashboard screen and shapes
// it into render-ready pages shared by the web and terminal front ends.
package dashboard

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/yt-insights/dashboard/internal/models"
	"github.com/yt-insights/dashboard/internal/view"
)

// User-visible failure messages, one per screen.
const (
	MsgSearchFailed  = "Failed to search channels"
	MsgChannelFailed = "Failed to fetch channel data"
	MsgCompareFailed = "Failed to get channel statistics"
	MsgVideoFailed   = "Failed to fetch video statistics"
	MsgNoResults     = "No channels found matching your search"
)

// DataClient is the read-only API the dashboard consumes.
type DataClient interface {
	SearchChannels(ctx context.Context, query string) ([]models.ChannelBasic, error)
	GetChannelStatistics(ctx context.Context, channelID string) (*models.ChannelStatistics, error)
	GetChannelVideos(ctx context.Context, channelID, pageToken string) (*models.ChannelVideosResponse, error)
	GetVideoStatistics(ctx context.Context, videoID string) (*models.VideoStatistics, error)
}

// Service builds dashboard pages from a DataClient.
type Service struct {
	client DataClient
}

func NewService(client DataClient) *Service {
	return &Service{client: client}
}

// StatCard is one headline figure on the channel dashboard.
type StatCard struct {
	Label string
	Value string
}

// VideoCard is one video in a grid, with every figure already formatted.
type VideoCard struct {
	ID           string
	Title        string
	Description  string
	ThumbnailURL string
	URL          string
	Published    string
	Duration     string
	Views        string
	Likes        string
	Comments     string
	Engagement   string
}

// SearchPage is the result of a channel search.
type SearchPage struct {
	Query    string
	Channels []models.ChannelBasic
}

// NoResults reports whether the search ran and matched nothing.
func (p *SearchPage) NoResults() bool {
	return p.Query != "" && len(p.Channels) == 0
}

// ChannelPage is the single-channel dashboard.
type ChannelPage struct {
	ChannelID     string
	Title         string
	Description   string
	ThumbnailURL  string
	Joined        string
	Stats         []StatCard
	Chart         []view.ChartPoint
	Videos        []VideoCard
	PageToken     string
	NextPageToken string
	TotalResults  int64
}

// ComparisonPage holds the channels picked for side by side comparison.
type ComparisonPage struct {
	Selection *view.Selection
	Channels  []models.Channel
}

// Search runs a channel search. An empty result is not an error.
func (s *Service) Search(ctx context.Context, query string) (*SearchPage, error) {
	channels, err := s.client.SearchChannels(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	return &SearchPage{Query: query, Channels: channels}, nil
}

// Channel loads statistics and one page of videos concurrently. Both must
// succeed; a failure in either fails the whole page.
func (s *Service) Channel(ctx context.Context, channelID, pageToken string) (*ChannelPage, error) {
	var (
		stats  *models.ChannelStatistics
		videos *models.ChannelVideosResponse
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats, err = s.client.GetChannelStatistics(gctx, channelID)
		return err
	})
	g.Go(func() error {
		var err error
		videos, err = s.client.GetChannelVideos(gctx, channelID, pageToken)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load channel %s: %w", channelID, err)
	}

	page := &ChannelPage{
		ChannelID:    stats.ID,
		Title:        stats.Details.Title,
		Description:  stats.Details.Description,
		ThumbnailURL: stats.Details.ThumbnailURL,
		Joined:       view.FormatDate(stats.Details.PublishedAt),
		Stats: []StatCard{
			{Label: "Subscribers", Value: view.FormatNumber(stats.Statistics.SubscriberCount)},
			{Label: "Total Views", Value: view.FormatNumber(stats.Statistics.ViewCount)},
			{Label: "Videos", Value: view.FormatNumber(stats.Statistics.VideoCount)},
			{Label: "Avg. Views per Video", Value: view.FormatAverageViews(stats.Statistics.ViewCount, stats.Statistics.VideoCount)},
		},
		Chart:         view.ChartData(videos.Videos),
		Videos:        make([]VideoCard, 0, len(videos.Videos)),
		PageToken:     pageToken,
		NextPageToken: videos.NextPageToken,
		TotalResults:  videos.TotalResults,
	}
	if page.ChannelID == "" {
		page.ChannelID = channelID
	}
	for _, v := range videos.Videos {
		page.Videos = append(page.Videos, NewVideoCard(v))
	}
	return page, nil
}

// Compare loads every selected channel concurrently. Channels that loaded
// are returned in selection order even when another one failed, together
// with the first error.
func (s *Service) Compare(ctx context.Context, sel *view.Selection) (*ComparisonPage, error) {
	ids := sel.IDs()
	results := make([]*models.ChannelStatistics, len(ids))

	var g errgroup.Group
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			stats, err := s.client.GetChannelStatistics(ctx, id)
			if err != nil {
				return fmt.Errorf("compare channel %s: %w", id, err)
			}
			results[i] = stats
			return nil
		})
	}
	err := g.Wait()

	page := &ComparisonPage{Selection: sel}
	for _, stats := range results {
		if stats != nil {
			page.Channels = append(page.Channels, view.ChannelFromStatistics(stats))
		}
	}
	return page, err
}

// Video loads a single video's statistics.
func (s *Service) Video(ctx context.Context, videoID string) (*VideoCard, error) {
	v, err := s.client.GetVideoStatistics(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("load video %s: %w", videoID, err)
	}
	card := NewVideoCard(*v)
	return &card, nil
}

// NewVideoCard formats a video for display.
func NewVideoCard(v models.VideoStatistics) VideoCard {
	url := v.VideoURL
	if url == "" {
		url = models.WatchURL(v.ID)
	}
	return VideoCard{
		ID:           v.ID,
		Title:        v.Title,
		Description:  v.Description,
		ThumbnailURL: v.ThumbnailURL,
		URL:          url,
		Published:    view.FormatDate(v.PublishedAt),
		Duration:     view.FormatDuration(v.Duration),
		Views:        view.FormatNumber(v.ViewCount),
		Likes:        view.FormatNumber(v.LikeCount),
		Comments:     view.FormatNumber(v.CommentCount),
		Engagement:   view.FormatPercent(view.EngagementRate(v)),
	}
}

// LogFailure records err for the operator; callers show msg to the user.
func LogFailure(msg string, err error) {
	log.Printf("%s: %v", msg, err)
}
