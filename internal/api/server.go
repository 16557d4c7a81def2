package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/yt-insights/dashboard/internal/config"
	"github.com/yt-insights/dashboard/internal/models"
	"google.golang.org/api/youtube/v3"
)

const (
	searchMaxResults = 5
	videosMaxResults = 50
)

// Server represents the analytics API server
type Server struct {
	router   *gin.Engine
	upstream Upstream
}

// NewServer creates a new API server backed by upstream
func NewServer(cfg *config.Config, upstream Upstream) *Server {
	router := gin.Default()
	router.Use(requestID())

	corsConfig := cors.Config{
		AllowOrigins:  cfg.AllowedOrigins,
		AllowMethods:  []string{"GET", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "X-Requested-With", requestIDHeader},
		ExposeHeaders: []string{"Content-Length", requestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 0 {
		corsConfig.AllowOrigins = nil
		corsConfig.AllowAllOrigins = true
	}
	router.Use(cors.New(corsConfig))

	if cfg.CacheTTL > 0 {
		log.Printf("Caching upstream responses for %s", cfg.CacheTTL)
		upstream = NewCachedUpstream(upstream, cfg.CacheTTL)
	}

	server := &Server{
		router:   router,
		upstream: upstream,
	}

	// Setup routes
	server.setupRoutes()

	return server
}

// setupRoutes configures all the routes for the server
func (s *Server) setupRoutes() {
	s.router.GET("/health", healthHandler(time.Now()))

	api := s.router.Group("/api")

	// Channel endpoints
	api.GET("/channels/search", s.searchChannels)
	api.GET("/channels/:id", s.getChannelStatistics)
	api.GET("/channels/:id/videos", s.getChannelVideos)

	// Video endpoints
	api.GET("/videos/:id", s.getVideoStatistics)
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the server on the specified port
func (s *Server) Start(port string) error {
	return s.router.Run(":" + port)
}

// searchChannels handles channel search. A pasted channel URL or @handle is
// resolved directly and returned as the only result.
func (s *Server) searchChannels(c *gin.Context) {
	query := strings.TrimSpace(c.Query("query"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter is required"})
		return
	}
	ctx := c.Request.Context()

	if ref, ok := ParseChannelRef(query); ok {
		log.Printf("[%s] Resolving channel reference %q", requestIDFrom(c), query)
		channel, err := s.upstream.FindChannel(ctx, ref)
		switch {
		case errors.Is(err, ErrNotFound):
			c.JSON(http.StatusOK, models.SearchResponse{Channels: []models.ChannelBasic{}})
		case err != nil:
			s.respondError(c, err)
		default:
			c.JSON(http.StatusOK, models.SearchResponse{Channels: []models.ChannelBasic{channelBasic(channel)}})
		}
		return
	}

	log.Printf("[%s] Searching channels for %q", requestIDFrom(c), query)
	response, err := s.upstream.SearchChannels(ctx, query, searchMaxResults)
	if err != nil {
		s.respondError(c, err)
		return
	}

	channels := make([]models.ChannelBasic, 0, len(response.Items))
	for _, item := range response.Items {
		if item == nil || item.Id == nil || item.Id.ChannelId == "" {
			continue
		}
		ch := models.ChannelBasic{ID: item.Id.ChannelId}
		if item.Snippet != nil {
			ch.Title = item.Snippet.Title
			ch.Description = item.Snippet.Description
			ch.ThumbnailURL = defaultThumbnail(item.Snippet.Thumbnails)
		}
		channels = append(channels, ch)
	}
	c.JSON(http.StatusOK, models.SearchResponse{Channels: channels})
}

// getChannelStatistics handles requests for a channel's counters and details
func (s *Server) getChannelStatistics(c *gin.Context) {
	channelID := c.Param("id")
	log.Printf("[%s] Fetching statistics for channel: %s", requestIDFrom(c), channelID)

	channel, err := s.upstream.GetChannel(c.Request.Context(), channelID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, channelStatistics(channel))
}

// getChannelVideos handles requests for one page of a channel's videos
func (s *Server) getChannelVideos(c *gin.Context) {
	channelID := c.Param("id")
	pageToken := c.Query("pageToken")
	ctx := c.Request.Context()
	log.Printf("[%s] Fetching videos for channel: %s", requestIDFrom(c), channelID)

	search, err := s.upstream.SearchChannelVideos(ctx, channelID, pageToken, videosMaxResults)
	if err != nil {
		s.respondError(c, err)
		return
	}

	var videoIDs []string
	for _, item := range search.Items {
		if item != nil && item.Id != nil && item.Id.VideoId != "" {
			videoIDs = append(videoIDs, item.Id.VideoId)
		}
	}

	response := models.ChannelVideosResponse{
		Videos:        []models.VideoStatistics{},
		NextPageToken: search.NextPageToken,
	}
	if search.PageInfo != nil {
		response.TotalResults = search.PageInfo.TotalResults
	}

	if len(videoIDs) > 0 {
		details, err := s.upstream.ListVideos(ctx, videoIDs)
		if err != nil {
			s.respondError(c, err)
			return
		}
		response.Videos = orderedVideos(videoIDs, details)
	}

	c.JSON(http.StatusOK, response)
}

// getVideoStatistics handles requests for a single video in platform shape
func (s *Server) getVideoStatistics(c *gin.Context) {
	videoID := c.Param("id")
	log.Printf("[%s] Fetching statistics for video: %s", requestIDFrom(c), videoID)

	videos, err := s.upstream.ListVideos(c.Request.Context(), []string{videoID})
	if err != nil {
		s.respondError(c, err)
		return
	}
	if len(videos) == 0 || videos[0] == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "video not found"})
		return
	}
	c.JSON(http.StatusOK, rawVideo(videos[0]))
}

func (s *Server) respondError(c *gin.Context, err error) {
	log.Printf("[%s] Error: %v", requestIDFrom(c), err)
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
}

func channelBasic(channel *youtube.Channel) models.ChannelBasic {
	ch := models.ChannelBasic{ID: channel.Id}
	if channel.Snippet != nil {
		ch.Title = channel.Snippet.Title
		ch.Description = channel.Snippet.Description
		ch.ThumbnailURL = defaultThumbnail(channel.Snippet.Thumbnails)
	}
	return ch
}

func channelStatistics(channel *youtube.Channel) models.ChannelStatistics {
	counts := &models.ChannelCounts{SubscriberCount: "0", VideoCount: "0", ViewCount: "0"}
	if st := channel.Statistics; st != nil {
		counts.SubscriberCount = formatUint(st.SubscriberCount)
		counts.VideoCount = formatUint(st.VideoCount)
		counts.ViewCount = formatUint(st.ViewCount)
	}

	details := &models.ChannelDetails{}
	if sn := channel.Snippet; sn != nil {
		details.Title = sn.Title
		details.Description = sn.Description
		details.PublishedAt = sn.PublishedAt
		details.ThumbnailURL = defaultThumbnail(sn.Thumbnails)
	}

	return models.ChannelStatistics{
		ID:         channel.Id,
		Statistics: counts,
		Details:    details,
	}
}

// orderedVideos converts video details, keeping the order of ids, which is
// the platform's ranking from the search call
func orderedVideos(ids []string, details []*youtube.Video) []models.VideoStatistics {
	byID := make(map[string]*youtube.Video, len(details))
	for _, v := range details {
		if v != nil {
			byID[v.Id] = v
		}
	}

	videos := make([]models.VideoStatistics, 0, len(details))
	for _, id := range ids {
		v, ok := byID[id]
		if !ok {
			continue
		}
		video := models.VideoStatistics{ID: v.Id, VideoURL: models.WatchURL(v.Id)}
		if v.Snippet != nil {
			video.Title = v.Snippet.Title
			video.Description = v.Snippet.Description
			video.PublishedAt = v.Snippet.PublishedAt
			video.ThumbnailURL = defaultThumbnail(v.Snippet.Thumbnails)
		}
		if v.Statistics != nil {
			video.ViewCount = formatUint(v.Statistics.ViewCount)
			video.LikeCount = formatUint(v.Statistics.LikeCount)
			video.CommentCount = formatUint(v.Statistics.CommentCount)
		}
		if v.ContentDetails != nil {
			video.Duration = v.ContentDetails.Duration
		}
		videos = append(videos, video)
	}
	return videos
}

func rawVideo(v *youtube.Video) models.RawVideo {
	raw := models.RawVideo{ID: v.Id}
	if st := v.Statistics; st != nil {
		raw.Statistics = &models.RawVideoStatistics{
			ViewCount:    formatUint(st.ViewCount),
			LikeCount:    formatUint(st.LikeCount),
			CommentCount: formatUint(st.CommentCount),
		}
	}
	if sn := v.Snippet; sn != nil {
		raw.Snippet = &models.RawVideoSnippet{
			Title:       sn.Title,
			Description: sn.Description,
			PublishedAt: sn.PublishedAt,
		}
		if t := sn.Thumbnails; t != nil {
			raw.Snippet.Thumbnails = &models.Thumbnails{
				Default: thumbnail(t.Default),
				High:    thumbnail(t.High),
				Maxres:  thumbnail(t.Maxres),
			}
		}
	}
	if v.ContentDetails != nil {
		raw.Duration = v.ContentDetails.Duration
	}
	return raw
}

func thumbnail(t *youtube.Thumbnail) *models.Thumbnail {
	if t == nil {
		return nil
	}
	return &models.Thumbnail{URL: t.Url}
}

func defaultThumbnail(t *youtube.ThumbnailDetails) string {
	if t == nil || t.Default == nil {
		return ""
	}
	return t.Default.Url
}

func formatUint(n uint64) string {
	return strconv.FormatUint(n, 10)
}
