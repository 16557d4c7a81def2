// Package web serves the browser dashboard: channel search, the single
// channel view, the comparison view and per-video statistics.
package web

import (
	"embed"
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yt-insights/dashboard/internal/dashboard"
	"github.com/yt-insights/dashboard/internal/models"
	"github.com/yt-insights/dashboard/internal/view"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const (
	themeCookie = "theme"
	themeLight  = "light"
	themeDark   = "dark"

	// Client hint carrying the browser's color scheme preference.
	colorSchemeHint = "Sec-CH-Prefers-Color-Scheme"
)

// Server is the dashboard web server.
type Server struct {
	router  *gin.Engine
	service *dashboard.Service
}

// NewServer creates the dashboard server on top of a data client.
func NewServer(client dashboard.DataClient) *Server {
	router := gin.Default()
	router.SetHTMLTemplate(template.Must(template.New("").ParseFS(templateFS, "templates/*.tmpl")))

	s := &Server{
		router:  router,
		service: dashboard.NewService(client),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	s.router.GET("/", s.home)
	s.router.GET("/comparison", s.comparison)
	s.router.GET("/videos/:id", s.video)
	s.router.POST("/theme", s.toggleTheme)
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the server on the specified port
func (s *Server) Start(port string) error {
	return s.router.Run(":" + port)
}

// pageData is the root object every template receives.
type pageData struct {
	Theme string
	Nav   string
	State view.State
	Query string
	Error string

	Search     *dashboard.SearchPage
	Channel    *dashboard.ChannelPage
	Chart      []chartRow
	Comparison *comparisonView
	Video      *dashboard.VideoCard
}

type chartRow struct {
	view.ChartPoint
	Pct int
}

type searchResult struct {
	models.ChannelBasic
	AddURL   string
	Selected bool
}

type comparisonCard struct {
	ID          string
	Title       string
	Thumbnail   string
	Subscribers string
	Views       string
	Videos      string
	RemoveURL   string
}

type comparisonView struct {
	Selected string
	Results  []searchResult
	Cards    []comparisonCard
	Full     bool
}

// newPage starts the page data. Without a theme cookie Theme stays empty
// and the stylesheet follows prefers-color-scheme.
func (s *Server) newPage(c *gin.Context, nav string) pageData {
	c.Header("Accept-CH", colorSchemeHint)
	c.Header("Vary", colorSchemeHint)
	return pageData{Theme: currentTheme(c), Nav: nav}
}

func currentTheme(c *gin.Context) string {
	theme, _ := c.Cookie(themeCookie)
	if theme == themeLight || theme == themeDark {
		return theme
	}
	return ""
}

// home renders the search screen, or the channel dashboard when a channel is selected.
func (s *Server) home(c *gin.Context) {
	data := s.newPage(c, "home")
	data.Query = strings.TrimSpace(c.Query("q"))
	data.State = view.HomeState(data.Query, c.Query("channel"))
	ctx := c.Request.Context()

	switch data.State.Kind {
	case view.StateDetail:
		page, err := s.service.Channel(ctx, data.State.ChannelID, c.Query("pageToken"))
		if err != nil {
			dashboard.LogFailure(dashboard.MsgChannelFailed, err)
			data.Error = dashboard.MsgChannelFailed
			break
		}
		data.Channel = page
		data.Chart = chartRows(page.Chart)
	case view.StateSearching:
		page, err := s.service.Search(ctx, data.Query)
		if err != nil {
			dashboard.LogFailure(dashboard.MsgSearchFailed, err)
			data.Error = dashboard.MsgSearchFailed
			break
		}
		data.Search = page
	}

	c.HTML(http.StatusOK, "home.tmpl", data)
}

// comparison renders up to two channels side by side plus a search box to pick them.
func (s *Server) comparison(c *gin.Context) {
	data := s.newPage(c, "comparison")
	data.Query = strings.TrimSpace(c.Query("q"))
	data.State = view.Comparison(data.Query)
	ctx := c.Request.Context()

	sel := view.ParseSelection(c.Query("selected"))
	cv := &comparisonView{Selected: sel.String(), Full: sel.Full()}

	if sel.Len() > 0 {
		page, err := s.service.Compare(ctx, sel)
		if err != nil {
			dashboard.LogFailure(dashboard.MsgCompareFailed, err)
			data.Error = dashboard.MsgCompareFailed
		}
		for _, ch := range page.Channels {
			cv.Cards = append(cv.Cards, comparisonCard{
				ID:          ch.ID,
				Title:       ch.Title,
				Thumbnail:   ch.Thumbnail,
				Subscribers: view.FormatCount(ch.Subscribers),
				Views:       view.FormatCount(ch.ViewCount),
				Videos:      view.FormatCount(ch.VideoCount),
				RemoveURL:   comparisonURL(data.Query, sel.Without(ch.ID)),
			})
		}
	}

	if data.Query != "" {
		page, err := s.service.Search(ctx, data.Query)
		if err != nil {
			dashboard.LogFailure(dashboard.MsgSearchFailed, err)
			if data.Error == "" {
				data.Error = dashboard.MsgSearchFailed
			}
		} else {
			data.Search = page
			for _, ch := range page.Channels {
				cv.Results = append(cv.Results, searchResult{
					ChannelBasic: ch,
					AddURL:       comparisonURL(data.Query, sel.With(ch.ID)),
					Selected:     sel.Contains(ch.ID),
				})
			}
		}
	}

	data.Comparison = cv
	c.HTML(http.StatusOK, "comparison.tmpl", data)
}

// video renders the statistics panel for a single video.
func (s *Server) video(c *gin.Context) {
	data := s.newPage(c, "home")
	card, err := s.service.Video(c.Request.Context(), c.Param("id"))
	if err != nil {
		dashboard.LogFailure(dashboard.MsgVideoFailed, err)
		data.Error = dashboard.MsgVideoFailed
	} else {
		data.Video = card
	}
	c.HTML(http.StatusOK, "video.tmpl", data)
}

// toggleTheme flips between light and dark and sends the user back. With
// no cookie yet it flips the browser's preferred scheme.
func (s *Server) toggleTheme(c *gin.Context) {
	theme := currentTheme(c)
	if theme == "" && strings.Trim(c.GetHeader(colorSchemeHint), `"`) == themeDark {
		theme = themeDark
	}
	next := themeDark
	if theme == themeDark {
		next = themeLight
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(themeCookie, next, 0, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, backTo(c.Request.Referer()))
}

// backTo keeps redirects on this site by dropping scheme and host. A path
// starting with "//" would be read as another host and is refused.
func backTo(referer string) string {
	u, err := url.Parse(referer)
	if err != nil || referer == "" {
		return "/"
	}
	p := u.RequestURI()
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") {
		return "/"
	}
	return p
}

func comparisonURL(query string, sel *view.Selection) string {
	params := url.Values{}
	if query != "" {
		params.Set("q", query)
	}
	if sel.Len() > 0 {
		params.Set("selected", sel.String())
	}
	if len(params) == 0 {
		return "/comparison"
	}
	return "/comparison?" + params.Encode()
}

func chartRows(points []view.ChartPoint) []chartRow {
	var maxViews int64
	for _, p := range points {
		maxViews = max(maxViews, p.Views)
	}
	rows := make([]chartRow, len(points))
	for i, p := range points {
		rows[i] = chartRow{ChartPoint: p}
		if maxViews > 0 {
			rows[i].Pct = int(p.Views * 100 / maxViews)
		}
	}
	return rows
}
