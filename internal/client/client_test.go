package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(server.URL + "/api/")
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func TestSearchChannels_ReturnsChannels(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/channels/search" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("query"); got != "go lang" {
			t.Errorf("expected query %q, got %q", "go lang", got)
		}
		writeJSON(w, http.StatusOK, `{"channels":[{"id":"UC1","title":"Go","description":"d","thumbnailUrl":"https://img/1.jpg"}]}`)
	})

	channels, err := client.SearchChannels(context.Background(), "go lang")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(channels) != 1 || channels[0].ID != "UC1" || channels[0].ThumbnailURL != "https://img/1.jpg" {
		t.Fatalf("unexpected channels %+v", channels)
	}
}

func TestSearchChannels_EmptyResultIsNotAnError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"channels":[]}`)
	})

	channels, err := client.SearchChannels(context.Background(), "nothing")
	if err != nil {
		t.Fatalf("empty result should not be an error, got %v", err)
	}
	if channels == nil || len(channels) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", channels)
	}
}

func TestSearchChannels_MissingChannelsKeyIsDecodeError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{}`)
	})

	_, err := client.SearchChannels(context.Background(), "x")
	if !errors.Is(err, ErrDecode) {
		t.Fatalf("expected decode error, got %v", err)
	}
}

func TestClient_Non2xxIsNetworkError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadGateway, `{"error":"upstream quota exceeded"}`)
	})

	_, err := client.SearchChannels(context.Background(), "x")
	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("expected network error, got %v", err)
	}
	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected *NetworkError, got %T", err)
	}
	if netErr.StatusCode != http.StatusBadGateway {
		t.Errorf("expected status 502, got %d", netErr.StatusCode)
	}
	if !strings.Contains(err.Error(), "upstream quota exceeded") {
		t.Errorf("error should carry API message, got %q", err.Error())
	}
}

func TestClient_UnreachableIsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := New(url).GetChannelStatistics(context.Background(), "UC1")
	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("expected network error, got %v", err)
	}
}

func TestClient_MalformedJSONIsDecodeError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"channels":[`)
	})

	_, err := client.SearchChannels(context.Background(), "x")
	if !errors.Is(err, ErrDecode) {
		t.Fatalf("expected decode error, got %v", err)
	}
}

func TestGetChannelStatistics_Strict(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{
			name: "complete",
			body: `{"id":"UC1","statistics":{"subscriberCount":"10","videoCount":"2","viewCount":"300"},"details":{"title":"T","description":"D","publishedAt":"2020-01-01T00:00:00Z","thumbnailUrl":"u"}}`,
		},
		{
			name:    "missing statistics",
			body:    `{"id":"UC1","details":{"title":"T"}}`,
			wantErr: true,
		},
		{
			name:    "missing details",
			body:    `{"id":"UC1","statistics":{"subscriberCount":"10","videoCount":"2","viewCount":"300"}}`,
			wantErr: true,
		},
		{
			name:    "missing counter",
			body:    `{"id":"UC1","statistics":{"subscriberCount":"10","viewCount":"300"},"details":{}}`,
			wantErr: true,
		},
		{
			name:    "non numeric counter",
			body:    `{"id":"UC1","statistics":{"subscriberCount":"lots","videoCount":"2","viewCount":"300"},"details":{}}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api/channels/UC1" {
					t.Errorf("unexpected path %q", r.URL.Path)
				}
				writeJSON(w, http.StatusOK, tt.body)
			})

			stats, err := client.GetChannelStatistics(context.Background(), "UC1")
			if tt.wantErr {
				if !errors.Is(err, ErrDecode) {
					t.Fatalf("expected decode error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if stats.Statistics.ViewCount != "300" || stats.Details.Title != "T" {
				t.Errorf("unexpected stats %+v", stats)
			}
		})
	}
}

func TestGetChannelVideos_PageTokenPassthrough(t *testing.T) {
	var gotQuery string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/channels/UC1/videos" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		gotQuery = r.URL.RawQuery
		writeJSON(w, http.StatusOK, `{"videos":[{"id":"v1","title":"one","viewCount":"5"}],"nextPageToken":"NEXT","totalResults":120}`)
	})

	resp, err := client.GetChannelVideos(context.Background(), "UC1", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotQuery != "" {
		t.Errorf("first page should not send a pageToken, got %q", gotQuery)
	}
	if resp.NextPageToken != "NEXT" || resp.TotalResults != 120 || len(resp.Videos) != 1 {
		t.Fatalf("unexpected response %+v", resp)
	}
	if resp.Videos[0].VideoURL != "https://www.youtube.com/watch?v=v1" {
		t.Errorf("unexpected video url %q", resp.Videos[0].VideoURL)
	}

	if _, err := client.GetChannelVideos(context.Background(), "UC1", "CAUQAA=="); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotQuery != "pageToken=CAUQAA%3D%3D" {
		t.Errorf("token should be passed through, got query %q", gotQuery)
	}
}

func TestGetChannelVideos_MissingVideosIsDecodeError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"totalResults":0}`)
	})

	_, err := client.GetChannelVideos(context.Background(), "UC1", "")
	if !errors.Is(err, ErrDecode) {
		t.Fatalf("expected decode error, got %v", err)
	}
}

func TestGetVideoStatistics_Normalizes(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/videos/v1" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		writeJSON(w, http.StatusOK, `{
			"id": "v1",
			"statistics": {"viewCount": "1500", "likeCount": "20"},
			"snippet": {"title": "Intro", "publishedAt": "2024-01-01T00:00:00Z",
				"thumbnails": {"default": {"url": "https://img/v1.jpg"}}},
			"duration": "PT4M5S"
		}`)
	})

	video, err := client.GetVideoStatistics(context.Background(), "v1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if video.ViewCount != "1500" || video.LikeCount != "20" {
		t.Errorf("unexpected counters %+v", video)
	}
	if video.CommentCount != "0" {
		t.Errorf("missing commentCount should default to \"0\", got %q", video.CommentCount)
	}
	if video.Description != "" {
		t.Errorf("missing description should default to empty, got %q", video.Description)
	}
	if video.ThumbnailURL != "https://img/v1.jpg" || video.Duration != "PT4M5S" {
		t.Errorf("unexpected video %+v", video)
	}
	if video.VideoURL != "https://www.youtube.com/watch?v=v1" {
		t.Errorf("unexpected video url %q", video.VideoURL)
	}
}

func TestGetVideoStatistics_MissingThumbnailsYieldsEmptyURL(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"id":"v1","statistics":{},"snippet":{"title":"No thumbs"}}`)
	})

	video, err := client.GetVideoStatistics(context.Background(), "v1")
	if err != nil {
		t.Fatalf("missing thumbnails should not fail, got %v", err)
	}
	if video.ThumbnailURL != "" {
		t.Errorf("expected empty thumbnail url, got %q", video.ThumbnailURL)
	}
	if video.ViewCount != "0" || video.LikeCount != "0" {
		t.Errorf("missing counters should default to \"0\", got %+v", video)
	}
}

func TestGetVideoStatistics_MissingObjectsAreDecodeErrors(t *testing.T) {
	for name, body := range map[string]string{
		"no statistics": `{"id":"v1","snippet":{"title":"x"}}`,
		"no snippet":    `{"id":"v1","statistics":{"viewCount":"1"}}`,
	} {
		t.Run(name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusOK, body)
			})

			_, err := client.GetVideoStatistics(context.Background(), "v1")
			if !errors.Is(err, ErrDecode) {
				t.Fatalf("expected decode error, got %v", err)
			}
		})
	}
}
