package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
)

// runCLI executes the root command in process against a fake analytics API.
func runCLI(t *testing.T, handler http.HandlerFunc, args ...string) (string, error) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--api-url", server.URL + "/api"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func TestCLI_Version(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--version"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "dashboard version "+version) {
		t.Errorf("unexpected version output %q", out.String())
	}
}

func TestCLI_Search(t *testing.T) {
	out, err := runCLI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/channels/search" || r.URL.Query().Get("query") != "gophers" {
			t.Errorf("unexpected request %s", r.URL)
		}
		writeJSON(w, http.StatusOK, `{"channels":[{"id":"UC1","title":"Gophers","description":"Go","thumbnailUrl":""}]}`)
	}, "search", "gophers")

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Gophers  (UC1)") {
		t.Errorf("user should see the channel, got %q", out)
	}
}

func TestCLI_SearchFailureShowsMessage(t *testing.T) {
	_, err := runCLI(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadGateway, `{"error":"quota"}`)
	}, "search", "gophers")

	if err == nil || err.Error() != "Failed to search channels" {
		t.Fatalf("expected user-facing search error, got %v", err)
	}
}

func TestCLI_ChannelForwardsPageToken(t *testing.T) {
	var gotToken string
	out, err := runCLI(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/channels/UC1":
			writeJSON(w, http.StatusOK, `{"id":"UC1","statistics":{"subscriberCount":"1000","videoCount":"4","viewCount":"400"},"details":{"title":"Gophers","publishedAt":"2012-05-01T00:00:00Z"}}`)
		case "/api/channels/UC1/videos":
			gotToken = r.URL.Query().Get("pageToken")
			writeJSON(w, http.StatusOK, `{"videos":[{"id":"v1","title":"Intro","viewCount":"100","likeCount":"1","commentCount":"1","duration":"PT3M"}],"totalResults":4}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}, "channel", "UC1", "--page-token", "P2")

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotToken != "P2" {
		t.Errorf("page token should be forwarded, got %q", gotToken)
	}
	for _, want := range []string{"Gophers", "1.0K", "Intro [3:00]"} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q, got:\n%s", want, out)
		}
	}
}

func TestCLI_CompareIgnoresThirdChannel(t *testing.T) {
	var (
		mu        sync.Mutex
		requested []string
	)
	out, err := runCLI(t, func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/api/channels/")
		mu.Lock()
		requested = append(requested, id)
		mu.Unlock()
		writeJSON(w, http.StatusOK, `{"id":"`+id+`","statistics":{"subscriberCount":"10","videoCount":"1","viewCount":"100"},"details":{"title":"Channel `+id+`"}}`)
	}, "compare", "a", "b", "c")

	if err != nil {
		t.Fatalf("a third channel should be ignored silently, got %v", err)
	}
	sort.Strings(requested)
	if strings.Join(requested, ",") != "a,b" {
		t.Errorf("expected only a and b to be fetched, got %v", requested)
	}
	if !strings.Contains(out, "Channel a") || !strings.Contains(out, "Channel b") {
		t.Errorf("both selected channels should be shown, got:\n%s", out)
	}
	if strings.Contains(out, "Channel c") || strings.Contains(out, "Error") || strings.Contains(out, "Usage") {
		t.Errorf("third channel or an error leaked into output:\n%s", out)
	}
}

func TestCLI_Video(t *testing.T) {
	out, err := runCLI(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"id":"v1","statistics":{"viewCount":"200","likeCount":"10"},"snippet":{"title":"Deep dive"}}`)
	}, "video", "v1")

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"Deep dive", "engagement 5.0%", "https://www.youtube.com/watch?v=v1"} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q, got:\n%s", want, out)
		}
	}
}
