package main

import (
	"context"
	"log"

	"github.com/yt-insights/dashboard/internal/api"
	"github.com/yt-insights/dashboard/internal/config"
)

func main() {
	// Load environment variables from .env file
	config.LoadEnvFile()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize YouTube API
	youtubeAPI, err := api.NewYouTubeAPI(context.Background(), cfg.YouTubeAPIKey)
	if err != nil {
		log.Fatalf("Failed to initialize YouTube API: %v", err)
	}

	server := api.NewServer(cfg, youtubeAPI)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := server.Start(cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
