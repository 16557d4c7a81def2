// Package main provides the dashboard entry point: a web server plus
// terminal commands for the same screens.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/yt-insights/dashboard/internal/client"
	"github.com/yt-insights/dashboard/internal/config"
	"github.com/yt-insights/dashboard/internal/dashboard"
	"github.com/yt-insights/dashboard/internal/display"
	"github.com/yt-insights/dashboard/internal/view"
	"github.com/yt-insights/dashboard/internal/web"
)

var version = "0.1.0"

func main() {
	config.LoadEnvFile()
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// options are the flags shared by every subcommand.
type options struct {
	apiURL string
}

// newRootCmd creates the root command for the dashboard CLI.
func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:     "dashboard",
		Short:   "YouTube channel analytics dashboard",
		Long:    "Search YouTube channels, inspect their statistics and recent videos, and compare two channels side by side.",
		Version: version,
	}
	rootCmd.SetVersionTemplate("dashboard version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&opts.apiURL, "api-url", "", "Analytics API base URL (default from API_BASE_URL)")

	rootCmd.AddCommand(newServeCmd(opts))
	rootCmd.AddCommand(newSearchCmd(opts))
	rootCmd.AddCommand(newChannelCmd(opts))
	rootCmd.AddCommand(newCompareCmd(opts))
	rootCmd.AddCommand(newVideoCmd(opts))

	return rootCmd
}

// setup loads configuration and builds the API client, honoring --api-url.
func (o *options) setup() (*config.Config, *client.Client, error) {
	cfg, err := config.LoadDashboard()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	baseURL := cfg.APIBaseURL
	if o.apiURL != "" {
		baseURL = o.apiURL
	}
	return cfg, client.New(baseURL, client.WithTimeout(cfg.RequestTimeout)), nil
}

// newServeCmd creates the serve subcommand.
func newServeCmd(opts *options) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, c, err := opts.setup()
			if err != nil {
				return err
			}
			if port == "" {
				port = cfg.DashboardPort
			}
			log.Printf("Dashboard starting on port %s", port)
			return web.NewServer(c).Start(port)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "Port for the web dashboard (default from DASHBOARD_PORT)")

	return cmd
}

// newSearchCmd creates the search subcommand.
func newSearchCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search channels by name, URL or @handle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, c, err := opts.setup()
			if err != nil {
				return err
			}
			page, err := dashboard.NewService(c).Search(cmd.Context(), args[0])
			if err != nil {
				return failure(dashboard.MsgSearchFailed, err)
			}
			fmt.Fprint(cmd.OutOrStdout(), display.NewTerminalFormatter().FormatSearch(page))
			return nil
		},
	}
}

// newChannelCmd creates the channel subcommand.
func newChannelCmd(opts *options) *cobra.Command {
	var pageToken string

	cmd := &cobra.Command{
		Use:   "channel <channel-id>",
		Short: "Show a channel's statistics and recent videos",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, c, err := opts.setup()
			if err != nil {
				return err
			}
			page, err := dashboard.NewService(c).Channel(cmd.Context(), args[0], pageToken)
			if err != nil {
				return failure(dashboard.MsgChannelFailed, err)
			}
			fmt.Fprint(cmd.OutOrStdout(), display.NewTerminalFormatter().FormatChannel(page))
			return nil
		},
	}

	cmd.Flags().StringVar(&pageToken, "page-token", "", "Continuation token for the next page of videos")

	return cmd
}

// newCompareCmd creates the compare subcommand.
func newCompareCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "compare <channel-id> <channel-id>",
		Short: "Compare two channels side by side",
		Long:  "Compare two channels side by side. Ids past the second are ignored.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, c, err := opts.setup()
			if err != nil {
				return err
			}
			sel := &view.Selection{}
			for _, id := range args {
				sel.Add(id) // full selections drop the rest
			}
			page, err := dashboard.NewService(c).Compare(cmd.Context(), sel)
			fmt.Fprint(cmd.OutOrStdout(), display.NewTerminalFormatter().FormatComparison(page))
			if err != nil {
				return failure(dashboard.MsgCompareFailed, err)
			}
			return nil
		},
	}
}

// newVideoCmd creates the video subcommand.
func newVideoCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "video <video-id>",
		Short: "Show a single video's statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, c, err := opts.setup()
			if err != nil {
				return err
			}
			card, err := dashboard.NewService(c).Video(cmd.Context(), args[0])
			if err != nil {
				return failure(dashboard.MsgVideoFailed, err)
			}
			fmt.Fprint(cmd.OutOrStdout(), display.NewTerminalFormatter().FormatVideo(card))
			return nil
		},
	}
}

// failure logs the cause and returns the user-facing message as the error.
func failure(msg string, err error) error {
	dashboard.LogFailure(msg, err)
	return errors.New(msg)
}
