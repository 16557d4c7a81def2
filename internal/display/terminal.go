// Package display renders dashboard pages as plain terminal text.
package display

import (
	"fmt"
	"strings"

	"github.com/yt-insights/dashboard/internal/dashboard"
	"github.com/yt-insights/dashboard/internal/view"
)

const (
	separator     = " • "
	barWidth      = 30
	descMaxLength = 80
)

// TerminalFormatter formats dashboard pages for terminal display.
type TerminalFormatter struct{}

// NewTerminalFormatter creates a new terminal formatter.
func NewTerminalFormatter() *TerminalFormatter {
	return &TerminalFormatter{}
}

// FormatSearch lists matching channels, one per block.
func (f *TerminalFormatter) FormatSearch(page *dashboard.SearchPage) string {
	if page.NoResults() {
		return dashboard.MsgNoResults + "\n"
	}

	var blocks []string
	for _, ch := range page.Channels {
		lines := []string{fmt.Sprintf("%s  (%s)", ch.Title, ch.ID)}
		if ch.Description != "" {
			lines = append(lines, "  "+f.TruncateText(oneLine(ch.Description), descMaxLength))
		}
		blocks = append(blocks, strings.Join(lines, "\n")+"\n")
	}
	return strings.Join(blocks, "\n")
}

// FormatChannel renders the single channel dashboard: headline stats, a
// views chart and the video list.
func (f *TerminalFormatter) FormatChannel(page *dashboard.ChannelPage) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", page.Title)
	if page.Joined != "" {
		fmt.Fprintf(&b, "  Joined %s\n", page.Joined)
	}
	b.WriteString("\n")

	for _, stat := range page.Stats {
		fmt.Fprintf(&b, "  %-22s %s\n", stat.Label, stat.Value)
	}

	if len(page.Chart) > 0 {
		b.WriteString("\nVideo Performance\n")
		b.WriteString(f.formatChart(page.Chart))
	}

	if len(page.Videos) > 0 {
		b.WriteString("\nRecent Videos\n")
		for _, v := range page.Videos {
			b.WriteString(f.formatVideoLine(v))
		}
	}

	if page.NextPageToken != "" {
		fmt.Fprintf(&b, "\nMore videos: --page-token %s\n", page.NextPageToken)
	}
	return b.String()
}

func (f *TerminalFormatter) formatChart(points []view.ChartPoint) string {
	var maxViews int64
	width := 0
	for _, p := range points {
		maxViews = max(maxViews, p.Views)
		width = max(width, len([]rune(p.Name)))
	}

	var b strings.Builder
	for _, p := range points {
		n := 0
		if maxViews > 0 {
			n = int(p.Views * barWidth / maxViews)
		}
		fmt.Fprintf(&b, "  %-*s %s %s\n", width, p.Name, strings.Repeat("█", n), view.FormatCount(p.Views))
	}
	return b.String()
}

func (f *TerminalFormatter) formatVideoLine(v dashboard.VideoCard) string {
	parts := []string{v.Views + " views", v.Likes + " likes", v.Comments + " comments", v.Engagement + " engagement"}
	header := "  " + v.Title
	if v.Duration != "" {
		header += " [" + v.Duration + "]"
	}
	return header + "\n    " + strings.Join(parts, separator) + "\n"
}

// FormatComparison renders the selected channels side by side as columns.
func (f *TerminalFormatter) FormatComparison(page *dashboard.ComparisonPage) string {
	if len(page.Channels) == 0 {
		return "No channels selected.\n"
	}

	rows := [][]string{{""}, {"Subscribers"}, {"Total Views"}, {"Videos"}}
	for _, ch := range page.Channels {
		rows[0] = append(rows[0], ch.Title)
		rows[1] = append(rows[1], view.FormatCount(ch.Subscribers))
		rows[2] = append(rows[2], view.FormatCount(ch.ViewCount))
		rows[3] = append(rows[3], view.FormatCount(ch.VideoCount))
	}

	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], len([]rune(cell)))
		}
	}

	var b strings.Builder
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = fmt.Sprintf("%-*s", widths[i], cell)
		}
		b.WriteString(strings.TrimRight(strings.Join(cells, "  "), " ") + "\n")
	}
	return b.String()
}

// FormatVideo renders a single video's statistics.
func (f *TerminalFormatter) FormatVideo(v *dashboard.VideoCard) string {
	lines := []string{v.Title}
	if v.Description != "" {
		lines = append(lines, "  "+f.TruncateText(oneLine(v.Description), descMaxLength))
	}
	meta := []string{}
	if v.Published != "" {
		meta = append(meta, "published "+v.Published)
	}
	if v.Duration != "" {
		meta = append(meta, v.Duration)
	}
	if len(meta) > 0 {
		lines = append(lines, "  "+strings.Join(meta, separator))
	}
	lines = append(lines,
		fmt.Sprintf("  %s views%s%s likes%s%s comments", v.Views, separator, v.Likes, separator, v.Comments),
		"  engagement "+v.Engagement,
	)
	if v.URL != "" {
		lines = append(lines, "  "+v.URL)
	}
	return strings.Join(lines, "\n") + "\n"
}

// TruncateText truncates text to maxLen runes, adding "..." if truncated.
func (f *TerminalFormatter) TruncateText(text string, maxLen int) string {
	r := []rune(text)
	if len(r) <= maxLen {
		return text
	}
	if maxLen <= 3 {
		return "..."
	}
	return string(r[:maxLen-3]) + "..."
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
