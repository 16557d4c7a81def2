// Package view holds the derived logic behind the dashboard pages: number
// and duration formatting, averages, chart shaping and the comparison
// selection.
package view

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// NotAvailable is rendered wherever a value cannot be computed.
const NotAvailable = "N/A"

// FormatNumber renders a decimal count string in compact form.
func FormatNumber(s string) string {
	n, ok := ParseCount(s)
	if !ok {
		return NotAvailable
	}
	return FormatCount(n)
}

// FormatCount renders n as "X.XB", "X.XM", "X.XK" or the plain integer.
func FormatCount(n int64) string {
	switch {
	case n >= 1e9:
		return fmt.Sprintf("%.1fB", float64(n)/1e9)
	case n >= 1e6:
		return fmt.Sprintf("%.1fM", float64(n)/1e6)
	case n >= 1e3:
		return fmt.Sprintf("%.1fK", float64(n)/1e3)
	default:
		return strconv.FormatInt(n, 10)
	}
}

// ParseCount parses a decimal count string as a 64-bit integer.
func ParseCount(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// AverageViews returns round(views/videos). ok is false when videoCount is
// zero or either count is not numeric.
func AverageViews(viewCount, videoCount string) (avg int64, ok bool) {
	views, ok := ParseCount(viewCount)
	if !ok {
		return 0, false
	}
	videos, ok := ParseCount(videoCount)
	if !ok || videos == 0 {
		return 0, false
	}
	return int64(math.Round(float64(views) / float64(videos))), true
}

// FormatAverageViews renders AverageViews, or NotAvailable.
func FormatAverageViews(viewCount, videoCount string) string {
	avg, ok := AverageViews(viewCount, videoCount)
	if !ok {
		return NotAvailable
	}
	return FormatCount(avg)
}

var isoDuration = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$`)

// FormatDuration turns an ISO-8601 duration such as "PT1H2M3S" into
// "1:02:03". Anything it cannot parse is returned unchanged.
func FormatDuration(iso string) string {
	m := isoDuration.FindStringSubmatch(iso)
	if m == nil || iso == "P" || strings.HasSuffix(iso, "T") {
		return iso
	}

	var parts [4]int64
	for i, s := range m[1:] {
		if s == "" {
			continue
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return iso
		}
		parts[i] = n
	}
	days, hours, minutes, seconds := parts[0], parts[1], parts[2], parts[3]

	total := ((days*24+hours)*60+minutes)*60 + seconds
	h, m2, s := total/3600, (total%3600)/60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m2, s)
	}
	return fmt.Sprintf("%d:%02d", m2, s)
}

// FormatDate renders an RFC 3339 timestamp as a calendar date.
func FormatDate(ts string) string {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ts
	}
	return t.Format("Jan 2, 2006")
}

// FormatPercent renders a percentage with one decimal place.
func FormatPercent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}
