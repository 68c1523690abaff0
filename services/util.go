package services

import (
	"fmt"
	"net/url"
	"time"
)

// FaviconURL builds a favicon lookup URL for a page URL. Unparseable
// input yields an empty string.
func FaviconURL(pageURL string, size int) string {
	u, err := url.Parse(pageURL)
	if err != nil || u.Hostname() == "" {
		return ""
	}
	return fmt.Sprintf("https://www.google.com/s2/favicons?domain=%s&sz=%d", u.Hostname(), size)
}

// TimeAgo renders a timestamp as a short relative string for the widgets.
func TimeAgo(t time.Time) string {
	seconds := int(time.Since(t).Seconds())

	switch {
	case seconds < 60:
		return "just now"
	case seconds < 3600:
		return fmt.Sprintf("%dm ago", seconds/60)
	case seconds < 86400:
		return fmt.Sprintf("%dh ago", seconds/3600)
	case seconds < 604800:
		return fmt.Sprintf("%dd ago", seconds/86400)
	}
	return t.Format("Jan 2, 2006")
}
