package services

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"dashpad/database"
	"dashpad/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rssFeed renders a minimal RSS 2.0 document with the given items.
func rssFeed(title string, items []rssItem) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0"?><rss version="2.0"><channel>`)
	fmt.Fprintf(&b, "<title>%s</title>", title)
	for _, item := range items {
		fmt.Fprintf(&b,
			"<item><title>%s</title><link>%s</link><description>%s</description><pubDate>%s</pubDate></item>",
			item.title, item.link, item.description, item.pubDate.Format(time.RFC1123Z))
	}
	b.WriteString(`</channel></rss>`)
	return b.String()
}

type rssItem struct {
	title       string
	link        string
	description string
	pubDate     time.Time
}

func serveFeed(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newNewsService(t *testing.T, sources []models.NewsSource) *NewsService {
	t.Helper()
	storage := database.NewMemory()
	storage.Save(database.KeyNewsSources, sources)
	return NewNewsService(storage)
}

func recentItems(n int, start time.Time) []rssItem {
	items := make([]rssItem, n)
	for i := 0; i < n; i++ {
		items[i] = rssItem{
			title:       fmt.Sprintf("Story %d", i),
			link:        fmt.Sprintf("https://news.example/%d", i),
			description: "some text",
			pubDate:     start.Add(-time.Duration(i) * time.Minute),
		}
	}
	return items
}

func TestNews_NoEnabledSourcesClearsAndStaysIdle(t *testing.T) {
	s := newNewsService(t, []models.NewsSource{
		{ID: "a", Name: "A", FeedURL: "https://unused.example/feed", Enabled: false},
	})

	s.FetchNews(context.Background())

	assert.Empty(t, s.News())
	assert.Equal(t, models.StatusIdle, s.Status())
	assert.Empty(t, s.Error())
}

func TestNews_FailingSourceIsIsolated(t *testing.T) {
	good := serveFeed(t, rssFeed("Good", recentItems(3, time.Now())))
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(bad.Close)

	s := newNewsService(t, []models.NewsSource{
		{ID: "good", Name: "Good", FeedURL: good.URL, Enabled: true},
		{ID: "bad", Name: "Bad", FeedURL: bad.URL, Enabled: true},
	})

	s.FetchNews(context.Background())

	items := s.News()
	assert.LessOrEqual(t, len(items), 3)
	require.NotEmpty(t, items)
	for _, item := range items {
		assert.Equal(t, "Good", item.Source, "only the healthy source contributes")
	}
	assert.Equal(t, models.StatusReady, s.Status(), "per-source failure is not an aggregate failure")
	assert.Empty(t, s.Error())
}

func TestNews_PerSourceCapAndGlobalCap(t *testing.T) {
	now := time.Now()
	// Source A is newer overall; both publish more than the per-source cap.
	a := serveFeed(t, rssFeed("A", recentItems(8, now)))
	b := serveFeed(t, rssFeed("B", recentItems(8, now.Add(-time.Hour))))

	s := newNewsService(t, []models.NewsSource{
		{ID: "a", Name: "A", FeedURL: a.URL, Enabled: true},
		{ID: "b", Name: "B", FeedURL: b.URL, Enabled: true},
	})

	s.FetchNews(context.Background())

	items := s.News()
	require.Len(t, items, 10, "5 per source after the pre-merge cap")

	perSource := map[string]int{}
	for _, item := range items {
		perSource[item.Source]++
	}
	assert.Equal(t, 5, perSource["A"])
	assert.Equal(t, 5, perSource["B"])

	// Merged list is recency-ranked: all of A precedes all of B.
	for _, item := range items[:5] {
		assert.Equal(t, "A", item.Source)
	}
}

func TestNews_GlobalCapAt20(t *testing.T) {
	now := time.Now()
	var sources []models.NewsSource
	for i := 0; i < 6; i++ {
		srv := serveFeed(t, rssFeed(fmt.Sprintf("S%d", i), recentItems(5, now)))
		sources = append(sources, models.NewsSource{
			ID: fmt.Sprintf("s%d", i), Name: fmt.Sprintf("S%d", i), FeedURL: srv.URL, Enabled: true,
		})
	}

	s := newNewsService(t, sources)
	s.FetchNews(context.Background())

	assert.Len(t, s.News(), 20)
	assert.Equal(t, models.StatusReady, s.Status())
}

func TestNews_ItemsSortedByRecency(t *testing.T) {
	srv := serveFeed(t, rssFeed("A", recentItems(5, time.Now())))
	s := newNewsService(t, []models.NewsSource{
		{ID: "a", Name: "A", FeedURL: srv.URL, Enabled: true},
	})

	s.FetchNews(context.Background())

	items := s.News()
	require.NotEmpty(t, items)
	for i := 1; i < len(items); i++ {
		assert.False(t, items[i].Published.After(items[i-1].Published))
	}
}

func TestNews_DerivedIDs(t *testing.T) {
	srv := serveFeed(t, rssFeed("A", []rssItem{
		{title: "One", link: "https://news.example/one", pubDate: time.Now()},
	}))
	s := newNewsService(t, []models.NewsSource{
		{ID: "src", Name: "A", FeedURL: srv.URL, Enabled: true},
	})

	s.FetchNews(context.Background())
	first := s.News()

	// A second fetch of the same feed yields the same ids.
	s.FetchNews(context.Background())
	second := s.News()

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, "src-https://news.example/one", first[0].ID)
	assert.Equal(t, first[0].ID, second[0].ID)
}

func TestNews_StripsHTMLAndTruncatesDescription(t *testing.T) {
	long := strings.Repeat("x", 200)
	srv := serveFeed(t, rssFeed("A", []rssItem{
		{
			title:       "Hello &amp; &lt;b&gt;world&lt;/b&gt;",
			link:        "https://news.example/html",
			description: "&lt;p&gt;" + long + "&lt;/p&gt;",
			pubDate:     time.Now(),
		},
	}))
	s := newNewsService(t, []models.NewsSource{
		{ID: "a", Name: "A", FeedURL: srv.URL, Enabled: true},
	})

	s.FetchNews(context.Background())

	items := s.News()
	require.Len(t, items, 1)
	assert.Equal(t, "Hello & world", items[0].Title)
	assert.Len(t, items[0].Description, 150)
	assert.NotContains(t, items[0].Description, "<p>")
}

func TestNews_SourceManagement(t *testing.T) {
	s := newNewsService(t, []models.NewsSource{})

	src := s.AddSource("Example", "https://feed.example/rss", true)
	require.Len(t, s.Sources(), 1)

	s.ToggleSource(src.ID)
	assert.False(t, s.Sources()[0].Enabled)
	s.ToggleSource(src.ID)
	assert.True(t, s.Sources()[0].Enabled)

	s.UpdateSource(src.ID, "Renamed", "")
	assert.Equal(t, "Renamed", s.Sources()[0].Name)
	assert.Equal(t, "https://feed.example/rss", s.Sources()[0].FeedURL)

	s.RemoveSource(src.ID)
	assert.Empty(t, s.Sources())

	s.ResetToDefaults()
	assert.Len(t, s.Sources(), 3)
}

func TestNews_SourcesPersist(t *testing.T) {
	storage := database.NewMemory()
	storage.Save(database.KeyNewsSources, []models.NewsSource{})
	s := NewNewsService(storage)

	s.AddSource("Example", "https://feed.example/rss", true)

	reloaded := NewNewsService(storage)
	require.Len(t, reloaded.Sources(), 1)
	assert.Equal(t, "Example", reloaded.Sources()[0].Name)
}
