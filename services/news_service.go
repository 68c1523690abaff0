package services

import (
	"context"
	"fmt"
	"html"
	"log"
	"net/http"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"dashpad/database"
	"dashpad/models"
	"dashpad/store"

	"github.com/google/uuid"
	"github.com/mmcdole/gofeed"
)

const (
	// maxItemsPerSource caps each source's contribution before the merge,
	// so one noisy feed cannot starve the others.
	maxItemsPerSource = 5
	// maxNewsItems caps the merged, recency-ranked result.
	maxNewsItems = 20
)

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// NewsService aggregates headlines across the enabled sources. The item
// list is a transient cache replaced wholesale on every fetch; only the
// source list is persisted.
type NewsService struct {
	storage database.Store
	parser  *gofeed.Parser

	sources *store.Store[[]models.NewsSource]
	news    *store.Store[[]models.NewsItem]
	status  *store.Store[models.Status]
	err     *store.Store[string]
}

func NewNewsService(storage database.Store) *NewsService {
	parser := gofeed.NewParser()
	parser.Client = &http.Client{
		Timeout: 30 * time.Second,
	}

	sources := models.DefaultNewsSources()
	storage.Load(database.KeyNewsSources, &sources)

	s := &NewsService{
		storage: storage,
		parser:  parser,
		sources: store.New(sources),
		news:    store.New([]models.NewsItem(nil)),
		status:  store.New(models.StatusIdle),
		err:     store.New(""),
	}
	s.sources.OnChange(func(v []models.NewsSource) {
		storage.Save(database.KeyNewsSources, v)
	})
	return s
}

func (s *NewsService) Sources() []models.NewsSource {
	return s.sources.Get()
}

func (s *NewsService) News() []models.NewsItem {
	return s.news.Get()
}

func (s *NewsService) Status() models.Status {
	return s.status.Get()
}

// Error returns the last orchestration failure message, empty when none.
func (s *NewsService) Error() string {
	return s.err.Get()
}

// FetchNews fetches every enabled source concurrently, waits for all of
// them to settle, then replaces the item list with the merged result.
//
// Individual source failures never fail the aggregate: a broken feed just
// contributes zero items. Only an orchestration failure (context ended)
// reaches the Failed state. With no enabled sources the item list is
// cleared and the service stays Idle.
//
// Overlapping calls are not cancelled; whichever finishes last wins.
func (s *NewsService) FetchNews(ctx context.Context) {
	var enabled []models.NewsSource
	for _, src := range s.sources.Get() {
		if src.Enabled {
			enabled = append(enabled, src)
		}
	}

	if len(enabled) == 0 {
		s.news.Set([]models.NewsItem{})
		s.status.Set(models.StatusIdle)
		return
	}

	s.status.Set(models.StatusLoading)
	s.err.Set("")

	results := make([][]models.NewsItem, len(enabled))
	var wg sync.WaitGroup
	for i, src := range enabled {
		wg.Add(1)
		go func(i int, src models.NewsSource) {
			defer wg.Done()
			results[i] = s.fetchSource(ctx, src)
		}(i, src)
	}
	wg.Wait()

	if ctx.Err() != nil {
		s.err.Set("Failed to fetch news")
		s.status.Set(models.StatusFailed)
		return
	}

	var all []models.NewsItem
	for _, items := range results {
		all = append(all, items...)
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Published.After(all[j].Published)
	})
	if len(all) > maxNewsItems {
		all = all[:maxNewsItems]
	}

	s.news.Set(all)
	s.status.Set(models.StatusReady)
}

// Refresh re-runs the aggregation in the background.
func (s *NewsService) Refresh() {
	go s.FetchNews(context.Background())
}

// fetchSource fetches one feed. Any fetch or parse failure yields an empty
// list for that source only.
func (s *NewsService) fetchSource(ctx context.Context, source models.NewsSource) []models.NewsItem {
	feed, err := s.parser.ParseURLWithContext(source.FeedURL, ctx)
	if err != nil {
		log.Printf("Failed to fetch source %s: %v", source.Name, err)
		return nil
	}

	items := feed.Items
	if len(items) > maxItemsPerSource {
		items = items[:maxItemsPerSource]
	}

	out := make([]models.NewsItem, 0, len(items))
	for _, item := range items {
		published := time.Now()
		if item.PublishedParsed != nil {
			published = *item.PublishedParsed
		}

		description := stripHTML(item.Description)
		if runes := []rune(description); len(runes) > 150 {
			description = string(runes[:150])
		}

		out = append(out, models.NewsItem{
			// Derived id: duplicate fetches of the same item collapse.
			ID:          fmt.Sprintf("%s-%s", source.ID, item.Link),
			Title:       stripHTML(item.Title),
			Description: description,
			URL:         item.Link,
			Source:      source.Name,
			PublishedAt: item.Published,
			ImageURL:    itemImage(item),
			Published:   published,
		})
	}
	return out
}

func itemImage(item *gofeed.Item) string {
	if item.Image != nil && item.Image.URL != "" {
		return item.Image.URL
	}
	for _, enc := range item.Enclosures {
		if enc.URL != "" && strings.HasPrefix(enc.Type, "image/") {
			return enc.URL
		}
	}
	return ""
}

func stripHTML(s string) string {
	return strings.TrimSpace(html.UnescapeString(tagPattern.ReplaceAllString(s, "")))
}

// ToggleSource flips a source's enabled flag. This does not refetch;
// callers trigger FetchNews/Refresh when they want new items.
func (s *NewsService) ToggleSource(id string) {
	s.sources.Update(func(sources []models.NewsSource) []models.NewsSource {
		out := append([]models.NewsSource{}, sources...)
		for i := range out {
			if out[i].ID == id {
				out[i].Enabled = !out[i].Enabled
			}
		}
		return out
	})
}

func (s *NewsService) AddSource(name, feedURL string, enabled bool) models.NewsSource {
	source := models.NewsSource{
		ID:      uuid.NewString(),
		Name:    name,
		FeedURL: feedURL,
		Enabled: enabled,
	}
	s.sources.Update(func(sources []models.NewsSource) []models.NewsSource {
		return append(append([]models.NewsSource{}, sources...), source)
	})
	return source
}

// UpdateSource merges name/feed URL changes. Unknown id is a no-op.
func (s *NewsService) UpdateSource(id, name, feedURL string) {
	s.sources.Update(func(sources []models.NewsSource) []models.NewsSource {
		out := append([]models.NewsSource{}, sources...)
		for i := range out {
			if out[i].ID != id {
				continue
			}
			if name != "" {
				out[i].Name = name
			}
			if feedURL != "" {
				out[i].FeedURL = feedURL
			}
		}
		return out
	})
}

func (s *NewsService) RemoveSource(id string) {
	s.sources.Update(func(sources []models.NewsSource) []models.NewsSource {
		out := make([]models.NewsSource, 0, len(sources))
		for _, src := range sources {
			if src.ID != id {
				out = append(out, src)
			}
		}
		return out
	})
}

func (s *NewsService) ResetToDefaults() {
	s.sources.Set(models.DefaultNewsSources())
}
