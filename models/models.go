package models

import (
	"time"
)

type Bookmark struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	Favicon   string    `json:"favicon,omitempty"`
	FolderID  *string   `json:"folderId"` // nil = root
	CreatedAt time.Time `json:"createdAt"`
}

type BookmarkFolder struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	ParentID *string `json:"parentId"` // nil = root
	Order    int     `json:"order"`
}

type QuickLink struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	URL     string `json:"url"`
	Favicon string `json:"favicon,omitempty"`
	Order   int    `json:"order"`
}

type ReadingListItem struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	URL         string     `json:"url"`
	Description string     `json:"description,omitempty"`
	Favicon     string     `json:"favicon,omitempty"`
	IsRead      bool       `json:"isRead"`
	SavedAt     time.Time  `json:"savedAt"`
	ReadAt      *time.Time `json:"readAt,omitempty"` // set iff IsRead
}

type NewsSource struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	FeedURL string `json:"feedUrl"`
	Enabled bool   `json:"enabled"`
}

type NewsItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url"`
	Source      string `json:"source"`
	PublishedAt string `json:"publishedAt"` // origin-supplied date string
	ImageURL    string `json:"imageUrl,omitempty"`

	// Published is the parsed publication time used for ranking.
	Published time.Time `json:"-"`
}

type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

type SearchEngine string

const (
	SearchGoogle     SearchEngine = "google"
	SearchDuckDuckGo SearchEngine = "duckduckgo"
	SearchBing       SearchEngine = "bing"
)

type WeatherLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	City      string  `json:"city,omitempty"`
	Country   string  `json:"country,omitempty"`
}

type WeatherData struct {
	Temperature         int       `json:"temperature"`
	ApparentTemperature int       `json:"apparentTemperature"`
	WeatherCode         int       `json:"weatherCode"`
	Humidity            float64   `json:"humidity"`
	WindSpeed           int       `json:"windSpeed"`
	IsDay               bool      `json:"isDay"`
	Location            string    `json:"location"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

type UserSettings struct {
	Theme           Theme            `json:"theme"`
	SearchEngine    SearchEngine     `json:"searchEngine"`
	WeatherLocation *WeatherLocation `json:"weatherLocation"`
	ShowWeather     bool             `json:"showWeather"`
	ShowNews        bool             `json:"showNews"`
	ShowQuickLinks  bool             `json:"showQuickLinks"`
	ShowBookmarks   bool             `json:"showBookmarks"`
	ShowReadingList bool             `json:"showReadingList"`
	UserName        string           `json:"userName"`
}

// Status tracks the lifecycle of a network-backed store:
// Idle -> Loading -> Ready or Failed, back to Loading on the next fetch.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusReady
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	default:
		return "idle"
	}
}

func DefaultSettings() UserSettings {
	return UserSettings{
		Theme:           ThemeDark,
		SearchEngine:    SearchGoogle,
		WeatherLocation: nil,
		ShowWeather:     true,
		ShowNews:        true,
		ShowQuickLinks:  true,
		ShowBookmarks:   true,
		ShowReadingList: true,
		UserName:        "",
	}
}

func DefaultQuickLinks() []QuickLink {
	return []QuickLink{
		{ID: "1", Title: "Gmail", URL: "https://mail.google.com", Order: 0},
		{ID: "2", Title: "YouTube", URL: "https://youtube.com", Order: 1},
		{ID: "3", Title: "GitHub", URL: "https://github.com", Order: 2},
		{ID: "4", Title: "Reddit", URL: "https://reddit.com", Order: 3},
		{ID: "5", Title: "Twitter", URL: "https://x.com", Order: 4},
		{ID: "6", Title: "LinkedIn", URL: "https://linkedin.com", Order: 5},
	}
}

func DefaultNewsSources() []NewsSource {
	return []NewsSource{
		{ID: "hackernews", Name: "Hacker News", FeedURL: "https://hnrss.org/frontpage", Enabled: true},
		{ID: "techcrunch", Name: "TechCrunch", FeedURL: "https://techcrunch.com/feed/", Enabled: true},
		{ID: "theverge", Name: "The Verge", FeedURL: "https://www.theverge.com/rss/index.xml", Enabled: false},
	}
}
