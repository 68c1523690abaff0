package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"dashpad/database"
	"dashpad/handlers"
	"dashpad/middleware"
	"dashpad/services"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

func main() {
	godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	dataDir := os.Getenv("DASHPAD_DATA_DIR")
	if dataDir == "" {
		dataDir = "./data"
	}

	// Persistence boundary; degrades to a no-op store if the medium is unusable.
	storage := database.Open(dataDir)

	// Domain stores
	settingsService := services.NewSettingsService(storage)
	bookmarksService := services.NewBookmarksService(storage)
	opmlService := services.NewOPMLService(bookmarksService)
	quickLinksService := services.NewQuickLinksService(storage)
	readingListService := services.NewReadingListService(storage)
	newsService := services.NewNewsService(storage)

	openMeteo := services.NewOpenMeteo()
	weatherService := services.NewWeatherService(storage, settingsService, services.NoGeolocation{}, openMeteo, openMeteo)

	// Handlers
	settingsHandlers := handlers.NewSettingsHandlers(settingsService)
	bookmarkHandlers := handlers.NewBookmarkHandlers(bookmarksService, opmlService)
	quickLinkHandlers := handlers.NewQuickLinkHandlers(quickLinksService)
	readingListHandlers := handlers.NewReadingListHandlers(readingListService)
	newsHandlers := handlers.NewNewsHandlers(newsService)
	weatherHandlers := handlers.NewWeatherHandlers(weatherService)

	// Setup routes
	r := mux.NewRouter()
	r.Use(middleware.Logging)
	r.Use(middleware.CORS)

	api := r.PathPrefix("/api").Subrouter()

	// Health check
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status": "ok", "message": "Dashpad is running", "timestamp": "%s"}`, time.Now().Format(time.RFC3339))
	}).Methods("GET")

	// Settings routes
	api.HandleFunc("/settings", settingsHandlers.GetSettings).Methods("GET")
	api.HandleFunc("/settings", settingsHandlers.ReplaceSettings).Methods("PUT")
	api.HandleFunc("/settings/theme/toggle", settingsHandlers.ToggleTheme).Methods("POST")
	api.HandleFunc("/settings/sections/toggle", settingsHandlers.ToggleSection).Methods("POST")
	api.HandleFunc("/settings/reset", settingsHandlers.ResetSettings).Methods("POST")

	// Bookmark routes
	api.HandleFunc("/bookmarks", bookmarkHandlers.GetBookmarks).Methods("GET")
	api.HandleFunc("/bookmarks", bookmarkHandlers.AddBookmark).Methods("POST")
	api.HandleFunc("/bookmarks/export", bookmarkHandlers.Export).Methods("GET")
	api.HandleFunc("/bookmarks/import", bookmarkHandlers.Import).Methods("POST")
	api.HandleFunc("/bookmarks/export/opml", bookmarkHandlers.ExportOPML).Methods("GET")
	api.HandleFunc("/bookmarks/import/opml", bookmarkHandlers.ImportOPML).Methods("POST")
	api.HandleFunc("/bookmarks/clear", bookmarkHandlers.ClearAll).Methods("POST")
	api.HandleFunc("/bookmarks/select", bookmarkHandlers.SelectFolder).Methods("POST")
	api.HandleFunc("/bookmarks/{id}", bookmarkHandlers.UpdateBookmark).Methods("PUT")
	api.HandleFunc("/bookmarks/{id}", bookmarkHandlers.DeleteBookmark).Methods("DELETE")
	api.HandleFunc("/bookmarks/{id}/move", bookmarkHandlers.MoveBookmark).Methods("PUT")

	// Folder routes
	api.HandleFunc("/folders", bookmarkHandlers.GetSubfolders).Methods("GET")
	api.HandleFunc("/folders", bookmarkHandlers.AddFolder).Methods("POST")
	api.HandleFunc("/folders/{id}", bookmarkHandlers.UpdateFolder).Methods("PUT")
	api.HandleFunc("/folders/{id}", bookmarkHandlers.DeleteFolder).Methods("DELETE")

	// Quick link routes
	api.HandleFunc("/quicklinks", quickLinkHandlers.GetLinks).Methods("GET")
	api.HandleFunc("/quicklinks", quickLinkHandlers.AddLink).Methods("POST")
	api.HandleFunc("/quicklinks/reorder", quickLinkHandlers.ReorderLinks).Methods("POST")
	api.HandleFunc("/quicklinks/reset", quickLinkHandlers.ResetLinks).Methods("POST")
	api.HandleFunc("/quicklinks/{id}", quickLinkHandlers.UpdateLink).Methods("PUT")
	api.HandleFunc("/quicklinks/{id}", quickLinkHandlers.DeleteLink).Methods("DELETE")

	// Reading list routes
	api.HandleFunc("/reading-list", readingListHandlers.GetItems).Methods("GET")
	api.HandleFunc("/reading-list", readingListHandlers.AddItem).Methods("POST")
	api.HandleFunc("/reading-list/clear-read", readingListHandlers.ClearRead).Methods("POST")
	api.HandleFunc("/reading-list/clear", readingListHandlers.ClearAll).Methods("POST")
	api.HandleFunc("/reading-list/{id}", readingListHandlers.DeleteItem).Methods("DELETE")
	api.HandleFunc("/reading-list/{id}/toggle", readingListHandlers.ToggleRead).Methods("PUT")
	api.HandleFunc("/reading-list/{id}/read", readingListHandlers.MarkAsRead).Methods("PUT")
	api.HandleFunc("/reading-list/{id}/unread", readingListHandlers.MarkAsUnread).Methods("PUT")

	// News routes
	api.HandleFunc("/news", newsHandlers.GetNews).Methods("GET")
	api.HandleFunc("/news/refresh", newsHandlers.RefreshNews).Methods("POST")
	api.HandleFunc("/news/sources", newsHandlers.GetSources).Methods("GET")
	api.HandleFunc("/news/sources", newsHandlers.AddSource).Methods("POST")
	api.HandleFunc("/news/sources/reset", newsHandlers.ResetSources).Methods("POST")
	api.HandleFunc("/news/sources/{id}", newsHandlers.UpdateSource).Methods("PUT")
	api.HandleFunc("/news/sources/{id}", newsHandlers.DeleteSource).Methods("DELETE")
	api.HandleFunc("/news/sources/{id}/toggle", newsHandlers.ToggleSource).Methods("PUT")

	// Weather routes
	api.HandleFunc("/weather", weatherHandlers.GetWeather).Methods("GET")
	api.HandleFunc("/weather/fetch", weatherHandlers.FetchWeather).Methods("POST")
	api.HandleFunc("/weather/refresh", weatherHandlers.RefreshWeather).Methods("POST")
	api.HandleFunc("/weather/search", weatherHandlers.SearchCity).Methods("POST")

	// Setup background refresh
	setupCronJobs(newsService, weatherService, settingsService)

	// Prime the news cache on startup
	newsService.Refresh()

	fmt.Printf("Dashpad server starting on port %s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, r))
}

func setupCronJobs(newsService *services.NewsService, weatherService *services.WeatherService, settingsService *services.SettingsService) {
	c := cron.New()

	// Refresh news every 15 minutes
	c.AddFunc("*/15 * * * *", func() {
		if !settingsService.Settings().ShowNews {
			return
		}
		log.Println("Starting scheduled news refresh...")
		newsService.FetchNews(context.Background())
	})

	// Refresh weather every 30 minutes, matching the cache window
	c.AddFunc("*/30 * * * *", func() {
		if !settingsService.Settings().ShowWeather {
			return
		}
		if settingsService.WeatherLocation() == nil {
			return
		}
		log.Println("Starting scheduled weather refresh...")
		weatherService.Refresh(context.Background())
	})

	c.Start()
	log.Println("Background jobs scheduled")
}
