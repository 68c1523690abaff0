package handlers

import (
	"encoding/json"
	"net/http"

	"dashpad/services"

	"github.com/gorilla/mux"
)

type NewsHandlers struct {
	news *services.NewsService
}

func NewNewsHandlers(news *services.NewsService) *NewsHandlers {
	return &NewsHandlers{news: news}
}

func (nh *NewsHandlers) GetNews(w http.ResponseWriter, r *http.Request) {
	respondData(w, map[string]interface{}{
		"items":  nh.news.News(),
		"status": nh.news.Status().String(),
		"error":  nh.news.Error(),
	})
}

// RefreshNews runs the aggregation synchronously so the caller gets the
// fresh list back in one round trip.
func (nh *NewsHandlers) RefreshNews(w http.ResponseWriter, r *http.Request) {
	nh.news.FetchNews(r.Context())
	nh.GetNews(w, r)
}

func (nh *NewsHandlers) GetSources(w http.ResponseWriter, r *http.Request) {
	respondData(w, nh.news.Sources())
}

func (nh *NewsHandlers) AddSource(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name    string `json:"name"`
		FeedURL string `json:"feedUrl"`
		Enabled bool   `json:"enabled"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid source payload")
		return
	}
	if body.FeedURL == "" {
		respondError(w, http.StatusBadRequest, "Feed URL is required")
		return
	}

	source := nh.news.AddSource(body.Name, body.FeedURL, body.Enabled)
	respondData(w, source)
}

func (nh *NewsHandlers) UpdateSource(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var body struct {
		Name    string `json:"name"`
		FeedURL string `json:"feedUrl"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid source payload")
		return
	}

	nh.news.UpdateSource(id, body.Name, body.FeedURL)
	respondData(w, nh.news.Sources())
}

func (nh *NewsHandlers) ToggleSource(w http.ResponseWriter, r *http.Request) {
	nh.news.ToggleSource(mux.Vars(r)["id"])
	respondData(w, nh.news.Sources())
}

func (nh *NewsHandlers) DeleteSource(w http.ResponseWriter, r *http.Request) {
	nh.news.RemoveSource(mux.Vars(r)["id"])
	respondData(w, nh.news.Sources())
}

func (nh *NewsHandlers) ResetSources(w http.ResponseWriter, r *http.Request) {
	nh.news.ResetToDefaults()
	respondData(w, nh.news.Sources())
}
