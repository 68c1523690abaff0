package handlers

import (
	"encoding/json"
	"net/http"

	"dashpad/services"

	"github.com/gorilla/mux"
)

type ReadingListHandlers struct {
	readingList *services.ReadingListService
}

func NewReadingListHandlers(readingList *services.ReadingListService) *ReadingListHandlers {
	return &ReadingListHandlers{readingList: readingList}
}

func (rh *ReadingListHandlers) GetItems(w http.ResponseWriter, r *http.Request) {
	respondData(w, map[string]interface{}{
		"unread":      rh.readingList.UnreadItems(),
		"read":        rh.readingList.ReadItems(),
		"unreadCount": rh.readingList.UnreadCount(),
	})
}

func (rh *ReadingListHandlers) AddItem(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Title       string `json:"title"`
		URL         string `json:"url"`
		Description string `json:"description"`
		Favicon     string `json:"favicon"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid item payload")
		return
	}
	if body.URL == "" {
		respondError(w, http.StatusBadRequest, "URL is required")
		return
	}

	if body.Favicon == "" {
		body.Favicon = services.FaviconURL(body.URL, 32)
	}

	rh.readingList.AddItem(body.Title, body.URL, body.Description, body.Favicon)
	respondData(w, rh.readingList.Items())
}

func (rh *ReadingListHandlers) DeleteItem(w http.ResponseWriter, r *http.Request) {
	rh.readingList.RemoveItem(mux.Vars(r)["id"])
	respondData(w, rh.readingList.Items())
}

func (rh *ReadingListHandlers) ToggleRead(w http.ResponseWriter, r *http.Request) {
	rh.readingList.ToggleRead(mux.Vars(r)["id"])
	respondData(w, rh.readingList.Items())
}

func (rh *ReadingListHandlers) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	rh.readingList.MarkAsRead(mux.Vars(r)["id"])
	respondData(w, rh.readingList.Items())
}

func (rh *ReadingListHandlers) MarkAsUnread(w http.ResponseWriter, r *http.Request) {
	rh.readingList.MarkAsUnread(mux.Vars(r)["id"])
	respondData(w, rh.readingList.Items())
}

func (rh *ReadingListHandlers) ClearRead(w http.ResponseWriter, r *http.Request) {
	rh.readingList.ClearRead()
	respondData(w, rh.readingList.Items())
}

func (rh *ReadingListHandlers) ClearAll(w http.ResponseWriter, r *http.Request) {
	rh.readingList.ClearAll()
	respondData(w, rh.readingList.Items())
}
