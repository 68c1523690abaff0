package handlers

import (
	"encoding/json"
	"net/http"

	"dashpad/services"

	"github.com/gorilla/mux"
)

type QuickLinkHandlers struct {
	quickLinks *services.QuickLinksService
}

func NewQuickLinkHandlers(quickLinks *services.QuickLinksService) *QuickLinkHandlers {
	return &QuickLinkHandlers{quickLinks: quickLinks}
}

func (qh *QuickLinkHandlers) GetLinks(w http.ResponseWriter, r *http.Request) {
	respondData(w, qh.quickLinks.Links())
}

func (qh *QuickLinkHandlers) AddLink(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Title   string `json:"title"`
		URL     string `json:"url"`
		Favicon string `json:"favicon"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid link payload")
		return
	}
	if body.URL == "" {
		respondError(w, http.StatusBadRequest, "URL is required")
		return
	}

	if body.Favicon == "" {
		body.Favicon = services.FaviconURL(body.URL, 64)
	}

	link := qh.quickLinks.AddLink(body.Title, body.URL, body.Favicon)
	respondData(w, link)
}

func (qh *QuickLinkHandlers) UpdateLink(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var body struct {
		Title   string `json:"title"`
		URL     string `json:"url"`
		Favicon string `json:"favicon"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid link payload")
		return
	}

	qh.quickLinks.UpdateLink(id, body.Title, body.URL, body.Favicon)
	respondData(w, qh.quickLinks.Links())
}

func (qh *QuickLinkHandlers) DeleteLink(w http.ResponseWriter, r *http.Request) {
	qh.quickLinks.RemoveLink(mux.Vars(r)["id"])
	respondData(w, qh.quickLinks.Links())
}

func (qh *QuickLinkHandlers) ReorderLinks(w http.ResponseWriter, r *http.Request) {
	var body struct {
		FromIndex int `json:"fromIndex"`
		ToIndex   int `json:"toIndex"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid reorder payload")
		return
	}

	qh.quickLinks.ReorderLinks(body.FromIndex, body.ToIndex)
	respondData(w, qh.quickLinks.Links())
}

func (qh *QuickLinkHandlers) ResetLinks(w http.ResponseWriter, r *http.Request) {
	qh.quickLinks.ResetToDefaults()
	respondData(w, qh.quickLinks.Links())
}
