package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"dashpad/services"

	"github.com/gorilla/mux"
)

type BookmarkHandlers struct {
	bookmarks *services.BookmarksService
	opml      *services.OPMLService
}

func NewBookmarkHandlers(bookmarks *services.BookmarksService, opml *services.OPMLService) *BookmarkHandlers {
	return &BookmarkHandlers{
		bookmarks: bookmarks,
		opml:      opml,
	}
}

func (bh *BookmarkHandlers) GetBookmarks(w http.ResponseWriter, r *http.Request) {
	respondData(w, map[string]interface{}{
		"bookmarks":        bh.bookmarks.Bookmarks(),
		"folders":          bh.bookmarks.Folders(),
		"selectedFolderId": bh.bookmarks.SelectedFolderID(),
		"filtered":         bh.bookmarks.FilteredBookmarks(),
		"rootFolders":      bh.bookmarks.RootFolders(),
	})
}

func (bh *BookmarkHandlers) AddBookmark(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Title    string  `json:"title"`
		URL      string  `json:"url"`
		Favicon  string  `json:"favicon"`
		FolderID *string `json:"folderId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid bookmark payload")
		return
	}
	if body.URL == "" {
		respondError(w, http.StatusBadRequest, "URL is required")
		return
	}

	if body.Favicon == "" {
		body.Favicon = services.FaviconURL(body.URL, 32)
	}

	bookmark := bh.bookmarks.AddBookmark(body.Title, body.URL, body.Favicon, body.FolderID)
	respondData(w, bookmark)
}

func (bh *BookmarkHandlers) UpdateBookmark(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var body struct {
		Title   string `json:"title"`
		URL     string `json:"url"`
		Favicon string `json:"favicon"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid bookmark payload")
		return
	}

	bh.bookmarks.UpdateBookmark(id, body.Title, body.URL, body.Favicon)
	respondData(w, bh.bookmarks.Bookmarks())
}

func (bh *BookmarkHandlers) DeleteBookmark(w http.ResponseWriter, r *http.Request) {
	bh.bookmarks.RemoveBookmark(mux.Vars(r)["id"])
	respondData(w, bh.bookmarks.Bookmarks())
}

func (bh *BookmarkHandlers) MoveBookmark(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var body struct {
		FolderID *string `json:"folderId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid move payload")
		return
	}

	bh.bookmarks.MoveBookmark(id, body.FolderID)
	respondData(w, bh.bookmarks.Bookmarks())
}

func (bh *BookmarkHandlers) AddFolder(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name     string  `json:"name"`
		ParentID *string `json:"parentId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Name == "" {
		respondError(w, http.StatusBadRequest, "Folder name is required")
		return
	}

	folder := bh.bookmarks.AddFolder(body.Name, body.ParentID)
	respondData(w, folder)
}

func (bh *BookmarkHandlers) UpdateFolder(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var body struct {
		Name     string  `json:"name"`
		ParentID *string `json:"parentId"`
		Reparent bool    `json:"reparent"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid folder payload")
		return
	}

	bh.bookmarks.UpdateFolder(id, body.Name, body.ParentID, body.Reparent)
	respondData(w, bh.bookmarks.Folders())
}

func (bh *BookmarkHandlers) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	bh.bookmarks.RemoveFolder(mux.Vars(r)["id"])
	respondData(w, map[string]interface{}{
		"bookmarks": bh.bookmarks.Bookmarks(),
		"folders":   bh.bookmarks.Folders(),
	})
}

func (bh *BookmarkHandlers) SelectFolder(w http.ResponseWriter, r *http.Request) {
	var body struct {
		FolderID *string `json:"folderId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid selection payload")
		return
	}

	bh.bookmarks.SelectFolder(body.FolderID)
	respondData(w, bh.bookmarks.FilteredBookmarks())
}

func (bh *BookmarkHandlers) GetSubfolders(w http.ResponseWriter, r *http.Request) {
	var parentID *string
	if parent := r.URL.Query().Get("parentId"); parent != "" {
		parentID = &parent
	}
	respondData(w, bh.bookmarks.GetSubfolders(parentID))
}

func (bh *BookmarkHandlers) Export(w http.ResponseWriter, r *http.Request) {
	data, err := bh.bookmarks.Export()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to export bookmarks")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="bookmarks.json"`)
	w.Write(data)
}

func (bh *BookmarkHandlers) Import(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Failed to read import data")
		return
	}

	if !bh.bookmarks.Import(data) {
		respondError(w, http.StatusBadRequest, "Invalid bookmark export format")
		return
	}

	respondData(w, map[string]interface{}{
		"bookmarks": bh.bookmarks.Bookmarks(),
		"folders":   bh.bookmarks.Folders(),
	})
}

func (bh *BookmarkHandlers) ClearAll(w http.ResponseWriter, r *http.Request) {
	bh.bookmarks.ClearAll()
	respondData(w, map[string]interface{}{
		"bookmarks": bh.bookmarks.Bookmarks(),
		"folders":   bh.bookmarks.Folders(),
	})
}

func (bh *BookmarkHandlers) ExportOPML(w http.ResponseWriter, r *http.Request) {
	data, err := bh.opml.ExportOPML()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to export OPML")
		return
	}

	w.Header().Set("Content-Type", "text/x-opml")
	w.Header().Set("Content-Disposition", `attachment; filename="bookmarks.opml"`)
	w.Write(data)
}

func (bh *BookmarkHandlers) ImportOPML(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Failed to read OPML data")
		return
	}

	result, err := bh.opml.ImportOPML(data)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid OPML document")
		return
	}

	respondData(w, result)
}
