package services

import (
	"encoding/json"
	"sort"
	"time"

	"dashpad/database"
	"dashpad/models"
	"dashpad/store"

	"github.com/google/uuid"
)

// BookmarksService owns the bookmark collection and its folder hierarchy.
//
// The hierarchy's defining invariant: after this service removes a folder,
// no bookmark references it — every bookmark directly under the folder is
// reparented to root first. Sub-folders are NOT cascaded; they keep their
// parentId pointing at the removed folder and readers treat the dangling
// reference as root.
type BookmarksService struct {
	storage   database.Store
	bookmarks *store.Store[[]models.Bookmark]
	folders   *store.Store[[]models.BookmarkFolder]

	// Transient navigation state, never persisted.
	selectedFolderID *store.Store[*string]

	filteredBookmarks *store.View[[]models.Bookmark]
	rootBookmarks     *store.View[[]models.Bookmark]
	rootFolders       *store.View[[]models.BookmarkFolder]

	now func() time.Time
}

func NewBookmarksService(storage database.Store) *BookmarksService {
	var bookmarks []models.Bookmark
	var folders []models.BookmarkFolder
	storage.Load(database.KeyBookmarks, &bookmarks)
	storage.Load(database.KeyBookmarkFolders, &folders)

	s := &BookmarksService{
		storage:          storage,
		bookmarks:        store.New(bookmarks),
		folders:          store.New(folders),
		selectedFolderID: store.New[*string](nil),
		now:              time.Now,
	}
	s.bookmarks.OnChange(func(v []models.Bookmark) {
		storage.Save(database.KeyBookmarks, v)
	})
	s.folders.OnChange(func(v []models.BookmarkFolder) {
		storage.Save(database.KeyBookmarkFolders, v)
	})

	s.filteredBookmarks = store.NewView(func() []models.Bookmark {
		return filterByFolder(s.bookmarks.Get(), s.selectedFolderID.Get())
	}, s.bookmarks, s.selectedFolderID)

	s.rootBookmarks = store.NewView(func() []models.Bookmark {
		return filterByFolder(s.bookmarks.Get(), nil)
	}, s.bookmarks)

	s.rootFolders = store.NewView(func() []models.BookmarkFolder {
		return subfolders(s.folders.Get(), nil)
	}, s.folders)

	return s
}

func (s *BookmarksService) Bookmarks() []models.Bookmark {
	return s.bookmarks.Get()
}

func (s *BookmarksService) Folders() []models.BookmarkFolder {
	return s.folders.Get()
}

func (s *BookmarksService) SelectedFolderID() *string {
	return s.selectedFolderID.Get()
}

// FilteredBookmarks returns the bookmarks under the selected folder.
func (s *BookmarksService) FilteredBookmarks() []models.Bookmark {
	return s.filteredBookmarks.Get()
}

func (s *BookmarksService) RootBookmarks() []models.Bookmark {
	return s.rootBookmarks.Get()
}

// RootFolders returns top-level folders sorted by order.
func (s *BookmarksService) RootFolders() []models.BookmarkFolder {
	return s.rootFolders.Get()
}

// AddBookmark creates a bookmark in the given folder (nil = root).
func (s *BookmarksService) AddBookmark(title, url, favicon string, folderID *string) models.Bookmark {
	bookmark := models.Bookmark{
		ID:        uuid.NewString(),
		Title:     title,
		URL:       url,
		Favicon:   favicon,
		FolderID:  folderID,
		CreatedAt: s.now(),
	}
	s.bookmarks.Update(func(bookmarks []models.Bookmark) []models.Bookmark {
		return append(append([]models.Bookmark{}, bookmarks...), bookmark)
	})
	return bookmark
}

// UpdateBookmark merges title/url/favicon changes. Unknown id is a no-op.
func (s *BookmarksService) UpdateBookmark(id, title, url, favicon string) {
	s.bookmarks.Update(func(bookmarks []models.Bookmark) []models.Bookmark {
		out := append([]models.Bookmark{}, bookmarks...)
		for i := range out {
			if out[i].ID != id {
				continue
			}
			if title != "" {
				out[i].Title = title
			}
			if url != "" {
				out[i].URL = url
			}
			if favicon != "" {
				out[i].Favicon = favicon
			}
		}
		return out
	})
}

func (s *BookmarksService) RemoveBookmark(id string) {
	s.bookmarks.Update(func(bookmarks []models.Bookmark) []models.Bookmark {
		out := make([]models.Bookmark, 0, len(bookmarks))
		for _, b := range bookmarks {
			if b.ID != id {
				out = append(out, b)
			}
		}
		return out
	})
}

// MoveBookmark reassigns the bookmark's folder. The target folder is not
// validated; a dangling id reads as root.
func (s *BookmarksService) MoveBookmark(id string, folderID *string) {
	s.bookmarks.Update(func(bookmarks []models.Bookmark) []models.Bookmark {
		out := append([]models.Bookmark{}, bookmarks...)
		for i := range out {
			if out[i].ID == id {
				out[i].FolderID = folderID
			}
		}
		return out
	})
}

// AddFolder creates a folder appended at the end of its sibling set.
func (s *BookmarksService) AddFolder(name string, parentID *string) models.BookmarkFolder {
	folder := models.BookmarkFolder{
		ID:       uuid.NewString(),
		Name:     name,
		ParentID: parentID,
	}
	s.folders.Update(func(folders []models.BookmarkFolder) []models.BookmarkFolder {
		folder.Order = len(subfolders(folders, parentID))
		return append(append([]models.BookmarkFolder{}, folders...), folder)
	})
	return folder
}

// UpdateFolder renames and/or reparents a folder. Reparenting re-indexes
// both the old and new sibling sets so order stays dense.
func (s *BookmarksService) UpdateFolder(id, name string, parentID *string, reparent bool) {
	s.folders.Update(func(folders []models.BookmarkFolder) []models.BookmarkFolder {
		out := append([]models.BookmarkFolder{}, folders...)
		var oldParent *string
		found := false
		for i := range out {
			if out[i].ID != id {
				continue
			}
			found = true
			oldParent = out[i].ParentID
			if name != "" {
				out[i].Name = name
			}
			if reparent {
				out[i].ParentID = parentID
			}
		}
		if !found {
			return folders
		}
		if reparent && !sameParent(oldParent, parentID) {
			out = reindexSiblings(out, oldParent)
			out = reindexSiblings(out, parentID)
		}
		return out
	})
}

// RemoveFolder deletes the folder after reparenting its direct bookmarks
// to root. Nested sub-folders are left in place with their (now dangling)
// parentId. The removed folder's sibling set is re-indexed.
func (s *BookmarksService) RemoveFolder(id string) {
	s.bookmarks.Update(func(bookmarks []models.Bookmark) []models.Bookmark {
		out := append([]models.Bookmark{}, bookmarks...)
		for i := range out {
			if out[i].FolderID != nil && *out[i].FolderID == id {
				out[i].FolderID = nil
			}
		}
		return out
	})

	s.folders.Update(func(folders []models.BookmarkFolder) []models.BookmarkFolder {
		var parentID *string
		found := false
		out := make([]models.BookmarkFolder, 0, len(folders))
		for _, f := range folders {
			if f.ID == id {
				parentID = f.ParentID
				found = true
				continue
			}
			out = append(out, f)
		}
		if !found {
			return folders
		}
		return reindexSiblings(out, parentID)
	})
}

// SelectFolder sets the transient navigation context (nil = root).
func (s *BookmarksService) SelectFolder(folderID *string) {
	s.selectedFolderID.Set(folderID)
}

func (s *BookmarksService) GetBookmarksByFolder(folderID *string) []models.Bookmark {
	return filterByFolder(s.bookmarks.Get(), folderID)
}

// GetSubfolders returns the children of parentID sorted by order. The sort
// is stable, so equal orders keep their original relative position.
func (s *BookmarksService) GetSubfolders(parentID *string) []models.BookmarkFolder {
	return subfolders(s.folders.Get(), parentID)
}

// exportPayload is the bookmark export/import wire shape.
type exportPayload struct {
	Bookmarks []models.Bookmark       `json:"bookmarks"`
	Folders   []models.BookmarkFolder `json:"folders"`
}

// Export serializes both collections.
func (s *BookmarksService) Export() ([]byte, error) {
	payload := exportPayload{
		Bookmarks: s.bookmarks.Get(),
		Folders:   s.folders.Get(),
	}
	if payload.Bookmarks == nil {
		payload.Bookmarks = []models.Bookmark{}
	}
	if payload.Folders == nil {
		payload.Folders = []models.BookmarkFolder{}
	}
	return json.MarshalIndent(payload, "", "  ")
}

// Import replaces both collections wholesale if the input is an object with
// array-typed "bookmarks" and "folders" fields. Anything else reports
// failure and leaves existing state untouched.
func (s *BookmarksService) Import(data []byte) bool {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return false
	}

	rawBookmarks, ok := raw["bookmarks"]
	if !ok {
		return false
	}
	rawFolders, ok := raw["folders"]
	if !ok {
		return false
	}

	if !isJSONArray(rawBookmarks) || !isJSONArray(rawFolders) {
		return false
	}

	var bookmarks []models.Bookmark
	if err := json.Unmarshal(rawBookmarks, &bookmarks); err != nil {
		return false
	}
	var folders []models.BookmarkFolder
	if err := json.Unmarshal(rawFolders, &folders); err != nil {
		return false
	}

	s.bookmarks.Set(bookmarks)
	s.folders.Set(folders)
	return true
}

func (s *BookmarksService) ClearAll() {
	s.bookmarks.Set([]models.Bookmark{})
	s.folders.Set([]models.BookmarkFolder{})
	s.selectedFolderID.Set(nil)
}

func filterByFolder(bookmarks []models.Bookmark, folderID *string) []models.Bookmark {
	var out []models.Bookmark
	for _, b := range bookmarks {
		if sameParent(b.FolderID, folderID) {
			out = append(out, b)
		}
	}
	return out
}

func subfolders(folders []models.BookmarkFolder, parentID *string) []models.BookmarkFolder {
	var out []models.BookmarkFolder
	for _, f := range folders {
		if sameParent(f.ParentID, parentID) {
			out = append(out, f)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Order < out[j].Order
	})
	return out
}

// reindexSiblings rewrites the order of every folder under parentID to the
// dense range 0..n-1, preserving relative order.
func reindexSiblings(folders []models.BookmarkFolder, parentID *string) []models.BookmarkFolder {
	siblings := subfolders(folders, parentID)
	rank := make(map[string]int, len(siblings))
	for i, f := range siblings {
		rank[f.ID] = i
	}
	for i := range folders {
		if r, ok := rank[folders[i].ID]; ok {
			folders[i].Order = r
		}
	}
	return folders
}

func isJSONArray(raw json.RawMessage) bool {
	for _, c := range raw {
		switch c {
		case ' ', '\t', '\n', '\r':
			continue
		default:
			return c == '['
		}
	}
	return false
}

func sameParent(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
