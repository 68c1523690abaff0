package services

import (
	"sort"
	"time"

	"dashpad/database"
	"dashpad/models"
	"dashpad/store"

	"github.com/google/uuid"
)

// ReadingListService manages saved articles. URLs are unique across the
// collection; adding a duplicate is a silent no-op.
type ReadingListService struct {
	storage database.Store
	items   *store.Store[[]models.ReadingListItem]

	unreadItems *store.View[[]models.ReadingListItem]
	readItems   *store.View[[]models.ReadingListItem]

	now func() time.Time
}

func NewReadingListService(storage database.Store) *ReadingListService {
	var items []models.ReadingListItem
	storage.Load(database.KeyReadingList, &items)

	s := &ReadingListService{
		storage: storage,
		items:   store.New(items),
		now:     time.Now,
	}
	s.items.OnChange(func(v []models.ReadingListItem) {
		storage.Save(database.KeyReadingList, v)
	})

	s.unreadItems = store.NewView(func() []models.ReadingListItem {
		var out []models.ReadingListItem
		for _, item := range s.items.Get() {
			if !item.IsRead {
				out = append(out, item)
			}
		}
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].SavedAt.After(out[j].SavedAt)
		})
		return out
	}, s.items)

	s.readItems = store.NewView(func() []models.ReadingListItem {
		var out []models.ReadingListItem
		for _, item := range s.items.Get() {
			if item.IsRead {
				out = append(out, item)
			}
		}
		// Items with no readAt sort as oldest.
		sort.SliceStable(out, func(i, j int) bool {
			ti, tj := time.Time{}, time.Time{}
			if out[i].ReadAt != nil {
				ti = *out[i].ReadAt
			}
			if out[j].ReadAt != nil {
				tj = *out[j].ReadAt
			}
			return ti.After(tj)
		})
		return out
	}, s.items)

	return s
}

func (s *ReadingListService) Items() []models.ReadingListItem {
	return s.items.Get()
}

// UnreadItems returns unread items, newest saved first.
func (s *ReadingListService) UnreadItems() []models.ReadingListItem {
	return s.unreadItems.Get()
}

// ReadItems returns read items, most recently read first.
func (s *ReadingListService) ReadItems() []models.ReadingListItem {
	return s.readItems.Get()
}

func (s *ReadingListService) UnreadCount() int {
	return len(s.unreadItems.Get())
}

// AddItem prepends a new unread item. If any existing item already has the
// same URL the call does nothing.
func (s *ReadingListService) AddItem(title, url, description, favicon string) {
	s.items.Update(func(items []models.ReadingListItem) []models.ReadingListItem {
		for _, item := range items {
			if item.URL == url {
				return items
			}
		}
		newItem := models.ReadingListItem{
			ID:          uuid.NewString(),
			Title:       title,
			URL:         url,
			Description: description,
			Favicon:     favicon,
			IsRead:      false,
			SavedAt:     s.now(),
		}
		return append([]models.ReadingListItem{newItem}, items...)
	})
}

// UpdateItem merges title/description/favicon changes. Unknown id is a no-op.
func (s *ReadingListService) UpdateItem(id, title, description, favicon string) {
	s.items.Update(func(items []models.ReadingListItem) []models.ReadingListItem {
		out := append([]models.ReadingListItem{}, items...)
		for i := range out {
			if out[i].ID != id {
				continue
			}
			if title != "" {
				out[i].Title = title
			}
			if description != "" {
				out[i].Description = description
			}
			if favicon != "" {
				out[i].Favicon = favicon
			}
		}
		return out
	})
}

func (s *ReadingListService) RemoveItem(id string) {
	s.items.Update(func(items []models.ReadingListItem) []models.ReadingListItem {
		out := make([]models.ReadingListItem, 0, len(items))
		for _, item := range items {
			if item.ID != id {
				out = append(out, item)
			}
		}
		return out
	})
}

// ToggleRead flips the read flag, stamping readAt on the way to read and
// clearing it on the way back.
func (s *ReadingListService) ToggleRead(id string) {
	s.items.Update(func(items []models.ReadingListItem) []models.ReadingListItem {
		out := append([]models.ReadingListItem{}, items...)
		for i := range out {
			if out[i].ID != id {
				continue
			}
			if out[i].IsRead {
				out[i].IsRead = false
				out[i].ReadAt = nil
			} else {
				out[i].IsRead = true
				now := s.now()
				out[i].ReadAt = &now
			}
		}
		return out
	})
}

// MarkAsRead is the idempotent absolute variant of ToggleRead.
func (s *ReadingListService) MarkAsRead(id string) {
	s.items.Update(func(items []models.ReadingListItem) []models.ReadingListItem {
		out := append([]models.ReadingListItem{}, items...)
		for i := range out {
			if out[i].ID == id {
				out[i].IsRead = true
				now := s.now()
				out[i].ReadAt = &now
			}
		}
		return out
	})
}

func (s *ReadingListService) MarkAsUnread(id string) {
	s.items.Update(func(items []models.ReadingListItem) []models.ReadingListItem {
		out := append([]models.ReadingListItem{}, items...)
		for i := range out {
			if out[i].ID == id {
				out[i].IsRead = false
				out[i].ReadAt = nil
			}
		}
		return out
	})
}

// ClearRead removes every read item.
func (s *ReadingListService) ClearRead() {
	s.items.Update(func(items []models.ReadingListItem) []models.ReadingListItem {
		out := make([]models.ReadingListItem, 0, len(items))
		for _, item := range items {
			if !item.IsRead {
				out = append(out, item)
			}
		}
		return out
	})
}

func (s *ReadingListService) ClearAll() {
	s.items.Set([]models.ReadingListItem{})
}
