package services

import (
	"dashpad/database"
	"dashpad/models"
	"dashpad/store"

	"github.com/google/uuid"
)

// QuickLinksService manages the ordered shortcut row. Link order values are
// kept dense and zero-based across every add, remove, and reorder.
type QuickLinksService struct {
	storage database.Store
	links   *store.Store[[]models.QuickLink]
}

func NewQuickLinksService(storage database.Store) *QuickLinksService {
	links := models.DefaultQuickLinks()
	storage.Load(database.KeyQuickLinks, &links)

	s := &QuickLinksService{
		storage: storage,
		links:   store.New(links),
	}
	s.links.OnChange(func(v []models.QuickLink) {
		storage.Save(database.KeyQuickLinks, v)
	})
	return s
}

func (s *QuickLinksService) Links() []models.QuickLink {
	return s.links.Get()
}

// AddLink appends a link at the end of the row.
func (s *QuickLinksService) AddLink(title, url, favicon string) models.QuickLink {
	link := models.QuickLink{
		ID:      uuid.NewString(),
		Title:   title,
		URL:     url,
		Favicon: favicon,
	}
	s.links.Update(func(links []models.QuickLink) []models.QuickLink {
		link.Order = len(links)
		return append(append([]models.QuickLink{}, links...), link)
	})
	return link
}

// UpdateLink merges title/url/favicon changes into the link. Empty fields
// are left untouched; an unknown id is a silent no-op.
func (s *QuickLinksService) UpdateLink(id, title, url, favicon string) {
	s.links.Update(func(links []models.QuickLink) []models.QuickLink {
		out := append([]models.QuickLink{}, links...)
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

// RemoveLink deletes the link and re-indexes the remainder to a dense
// 0..n-1 order, preserving relative order. Unknown id is a no-op.
func (s *QuickLinksService) RemoveLink(id string) {
	s.links.Update(func(links []models.QuickLink) []models.QuickLink {
		out := make([]models.QuickLink, 0, len(links))
		for _, l := range links {
			if l.ID != id {
				out = append(out, l)
			}
		}
		return reindexLinks(out)
	})
}

// ReorderLinks moves the link at fromIndex to toIndex and re-indexes.
// Callers supply valid indices; anything out of range is ignored.
func (s *QuickLinksService) ReorderLinks(fromIndex, toIndex int) {
	s.links.Update(func(links []models.QuickLink) []models.QuickLink {
		if fromIndex < 0 || fromIndex >= len(links) || toIndex < 0 || toIndex >= len(links) {
			return links
		}
		out := append([]models.QuickLink{}, links...)
		moved := out[fromIndex]
		out = append(out[:fromIndex], out[fromIndex+1:]...)
		out = append(out[:toIndex], append([]models.QuickLink{moved}, out[toIndex:]...)...)
		return reindexLinks(out)
	})
}

func (s *QuickLinksService) ResetToDefaults() {
	s.links.Set(models.DefaultQuickLinks())
}

func reindexLinks(links []models.QuickLink) []models.QuickLink {
	for i := range links {
		links[i].Order = i
	}
	return links
}
