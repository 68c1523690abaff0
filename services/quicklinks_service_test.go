package services

import (
	"testing"

	"dashpad/database"
	"dashpad/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newQuickLinks(t *testing.T) (*QuickLinksService, *database.Memory) {
	t.Helper()
	storage := database.NewMemory()
	// Start empty instead of with the default six links.
	storage.Save(database.KeyQuickLinks, []models.QuickLink{})
	return NewQuickLinksService(storage), storage
}

func assertDenseOrder(t *testing.T, links []models.QuickLink) {
	t.Helper()
	for i, l := range links {
		assert.Equal(t, i, l.Order, "link %q at position %d", l.Title, i)
	}
}

func TestQuickLinks_AddAppendsAtEnd(t *testing.T) {
	s, _ := newQuickLinks(t)

	a := s.AddLink("A", "https://a.example", "")
	b := s.AddLink("B", "https://b.example", "")

	assert.Equal(t, 0, a.Order)
	assert.Equal(t, 1, b.Order)
	assertDenseOrder(t, s.Links())
}

func TestQuickLinks_RemoveReindexes(t *testing.T) {
	s, _ := newQuickLinks(t)

	s.AddLink("A", "https://a.example", "")
	b := s.AddLink("B", "https://b.example", "")
	s.AddLink("C", "https://c.example", "")

	s.RemoveLink(b.ID)

	links := s.Links()
	require.Len(t, links, 2)
	assert.Equal(t, "A", links[0].Title)
	assert.Equal(t, "C", links[1].Title)
	assertDenseOrder(t, links)
}

func TestQuickLinks_RemoveUnknownIsNoOp(t *testing.T) {
	s, _ := newQuickLinks(t)
	s.AddLink("A", "https://a.example", "")

	s.RemoveLink("nope")

	assert.Len(t, s.Links(), 1)
}

func TestQuickLinks_Reorder(t *testing.T) {
	s, _ := newQuickLinks(t)
	s.AddLink("A", "https://a.example", "")
	s.AddLink("B", "https://b.example", "")
	s.AddLink("C", "https://c.example", "")

	t.Run("moves forward", func(t *testing.T) {
		s.ReorderLinks(0, 2)
		links := s.Links()
		assert.Equal(t, []string{"B", "C", "A"}, titles(links))
		assertDenseOrder(t, links)
	})

	t.Run("moves backward", func(t *testing.T) {
		s.ReorderLinks(2, 0)
		links := s.Links()
		assert.Equal(t, []string{"A", "B", "C"}, titles(links))
		assertDenseOrder(t, links)
	})

	t.Run("ignores out-of-range indices", func(t *testing.T) {
		before := titles(s.Links())
		s.ReorderLinks(-1, 1)
		s.ReorderLinks(0, 99)
		assert.Equal(t, before, titles(s.Links()))
	})
}

func TestQuickLinks_OrderStaysDenseAcrossMixedOps(t *testing.T) {
	s, _ := newQuickLinks(t)

	var ids []string
	for _, name := range []string{"A", "B", "C", "D", "E"} {
		ids = append(ids, s.AddLink(name, "https://"+name+".example", "").ID)
	}
	assertDenseOrder(t, s.Links())

	s.RemoveLink(ids[2])
	assertDenseOrder(t, s.Links())

	s.ReorderLinks(3, 0)
	assertDenseOrder(t, s.Links())

	s.RemoveLink(ids[0])
	s.AddLink("F", "https://f.example", "")
	assertDenseOrder(t, s.Links())
}

func TestQuickLinks_PersistsOnChange(t *testing.T) {
	s, storage := newQuickLinks(t)
	s.AddLink("A", "https://a.example", "")

	var persisted []models.QuickLink
	require.True(t, storage.Load(database.KeyQuickLinks, &persisted))
	require.Len(t, persisted, 1)
	assert.Equal(t, "A", persisted[0].Title)

	// A fresh service over the same storage sees the same state.
	reloaded := NewQuickLinksService(storage)
	assert.Equal(t, s.Links(), reloaded.Links())
}

func TestQuickLinks_DefaultsWhenStorageEmpty(t *testing.T) {
	s := NewQuickLinksService(database.NewMemory())
	assert.Len(t, s.Links(), 6)
	assertDenseOrder(t, s.Links())
}

func TestQuickLinks_ResetToDefaults(t *testing.T) {
	s, _ := newQuickLinks(t)
	s.AddLink("A", "https://a.example", "")

	s.ResetToDefaults()
	assert.Len(t, s.Links(), 6)
}

func titles(links []models.QuickLink) []string {
	out := make([]string, len(links))
	for i, l := range links {
		out[i] = l.Title
	}
	return out
}
