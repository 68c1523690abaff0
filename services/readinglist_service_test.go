package services

import (
	"testing"
	"time"

	"dashpad/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReadingList(t *testing.T) *ReadingListService {
	t.Helper()
	return NewReadingListService(database.NewMemory())
}

func TestReadingList_AddPrependsUnread(t *testing.T) {
	s := newReadingList(t)

	s.AddItem("First", "https://one.example", "", "")
	s.AddItem("Second", "https://two.example", "", "")

	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "Second", items[0].Title, "newest saved comes first")
	assert.False(t, items[0].IsRead)
	assert.Nil(t, items[0].ReadAt)
	assert.False(t, items[0].SavedAt.IsZero())
}

func TestReadingList_DuplicateURLIsNoOp(t *testing.T) {
	s := newReadingList(t)

	s.AddItem("Original", "https://same.example", "", "")
	before := s.Items()

	s.AddItem("Different title, same url", "https://same.example", "desc", "")

	assert.Equal(t, before, s.Items(), "duplicate add must not change the collection")
}

func TestReadingList_ToggleRead(t *testing.T) {
	s := newReadingList(t)
	s.AddItem("A", "https://a.example", "", "")
	id := s.Items()[0].ID

	s.ToggleRead(id)
	item := s.Items()[0]
	assert.True(t, item.IsRead)
	require.NotNil(t, item.ReadAt, "readAt stamped on transition to read")

	s.ToggleRead(id)
	item = s.Items()[0]
	assert.False(t, item.IsRead)
	assert.Nil(t, item.ReadAt, "readAt cleared on transition to unread")
}

func TestReadingList_MarkAsReadIsIdempotent(t *testing.T) {
	s := newReadingList(t)
	s.AddItem("A", "https://a.example", "", "")
	id := s.Items()[0].ID

	s.MarkAsRead(id)
	s.MarkAsRead(id)
	assert.True(t, s.Items()[0].IsRead)

	s.MarkAsUnread(id)
	s.MarkAsUnread(id)
	assert.False(t, s.Items()[0].IsRead)
	assert.Nil(t, s.Items()[0].ReadAt)
}

func TestReadingList_PartitionedViews(t *testing.T) {
	s := newReadingList(t)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	clock := base
	s.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}

	s.AddItem("A", "https://a.example", "", "")
	s.AddItem("B", "https://b.example", "", "")
	s.AddItem("C", "https://c.example", "", "")

	var idA, idB string
	for _, item := range s.Items() {
		switch item.Title {
		case "A":
			idA = item.ID
		case "B":
			idB = item.ID
		}
	}

	s.MarkAsRead(idA)
	s.MarkAsRead(idB)

	t.Run("unread newest-saved-first", func(t *testing.T) {
		unread := s.UnreadItems()
		require.Len(t, unread, 1)
		assert.Equal(t, "C", unread[0].Title)
		assert.Equal(t, 1, s.UnreadCount())
	})

	t.Run("read newest-read-first", func(t *testing.T) {
		read := s.ReadItems()
		require.Len(t, read, 2)
		assert.Equal(t, "B", read[0].Title, "B was marked read last")
		assert.Equal(t, "A", read[1].Title)
	})
}

func TestReadingList_ClearRead(t *testing.T) {
	s := newReadingList(t)
	s.AddItem("A", "https://a.example", "", "")
	s.AddItem("B", "https://b.example", "", "")
	s.MarkAsRead(s.Items()[0].ID)

	s.ClearRead()

	items := s.Items()
	require.Len(t, items, 1)
	assert.False(t, items[0].IsRead)
}

func TestReadingList_ClearAll(t *testing.T) {
	s := newReadingList(t)
	s.AddItem("A", "https://a.example", "", "")

	s.ClearAll()
	assert.Empty(t, s.Items())
}

func TestReadingList_PersistsAcrossReload(t *testing.T) {
	storage := database.NewMemory()
	s := NewReadingListService(storage)
	s.AddItem("A", "https://a.example", "", "")

	reloaded := NewReadingListService(storage)
	require.Len(t, reloaded.Items(), 1)
	assert.Equal(t, "A", reloaded.Items()[0].Title)
	assert.Equal(t, 1, reloaded.UnreadCount())
}

func TestReadingList_UpdateItem(t *testing.T) {
	s := newReadingList(t)
	s.AddItem("Old", "https://a.example", "", "")
	id := s.Items()[0].ID

	s.UpdateItem(id, "New", "now with description", "")

	item := s.Items()[0]
	assert.Equal(t, "New", item.Title)
	assert.Equal(t, "now with description", item.Description)
}
