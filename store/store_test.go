package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStore_SetAndGet(t *testing.T) {
	s := New(1)
	assert.Equal(t, 1, s.Get())

	s.Set(2)
	assert.Equal(t, 2, s.Get())
}

func TestStore_Update(t *testing.T) {
	s := New([]string{"a"})
	s.Update(func(v []string) []string {
		return append(v, "b")
	})
	assert.Equal(t, []string{"a", "b"}, s.Get())
}

func TestStore_OnChange(t *testing.T) {
	t.Run("notifies listeners with the committed value", func(t *testing.T) {
		s := New(0)
		var seen []int
		s.OnChange(func(v int) { seen = append(seen, v) })

		s.Set(1)
		s.Update(func(v int) int { return v + 10 })

		assert.Equal(t, []int{1, 11}, seen)
	})

	t.Run("listeners registered after construction miss the initial value", func(t *testing.T) {
		s := New(42)
		called := false
		s.OnChange(func(int) { called = true })
		assert.False(t, called)
	})
}

func TestStore_VersionAdvancesPerMutation(t *testing.T) {
	s := New("x")
	assert.Equal(t, uint64(0), s.Version())

	s.Set("y")
	s.Update(func(v string) string { return v })
	assert.Equal(t, uint64(2), s.Version())
}

func TestView_CachesUntilSourceChanges(t *testing.T) {
	s := New(2)
	computes := 0
	double := NewView(func() int {
		computes++
		return s.Get() * 2
	}, s)

	assert.Equal(t, 4, double.Get())
	assert.Equal(t, 4, double.Get())
	assert.Equal(t, 1, computes)

	s.Set(3)
	assert.Equal(t, 6, double.Get())
	assert.Equal(t, 2, computes)
}

func TestView_MultipleSources(t *testing.T) {
	a := New(1)
	b := New(10)
	sum := NewView(func() int {
		return a.Get() + b.Get()
	}, a, b)

	assert.Equal(t, 11, sum.Get())

	b.Set(20)
	assert.Equal(t, 21, sum.Get())

	a.Set(5)
	assert.Equal(t, 25, sum.Get())
}
