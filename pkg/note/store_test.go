package note

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stepClock returns t0, t0+1s, t0+2s, ...
func stepClock(t0 time.Time) func() time.Time {
	var mu sync.Mutex
	next := t0
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now := next
		next = next.Add(time.Second)
		return now
	}
}

func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("n%d", n)
	}
}

func newTestStore(opts ...Option) *Store {
	base := []Option{
		WithClock(stepClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))),
		WithIDGenerator(seqIDs()),
	}
	return NewStore(append(base, opts...)...)
}

func TestCreate(t *testing.T) {
	s := newTestStore()

	n := s.Create()
	assert.Equal(t, "n1", n.ID)
	assert.Empty(t, n.Title)
	assert.Empty(t, n.Content)
	assert.Equal(t, n.CreatedAt, n.UpdatedAt)

	sel, ok := s.Selected()
	require.True(t, ok)
	assert.Equal(t, n.ID, sel.ID)
}

func TestCreateUsesUUIDByDefault(t *testing.T) {
	s := NewStore()
	a, b := s.Create(), s.Create()
	assert.Len(t, a.ID, 36)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestCreatePrependsNewNotes(t *testing.T) {
	s := newTestStore()
	s.Create()
	s.Create()
	s.Create()

	var ids []string
	for _, n := range s.List() {
		ids = append(ids, n.ID)
	}
	assert.Equal(t, []string{"n3", "n2", "n1"}, ids)
}

func TestUpdateMergesPartialFields(t *testing.T) {
	s := newTestStore()
	n := s.Create()

	updated, err := s.Update(n.ID, Patch{Content: String("hello")})
	require.NoError(t, err)
	assert.Equal(t, "hello", updated.Content)
	assert.Empty(t, updated.Title)

	updated, err = s.Update(n.ID, Patch{Title: String("Greeting"), Source: &Source{Kind: "markdown"}})
	require.NoError(t, err)
	assert.Equal(t, "hello", updated.Content)
	assert.Equal(t, "Greeting", updated.Title)
	require.NotNil(t, updated.Source)
	assert.Equal(t, "markdown", updated.Source.Kind)
}

func TestUpdateAdvancesUpdatedAt(t *testing.T) {
	s := newTestStore()
	n := s.Create()

	prev := n.UpdatedAt
	for i := 0; i < 5; i++ {
		updated, err := s.Update(n.ID, Patch{Content: String(fmt.Sprint(i))})
		require.NoError(t, err)
		assert.False(t, updated.UpdatedAt.Before(prev))
		assert.True(t, updated.UpdatedAt.After(prev))
		prev = updated.UpdatedAt
	}
}

func TestUpdateNeverMovesBackwards(t *testing.T) {
	times := []time.Time{
		time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 1, 11, 0, 0, 0, time.UTC), // clock stepped back
	}
	i := 0
	s := NewStore(WithClock(func() time.Time {
		now := times[min(i, len(times)-1)]
		i++
		return now
	}))

	n := s.Create()
	updated, err := s.Update(n.ID, Patch{Content: String("x")})
	require.NoError(t, err)
	assert.Equal(t, n.UpdatedAt, updated.UpdatedAt)
}

func TestUpdateNotFound(t *testing.T) {
	s := newTestStore()
	_, err := s.Update("missing", Patch{Content: String("x")})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteRemovesNote(t *testing.T) {
	s := newTestStore()
	a := s.Create()
	s.Create()

	require.NoError(t, s.Delete(a.ID))
	for _, n := range s.List() {
		assert.NotEqual(t, a.ID, n.ID)
	}
	_, err := s.Get(a.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete(a.ID), ErrNotFound)
}

func TestDeleteReselection(t *testing.T) {
	tests := []struct {
		name     string
		deleteAt int
		want     string
	}{
		{name: "middle selects preceding", deleteAt: 1, want: "n3"},
		{name: "last selects preceding", deleteAt: 2, want: "n2"},
		{name: "first selects new first", deleteAt: 0, want: "n2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore()
			s.Create()
			s.Create()
			s.Create() // order: n3, n2, n1

			victim := s.List()[tt.deleteAt]
			require.NoError(t, s.Select(victim.ID))
			require.NoError(t, s.Delete(victim.ID))

			sel, ok := s.Selected()
			require.True(t, ok)
			assert.Equal(t, tt.want, sel.ID)
		})
	}
}

func TestDeleteSoleNoteClearsSelection(t *testing.T) {
	s := newTestStore()
	n := s.Create()

	require.NoError(t, s.Delete(n.ID))
	_, ok := s.Selected()
	assert.False(t, ok)
	assert.Empty(t, s.List())
}

func TestDeleteUnselectedKeepsSelection(t *testing.T) {
	s := newTestStore()
	a := s.Create()
	b := s.Create()
	require.NoError(t, s.Select(a.ID))

	require.NoError(t, s.Delete(b.ID))
	sel, ok := s.Selected()
	require.True(t, ok)
	assert.Equal(t, a.ID, sel.ID)
}

func TestSelectNotFound(t *testing.T) {
	s := newTestStore()
	assert.ErrorIs(t, s.Select("nope"), ErrNotFound)
}

func TestListReturnsCopies(t *testing.T) {
	s := newTestStore()
	n := s.Create()
	_, err := s.Update(n.ID, Patch{Source: &Source{Kind: "voice"}})
	require.NoError(t, err)

	list := s.List()
	list[0].Title = "mutated"
	list[0].Source.Kind = "mutated"

	got, err := s.Get(n.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Title)
	assert.Equal(t, "voice", got.Source.Kind)
}

func TestWithNotesSeedsInOrder(t *testing.T) {
	s := NewStore(WithNotes(SampleNotes()...))

	list := s.List()
	require.Len(t, list, 4)
	assert.Equal(t, "1", list[0].ID)
	assert.Equal(t, "Grocery List", list[3].Title)

	sel, ok := s.Selected()
	require.True(t, ok)
	assert.Equal(t, "1", sel.ID)
}

func TestInsert(t *testing.T) {
	s := newTestStore()
	s.Create()

	n, err := s.Insert(Note{Title: "Imported", Content: "body", Source: &Source{Kind: "presentation", Filename: "deck.pptx"}})
	require.NoError(t, err)
	assert.Equal(t, "n2", n.ID)
	assert.False(t, n.CreatedAt.IsZero())
	assert.Equal(t, n.CreatedAt, n.UpdatedAt)
	assert.Equal(t, n.ID, s.List()[0].ID)

	_, err = s.Insert(Note{ID: n.ID})
	assert.Error(t, err)
}

func TestConcurrentUpdates(t *testing.T) {
	s := NewStore()
	n := s.Create()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.Update(n.ID, Patch{Content: String(fmt.Sprint(i))})
			assert.NoError(t, err)
			s.List()
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 1, s.Len())
}
