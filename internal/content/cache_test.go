package content

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/spacecontent/internal/model"
)

func TestItemCache_GetPutInvalidate(t *testing.T) {
	c := NewItemCache[model.ListItem]()

	_, ok := c.Get("l1")
	assert.False(t, ok)

	c.Put("l1", []model.ListItem{{ID: "a"}, {ID: "b", SortOrder: 1}})
	items, ok := c.Get("l1")
	require.True(t, ok)
	assert.Len(t, items, 2)
	assert.Equal(t, 1, c.Len())

	c.Invalidate("l1")
	_, ok = c.Get("l1")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestItemCache_EmptyEntryIsAHit(t *testing.T) {
	c := NewItemCache[model.TodoItem]()
	c.Put("l1", nil)

	items, ok := c.Get("l1")
	assert.True(t, ok)
	assert.Empty(t, items)
}

func TestItemCache_CopiesOnGetAndPut(t *testing.T) {
	c := NewItemCache[model.ListItem]()
	in := []model.ListItem{{ID: "a", Title: "original"}}
	c.Put("l1", in)

	in[0].Title = "mutated after put"
	out, _ := c.Get("l1")
	assert.Equal(t, "original", out[0].Title)

	out[0].Title = "mutated after get"
	again, _ := c.Get("l1")
	assert.Equal(t, "original", again[0].Title)
}

func TestItemCache_Clear(t *testing.T) {
	c := NewItemCache[model.ListItem]()
	c.Put("a", nil)
	c.Put("b", nil)

	c.Clear()
	assert.Equal(t, 0, c.Len())
}

func TestItemCache_DeepCopiesDueDates(t *testing.T) {
	c := NewItemCache[model.TodoItem]()
	due := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	c.Put("l1", []model.TodoItem{{ID: "a", ListID: "l1", DueDate: &due}})

	due = due.AddDate(1, 0, 0)
	items, ok := c.Get("l1")
	require.True(t, ok)
	*items[0].DueDate = time.Time{}

	items, _ = c.Get("l1")
	require.NotNil(t, items[0].DueDate)
	assert.Equal(t, 2025, items[0].DueDate.Year())
}
