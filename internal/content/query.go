package content

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/nhle/spacecontent/internal/model"
)

// Content returns the collections selected by filter, tagged by kind, in the
// order todo lists, generic lists, notes.
func (s *Store) Content(filter model.ContentFilter) []model.Content {
	return s.collect(filter, nil)
}

// Count returns the number of entities selected by filter.
func (s *Store) Count(filter model.ContentFilter) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	if filter.Includes(model.KindTodoList) {
		n += len(s.todoLists.items)
	}
	if filter.Includes(model.KindGenericList) {
		n += len(s.genericLists.items)
	}
	if filter.Includes(model.KindNote) {
		n += len(s.notes.items)
	}
	return n
}

// Search returns every entity whose name (lists) or title or content
// (notes) contains query, ignoring case. A blank query matches everything.
func (s *Store) Search(query string) []model.Content {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return s.Content(model.FilterAll)
	}
	return s.collect(model.FilterAll, func(c model.Content) bool {
		if strings.Contains(strings.ToLower(c.Title()), q) {
			return true
		}
		return c.Kind == model.KindNote && strings.Contains(strings.ToLower(c.Note.Content), q)
	})
}

func (s *Store) collect(filter model.ContentFilter, match func(model.Content) bool) []model.Content {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Content, 0, len(s.todoLists.items)+len(s.genericLists.items)+len(s.notes.items))
	add := func(c model.Content) {
		if match == nil || match(c) {
			out = append(out, c)
		}
	}
	if filter.Includes(model.KindTodoList) {
		for _, l := range s.todoLists.items {
			add(model.TodoListContent(l))
		}
	}
	if filter.Includes(model.KindGenericList) {
		for _, l := range s.genericLists.items {
			add(model.GenericListContent(l))
		}
	}
	if filter.Includes(model.KindNote) {
		for _, n := range s.notes.items {
			add(model.NoteContent(n))
		}
	}
	return out
}

// TodoListsDueOn returns the todo lists holding at least one item due on
// day's calendar date. Items of every list are loaded on demand, so this
// read may hit the repository.
func (s *Store) TodoListsDueOn(ctx context.Context, day time.Time) ([]model.TodoList, error) {
	var ids []string
	for _, list := range s.TodoLists() {
		items, err := loadItems(ctx, s, s.todoItems, list.ID)
		if err != nil {
			return nil, err
		}
		if slices.ContainsFunc(items, func(item model.TodoItem) bool { return item.DueOn(day) }) {
			ids = append(ids, list.ID)
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	// Loading may have refreshed counts, so return the current values.
	lists := make([]model.TodoList, 0, len(ids))
	for _, id := range ids {
		if list, ok := s.todoLists.find(id); ok {
			lists = append(lists, list)
		}
	}
	return lists, nil
}
