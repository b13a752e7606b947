package content

import (
	"context"

	"github.com/nhle/spacecontent/internal/model"
)

// CreateTodoList persists a new todo list at the end of the current space.
func (s *Store) CreateTodoList(ctx context.Context, list model.TodoList) (model.TodoList, error) {
	return createParent(ctx, s, s.todoLists, list.WithCounts(0, 0))
}

// UpdateTodoList persists changes to a loaded todo list. Item counts are
// kept from the in-memory list.
func (s *Store) UpdateTodoList(ctx context.Context, list model.TodoList) (model.TodoList, error) {
	return updateParent(ctx, s, s.todoLists, list)
}

// DeleteTodoList removes a loaded todo list and drops its cached items.
func (s *Store) DeleteTodoList(ctx context.Context, id string) error {
	return deleteParent(ctx, s, s.todoLists, id)
}

// LoadTodoItems returns the items of a todo list, fetching them on first use.
func (s *Store) LoadTodoItems(ctx context.Context, listID string) ([]model.TodoItem, error) {
	return loadItems(ctx, s, s.todoItems, listID)
}

// CreateTodoItem appends an item to its list.
func (s *Store) CreateTodoItem(ctx context.Context, item model.TodoItem) (model.TodoItem, error) {
	return createItem(ctx, s, s.todoItems, item)
}

// UpdateTodoItem persists changes to an item. The item keeps its position.
func (s *Store) UpdateTodoItem(ctx context.Context, item model.TodoItem) (model.TodoItem, error) {
	return updateItem(ctx, s, s.todoItems, item)
}

// ToggleTodoItem flips the completed flag of an item.
func (s *Store) ToggleTodoItem(ctx context.Context, listID, itemID string) (model.TodoItem, error) {
	return toggleItem(ctx, s, s.todoItems, listID, itemID)
}

// DeleteTodoItem removes an item and closes the gap in sort orders.
func (s *Store) DeleteTodoItem(ctx context.Context, itemID, listID string) error {
	return deleteItem(ctx, s, s.todoItems, itemID, listID)
}

// ReorderTodoItems applies the sort orders carried by items, which must
// cover every item of the list. No other field is taken from items.
func (s *Store) ReorderTodoItems(ctx context.Context, listID string, items []model.TodoItem) error {
	return reorderItems(ctx, s, s.todoItems, listID, items)
}
