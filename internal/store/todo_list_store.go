package store

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/nhle/spacecontent/internal/model"
)

// TodoListStore implements TodoListRepository on SQLite.
type TodoListStore struct {
	db       *sqlx.DB
	validate *validator.Validate
}

var _ TodoListRepository = (*TodoListStore)(nil)

// Counts are derived from the item rows rather than stored on the list.
const selectTodoLists = `
	SELECT
		l.id AS id, l.space_id AS space_id, l.name AS name,
		l.description AS description, l.sort_order AS sort_order,
		l.created_at AS created_at, l.updated_at AS updated_at,
		(SELECT COUNT(*) FROM todo_items i WHERE i.list_id = l.id) AS total_item_count,
		(SELECT COUNT(*) FROM todo_items i WHERE i.list_id = l.id AND i.completed = 1) AS completed_item_count
	FROM todo_lists l`

// GetBySpace retrieves all todo lists of a space, ordered by sort_order.
func (s *TodoListStore) GetBySpace(ctx context.Context, spaceID string) ([]model.TodoList, error) {
	lists := []model.TodoList{}
	err := s.db.SelectContext(ctx, &lists,
		selectTodoLists+" WHERE l.space_id = ? ORDER BY l.sort_order, l.created_at", spaceID)
	if err != nil {
		return nil, classify(err, "querying todo lists of space %s", spaceID)
	}
	return lists, nil
}

// Create inserts a new todo list. Generates a UUID if ID is empty.
func (s *TodoListStore) Create(ctx context.Context, list model.TodoList) (model.TodoList, error) {
	if err := s.validate.Struct(list); err != nil {
		return model.TodoList{}, classify(err, "validating todo list")
	}
	if list.ID == "" {
		list.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	list.CreatedAt = now
	list.UpdatedAt = now
	list = list.WithCounts(0, 0)

	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO todo_lists (id, space_id, name, description, sort_order, created_at, updated_at)
		VALUES (:id, :space_id, :name, :description, :sort_order, :created_at, :updated_at)`,
		list,
	)
	if err != nil {
		return model.TodoList{}, classify(err, "creating todo list")
	}
	return list, nil
}

// Update writes the editable fields of an existing todo list.
func (s *TodoListStore) Update(ctx context.Context, list model.TodoList) (model.TodoList, error) {
	if err := s.validate.Struct(list); err != nil {
		return model.TodoList{}, classify(err, "validating todo list %s", list.ID)
	}
	list.UpdatedAt = time.Now().UTC()

	result, err := s.db.ExecContext(ctx, `
		UPDATE todo_lists SET
			space_id = ?, name = ?, description = ?, sort_order = ?, updated_at = ?
		WHERE id = ?`,
		list.SpaceID, list.Name, list.Description, list.SortOrder, list.UpdatedAt,
		list.ID,
	)
	if err != nil {
		return model.TodoList{}, classify(err, "updating todo list %s", list.ID)
	}
	if err := notFoundIfNone(result, "todo list", list.ID); err != nil {
		return model.TodoList{}, err
	}
	return list, nil
}

// Delete removes a todo list by ID. Cascades to todo_items.
func (s *TodoListStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM todo_lists WHERE id = ?", id)
	if err != nil {
		return classify(err, "deleting todo list %s", id)
	}
	return notFoundIfNone(result, "todo list", id)
}

// GetItems returns all items of a todo list, ordered by sort_order.
func (s *TodoListStore) GetItems(ctx context.Context, listID string) ([]model.TodoItem, error) {
	items := []model.TodoItem{}
	err := s.db.SelectContext(ctx, &items, `
		SELECT id, list_id, title, description, completed, due_date, sort_order, created_at, updated_at
		FROM todo_items WHERE list_id = ? ORDER BY sort_order`,
		listID)
	if err != nil {
		return nil, classify(err, "querying items of todo list %s", listID)
	}
	return items, nil
}

// CreateItem inserts a new item into a todo list.
func (s *TodoListStore) CreateItem(ctx context.Context, item model.TodoItem) (model.TodoItem, error) {
	if err := s.validate.Struct(item); err != nil {
		return model.TodoItem{}, classify(err, "validating todo item")
	}
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO todo_items (
			id, list_id, title, description, completed,
			due_date, sort_order, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.ListID, item.Title, item.Description, boolToInt(item.Completed),
		item.DueDate, item.SortOrder, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return model.TodoItem{}, classify(err, "creating item in todo list %s", item.ListID)
	}
	return item, nil
}

// UpdateItem writes every editable field of a todo item.
func (s *TodoListStore) UpdateItem(ctx context.Context, item model.TodoItem) (model.TodoItem, error) {
	if err := s.validate.Struct(item); err != nil {
		return model.TodoItem{}, classify(err, "validating todo item %s", item.ID)
	}
	item.UpdatedAt = time.Now().UTC()

	result, err := s.db.ExecContext(ctx, `
		UPDATE todo_items SET
			title = ?, description = ?, completed = ?, due_date = ?,
			sort_order = ?, updated_at = ?
		WHERE id = ? AND list_id = ?`,
		item.Title, item.Description, boolToInt(item.Completed), item.DueDate,
		item.SortOrder, item.UpdatedAt,
		item.ID, item.ListID,
	)
	if err != nil {
		return model.TodoItem{}, classify(err, "updating todo item %s", item.ID)
	}
	if err := notFoundIfNone(result, "todo item", item.ID); err != nil {
		return model.TodoItem{}, err
	}
	return item, nil
}

// DeleteItem removes a single item from a todo list.
func (s *TodoListStore) DeleteItem(ctx context.Context, itemID, listID string) error {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM todo_items WHERE id = ? AND list_id = ?", itemID, listID)
	if err != nil {
		return classify(err, "deleting todo item %s", itemID)
	}
	return notFoundIfNone(result, "todo item", itemID)
}

// UpdateItemSortOrders writes the sort_order of each item in one transaction.
func (s *TodoListStore) UpdateItemSortOrders(ctx context.Context, items []model.TodoItem) error {
	return updateSortOrders(ctx, s.db, "todo_items", "todo item", len(items), func(i int) (string, string, int) {
		return items[i].ID, items[i].ListID, items[i].SortOrder
	})
}

// updateSortOrders is shared by the list stores. at returns the id, list id
// and new sort order of the i-th item.
func updateSortOrders(
	ctx context.Context,
	db *sqlx.DB,
	table, resource string,
	n int,
	at func(i int) (id, listID string, sortOrder int),
) error {
	if n == 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return classify(err, "beginning transaction")
	}
	defer tx.Rollback()

	stmt, err := tx.PreparexContext(ctx,
		"UPDATE "+table+" SET sort_order = ?, updated_at = ? WHERE id = ? AND list_id = ?")
	if err != nil {
		return classify(err, "preparing sort order statement")
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for i := 0; i < n; i++ {
		id, listID, order := at(i)
		result, err := stmt.ExecContext(ctx, order, now, id, listID)
		if err != nil {
			return classify(err, "reordering %s %s", resource, id)
		}
		if err := notFoundIfNone(result, resource, id); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return classify(err, "committing sort orders")
	}
	return nil
}
