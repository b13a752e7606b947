package store

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/nhle/spacecontent/internal/model"
)

// GenericListStore implements GenericListRepository on SQLite.
type GenericListStore struct {
	db       *sqlx.DB
	validate *validator.Validate
}

var _ GenericListRepository = (*GenericListStore)(nil)

const selectGenericLists = `
	SELECT
		l.id AS id, l.space_id AS space_id, l.name AS name,
		l.description AS description, l.sort_order AS sort_order,
		l.created_at AS created_at, l.updated_at AS updated_at,
		(SELECT COUNT(*) FROM list_items i WHERE i.list_id = l.id) AS total_item_count,
		(SELECT COUNT(*) FROM list_items i WHERE i.list_id = l.id AND i.checked = 1) AS checked_item_count
	FROM generic_lists l`

// GetBySpace retrieves all generic lists of a space, ordered by sort_order.
func (s *GenericListStore) GetBySpace(ctx context.Context, spaceID string) ([]model.GenericList, error) {
	lists := []model.GenericList{}
	err := s.db.SelectContext(ctx, &lists,
		selectGenericLists+" WHERE l.space_id = ? ORDER BY l.sort_order, l.created_at", spaceID)
	if err != nil {
		return nil, classify(err, "querying generic lists of space %s", spaceID)
	}
	return lists, nil
}

// Create inserts a new generic list.
func (s *GenericListStore) Create(ctx context.Context, list model.GenericList) (model.GenericList, error) {
	if err := s.validate.Struct(list); err != nil {
		return model.GenericList{}, classify(err, "validating generic list")
	}
	if list.ID == "" {
		list.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	list.CreatedAt = now
	list.UpdatedAt = now
	list = list.WithCounts(0, 0)

	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO generic_lists (id, space_id, name, description, sort_order, created_at, updated_at)
		VALUES (:id, :space_id, :name, :description, :sort_order, :created_at, :updated_at)`,
		list,
	)
	if err != nil {
		return model.GenericList{}, classify(err, "creating generic list")
	}
	return list, nil
}

// Update writes the editable fields of an existing generic list.
func (s *GenericListStore) Update(ctx context.Context, list model.GenericList) (model.GenericList, error) {
	if err := s.validate.Struct(list); err != nil {
		return model.GenericList{}, classify(err, "validating generic list %s", list.ID)
	}
	list.UpdatedAt = time.Now().UTC()

	result, err := s.db.ExecContext(ctx, `
		UPDATE generic_lists SET
			space_id = ?, name = ?, description = ?, sort_order = ?, updated_at = ?
		WHERE id = ?`,
		list.SpaceID, list.Name, list.Description, list.SortOrder, list.UpdatedAt,
		list.ID,
	)
	if err != nil {
		return model.GenericList{}, classify(err, "updating generic list %s", list.ID)
	}
	if err := notFoundIfNone(result, "generic list", list.ID); err != nil {
		return model.GenericList{}, err
	}
	return list, nil
}

// Delete removes a generic list by ID. Cascades to list_items.
func (s *GenericListStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM generic_lists WHERE id = ?", id)
	if err != nil {
		return classify(err, "deleting generic list %s", id)
	}
	return notFoundIfNone(result, "generic list", id)
}

// GetItems returns all items of a generic list, ordered by sort_order.
func (s *GenericListStore) GetItems(ctx context.Context, listID string) ([]model.ListItem, error) {
	items := []model.ListItem{}
	err := s.db.SelectContext(ctx, &items, `
		SELECT id, list_id, title, checked, sort_order, created_at, updated_at
		FROM list_items WHERE list_id = ? ORDER BY sort_order`,
		listID)
	if err != nil {
		return nil, classify(err, "querying items of generic list %s", listID)
	}
	return items, nil
}

// CreateItem inserts a new item into a generic list.
func (s *GenericListStore) CreateItem(ctx context.Context, item model.ListItem) (model.ListItem, error) {
	if err := s.validate.Struct(item); err != nil {
		return model.ListItem{}, classify(err, "validating list item")
	}
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO list_items (id, list_id, title, checked, sort_order, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.ListID, item.Title, boolToInt(item.Checked),
		item.SortOrder, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return model.ListItem{}, classify(err, "creating item in generic list %s", item.ListID)
	}
	return item, nil
}

// UpdateItem writes title, checked state and sort order of a list item.
func (s *GenericListStore) UpdateItem(ctx context.Context, item model.ListItem) (model.ListItem, error) {
	if err := s.validate.Struct(item); err != nil {
		return model.ListItem{}, classify(err, "validating list item %s", item.ID)
	}
	item.UpdatedAt = time.Now().UTC()

	result, err := s.db.ExecContext(ctx, `
		UPDATE list_items SET title = ?, checked = ?, sort_order = ?, updated_at = ?
		WHERE id = ? AND list_id = ?`,
		item.Title, boolToInt(item.Checked), item.SortOrder, item.UpdatedAt,
		item.ID, item.ListID,
	)
	if err != nil {
		return model.ListItem{}, classify(err, "updating list item %s", item.ID)
	}
	if err := notFoundIfNone(result, "list item", item.ID); err != nil {
		return model.ListItem{}, err
	}
	return item, nil
}

// DeleteItem removes a single item from a generic list.
func (s *GenericListStore) DeleteItem(ctx context.Context, itemID, listID string) error {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM list_items WHERE id = ? AND list_id = ?", itemID, listID)
	if err != nil {
		return classify(err, "deleting list item %s", itemID)
	}
	return notFoundIfNone(result, "list item", itemID)
}

// UpdateItemSortOrders writes the sort_order of each item in one transaction.
func (s *GenericListStore) UpdateItemSortOrders(ctx context.Context, items []model.ListItem) error {
	return updateSortOrders(ctx, s.db, "list_items", "list item", len(items), func(i int) (string, string, int) {
		return items[i].ID, items[i].ListID, items[i].SortOrder
	})
}
