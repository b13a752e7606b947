package content

import (
	"context"

	"github.com/nhle/spacecontent/internal/model"
)

func (s *Store) CreateGenericList(ctx context.Context, list model.GenericList) (model.GenericList, error) {
	return createParent(ctx, s, s.genericLists, list.WithCounts(0, 0))
}

func (s *Store) UpdateGenericList(ctx context.Context, list model.GenericList) (model.GenericList, error) {
	return updateParent(ctx, s, s.genericLists, list)
}

func (s *Store) DeleteGenericList(ctx context.Context, id string) error {
	return deleteParent(ctx, s, s.genericLists, id)
}

func (s *Store) LoadListItems(ctx context.Context, listID string) ([]model.ListItem, error) {
	return loadItems(ctx, s, s.listItems, listID)
}

func (s *Store) CreateListItem(ctx context.Context, item model.ListItem) (model.ListItem, error) {
	return createItem(ctx, s, s.listItems, item)
}

func (s *Store) UpdateListItem(ctx context.Context, item model.ListItem) (model.ListItem, error) {
	return updateItem(ctx, s, s.listItems, item)
}

// ToggleListItem flips the checked flag of an item.
func (s *Store) ToggleListItem(ctx context.Context, listID, itemID string) (model.ListItem, error) {
	return toggleItem(ctx, s, s.listItems, listID, itemID)
}

func (s *Store) DeleteListItem(ctx context.Context, itemID, listID string) error {
	return deleteItem(ctx, s, s.listItems, itemID, listID)
}

func (s *Store) ReorderListItems(ctx context.Context, listID string, items []model.ListItem) error {
	return reorderItems(ctx, s, s.listItems, listID, items)
}
