package store

import (
	"context"

	"github.com/nhle/spacecontent/internal/model"
)

// ParentRepository persists one kind of space-scoped entity.
type ParentRepository[P any] interface {
	// GetBySpace returns every entity owned by spaceID, ordered by sort order.
	GetBySpace(ctx context.Context, spaceID string) ([]P, error)
	Create(ctx context.Context, p P) (P, error)
	Update(ctx context.Context, p P) (P, error)
	Delete(ctx context.Context, id string) error
}

// ItemRepository persists the child items of one kind of list.
type ItemRepository[I any] interface {
	// GetItems returns the items of parentID, ordered by sort order.
	GetItems(ctx context.Context, parentID string) ([]I, error)
	CreateItem(ctx context.Context, item I) (I, error)
	UpdateItem(ctx context.Context, item I) (I, error)
	DeleteItem(ctx context.Context, itemID, parentID string) error
	// UpdateItemSortOrders writes only the sort order of each given item.
	UpdateItemSortOrders(ctx context.Context, items []I) error
}

// ContainerRepository persists a parent kind together with its items.
type ContainerRepository[P, I any] interface {
	ParentRepository[P]
	ItemRepository[I]
}

// TodoListRepository persists todo lists and their items.
type TodoListRepository interface {
	ContainerRepository[model.TodoList, model.TodoItem]
}

// GenericListRepository persists generic lists and their items.
type GenericListRepository interface {
	ContainerRepository[model.GenericList, model.ListItem]
}

// NoteRepository persists notes.
type NoteRepository interface {
	ParentRepository[model.Note]
}

// Repositories bundles one repository per content kind.
type Repositories struct {
	TodoLists    TodoListRepository
	GenericLists GenericListRepository
	Notes        NoteRepository
}
