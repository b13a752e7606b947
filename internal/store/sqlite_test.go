package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/spacecontent/internal/apperror"
	"github.com/nhle/spacecontent/internal/model"
	"github.com/nhle/spacecontent/tests/testutil"
)

func TestTodoListStore_CreateAndGetBySpace(t *testing.T) {
	ctx := context.Background()
	repo := testutil.NewTestStore(t).TodoLists()

	work, err := repo.Create(ctx, model.TodoList{SpaceID: "space-1", Name: "Work Tasks"})
	require.NoError(t, err)
	assert.NotEmpty(t, work.ID)
	assert.False(t, work.CreatedAt.IsZero())

	_, err = repo.Create(ctx, model.TodoList{SpaceID: "space-2", Name: "Elsewhere"})
	require.NoError(t, err)

	lists, err := repo.GetBySpace(ctx, "space-1")
	require.NoError(t, err)
	require.Len(t, lists, 1)
	assert.Equal(t, "Work Tasks", lists[0].Name)
	assert.Equal(t, 0, lists[0].TotalItemCount)
}

func TestTodoListStore_CountsDerivedFromItems(t *testing.T) {
	ctx := context.Background()
	repo := testutil.NewTestStore(t).TodoLists()

	list, err := repo.Create(ctx, model.TodoList{SpaceID: "s", Name: "L"})
	require.NoError(t, err)

	due := time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)
	_, err = repo.CreateItem(ctx, model.TodoItem{ListID: list.ID, Title: "A", DueDate: &due})
	require.NoError(t, err)
	_, err = repo.CreateItem(ctx, model.TodoItem{ListID: list.ID, Title: "B", Completed: true, SortOrder: 1})
	require.NoError(t, err)

	lists, err := repo.GetBySpace(ctx, "s")
	require.NoError(t, err)
	require.Len(t, lists, 1)
	assert.Equal(t, 2, lists[0].TotalItemCount)
	assert.Equal(t, 1, lists[0].CompletedItemCount)

	items, err := repo.GetItems(ctx, list.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "A", items[0].Title)
	require.NotNil(t, items[0].DueDate)
	assert.True(t, items[0].DueDate.Equal(due))
	assert.Nil(t, items[1].DueDate)
	assert.True(t, items[1].Completed)
}

func TestTodoListStore_UpdateItemSortOrders(t *testing.T) {
	ctx := context.Background()
	repo := testutil.NewTestStore(t).TodoLists()

	list, err := repo.Create(ctx, model.TodoList{SpaceID: "s", Name: "L"})
	require.NoError(t, err)
	a, err := repo.CreateItem(ctx, model.TodoItem{ListID: list.ID, Title: "A", SortOrder: 0})
	require.NoError(t, err)
	b, err := repo.CreateItem(ctx, model.TodoItem{ListID: list.ID, Title: "B", SortOrder: 1})
	require.NoError(t, err)

	require.NoError(t, repo.UpdateItemSortOrders(ctx, []model.TodoItem{
		b.WithSortOrder(0),
		a.WithSortOrder(1),
	}))

	items, err := repo.GetItems(ctx, list.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "B", items[0].Title)
	assert.Equal(t, "A", items[1].Title)
}

func TestTodoListStore_DeleteCascadesItems(t *testing.T) {
	ctx := context.Background()
	repo := testutil.NewTestStore(t).TodoLists()

	list, err := repo.Create(ctx, model.TodoList{SpaceID: "s", Name: "L"})
	require.NoError(t, err)
	_, err = repo.CreateItem(ctx, model.TodoItem{ListID: list.ID, Title: "A"})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, list.ID))

	items, err := repo.GetItems(ctx, list.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestTodoListStore_MissingRowsAreNotFound(t *testing.T) {
	ctx := context.Background()
	repo := testutil.NewTestStore(t).TodoLists()

	err := repo.Delete(ctx, "missing")
	assert.True(t, apperror.HasCode(err, apperror.CodeNotFound))

	_, err = repo.Update(ctx, model.TodoList{ID: "missing", SpaceID: "s", Name: "x"})
	assert.True(t, apperror.HasCode(err, apperror.CodeNotFound))

	err = repo.DeleteItem(ctx, "missing", "missing")
	assert.True(t, apperror.HasCode(err, apperror.CodeNotFound))
}

func TestTodoListStore_ValidationErrors(t *testing.T) {
	ctx := context.Background()
	repo := testutil.NewTestStore(t).TodoLists()

	_, err := repo.Create(ctx, model.TodoList{SpaceID: "s"})
	require.Error(t, err)

	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
	assert.Contains(t, appErr.Context["fields"], "Name")
}

func TestTodoListStore_ItemForUnknownListViolatesConstraint(t *testing.T) {
	ctx := context.Background()
	repo := testutil.NewTestStore(t).TodoLists()

	_, err := repo.CreateItem(ctx, model.TodoItem{ListID: "nope", Title: "A"})
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.CodeDatabaseConstraint))
}

func TestGenericListStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := testutil.NewTestStore(t).GenericLists()

	list, err := repo.Create(ctx, model.GenericList{SpaceID: "s", Name: "Groceries"})
	require.NoError(t, err)

	milk, err := repo.CreateItem(ctx, model.ListItem{ListID: list.ID, Title: "Milk"})
	require.NoError(t, err)

	milk.Checked = true
	_, err = repo.UpdateItem(ctx, milk)
	require.NoError(t, err)

	lists, err := repo.GetBySpace(ctx, "s")
	require.NoError(t, err)
	require.Len(t, lists, 1)
	assert.Equal(t, 1, lists[0].TotalItemCount)
	assert.Equal(t, 1, lists[0].CheckedItemCount)

	require.NoError(t, repo.DeleteItem(ctx, milk.ID, list.ID))
	items, err := repo.GetItems(ctx, list.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestNoteStore_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := testutil.NewTestStore(t).Notes()

	note, err := repo.Create(ctx, model.Note{SpaceID: "s", Title: "Ideas", Content: "ship it"})
	require.NoError(t, err)

	note.Content = "ship it today"
	_, err = repo.Update(ctx, note)
	require.NoError(t, err)

	notes, err := repo.GetBySpace(ctx, "s")
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "ship it today", notes[0].Content)

	require.NoError(t, repo.Delete(ctx, note.ID))
	notes, err = repo.GetBySpace(ctx, "s")
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestNoteStore_DuplicateIDAlreadyExists(t *testing.T) {
	ctx := context.Background()
	repo := testutil.NewTestStore(t).Notes()

	_, err := repo.Create(ctx, model.Note{ID: "n1", SpaceID: "s", Title: "a"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, model.Note{ID: "n1", SpaceID: "s", Title: "b"})
	assert.True(t, apperror.HasCode(err, apperror.CodeAlreadyExists))
}
