package content

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/nhle/spacecontent/internal/apperror"
	"github.com/nhle/spacecontent/internal/model"
	"github.com/nhle/spacecontent/internal/store"
)

// fakeRepo is an in-memory repository that counts calls and can be told to
// fail a given method.
type fakeRepo[P model.Parent[P], I model.Item[I]] struct {
	mu      sync.Mutex
	parents []P
	items   map[string][]I
	calls   map[string]int
	errs    map[string]error
}

func newFakeRepo[P model.Parent[P], I model.Item[I]]() *fakeRepo[P, I] {
	return &fakeRepo[P, I]{
		items: make(map[string][]I),
		calls: make(map[string]int),
		errs:  make(map[string]error),
	}
}

func (f *fakeRepo[P, I]) record(method string) error {
	f.calls[method]++
	return f.errs[method]
}

func (f *fakeRepo[P, I]) failOn(method string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[method] = err
}

func (f *fakeRepo[P, I]) count(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

func (f *fakeRepo[P, I]) seed(parents []P, items ...I) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.parents = append(f.parents, parents...)
	for _, item := range items {
		f.items[item.GetParentID()] = append(f.items[item.GetParentID()], item)
	}
}

func (f *fakeRepo[P, I]) storedItems(parentID string) []I {
	f.mu.Lock()
	defer f.mu.Unlock()
	items := slices.Clone(f.items[parentID])
	slices.SortFunc(items, func(a, b I) int { return cmp.Compare(a.GetSortOrder(), b.GetSortOrder()) })
	return items
}

func (f *fakeRepo[P, I]) GetBySpace(_ context.Context, spaceID string) ([]P, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("GetBySpace"); err != nil {
		return nil, err
	}
	var out []P
	for _, p := range f.parents {
		if p.GetSpaceID() == spaceID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeRepo[P, I]) Create(_ context.Context, p P) (P, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("Create"); err != nil {
		var zero P
		return zero, err
	}
	f.parents = append(f.parents, p)
	return p, nil
}

func (f *fakeRepo[P, I]) Update(_ context.Context, p P) (P, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var zero P
	if err := f.record("Update"); err != nil {
		return zero, err
	}
	i := slices.IndexFunc(f.parents, func(x P) bool { return x.GetID() == p.GetID() })
	if i < 0 {
		return zero, apperror.NotFound("parent", p.GetID())
	}
	f.parents[i] = p
	return p, nil
}

func (f *fakeRepo[P, I]) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("Delete"); err != nil {
		return err
	}
	f.parents = slices.DeleteFunc(f.parents, func(x P) bool { return x.GetID() == id })
	delete(f.items, id)
	return nil
}

func (f *fakeRepo[P, I]) GetItems(_ context.Context, parentID string) ([]I, error) {
	f.mu.Lock()
	if err := f.record("GetItems"); err != nil {
		f.mu.Unlock()
		return nil, err
	}
	f.mu.Unlock()
	return f.storedItems(parentID), nil
}

func (f *fakeRepo[P, I]) CreateItem(_ context.Context, item I) (I, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("CreateItem"); err != nil {
		var zero I
		return zero, err
	}
	f.items[item.GetParentID()] = append(f.items[item.GetParentID()], item.Clone())
	return item, nil
}

func (f *fakeRepo[P, I]) UpdateItem(_ context.Context, item I) (I, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var zero I
	if err := f.record("UpdateItem"); err != nil {
		return zero, err
	}
	items := f.items[item.GetParentID()]
	i := slices.IndexFunc(items, func(x I) bool { return x.GetID() == item.GetID() })
	if i < 0 {
		return zero, apperror.NotFound("item", item.GetID())
	}
	items[i] = item.Clone()
	return item, nil
}

func (f *fakeRepo[P, I]) DeleteItem(_ context.Context, itemID, parentID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("DeleteItem"); err != nil {
		return err
	}
	f.items[parentID] = slices.DeleteFunc(f.items[parentID], func(x I) bool { return x.GetID() == itemID })
	return nil
}

func (f *fakeRepo[P, I]) UpdateItemSortOrders(_ context.Context, items []I) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("UpdateItemSortOrders"); err != nil {
		return err
	}
	for _, item := range items {
		stored := f.items[item.GetParentID()]
		if i := slices.IndexFunc(stored, func(x I) bool { return x.GetID() == item.GetID() }); i >= 0 {
			stored[i] = stored[i].WithSortOrder(item.GetSortOrder())
		}
	}
	return nil
}

// mockNoteRepo is a testify mock for the note repository.
type mockNoteRepo struct {
	mock.Mock
}

func (m *mockNoteRepo) GetBySpace(ctx context.Context, spaceID string) ([]model.Note, error) {
	args := m.Called(ctx, spaceID)
	notes, _ := args.Get(0).([]model.Note)
	return notes, args.Error(1)
}

func (m *mockNoteRepo) Create(ctx context.Context, note model.Note) (model.Note, error) {
	args := m.Called(ctx, note)
	return args.Get(0).(model.Note), args.Error(1)
}

func (m *mockNoteRepo) Update(ctx context.Context, note model.Note) (model.Note, error) {
	args := m.Called(ctx, note)
	return args.Get(0).(model.Note), args.Error(1)
}

func (m *mockNoteRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type (
	fakeTodoRepo    = fakeRepo[model.TodoList, model.TodoItem]
	fakeGenericRepo = fakeRepo[model.GenericList, model.ListItem]
	fakeNoteRepo    = fakeRepo[model.Note, model.ListItem]
)

type fixture struct {
	todos   *fakeTodoRepo
	generic *fakeGenericRepo
	notes   *fakeNoteRepo
	store   *Store
}

func newFixture() *fixture {
	f := &fixture{
		todos:   newFakeRepo[model.TodoList, model.TodoItem](),
		generic: newFakeRepo[model.GenericList, model.ListItem](),
		notes:   newFakeRepo[model.Note, model.ListItem](),
	}
	f.store = New(store.Repositories{
		TodoLists:    f.todos,
		GenericLists: f.generic,
		Notes:        f.notes,
	})
	return f
}
