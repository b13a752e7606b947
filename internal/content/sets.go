package content

import (
	"cmp"
	"context"
	"slices"

	"github.com/nhle/spacecontent/internal/apperror"
	"github.com/nhle/spacecontent/internal/model"
	"github.com/nhle/spacecontent/internal/store"
)

// parentSet is the in-memory collection of one parent kind. All fields are
// guarded by the owning Store's mutex.
type parentSet[P model.Parent[P]] struct {
	kind     model.ContentKind
	resource string
	repo     store.ParentRepository[P]
	items    []P

	// carry copies store-owned fields from the current value onto an update.
	carry func(current, next P) P
	// onRemove runs when a parent leaves the collection.
	onRemove func(id string)
}

func (s *parentSet[P]) snapshot() []P {
	return slices.Clone(s.items)
}

func (s *parentSet[P]) indexOf(id string) int {
	return slices.IndexFunc(s.items, func(p P) bool { return p.GetID() == id })
}

func (s *parentSet[P]) find(id string) (P, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.items[i], true
	}
	var zero P
	return zero, false
}

func (s *parentSet[P]) replace(p P) {
	if i := s.indexOf(p.GetID()); i >= 0 {
		s.items[i] = p
	}
}

func (s *parentSet[P]) remove(id string) {
	if i := s.indexOf(id); i >= 0 {
		s.items = slices.Delete(s.items, i, i+1)
	}
	if s.onRemove != nil {
		s.onRemove(id)
	}
}

// reset replaces the collection with the entries of ps that belong to
// spaceID, ordered by sort order.
func (s *parentSet[P]) reset(spaceID string, ps []P) {
	items := make([]P, 0, len(ps))
	for _, p := range ps {
		if p.GetSpaceID() == spaceID {
			items = append(items, p)
		}
	}
	slices.SortStableFunc(items, func(a, b P) int {
		return cmp.Compare(a.GetSortOrder(), b.GetSortOrder())
	})
	s.items = items
}

func carryCounts[P model.CountedParent[P]](current, next P) P {
	return next.WithCounts(current.Counts())
}

// itemSet couples a counted parent collection with its item repository
// and cache.
type itemSet[P model.CountedParent[P], I model.Item[I]] struct {
	parents  *parentSet[P]
	resource string
	repo     store.ItemRepository[I]
	cache    *ItemCache[I]
}

func newItemSet[P model.CountedParent[P], I model.Item[I]](
	parents *parentSet[P],
	resource string,
	repo store.ItemRepository[I],
) *itemSet[P, I] {
	set := &itemSet[P, I]{
		parents:  parents,
		resource: resource,
		repo:     repo,
		cache:    NewItemCache[I](),
	}
	parents.carry = carryCounts[P]
	parents.onRemove = set.cache.Invalidate
	return set
}

// syncCounts recomputes the derived counters of parentID from its cached
// items and writes them onto the parent. It reports whether anything changed.
func (s *itemSet[P, I]) syncCounts(parentID string) bool {
	items, ok := s.cache.Get(parentID)
	if !ok {
		return false
	}
	parent, ok := s.parents.find(parentID)
	if !ok {
		return false
	}

	total, completed := countItems(items)
	if t, c := parent.Counts(); t == total && c == completed {
		return false
	}
	s.parents.replace(parent.WithCounts(total, completed))
	return true
}

// apply rewrites the cached items of parentID with fn and refreshes the
// parent's counts. Parents that left the collection meanwhile are skipped.
func (s *itemSet[P, I]) apply(parentID string, fn func([]I) []I) {
	if _, ok := s.parents.find(parentID); !ok {
		s.cache.Invalidate(parentID)
		return
	}
	items, _ := s.cache.Get(parentID)
	s.cache.Put(parentID, fn(items))
	s.syncCounts(parentID)
}

func countItems[I model.Item[I]](items []I) (total, completed int) {
	for _, item := range items {
		if item.IsCompleted() {
			completed++
		}
	}
	return len(items), completed
}

func indexOfItem[I model.Item[I]](items []I, id string) int {
	return slices.IndexFunc(items, func(item I) bool { return item.GetID() == id })
}

// renumber assigns sort orders 0..n-1 in slice order and returns the items
// whose sort order changed.
func renumber[I model.Item[I]](items []I) []I {
	var moved []I
	for i, item := range items {
		if item.GetSortOrder() != i {
			items[i] = item.WithSortOrder(i)
			moved = append(moved, items[i])
		}
	}
	return moved
}

// applyOrder takes only the sort orders from ordered and returns the cached
// items arranged by them. ordered must cover exactly the cached items with a
// 0..n-1 permutation.
func applyOrder[I model.Item[I]](current, ordered []I, parentID string) ([]I, error) {
	n := len(current)
	if len(ordered) != n {
		return nil, apperror.Newf(apperror.CodeInvalidInput,
			"reorder needs all %d items of %s, got %d", n, parentID, len(ordered))
	}

	result := make([]I, n)
	placed := make([]bool, n)
	seen := make(map[string]bool, n)
	for _, item := range ordered {
		id := item.GetID()
		if item.GetParentID() != parentID {
			return nil, apperror.Newf(apperror.CodeInvalidInput,
				"item %s does not belong to %s", id, parentID)
		}
		idx := indexOfItem(current, id)
		if idx < 0 || seen[id] {
			return nil, apperror.Newf(apperror.CodeInvalidInput,
				"item %s is unknown or repeated", id)
		}
		order := item.GetSortOrder()
		if order < 0 || order >= n || placed[order] {
			return nil, apperror.Newf(apperror.CodeInvalidInput,
				"sort order %d of item %s is out of range or taken", order, id)
		}
		seen[id] = true
		placed[order] = true
		result[order] = current[idx].WithSortOrder(order)
	}
	return result, nil
}

func createParent[P model.Parent[P]](ctx context.Context, s *Store, set *parentSet[P], p P) (P, error) {
	var zero P
	op := "create " + set.resource

	s.mu.RLock()
	spaceID := s.spaceID
	order := len(set.items)
	s.mu.RUnlock()

	if p.GetSpaceID() == "" {
		if spaceID == "" {
			return zero, s.fail(op, apperror.Validation("no space selected"))
		}
		p = p.WithSpaceID(spaceID)
	}

	created, err := set.repo.Create(ctx, p.WithSortOrder(order))
	if err != nil {
		return zero, s.fail(op, err)
	}

	s.mu.Lock()
	if created.GetSpaceID() == s.spaceID {
		set.items = append(set.items, created)
	}
	s.mu.Unlock()

	s.notify()
	return created, nil
}

func updateParent[P model.Parent[P]](ctx context.Context, s *Store, set *parentSet[P], p P) (P, error) {
	var zero P
	op := "update " + set.resource

	s.mu.RLock()
	current, ok := set.find(p.GetID())
	s.mu.RUnlock()
	if !ok {
		return zero, s.fail(op, apperror.NotFound(set.resource, p.GetID()))
	}
	if set.carry != nil {
		p = set.carry(current, p)
	}

	updated, err := set.repo.Update(ctx, p)
	if err != nil {
		return zero, s.fail(op, err)
	}

	s.mu.Lock()
	if updated.GetSpaceID() == s.spaceID {
		set.replace(updated)
	} else {
		set.remove(updated.GetID())
	}
	s.mu.Unlock()

	s.notify()
	return updated, nil
}

func deleteParent[P model.Parent[P]](ctx context.Context, s *Store, set *parentSet[P], id string) error {
	op := "delete " + set.resource

	s.mu.RLock()
	_, ok := set.find(id)
	s.mu.RUnlock()
	if !ok {
		return s.fail(op, apperror.NotFound(set.resource, id))
	}

	if err := set.repo.Delete(ctx, id); err != nil {
		return s.fail(op, err)
	}

	s.mu.Lock()
	set.remove(id)
	s.mu.Unlock()

	s.notify()
	return nil
}

// loadItems is the lazy item loader: a cache hit never reaches the repository.
func loadItems[P model.CountedParent[P], I model.Item[I]](
	ctx context.Context,
	s *Store,
	set *itemSet[P, I],
	parentID string,
) ([]I, error) {
	op := "load " + set.resource + "s"

	s.mu.RLock()
	cached, hit := set.cache.Get(parentID)
	_, known := set.parents.find(parentID)
	s.mu.RUnlock()
	if hit {
		return cached, nil
	}
	if !known {
		return nil, s.fail(op, apperror.NotFound(set.parents.resource, parentID))
	}

	items, err := set.repo.GetItems(ctx, parentID)
	if err != nil {
		return nil, s.fail(op, err)
	}
	slices.SortStableFunc(items, func(a, b I) int {
		return cmp.Compare(a.GetSortOrder(), b.GetSortOrder())
	})

	s.mu.Lock()
	if current, ok := set.cache.Get(parentID); ok {
		// Another call warmed the entry while we were fetching.
		s.mu.Unlock()
		return current, nil
	}
	set.cache.Put(parentID, items)
	changed := set.syncCounts(parentID)
	s.mu.Unlock()

	if changed {
		s.notify()
	}
	return cloneItems(items), nil
}

func createItem[P model.CountedParent[P], I model.Item[I]](
	ctx context.Context,
	s *Store,
	set *itemSet[P, I],
	item I,
) (I, error) {
	var zero I
	parentID := item.GetParentID()

	current, err := loadItems(ctx, s, set, parentID)
	if err != nil {
		return zero, err
	}

	created, err := set.repo.CreateItem(ctx, item.WithSortOrder(len(current)))
	if err != nil {
		return zero, s.fail("create "+set.resource, err)
	}

	s.mu.Lock()
	set.apply(parentID, func(items []I) []I {
		return append(items, created)
	})
	s.mu.Unlock()

	s.notify()
	return created.Clone(), nil
}

func updateItem[P model.CountedParent[P], I model.Item[I]](
	ctx context.Context,
	s *Store,
	set *itemSet[P, I],
	item I,
) (I, error) {
	var zero I
	op := "update " + set.resource
	parentID := item.GetParentID()

	current, err := loadItems(ctx, s, set, parentID)
	if err != nil {
		return zero, err
	}
	idx := indexOfItem(current, item.GetID())
	if idx < 0 {
		return zero, s.fail(op, apperror.NotFound(set.resource, item.GetID()))
	}
	// Position is owned by the reorder path.
	item = item.WithSortOrder(current[idx].GetSortOrder())

	updated, err := set.repo.UpdateItem(ctx, item)
	if err != nil {
		return zero, s.fail(op, err)
	}

	s.mu.Lock()
	set.apply(parentID, func(items []I) []I {
		if i := indexOfItem(items, updated.GetID()); i >= 0 {
			items[i] = updated
		}
		return items
	})
	s.mu.Unlock()

	s.notify()
	return updated.Clone(), nil
}

func toggleItem[P model.CountedParent[P], I model.Item[I]](
	ctx context.Context,
	s *Store,
	set *itemSet[P, I],
	parentID, itemID string,
) (I, error) {
	var zero I

	current, err := loadItems(ctx, s, set, parentID)
	if err != nil {
		return zero, err
	}
	idx := indexOfItem(current, itemID)
	if idx < 0 {
		return zero, s.fail("toggle "+set.resource, apperror.NotFound(set.resource, itemID))
	}

	item := current[idx]
	return updateItem(ctx, s, set, item.WithCompleted(!item.IsCompleted()))
}

func deleteItem[P model.CountedParent[P], I model.Item[I]](
	ctx context.Context,
	s *Store,
	set *itemSet[P, I],
	itemID, parentID string,
) error {
	op := "delete " + set.resource

	current, err := loadItems(ctx, s, set, parentID)
	if err != nil {
		return err
	}
	idx := indexOfItem(current, itemID)
	if idx < 0 {
		return s.fail(op, apperror.NotFound(set.resource, itemID))
	}

	if err := set.repo.DeleteItem(ctx, itemID, parentID); err != nil {
		return s.fail(op, err)
	}

	survivors := slices.Delete(current, idx, idx+1)
	if moved := renumber(survivors); len(moved) > 0 {
		if err := set.repo.UpdateItemSortOrders(ctx, moved); err != nil {
			// The delete went through but the stored order did not; let the
			// next read fetch the truth.
			s.mu.Lock()
			set.cache.Invalidate(parentID)
			s.mu.Unlock()
			return s.fail(op, err)
		}
	}

	s.mu.Lock()
	set.apply(parentID, func(items []I) []I {
		if i := indexOfItem(items, itemID); i >= 0 {
			items = slices.Delete(items, i, i+1)
		}
		renumber(items)
		return items
	})
	s.mu.Unlock()

	s.notify()
	return nil
}

func reorderItems[P model.CountedParent[P], I model.Item[I]](
	ctx context.Context,
	s *Store,
	set *itemSet[P, I],
	parentID string,
	ordered []I,
) error {
	op := "reorder " + set.resource + "s"

	current, err := loadItems(ctx, s, set, parentID)
	if err != nil {
		return err
	}
	result, err := applyOrder(current, ordered, parentID)
	if err != nil {
		return s.fail(op, err)
	}

	if err := set.repo.UpdateItemSortOrders(ctx, result); err != nil {
		return s.fail(op, err)
	}

	s.mu.Lock()
	set.apply(parentID, func([]I) []I { return result })
	s.mu.Unlock()

	s.notify()
	return nil
}
