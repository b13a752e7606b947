// Package content owns the in-memory state of a space's todo lists,
// generic lists and notes. It keeps derived item counts in step with the
// lazily cached items and notifies observers after every change.
//
// Every write goes to the repository first; local state changes only after
// the repository confirms. Failures are recorded as an *apperror.AppError
// and also returned to the caller.
package content

import (
	"context"
	"slices"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/nhle/spacecontent/internal/apperror"
	"github.com/nhle/spacecontent/internal/model"
	"github.com/nhle/spacecontent/internal/store"
)

// State is a snapshot of the store handed to observers. It shares no
// memory with the store; Err is a copy of the recorded error.
type State struct {
	SpaceID      string
	Loading      bool
	Err          *apperror.AppError
	TodoLists    []model.TodoList
	GenericLists []model.GenericList
	Notes        []model.Note
}

// Observer receives a snapshot after every state transition.
type Observer func(State)

type subscription struct {
	id int
	fn Observer
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for load and failure events.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Store is the content state store. Operations are safe to call from
// several goroutines, but concurrent writes to the same entity resolve as
// last writer wins.
type Store struct {
	logger *zap.Logger

	mu           sync.RWMutex
	spaceID      string
	loading      bool
	err          *apperror.AppError
	todoLists    *parentSet[model.TodoList]
	todoItems    *itemSet[model.TodoList, model.TodoItem]
	genericLists *parentSet[model.GenericList]
	listItems    *itemSet[model.GenericList, model.ListItem]
	notes        *parentSet[model.Note]

	obsMu     sync.Mutex
	observers []subscription
	nextObsID int
}

// New creates a Store backed by the given repositories.
func New(repos store.Repositories, opts ...Option) *Store {
	s := &Store{
		logger: zap.NewNop(),
		todoLists: &parentSet[model.TodoList]{
			kind:     model.KindTodoList,
			resource: "todo list",
			repo:     repos.TodoLists,
		},
		genericLists: &parentSet[model.GenericList]{
			kind:     model.KindGenericList,
			resource: "generic list",
			repo:     repos.GenericLists,
		},
		notes: &parentSet[model.Note]{
			kind:     model.KindNote,
			resource: "note",
			repo:     repos.Notes,
		},
	}
	s.todoItems = newItemSet(s.todoLists, "todo item", store.ItemRepository[model.TodoItem](repos.TodoLists))
	s.listItems = newItemSet(s.genericLists, "list item", store.ItemRepository[model.ListItem](repos.GenericLists))

	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoadSpaceContent makes spaceID the current scope and fetches the three
// collections in parallel. If any fetch fails, all collections end up
// empty and the error is recorded. Item caches are dropped either way.
func (s *Store) LoadSpaceContent(ctx context.Context, spaceID string) error {
	s.mu.Lock()
	s.loading = true
	s.spaceID = spaceID
	s.mu.Unlock()
	s.notify()

	s.logger.Debug("loading space content", zap.String("space_id", spaceID))

	var (
		todoLists    []model.TodoList
		genericLists []model.GenericList
		notes        []model.Note
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		todoLists, err = s.todoLists.repo.GetBySpace(gctx, spaceID)
		return err
	})
	g.Go(func() (err error) {
		genericLists, err = s.genericLists.repo.GetBySpace(gctx, spaceID)
		return err
	})
	g.Go(func() (err error) {
		notes, err = s.notes.repo.GetBySpace(gctx, spaceID)
		return err
	})
	err := g.Wait()

	s.mu.Lock()
	s.loading = false
	s.todoItems.cache.Clear()
	s.listItems.cache.Clear()
	if err != nil {
		todoLists, genericLists, notes = nil, nil, nil
		s.err = apperror.Wrap(err, "load space content")
	} else {
		s.err = nil
	}
	s.todoLists.reset(spaceID, todoLists)
	s.genericLists.reset(spaceID, genericLists)
	s.notes.reset(spaceID, notes)
	appErr := s.err
	s.mu.Unlock()

	if err != nil {
		s.logFailure("load space content", appErr)
	} else {
		s.logger.Debug("loaded space content",
			zap.String("space_id", spaceID),
			zap.Int("todo_lists", len(todoLists)),
			zap.Int("generic_lists", len(genericLists)),
			zap.Int("notes", len(notes)),
		)
	}
	s.notify()

	if err != nil {
		return appErr
	}
	return nil
}

// Reload fetches the current space again.
func (s *Store) Reload(ctx context.Context) error {
	spaceID := s.CurrentSpaceID()
	if spaceID == "" {
		return s.fail("reload", apperror.Validation("no space selected"))
	}
	return s.LoadSpaceContent(ctx, spaceID)
}

// TodoLists returns a copy of the todo lists of the current space.
func (s *Store) TodoLists() []model.TodoList {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.todoLists.snapshot()
}

// GenericLists returns a copy of the generic lists of the current space.
func (s *Store) GenericLists() []model.GenericList {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.genericLists.snapshot()
}

// Notes returns a copy of the notes of the current space.
func (s *Store) Notes() []model.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.notes.snapshot()
}

// Err returns a copy of the last recorded error, or nil.
func (s *Store) Err() *apperror.AppError {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err.Clone()
}

// IsLoading reports whether LoadSpaceContent is in flight.
func (s *Store) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// CurrentSpaceID returns the scope of the last load.
func (s *Store) CurrentSpaceID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.spaceID
}

// State returns a snapshot of everything observers can see.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return State{
		SpaceID:      s.spaceID,
		Loading:      s.loading,
		Err:          s.err.Clone(),
		TodoLists:    s.todoLists.snapshot(),
		GenericLists: s.genericLists.snapshot(),
		Notes:        s.notes.snapshot(),
	}
}

// ClearError drops the recorded error and notifies observers once.
func (s *Store) ClearError() {
	s.mu.Lock()
	s.err = nil
	s.mu.Unlock()
	s.notify()
}

// Subscribe registers fn to run after every state transition and returns
// a function that removes it.
func (s *Store) Subscribe(fn Observer) (unsubscribe func()) {
	s.obsMu.Lock()
	defer s.obsMu.Unlock()

	id := s.nextObsID
	s.nextObsID++
	s.observers = append(s.observers, subscription{id: id, fn: fn})

	return func() {
		s.obsMu.Lock()
		defer s.obsMu.Unlock()
		s.observers = slices.DeleteFunc(s.observers, func(sub subscription) bool {
			return sub.id == id
		})
	}
}

// notify runs observers synchronously. It must be called without s.mu held.
func (s *Store) notify() {
	s.obsMu.Lock()
	subs := slices.Clone(s.observers)
	s.obsMu.Unlock()
	if len(subs) == 0 {
		return
	}

	state := s.State()
	for _, sub := range subs {
		sub.fn(state)
	}
}

// fail records err as the store error, notifies and returns the typed error.
func (s *Store) fail(op string, err error) *apperror.AppError {
	appErr := apperror.Wrap(err, op)

	s.mu.Lock()
	s.err = appErr
	s.mu.Unlock()

	s.logFailure(op, appErr)
	s.notify()
	return appErr
}

func (s *Store) logFailure(op string, appErr *apperror.AppError) {
	s.logger.Warn("content operation failed",
		zap.String("op", op),
		zap.String("code", string(appErr.Code)),
		zap.String("severity", string(appErr.Severity())),
		zap.Bool("retryable", appErr.Retryable()),
		zap.Error(appErr),
	)
}
