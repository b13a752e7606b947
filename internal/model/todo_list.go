package model

import "time"

// TodoList is a hierarchical task list owned by a space. Its counters are
// derived from its items and are never edited directly.
type TodoList struct {
	ID                 string    `json:"id" db:"id"`
	SpaceID            string    `json:"space_id" db:"space_id" validate:"required"`
	Name               string    `json:"name" db:"name" validate:"required"`
	Description        string    `json:"description" db:"description"`
	SortOrder          int       `json:"sort_order" db:"sort_order" validate:"min=0"`
	TotalItemCount     int       `json:"total_item_count" db:"total_item_count"`
	CompletedItemCount int       `json:"completed_item_count" db:"completed_item_count"`
	CreatedAt          time.Time `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time `json:"updated_at" db:"updated_at"`
}

// TodoItem is a single entry within a todo list.
// Its lifecycle is bound to the parent list (CASCADE delete).
type TodoItem struct {
	ID          string     `json:"id" db:"id"`
	ListID      string     `json:"list_id" db:"list_id" validate:"required"`
	Title       string     `json:"title" db:"title" validate:"required"`
	Description string     `json:"description" db:"description"`
	Completed   bool       `json:"completed" db:"completed"`
	DueDate     *time.Time `json:"due_date,omitempty" db:"due_date"`
	SortOrder   int        `json:"sort_order" db:"sort_order" validate:"min=0"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

func (l TodoList) GetID() string      { return l.ID }
func (l TodoList) GetSpaceID() string { return l.SpaceID }
func (l TodoList) GetSortOrder() int  { return l.SortOrder }
func (l TodoList) Counts() (int, int) { return l.TotalItemCount, l.CompletedItemCount }

func (l TodoList) WithSpaceID(id string) TodoList {
	l.SpaceID = id
	return l
}

func (l TodoList) WithSortOrder(n int) TodoList {
	l.SortOrder = n
	return l
}

func (l TodoList) WithCounts(total, completed int) TodoList {
	l.TotalItemCount = total
	l.CompletedItemCount = completed
	return l
}

func (i TodoItem) GetID() string       { return i.ID }
func (i TodoItem) GetParentID() string { return i.ListID }
func (i TodoItem) GetSortOrder() int   { return i.SortOrder }
func (i TodoItem) IsCompleted() bool   { return i.Completed }

func (i TodoItem) WithSortOrder(n int) TodoItem {
	i.SortOrder = n
	return i
}

func (i TodoItem) WithCompleted(done bool) TodoItem {
	i.Completed = done
	return i
}

// Clone returns a copy of i that shares no memory with it.
func (i TodoItem) Clone() TodoItem {
	if i.DueDate != nil {
		due := *i.DueDate
		i.DueDate = &due
	}
	return i
}

// DueOn reports whether the item is due on the calendar date of day.
// Time of day is ignored; the due date is compared in day's location.
func (i TodoItem) DueOn(day time.Time) bool {
	if i.DueDate == nil {
		return false
	}
	return SameDay(*i.DueDate, day)
}

// SameDay reports whether a and b fall on the same calendar date in b's location.
func SameDay(a, b time.Time) bool {
	a = a.In(b.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
