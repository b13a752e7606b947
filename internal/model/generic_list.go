package model

import "time"

// GenericList is a simple checklist owned by a space.
type GenericList struct {
	ID               string    `json:"id" db:"id"`
	SpaceID          string    `json:"space_id" db:"space_id" validate:"required"`
	Name             string    `json:"name" db:"name" validate:"required"`
	Description      string    `json:"description" db:"description"`
	SortOrder        int       `json:"sort_order" db:"sort_order" validate:"min=0"`
	TotalItemCount   int       `json:"total_item_count" db:"total_item_count"`
	CheckedItemCount int       `json:"checked_item_count" db:"checked_item_count"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

// ListItem is a checkable entry within a generic list.
type ListItem struct {
	ID        string    `json:"id" db:"id"`
	ListID    string    `json:"list_id" db:"list_id" validate:"required"`
	Title     string    `json:"title" db:"title" validate:"required"`
	Checked   bool      `json:"checked" db:"checked"`
	SortOrder int       `json:"sort_order" db:"sort_order" validate:"min=0"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

func (l GenericList) GetID() string      { return l.ID }
func (l GenericList) GetSpaceID() string { return l.SpaceID }
func (l GenericList) GetSortOrder() int  { return l.SortOrder }
func (l GenericList) Counts() (int, int) { return l.TotalItemCount, l.CheckedItemCount }

func (l GenericList) WithSpaceID(id string) GenericList {
	l.SpaceID = id
	return l
}

func (l GenericList) WithSortOrder(n int) GenericList {
	l.SortOrder = n
	return l
}

func (l GenericList) WithCounts(total, checked int) GenericList {
	l.TotalItemCount = total
	l.CheckedItemCount = checked
	return l
}

func (i ListItem) GetID() string       { return i.ID }
func (i ListItem) GetParentID() string { return i.ListID }
func (i ListItem) GetSortOrder() int   { return i.SortOrder }
func (i ListItem) IsCompleted() bool   { return i.Checked }

// Clone returns a copy of i. ListItem holds no references.
func (i ListItem) Clone() ListItem { return i }

func (i ListItem) WithSortOrder(n int) ListItem {
	i.SortOrder = n
	return i
}

func (i ListItem) WithCompleted(done bool) ListItem {
	i.Checked = done
	return i
}
