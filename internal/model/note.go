package model

import "time"

// Note is a free-form text entry owned by a space. Notes have no items.
type Note struct {
	ID        string    `json:"id" db:"id"`
	SpaceID   string    `json:"space_id" db:"space_id" validate:"required"`
	Title     string    `json:"title" db:"title" validate:"required"`
	Content   string    `json:"content" db:"content"`
	SortOrder int       `json:"sort_order" db:"sort_order" validate:"min=0"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

func (n Note) GetID() string      { return n.ID }
func (n Note) GetSpaceID() string { return n.SpaceID }
func (n Note) GetSortOrder() int  { return n.SortOrder }

func (n Note) WithSpaceID(id string) Note {
	n.SpaceID = id
	return n
}

func (n Note) WithSortOrder(order int) Note {
	n.SortOrder = order
	return n
}
