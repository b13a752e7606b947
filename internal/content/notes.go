package content

import (
	"context"

	"github.com/nhle/spacecontent/internal/model"
)

func (s *Store) CreateNote(ctx context.Context, note model.Note) (model.Note, error) {
	return createParent(ctx, s, s.notes, note)
}

func (s *Store) UpdateNote(ctx context.Context, note model.Note) (model.Note, error) {
	return updateParent(ctx, s, s.notes, note)
}

func (s *Store) DeleteNote(ctx context.Context, id string) error {
	return deleteParent(ctx, s, s.notes, id)
}
