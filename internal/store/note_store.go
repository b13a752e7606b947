package store

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/nhle/spacecontent/internal/model"
)

// NoteStore implements NoteRepository on SQLite.
type NoteStore struct {
	db       *sqlx.DB
	validate *validator.Validate
}

var _ NoteRepository = (*NoteStore)(nil)

// GetBySpace retrieves all notes of a space, ordered by sort_order.
func (s *NoteStore) GetBySpace(ctx context.Context, spaceID string) ([]model.Note, error) {
	notes := []model.Note{}
	err := s.db.SelectContext(ctx, &notes, `
		SELECT id, space_id, title, content, sort_order, created_at, updated_at
		FROM notes WHERE space_id = ? ORDER BY sort_order, created_at`,
		spaceID)
	if err != nil {
		return nil, classify(err, "querying notes of space %s", spaceID)
	}
	return notes, nil
}

// Create inserts a new note.
func (s *NoteStore) Create(ctx context.Context, note model.Note) (model.Note, error) {
	if err := s.validate.Struct(note); err != nil {
		return model.Note{}, classify(err, "validating note")
	}
	if note.ID == "" {
		note.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	note.CreatedAt = now
	note.UpdatedAt = now

	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO notes (id, space_id, title, content, sort_order, created_at, updated_at)
		VALUES (:id, :space_id, :title, :content, :sort_order, :created_at, :updated_at)`,
		note,
	)
	if err != nil {
		return model.Note{}, classify(err, "creating note")
	}
	return note, nil
}

// Update writes the editable fields of an existing note.
func (s *NoteStore) Update(ctx context.Context, note model.Note) (model.Note, error) {
	if err := s.validate.Struct(note); err != nil {
		return model.Note{}, classify(err, "validating note %s", note.ID)
	}
	note.UpdatedAt = time.Now().UTC()

	result, err := s.db.ExecContext(ctx, `
		UPDATE notes SET space_id = ?, title = ?, content = ?, sort_order = ?, updated_at = ?
		WHERE id = ?`,
		note.SpaceID, note.Title, note.Content, note.SortOrder, note.UpdatedAt,
		note.ID,
	)
	if err != nil {
		return model.Note{}, classify(err, "updating note %s", note.ID)
	}
	if err := notFoundIfNone(result, "note", note.ID); err != nil {
		return model.Note{}, err
	}
	return note, nil
}

// Delete removes a note by ID.
func (s *NoteStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM notes WHERE id = ?", id)
	if err != nil {
		return classify(err, "deleting note %s", id)
	}
	return notFoundIfNone(result, "note", id)
}
