package store

import (
	"context"
	"database/sql"

	"github.com/contactkeeper/contacts-api/app/models"
)

// NotesStore backs the notes table. Notes have no HTTP surface; the store is
// kept for parity with the schema.
type NotesStore struct {
	db *sql.DB
}

func (s *NotesStore) Create(ctx context.Context, note *models.Note) error {
	query := `INSERT INTO notes (title, content) VALUES ($1, $2) RETURNING id`

	return s.db.QueryRowContext(ctx, query, note.Title, note.Content).Scan(&note.ID)
}

func (s *NotesStore) GetByID(ctx context.Context, id int64) (*models.Note, error) {
	query := `SELECT id, title, content FROM notes WHERE id = $1`

	var note models.Note
	err := s.db.QueryRowContext(ctx, query, id).Scan(&note.ID, &note.Title, &note.Content)
	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (s *NotesStore) Update(ctx context.Context, note *models.Note) error {
	query := `UPDATE notes SET title = $1, content = $2 WHERE id = $3`

	res, err := s.db.ExecContext(ctx, query, note.Title, note.Content, note.ID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (s *NotesStore) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM notes WHERE id = $1`

	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
