package repository

import (
	"context"
	"errors"
	"fmt"
	"notes-api/internal/entity"
	"notes-api/internal/pkg/serverutils"
	"notes-api/pkg/database"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// INoteRepository is the note store. It assigns ids and owns both timestamps.
type INoteRepository interface {
	Create(ctx context.Context, title, content string) (*entity.Note, error)
	GetById(ctx context.Context, id int64) (*entity.Note, error)
	GetAll(ctx context.Context) ([]*entity.Note, error)
	Update(ctx context.Context, id int64, patch entity.NotePatch) (*entity.Note, error)
	DeleteById(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
	Ping(ctx context.Context) error
}

const noteColumns = `id, title, content, created_at, updated_at`

type noteRepository struct {
	db  database.DatabaseQueryer
	now func() time.Time
}

// NewNoteRepository returns a PostgreSQL backed store. A nil clock means time.Now.
func NewNoteRepository(db database.DatabaseQueryer, now func() time.Time) INoteRepository {
	if now == nil {
		now = time.Now
	}
	return &noteRepository{db: db, now: now}
}

func (r *noteRepository) Create(ctx context.Context, title, content string) (*entity.Note, error) {
	now := entity.Timestamp(r.now())

	row := r.db.QueryRow(
		ctx,
		`INSERT INTO note (title, content, created_at, updated_at)
		 VALUES ($1, $2, $3, $3)
		 RETURNING `+noteColumns,
		title,
		content,
		now,
	)

	note, err := scanNote(row)
	if err != nil {
		return nil, mapError("insert note", err)
	}
	return note, nil
}

func (r *noteRepository) GetById(ctx context.Context, id int64) (*entity.Note, error) {
	row := r.db.QueryRow(
		ctx,
		`SELECT `+noteColumns+` FROM note WHERE id = $1`,
		id,
	)

	note, err := scanNote(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound(id)
		}
		return nil, mapError("get note", err)
	}
	return note, nil
}

func (r *noteRepository) GetAll(ctx context.Context) ([]*entity.Note, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT `+noteColumns+` FROM note ORDER BY updated_at DESC, id DESC`,
	)
	if err != nil {
		return nil, mapError("list notes", err)
	}
	defer rows.Close()

	notes := make([]*entity.Note, 0)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, mapError("scan note", err)
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("list notes", err)
	}

	return notes, nil
}

// Update writes the non-blank fields of patch and always refreshes updated_at,
// even when nothing else changes.
func (r *noteRepository) Update(ctx context.Context, id int64, patch entity.NotePatch) (*entity.Note, error) {
	patch = patch.Normalize()
	now := entity.Timestamp(r.now())

	row := r.db.QueryRow(
		ctx,
		`UPDATE note
		 SET title = COALESCE($2, title),
		     content = COALESCE($3, content),
		     updated_at = GREATEST($4, created_at)
		 WHERE id = $1
		 RETURNING `+noteColumns,
		id,
		patch.Title,
		patch.Content,
		now,
	)

	note, err := scanNote(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound(id)
		}
		return nil, mapError("update note", err)
	}
	return note, nil
}

func (r *noteRepository) DeleteById(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM note WHERE id = $1`, id)
	if err != nil {
		return mapError("delete note", err)
	}
	if tag.RowsAffected() == 0 {
		return notFound(id)
	}
	return nil
}

func (r *noteRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM note WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, mapError("check note", err)
	}
	return exists, nil
}

func (r *noteRepository) Ping(ctx context.Context) error {
	var one int
	if err := r.db.QueryRow(ctx, `SELECT 1`).Scan(&one); err != nil {
		return fmt.Errorf("%w: %v", serverutils.ErrUnavailable, err)
	}
	return nil
}

func scanNote(row pgx.Row) (*entity.Note, error) {
	var n entity.Note
	err := row.Scan(
		&n.Id,
		&n.Title,
		&n.Content,
		&n.CreatedAt,
		&n.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	n.CreatedAt = n.CreatedAt.UTC()
	n.UpdatedAt = n.UpdatedAt.UTC()
	return &n, nil
}

func notFound(id int64) error {
	return fmt.Errorf("note %d: %w", id, serverutils.ErrNotFound)
}

// mapError turns constraint violations into client errors and everything
// else into a StorageError.
func mapError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.CheckViolation, pgerrcode.NotNullViolation:
			return fmt.Errorf("%w: %s", serverutils.ErrBadRequest, pgErr.ConstraintName)
		}
	}
	return serverutils.NewStorageError(op, err)
}
