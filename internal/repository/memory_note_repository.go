package repository

import (
	"context"
	"notes-api/internal/entity"
	"sort"
	"sync"
	"time"
)

type memoryNoteRepository struct {
	mu     sync.RWMutex
	notes  map[int64]entity.Note
	lastId int64
	now    func() time.Time
}

// NewMemoryNoteRepository returns a process-local store. Ids are never reused,
// including after deletes. A nil clock means time.Now.
func NewMemoryNoteRepository(now func() time.Time) INoteRepository {
	if now == nil {
		now = time.Now
	}
	return &memoryNoteRepository{
		notes: make(map[int64]entity.Note),
		now:   now,
	}
}

func (r *memoryNoteRepository) Create(ctx context.Context, title, content string) (*entity.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := entity.Timestamp(r.now())
	r.lastId++
	note := entity.Note{
		Id:        r.lastId,
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.notes[note.Id] = note

	return &note, nil
}

func (r *memoryNoteRepository) GetById(ctx context.Context, id int64) (*entity.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	note, ok := r.notes[id]
	if !ok {
		return nil, notFound(id)
	}
	return &note, nil
}

func (r *memoryNoteRepository) GetAll(ctx context.Context) ([]*entity.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	notes := make([]*entity.Note, 0, len(r.notes))
	for _, n := range r.notes {
		note := n
		notes = append(notes, &note)
	}
	r.mu.RUnlock()

	sort.Slice(notes, func(i, j int) bool {
		if !notes[i].UpdatedAt.Equal(notes[j].UpdatedAt) {
			return notes[i].UpdatedAt.After(notes[j].UpdatedAt)
		}
		return notes[i].Id > notes[j].Id
	})

	return notes, nil
}

func (r *memoryNoteRepository) Update(ctx context.Context, id int64, patch entity.NotePatch) (*entity.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	note, ok := r.notes[id]
	if !ok {
		return nil, notFound(id)
	}

	note.Apply(patch, entity.Timestamp(r.now()))
	r.notes[id] = note

	return &note, nil
}

func (r *memoryNoteRepository) DeleteById(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.notes[id]; !ok {
		return notFound(id)
	}
	delete(r.notes, id)
	return nil
}

func (r *memoryNoteRepository) Exists(ctx context.Context, id int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.notes[id]
	return ok, nil
}

func (r *memoryNoteRepository) Ping(ctx context.Context) error {
	return ctx.Err()
}
