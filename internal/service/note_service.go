package service

import (
	"context"
	"encoding/json"
	"notes-api/internal/dto"
	"notes-api/internal/entity"
	"notes-api/internal/pkg/serverutils"
	"notes-api/internal/repository"
	"time"

	"github.com/gofiber/fiber/v2/log"
)

type INoteService interface {
	GetAll(ctx context.Context) ([]*dto.NoteResponse, error)
	Show(ctx context.Context, id int64) (*dto.NoteResponse, error)
	Create(ctx context.Context, req *dto.CreateNoteRequest) (*dto.NoteResponse, error)
	Update(ctx context.Context, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error)
	Delete(ctx context.Context, id int64) error
}

type noteService struct {
	noteRepository   repository.INoteRepository
	publisherService IPublisherService
}

// NewNoteService wires the store and the event publisher. publisherService may
// be nil, in which case no events are emitted.
func NewNoteService(noteRepository repository.INoteRepository, publisherService IPublisherService) INoteService {
	return &noteService{
		noteRepository:   noteRepository,
		publisherService: publisherService,
	}
}

func (c *noteService) GetAll(ctx context.Context) ([]*dto.NoteResponse, error) {
	notes, err := c.noteRepository.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.NoteResponse, 0, len(notes))
	for _, note := range notes {
		result = append(result, toNoteResponse(note))
	}

	return result, nil
}

func (c *noteService) Show(ctx context.Context, id int64) (*dto.NoteResponse, error) {
	note, err := c.noteRepository.GetById(ctx, id)
	if err != nil {
		return nil, err
	}

	return toNoteResponse(note), nil
}

func (c *noteService) Create(ctx context.Context, req *dto.CreateNoteRequest) (*dto.NoteResponse, error) {
	if err := serverutils.ValidateRequest(req); err != nil {
		return nil, err
	}

	note, err := c.noteRepository.Create(ctx, req.Title, req.Content)
	if err != nil {
		return nil, err
	}

	c.publish(ctx, dto.NoteCreated, note)

	return toNoteResponse(note), nil
}

// Update replaces title and content independently when the incoming value is
// non-blank. The note is re-saved even if neither field is usable, so
// updatedAt always moves.
func (c *noteService) Update(ctx context.Context, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error) {
	patch := entity.NotePatch{
		Title:   req.Title,
		Content: req.Content,
	}.Normalize()

	note, err := c.noteRepository.Update(ctx, req.Id, patch)
	if err != nil {
		return nil, err
	}

	c.publish(ctx, dto.NoteUpdated, note)

	return toNoteResponse(note), nil
}

func (c *noteService) Delete(ctx context.Context, id int64) error {
	if err := c.noteRepository.DeleteById(ctx, id); err != nil {
		return err
	}

	c.publish(ctx, dto.NoteDeleted, &entity.Note{Id: id})
	return nil
}

// publish emits a note event. The write has already been committed, so a
// failure here is logged and not returned.
func (c *noteService) publish(ctx context.Context, eventType dto.NoteEventType, note *entity.Note) {
	if c.publisherService == nil {
		return
	}

	occurredAt := note.UpdatedAt
	if occurredAt.IsZero() {
		occurredAt = entity.Timestamp(time.Now())
	}

	payload, err := json.Marshal(dto.NoteEventMessage{
		Type:       eventType,
		NoteId:     note.Id,
		OccurredAt: occurredAt,
	})
	if err != nil {
		log.Errorf("[NoteService] marshal %s event for note %d: %v", eventType, note.Id, err)
		return
	}

	if err := c.publisherService.Publish(ctx, payload); err != nil {
		log.Errorf("[NoteService] publish %s event for note %d: %v", eventType, note.Id, err)
	}
}

func toNoteResponse(note *entity.Note) *dto.NoteResponse {
	return &dto.NoteResponse{
		Id:        note.Id,
		Title:     note.Title,
		Content:   note.Content,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}
}
