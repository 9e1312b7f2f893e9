package service

import (
	"context"
	"notes-api/internal/dto"
	"notes-api/internal/repository"
)

type IHealthService interface {
	Check(ctx context.Context) (*dto.HealthResponse, error)
}

type healthService struct {
	noteRepository repository.INoteRepository
}

func NewHealthService(noteRepository repository.INoteRepository) IHealthService {
	return &healthService{noteRepository: noteRepository}
}

func (s *healthService) Check(ctx context.Context) (*dto.HealthResponse, error) {
	if err := s.noteRepository.Ping(ctx); err != nil {
		return nil, err
	}

	return &dto.HealthResponse{
		Message: "Notes API is running!",
		Status:  "healthy",
	}, nil
}
