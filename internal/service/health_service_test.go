package service

import (
	"context"
	"notes-api/internal/pkg/serverutils"
	"notes-api/internal/repository"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthService_Check(t *testing.T) {
	svc := NewHealthService(repository.NewMemoryNoteRepository(nil))

	res, err := svc.Check(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "healthy", res.Status)
	assert.Equal(t, "Notes API is running!", res.Message)
}

func TestHealthService_CheckUnavailable(t *testing.T) {
	svc := NewHealthService(failingRepository{})

	_, err := svc.Check(context.Background())
	assert.ErrorIs(t, err, serverutils.ErrUnavailable)
}
