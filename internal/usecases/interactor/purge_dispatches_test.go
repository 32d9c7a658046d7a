package interactor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestPurgeDispatches(t *testing.T) {
	now := time.Date(2026, time.October, 18, 9, 30, 0, 0, time.UTC)

	t.Run("deletes before cutoff", func(t *testing.T) {
		repo := new(mockDispatchRepository)
		p := NewPurgeDispatchesInteractor(repo, 24*time.Hour)
		p.now = func() time.Time { return now }

		repo.On("DeleteOlderThan", mock.Anything, now.Add(-24*time.Hour)).Return(int64(3), nil).Once()

		assert.NoError(t, p.Execute(context.Background()))
		repo.AssertExpectations(t)
	})

	t.Run("returns repository error", func(t *testing.T) {
		repo := new(mockDispatchRepository)
		p := NewPurgeDispatchesInteractor(repo, time.Hour)

		repo.On("DeleteOlderThan", mock.Anything, mock.Anything).Return(int64(0), errors.New("db down")).Once()

		assert.EqualError(t, p.Execute(context.Background()), "db down")
	})
}
