package repeat

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRepeatStopsOnSuccess(t *testing.T) {
	calls := 0
	err := Repeat(context.Background(), func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("not yet")
		}
		return nil
	}, 5, time.Millisecond)

	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRepeatReturnsLastError(t *testing.T) {
	calls := 0
	err := Repeat(context.Background(), func(context.Context) error {
		calls++
		return errors.New("down")
	}, 3, time.Millisecond)

	assert.EqualError(t, err, "down")
	assert.Equal(t, 3, calls)
}

func TestRepeatHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := Repeat(ctx, func(context.Context) error {
		calls++
		cancel()
		return errors.New("down")
	}, 5, time.Hour)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}
