package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLockErrorsBuilder(t *testing.T) {
	t.Parallel()

	var b LockErrorsBuilder

	assert.NoError(t, b.ErrorOrNil())

	b.Add(nil)
	b.Add(fmt.Errorf("%w: 0x1", ErrObjectNotFound))
	b.Add(fmt.Errorf("%w: 0x2", ErrIncorrectSigner))

	err := b.ErrorOrNil()

	assert.Equal(t, 2, b.Len())
	assert.ErrorIs(t, err, ErrLockErrors)
	assert.ErrorIs(t, err, ErrObjectNotFound)
	assert.ErrorIs(t, err, ErrIncorrectSigner)
	assert.False(t, errors.Is(err, ErrInsufficientGas))

	var lockErrs *LockErrors

	assert.True(t, errors.As(err, &lockErrs))
	assert.Len(t, lockErrs.Errors(), 2)
}

func TestConflictingOrderError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("lock: %w", &ConflictingOrderError{Pending: Digest{1}})

	assert.ErrorIs(t, err, ErrLockConflict)
	assert.False(t, errors.Is(err, ErrLockErrors))
}
