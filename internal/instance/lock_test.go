package instance

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireContention(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hyprtab.lock")

	first, err := Acquire(path)
	require.NoError(t, err)
	assert.Equal(t, path, first.Path())

	second, err := Acquire(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLocked)
	assert.Nil(t, second)

	require.NoError(t, first.Release())

	third, err := Acquire(path)
	require.NoError(t, err)
	require.NoError(t, third.Release())
}

func TestReleaseIsIdempotent(t *testing.T) {
	l, err := Acquire(filepath.Join(t.TempDir(), "run", "hyprtab.lock"))
	require.NoError(t, err)

	assert.NoError(t, l.Release())
	assert.NoError(t, l.Release())

	var nilLock *Lock
	assert.NoError(t, nilLock.Release())
}
