package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Put("key", []byte("value")))

	got, err := store.Get("key")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), got)

	require.NoError(t, store.Delete("key"))
	_, err = store.Get("key")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	store := NewMemoryStore()

	original := []byte("abc")
	require.NoError(t, store.Put("key", original))
	original[0] = 'z'

	got, err := store.Get("key")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), got)

	got[1] = 'z'
	again, err := store.Get("key")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), again)
}
