package store

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// newTestStore opens a fresh in-memory database per test.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.DB.Close() })
	require.NoError(t, s.InitSchema())
	return s
}
