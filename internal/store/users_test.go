package store

import (
	"testing"

	"github.com/shalliecode/volydog/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndGetUser(t *testing.T) {
	s := newTestStore(t)

	user := &models.User{
		Username: "julia",
		Email:    "julia@example.com",
		Password: "hashed-password",
		Phone:    "555-0100",
		IsAdmin:  true,
	}
	require.NoError(t, s.CreateUser(user))
	require.NotZero(t, user.ID)

	byName, err := s.GetUserByUsername("julia")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, user.ID, byName.ID)
	assert.Equal(t, "julia@example.com", byName.Email)
	assert.True(t, byName.IsAdmin)

	byID, err := s.GetUserByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "julia", byID.Username)
}

func TestGetUserByUsernameMissing(t *testing.T) {
	s := newTestStore(t)

	user, err := s.GetUserByUsername("nobody")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestGetUserByIDMissing(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetUserByID(42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.CreateUser(&models.User{Username: "julia", Email: "a@example.com", Password: "x"}))

	err := s.CreateUser(&models.User{Username: "julia", Email: "b@example.com", Password: "x"})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.CreateUser(&models.User{Username: "julia", Email: "a@example.com", Password: "x"}))

	err := s.CreateUser(&models.User{Username: "other", Email: "a@example.com", Password: "x"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestCountUsers(t *testing.T) {
	s := newTestStore(t)

	n, err := s.CountUsers()
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	require.NoError(t, s.CreateUser(&models.User{Username: "a", Email: "a@example.com", Password: "x"}))
	require.NoError(t, s.CreateUser(&models.User{Username: "b", Email: "b@example.com", Password: "x"}))

	n, err = s.CountUsers()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
