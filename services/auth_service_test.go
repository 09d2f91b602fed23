package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	setupTestDB(t)
	t.Setenv("JWT_SECRET", "test-secret")

	user, err := RegisterUser("alice", "hunter2hunter2")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.True(t, user.IsActive)
	assert.True(t, user.AllowNetworking)
	assert.NotEqual(t, "hunter2hunter2", user.Password, "password must be stored hashed")

	token, err := AuthenticateUser("alice", "hunter2hunter2")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	_, err = AuthenticateUser("alice", "wrong")
	assert.Error(t, err)
	_, err = AuthenticateUser("nobody", "hunter2hunter2")
	assert.Error(t, err)
}

func TestRegisterUser_DuplicateUsername(t *testing.T) {
	setupTestDB(t)

	_, err := RegisterUser("alice", "hunter2hunter2")
	require.NoError(t, err)

	_, err = RegisterUser("alice", "differentpass")
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestGetUserProfile_ClampsCounters(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice")

	got, err := GetUserProfile(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, 0, got.FollowersCount)

	_, err = GetUserProfile(99999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
