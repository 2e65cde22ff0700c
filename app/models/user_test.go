package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	u, err := CreateUser("Jane Doe", "jane@example.edu", "secret-pass")
	require.NoError(t, err)
	assert.Equal(t, ROLE_USER, u.Role)
	assert.False(t, u.IsAdmin())
	assert.NotEqual(t, "secret-pass", u.Password)
	assert.True(t, u.CheckPassword("secret-pass"))
	assert.False(t, u.CheckPassword("wrong"))
}

func TestCreateUserRejectsInvalidInput(t *testing.T) {
	_, err := CreateUser("J", "jane@example.edu", "secret-pass")
	assert.Error(t, err)

	_, err = CreateUser("Jane Doe", "not-an-email", "secret-pass")
	assert.Error(t, err)

	_, err = CreateUser("Jane Doe", "jane@example.edu", "short")
	assert.Error(t, err)
}

func TestResetToken(t *testing.T) {
	u := &User{}
	require.NoError(t, u.GenerateResetToken())
	require.NotEmpty(t, u.ResetToken)
	require.NotNil(t, u.ResetSentAt)

	assert.True(t, u.IsResetTokenValid(u.ResetToken))
	assert.False(t, u.IsResetTokenValid("other-token"))

	u.ClearResetToken()
	assert.False(t, u.IsResetTokenValid(""))
	assert.Empty(t, u.ResetToken)
	assert.Nil(t, u.ResetSentAt)
}
