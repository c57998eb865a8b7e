package services

import (
	"testing"

	"github.com/lucasmrt/planify-api/internal/models"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Login(t *testing.T) {
	env := setupTestEnv(t)
	tokens := testTokenManager()
	service := NewAuthService(env.userRepo, tokens)

	env.createUser(t, "alice@example.com", models.RoleUser, nil)

	token, user, err := service.Login(LoginInput{
		Email:    "alice@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Equal(t, "alice@example.com", user.Email.String())

	// The token round-trips back to the same subject.
	subject, err := tokens.Validate(token)
	require.NoError(t, err)
	require.Equal(t, user.ID, subject)
}

func TestAuthService_LoginIsCaseInsensitive(t *testing.T) {
	env := setupTestEnv(t)
	service := NewAuthService(env.userRepo, testTokenManager())

	env.createUser(t, "alice@example.com", models.RoleUser, nil)

	_, _, err := service.Login(LoginInput{
		Email:    "Alice@Example.COM",
		Password: "password123",
	})
	require.NoError(t, err)
}

func TestAuthService_LoginWrongPassword(t *testing.T) {
	env := setupTestEnv(t)
	service := NewAuthService(env.userRepo, testTokenManager())

	env.createUser(t, "alice@example.com", models.RoleUser, nil)

	_, _, err := service.Login(LoginInput{
		Email:    "alice@example.com",
		Password: "wrong-password",
	})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_LoginUnknownEmail(t *testing.T) {
	env := setupTestEnv(t)
	service := NewAuthService(env.userRepo, testTokenManager())

	_, _, err := service.Login(LoginInput{
		Email:    "nobody@example.com",
		Password: "password123",
	})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}
