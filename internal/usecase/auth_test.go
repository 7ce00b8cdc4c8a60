package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wellnest/wellnest-api/internal/auth"
	"github.com/wellnest/wellnest-api/internal/config"
)

func newTestTokenService() *auth.TokenService {
	return auth.NewTokenService(config.TokenConfig{
		Secret:       "test-secret",
		Issuer:       "wellnest-test",
		ExpiresIn:    7 * 24 * time.Hour,
		OTPExpiresIn: 10 * time.Minute,
	})
}

func TestAuthUsecase_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("password mismatch creates no user", func(t *testing.T) {
		repo := newFakeUserRepo()
		u := NewAuthUsecase(repo, newTestTokenService())

		_, _, err := u.Register(ctx, RegisterParams{
			Name:            "Ana",
			Email:           "ana@x.com",
			Password:        "Secret1!",
			ConfirmPassword: "Different1!",
		})

		assert.ErrorIs(t, err, ErrPasswordMismatch)
		assert.Empty(t, repo.users)
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := newFakeUserRepo()
		u := NewAuthUsecase(repo, newTestTokenService())

		params := RegisterParams{
			Name:            "Ana",
			Email:           "ana@x.com",
			Password:        "Secret1!",
			ConfirmPassword: "Secret1!",
		}

		_, _, err := u.Register(ctx, params)
		require.NoError(t, err)

		_, _, err = u.Register(ctx, params)
		assert.ErrorIs(t, err, ErrUserAlreadyExists)
	})

	t.Run("success issues a verifiable token", func(t *testing.T) {
		repo := newFakeUserRepo()
		tokens := newTestTokenService()
		u := NewAuthUsecase(repo, tokens)

		user, token, err := u.Register(ctx, RegisterParams{
			Name:            "Ana",
			Email:           "ana@x.com",
			Password:        "Secret1!",
			ConfirmPassword: "Secret1!",
		})
		require.NoError(t, err)

		assert.Equal(t, "Ana", user.Name)
		assert.NotEqual(t, "Secret1!", user.PasswordHash)

		userID, err := tokens.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, user.ID.Hex(), userID)
	})
}

func TestAuthUsecase_Login(t *testing.T) {
	ctx := context.Background()

	repo := newFakeUserRepo()
	tokens := newTestTokenService()
	u := NewAuthUsecase(repo, tokens)

	registered, _, err := u.Register(ctx, RegisterParams{
		Name:            "Ana",
		Email:           "ana@x.com",
		Password:        "Secret1!",
		ConfirmPassword: "Secret1!",
	})
	require.NoError(t, err)

	t.Run("unknown email", func(t *testing.T) {
		_, _, err := u.Login(ctx, LoginParams{Email: "nobody@x.com", Password: "Secret1!"})
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := u.Login(ctx, LoginParams{Email: "ana@x.com", Password: "wrong"})
		assert.ErrorIs(t, err, ErrInvalidPassword)
	})

	t.Run("success decodes to the same user id", func(t *testing.T) {
		user, token, err := u.Login(ctx, LoginParams{Email: "ana@x.com", Password: "Secret1!"})
		require.NoError(t, err)

		assert.Equal(t, registered.ID, user.ID)

		userID, err := tokens.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, registered.ID.Hex(), userID)
	})
}
