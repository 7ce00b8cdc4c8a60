package usecase

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wellnest/wellnest-api/internal/config"
	"github.com/wellnest/wellnest-api/internal/model"
	"github.com/wellnest/wellnest-api/internal/security"
)

var otpPattern = regexp.MustCompile(`^\d{6}$`)

func setupResetTest(t *testing.T) (*fakeUserRepo, *fakeMailer, PasswordResetUsecase, *model.User) {
	t.Helper()

	repo := newFakeUserRepo()
	mailer := &fakeMailer{}
	tokens := newTestTokenService()

	cfg := config.TokenConfig{
		Secret:       "test-secret",
		Issuer:       "wellnest-test",
		ExpiresIn:    7 * 24 * time.Hour,
		OTPExpiresIn: 10 * time.Minute,
	}

	authU := NewAuthUsecase(repo, tokens)
	user, _, err := authU.Register(context.Background(), RegisterParams{
		Name:            "Ana",
		Email:           "ana@x.com",
		Password:        "Secret1!",
		ConfirmPassword: "Secret1!",
	})
	require.NoError(t, err)

	return repo, mailer, NewPasswordResetUsecase(repo, tokens, mailer, cfg), user
}

func TestPasswordResetUsecase_RequestReset(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown email never creates an OTP", func(t *testing.T) {
		repo, mailer, u, user := setupResetTest(t)

		err := u.RequestReset(ctx, "nobody@x.com")

		assert.ErrorIs(t, err, ErrUserNotFound)
		assert.Empty(t, mailer.sent)
		assert.Empty(t, repo.users[user.ID.Hex()].OTP)
	})

	t.Run("known email stores a six-digit OTP expiring in ten minutes", func(t *testing.T) {
		repo, mailer, u, user := setupResetTest(t)

		before := time.Now()
		err := u.RequestReset(ctx, "ana@x.com")
		require.NoError(t, err)

		stored := repo.users[user.ID.Hex()]
		assert.Regexp(t, otpPattern, stored.OTP)
		require.NotNil(t, stored.OTPExpiresAt)
		assert.WithinDuration(t, before.Add(10*time.Minute), *stored.OTPExpiresAt, time.Second)

		require.Len(t, mailer.sent, 1)
		assert.Equal(t, []string{"ana@x.com"}, mailer.sent[0].to)
		assert.Contains(t, mailer.sent[0].htmlBody, stored.OTP)
	})

	t.Run("email dispatch failure is surfaced", func(t *testing.T) {
		_, mailer, u, _ := setupResetTest(t)
		mailer.err = errors.New("smtp unreachable")

		err := u.RequestReset(ctx, "ana@x.com")

		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrUserNotFound)
	})
}

func TestPasswordResetUsecase_VerifyOTP(t *testing.T) {
	ctx := context.Background()

	t.Run("valid code before expiry", func(t *testing.T) {
		repo, _, u, user := setupResetTest(t)
		require.NoError(t, u.RequestReset(ctx, "ana@x.com"))

		otp := repo.users[user.ID.Hex()].OTP

		verified, token, err := u.VerifyOTP(ctx, "ana@x.com", otp)
		require.NoError(t, err)
		assert.Equal(t, user.ID, verified.ID)
		assert.NotEmpty(t, token)

		// Verification is non-consuming: the OTP is still there.
		assert.Equal(t, otp, repo.users[user.ID.Hex()].OTP)
	})

	t.Run("wrong code", func(t *testing.T) {
		repo, _, u, user := setupResetTest(t)
		require.NoError(t, u.RequestReset(ctx, "ana@x.com"))

		wrong := "000000"
		if repo.users[user.ID.Hex()].OTP == wrong {
			wrong = "000001"
		}

		_, _, err := u.VerifyOTP(ctx, "ana@x.com", wrong)
		assert.ErrorIs(t, err, ErrOTPInvalidOrExpired)
	})

	t.Run("expired code reports the same error", func(t *testing.T) {
		repo, _, u, user := setupResetTest(t)
		require.NoError(t, u.RequestReset(ctx, "ana@x.com"))

		stored := repo.users[user.ID.Hex()]
		expired := time.Now().Add(-time.Minute)
		stored.OTPExpiresAt = &expired

		_, _, err := u.VerifyOTP(ctx, "ana@x.com", stored.OTP)
		assert.ErrorIs(t, err, ErrOTPInvalidOrExpired)
	})
}

func TestPasswordResetUsecase_ResetPassword(t *testing.T) {
	ctx := context.Background()

	t.Run("correct unexpired OTP changes the hash and clears the OTP", func(t *testing.T) {
		repo, _, u, user := setupResetTest(t)
		require.NoError(t, u.RequestReset(ctx, "ana@x.com"))

		otp := repo.users[user.ID.Hex()].OTP
		oldHash := repo.users[user.ID.Hex()].PasswordHash

		require.NoError(t, u.ResetPassword(ctx, "ana@x.com", otp, "NewPass2!"))

		stored := repo.users[user.ID.Hex()]
		assert.NotEqual(t, oldHash, stored.PasswordHash)
		assert.Empty(t, stored.OTP)
		assert.Nil(t, stored.OTPExpiresAt)

		ok, err := security.VerifyPassword("NewPass2!", stored.PasswordHash)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = security.VerifyPassword("Secret1!", stored.PasswordHash)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("reset consumes the OTP", func(t *testing.T) {
		repo, _, u, user := setupResetTest(t)
		require.NoError(t, u.RequestReset(ctx, "ana@x.com"))

		otp := repo.users[user.ID.Hex()].OTP
		require.NoError(t, u.ResetPassword(ctx, "ana@x.com", otp, "NewPass2!"))

		err := u.ResetPassword(ctx, "ana@x.com", otp, "NewPass3!")
		assert.ErrorIs(t, err, ErrOTPInvalidOrExpired)
	})

	t.Run("wrong or expired OTP leaves the password unchanged", func(t *testing.T) {
		repo, _, u, user := setupResetTest(t)
		require.NoError(t, u.RequestReset(ctx, "ana@x.com"))

		oldHash := repo.users[user.ID.Hex()].PasswordHash

		err := u.ResetPassword(ctx, "ana@x.com", "999998", "NewPass2!")
		assert.ErrorIs(t, err, ErrOTPInvalidOrExpired)
		assert.Equal(t, oldHash, repo.users[user.ID.Hex()].PasswordHash)
	})
}

func TestGenerateOTP_Range(t *testing.T) {
	for range 100 {
		otp, err := generateOTP()
		require.NoError(t, err)
		assert.Regexp(t, otpPattern, otp)
	}
}
