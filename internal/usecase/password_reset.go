package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/wellnest/wellnest-api/internal/auth"
	"github.com/wellnest/wellnest-api/internal/config"
	"github.com/wellnest/wellnest-api/internal/model"
	"github.com/wellnest/wellnest-api/internal/repository"
	"github.com/wellnest/wellnest-api/internal/security"
)

// PasswordResetUsecase defines the business logic for the OTP-driven
// password-reset flow.
type PasswordResetUsecase interface {
	// RequestReset generates an OTP for the given email, stores it with an
	// expiry on the user, and dispatches it by email.
	RequestReset(ctx context.Context, email string) error

	// VerifyOTP checks an OTP against the stored, unexpired code for the
	// email. The check is non-consuming: the OTP stays valid until it expires
	// or the password is reset. On success it returns the user along with a
	// fresh bearer token.
	VerifyOTP(ctx context.Context, email, otp string) (*model.User, string, error)

	// ResetPassword re-validates the OTP against the same predicate as
	// VerifyOTP, replaces the user's password hash, and clears the OTP.
	ResetPassword(ctx context.Context, email, otp, newPassword string) error
}

// Mailer abstracts email dispatch so delivery can be faked in tests.
type Mailer interface {
	SendHTML(to []string, subject, htmlBody string) error
}

// ErrOTPInvalidOrExpired is reported for both a wrong code and an expired
// code. The two cases are deliberately indistinguishable to the caller.
var ErrOTPInvalidOrExpired = errors.New("OTP is invalid or has expired")

type passwordResetUsecase struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenService
	mailer   Mailer
	cfg      config.TokenConfig
}

// NewPasswordResetUsecase creates a new instance of PasswordResetUsecase.
func NewPasswordResetUsecase(
	userRepo repository.UserRepository,
	tokens *auth.TokenService,
	mailer Mailer,
	cfg config.TokenConfig,
) PasswordResetUsecase {
	return &passwordResetUsecase{
		userRepo: userRepo,
		tokens:   tokens,
		mailer:   mailer,
		cfg:      cfg,
	}
}

func (u *passwordResetUsecase) RequestReset(ctx context.Context, email string) error {
	user, err := u.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrUserNotFound
		}
		return err
	}

	otp, err := generateOTP()
	if err != nil {
		return err
	}

	expiresAt := time.Now().Add(u.cfg.OTPExpiresIn)
	if err := u.userRepo.SetOTP(ctx, user.ID.Hex(), otp, expiresAt); err != nil {
		return err
	}

	htmlBody := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>We received a request to reset the password for your account.</p>
		<p>Your one-time code is:</p>

		<h2>%s</h2>

		<p>This code will expire in %s for your security.</p>
		<p>If you did not request a password reset, you can safely ignore this email.</p>

		<p>Thank you,</p>
		<p>Wellnest Team</p>
	`, user.Name, otp, u.cfg.OTPExpiresIn)

	if err := u.mailer.SendHTML([]string{user.Email}, "Password Reset Code", htmlBody); err != nil {
		return err
	}

	return nil
}

func (u *passwordResetUsecase) VerifyOTP(ctx context.Context, email, otp string) (*model.User, string, error) {
	user, err := u.userRepo.GetUserByEmailAndOTP(ctx, email, otp, time.Now())
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, "", ErrOTPInvalidOrExpired
		}
		return nil, "", err
	}

	token, err := u.tokens.Issue(user.ID.Hex())
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func (u *passwordResetUsecase) ResetPassword(ctx context.Context, email, otp, newPassword string) error {
	user, err := u.userRepo.GetUserByEmailAndOTP(ctx, email, otp, time.Now())
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrOTPInvalidOrExpired
		}
		return err
	}

	passwordHash, err := security.HashPassword(newPassword)
	if err != nil {
		return err
	}

	if _, err := u.userRepo.UpdateUser(ctx, user.ID.Hex(), repository.UpdateUserParams{
		PasswordHash: &passwordHash,
	}); err != nil {
		return err
	}

	if err := u.userRepo.ClearOTP(ctx, user.ID.Hex()); err != nil {
		return err
	}

	return nil
}

// generateOTP draws a uniform random six-digit code in [100000, 999999].
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%d", n.Int64()+100000), nil
}
