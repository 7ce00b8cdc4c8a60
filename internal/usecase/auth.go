package usecase

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/wellnest/wellnest-api/internal/auth"
	"github.com/wellnest/wellnest-api/internal/model"
	"github.com/wellnest/wellnest-api/internal/repository"
	"github.com/wellnest/wellnest-api/internal/security"
)

// AuthUsecase defines the interface for authentication-related use cases.
type AuthUsecase interface {
	// Register creates a new user and returns it along with a bearer token.
	Register(ctx context.Context, params RegisterParams) (*model.User, string, error)

	// Login authenticates a user by email and password and returns it along
	// with a bearer token.
	Login(ctx context.Context, params LoginParams) (*model.User, string, error)
}

// RegisterParams defines the parameters for user registration.
type RegisterParams struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

// LoginParams defines the parameters for user login.
type LoginParams struct {
	Email    string
	Password string
}

var (
	ErrPasswordMismatch  = errors.New("password and confirmation do not match")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrUserNotFound      = errors.New("user not found")
	ErrInvalidPassword   = errors.New("invalid password")
)

type authUsecase struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenService
}

// NewAuthUsecase creates a new instance of AuthUsecase.
func NewAuthUsecase(userRepo repository.UserRepository, tokens *auth.TokenService) AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

func (u *authUsecase) Register(ctx context.Context, params RegisterParams) (*model.User, string, error) {
	if params.Password != params.ConfirmPassword {
		return nil, "", ErrPasswordMismatch
	}

	passwordHash, err := security.HashPassword(params.Password)
	if err != nil {
		return nil, "", err
	}

	user, err := u.userRepo.CreateUser(ctx, &model.User{
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: passwordHash,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, "", ErrUserAlreadyExists
		}

		return nil, "", err
	}

	token, err := u.tokens.Issue(user.ID.Hex())
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func (u *authUsecase) Login(ctx context.Context, params LoginParams) (*model.User, string, error) {
	user, err := u.userRepo.GetUserByEmail(ctx, params.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, "", ErrUserNotFound
		}

		return nil, "", err
	}

	if ok, err := security.VerifyPassword(params.Password, user.PasswordHash); err != nil {
		return nil, "", err
	} else if !ok {
		return nil, "", ErrInvalidPassword
	}

	token, err := u.tokens.Issue(user.ID.Hex())
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}
