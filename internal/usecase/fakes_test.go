package usecase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/wellnest/wellnest-api/internal/model"
	"github.com/wellnest/wellnest-api/internal/repository"
)

// fakeUserRepo is an in-memory UserRepository used by the usecase tests.
type fakeUserRepo struct {
	users map[string]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*model.User)}
}

func duplicateKeyError() error {
	return mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
}

func (r *fakeUserRepo) CreateUser(_ context.Context, user *model.User) (*model.User, error) {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return nil, duplicateKeyError()
		}
	}

	user.ID = bson.NewObjectID()
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	copied := *user
	r.users[user.ID.Hex()] = &copied

	return user, nil
}

func (r *fakeUserRepo) GetUser(_ context.Context, id string) (*model.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}

	return nil, mongo.ErrNoDocuments
}

func (r *fakeUserRepo) GetUserByEmailAndOTP(
	_ context.Context,
	email, otp string,
	now time.Time,
) (*model.User, error) {
	for _, user := range r.users {
		if user.Email == email && user.OTP == otp &&
			user.OTPExpiresAt != nil && user.OTPExpiresAt.After(now) {
			copied := *user
			return &copied, nil
		}
	}

	return nil, mongo.ErrNoDocuments
}

func (r *fakeUserRepo) UpdateUser(
	_ context.Context,
	id string,
	params repository.UpdateUserParams,
) (*model.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	if params.Name != nil {
		user.Name = *params.Name
	}
	if params.Email != nil {
		user.Email = *params.Email
	}
	if params.PasswordHash != nil {
		user.PasswordHash = *params.PasswordHash
	}
	user.UpdatedAt = time.Now()

	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) SetOTP(_ context.Context, id, otp string, expiresAt time.Time) error {
	user, ok := r.users[id]
	if !ok {
		return mongo.ErrNoDocuments
	}

	user.OTP = otp
	user.OTPExpiresAt = &expiresAt
	user.UpdatedAt = time.Now()

	return nil
}

func (r *fakeUserRepo) ClearOTP(_ context.Context, id string) error {
	user, ok := r.users[id]
	if !ok {
		return mongo.ErrNoDocuments
	}

	user.OTP = ""
	user.OTPExpiresAt = nil
	user.UpdatedAt = time.Now()

	return nil
}

type sentEmail struct {
	to       []string
	subject  string
	htmlBody string
}

// fakeMailer records outbound email instead of dialing SMTP.
type fakeMailer struct {
	sent []sentEmail
	err  error
}

func (m *fakeMailer) SendHTML(to []string, subject, htmlBody string) error {
	if m.err != nil {
		return m.err
	}

	m.sent = append(m.sent, sentEmail{to: to, subject: subject, htmlBody: htmlBody})
	return nil
}
