package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User represents a registered account. OTP and OTPExpiresAt are only present
// while a password-reset flow is active for the account.
type User struct {
	ID           bson.ObjectID `bson:"_id,omitempty"`
	Name         string        `bson:"name"`
	Email        string        `bson:"email"`
	PasswordHash string        `bson:"password_hash"`
	OTP          string        `bson:"otp,omitempty"`
	OTPExpiresAt *time.Time    `bson:"otp_expires_at,omitempty"`
	CreatedAt    time.Time     `bson:"created_at"`
	UpdatedAt    time.Time     `bson:"updated_at"`
}
