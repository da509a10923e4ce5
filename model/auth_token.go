package model

import (
	"time"

	"github.com/google/uuid"
)

/*

AuthToken is an opaque API key handed out by the token-auth endpoint

Key: primary key, the token string itself
CreatedAt: time when entity is created
UserID: user this token authenticates, one token per user

*/

type AuthToken struct {
	Key       string `gorm:"primaryKey"`
	CreatedAt time.Time
	UserID    string `gorm:"uniqueIndex;not null"`
	User      User   `gorm:"constraint:OnDelete:CASCADE;"`
}

// NewAuthToken mints a token for the given user.
func NewAuthToken(userID string) *AuthToken {
	return &AuthToken{
		Key:    uuid.New().String(),
		UserID: userID,
	}
}
