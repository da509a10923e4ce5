package model

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

/*

User is a data model for an author identity

Id: primary key, use to identify a user
CreatedAt: time when entity is created

Username: unique handle, used as the external identifier everywhere the API
references a user (post author, comment author, follow endpoints)
PasswordHash: bcrypt hash, only consumed by the token-auth endpoint

*/

type User struct {
	Id           string `gorm:"primaryKey"`
	CreatedAt    time.Time
	Username     string `gorm:"uniqueIndex;not null"`
	PasswordHash string `json:"-"`
}

// NewUser builds a user with a fresh id and a bcrypt hash of password.
func NewUser(username, password string) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &User{
		Id:           uuid.New().String(),
		Username:     username,
		PasswordHash: string(hash),
	}, nil
}

// CheckPassword reports whether password matches the stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}
