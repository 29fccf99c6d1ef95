// Package domain contains the persisted entities. No transport or storage
// logic lives here.
package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const MaxNameLen = 64

type User struct {
	ID           UserID    `bson:"_id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
}

// NewUser avoids raw struct literals in services and keeps construction obvious.
func NewUser(name, email, passwordHash string) (*User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if len(name) > MaxNameLen {
		return nil, fmt.Errorf("%w: name too long", ErrValidation)
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: valid email is required", ErrValidation)
	}
	return &User{
		ID:           UserID(uuid.NewString()),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}, nil
}
