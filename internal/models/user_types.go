package models

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// AuthenticatedIdentity is what the auth middleware resolves a token into.
// Its ID is trusted as the owner key for every order operation.
type AuthenticatedIdentity struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// User is the model for the 'users' table
type User struct {
	ID           int64     `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	Phone        *string   `json:"phone,omitempty" db:"phone"`
	PasswordHash string    `json:"-" db:"password_hash"`
	InvitedBy    *int64    `json:"invited_by,omitempty" db:"invited_by"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Identity returns the token identity of u.
func (u *User) Identity() AuthenticatedIdentity {
	return AuthenticatedIdentity{ID: u.ID, Username: u.Username}
}

// NewUser is a validated registration payload with an already hashed password.
type NewUser struct {
	Username     string
	Email        string
	Phone        *string
	PasswordHash string
	InvitedBy    *int64
}

// Password Helper (Standard)
type Password struct {
	Plaintext *string
	Hash      string
}

func (p *Password) Set(plaintextPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintextPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	p.Hash = string(hash)
	p.Plaintext = &plaintextPassword
	return nil
}

func (p *Password) Matches(plaintextPassword string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(p.Hash), []byte(plaintextPassword))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
