// Package users stores accounts and runs the register/login/invite flows.
package users

import (
	"github.com/01moynul/flowershop-golang/internal/database"
	"github.com/01moynul/flowershop-golang/internal/models"
)

const userColumns = "id, username, email, phone, password_hash, invited_by, created_at"

// BuildInsertUser builds the INSERT for a new account.
func BuildInsertUser(u models.NewUser) database.Statement {
	return database.Statement{
		Query: "INSERT INTO users (username, email, phone, password_hash, invited_by) VALUES (?, ?, ?, ?, ?)",
		Args:  []any{u.Username, u.Email, u.Phone, u.PasswordHash, u.InvitedBy},
	}
}

// BuildFindUserByUsername looks an account up by its unique username.
func BuildFindUserByUsername(username string) database.Statement {
	return database.Statement{
		Query: "SELECT " + userColumns + " FROM users WHERE username = ? LIMIT 1",
		Args:  []any{username},
	}
}

// BuildFindUserByID looks an account up by id.
func BuildFindUserByID(id int64) database.Statement {
	return database.Statement{
		Query: "SELECT " + userColumns + " FROM users WHERE id = ? LIMIT 1",
		Args:  []any{id},
	}
}
