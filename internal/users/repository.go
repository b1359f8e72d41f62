package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/01moynul/flowershop-golang/internal/common"
	"github.com/01moynul/flowershop-golang/internal/database"
	"github.com/01moynul/flowershop-golang/internal/models"
)

// ConnSource hands out the managed store connection.
type ConnSource interface {
	Acquire(ctx context.Context) (*database.Conn, error)
}

type Repository struct {
	db ConnSource
}

func NewRepository(db ConnSource) *Repository {
	return &Repository{db: db}
}

// Create inserts the account and returns its id. A taken username or email
// yields common.ErrorAlreadyExists.
func (r *Repository) Create(ctx context.Context, u models.NewUser) (int64, error) {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return 0, persistence(err)
	}

	res, err := conn.Exec(ctx, BuildInsertUser(u))
	if err != nil {
		if database.IsUniqueViolation(err) {
			return 0, common.ErrorAlreadyExists
		}
		return 0, persistence(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, persistence(err)
	}
	return id, nil
}

// GetByUsername returns common.ErrorNotFound when there is no such account.
func (r *Repository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findOne(ctx, BuildFindUserByUsername(username))
}

// GetByID returns common.ErrorNotFound when there is no such account.
func (r *Repository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.findOne(ctx, BuildFindUserByID(id))
}

func (r *Repository) findOne(ctx context.Context, st database.Statement) (*models.User, error) {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return nil, persistence(err)
	}

	var found *models.User
	err = conn.Query(ctx, st, func(rows *sql.Rows) error {
		var (
			u         models.User
			phone     sql.NullString
			invitedBy sql.NullInt64
		)
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &phone, &u.PasswordHash, &invitedBy, &u.CreatedAt); err != nil {
			return err
		}
		if phone.Valid {
			u.Phone = &phone.String
		}
		if invitedBy.Valid {
			u.InvitedBy = &invitedBy.Int64
		}
		found = &u
		return nil
	})
	if err != nil {
		return nil, persistence(err)
	}
	if found == nil {
		return nil, common.ErrorNotFound
	}
	return found, nil
}

func persistence(err error) error {
	if errors.Is(err, common.ErrorPersistence) {
		return err
	}
	return fmt.Errorf("%w: %w", common.ErrorPersistence, err)
}
