package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/01moynul/flowershop-golang/internal/auth"
	"github.com/01moynul/flowershop-golang/internal/common"
	"github.com/01moynul/flowershop-golang/internal/models"
)

// Store is the persistence the Service needs.
type Store interface {
	Create(ctx context.Context, u models.NewUser) (int64, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// Registration is a validated sign-up request.
type Registration struct {
	Username string
	Email    string
	Password string
	Phone    string
}

type Service struct {
	store    Store
	secret   []byte
	tokenTTL time.Duration
}

func NewService(store Store, secret []byte, tokenTTL time.Duration) *Service {
	return &Service{store: store, secret: secret, tokenTTL: tokenTTL}
}

// Register creates an account. invitedBy is the inviter's id, or nil for a
// plain sign-up.
func (s *Service) Register(ctx context.Context, reg Registration, invitedBy *int64) (int64, error) {
	var password models.Password
	if err := password.Set(reg.Password); err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	u := models.NewUser{
		Username:     reg.Username,
		Email:        reg.Email,
		PasswordHash: password.Hash,
		InvitedBy:    invitedBy,
	}
	if reg.Phone != "" {
		u.Phone = &reg.Phone
	}

	return s.store.Create(ctx, u)
}

// Login checks the credentials and issues a token. Unknown usernames and
// wrong passwords both give common.ErrorInvalidCredentials.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	u, err := s.store.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorInvalidCredentials
		}
		return "", err
	}

	p := models.Password{Hash: u.PasswordHash}
	ok, err := p.Matches(password)
	if err != nil {
		return "", fmt.Errorf("compare password: %w", err)
	}
	if !ok {
		return "", common.ErrorInvalidCredentials
	}

	return auth.GenerateToken(u.Identity(), s.secret, s.tokenTTL)
}

// Profile returns the account behind identity.
func (s *Service) Profile(ctx context.Context, identity models.AuthenticatedIdentity) (*models.User, error) {
	return s.store.GetByID(ctx, identity.ID)
}
