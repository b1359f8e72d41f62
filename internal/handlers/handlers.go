package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/01moynul/flowershop-golang/internal/logging"
	"github.com/01moynul/flowershop-golang/internal/middleware"
	"github.com/01moynul/flowershop-golang/internal/models"
	"github.com/01moynul/flowershop-golang/internal/users"
)

// OrderStore is the owner-scoped order repository.
type OrderStore interface {
	Create(ctx context.Context, identity models.AuthenticatedIdentity, order models.NewOrder) (*models.Order, error)
	Update(ctx context.Context, identity models.AuthenticatedIdentity, orderID int64, update models.OrderUpdate) (*models.Order, error)
	Get(ctx context.Context, identity models.AuthenticatedIdentity, status string) ([]models.Order, error)
	FetchByID(ctx context.Context, identity models.AuthenticatedIdentity, orderID int64) (*models.Order, error)
}

// UserService runs the account flows.
type UserService interface {
	Register(ctx context.Context, reg users.Registration, invitedBy *int64) (int64, error)
	Login(ctx context.Context, username, password string) (string, error)
	Profile(ctx context.Context, identity models.AuthenticatedIdentity) (*models.User, error)
}

// Handlers struct holds all dependencies for our handlers.
type Handlers struct {
	Orders OrderStore
	Users  UserService
	Logger logging.Logger
}

// identity reads the caller resolved by middleware.AuthMiddleware.
func (h *Handlers) identity(c *gin.Context) (models.AuthenticatedIdentity, bool) {
	id, ok := middleware.Identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
	}
	return id, ok
}

// storeFailure logs err and answers 500 with a generic message.
func (h *Handlers) storeFailure(c *gin.Context, err error, msg string, args ...any) {
	args = append(args, "error", err, "request_id", middleware.GetRequestID(c))
	h.Logger.Error(c.Request.Context(), msg, args...)
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}
