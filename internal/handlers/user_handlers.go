package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/01moynul/flowershop-golang/internal/common"
	"github.com/01moynul/flowershop-golang/internal/users"
)

// --- User Registration ---

// RegisterUserInput is the sign-up body, also used by invites.
type RegisterUserInput struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required,min=5,max=100"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone" binding:"omitempty,rophone"`
}

func (in RegisterUserInput) registration() users.Registration {
	return users.Registration{
		Username: in.Username,
		Email:    in.Email,
		Password: in.Password,
		Phone:    in.Phone,
	}
}

type LoginInput struct {
	Username string `json:"username" binding:"required,min=5,max=100"`
	Password string `json:"password" binding:"required,min=6"`
}

// Register is the handler for POST /api/users/register
func (h *Handlers) Register(c *gin.Context) {
	var input RegisterUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, err := h.Users.Register(c.Request.Context(), input.registration(), nil)
	if err != nil {
		h.registrationFailed(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User registered", "userId": userID})
}

// Invite is the handler for POST /api/users/invite
// The new account records the caller as its inviter.
func (h *Handlers) Invite(c *gin.Context) {
	var input RegisterUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	identity, ok := h.identity(c)
	if !ok {
		return
	}

	userID, err := h.Users.Register(c.Request.Context(), input.registration(), &identity.ID)
	if err != nil {
		h.registrationFailed(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User invited", "userId": userID})
}

func (h *Handlers) registrationFailed(c *gin.Context, err error) {
	if errors.Is(err, common.ErrorAlreadyExists) {
		c.JSON(http.StatusConflict, gin.H{"error": "Username or email already exists"})
		return
	}
	h.storeFailure(c, err, "Database error")
}

// Login is the handler for POST /api/users/login
func (h *Handlers) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.Users.Login(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		if errors.Is(err, common.ErrorInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		h.storeFailure(c, err, "Server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Profile is the handler for GET /api/users/profile
func (h *Handlers) Profile(c *gin.Context) {
	identity, ok := h.identity(c)
	if !ok {
		return
	}

	user, err := h.Users.Profile(c.Request.Context(), identity)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		h.storeFailure(c, err, "Server error", "user_id", identity.ID)
		return
	}

	c.JSON(http.StatusOK, user)
}
