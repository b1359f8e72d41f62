package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/01moynul/flowershop-golang/internal/auth"
	"github.com/01moynul/flowershop-golang/internal/common"
	"github.com/01moynul/flowershop-golang/internal/models"
)

var secret = []byte("mw-secret")

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuthRouter() *gin.Engine {
	r := gin.New()
	r.GET("/me", AuthMiddleware(secret), func(c *gin.Context) {
		id, ok := Identity(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, id)
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	valid, err := auth.GenerateToken(models.AuthenticatedIdentity{ID: 1, Username: "alice"}, secret, time.Hour)
	require.NoError(t, err)
	expired, err := auth.GenerateToken(models.AuthenticatedIdentity{ID: 1, Username: "alice"}, secret, -time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"valid", "Bearer " + valid, http.StatusOK},
		{"expired", "Bearer " + expired, http.StatusForbidden},
		{"garbage", "Bearer abc.def.ghi", http.StatusForbidden},
		{"wrong scheme", "Basic " + valid, http.StatusForbidden},
		{"no token", "Bearer", http.StatusForbidden},
	}

	r := newAuthRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusOK {
				assert.JSONEq(t, `{"id":1,"username":"alice"}`, w.Body.String())
			}
		})
	}
}

func TestAuthenticate_Errors(t *testing.T) {
	valid, err := auth.GenerateToken(models.AuthenticatedIdentity{ID: 7, Username: "carol"}, secret, time.Hour)
	require.NoError(t, err)

	_, err = authenticate("", secret)
	assert.ErrorIs(t, err, common.ErrorNoCredential)

	_, err = authenticate("Token "+valid, secret)
	assert.ErrorIs(t, err, common.ErrorInvalidToken)
	assert.NotErrorIs(t, err, common.ErrorNoCredential)

	_, err = authenticate("Bearer abc.def.ghi", secret)
	assert.ErrorIs(t, err, common.ErrorInvalidToken)

	id, err := authenticate("Bearer "+valid, secret)
	require.NoError(t, err)
	assert.Equal(t, int64(7), id.ID)
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := w.Header().Get(RequestIDHeader)
	_, err := uuid.Parse(generated)
	require.NoError(t, err)
	assert.Equal(t, generated, w.Body.String())

	given := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, given)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, given, w.Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "not-a-uuid")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.NotEqual(t, "not-a-uuid", w.Header().Get(RequestIDHeader))
}

func TestCORSMiddleware_Preflight(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware("http://localhost:5173"))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}
