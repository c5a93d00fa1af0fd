package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"choo-choo/cmd/api/auth"
	"choo-choo/cmd/api/services"
	"choo-choo/cmd/api/trace"
	"choo-choo/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type noUsers struct{}

func (noUsers) Insert(context.Context, *models.User) error { return nil }
func (noUsers) FindByEmail(context.Context, string) (*models.User, error) { return nil, nil }
func (noUsers) FindByID(context.Context, string) (*models.User, error) { return nil, nil }

func newAuthService(t *testing.T) (*services.AuthService, *auth.JWTManager) {
	t.Helper()
	m, err := auth.NewJWTManager("test-secret", "", time.Hour)
	require.NoError(t, err)
	return services.NewAuthService(noUsers{}, nil, m), m
}

func TestRequireSession(t *testing.T) {
	authSvc, jwtManager := newAuthService(t)
	r := gin.New()
	r.GET("/api/me", RequireSession(authSvc), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(auth.ContextKeyUserID)+"/"+c.GetString(auth.ContextKeyUserName))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: "garbage"})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, err := jwtManager.Sign("user-1", "Ada")
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: token})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-1/Ada", w.Body.String())
}

func TestRequirePageSessionRedirects(t *testing.T) {
	authSvc, _ := newAuthService(t)
	r := gin.New()
	r.GET("/index", RequirePageSession(authSvc), func(c *gin.Context) { c.String(http.StatusOK, "chat") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/index", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestRequestTracePropagatesIDsAndKeepsBody(t *testing.T) {
	r := gin.New()
	r.Use(RequestTrace())
	var seenRequestID, seenBody string
	r.POST("/api/typed-input", func(c *gin.Context) {
		seenRequestID = trace.RequestIDFromContext(c.Request.Context())
		b, _ := io.ReadAll(c.Request.Body)
		seenBody = string(b)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/typed-input", strings.NewReader(`{"text":"hi"}`))
	req.Header.Set(trace.HeaderRequestID, "req-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-123", seenRequestID)
	assert.Equal(t, `{"text":"hi"}`, seenBody)
	assert.Equal(t, "req-123", w.Header().Get(trace.HeaderRequestID))
	assert.Equal(t, "0", w.Header().Get(trace.HeaderSpanID))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/typed-input", nil))
	assert.Len(t, w.Header().Get(trace.HeaderRequestID), 32)
}

func TestLoginBodyIsNotLogged(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"password":"x"}`))
	assert.False(t, hasLoggableBody(req))

	req = httptest.NewRequest(http.MethodPost, "/api/typed-input", strings.NewReader(`{"text":"x"}`))
	assert.True(t, hasLoggableBody(req))

	req = httptest.NewRequest(http.MethodGet, "/api/chats", nil)
	assert.False(t, hasLoggableBody(req))
}
