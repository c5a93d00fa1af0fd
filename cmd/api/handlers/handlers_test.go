package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"choo-choo/cmd/api/assistant"
	"choo-choo/cmd/api/auth"
	"choo-choo/cmd/api/dto"
	"choo-choo/cmd/api/services"
	"choo-choo/cmd/api/speech"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	engine   *gin.Engine
	users    *memoryUsers
	sessions *memorySessions
	weather  *stubWeather
	userID   string
}

// newTestEnv 는 인증 미들웨어 대신 고정된 사용자 ID 를 넣는 엔진을 만든다.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	jwtManager, err := auth.NewJWTManager("test-secret", "", time.Hour)
	require.NoError(t, err)

	env := &testEnv{
		users:    newMemoryUsers(),
		sessions: newMemorySessions(),
		weather:  &stubWeather{},
		userID:   primitive.NewObjectID().Hex(),
	}
	responder := assistant.New(assistant.WithWeather(env.weather, "London"))
	authSvc := services.NewAuthService(env.users, env.sessions, jwtManager)
	chatSvc := services.NewChatService(responder, env.sessions, nil, 4)
	sessionSvc := services.NewSessionService(env.sessions, nil)
	speechSvc := speech.NewService(nil)

	r := gin.New()
	r.POST("/signup", SignupHandler(authSvc))
	r.POST("/login", LoginHandler(authSvc, false))
	r.POST("/logout", LogoutHandler(false))

	api := r.Group("/api", func(c *gin.Context) {
		if id := c.GetHeader("X-Test-User"); id != "" {
			c.Set(auth.ContextKeyUserID, id)
		}
		c.Next()
	})
	api.POST("/typed-input", TypedInputHandler(chatSvc))
	api.POST("/text-to-speech", TextToSpeechHandler(speechSvc, sessionSvc))
	api.GET("/chats", ListSessionsHandler(sessionSvc))
	api.POST("/chats", CreateSessionHandler(sessionSvc))
	api.GET("/chats/:id", GetSessionHandler(sessionSvc))
	api.DELETE("/chats/:id", DeleteSessionHandler(sessionSvc))
	api.GET("/me", GetUserProfileHandler(authSvc))

	env.engine = r
	return env
}

func (e *testEnv) do(t *testing.T, method, path string, body any, userID string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-Test-User", userID)
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestSignupAndLoginFlow(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/signup", dto.SignupRequestDTO{Name: "Ada", Email: "ada@example.com"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "All fields are required.", decode[dto.ErrorResponseDTO](t, w).Message)

	w = env.do(t, http.MethodPost, "/signup", dto.SignupRequestDTO{Name: "Ada", Email: "ada@example.com", Password: "pw"}, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodPost, "/signup", dto.SignupRequestDTO{Name: "Ada", Email: "ada@example.com", Password: "pw"}, "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w = env.do(t, http.MethodPost, "/login", dto.LoginRequestDTO{Email: "nobody@example.com", Password: "pw"}, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Oops, user does not exist.", decode[dto.ErrorResponseDTO](t, w).Message)

	w = env.do(t, http.MethodPost, "/login", dto.LoginRequestDTO{Email: "ada@example.com", Password: "nope"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, http.MethodPost, "/login", dto.LoginRequestDTO{Email: "ada@example.com", Password: "pw"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[dto.LoginResponseDTO](t, w)
	assert.Equal(t, "/index", resp.RedirectURL)
	assert.NotEmpty(t, resp.SessionID)
	assert.Contains(t, w.Header().Get("Set-Cookie"), auth.SessionCookieName+"=")
	assert.Contains(t, w.Header().Get("Set-Cookie"), "HttpOnly")
}

func TestLogoutClearsCookie(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodPost, "/logout", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Set-Cookie"), "Max-Age=0")
}

func TestTypedInputRoutesWeatherAndKeepsSession(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/typed-input", dto.TypedInputRequestDTO{Text: "what's the weather in Paris?"}, env.userID)
	require.Equal(t, http.StatusOK, w.Code)
	first := decode[dto.TypedInputResponseDTO](t, w)
	assert.Equal(t, assistant.IntentWeather, first.Intent)
	assert.Contains(t, strings.ToLower(first.Response), "paris")
	assert.NotEmpty(t, first.SessionID)
	assert.Equal(t, []string{"paris"}, lowerAll(env.weather.cities))

	w = env.do(t, http.MethodPost, "/api/typed-input", dto.TypedInputRequestDTO{Text: "weather in Lyon", SessionID: first.SessionID}, env.userID)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, first.SessionID, decode[dto.TypedInputResponseDTO](t, w).SessionID)

	w = env.do(t, http.MethodGet, "/api/chats/"+first.SessionID, nil, env.userID)
	require.Equal(t, http.StatusOK, w.Code)
	session := decode[dto.ChatSessionDTO](t, w)
	require.Len(t, session.Messages, 2)
	assert.Equal(t, "what's the weather in Paris?", session.Messages[0].User)
	assert.Equal(t, "weather in Lyon", session.Messages[1].User)
}

func TestTypedInputErrors(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/typed-input", dto.TypedInputRequestDTO{Text: "hi"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, http.MethodPost, "/api/typed-input", map[string]string{}, env.userID)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPost, "/api/typed-input", dto.TypedInputRequestDTO{Text: "   "}, env.userID)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPost, "/api/typed-input", dto.TypedInputRequestDTO{Text: "hi", SessionID: primitive.NewObjectID().Hex()}, env.userID)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSessionEndpoints(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/chats", nil, env.userID)
	require.Equal(t, http.StatusOK, w.Code)
	created := decode[dto.ChatSessionDTO](t, w)
	assert.Equal(t, "New Chat", created.Title)

	w = env.do(t, http.MethodGet, "/api/chats?page=1&page_size=10", nil, env.userID)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[dto.ListSessionsResponse](t, w)
	assert.EqualValues(t, 1, list.Total)
	require.Len(t, list.Items, 1)
	assert.Equal(t, created.ID, list.Items[0].ID)

	other := primitive.NewObjectID().Hex()
	w = env.do(t, http.MethodGet, "/api/chats/"+created.ID, nil, other)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodDelete, "/api/chats/"+created.ID, nil, env.userID)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "deleted", decode[dto.MessageResponseDTO](t, w).Message)

	w = env.do(t, http.MethodDelete, "/api/chats/"+created.ID, nil, env.userID)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTextToSpeechUnavailable(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/text-to-speech", dto.TextToSpeechRequestDTO{Text: "hello"}, env.userID)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "speech_unavailable", decode[dto.ErrorResponseDTO](t, w).Error)

	w = env.do(t, http.MethodPost, "/api/text-to-speech", map[string]string{"voice_type": "male"}, env.userID)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTextToSpeechChecksSessionOwner(t *testing.T) {
	sessions := newMemorySessions()
	speaker := &recordingSpeaker{}
	speechSvc := speech.NewService(speaker)
	sessionSvc := services.NewSessionService(sessions, speechSvc)

	r := gin.New()
	r.POST("/api/text-to-speech", func(c *gin.Context) {
		c.Set(auth.ContextKeyUserID, c.GetHeader("X-Test-User"))
		c.Next()
	}, TextToSpeechHandler(speechSvc, sessionSvc))

	owner := primitive.NewObjectID().Hex()
	stranger := primitive.NewObjectID().Hex()
	session, err := sessions.Create(context.Background(), owner)
	require.NoError(t, err)

	send := func(userID string, body dto.TextToSpeechRequestDTO) *httptest.ResponseRecorder {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodPost, "/api/text-to-speech", bytes.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Test-User", userID)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := send(stranger, dto.TextToSpeechRequestDTO{Text: "hijack", SessionID: session.ID.Hex()})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "session_not_found", decode[dto.ErrorResponseDTO](t, w).Error)

	w = send(owner, dto.TextToSpeechRequestDTO{Text: "hello", SessionID: session.ID.Hex()})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Text has been spoken.", decode[dto.MessageResponseDTO](t, w).Message)

	require.Eventually(t, func() bool { return len(speaker.spoken()) == 1 }, time.Second, time.Millisecond)
	assert.Equal(t, []string{"hello"}, speaker.spoken())
}

func TestProfile(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodPost, "/signup", dto.SignupRequestDTO{Name: "Ada", Email: "ada@example.com", Password: "pw"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	user, err := env.users.FindByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)

	w = env.do(t, http.MethodGet, "/api/me", nil, user.ID.Hex())
	require.Equal(t, http.StatusOK, w.Code)
	profile := decode[dto.UserProfileDTO](t, w)
	assert.Equal(t, "Ada", profile.Name)
	assert.Equal(t, user.ID.Hex(), profile.ID)
}

func TestHealthHandler(t *testing.T) {
	r := gin.New()
	r.GET("/ok", HealthHandler(func(context.Context) error { return nil }))
	r.GET("/down", HealthHandler(func(context.Context) error { return errors.New("no primary") }))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/down", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "no primary")
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}
