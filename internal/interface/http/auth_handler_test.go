package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/acara-auth/internal/application"
	"github.com/oksasatya/acara-auth/internal/domain/entity"
	repo "github.com/oksasatya/acara-auth/internal/domain/repository"
	handlers "github.com/oksasatya/acara-auth/internal/interface/http"
	"github.com/oksasatya/acara-auth/internal/interface/middleware"
	"github.com/oksasatya/acara-auth/pkg/helpers"
)

type memRepo struct {
	mu    sync.Mutex
	users []entity.User
}

func (r *memRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, x := range r.users {
		if x.Username == u.Username || strings.EqualFold(x.Email, u.Email) {
			return repo.ErrConflict
		}
	}
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now().UTC()
	r.users = append(r.users, *u)
	return nil
}

func (r *memRepo) FindByIdentifier(_ context.Context, identifier string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, x := range r.users {
		if strings.EqualFold(x.Email, identifier) || x.Username == identifier {
			u := x
			return &u, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r *memRepo) FindByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, x := range r.users {
		if x.ID == id {
			u := x
			return &u, nil
		}
	}
	return nil, repo.ErrNotFound
}

type envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	engine *gin.Engine
	tokens *helpers.TokenManager
	repo   *memRepo
}

func newTestServer() *testServer {
	gin.SetMode(gin.TestMode)
	r := &memRepo{}
	logger := helpers.NewNopLogger()
	tokens := helpers.NewTokenManager("jwt-secret", time.Hour)
	store := application.NewUserStore(r, helpers.NewCredentialCodec("cred-secret"), nil, logger)
	h := handlers.NewAuthHandler(application.NewAuthService(store, tokens, logger), logger, "", false)

	e := gin.New()
	e.POST("/api/auth/register", h.Register)
	e.POST("/api/auth/login", h.Login)
	e.GET("/api/auth/me", middleware.Auth(tokens), h.Me)
	return &testServer{engine: e, tokens: tokens, repo: r}
}

func (s *testServer) do(t *testing.T, method, path, body, token string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

const adaJSON = `{"fullName":"Ada Lovelace","username":"ada","email":"ada@example.com","password":"secret1","confirmPassword":"secret1"}`

func TestRegisterLoginScenario(t *testing.T) {
	s := newTestServer()

	w, env := s.do(t, http.MethodPost, "/api/auth/register", adaJSON, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Success registering user", env.Message)
	var user map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &user))
	assert.Equal(t, "ada", user["username"])
	assert.NotContains(t, user, "password")

	w, env = s.do(t, http.MethodPost, "/api/auth/login", `{"identifier":"ada","password":"secret1"}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Success login", env.Message)
	var token string
	require.NoError(t, json.Unmarshal(env.Data, &token))
	assert.NotEmpty(t, token)
	assert.Contains(t, w.Header().Get("Set-Cookie"), helpers.AccessCookie+"=")

	w, env = s.do(t, http.MethodPost, "/api/auth/login", `{"identifier":"ada","password":"wrong"}`, "")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "user not found", env.Message)
	assert.Equal(t, "null", string(env.Data))

	w, env = s.do(t, http.MethodGet, "/api/auth/me", "", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Success get user profile", env.Message)
	var me map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &me))
	assert.Equal(t, user, me)
}

func TestLoginUnknownIdentifier(t *testing.T) {
	s := newTestServer()
	w, env := s.do(t, http.MethodPost, "/api/auth/login", `{"identifier":"nobody","password":"secret1"}`, "")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "user not found", env.Message)
}

func TestLoginByEmail(t *testing.T) {
	s := newTestServer()
	s.do(t, http.MethodPost, "/api/auth/register", adaJSON, "")

	w, _ := s.do(t, http.MethodPost, "/api/auth/login", `{"identifier":"Ada@Example.com","password":"secret1"}`, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRegisterValidationFailure(t *testing.T) {
	s := newTestServer()
	body := `{"fullName":"Ada","username":"ada","email":"ada@example.com","password":"secret1","confirmPassword":"secret2"}`

	w, env := s.do(t, http.MethodPost, "/api/auth/register", body, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Passwords must match", env.Message)
	assert.Equal(t, "null", string(env.Data))
	assert.Empty(t, s.repo.users)
}

func TestRegisterEmptyConfirmation(t *testing.T) {
	s := newTestServer()
	body := `{"fullName":"Ada","username":"ada","email":"ada@example.com","password":"secret1","confirmPassword":""}`

	w, _ := s.do(t, http.MethodPost, "/api/auth/register", body, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRegisterMalformedJSON(t *testing.T) {
	s := newTestServer()
	w, env := s.do(t, http.MethodPost, "/api/auth/register", `{"fullName":`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotEmpty(t, env.Message)
}

func TestRegisterConflict(t *testing.T) {
	s := newTestServer()
	s.do(t, http.MethodPost, "/api/auth/register", adaJSON, "")

	w, env := s.do(t, http.MethodPost, "/api/auth/register", adaJSON, "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, application.ErrConflict.Error(), env.Message)
}

func TestMeUnknownUser(t *testing.T) {
	s := newTestServer()
	token, _, err := s.tokens.Issue(uuid.NewString(), "user")
	require.NoError(t, err)

	w, env := s.do(t, http.MethodGet, "/api/auth/me", "", token)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "user not found", env.Message)
}

func TestMeWithoutToken(t *testing.T) {
	s := newTestServer()
	w, env := s.do(t, http.MethodGet, "/api/auth/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "missing access token", env.Message)
}
