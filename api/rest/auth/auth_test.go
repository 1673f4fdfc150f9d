package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"codeberg.org/finpilot/server/finpilot/users"
	"codeberg.org/finpilot/server/internal/auth"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type mockRepo struct {
	mu    sync.Mutex
	creds map[string]string
}

func (m *mockRepo) Register(_ context.Context, email, password string) (*users.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	email = users.NormalizeEmail(email)
	if _, ok := m.creds[email]; ok {
		return nil, users.ErrUserExists
	}
	m.creds[email] = password

	return &users.User{Email: email}, nil
}

func (m *mockRepo) Authenticate(_ context.Context, email, password string) (*users.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	email = users.NormalizeEmail(email)
	if stored, ok := m.creds[email]; !ok || stored != password {
		return nil, users.ErrInvalidCredentials
	}

	return &users.User{Email: email}, nil
}

func (m *mockRepo) FindByEmail(_ context.Context, email string) (*users.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.creds[email]; !ok {
		return nil, users.ErrNotFound
	}

	return &users.User{Email: email}, nil
}

func setup(t *testing.T) (*gin.Engine, *mockRepo) {
	t.Helper()

	issuer, err := auth.NewTokenIssuer("test-secret", 0)
	require.NoError(t, err)

	repo := &mockRepo{creds: map[string]string{}}
	router := gin.New()
	RegisterRoutes(router.Group("/api/v1"), repo, issuer, auth.NewMemoryRevoker(), func(c *gin.Context) { c.Next() })

	return router, repo
}

func doJSON(router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body) //nolint:errcheck,gosec // test helper
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func TestRegisterLoginMeLogout(t *testing.T) {
	router, _ := setup(t)

	w := doJSON(router, http.MethodPost, "/api/v1/auth/register", "", RegisterRequest{Email: "Ann@Example.com", Password: "secret123"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var registered AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &registered))
	assert.Equal(t, "ann@example.com", registered.User.Email)
	assert.NotEmpty(t, registered.Token)

	w = doJSON(router, http.MethodPost, "/api/v1/auth/login", "", LoginRequest{Email: "ann@example.com", Password: "secret123"})
	require.Equal(t, http.StatusOK, w.Code)

	var loggedIn AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loggedIn))

	w = doJSON(router, http.MethodGet, "/api/v1/auth/me", loggedIn.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ann@example.com")

	w = doJSON(router, http.MethodPost, "/api/v1/auth/logout", loggedIn.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// the token is no longer accepted
	w = doJSON(router, http.MethodGet, "/api/v1/auth/me", loggedIn.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// other sessions stay valid
	w = doJSON(router, http.MethodGet, "/api/v1/auth/me", registered.Token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRegister_Errors(t *testing.T) {
	router, repo := setup(t)
	repo.creds["taken@example.com"] = "password123"

	tests := []struct {
		name   string
		body   any
		status int
		code   string
	}{
		{"invalid email", RegisterRequest{Email: "nope", Password: "secret123"}, http.StatusBadRequest, "validation_error"},
		{"short password", RegisterRequest{Email: "x@example.com", Password: "123"}, http.StatusBadRequest, "validation_error"},
		{"duplicate", RegisterRequest{Email: "taken@example.com", Password: "secret123"}, http.StatusConflict, "conflict"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(router, http.MethodPost, "/api/v1/auth/register", "", tt.body)
			assert.Equal(t, tt.status, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.code), w.Body.String())
		})
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	router, repo := setup(t)
	repo.creds["ann@example.com"] = "secret123"

	w := doJSON(router, http.MethodPost, "/api/v1/auth/login", "", LoginRequest{Email: "ann@example.com", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(router, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "ann@example.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMe_RequiresToken(t *testing.T) {
	router, _ := setup(t)

	w := doJSON(router, http.MethodGet, "/api/v1/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
