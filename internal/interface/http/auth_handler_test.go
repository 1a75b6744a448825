package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learnsphere/learnsphere-api/internal/application"
	"github.com/learnsphere/learnsphere-api/internal/domain/entity"
	repo "github.com/learnsphere/learnsphere-api/internal/domain/repository"
	"github.com/learnsphere/learnsphere-api/internal/interface/middleware"
	"github.com/learnsphere/learnsphere-api/pkg/helpers"
	"github.com/learnsphere/learnsphere-api/pkg/validation"
)

// memUserRepo backs the handler tests without a database. Email uniqueness is
// enforced under the lock, matching the unique index in the real store.
type memUserRepo struct {
	mu      sync.Mutex
	byID    map[string]*entity.User
	byEmail map[string]*entity.User
	nextID  int
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byID: map[string]*entity.User{}, byEmail: map[string]*entity.User{}}
}

func (r *memUserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[u.Email]; ok {
		return repo.ErrDuplicateEmail
	}
	r.nextID++
	u.ID = fmt.Sprintf("u-%d", r.nextID)
	cp := *u
	r.byID[u.ID] = &cp
	r.byEmail[u.Email] = &cp
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byEmail[email]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) List(_ context.Context) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.User, 0, len(r.byID))
	for _, u := range r.byID {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memUserRepo) Update(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	old, ok := r.byID[u.ID]
	if !ok {
		return repo.ErrNotFound
	}
	delete(r.byEmail, old.Email)
	cp := *u
	r.byID[u.ID] = &cp
	r.byEmail[u.Email] = &cp
	return nil
}

func (r *memUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return repo.ErrNotFound
	}
	delete(r.byEmail, u.Email)
	delete(r.byID, id)
	return nil
}

var _ repo.UserRepository = (*memUserRepo)(nil)

func newAuthTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	svc := application.NewAuthService(newMemUserRepo(), jwt, nil, logger, 4, false)
	h := NewAuthHandler(svc, logger)

	r := gin.New()
	auth := r.Group("/auth")
	auth.POST("/register", h.Register)
	auth.POST("/login", h.Login)
	auth.GET("/me", middleware.Auth(jwt, logger), h.Me)
	return r
}

func postJSON(r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	b, _ := json.Marshal(body)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestRegisterLoginMeFlow(t *testing.T) {
	r := newAuthTestServer(t)

	register := postJSON(r, "/auth/register", gin.H{
		"name":     "A",
		"email":    "a@x.com",
		"password": "p1",
		"phone":    "111",
	})
	require.Equal(t, http.StatusCreated, register.Code, register.Body.String())

	regBody := decode(t, register)
	assert.Equal(t, true, regBody["success"])
	assert.Equal(t, "User registered successfully", regBody["message"])
	assert.NotEmpty(t, regBody["token"])
	regUser, ok := regBody["user"].(map[string]any)
	require.True(t, ok)
	assert.NotEmpty(t, regUser["id"])
	assert.Equal(t, "Student", regUser["role"])

	login := postJSON(r, "/auth/login", gin.H{"email": "a@x.com", "password": "p1"})
	require.Equal(t, http.StatusOK, login.Code, login.Body.String())

	loginBody := decode(t, login)
	assert.Equal(t, "Login successful", loginBody["message"])
	token, _ := loginBody["token"].(string)
	require.NotEmpty(t, token)
	loginUser, ok := loginBody["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, regUser["id"], loginUser["id"])

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	meBody := decode(t, w)
	meUser, ok := meBody["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "a@x.com", meUser["email"])
	assert.NotContains(t, w.Body.String(), "password", "hash never serializes")
}

func TestRegister_MissingFields(t *testing.T) {
	r := newAuthTestServer(t)

	w := postJSON(r, "/auth/register", gin.H{"name": "A", "email": "a@x.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	body := decode(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "all fields are required", body["message"])
}

func TestRegister_DuplicateEmail(t *testing.T) {
	r := newAuthTestServer(t)

	payload := gin.H{"name": "A", "email": "a@x.com", "password": "p1", "phone": "111"}
	require.Equal(t, http.StatusCreated, postJSON(r, "/auth/register", payload).Code)

	w := postJSON(r, "/auth/register", payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "email already registered", decode(t, w)["message"])
}

func TestRegister_InvalidRole(t *testing.T) {
	r := newAuthTestServer(t)

	w := postJSON(r, "/auth/register", gin.H{
		"name": "A", "email": "a@x.com", "password": "p1", "phone": "111", "role": "Superuser",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin_IdenticalFailureResponses(t *testing.T) {
	r := newAuthTestServer(t)

	payload := gin.H{"name": "A", "email": "a@x.com", "password": "p1", "phone": "111"}
	require.Equal(t, http.StatusCreated, postJSON(r, "/auth/register", payload).Code)

	wrongPwd := postJSON(r, "/auth/login", gin.H{"email": "a@x.com", "password": "nope"})
	unknown := postJSON(r, "/auth/login", gin.H{"email": "ghost@x.com", "password": "p1"})
	malformed := postJSON(r, "/auth/login", gin.H{"email": "not-an-email", "password": "p1"})

	assert.Equal(t, http.StatusUnauthorized, wrongPwd.Code)
	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, http.StatusUnauthorized, malformed.Code,
		"login checks presence only, a malformed email is just an unknown one")
	assert.Equal(t, wrongPwd.Body.String(), unknown.Body.String(),
		"response must not reveal whether the email exists")
	assert.Equal(t, unknown.Body.String(), malformed.Body.String())
}

func TestMe_Unauthenticated(t *testing.T) {
	r := newAuthTestServer(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "missing bearer token")
}
