package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	stdhttp "net/http"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mw "github.com/lorrc/user-management-api/internal/adapters/primary/http/middleware"
	"github.com/lorrc/user-management-api/internal/core/domain"
	apperrors "github.com/lorrc/user-management-api/internal/core/errors"
	"github.com/lorrc/user-management-api/internal/core/services"
)

// memoryStore is an in-process stand-in for the postgres repository.
type memoryStore struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]domain.User
	down   bool
	writes int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{users: make(map[int64]domain.User)}
}

func (s *memoryStore) Create(ctx context.Context, params domain.UserCreate) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.down {
		return nil, apperrors.NewStoreError("create user", errors.New("connection refused"))
	}
	s.nextID++
	s.writes++
	user := domain.User{ID: s.nextID, Name: params.Name, Email: params.Email}
	s.users[user.ID] = user
	return &user, nil
}

func (s *memoryStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.down {
		return nil, apperrors.NewStoreError("get user", errors.New("connection refused"))
	}
	user, ok := s.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return &user, nil
}

func (s *memoryStore) Probe(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.down {
		return apperrors.NewStoreError("probe users", errors.New("connection refused"))
	}
	return nil
}

func newTestApp(store *memoryStore) stdhttp.Handler {
	return NewRouter(RouterConfig{
		UserService:    services.NewUserService(store),
		HealthProber:   store,
		Version:        "test",
		AllowedOrigins: []string{"*"},
		CORSMaxAge:     60,
		Logger:         newTestLogger(),
	})
}

func TestRouter_CreateThenFetch(t *testing.T) {
	app := newTestApp(newMemoryStore())

	created := doRequest(app, stdhttp.MethodPost, "/users/", `{"name":"Ana","email":"ana@example.com"}`)
	require.Equal(t, stdhttp.StatusCreated, created.Code)
	assert.NotEmpty(t, created.Header().Get(mw.RequestIDHeader))

	var user UserDTO
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &user))
	assert.Equal(t, "Ana", user.Name)
	assert.Equal(t, "ana@example.com", user.Email)
	assert.Positive(t, user.ID)

	fetched := doRequest(app, stdhttp.MethodGet, fmt.Sprintf("/users/%d", user.ID), "")
	require.Equal(t, stdhttp.StatusOK, fetched.Code)
	assert.JSONEq(t, created.Body.String(), fetched.Body.String())
}

func TestRouter_FreshIDs(t *testing.T) {
	app := newTestApp(newMemoryStore())

	seen := make(map[int64]bool)
	for i := 0; i < 10; i++ {
		body := fmt.Sprintf(`{"name":"User %d","email":"user%d@example.com"}`, i, i)
		recorder := doRequest(app, stdhttp.MethodPost, "/users/", body)
		require.Equal(t, stdhttp.StatusCreated, recorder.Code)

		var user UserDTO
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &user))
		assert.False(t, seen[user.ID], "id %d reused", user.ID)
		seen[user.ID] = true
	}
}

func TestRouter_MalformedEmailDoesNotWrite(t *testing.T) {
	store := newMemoryStore()
	app := newTestApp(store)

	for _, email := range []string{"", "ana", "ana@", "@example.com", "ana@example", "a b@example.com"} {
		body := fmt.Sprintf(`{"name":"Ana","email":%q}`, email)
		recorder := doRequest(app, stdhttp.MethodPost, "/users/", body)
		assert.Equal(t, stdhttp.StatusUnprocessableEntity, recorder.Code, "email %q", email)
	}

	assert.Equal(t, 0, store.writes)
}

func TestRouter_TrailingDataDoesNotWrite(t *testing.T) {
	store := newMemoryStore()
	app := newTestApp(store)

	for _, body := range []string{
		`{"name":"Ana","email":"ana@example.com"} trailing`,
		`{"name":"Ana","email":"ana@example.com"}{"name":"x"}`,
	} {
		recorder := doRequest(app, stdhttp.MethodPost, "/users/", body)
		assert.Equal(t, stdhttp.StatusUnprocessableEntity, recorder.Code, body)
		assert.Contains(t, recorder.Body.String(), "Invalid JSON", body)
	}

	assert.Equal(t, 0, store.writes)
}

func TestRouter_UnknownUser(t *testing.T) {
	app := newTestApp(newMemoryStore())

	recorder := doRequest(app, stdhttp.MethodGet, "/users/12345", "")

	require.Equal(t, stdhttp.StatusNotFound, recorder.Code)
	var response ErrorResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Equal(t, "User not found", response.Detail)
}

func TestRouter_HealthFollowsStore(t *testing.T) {
	store := newMemoryStore()
	app := newTestApp(store)

	recorder := doRequest(app, stdhttp.MethodGet, "/health", "")
	require.Equal(t, stdhttp.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"status":"ok"}`, recorder.Body.String())

	store.mu.Lock()
	store.down = true
	store.mu.Unlock()

	recorder = doRequest(app, stdhttp.MethodGet, "/health", "")
	require.Equal(t, stdhttp.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"status":"error"`)
	assert.Contains(t, recorder.Body.String(), "connection refused")

	recorder = doRequest(app, stdhttp.MethodPost, "/users/", `{"name":"Ana","email":"ana@example.com"}`)
	assert.Equal(t, stdhttp.StatusInternalServerError, recorder.Code)
}

func TestRouter_UnknownRoute(t *testing.T) {
	app := newTestApp(newMemoryStore())

	recorder := doRequest(app, stdhttp.MethodGet, "/nope", "")

	require.Equal(t, stdhttp.StatusNotFound, recorder.Code)
	assert.True(t, strings.HasPrefix(recorder.Header().Get("Content-Type"), "application/json"))
}

func TestRouter_ConcurrentCreates(t *testing.T) {
	store := newMemoryStore()
	app := newTestApp(store)

	const workers = 20
	var wg sync.WaitGroup
	ids := make(chan int64, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			body := fmt.Sprintf(`{"name":"U%d","email":"u%d@example.com"}`, i, i)
			recorder := doRequest(app, stdhttp.MethodPost, "/users/", body)
			if recorder.Code != stdhttp.StatusCreated {
				return
			}
			var user UserDTO
			if err := json.Unmarshal(recorder.Body.Bytes(), &user); err == nil {
				ids <- user.ID
			}
		}(i)
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool)
	for id := range ids {
		assert.False(t, seen[id])
		seen[id] = true
	}
	assert.Len(t, seen, workers)
}
