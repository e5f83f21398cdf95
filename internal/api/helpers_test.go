package api

import (
	"alcyxob/exercise-tracker/internal/domain"
	"alcyxob/exercise-tracker/internal/observability"
	"alcyxob/exercise-tracker/internal/repository"
	"alcyxob/exercise-tracker/internal/service"
	"alcyxob/exercise-tracker/internal/storage"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memUserRepository is an in-memory repository.UserRepository.
type memUserRepository struct {
	mu     sync.Mutex
	users  map[primitive.ObjectID]*domain.User
	order  []primitive.ObjectID
	failOn error // Returned by every call when set
}

func newMemUserRepository() *memUserRepository {
	return &memUserRepository{users: map[primitive.ObjectID]*domain.User{}}
}

func (r *memUserRepository) Create(_ context.Context, user *domain.User) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failOn != nil {
		return primitive.NilObjectID, r.failOn
	}
	for _, u := range r.users {
		if u.Username == user.Username {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}
	user.ID = primitive.NewObjectID()
	stored := *user
	r.users[user.ID] = &stored
	r.order = append(r.order, user.ID)
	return user.ID, nil
}

func (r *memUserRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failOn != nil {
		return nil, r.failOn
	}
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	cp.Exercises = append([]domain.Exercise(nil), u.Exercises...)
	return &cp, nil
}

func (r *memUserRepository) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failOn != nil {
		return nil, r.failOn
	}
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memUserRepository) List(_ context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failOn != nil {
		return nil, r.failOn
	}
	out := make([]domain.User, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, domain.User{ID: id, Username: r.users[id].Username})
	}
	return out, nil
}

func (r *memUserRepository) AppendExercise(_ context.Context, userID primitive.ObjectID, exercise domain.Exercise) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failOn != nil {
		return nil, r.failOn
	}
	u, ok := r.users[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u.Exercises = append(u.Exercises, exercise)
	cp := *u
	return &cp, nil
}

func (r *memUserRepository) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}

// memStorage is an in-memory storage.FileStorage.
type memStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (s *memStorage) PutObject(_ context.Context, key, _ string, body []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.objects == nil {
		s.objects = map[string][]byte{}
	}
	s.objects[key] = body
	return nil
}

func (s *memStorage) GeneratePresignedDownloadURL(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://storage.test/" + key + "?signed=1", nil
}

type testServer struct {
	router  *gin.Engine
	repo    *memUserRepository
	storage *memStorage
}

type serverOption func(*Dependencies, *testServer)

func withoutExport() serverOption {
	return func(d *Dependencies, ts *testServer) {
		d.ExportService = service.NewExportService(d.UserService, nil, 0, d.Logger, d.Metrics)
	}
}

func withDirs(publicDir, viewsDir string) serverOption {
	return func(d *Dependencies, _ *testServer) {
		d.PublicDir = publicDir
		d.ViewsDir = viewsDir
	}
}

func newTestServer(t *testing.T, opts ...serverOption) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	registry := prometheus.NewRegistry()
	metrics := observability.NewMetrics(registry)

	ts := &testServer{repo: newMemUserRepository(), storage: &memStorage{}}
	users := service.NewUserService(ts.repo, logger, metrics)
	var fileStorage storage.FileStorage = ts.storage

	deps := Dependencies{
		UserService:     users,
		ExerciseService: service.NewExerciseService(ts.repo, logger, metrics),
		ExportService:   service.NewExportService(users, fileStorage, time.Minute, logger, metrics),
		Logger:          logger,
		Metrics:         metrics,
		Gatherer:        registry,
	}
	for _, opt := range opts {
		opt(&deps, ts)
	}

	ts.router = gin.New()
	SetupRoutes(ts.router, deps)
	return ts
}

func (ts *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func (ts *testServer) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return ts.do(req)
}

func (ts *testServer) postJSON(path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return ts.do(req)
}

func (ts *testServer) get(path string) *httptest.ResponseRecorder {
	return ts.do(httptest.NewRequest(http.MethodGet, path, nil))
}

// register creates a user through the API and returns its id.
func (ts *testServer) register(t *testing.T, username string) string {
	t.Helper()
	w := ts.postForm("/api/exercise/new-user", url.Values{"username": {username}})
	require.Equal(t, http.StatusOK, w.Code)
	var resp UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.ID
}

func (ts *testServer) addExercise(t *testing.T, userID, description, duration, date string) {
	t.Helper()
	w := ts.postForm("/api/exercise/add", url.Values{
		"userId":      {userID},
		"description": {description},
		"duration":    {duration},
		"date":        {date},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func decodeMap(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m), w.Body.String())
	return m
}
