package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/emrecancorapci/chingu-backend/internal/middleware"
	"github.com/emrecancorapci/chingu-backend/internal/models"
	"github.com/emrecancorapci/chingu-backend/internal/repository"
	"github.com/emrecancorapci/chingu-backend/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testSecret = "handler-test-secret-of-decent-length"

type testEnv struct {
	db     *gorm.DB
	router *gin.Engine
	tokens *services.TokenService
}

// newTestEnv wires the full request pipeline against an in-memory
// SQLite database, mirroring the production route table.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Project{}, &models.Task{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	tokens := services.NewTokenService(testSecret, time.Hour)
	authHandler := NewAuthHandler(services.NewAuthService(userRepo, tokens))
	userHandler := NewUserHandler(services.NewUserService(userRepo))
	projectHandler := NewProjectHandler(services.NewProjectService(projectRepo))
	taskHandler := NewTaskHandler(services.NewTaskService(taskRepo, projectRepo))

	r := gin.New()
	api := r.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	requireAuth := middleware.RequireAuth(tokens, userRepo)

	users := api.Group("/users")
	users.Use(requireAuth)
	users.GET("", userHandler.List)
	users.GET("/:id", userHandler.Get)
	users.POST("", userHandler.Create)
	users.PATCH("/:id", userHandler.Patch)
	users.DELETE("/:id", userHandler.Delete)

	projects := api.Group("/projects")
	projects.Use(requireAuth)
	projects.GET("", projectHandler.List)
	projects.GET("/:id", projectHandler.Get)
	projects.POST("", projectHandler.Create)
	projects.PATCH("/:id", projectHandler.Patch)
	projects.DELETE("/:id", projectHandler.Delete)

	tasks := api.Group("/tasks")
	tasks.Use(requireAuth)
	tasks.GET("", taskHandler.List)
	tasks.GET("/:id", taskHandler.Get)
	tasks.POST("", taskHandler.Create)
	tasks.PATCH("/:id", taskHandler.Patch)
	tasks.DELETE("/:id", taskHandler.Delete)

	return &testEnv{db: db, router: r, tokens: tokens}
}

// createUser inserts a user row directly, bypassing the register route.
func (e *testEnv) createUser(t *testing.T, email, username, password string, role models.UserRole) *models.User {
	t.Helper()

	hash, err := services.HashPassword(password)
	require.NoError(t, err)

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		Username:     username,
		PasswordHash: hash,
		Role:         role,
	}
	require.NoError(t, e.db.Create(user).Error)
	return user
}

func (e *testEnv) tokenFor(t *testing.T, user *models.User) string {
	t.Helper()

	token, err := e.tokens.Issue(user.ID, user.Username, user.Role)
	require.NoError(t, err)
	return token
}

// do performs a request against the test router. A non-empty token is
// sent as a Bearer header; a nil body sends no payload.
func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// decodeData unmarshals the `data` field of a success envelope.
func decodeData(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

// errorBody decodes the error envelope.
func errorBody(t *testing.T, w *httptest.ResponseRecorder) (string, []string) {
	t.Helper()

	var envelope struct {
		Message string   `json:"message"`
		Errors  []string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope.Message, envelope.Errors
}
