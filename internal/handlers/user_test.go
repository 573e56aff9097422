package handlers

import (
	"net/http"
	"testing"

	"github.com/emrecancorapci/chingu-backend/internal/dto"
	"github.com/emrecancorapci/chingu-backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserList_RequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	member := env.createUser(t, "member@example.com", "member", "Sup3rSecret", models.RoleUser)
	admin := env.createUser(t, "admin@example.com", "admin", "Sup3rSecret", models.RoleAdmin)

	w := env.do(t, http.MethodGet, "/api/users", env.tokenFor(t, member), nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(t, http.MethodGet, "/api/users", env.tokenFor(t, admin), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var users []dto.UserDTO
	decodeData(t, w, &users)
	assert.Len(t, users, 2)
}

func TestUserCreate_RequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	member := env.createUser(t, "member@example.com", "member", "Sup3rSecret", models.RoleUser)
	admin := env.createUser(t, "admin@example.com", "admin", "Sup3rSecret", models.RoleAdmin)

	body := gin.H{
		"email":    "hire@example.com",
		"username": "newhire",
		"password": "Sup3rSecret",
	}

	w := env.do(t, http.MethodPost, "/api/users", env.tokenFor(t, member), body)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(t, http.MethodPost, "/api/users", env.tokenFor(t, admin), body)
	require.Equal(t, http.StatusCreated, w.Code)

	var created dto.CreatedDTO
	decodeData(t, w, &created)
	assert.NotEmpty(t, created.ID)
}

func TestUserGet_SelfOrAdmin(t *testing.T) {
	env := newTestEnv(t)
	member := env.createUser(t, "member@example.com", "member", "Sup3rSecret", models.RoleUser)
	other := env.createUser(t, "other@example.com", "other", "Sup3rSecret", models.RoleUser)
	admin := env.createUser(t, "admin@example.com", "admin", "Sup3rSecret", models.RoleAdmin)

	memberToken := env.tokenFor(t, member)

	w := env.do(t, http.MethodGet, "/api/users/"+member.ID, memberToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got dto.UserDTO
	decodeData(t, w, &got)
	assert.Equal(t, member.Email, got.Email)

	w = env.do(t, http.MethodGet, "/api/users/"+other.ID, memberToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(t, http.MethodGet, "/api/users/"+other.ID, env.tokenFor(t, admin), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUserPatch_UpdatesOwnProfile(t *testing.T) {
	env := newTestEnv(t)
	member := env.createUser(t, "member@example.com", "member", "Sup3rSecret", models.RoleUser)

	w := env.do(t, http.MethodPatch, "/api/users/"+member.ID, env.tokenFor(t, member), gin.H{
		"username": "renamed",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var got dto.UserDTO
	decodeData(t, w, &got)
	assert.Equal(t, "renamed", got.Username)
	assert.Equal(t, member.Email, got.Email)
}

func TestUserPatch_CannotEscalateRole(t *testing.T) {
	env := newTestEnv(t)
	member := env.createUser(t, "member@example.com", "member", "Sup3rSecret", models.RoleUser)

	// Unknown fields in the patch body are discarded.
	w := env.do(t, http.MethodPatch, "/api/users/"+member.ID, env.tokenFor(t, member), gin.H{
		"role": "admin",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var stored models.User
	require.NoError(t, env.db.First(&stored, "id = ?", member.ID).Error)
	assert.Equal(t, models.RoleUser, stored.Role)
}

func TestUserPatch_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	member := env.createUser(t, "member@example.com", "member", "Sup3rSecret", models.RoleUser)
	env.createUser(t, "taken@example.com", "other", "Sup3rSecret", models.RoleUser)

	w := env.do(t, http.MethodPatch, "/api/users/"+member.ID, env.tokenFor(t, member), gin.H{
		"email": "taken@example.com",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUserDelete_SelfRemovesOwnedData(t *testing.T) {
	env := newTestEnv(t)
	member := env.createUser(t, "member@example.com", "member", "Sup3rSecret", models.RoleUser)
	token := env.tokenFor(t, member)

	w := env.do(t, http.MethodPost, "/api/projects", token, gin.H{"name": "Doomed board"})
	require.Equal(t, http.StatusCreated, w.Code)
	var project dto.CreatedDTO
	decodeData(t, w, &project)

	w = env.do(t, http.MethodPost, "/api/tasks", token, gin.H{
		"project_id": project.ID,
		"title":      "Doomed task",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, http.MethodDelete, "/api/users/"+member.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var users, projects, tasks int64
	require.NoError(t, env.db.Model(&models.User{}).Count(&users).Error)
	require.NoError(t, env.db.Model(&models.Project{}).Count(&projects).Error)
	require.NoError(t, env.db.Model(&models.Task{}).Count(&tasks).Error)
	assert.Zero(t, users)
	assert.Zero(t, projects)
	assert.Zero(t, tasks)

	// The token now points at a deleted user.
	w = env.do(t, http.MethodGet, "/api/projects", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUserRoutes_CorruptRole(t *testing.T) {
	env := newTestEnv(t)

	user := env.createUser(t, "odd@example.com", "odd", "Sup3rSecret", models.RoleUser)
	require.NoError(t, env.db.Model(&models.User{}).
		Where("id = ?", user.ID).
		Update("role", "superadmin").Error)
	user.Role = "superadmin"

	w := env.do(t, http.MethodGet, "/api/users/"+user.ID, env.tokenFor(t, user), nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	message, _ := errorBody(t, w)
	assert.Equal(t, "Token is corrupted", message)
}

func TestUserRoutes_MissingToken(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/users/"+uuid.NewString(), "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUserGet_InvalidID(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "admin@example.com", "admin", "Sup3rSecret", models.RoleAdmin)

	w := env.do(t, http.MethodGet, "/api/users/not-a-uuid", env.tokenFor(t, admin), nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	message, _ := errorBody(t, w)
	assert.Equal(t, "Invalid id", message)
}
