package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/emrecancorapci/chingu-backend/internal/dto"
	"github.com/emrecancorapci/chingu-backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectCreate_AssignsOwnerFromToken(t *testing.T) {
	env := newTestEnv(t)
	member := env.createUser(t, "member@example.com", "member", "Sup3rSecret", models.RoleUser)

	w := env.do(t, http.MethodPost, "/api/projects", env.tokenFor(t, member), gin.H{
		"name":        "Side project",
		"description": "Weekend experiments",
		// owner_user_id in the body must be ignored.
		"owner_user_id": "someone-else",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created dto.CreatedDTO
	decodeData(t, w, &created)

	var stored models.Project
	require.NoError(t, env.db.First(&stored, "id = ?", created.ID).Error)
	assert.Equal(t, member.ID, stored.OwnerUserID)
}

func TestProjectCreate_ValidationFailure(t *testing.T) {
	env := newTestEnv(t)
	member := env.createUser(t, "member@example.com", "member", "Sup3rSecret", models.RoleUser)

	w := env.do(t, http.MethodPost, "/api/projects", env.tokenFor(t, member), gin.H{
		"description": "No name given",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	_, fields := errorBody(t, w)
	require.Len(t, fields, 1)
	assert.Equal(t, "name is required", fields[0])
}

func TestProjectList_EmptyScopeIsEmptyArray(t *testing.T) {
	env := newTestEnv(t)
	member := env.createUser(t, "member@example.com", "member", "Sup3rSecret", models.RoleUser)

	w := env.do(t, http.MethodGet, "/api/projects", env.tokenFor(t, member), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"data":[]`)
}

func TestProjectGet_OutsideScopeIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner@example.com", "owner", "Sup3rSecret", models.RoleUser)
	other := env.createUser(t, "other@example.com", "other", "Sup3rSecret", models.RoleUser)

	w := env.do(t, http.MethodPost, "/api/projects", env.tokenFor(t, owner), gin.H{
		"name": "Owner board",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created dto.CreatedDTO
	decodeData(t, w, &created)

	w = env.do(t, http.MethodGet, "/api/projects/"+created.ID, env.tokenFor(t, other), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProjectPatch_PartialUpdate(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner@example.com", "owner", "Sup3rSecret", models.RoleUser)
	token := env.tokenFor(t, owner)

	w := env.do(t, http.MethodPost, "/api/projects", token, gin.H{
		"name":        "Old name",
		"description": "Keep this",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created dto.CreatedDTO
	decodeData(t, w, &created)

	w = env.do(t, http.MethodPatch, "/api/projects/"+created.ID, token, gin.H{
		"name": "New name",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var project dto.ProjectDTO
	decodeData(t, w, &project)
	assert.Equal(t, "New name", project.Name)
	require.NotNil(t, project.Description)
	assert.Equal(t, "Keep this", *project.Description)
}

func TestProjectDelete_CascadesToTasks(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner@example.com", "owner", "Sup3rSecret", models.RoleUser)
	token := env.tokenFor(t, owner)

	w := env.do(t, http.MethodPost, "/api/projects", token, gin.H{"name": "Doomed"})
	require.Equal(t, http.StatusCreated, w.Code)
	var project dto.CreatedDTO
	decodeData(t, w, &project)

	w = env.do(t, http.MethodPost, "/api/tasks", token, gin.H{
		"project_id": project.ID,
		"title":      "Orphan candidate",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, http.MethodDelete, "/api/projects/"+project.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var tasks int64
	require.NoError(t, env.db.Model(&models.Task{}).Count(&tasks).Error)
	assert.Zero(t, tasks)
}

func TestProjectList_Pagination(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner@example.com", "owner", "Sup3rSecret", models.RoleUser)
	token := env.tokenFor(t, owner)

	for _, name := range []string{"One", "Two", "Three"} {
		w := env.do(t, http.MethodPost, "/api/projects", token, gin.H{"name": name})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := env.do(t, http.MethodGet, "/api/projects?page=1&limit=2", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data       []dto.ProjectDTO `json:"data"`
		Pagination struct {
			Page  int   `json:"page"`
			Limit int   `json:"limit"`
			Total int64 `json:"total"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Len(t, envelope.Data, 2)
	assert.Equal(t, 1, envelope.Pagination.Page)
	assert.Equal(t, 2, envelope.Pagination.Limit)
	assert.EqualValues(t, 3, envelope.Pagination.Total)
}
