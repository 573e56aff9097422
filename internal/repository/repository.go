// Package repository provides typed data access per entity. Every
// operation takes a policy.Scope and combines it into the same query as
// the id predicate, so a repository is structurally incapable of
// touching rows outside the caller's scope.
package repository

import (
	"github.com/emrecancorapci/chingu-backend/internal/models"
	"github.com/emrecancorapci/chingu-backend/internal/policy"
	"github.com/emrecancorapci/chingu-backend/internal/utils"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create inserts a new user. A duplicate email is reported as
	// ErrDuplicateEmail, never as a generic storage error.
	Create(user *models.User) error

	// GetByID finds a user inside scope
	GetByID(scope policy.Scope, id string) (*models.User, error)

	// GetByEmail finds a user by email (login path, unscoped)
	GetByEmail(email string) (*models.User, error)

	// ExistsByID reports whether a user row still exists (token subject check)
	ExistsByID(id string) (bool, error)

	// List retrieves users inside scope with pagination
	List(scope policy.Scope, params utils.PaginationParams) ([]models.User, int64, error)

	// Patch applies a partial update as a single conditional statement.
	// Zero affected rows is ErrNotFound, never success.
	Patch(scope policy.Scope, id string, changes map[string]interface{}) error

	// Delete removes the user and cascades projects and tasks
	Delete(scope policy.Scope, id string) error
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	Create(project *models.Project) error
	GetByID(scope policy.Scope, id string) (*models.Project, error)
	List(scope policy.Scope, params utils.PaginationParams) ([]models.Project, int64, error)
	Patch(scope policy.Scope, id string, changes map[string]interface{}) error

	// Delete removes the project and cascades its tasks
	Delete(scope policy.Scope, id string) error
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	Create(task *models.Task) error
	GetByID(scope policy.Scope, id string) (*models.Task, error)
	List(scope policy.Scope, params utils.PaginationParams) ([]models.Task, int64, error)
	Patch(scope policy.Scope, id string, changes map[string]interface{}) error
	Delete(scope policy.Scope, id string) error
}
