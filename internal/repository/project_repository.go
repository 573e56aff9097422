package repository

import (
	"fmt"

	"github.com/emrecancorapci/chingu-backend/internal/database"
	"github.com/emrecancorapci/chingu-backend/internal/models"
	"github.com/emrecancorapci/chingu-backend/internal/policy"
	"github.com/emrecancorapci/chingu-backend/internal/utils"
	"gorm.io/gorm"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create inserts a new project row
func (r *GormProjectRepository) Create(project *models.Project) error {
	if err := r.db.Create(project).Error; err != nil {
		return fmt.Errorf("project repository: create: %w", err)
	}
	return nil
}

// GetByID finds a project inside scope
func (r *GormProjectRepository) GetByID(scope policy.Scope, id string) (*models.Project, error) {
	var project models.Project
	if err := r.db.Scopes(scope.Apply).Where("projects.id = ?", id).First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// List retrieves projects inside scope with pagination
func (r *GormProjectRepository) List(scope policy.Scope, params utils.PaginationParams) ([]models.Project, int64, error) {
	query := r.db.Model(&models.Project{}).Scopes(scope.Apply)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("project repository: count: %w", err)
	}

	var projects []models.Project
	if err := query.Scopes(database.Paginate(params)).Order("projects.created_at DESC").Find(&projects).Error; err != nil {
		return nil, 0, fmt.Errorf("project repository: list: %w", err)
	}

	return projects, total, nil
}

// Patch applies a partial update restricted to scope in one statement
func (r *GormProjectRepository) Patch(scope policy.Scope, id string, changes map[string]interface{}) error {
	res := r.db.Model(&models.Project{}).Scopes(scope.Apply).Where("projects.id = ?", id).Updates(changes)
	if res.Error != nil {
		return fmt.Errorf("project repository: patch: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the project and its tasks. Ownership is proven by the
// scoped delete before any task rows are touched.
func (r *GormProjectRepository) Delete(scope policy.Scope, id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Scopes(scope.Apply).Where("projects.id = ?", id).Delete(&models.Project{})
		if res.Error != nil {
			return fmt.Errorf("project repository: delete: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}

		if err := tx.Where("project_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return fmt.Errorf("project repository: cascade tasks: %w", err)
		}

		return nil
	})
}
