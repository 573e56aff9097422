package repository

import (
	"fmt"

	"github.com/emrecancorapci/chingu-backend/internal/database"
	"github.com/emrecancorapci/chingu-backend/internal/models"
	"github.com/emrecancorapci/chingu-backend/internal/policy"
	"github.com/emrecancorapci/chingu-backend/internal/utils"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create inserts a new task row
func (r *GormTaskRepository) Create(task *models.Task) error {
	if err := r.db.Create(task).Error; err != nil {
		return fmt.Errorf("task repository: create: %w", err)
	}
	return nil
}

// GetByID finds a task inside scope
func (r *GormTaskRepository) GetByID(scope policy.Scope, id string) (*models.Task, error) {
	var task models.Task
	if err := r.db.Scopes(scope.Apply).Where("tasks.id = ?", id).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// List retrieves tasks inside scope with pagination
func (r *GormTaskRepository) List(scope policy.Scope, params utils.PaginationParams) ([]models.Task, int64, error) {
	query := r.db.Model(&models.Task{}).Scopes(scope.Apply)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("task repository: count: %w", err)
	}

	var tasks []models.Task
	if err := query.Scopes(database.Paginate(params)).Order("tasks.created_at DESC").Find(&tasks).Error; err != nil {
		return nil, 0, fmt.Errorf("task repository: list: %w", err)
	}

	return tasks, total, nil
}

// Patch applies a partial update restricted to scope in one statement
func (r *GormTaskRepository) Patch(scope policy.Scope, id string, changes map[string]interface{}) error {
	res := r.db.Model(&models.Task{}).Scopes(scope.Apply).Where("tasks.id = ?", id).Updates(changes)
	if res.Error != nil {
		return fmt.Errorf("task repository: patch: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a task inside scope
func (r *GormTaskRepository) Delete(scope policy.Scope, id string) error {
	res := r.db.Scopes(scope.Apply).Where("tasks.id = ?", id).Delete(&models.Task{})
	if res.Error != nil {
		return fmt.Errorf("task repository: delete: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
