package repository

import (
	"errors"
	"fmt"

	"github.com/emrecancorapci/chingu-backend/internal/database"
	"github.com/emrecancorapci/chingu-backend/internal/models"
	"github.com/emrecancorapci/chingu-backend/internal/policy"
	"github.com/emrecancorapci/chingu-backend/internal/utils"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create inserts a new user row
func (r *GormUserRepository) Create(user *models.User) error {
	if err := r.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("user repository: create: %w", err)
	}
	return nil
}

// GetByID finds a user inside scope
func (r *GormUserRepository) GetByID(scope policy.Scope, id string) (*models.User, error) {
	var user models.User
	if err := r.db.Scopes(scope.Apply).Where("users.id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail finds a user by email
func (r *GormUserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ExistsByID reports whether a user row exists
func (r *GormUserRepository) ExistsByID(id string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.User{}).Where("users.id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("user repository: exists: %w", err)
	}
	return count > 0, nil
}

// List retrieves users inside scope with pagination
func (r *GormUserRepository) List(scope policy.Scope, params utils.PaginationParams) ([]models.User, int64, error) {
	query := r.db.Model(&models.User{}).Scopes(scope.Apply)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("user repository: count: %w", err)
	}

	var users []models.User
	if err := query.Scopes(database.Paginate(params)).Order("users.created_at DESC").Find(&users).Error; err != nil {
		return nil, 0, fmt.Errorf("user repository: list: %w", err)
	}

	return users, total, nil
}

// Patch applies a partial update restricted to scope in one statement
func (r *GormUserRepository) Patch(scope policy.Scope, id string, changes map[string]interface{}) error {
	res := r.db.Model(&models.User{}).Scopes(scope.Apply).Where("users.id = ?", id).Updates(changes)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("user repository: patch: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the user and everything they transitively own. The
// explicit child deletes back the database-level cascade so behavior is
// identical on stores that do not enforce foreign keys.
func (r *GormUserRepository) Delete(scope policy.Scope, id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Scopes(scope.Apply).Where("users.id = ?", id).Delete(&models.User{})
		if res.Error != nil {
			return fmt.Errorf("user repository: delete: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}

		ownedProjects := tx.Model(&models.Project{}).Select("projects.id").Where("projects.owner_user_id = ?", id)
		if err := tx.Where("project_id IN (?)", ownedProjects).Delete(&models.Task{}).Error; err != nil {
			return fmt.Errorf("user repository: cascade tasks: %w", err)
		}

		if err := tx.Where("owner_user_id = ?", id).Delete(&models.Project{}).Error; err != nil {
			return fmt.Errorf("user repository: cascade projects: %w", err)
		}

		return nil
	})
}
