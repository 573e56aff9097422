package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/emrecancorapci/chingu-backend/internal/models"
	"github.com/emrecancorapci/chingu-backend/internal/policy"
	"github.com/emrecancorapci/chingu-backend/internal/repository"
	"github.com/emrecancorapci/chingu-backend/internal/utils"
	"github.com/emrecancorapci/chingu-backend/internal/validation"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrForbidden    = errors.New("access denied")
)

// UserService handles user management. List and create are admin-only;
// read, update and delete follow the self-or-admin rule.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// List returns users visible to the principal. Admin only.
func (s *UserService) List(p policy.Principal, params utils.PaginationParams) ([]models.User, int64, error) {
	scope, err := policy.ScopeFor(p, policy.EntityUser)
	if err != nil {
		return nil, 0, err
	}
	if !p.IsAdmin() {
		return nil, 0, ErrForbidden
	}

	users, total, err := s.userRepo.List(scope, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

// Get returns one user. A user-role principal may only read their own
// row; supplying another id fails before any query runs.
func (s *UserService) Get(p policy.Principal, id string) (*models.User, error) {
	scope, err := policy.ScopeFor(p, policy.EntityUser)
	if err != nil {
		return nil, err
	}
	if !p.IsAdmin() && p.ID != id {
		return nil, ErrForbidden
	}

	user, err := s.userRepo.GetByID(scope, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// Create adds a user with the user role. Admin only.
func (s *UserService) Create(p policy.Principal, input validation.CreateUserRequest) (*models.User, error) {
	if _, err := policy.ScopeFor(p, policy.EntityUser); err != nil {
		return nil, err
	}
	if !p.IsAdmin() {
		return nil, ErrForbidden
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToHashPassword, err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        input.Email,
		Username:     input.Username,
		PasswordHash: hash,
		Role:         models.RoleUser,
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Patch applies a partial update. Only supplied fields change; the role
// is not patchable through any request schema.
func (s *UserService) Patch(p policy.Principal, id string, input validation.PatchUserRequest) (*models.User, error) {
	scope, err := policy.ScopeFor(p, policy.EntityUser)
	if err != nil {
		return nil, err
	}
	if !p.IsAdmin() && p.ID != id {
		return nil, ErrForbidden
	}

	changes := map[string]interface{}{
		"updated_at": time.Now().UnixMilli(),
	}
	if input.Email != nil {
		changes["email"] = *input.Email
	}
	if input.Username != nil {
		changes["username"] = *input.Username
	}
	if input.Password != nil {
		hash, err := HashPassword(*input.Password)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFailedToHashPassword, err)
		}
		changes["password_hash"] = hash
	}

	if err := s.userRepo.Patch(scope, id, changes); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrUserNotFound
		case errors.Is(err, repository.ErrDuplicateEmail):
			return nil, ErrEmailTaken
		default:
			return nil, fmt.Errorf("failed to update user: %w", err)
		}
	}

	user, err := s.userRepo.GetByID(scope, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload user: %w", err)
	}
	return user, nil
}

// Delete removes a user and cascades their projects and tasks.
func (s *UserService) Delete(p policy.Principal, id string) error {
	scope, err := policy.ScopeFor(p, policy.EntityUser)
	if err != nil {
		return err
	}
	if !p.IsAdmin() && p.ID != id {
		return ErrForbidden
	}

	if err := s.userRepo.Delete(scope, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
