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

var ErrProjectNotFound = errors.New("project not found")

// ProjectService handles project business logic.
type ProjectService struct {
	projectRepo repository.ProjectRepository
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo repository.ProjectRepository) *ProjectService {
	return &ProjectService{projectRepo: projectRepo}
}

// List returns the projects inside the principal's scope.
func (s *ProjectService) List(p policy.Principal, params utils.PaginationParams) ([]models.Project, int64, error) {
	scope, err := policy.ScopeFor(p, policy.EntityProject)
	if err != nil {
		return nil, 0, err
	}

	projects, total, err := s.projectRepo.List(scope, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, total, nil
}

// Get returns one project inside the principal's scope. An existing
// project outside scope is indistinguishable from a missing one.
func (s *ProjectService) Get(p policy.Principal, id string) (*models.Project, error) {
	scope, err := policy.ScopeFor(p, policy.EntityProject)
	if err != nil {
		return nil, err
	}

	project, err := s.projectRepo.GetByID(scope, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

// Create adds a project owned by the principal. Ownership is fixed
// here: there is no transfer operation.
func (s *ProjectService) Create(p policy.Principal, input validation.CreateProjectRequest) (*models.Project, error) {
	if _, err := policy.ScopeFor(p, policy.EntityProject); err != nil {
		return nil, err
	}

	project := &models.Project{
		ID:          uuid.NewString(),
		OwnerUserID: p.ID,
		Name:        input.Name,
		Description: input.Description,
	}

	if err := s.projectRepo.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return project, nil
}

// Patch applies a partial update to a project inside scope.
func (s *ProjectService) Patch(p policy.Principal, id string, input validation.PatchProjectRequest) (*models.Project, error) {
	scope, err := policy.ScopeFor(p, policy.EntityProject)
	if err != nil {
		return nil, err
	}

	changes := map[string]interface{}{
		"updated_at": time.Now().UnixMilli(),
	}
	if input.Name != nil {
		changes["name"] = *input.Name
	}
	if input.Description != nil {
		changes["description"] = *input.Description
	}

	if err := s.projectRepo.Patch(scope, id, changes); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	project, err := s.projectRepo.GetByID(scope, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload project: %w", err)
	}
	return project, nil
}

// Delete removes a project inside scope along with its tasks.
func (s *ProjectService) Delete(p policy.Principal, id string) error {
	scope, err := policy.ScopeFor(p, policy.EntityProject)
	if err != nil {
		return err
	}

	if err := s.projectRepo.Delete(scope, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}
