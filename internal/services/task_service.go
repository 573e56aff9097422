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

var ErrTaskNotFound = errors.New("task not found")

// TaskService handles task business logic. Tasks are owned through
// their parent project; every operation goes through the task or
// project scope of the caller.
type TaskService struct {
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository, projectRepo repository.ProjectRepository) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
	}
}

// List returns the tasks inside the principal's scope.
func (s *TaskService) List(p policy.Principal, params utils.PaginationParams) ([]models.Task, int64, error) {
	scope, err := policy.ScopeFor(p, policy.EntityTask)
	if err != nil {
		return nil, 0, err
	}

	tasks, total, err := s.taskRepo.List(scope, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, total, nil
}

// Get returns one task inside the principal's scope.
func (s *TaskService) Get(p policy.Principal, id string) (*models.Task, error) {
	scope, err := policy.ScopeFor(p, policy.EntityTask)
	if err != nil {
		return nil, err
	}

	task, err := s.taskRepo.GetByID(scope, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// Create adds a task under a project the principal can see. A project
// outside scope reads as not found.
func (s *TaskService) Create(p policy.Principal, input validation.CreateTaskRequest) (*models.Task, error) {
	projectScope, err := policy.ScopeFor(p, policy.EntityProject)
	if err != nil {
		return nil, err
	}

	if _, err := s.projectRepo.GetByID(projectScope, input.ProjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to verify project: %w", err)
	}

	status := models.TaskStatusTodo
	if input.Status != nil {
		status = models.TaskStatus(*input.Status)
	}

	task := &models.Task{
		ID:          uuid.NewString(),
		ProjectID:   input.ProjectID,
		Title:       input.Title,
		Description: input.Description,
		Status:      status,
		DueDate:     input.DueDate,
	}
	if input.Priority != nil {
		priority := models.TaskPriority(*input.Priority)
		task.Priority = &priority
	}
	if status == models.TaskStatusFinished {
		now := time.Now().UnixMilli()
		task.CompletedAt = &now
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return task, nil
}

// Patch applies a partial update to a task inside scope. Moving the
// status to finished stamps completed_at once; moving it anywhere else
// clears it. Repeating the same patch leaves completed_at untouched.
func (s *TaskService) Patch(p policy.Principal, id string, input validation.PatchTaskRequest) (*models.Task, error) {
	scope, err := policy.ScopeFor(p, policy.EntityTask)
	if err != nil {
		return nil, err
	}

	current, err := s.taskRepo.GetByID(scope, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	changes := map[string]interface{}{
		"updated_at": time.Now().UnixMilli(),
	}
	if input.Title != nil {
		changes["title"] = *input.Title
	}
	if input.Description != nil {
		changes["description"] = *input.Description
	}
	if input.Priority != nil {
		changes["priority"] = models.TaskPriority(*input.Priority)
	}
	if input.DueDate != nil {
		changes["due_date"] = *input.DueDate
	}
	if input.Status != nil {
		status := models.TaskStatus(*input.Status)
		changes["status"] = status
		if status == models.TaskStatusFinished {
			if current.CompletedAt == nil {
				changes["completed_at"] = time.Now().UnixMilli()
			}
		} else if current.CompletedAt != nil {
			changes["completed_at"] = nil
		}
	}

	if err := s.taskRepo.Patch(scope, id, changes); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	task, err := s.taskRepo.GetByID(scope, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload task: %w", err)
	}
	return task, nil
}

// Delete removes a task inside scope.
func (s *TaskService) Delete(p policy.Principal, id string) error {
	scope, err := policy.ScopeFor(p, policy.EntityTask)
	if err != nil {
		return err
	}

	if err := s.taskRepo.Delete(scope, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}
