package validation

// RegisterRequest is the payload for POST /auth/register.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email,max=128"`
	Username string `json:"username" binding:"required,min=3,max=128"`
	Password string `json:"password" binding:"required,min=8,max=128,password"`
}

// LoginRequest is the payload for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email,max=128"`
	Password string `json:"password" binding:"required"`
}

// CreateUserRequest is the payload for the admin-only POST /users.
type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email,max=128"`
	Username string `json:"username" binding:"required,min=3,max=128"`
	Password string `json:"password" binding:"required,min=8,max=128,password"`
}

// PatchUserRequest is the partial-update payload for PATCH /users/:id.
// Unset fields never overwrite stored values.
type PatchUserRequest struct {
	Email    *string `json:"email" binding:"omitempty,email,max=128"`
	Username *string `json:"username" binding:"omitempty,min=3,max=128"`
	Password *string `json:"password" binding:"omitempty,min=8,max=128,password"`
}

// CreateProjectRequest is the payload for POST /projects.
type CreateProjectRequest struct {
	Name        string  `json:"name" binding:"required,max=128"`
	Description *string `json:"description"`
}

// PatchProjectRequest is the partial-update payload for PATCH /projects/:id.
type PatchProjectRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=128"`
	Description *string `json:"description"`
}

// CreateTaskRequest is the payload for POST /tasks.
type CreateTaskRequest struct {
	ProjectID   string  `json:"project_id" binding:"required,uuid"`
	Title       string  `json:"title" binding:"required,min=3,max=128"`
	Description *string `json:"description"`
	Priority    *string `json:"priority" binding:"omitempty,oneof=low medium high"`
	Status      *string `json:"status" binding:"omitempty,oneof=todo working finished"`
	DueDate     *int64  `json:"due_date"`
}

// PatchTaskRequest is the partial-update payload for PATCH /tasks/:id.
// completed_at is not client-writable: it tracks status transitions.
type PatchTaskRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=3,max=128"`
	Description *string `json:"description"`
	Priority    *string `json:"priority" binding:"omitempty,oneof=low medium high"`
	Status      *string `json:"status" binding:"omitempty,oneof=todo working finished"`
	DueDate     *int64  `json:"due_date"`
}
