package models

type TaskStatus string

const (
	TaskStatusTodo     TaskStatus = "todo"
	TaskStatusWorking  TaskStatus = "working"
	TaskStatusFinished TaskStatus = "finished"
)

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

type Task struct {
	ID          string        `gorm:"type:varchar(36);primarykey" json:"id"`
	ProjectID   string        `gorm:"type:varchar(36);not null;index" json:"project_id"`
	Title       string        `gorm:"type:varchar(128);not null" json:"title"`
	Description *string       `gorm:"type:text" json:"description"`
	Priority    *TaskPriority `gorm:"type:varchar(20)" json:"priority"`
	Status      TaskStatus    `gorm:"type:varchar(20);not null;default:'todo'" json:"status"`
	DueDate     *int64        `json:"due_date"`
	CompletedAt *int64        `json:"completed_at"`
	CreatedAt   int64         `gorm:"autoCreateTime:milli" json:"created_at"`
	UpdatedAt   int64         `gorm:"autoUpdateTime:milli" json:"updated_at"`

	// Relations
	Project Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
}
