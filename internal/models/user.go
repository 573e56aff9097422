package models

// UserRole is the closed set of roles a user can hold. Anything outside
// this set authorizes nothing.
type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
)

type User struct {
	ID           string   `gorm:"type:varchar(36);primarykey" json:"id"`
	Email        string   `gorm:"type:varchar(128);uniqueIndex;not null" json:"email"`
	Username     string   `gorm:"type:varchar(128);not null" json:"username"`
	PasswordHash string   `gorm:"type:varchar(128);not null" json:"-"`
	Role         UserRole `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	CreatedAt    int64    `gorm:"autoCreateTime:milli" json:"created_at"`
	UpdatedAt    int64    `gorm:"autoUpdateTime:milli" json:"updated_at"`

	// Relations
	Projects []Project `gorm:"foreignKey:OwnerUserID;constraint:OnDelete:CASCADE" json:"projects,omitempty"`
}
