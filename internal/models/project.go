package models

type Project struct {
	ID          string  `gorm:"type:varchar(36);primarykey" json:"id"`
	OwnerUserID string  `gorm:"type:varchar(36);not null;index" json:"owner_user_id"`
	Name        string  `gorm:"type:varchar(128);not null" json:"name"`
	Description *string `gorm:"type:text" json:"description"`
	CreatedAt   int64   `gorm:"autoCreateTime:milli" json:"created_at"`
	UpdatedAt   int64   `gorm:"autoUpdateTime:milli" json:"updated_at"`

	// Relations
	Owner User   `gorm:"foreignKey:OwnerUserID" json:"owner,omitempty"`
	Tasks []Task `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"tasks,omitempty"`
}
