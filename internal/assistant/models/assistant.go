package models

import (
	"time"
)

// Assistant is the GORM model for the assistants table. The primary key is the
// OpenAI assistant id.
type Assistant struct {
	ID                 string  `gorm:"primaryKey;type:varchar(64)"`
	Label              string  `gorm:"type:varchar(255);not null"`
	Description        string  `gorm:"type:text"`
	Model              string  `gorm:"type:varchar(255);not null"`
	Temperature        float64 `gorm:"not null"`
	TopP               float64 `gorm:"column:top_p;not null"`
	SystemInstructions string  `gorm:"type:text"`
	ProjectID          string  `gorm:"type:varchar(255)"`
	Enabled            bool    `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name
func (Assistant) TableName() string {
	return "assistants"
}

// SettingsSingletonID is the only row of assistant_settings
const SettingsSingletonID = 1

// Settings holds the credential override entered by operators
type Settings struct {
	ID        uint   `gorm:"primaryKey"`
	SecretKey string `gorm:"type:varchar(512)"`
	UpdatedAt time.Time
}

// TableName specifies the table name
func (Settings) TableName() string {
	return "assistant_settings"
}
