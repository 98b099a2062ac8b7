package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// SyncRun is the GORM model for assistant_sync_runs
type SyncRun struct {
	ID              string         `gorm:"primaryKey;type:varchar(36)"`
	Trigger         string         `gorm:"type:varchar(20);not null"`
	Operator        string         `gorm:"type:varchar(255)"`
	Checked         int            `gorm:"not null;default:0"`
	ReconciledCount int            `gorm:"not null;default:0"`
	FailedCount     int            `gorm:"not null;default:0"`
	Details         SyncRunDetails `gorm:"type:text"`
	StartedAt       time.Time      `gorm:"index"`
	FinishedAt      time.Time
}

// TableName specifies the table name
func (SyncRun) TableName() string {
	return "assistant_sync_runs"
}

// SyncRunDetails is stored as JSON text
type SyncRunDetails struct {
	Reconciled []SyncRunEntry `json:"reconciled,omitempty"`
	Failures   []SyncRunEntry `json:"failures,omitempty"`
}

// SyncRunEntry is one reconciled or failed record
type SyncRunEntry struct {
	Label    string `json:"label"`
	ID       string `json:"id"`
	Previous string `json:"previous_id,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Scan implements sql.Scanner interface
func (d *SyncRunDetails) Scan(value interface{}) error {
	if value == nil {
		*d = SyncRunDetails{}
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported sync run details type %T", value)
	}
	if len(raw) == 0 {
		*d = SyncRunDetails{}
		return nil
	}
	return json.Unmarshal(raw, d)
}

// Value implements driver.Valuer interface
func (d SyncRunDetails) Value() (driver.Value, error) {
	b, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}
