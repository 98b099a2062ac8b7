package models

import "gorm.io/gorm"

// AutoMigrate runs database migrations for the assistant domain
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Assistant{},
		&Settings{},
		&SyncRun{},
	)
}

// All lists the assistant domain models, for database.DB.AutoMigrate
func All() []interface{} {
	return []interface{}{
		&Assistant{},
		&Settings{},
		&SyncRun{},
	}
}
