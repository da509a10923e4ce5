package model

import (
	"gorm.io/gorm"
)

// AutoMigrate creates or updates every table this service owns. Order matters
// for foreign keys: referenced tables first.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&AuthToken{},
		&Group{},
		&Post{},
		&Comment{},
		&Follow{},
	)
}
