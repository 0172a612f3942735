package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/storynest-backend/internal/domain"
)

// AutoMigrateAll keeps the schema in sync with the domain models. Parent
// tables migrate before their children so the foreign key indexes resolve.
func AutoMigrateAll(db *gorm.DB) error {
	models := []interface{}{
		&domain.User{},
		&domain.UserToken{},
		&domain.Story{},
		&domain.StoryPage{},
		&domain.Assignment{},
		&domain.AssignmentQuestion{},
		&domain.Feedback{},
		&domain.FeedbackResult{},
		&domain.Audio{},
	}
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
