package domain

import (
	"time"

	"github.com/google/uuid"
)

// Feedback is one graded submission. Repeat submissions for the same
// (story, user) pair each create a new record; nothing is overwritten.
type Feedback struct {
	ID      uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	StoryID uuid.UUID `gorm:"type:uuid;not null;index;column:story_id" json:"sid"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;index;column:user_id" json:"uid"`

	Results []FeedbackResult `gorm:"foreignKey:FeedbackID" json:"feedbacks"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (Feedback) TableName() string { return "feedback" }

// FeedbackResult pairs positionally with the originating assignment's
// question at the same index.
type FeedbackResult struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	FeedbackID uuid.UUID `gorm:"type:uuid;not null;index;column:feedback_id" json:"-"`
	Index      int       `gorm:"not null;column:index" json:"index"`
	Question   string    `gorm:"type:text;not null;column:question" json:"question"`
	Answer     string    `gorm:"type:text;not null;column:answer" json:"answer"`
	UserAnswer string    `gorm:"type:text;column:user_answer" json:"userAnswer"`
	Rating     int       `gorm:"not null;column:rating" json:"rating"`
	Comment    string    `gorm:"type:text;not null;column:comment" json:"feedback"`
}

func (FeedbackResult) TableName() string { return "feedback_result" }
