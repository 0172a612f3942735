package domain

import (
	"time"

	"github.com/google/uuid"
)

// Assignment holds the comprehension questions generated for one story and
// one user. The composite unique index makes creation idempotent at the
// storage layer: a concurrent duplicate insert fails instead of producing a
// second assignment for the same (story, user) pair.
type Assignment struct {
	ID      uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	StoryID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_assignment_story_user;column:story_id" json:"sid"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_assignment_story_user;column:user_id" json:"uid"`

	Questions []AssignmentQuestion `gorm:"foreignKey:AssignmentID" json:"questions"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Assignment) TableName() string { return "assignment" }

type AssignmentQuestion struct {
	ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	AssignmentID uuid.UUID `gorm:"type:uuid;not null;index;column:assignment_id" json:"-"`
	Index        int       `gorm:"not null;column:index" json:"index"`
	Question     string    `gorm:"type:text;not null;column:question" json:"question"`
	Answer       string    `gorm:"type:text;not null;column:answer" json:"answer"`
	// UserAnswer stays empty in the persisted row; submitted answers are
	// merged in transiently during grading and survive only on Feedback.
	UserAnswer string `gorm:"type:text;column:user_answer" json:"userAnswer"`
}

func (AssignmentQuestion) TableName() string { return "assignment_question" }
