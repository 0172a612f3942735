package domain

import (
	"time"

	"github.com/google/uuid"
)

// Audio is a spoken-answer recording tied to a story. Exactly one of
// FilePath (legacy local upload) or ObjectKey (two-phase object-store
// upload) is set in practice; both stay nullable for migration continuity.
// WholeStory snapshots the story text at record creation so later edits to
// scoring logic always grade against what the learner actually heard.
// Transcript and Score are written by the external scoring collaborator.
type Audio struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	StoryID   uuid.UUID `gorm:"type:uuid;not null;index;column:story_id" json:"sid"`
	FilePath  *string   `gorm:"column:file_path" json:"filePath"`
	ObjectKey *string   `gorm:"column:object_key" json:"s3Key"`
	FileName  string    `gorm:"not null;column:file_name" json:"fileName"`

	WholeStory string  `gorm:"type:text;not null;column:whole_story" json:"wholeStory"`
	Transcript string  `gorm:"type:text;column:transcript" json:"transcript"`
	Score      float64 `gorm:"column:score;default:0" json:"score"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"createdAt"`
}

func (Audio) TableName() string { return "audio" }
