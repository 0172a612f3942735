package domain

import (
	"time"

	"github.com/google/uuid"
)

// Story is created once by the generation orchestrator and never updated.
type Story struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index;column:user_id" json:"createdBy"`
	Title       string    `gorm:"not null;column:title" json:"storyTitle"`
	Description string    `gorm:"not null;column:description" json:"storyDescription"`
	Author      string    `gorm:"not null;column:author" json:"storyAuthor"`
	MaxPages    int       `gorm:"not null;column:max_pages" json:"maxPages"`

	Pages []StoryPage `gorm:"foreignKey:StoryID" json:"storyContent"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Story) TableName() string { return "story" }

// StoryPage is one unit of narrative text, optionally illustrated.
type StoryPage struct {
	ID       uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	StoryID  uuid.UUID `gorm:"type:uuid;not null;index;column:story_id" json:"-"`
	Index    int       `gorm:"not null;column:index" json:"index"`
	Text     string    `gorm:"type:text;not null;column:text" json:"pageText"`
	ImageURL *string   `gorm:"column:image_url" json:"pageImage"`
}

func (StoryPage) TableName() string { return "story_page" }

// WholeText concatenates the page texts in order. This is the denormalized
// form snapshotted onto Audio records and fed to question generation.
func (s *Story) WholeText() string {
	var whole string
	for _, p := range s.Pages {
		whole += p.Text
	}
	return whole
}

// PageTexts returns the ordered page texts without illustration references.
func (s *Story) PageTexts() []string {
	texts := make([]string, 0, len(s.Pages))
	for _, p := range s.Pages {
		texts = append(texts, p.Text)
	}
	return texts
}
