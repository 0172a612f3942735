package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID            uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ParentName    string    `gorm:"not null;column:parent_name" json:"parentName"`
	ParentEmail   string    `gorm:"uniqueIndex;not null;column:parent_email" json:"parentEmail"`
	Password      string    `gorm:"not null;column:password" json:"-"`
	ChildName     string    `gorm:"not null;column:child_name" json:"childName"`
	ChildAge      int       `gorm:"not null;column:child_age" json:"childAge"`
	ChildStandard int       `gorm:"not null;column:child_standard" json:"childStandard"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string { return "user" }
