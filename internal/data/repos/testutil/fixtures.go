package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/storynest-backend/internal/domain"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, parentEmail string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:            uuid.New(),
		ParentName:    "Parent",
		ParentEmail:   parentEmail,
		Password:      "pw",
		ChildName:     "Kid",
		ChildAge:      8,
		ChildStandard: 3,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedStory(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, pageTexts []string) *types.Story {
	tb.Helper()
	s := &types.Story{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       "The Brave Fox",
		Description: "A fox learns to share.",
		Author:      "AI",
		MaxPages:    len(pageTexts),
	}
	for i, text := range pageTexts {
		s.Pages = append(s.Pages, types.StoryPage{
			ID:    uuid.New(),
			Index: i,
			Text:  text,
		})
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed story: %v", err)
	}
	return s
}

func SeedAssignment(tb testing.TB, ctx context.Context, tx *gorm.DB, storyID, userID uuid.UUID, questions []string) *types.Assignment {
	tb.Helper()
	a := &types.Assignment{
		ID:      uuid.New(),
		StoryID: storyID,
		UserID:  userID,
	}
	for i, q := range questions {
		a.Questions = append(a.Questions, types.AssignmentQuestion{
			ID:       uuid.New(),
			Index:    i,
			Question: q,
			Answer:   "because",
		})
	}
	if err := tx.WithContext(ctx).Create(a).Error; err != nil {
		tb.Fatalf("seed assignment: %v", err)
	}
	return a
}

func SeedAudio(tb testing.TB, ctx context.Context, tx *gorm.DB, storyID uuid.UUID, objectKey string) *types.Audio {
	tb.Helper()
	a := &types.Audio{
		ID:         uuid.New(),
		StoryID:    storyID,
		ObjectKey:  &objectKey,
		FileName:   "reading.mp3",
		WholeStory: "Once upon a time.",
	}
	if err := tx.WithContext(ctx).Create(a).Error; err != nil {
		tb.Fatalf("seed audio: %v", err)
	}
	return a
}
