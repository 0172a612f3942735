package media

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/storynest-backend/internal/data/repos/testutil"
	types "github.com/yungbote/storynest-backend/internal/domain"
)

func TestAudioRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewAudioRepo(db, testutil.Logger(t))
	ctx := context.Background()

	u := testutil.SeedUser(t, ctx, tx, "audiorepo@example.com")
	st := testutil.SeedStory(t, ctx, tx, u.ID, []string{"Page one."})

	key := "uploads/audio/1714000000000-reading.mp3"
	created, err := repo.Create(ctx, tx, []*types.Audio{
		{
			ID:         uuid.New(),
			StoryID:    st.ID,
			ObjectKey:  &key,
			FileName:   "reading.mp3",
			WholeStory: "Page one.",
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(created) != 1 {
		t.Fatalf("Create: expected 1 audio, got %d", len(created))
	}

	got, err := repo.GetByID(ctx, tx, created[0].ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.ObjectKey == nil || *got.ObjectKey != key {
		t.Fatalf("GetByID: unexpected object key: %+v", got)
	}
	if got.FilePath != nil {
		t.Fatalf("GetByID: expected no file path for remote upload: %+v", got)
	}

	all, err := repo.GetAll(ctx, tx)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(all) == 0 {
		t.Fatalf("GetAll: expected at least 1 audio")
	}
}
