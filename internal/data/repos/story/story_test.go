package story

import (
	"context"
	"testing"

	"github.com/yungbote/storynest-backend/internal/data/repos/testutil"
)

func TestStoryRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewStoryRepo(db, testutil.Logger(t))
	ctx := context.Background()

	u := testutil.SeedUser(t, ctx, tx, "storyrepo@example.com")
	seeded := testutil.SeedStory(t, ctx, tx, u.ID, []string{"Page one.", "Page two.", "Page three."})

	got, err := repo.GetByID(ctx, tx, seeded.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Title != seeded.Title {
		t.Fatalf("GetByID: unexpected title %q", got.Title)
	}
	if len(got.Pages) != 3 {
		t.Fatalf("GetByID: expected 3 pages, got %d", len(got.Pages))
	}
	for i, p := range got.Pages {
		if p.Index != i {
			t.Fatalf("GetByID: page %d out of order (index %d)", i, p.Index)
		}
	}

	byUser, err := repo.GetByUserID(ctx, tx, u.ID)
	if err != nil {
		t.Fatalf("GetByUserID: %v", err)
	}
	if len(byUser) != 1 || byUser[0].ID != seeded.ID {
		t.Fatalf("GetByUserID: unexpected result: %+v", byUser)
	}
}
