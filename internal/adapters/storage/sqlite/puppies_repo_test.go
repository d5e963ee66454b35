package sqlite_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"puppy-store/internal/adapters/storage/migrations"
	"puppy-store/internal/adapters/storage/sqlite"
	"puppy-store/internal/dataset"
	"puppy-store/internal/domain/puppies"
)

func newSeededRepo(t *testing.T) *sqlite.PuppiesRepo {
	t.Helper()

	path := filepath.Join(t.TempDir(), "puppies.db")
	if err := migrations.UpSQLite(path); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	db, err := sqlite.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	all, err := dataset.Default()
	if err != nil {
		t.Fatalf("dataset: %v", err)
	}

	repo := sqlite.NewPuppiesRepo(db)
	n, err := repo.Seed(context.Background(), all)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if n != len(all) {
		t.Fatalf("expected %d seeded, got %d", len(all), n)
	}
	return repo
}

func TestPuppiesRepo_MatchesInMemoryPagination(t *testing.T) {
	repo := newSeededRepo(t)
	all, _ := dataset.Default()
	ctx := context.Background()

	for _, cursor := range []string{"", "pup-1", "pup-12", "pup-24", "pup-29", "pup-30", "unknown"} {
		for _, limit := range []int{1, 5, 12, 40} {
			got, err := repo.PageAfter(ctx, cursor, limit)
			if err != nil {
				t.Fatalf("page %q/%d: %v", cursor, limit, err)
			}
			want := puppies.Paginate(all, cursor, limit)

			if got.NextCursor != want.NextCursor || len(got.Data) != len(want.Data) {
				t.Fatalf("page %q/%d: expected %d/%q, got %d/%q", cursor, limit, len(want.Data), want.NextCursor, len(got.Data), got.NextCursor)
			}
			for i := range want.Data {
				if got.Data[i].ID != want.Data[i].ID {
					t.Fatalf("page %q/%d at %d: expected %s, got %s", cursor, limit, i, want.Data[i].ID, got.Data[i].ID)
				}
			}
		}
	}
}

func TestPuppiesRepo_GetByIDAndOptionalFields(t *testing.T) {
	repo := newSeededRepo(t)
	ctx := context.Background()

	// pup-20: sin imagen (i%4), sin edad (i%5)
	p, err := repo.GetByID(ctx, "pup-20")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if p.ImageURL != "" || p.Age != nil {
		t.Fatalf("expected absent image and age, got %#v", p)
	}

	if _, err := repo.GetByID(ctx, "pup-404"); !errors.Is(err, puppies.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPuppiesRepo_SeedSameDatasetIsNoop(t *testing.T) {
	repo := newSeededRepo(t)
	all, _ := dataset.Default()

	n, err := repo.Seed(context.Background(), all)
	if err != nil || n != 0 {
		t.Fatalf("expected reseed with identical dataset to be a no-op, got n=%d err=%v", n, err)
	}
}

func TestPuppiesRepo_SeedReplacesChangedDataset(t *testing.T) {
	repo := newSeededRepo(t)
	ctx := context.Background()

	n, err := repo.Seed(ctx, []puppies.Puppy{{ID: "x", Name: "X"}, {ID: "y", Name: "Y"}})
	if err != nil || n != 2 {
		t.Fatalf("expected changed dataset to be reseeded, got n=%d err=%v", n, err)
	}

	page, err := repo.PageAfter(ctx, "", 12)
	if err != nil {
		t.Fatalf("page: %v", err)
	}
	if len(page.Data) != 2 || page.Data[0].ID != "x" || page.Data[1].ID != "y" || page.HasMore() {
		t.Fatalf("expected only [x y], got %#v", page)
	}
	if _, err := repo.GetByID(ctx, "pup-1"); !errors.Is(err, puppies.ErrNotFound) {
		t.Fatalf("expected old records gone, got %v", err)
	}
}
