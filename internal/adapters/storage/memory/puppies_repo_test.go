package memory

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"

	"puppy-store/internal/domain/puppies"
)

func TestPuppyRepo_PageAndLookup(t *testing.T) {
	repo, err := NewPuppyRepo([]puppies.Puppy{
		{ID: "a", Name: "A"},
		{ID: "b", Name: "B"},
		{ID: "c", Name: "C"},
	})
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}

	page, err := repo.PageAfter(context.Background(), "a", 1)
	if err != nil {
		t.Fatalf("page: %v", err)
	}
	if len(page.Data) != 1 || page.Data[0].ID != "b" || page.NextCursor != "b" {
		t.Fatalf("unexpected page %#v", page)
	}

	p, err := repo.GetByID(context.Background(), "c")
	if err != nil || p.Name != "C" {
		t.Fatalf("expected C, got %#v err=%v", p, err)
	}

	if _, err := repo.GetByID(context.Background(), "zzz"); !errors.Is(err, puppies.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPuppyRepo_RejectsDuplicateIDs(t *testing.T) {
	_, err := NewPuppyRepo([]puppies.Puppy{{ID: "a"}, {ID: "a"}})
	if err == nil {
		t.Fatalf("expected duplicate id error")
	}
}

func TestPuppyRepo_PagesAreCopies(t *testing.T) {
	repo, _ := NewPuppyRepo([]puppies.Puppy{{ID: "a", Name: "A"}})

	page, _ := repo.PageAfter(context.Background(), "", 5)
	page.Data[0].Name = "mutated"

	p, _ := repo.GetByID(context.Background(), "a")
	if p.Name != "A" {
		t.Fatalf("expected dataset to stay immutable, got %q", p.Name)
	}
}

func TestPuppyRepo_ConcurrentReads(t *testing.T) {
	all := make([]puppies.Puppy, 0, 30)
	for i := 1; i <= 30; i++ {
		all = append(all, puppies.Puppy{ID: "pup-" + strconv.Itoa(i), Name: "P"})
	}
	repo, err := NewPuppyRepo(all)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cursor := ""
			for {
				page, err := repo.PageAfter(context.Background(), cursor, 7)
				if err != nil {
					t.Errorf("page: %v", err)
					return
				}
				if _, err := repo.GetByID(context.Background(), page.Data[0].ID); err != nil {
					t.Errorf("get: %v", err)
					return
				}
				if !page.HasMore() {
					return
				}
				cursor = page.NextCursor
			}
		}()
	}
	wg.Wait()
}
