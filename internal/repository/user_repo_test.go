package repository

import (
	"testing"

	"accountshop/internal/models"
)

func TestGetOrCreateRefreshesUsername(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))

	user, err := repo.GetOrCreate(42, "old")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if user.Username != "old" {
		t.Errorf("username = %q, want old", user.Username)
	}

	user, err = repo.GetOrCreate(42, "renamed")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if user.Username != "renamed" {
		t.Errorf("username = %q, want renamed", user.Username)
	}

	count, err := repo.Count()
	if err != nil || count != 1 {
		t.Errorf("count = (%d, %v), want (1, nil)", count, err)
	}
}

func TestFindAllIDs(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	for _, id := range []int64{7, 42, 99} {
		db.Create(&models.User{TelegramID: id})
	}

	ids, err := repo.FindAllIDs()
	if err != nil {
		t.Fatalf("find all ids: %v", err)
	}
	if len(ids) != 3 {
		t.Fatalf("len = %d, want 3", len(ids))
	}
	seen := map[int64]bool{}
	for _, id := range ids {
		seen[id] = true
	}
	for _, want := range []int64{7, 42, 99} {
		if !seen[want] {
			t.Errorf("id %d missing from %v", want, ids)
		}
	}
}
