package repository

import (
	"testing"

	"accountshop/internal/models"
)

func TestProductToggleAndPriceUpdate(t *testing.T) {
	db := newTestDB(t)
	repo := NewProductRepository(db)

	product := &models.Product{SiteName: "spotify.com", Price: 50000, IsActive: true}
	if err := repo.Create(product); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := repo.SetActive(product.ID, false); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	active, err := repo.FindActive()
	if err != nil {
		t.Fatalf("find active: %v", err)
	}
	if len(active) != 0 {
		t.Errorf("active = %d, want 0 after deactivation", len(active))
	}
	all, err := repo.FindAll()
	if err != nil {
		t.Fatalf("find all: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("all = %d, want 1 (inactive products stay listed)", len(all))
	}

	if err := repo.Update(product.ID, map[string]interface{}{"price": int64(75000)}); err != nil {
		t.Fatalf("update price: %v", err)
	}
	reloaded, err := repo.FindByID(product.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Price != 75000 {
		t.Errorf("price = %d, want 75000", reloaded.Price)
	}
	if reloaded.IsActive {
		t.Error("product reactivated by price update, want still inactive")
	}
}
