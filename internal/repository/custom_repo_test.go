package repository

import (
	"testing"
	"time"

	"accountshop/internal/models"
)

func seedType(t *testing.T, repo *CustomRepository) *models.CustomAccountType {
	t.Helper()
	accType := &models.CustomAccountType{
		Name: "gmail", Description: "desc", Rules: "rules",
		Price: 50000, DeliveryTimeHours: 4, IsActive: true,
	}
	if err := repo.CreateType(accType); err != nil {
		t.Fatalf("create type: %v", err)
	}
	return accType
}

func TestCreateOrderStartsWaiting(t *testing.T) {
	repo := NewCustomRepository(newTestDB(t))
	accType := seedType(t, repo)

	order := &models.CustomAccountOrder{
		UserID:        42,
		AccountTypeID: accType.ID,
		Email:         "a@b.com",
		Password:      "secret",
	}
	if err := repo.CreateOrder(order); err != nil {
		t.Fatalf("create order: %v", err)
	}
	if order.Status != models.CustomStatusWaitingApproval {
		t.Errorf("status = %q, want waiting_admin_approval", order.Status)
	}
	if order.PaymentStatus != models.CustomPaymentUnpaid {
		t.Errorf("payment status = %q, want unpaid", order.PaymentStatus)
	}
}

func TestUpdateOrderStatusGuard(t *testing.T) {
	repo := NewCustomRepository(newTestDB(t))
	accType := seedType(t, repo)
	order := &models.CustomAccountOrder{UserID: 42, AccountTypeID: accType.ID}
	if err := repo.CreateOrder(order); err != nil {
		t.Fatalf("create order: %v", err)
	}

	moved, err := repo.UpdateOrderStatus(order.ID,
		models.CustomStatusWaitingApproval, models.CustomStatusApproved, nil)
	if err != nil || !moved {
		t.Fatalf("approve = (%v, %v), want (true, nil)", moved, err)
	}

	// The same transition cannot win twice.
	moved, err = repo.UpdateOrderStatus(order.ID,
		models.CustomStatusWaitingApproval, models.CustomStatusApproved, nil)
	if err != nil {
		t.Fatalf("second approve: %v", err)
	}
	if moved {
		t.Error("second approve won, want guarded")
	}

	// A transition from the wrong origin state is refused.
	moved, _ = repo.UpdateOrderStatus(order.ID,
		models.CustomStatusPaid, models.CustomStatusDelivered, nil)
	if moved {
		t.Error("delivered from approved won, want guarded")
	}
}

func TestExpireUnpaid(t *testing.T) {
	db := newTestDB(t)
	repo := NewCustomRepository(db)
	accType := seedType(t, repo)

	now := time.Now().Unix()
	stale := &models.CustomAccountOrder{
		UserID: 42, AccountTypeID: accType.ID, ExpiresAt: now - 60,
	}
	fresh := &models.CustomAccountOrder{
		UserID: 43, AccountTypeID: accType.ID, ExpiresAt: now + 3600,
	}
	paid := &models.CustomAccountOrder{
		UserID: 44, AccountTypeID: accType.ID, ExpiresAt: now - 60,
	}
	for _, o := range []*models.CustomAccountOrder{stale, fresh, paid} {
		if err := repo.CreateOrder(o); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	db.Model(&models.CustomAccountOrder{}).Where("id = ?", paid.ID).
		Updates(map[string]interface{}{
			"status":         models.CustomStatusPaid,
			"payment_status": models.CustomPaymentPaid,
		})

	expired, err := repo.ExpireUnpaid(now)
	if err != nil {
		t.Fatalf("expire: %v", err)
	}
	if len(expired) != 1 || expired[0].ID != stale.ID {
		t.Fatalf("expired = %+v, want only the stale unpaid order", expired)
	}

	// Fresh struct per load; a reused one keeps its old primary key as a condition.
	var staleRow models.CustomAccountOrder
	if err := db.First(&staleRow, stale.ID).Error; err != nil {
		t.Fatalf("reload stale: %v", err)
	}
	if staleRow.Status != models.CustomStatusExpired {
		t.Errorf("stale status = %q, want expired", staleRow.Status)
	}
	var freshRow models.CustomAccountOrder
	if err := db.First(&freshRow, fresh.ID).Error; err != nil {
		t.Fatalf("reload fresh: %v", err)
	}
	if freshRow.Status != models.CustomStatusWaitingApproval {
		t.Errorf("fresh status = %q, want untouched", freshRow.Status)
	}
	var paidRow models.CustomAccountOrder
	if err := db.First(&paidRow, paid.ID).Error; err != nil {
		t.Fatalf("reload paid: %v", err)
	}
	if paidRow.Status != models.CustomStatusPaid {
		t.Errorf("paid status = %q, want untouched", paidRow.Status)
	}
}

func TestToggleAndDeleteType(t *testing.T) {
	repo := NewCustomRepository(newTestDB(t))
	accType := seedType(t, repo)

	if err := repo.ToggleType(accType.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	active, err := repo.FindActiveTypes()
	if err != nil {
		t.Fatalf("find active: %v", err)
	}
	if len(active) != 0 {
		t.Errorf("active types = %d, want 0 after toggle", len(active))
	}

	if err := repo.DeleteType(accType.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	all, _ := repo.FindAllTypes()
	if len(all) != 0 {
		t.Errorf("types = %d, want 0 after delete", len(all))
	}
}
