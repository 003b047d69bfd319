package service

import (
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"accountshop/internal/models"
)

func seedCustomOrder(t *testing.T, db *gorm.DB, userID int64, price int64, status, paymentStatus string) uint {
	t.Helper()
	accType := models.CustomAccountType{Name: "gmail", Price: price, DeliveryTimeHours: 4, IsActive: true}
	if err := db.Create(&accType).Error; err != nil {
		t.Fatalf("seed type: %v", err)
	}
	order := models.CustomAccountOrder{
		UserID:        userID,
		AccountTypeID: accType.ID,
		Email:         "user@example.com",
		Password:      "secret",
		Status:        status,
		PaymentStatus: paymentStatus,
		CreatedAt:     time.Now().Unix(),
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("seed order: %v", err)
	}
	return order.ID
}

func TestDeposit(t *testing.T) {
	db := newTestDB(t)
	db.Create(&models.User{TelegramID: 42, Balance: 1000})

	svc := NewWalletService(db)
	if err := svc.Deposit(42, 5000, "test deposit"); err != nil {
		t.Fatalf("deposit: %v", err)
	}

	var user models.User
	db.First(&user, "telegram_id = ?", 42)
	if user.Balance != 6000 {
		t.Errorf("balance = %d, want 6000", user.Balance)
	}
	var ledger models.Transaction
	if err := db.First(&ledger, "user_id = ?", 42).Error; err != nil {
		t.Fatalf("ledger row missing: %v", err)
	}
	if ledger.Amount != 5000 || ledger.Type != models.TxTypeDeposit {
		t.Errorf("ledger = %+v", ledger)
	}
}

func TestDepositRejectsNonPositive(t *testing.T) {
	db := newTestDB(t)
	db.Create(&models.User{TelegramID: 42, Balance: 1000})

	svc := NewWalletService(db)
	for _, amount := range []int64{0, -500} {
		if err := svc.Deposit(42, amount, "bad"); err == nil {
			t.Errorf("deposit(%d) succeeded, want error", amount)
		}
	}
}

func TestDepositUnknownUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewWalletService(db)
	if err := svc.Deposit(7, 5000, "ghost"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("err = %v, want ErrRecordNotFound", err)
	}
}

func TestPayCustomOrder(t *testing.T) {
	db := newTestDB(t)
	db.Create(&models.User{TelegramID: 42, Balance: 100000})
	orderID := seedCustomOrder(t, db, 42, 60000, models.CustomStatusConfirmed, models.CustomPaymentUnpaid)

	svc := NewWalletService(db)
	if err := svc.PayCustomOrder(42, orderID); err != nil {
		t.Fatalf("pay: %v", err)
	}

	var user models.User
	db.First(&user, "telegram_id = ?", 42)
	if user.Balance != 40000 {
		t.Errorf("balance = %d, want 40000", user.Balance)
	}
	var order models.CustomAccountOrder
	db.First(&order, orderID)
	if order.Status != models.CustomStatusPaid || order.PaymentStatus != models.CustomPaymentPaid {
		t.Errorf("order = %s/%s, want paid/paid", order.Status, order.PaymentStatus)
	}
	if order.PaidAt == 0 {
		t.Error("paid_at not set")
	}

	// A second tap must not charge again.
	if err := svc.PayCustomOrder(42, orderID); !errors.Is(err, ErrAlreadyPaid) {
		t.Fatalf("second pay err = %v, want ErrAlreadyPaid", err)
	}
	db.First(&user, "telegram_id = ?", 42)
	if user.Balance != 40000 {
		t.Errorf("balance after replay = %d, want 40000", user.Balance)
	}
}

func TestPayCustomOrderGuards(t *testing.T) {
	db := newTestDB(t)
	db.Create(&models.User{TelegramID: 42, Balance: 10000})

	svc := NewWalletService(db)

	// Not yet confirmed by the user.
	waiting := seedCustomOrder(t, db, 42, 60000, models.CustomStatusWaitingApproval, models.CustomPaymentUnpaid)
	if err := svc.PayCustomOrder(42, waiting); !errors.Is(err, ErrOrderNotPayable) {
		t.Errorf("waiting order err = %v, want ErrOrderNotPayable", err)
	}

	// Confirmed but the wallet is short.
	confirmed := seedCustomOrder(t, db, 42, 60000, models.CustomStatusConfirmed, models.CustomPaymentUnpaid)
	if err := svc.PayCustomOrder(42, confirmed); !errors.Is(err, ErrInsufficientBalance) {
		t.Errorf("short wallet err = %v, want ErrInsufficientBalance", err)
	}

	// Someone else's order.
	other := seedCustomOrder(t, db, 99, 60000, models.CustomStatusConfirmed, models.CustomPaymentUnpaid)
	if err := svc.PayCustomOrder(42, other); !errors.Is(err, ErrProductNotFound) {
		t.Errorf("foreign order err = %v, want ErrProductNotFound", err)
	}
}

func TestAdminAdjust(t *testing.T) {
	db := newTestDB(t)
	db.Create(&models.User{TelegramID: 42, Balance: 10000})

	svc := NewWalletService(db)
	if err := svc.AdminAdjust(42, 5000, "manual credit"); err != nil {
		t.Fatalf("credit: %v", err)
	}
	if err := svc.AdminAdjust(42, -20000, "manual debit"); err != nil {
		t.Fatalf("debit: %v", err)
	}

	var user models.User
	db.First(&user, "telegram_id = ?", 42)
	if user.Balance != -5000 {
		t.Errorf("balance = %d, want -5000", user.Balance)
	}
	var count int64
	db.Model(&models.Transaction{}).Where("user_id = ?", 42).Count(&count)
	if count != 2 {
		t.Errorf("ledger rows = %d, want 2", count)
	}
	if err := svc.AdminAdjust(42, 0, "noop"); err == nil {
		t.Error("zero delta succeeded, want error")
	}
}
