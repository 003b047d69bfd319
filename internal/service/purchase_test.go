package service

import (
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"accountshop/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{}, &models.Product{}, &models.Account{},
		&models.Order{}, &models.Transaction{},
		&models.CustomAccountType{}, &models.CustomAccountOrder{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedShop(t *testing.T, db *gorm.DB, balance, price int64, stock int) (int64, uint) {
	t.Helper()
	user := models.User{TelegramID: 1001, Username: "buyer", Balance: balance}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	product := models.Product{SiteName: "example.com", Price: price, StockCount: stock, IsActive: true}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	for i := 0; i < stock; i++ {
		acc := models.Account{ProductID: product.ID, Login: "login", Password: "pass"}
		if err := db.Create(&acc).Error; err != nil {
			t.Fatalf("seed account: %v", err)
		}
	}
	return user.TelegramID, product.ID
}

func TestPurchaseHappyPath(t *testing.T) {
	db := newTestDB(t)
	userID, productID := seedShop(t, db, 100000, 50000, 1)

	svc := NewPurchaseService(db)
	result, err := svc.Purchase(userID, productID)
	if err != nil {
		t.Fatalf("purchase: %v", err)
	}
	if result.Login != "login" || result.Password != "pass" {
		t.Errorf("wrong credential: %+v", result)
	}
	if result.Price != 50000 {
		t.Errorf("price = %d, want 50000", result.Price)
	}

	var user models.User
	db.First(&user, "telegram_id = ?", userID)
	if user.Balance != 50000 {
		t.Errorf("balance = %d, want 50000", user.Balance)
	}

	var product models.Product
	db.First(&product, productID)
	if product.StockCount != 0 {
		t.Errorf("stock = %d, want 0", product.StockCount)
	}

	var account models.Account
	db.First(&account, "product_id = ?", productID)
	if !account.IsSold {
		t.Error("account not marked sold")
	}

	var orders int64
	db.Model(&models.Order{}).Where("user_id = ? AND status = ?", userID, models.OrderStatusDelivered).Count(&orders)
	if orders != 1 {
		t.Errorf("orders = %d, want 1", orders)
	}

	var ledger models.Transaction
	if err := db.First(&ledger, "user_id = ?", userID).Error; err != nil {
		t.Fatalf("ledger row missing: %v", err)
	}
	if ledger.Amount != -50000 || ledger.Type != models.TxTypePurchase {
		t.Errorf("ledger = %+v", ledger)
	}
}

func TestPurchaseInsufficientBalance(t *testing.T) {
	db := newTestDB(t)
	userID, productID := seedShop(t, db, 10000, 50000, 1)

	svc := NewPurchaseService(db)
	_, err := svc.Purchase(userID, productID)
	if !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("err = %v, want ErrInsufficientBalance", err)
	}

	// Nothing must change on a failed guard.
	var user models.User
	db.First(&user, "telegram_id = ?", userID)
	if user.Balance != 10000 {
		t.Errorf("balance = %d, want untouched 10000", user.Balance)
	}
	var product models.Product
	db.First(&product, productID)
	if product.StockCount != 1 {
		t.Errorf("stock = %d, want untouched 1", product.StockCount)
	}
	var sold int64
	db.Model(&models.Account{}).Where("is_sold = ?", true).Count(&sold)
	if sold != 0 {
		t.Errorf("sold accounts = %d, want 0", sold)
	}
}

func TestPurchaseOutOfStock(t *testing.T) {
	db := newTestDB(t)
	userID, productID := seedShop(t, db, 200000, 50000, 1)

	svc := NewPurchaseService(db)
	if _, err := svc.Purchase(userID, productID); err != nil {
		t.Fatalf("first purchase: %v", err)
	}
	_, err := svc.Purchase(userID, productID)
	if !errors.Is(err, ErrOutOfStock) {
		t.Fatalf("err = %v, want ErrOutOfStock", err)
	}

	var user models.User
	db.First(&user, "telegram_id = ?", userID)
	if user.Balance != 150000 {
		t.Errorf("balance = %d, want 150000 (charged once)", user.Balance)
	}
}

func TestPurchaseLastUnitSingleWinner(t *testing.T) {
	db := newTestDB(t)
	userID, productID := seedShop(t, db, 100000, 50000, 1)
	rival := models.User{TelegramID: 1002, Username: "rival", Balance: 100000}
	if err := db.Create(&rival).Error; err != nil {
		t.Fatalf("seed rival: %v", err)
	}

	svc := NewPurchaseService(db)
	errs := make(chan error, 2)
	for _, id := range []int64{userID, rival.TelegramID} {
		go func(id int64) {
			_, err := svc.Purchase(id, productID)
			errs <- err
		}(id)
	}

	var wins, outOfStock int
	for i := 0; i < 2; i++ {
		switch err := <-errs; {
		case err == nil:
			wins++
		case errors.Is(err, ErrOutOfStock):
			outOfStock++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if wins != 1 || outOfStock != 1 {
		t.Fatalf("wins = %d, out of stock = %d, want exactly one of each", wins, outOfStock)
	}

	var sold, orders, ledger int64
	db.Model(&models.Account{}).Where("is_sold = ?", true).Count(&sold)
	db.Model(&models.Order{}).Count(&orders)
	db.Model(&models.Transaction{}).Count(&ledger)
	if sold != 1 || orders != 1 || ledger != 1 {
		t.Errorf("sold/orders/ledger = %d/%d/%d, want 1/1/1", sold, orders, ledger)
	}
	var product models.Product
	db.First(&product, productID)
	if product.StockCount != 0 {
		t.Errorf("stock = %d, want 0", product.StockCount)
	}
}

func TestPurchaseInactiveProduct(t *testing.T) {
	db := newTestDB(t)
	userID, productID := seedShop(t, db, 100000, 50000, 1)
	db.Model(&models.Product{}).Where("id = ?", productID).Update("is_active", false)

	svc := NewPurchaseService(db)
	_, err := svc.Purchase(userID, productID)
	if !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("err = %v, want ErrProductNotFound", err)
	}
}

func TestPurchaseUnknownProduct(t *testing.T) {
	db := newTestDB(t)
	userID, _ := seedShop(t, db, 100000, 50000, 1)

	svc := NewPurchaseService(db)
	_, err := svc.Purchase(userID, 9999)
	if !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("err = %v, want ErrProductNotFound", err)
	}
}
