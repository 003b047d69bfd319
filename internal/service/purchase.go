package service

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"accountshop/internal/models"
)

// Tagged business failures, mapped to chat alerts by the handlers.
var (
	ErrProductNotFound     = errors.New("product not found")
	ErrOutOfStock          = errors.New("out of stock")
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// PurchaseResult carries the claimed credential back to the buyer.
type PurchaseResult struct {
	OrderID        uint
	Login          string
	Password       string
	AdditionalInfo string
	Price          int64
}

// PurchaseService fulfills inventory-backed orders.
type PurchaseService struct {
	db *gorm.DB
}

func NewPurchaseService(db *gorm.DB) *PurchaseService {
	return &PurchaseService{db: db}
}

// Purchase atomically claims one unsold account for the product, decrements
// stock, debits the buyer and writes the order plus a ledger row. Every guard
// is a conditional UPDATE checked by rows-affected, so two concurrent buyers
// cannot claim the same account or overdraw a balance; any failed guard rolls
// the whole transaction back.
func (s *PurchaseService) Purchase(userID int64, productID uint) (*PurchaseResult, error) {
	var result *PurchaseResult

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		err := tx.Where("id = ? AND is_active = ?", productID, true).First(&product).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		if err != nil {
			return err
		}

		var account models.Account
		err = tx.Where("product_id = ? AND is_sold = ?", productID, false).
			Order("id").First(&account).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOutOfStock
		}
		if err != nil {
			return err
		}

		// Claim the account. is_sold in the WHERE clause keeps a row from
		// being sold twice even if another transaction slipped in between
		// the read and this write.
		claim := tx.Model(&models.Account{}).
			Where("id = ? AND is_sold = ?", account.ID, false).
			Update("is_sold", true)
		if claim.Error != nil {
			return claim.Error
		}
		if claim.RowsAffected == 0 {
			return ErrOutOfStock
		}

		stock := tx.Model(&models.Product{}).
			Where("id = ? AND stock_count > 0", productID).
			Update("stock_count", gorm.Expr("stock_count - 1"))
		if stock.Error != nil {
			return stock.Error
		}
		if stock.RowsAffected == 0 {
			return ErrOutOfStock
		}

		debit := tx.Model(&models.User{}).
			Where("telegram_id = ? AND balance >= ?", userID, product.Price).
			Update("balance", gorm.Expr("balance - ?", product.Price))
		if debit.Error != nil {
			return debit.Error
		}
		if debit.RowsAffected == 0 {
			return ErrInsufficientBalance
		}

		now := time.Now().Unix()
		order := models.Order{
			UserID:    userID,
			ProductID: productID,
			AccountID: account.ID,
			SiteName:  product.SiteName,
			Price:     product.Price,
			Status:    models.OrderStatusDelivered,
			CreatedAt: now,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		ledger := models.Transaction{
			UserID:      userID,
			Amount:      -product.Price,
			Type:        models.TxTypePurchase,
			Description: fmt.Sprintf("خرید %s (سفارش #%d)", product.SiteName, order.ID),
			CreatedAt:   now,
		}
		if err := tx.Create(&ledger).Error; err != nil {
			return err
		}

		result = &PurchaseResult{
			OrderID:        order.ID,
			Login:          account.Login,
			Password:       account.Password,
			AdditionalInfo: account.AdditionalInfo,
			Price:          product.Price,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
