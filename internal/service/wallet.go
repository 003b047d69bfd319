package service

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"accountshop/internal/models"
)

// WalletService mutates balances together with their ledger rows in one
// transaction. Gateway callbacks and the custom-order payment step both go
// through here so no balance change ever lacks an audit entry.
type WalletService struct {
	db *gorm.DB
}

func NewWalletService(db *gorm.DB) *WalletService {
	return &WalletService{db: db}
}

// Deposit credits the user and appends a deposit ledger row.
func (s *WalletService) Deposit(userID int64, amount int64, description string) error {
	if amount <= 0 {
		return fmt.Errorf("deposit amount must be positive, got %d", amount)
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.User{}).Where("telegram_id = ?", userID).
			Update("balance", gorm.Expr("balance + ?", amount))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Create(&models.Transaction{
			UserID:      userID,
			Amount:      amount,
			Type:        models.TxTypeDeposit,
			Description: description,
			CreatedAt:   time.Now().Unix(),
		}).Error
	})
}

// AdminAdjust applies a signed balance change with its ledger row. Negative
// deltas may take the balance below zero; that is the admin's call.
func (s *WalletService) AdminAdjust(userID int64, delta int64, description string) error {
	if delta == 0 {
		return errors.New("adjustment delta is zero")
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.User{}).Where("telegram_id = ?", userID).
			Update("balance", gorm.Expr("balance + ?", delta))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		txType := models.TxTypeDeposit
		if delta < 0 {
			txType = models.TxTypePurchase
		}
		return tx.Create(&models.Transaction{
			UserID:      userID,
			Amount:      delta,
			Type:        txType,
			Description: description,
			CreatedAt:   time.Now().Unix(),
		}).Error
	})
}

// PayCustomOrder debits the wallet for an approved-and-confirmed custom order
// and moves it to paid, all in one transaction. The status guard keeps a
// double tap on the pay button from charging twice.
func (s *WalletService) PayCustomOrder(userID int64, orderID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var order models.CustomAccountOrder
		err := tx.Where("id = ? AND user_id = ?", orderID, userID).First(&order).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		if err != nil {
			return err
		}
		if order.PaymentStatus == models.CustomPaymentPaid {
			return ErrAlreadyPaid
		}
		if order.Status != models.CustomStatusConfirmed {
			return ErrOrderNotPayable
		}

		var accType models.CustomAccountType
		if err := tx.Where("id = ?", order.AccountTypeID).First(&accType).Error; err != nil {
			return err
		}

		debit := tx.Model(&models.User{}).
			Where("telegram_id = ? AND balance >= ?", userID, accType.Price).
			Update("balance", gorm.Expr("balance - ?", accType.Price))
		if debit.Error != nil {
			return debit.Error
		}
		if debit.RowsAffected == 0 {
			return ErrInsufficientBalance
		}

		now := time.Now().Unix()
		paid := tx.Model(&models.CustomAccountOrder{}).
			Where("id = ? AND payment_status = ?", orderID, models.CustomPaymentUnpaid).
			Updates(map[string]interface{}{
				"payment_status": models.CustomPaymentPaid,
				"status":         models.CustomStatusPaid,
				"paid_at":        now,
			})
		if paid.Error != nil {
			return paid.Error
		}
		if paid.RowsAffected == 0 {
			return ErrAlreadyPaid
		}

		return tx.Create(&models.Transaction{
			UserID:      userID,
			Amount:      -accType.Price,
			Type:        models.TxTypePurchase,
			Description: fmt.Sprintf("پرداخت سفارش اکانت سفارشی #%d (%s)", order.ID, accType.Name),
			CreatedAt:   now,
		}).Error
	})
}

// ErrAlreadyPaid tags a repeated payment attempt on a settled order.
var ErrAlreadyPaid = errors.New("order already paid")

// ErrOrderNotPayable means the order has not reached the confirmed state
// (or already left it), so there is nothing to charge for.
var ErrOrderNotPayable = errors.New("order is not payable in its current state")
