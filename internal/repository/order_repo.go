package repository

import (
	"gorm.io/gorm"

	"accountshop/internal/models"
)

// OrderRepository handles order and ledger reads. Writes happen inside the
// purchase/deposit services so they share a transaction with the balance
// mutation.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// FindByUserID returns the user's most recent orders.
func (r *OrderRepository) FindByUserID(userID int64, limit int) ([]models.Order, error) {
	if limit <= 0 {
		limit = 10
	}
	var orders []models.Order
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Limit(limit).Find(&orders).Error
	return orders, err
}

// CountDelivered counts fulfilled orders.
func (r *OrderRepository) CountDelivered() (int64, error) {
	var count int64
	err := r.db.Model(&models.Order{}).Where("status = ?", models.OrderStatusDelivered).Count(&count).Error
	return count, err
}

// TotalRevenue sums the price of delivered orders.
func (r *OrderRepository) TotalRevenue() (int64, error) {
	var sum int64
	err := r.db.Model(&models.Order{}).Where("status = ?", models.OrderStatusDelivered).
		Select("COALESCE(SUM(price), 0)").Scan(&sum).Error
	return sum, err
}

// LedgerByUserID returns the user's ledger rows, newest first.
func (r *OrderRepository) LedgerByUserID(userID int64, limit int) ([]models.Transaction, error) {
	if limit <= 0 {
		limit = 20
	}
	var txs []models.Transaction
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Limit(limit).Find(&txs).Error
	return txs, err
}
