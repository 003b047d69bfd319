package repository

import (
	"time"

	"gorm.io/gorm"

	"accountshop/internal/models"
)

// PaymentRepository handles gateway transaction rows for both Zibal and
// NOWPayments.
type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// ── Zibal ─────────────────────────────────────────────────────────────

func (r *PaymentRepository) CreateZibal(tx *models.ZibalTransaction) error {
	if tx.CreatedAt == 0 {
		tx.CreatedAt = time.Now().Unix()
	}
	return r.db.Create(tx).Error
}

func (r *PaymentRepository) FindZibalByTrackID(trackID int64) (*models.ZibalTransaction, error) {
	var tx models.ZibalTransaction
	if err := r.db.Where("track_id = ?", trackID).First(&tx).Error; err != nil {
		return nil, err
	}
	return &tx, nil
}

func (r *PaymentRepository) UpdateZibal(id uint, updates map[string]interface{}) error {
	return r.db.Model(&models.ZibalTransaction{}).Where("id = ?", id).Updates(updates).Error
}

// MarkZibalSuccess flips a pending transaction to success exactly once.
// Returns false when the row was already settled, which makes callback
// processing idempotent.
func (r *PaymentRepository) MarkZibalSuccess(trackID int64, refNumber, cardNumber string) (bool, error) {
	now := time.Now().Unix()
	res := r.db.Model(&models.ZibalTransaction{}).
		Where("track_id = ? AND status = ?", trackID, models.ZibalStatusPending).
		Updates(map[string]interface{}{
			"status":           models.ZibalStatusSuccess,
			"reference_number": refNumber,
			"card_number":      cardNumber,
			"paid_at":          now,
			"verified_at":      now,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *PaymentRepository) ZibalByUser(userID int64, limit int) ([]models.ZibalTransaction, error) {
	if limit <= 0 {
		limit = 10
	}
	var txs []models.ZibalTransaction
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Limit(limit).Find(&txs).Error
	return txs, err
}

// ── NOWPayments ───────────────────────────────────────────────────────

func (r *PaymentRepository) CreateCrypto(tx *models.CryptoTransaction) error {
	if tx.CreatedAt == 0 {
		tx.CreatedAt = time.Now().Unix()
	}
	return r.db.Create(tx).Error
}

func (r *PaymentRepository) FindCryptoByPaymentID(paymentID string) (*models.CryptoTransaction, error) {
	var tx models.CryptoTransaction
	if err := r.db.Where("payment_id = ?", paymentID).First(&tx).Error; err != nil {
		return nil, err
	}
	return &tx, nil
}

func (r *PaymentRepository) FindCryptoByOrderID(orderID string) (*models.CryptoTransaction, error) {
	var tx models.CryptoTransaction
	if err := r.db.Where("order_id = ?", orderID).First(&tx).Error; err != nil {
		return nil, err
	}
	return &tx, nil
}

func (r *PaymentRepository) UpdateCryptoStatus(paymentID, status string) error {
	return r.db.Model(&models.CryptoTransaction{}).
		Where("payment_id = ?", paymentID).
		Update("payment_status", status).Error
}

// MarkCryptoFinished settles a waiting crypto payment exactly once.
func (r *PaymentRepository) MarkCryptoFinished(paymentID string) (bool, error) {
	res := r.db.Model(&models.CryptoTransaction{}).
		Where("payment_id = ? AND payment_status != ?", paymentID, models.CryptoStatusFinished).
		Updates(map[string]interface{}{
			"payment_status": models.CryptoStatusFinished,
			"verified_at":    time.Now().Unix(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *PaymentRepository) CryptoByUser(userID int64, limit int) ([]models.CryptoTransaction, error) {
	if limit <= 0 {
		limit = 10
	}
	var txs []models.CryptoTransaction
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Limit(limit).Find(&txs).Error
	return txs, err
}

// ── Statistics ────────────────────────────────────────────────────────

// GatewayStats summarizes settled and pending volume for the admin panel.
type GatewayStats struct {
	ZibalPaidCount    int64
	ZibalPaidAmount   int64
	ZibalPendingCount int64
	CryptoPaidCount   int64
	CryptoPaidUSD     float64
	CryptoWaiting     int64
}

func (r *PaymentRepository) Stats() (*GatewayStats, error) {
	var s GatewayStats
	if err := r.db.Model(&models.ZibalTransaction{}).
		Where("status = ?", models.ZibalStatusSuccess).Count(&s.ZibalPaidCount).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.ZibalTransaction{}).
		Where("status = ?", models.ZibalStatusSuccess).
		Select("COALESCE(SUM(amount), 0)").Scan(&s.ZibalPaidAmount).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.ZibalTransaction{}).
		Where("status = ?", models.ZibalStatusPending).Count(&s.ZibalPendingCount).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.CryptoTransaction{}).
		Where("payment_status = ?", models.CryptoStatusFinished).Count(&s.CryptoPaidCount).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.CryptoTransaction{}).
		Where("payment_status = ?", models.CryptoStatusFinished).
		Select("COALESCE(SUM(amount_usd), 0)").Scan(&s.CryptoPaidUSD).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.CryptoTransaction{}).
		Where("payment_status = ?", models.CryptoStatusWaiting).Count(&s.CryptoWaiting).Error; err != nil {
		return nil, err
	}
	return &s, nil
}
