package repository

import (
	"time"

	"gorm.io/gorm"

	"accountshop/internal/models"
)

// CustomRepository handles custom account types and their orders.
type CustomRepository struct {
	db *gorm.DB
}

func NewCustomRepository(db *gorm.DB) *CustomRepository {
	return &CustomRepository{db: db}
}

// ── Types ─────────────────────────────────────────────────────────────

func (r *CustomRepository) CreateType(t *models.CustomAccountType) error {
	if t.CreatedAt == 0 {
		t.CreatedAt = time.Now().Unix()
	}
	return r.db.Create(t).Error
}

func (r *CustomRepository) FindActiveTypes() ([]models.CustomAccountType, error) {
	var types []models.CustomAccountType
	err := r.db.Where("is_active = ?", true).Order("id").Find(&types).Error
	return types, err
}

func (r *CustomRepository) FindAllTypes() ([]models.CustomAccountType, error) {
	var types []models.CustomAccountType
	err := r.db.Order("id").Find(&types).Error
	return types, err
}

func (r *CustomRepository) FindType(id uint) (*models.CustomAccountType, error) {
	var t models.CustomAccountType
	if err := r.db.Where("id = ?", id).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *CustomRepository) ToggleType(id uint) error {
	return r.db.Model(&models.CustomAccountType{}).Where("id = ?", id).
		Update("is_active", gorm.Expr("NOT is_active")).Error
}

func (r *CustomRepository) DeleteType(id uint) error {
	return r.db.Where("id = ?", id).Delete(&models.CustomAccountType{}).Error
}

// ── Orders ────────────────────────────────────────────────────────────

// CreateOrder inserts a new order in waiting_admin_approval.
func (r *CustomRepository) CreateOrder(order *models.CustomAccountOrder) error {
	order.Status = models.CustomStatusWaitingApproval
	order.PaymentStatus = models.CustomPaymentUnpaid
	if order.CreatedAt == 0 {
		order.CreatedAt = time.Now().Unix()
	}
	return r.db.Create(order).Error
}

func (r *CustomRepository) FindOrder(id uint) (*models.CustomAccountOrder, error) {
	var order models.CustomAccountOrder
	if err := r.db.Where("id = ?", id).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateOrderStatus transitions an order only when it is still in the
// expected status, so two admins acting at once cannot both win.
func (r *CustomRepository) UpdateOrderStatus(id uint, from, to string, updates map[string]interface{}) (bool, error) {
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["status"] = to
	res := r.db.Model(&models.CustomAccountOrder{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// FindOrdersByUser returns the user's recent custom orders.
func (r *CustomRepository) FindOrdersByUser(userID int64, limit int) ([]models.CustomAccountOrder, error) {
	if limit <= 0 {
		limit = 20
	}
	var orders []models.CustomAccountOrder
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Limit(limit).Find(&orders).Error
	return orders, err
}

// FindPendingOrders returns every order an admin still has to act on.
func (r *CustomRepository) FindPendingOrders() ([]models.CustomAccountOrder, error) {
	var orders []models.CustomAccountOrder
	err := r.db.Where("status IN ?", []string{
		models.CustomStatusWaitingApproval,
		models.CustomStatusApproved,
		models.CustomStatusConfirmed,
		models.CustomStatusPaid,
	}).Order("created_at DESC").Find(&orders).Error
	return orders, err
}

// ExpireUnpaid cancels unpaid orders whose deadline has passed and returns
// them so callers can notify the owners.
func (r *CustomRepository) ExpireUnpaid(now int64) ([]models.CustomAccountOrder, error) {
	var stale []models.CustomAccountOrder
	err := r.db.Where(
		"payment_status = ? AND expires_at > 0 AND expires_at < ? AND status IN ?",
		models.CustomPaymentUnpaid, now,
		[]string{models.CustomStatusWaitingApproval, models.CustomStatusApproved, models.CustomStatusConfirmed},
	).Find(&stale).Error
	if err != nil {
		return nil, err
	}
	for i := range stale {
		res := r.db.Model(&models.CustomAccountOrder{}).
			Where("id = ? AND status = ?", stale[i].ID, stale[i].Status).
			Update("status", models.CustomStatusExpired)
		if res.Error != nil {
			return nil, res.Error
		}
	}
	return stale, nil
}

// Statistics returns delivered count, pending count and paid revenue.
func (r *CustomRepository) Statistics() (delivered, pending, revenue int64, err error) {
	if err = r.db.Model(&models.CustomAccountOrder{}).
		Where("status = ?", models.CustomStatusDelivered).Count(&delivered).Error; err != nil {
		return
	}
	if err = r.db.Model(&models.CustomAccountOrder{}).
		Where("status IN ?", []string{
			models.CustomStatusWaitingApproval,
			models.CustomStatusApproved,
			models.CustomStatusConfirmed,
			models.CustomStatusPaid,
		}).Count(&pending).Error; err != nil {
		return
	}
	err = r.db.Model(&models.CustomAccountOrder{}).
		Joins("JOIN custom_account_types ON custom_account_types.id = custom_account_orders.account_type_id").
		Where("custom_account_orders.payment_status = ?", models.CustomPaymentPaid).
		Select("COALESCE(SUM(custom_account_types.price), 0)").Scan(&revenue).Error
	return
}
