package models

// Custom order workflow statuses.
const (
	CustomStatusWaitingApproval = "waiting_admin_approval"
	CustomStatusApproved        = "approved"
	CustomStatusRejected        = "rejected"
	CustomStatusConfirmed       = "confirmed"
	CustomStatusPaid            = "paid"
	CustomStatusDelivered       = "delivered"
	CustomStatusExpired         = "expired"
)

// Custom order payment statuses.
const (
	CustomPaymentUnpaid = "unpaid"
	CustomPaymentPaid   = "paid"
)

// CustomAccountType describes one manually-fulfilled account offering.
type CustomAccountType struct {
	ID                uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name              string `gorm:"column:name;size:300" json:"name"`
	Description       string `gorm:"column:description;type:text" json:"description"`
	Rules             string `gorm:"column:rules;type:text" json:"rules"`
	Price             int64  `gorm:"column:price" json:"price"`
	DeliveryTimeHours int    `gorm:"column:delivery_time_hours;default:4" json:"delivery_time_hours"`
	IsActive          bool   `gorm:"column:is_active;default:true" json:"is_active"`
	CreatedAt         int64  `gorm:"column:created_at" json:"created_at"`
}

func (CustomAccountType) TableName() string {
	return "custom_account_types"
}

// CustomAccountOrder is a manually-fulfilled order: the user supplies the
// email/password the account should be built on, an admin approves, the user
// pays from wallet balance, and an admin types the finished credentials.
type CustomAccountOrder struct {
	ID            uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID        int64  `gorm:"column:user_id;index" json:"user_id"`
	AccountTypeID uint   `gorm:"column:account_type_id" json:"account_type_id"`
	Email         string `gorm:"column:email;size:300" json:"email"`
	Password      string `gorm:"column:password;size:300" json:"password"`
	Status        string `gorm:"column:status;size:50;index" json:"status"`
	PaymentStatus string `gorm:"column:payment_status;size:50" json:"payment_status"`
	AdminNotes    string `gorm:"column:admin_notes;type:text" json:"admin_notes"`
	AccountInfo   string `gorm:"column:account_info;type:text" json:"account_info"`
	CreatedAt     int64  `gorm:"column:created_at" json:"created_at"`
	PaidAt        int64  `gorm:"column:paid_at" json:"paid_at"`
	DeliveredAt   int64  `gorm:"column:delivered_at" json:"delivered_at"`
	// ExpiresAt bounds how long an unpaid order stays claimable before
	// the cron sweep cancels it.
	ExpiresAt int64 `gorm:"column:expires_at;index" json:"expires_at"`
}

func (CustomAccountOrder) TableName() string {
	return "custom_account_orders"
}
