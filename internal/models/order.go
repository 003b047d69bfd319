package models

// Order statuses.
const (
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// Order links a buyer, a product and the specific account they received.
type Order struct {
	ID        uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID    int64  `gorm:"column:user_id;index" json:"user_id"`
	ProductID uint   `gorm:"column:product_id" json:"product_id"`
	AccountID uint   `gorm:"column:account_id" json:"account_id"`
	SiteName  string `gorm:"column:site_name;size:300" json:"site_name"`
	Price     int64  `gorm:"column:price" json:"price"`
	Status    string `gorm:"column:status;size:50" json:"status"`
	CreatedAt int64  `gorm:"column:created_at" json:"created_at"`
}

func (Order) TableName() string {
	return "orders"
}

// Ledger transaction types.
const (
	TxTypeDeposit  = "deposit"
	TxTypePurchase = "purchase"
)

// Transaction is one append-only ledger row. Amount is signed:
// deposits positive, purchases negative.
type Transaction struct {
	ID          uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID      int64  `gorm:"column:user_id;index" json:"user_id"`
	Amount      int64  `gorm:"column:amount" json:"amount"`
	Type        string `gorm:"column:type;size:50" json:"type"`
	Description string `gorm:"column:description;size:500" json:"description"`
	CreatedAt   int64  `gorm:"column:created_at" json:"created_at"`
}

func (Transaction) TableName() string {
	return "transactions"
}
