package models

// Zibal transaction statuses.
const (
	ZibalStatusPending = "pending"
	ZibalStatusSuccess = "success"
	ZibalStatusFailed  = "failed"
)

// ZibalTransaction is one redirect-gateway payment attempt.
type ZibalTransaction struct {
	ID              uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID          int64  `gorm:"column:user_id;index" json:"user_id"`
	TrackID         int64  `gorm:"column:track_id;uniqueIndex" json:"track_id"`
	Amount          int64  `gorm:"column:amount" json:"amount"`
	Status          string `gorm:"column:status;size:50;default:'pending'" json:"status"`
	ReferenceNumber string `gorm:"column:reference_number;size:100" json:"reference_number"`
	CardNumber      string `gorm:"column:card_number;size:50" json:"card_number"`
	Description     string `gorm:"column:description;size:500" json:"description"`
	CreatedAt       int64  `gorm:"column:created_at" json:"created_at"`
	PaidAt          int64  `gorm:"column:paid_at" json:"paid_at"`
	VerifiedAt      int64  `gorm:"column:verified_at" json:"verified_at"`
}

func (ZibalTransaction) TableName() string {
	return "zibal_transactions"
}

// NOWPayments lifecycle statuses we act on. The gateway also reports
// confirming/sending/partially_paid which stay pending on our side.
const (
	CryptoStatusWaiting  = "waiting"
	CryptoStatusFinished = "finished"
	CryptoStatusFailed   = "failed"
	CryptoStatusExpired  = "expired"
)

// CryptoTransaction is one crypto-invoice payment attempt.
type CryptoTransaction struct {
	ID            uint    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID        int64   `gorm:"column:user_id;index" json:"user_id"`
	PaymentID     string  `gorm:"column:payment_id;uniqueIndex" json:"payment_id"`
	OrderID       string  `gorm:"column:order_id;uniqueIndex" json:"order_id"`
	AmountUSD     float64 `gorm:"column:amount_usd" json:"amount_usd"`
	AmountCrypto  float64 `gorm:"column:amount_crypto" json:"amount_crypto"`
	AmountToman   int64   `gorm:"column:amount_toman" json:"amount_toman"`
	Currency      string  `gorm:"column:currency;size:20" json:"currency"`
	PayAddress    string  `gorm:"column:pay_address;size:300" json:"pay_address"`
	PaymentStatus string  `gorm:"column:payment_status;size:50;default:'waiting'" json:"payment_status"`
	CreatedAt     int64   `gorm:"column:created_at" json:"created_at"`
	VerifiedAt    int64   `gorm:"column:verified_at" json:"verified_at"`
}

func (CryptoTransaction) TableName() string {
	return "crypto_transactions"
}
