package payment

// ZibalPayment is the result of a redirect-gateway payment request.
type ZibalPayment struct {
	TrackID    int64  `json:"track_id"`
	PaymentURL string `json:"payment_url"`
}

// ZibalVerify is the result of a verify call.
type ZibalVerify struct {
	Paid       bool   `json:"paid"`
	RefNumber  string `json:"ref_number"`
	CardNumber string `json:"card_number"`
	Amount     int64  `json:"amount"`
	Message    string `json:"message,omitempty"`
}

// CryptoPayment is the result of a crypto-invoice creation.
type CryptoPayment struct {
	PaymentID  string  `json:"payment_id"`
	PayAddress string  `json:"pay_address"`
	PayAmount  float64 `json:"pay_amount"`
	Status     string  `json:"status"`
}

// RedirectGateway is the redirect-based gateway seen by the bot handlers.
type RedirectGateway interface {
	Name() string
	RequestPayment(amount int64, callbackURL, description string) (*ZibalPayment, error)
	VerifyPayment(trackID int64) (*ZibalVerify, error)
}

// CryptoGateway is the crypto-invoice gateway seen by the bot handlers.
type CryptoGateway interface {
	Name() string
	CreatePayment(amountUSD float64, payCurrency, orderID, ipnCallbackURL string) (*CryptoPayment, error)
	PaymentStatus(paymentID string) (string, error)
}
