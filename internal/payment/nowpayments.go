package payment

import (
	"encoding/json"
	"fmt"
	"time"

	"accountshop/internal/pkg/httpclient"
)

const nowPaymentsBaseURL = "https://api.nowpayments.io/v1"

// NOWPaymentsClient implements the crypto-invoice gateway.
type NOWPaymentsClient struct {
	baseURL string
	client  *httpclient.Client
}

func NewNOWPaymentsClient(apiKey string) *NOWPaymentsClient {
	return &NOWPaymentsClient{
		baseURL: nowPaymentsBaseURL,
		client: httpclient.New().
			WithTimeout(15*time.Second).
			WithHeader("x-api-key", apiKey),
	}
}

// WithBaseURL overrides the gateway URL, used by tests.
func (n *NOWPaymentsClient) WithBaseURL(url string) *NOWPaymentsClient {
	n.baseURL = url
	return n
}

func (n *NOWPaymentsClient) Name() string {
	return "nowpayments"
}

// CreatePayment requests a deposit address for the given USD amount in the
// chosen currency.
func (n *NOWPaymentsClient) CreatePayment(amountUSD float64, payCurrency, orderID, ipnCallbackURL string) (*CryptoPayment, error) {
	body := map[string]interface{}{
		"price_amount":     amountUSD,
		"price_currency":   "usd",
		"pay_currency":     payCurrency,
		"order_id":         orderID,
		"ipn_callback_url": ipnCallbackURL,
	}
	resp, err := n.client.Post(n.baseURL+"/payment", body)
	if err != nil {
		return nil, fmt.Errorf("nowpayments create failed: %w", err)
	}

	var result struct {
		PaymentID     json.Number `json:"payment_id"`
		PayAddress    string      `json:"pay_address"`
		PayAmount     float64     `json:"pay_amount"`
		PaymentStatus string      `json:"payment_status"`
	}
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, fmt.Errorf("nowpayments parse error: %w", err)
	}
	if result.PayAddress == "" {
		return nil, fmt.Errorf("nowpayments returned no pay address")
	}

	return &CryptoPayment{
		PaymentID:  result.PaymentID.String(),
		PayAddress: result.PayAddress,
		PayAmount:  result.PayAmount,
		Status:     result.PaymentStatus,
	}, nil
}

// PaymentStatus polls the payment lifecycle status: waiting, confirming,
// confirmed, sending, partially_paid, finished, failed, refunded or expired.
func (n *NOWPaymentsClient) PaymentStatus(paymentID string) (string, error) {
	resp, err := n.client.Get(n.baseURL + "/payment/" + paymentID)
	if err != nil {
		return "", fmt.Errorf("nowpayments status failed: %w", err)
	}

	var result struct {
		PaymentStatus string `json:"payment_status"`
	}
	if err := json.Unmarshal(resp, &result); err != nil {
		return "", fmt.Errorf("nowpayments status parse error: %w", err)
	}
	if result.PaymentStatus == "" {
		return "", fmt.Errorf("nowpayments returned no status")
	}
	return result.PaymentStatus, nil
}
