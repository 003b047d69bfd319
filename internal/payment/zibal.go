package payment

import (
	"encoding/json"
	"fmt"
	"time"

	"accountshop/internal/pkg/httpclient"
)

const zibalBaseURL = "https://gateway.zibal.ir"

// ZibalClient implements the redirect gateway against the Zibal v1 API.
type ZibalClient struct {
	merchant string
	baseURL  string
	client   *httpclient.Client
}

func NewZibalClient(merchant string) *ZibalClient {
	return &ZibalClient{
		merchant: merchant,
		baseURL:  zibalBaseURL,
		client:   httpclient.New().WithTimeout(15 * time.Second),
	}
}

// WithBaseURL overrides the gateway URL, used by tests.
func (z *ZibalClient) WithBaseURL(url string) *ZibalClient {
	z.baseURL = url
	return z
}

func (z *ZibalClient) Name() string {
	return "zibal"
}

// RequestPayment creates a payment and returns the track ID plus the hosted
// payment page the user is redirected to.
func (z *ZibalClient) RequestPayment(amount int64, callbackURL, description string) (*ZibalPayment, error) {
	body := map[string]interface{}{
		"merchant":    z.merchant,
		"amount":      amount,
		"callbackUrl": callbackURL,
		"description": description,
	}
	resp, err := z.client.Post(z.baseURL+"/v1/request", body)
	if err != nil {
		return nil, fmt.Errorf("zibal request failed: %w", err)
	}

	var result struct {
		Result  int   `json:"result"`
		TrackID int64 `json:"trackId"`
	}
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, fmt.Errorf("zibal request parse error: %w", err)
	}
	if result.Result != 100 {
		return nil, fmt.Errorf("zibal request rejected: %s", zibalErrorMessage(result.Result))
	}

	return &ZibalPayment{
		TrackID:    result.TrackID,
		PaymentURL: fmt.Sprintf("%s/start/%d", z.baseURL, result.TrackID),
	}, nil
}

// VerifyPayment exchanges a track ID for paid status and reference number.
func (z *ZibalClient) VerifyPayment(trackID int64) (*ZibalVerify, error) {
	body := map[string]interface{}{
		"merchant": z.merchant,
		"trackId":  trackID,
	}
	resp, err := z.client.Post(z.baseURL+"/v1/verify", body)
	if err != nil {
		return nil, fmt.Errorf("zibal verify failed: %w", err)
	}

	var result struct {
		Result     int         `json:"result"`
		Amount     int64       `json:"amount"`
		RefNumber  json.Number `json:"refNumber"`
		CardNumber string      `json:"cardNumber"`
	}
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, fmt.Errorf("zibal verify parse error: %w", err)
	}

	if result.Result == 100 || result.Result == 201 {
		// 201 means already verified; callers dedupe on their side.
		return &ZibalVerify{
			Paid:       true,
			RefNumber:  result.RefNumber.String(),
			CardNumber: result.CardNumber,
			Amount:     result.Amount,
		}, nil
	}
	return &ZibalVerify{
		Paid:    false,
		Message: zibalErrorMessage(result.Result),
	}, nil
}

// zibalErrorMessage maps Zibal result codes to the gateway's documented
// Persian messages.
func zibalErrorMessage(code int) string {
	messages := map[int]string{
		102: "merchant یافت نشد",
		103: "merchant غیرفعال است",
		104: "merchant نامعتبر است",
		105: "amount باید بیشتر از 1,000 ریال باشد",
		106: "callbackUrl نامعتبر است",
		113: "amount مبلغ بیش از حد تراکنش است",
		201: "قبلاً تایید شده است",
		202: "سفارش پرداخت نشده یا ناموفق بوده است",
		203: "trackId نامعتبر است",
	}
	if msg, ok := messages[code]; ok {
		return msg
	}
	return fmt.Sprintf("خطای ناشناخته (کد %d)", code)
}
