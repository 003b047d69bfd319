package payment

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNOWPaymentsCreatePayment(t *testing.T) {
	var gotKey string
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/payment" {
			t.Errorf("path = %q", r.URL.Path)
		}
		gotKey = r.Header.Get("x-api-key")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"payment_id": 5077125051,
			"payment_status": "waiting",
			"pay_address": "TJaK1FhB1XyvXT7aZkQ8HcGMMZtcAX8NLX",
			"pay_amount": 165.652609
		}`))
	}))
	defer srv.Close()

	client := NewNOWPaymentsClient("secret-key").WithBaseURL(srv.URL)
	result, err := client.CreatePayment(5.0, "trx", "ORD-1", "https://shop.example/payment/crypto/ipn")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if result.PaymentID != "5077125051" {
		t.Errorf("payment id = %q", result.PaymentID)
	}
	if result.PayAddress != "TJaK1FhB1XyvXT7aZkQ8HcGMMZtcAX8NLX" {
		t.Errorf("address = %q", result.PayAddress)
	}
	if result.PayAmount != 165.652609 {
		t.Errorf("amount = %v", result.PayAmount)
	}
	if gotKey != "secret-key" {
		t.Errorf("api key header = %q", gotKey)
	}
	if gotBody["price_currency"] != "usd" || gotBody["pay_currency"] != "trx" {
		t.Errorf("body = %v", gotBody)
	}
}

func TestNOWPaymentsCreatePaymentNoAddress(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"payment_id": 1, "payment_status": "waiting"}`))
	}))
	defer srv.Close()

	client := NewNOWPaymentsClient("k").WithBaseURL(srv.URL)
	if _, err := client.CreatePayment(5.0, "btc", "ORD-2", "cb"); err == nil {
		t.Fatal("missing address ignored, want error")
	}
}

func TestNOWPaymentsPaymentStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/payment/5077125051" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"payment_id": 5077125051, "payment_status": "finished"}`))
	}))
	defer srv.Close()

	client := NewNOWPaymentsClient("k").WithBaseURL(srv.URL)
	status, err := client.PaymentStatus("5077125051")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status != "finished" {
		t.Errorf("status = %q, want finished", status)
	}
}
