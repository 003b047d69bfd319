package repository

import (
	"testing"

	"accountshop/internal/models"
)

func TestMarkZibalSuccessIdempotent(t *testing.T) {
	db := newTestDB(t)
	repo := NewPaymentRepository(db)

	tx := &models.ZibalTransaction{UserID: 42, TrackID: 555, Amount: 50000, Status: models.ZibalStatusPending}
	if err := repo.CreateZibal(tx); err != nil {
		t.Fatalf("create: %v", err)
	}

	settled, err := repo.MarkZibalSuccess(555, "ref-1", "6219-****")
	if err != nil || !settled {
		t.Fatalf("first settle = (%v, %v), want (true, nil)", settled, err)
	}

	// A replayed callback finds the row already settled.
	settled, err = repo.MarkZibalSuccess(555, "ref-1", "6219-****")
	if err != nil {
		t.Fatalf("second settle: %v", err)
	}
	if settled {
		t.Error("second settle won, want guarded")
	}

	reloaded, err := repo.FindZibalByTrackID(555)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if reloaded.Status != models.ZibalStatusSuccess || reloaded.ReferenceNumber != "ref-1" {
		t.Errorf("reloaded = %+v", reloaded)
	}
	if reloaded.PaidAt == 0 {
		t.Error("paid_at not set")
	}
}

func TestMarkCryptoFinishedIdempotent(t *testing.T) {
	repo := NewPaymentRepository(newTestDB(t))

	tx := &models.CryptoTransaction{
		UserID: 42, PaymentID: "np-1", OrderID: "ORD-1",
		AmountUSD: 2.5, AmountToman: 250000, Currency: "trx",
		PaymentStatus: models.CryptoStatusWaiting,
	}
	if err := repo.CreateCrypto(tx); err != nil {
		t.Fatalf("create: %v", err)
	}

	settled, err := repo.MarkCryptoFinished("np-1")
	if err != nil || !settled {
		t.Fatalf("first settle = (%v, %v), want (true, nil)", settled, err)
	}
	settled, err = repo.MarkCryptoFinished("np-1")
	if err != nil {
		t.Fatalf("second settle: %v", err)
	}
	if settled {
		t.Error("second settle won, want guarded")
	}

	reloaded, _ := repo.FindCryptoByPaymentID("np-1")
	if reloaded.PaymentStatus != models.CryptoStatusFinished {
		t.Errorf("status = %q, want finished", reloaded.PaymentStatus)
	}
}

func TestFindCryptoByOrderID(t *testing.T) {
	repo := NewPaymentRepository(newTestDB(t))

	_ = repo.CreateCrypto(&models.CryptoTransaction{
		UserID: 42, PaymentID: "np-1", OrderID: "ORD-1",
		PaymentStatus: models.CryptoStatusWaiting,
	})

	tx, err := repo.FindCryptoByOrderID("ORD-1")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if tx.PaymentID != "np-1" || tx.UserID != 42 {
		t.Errorf("tx = %+v", tx)
	}
	if _, err := repo.FindCryptoByOrderID("ORD-missing"); err == nil {
		t.Error("unknown order id found, want error")
	}
}

func TestGatewayHistoryByUser(t *testing.T) {
	repo := NewPaymentRepository(newTestDB(t))

	_ = repo.CreateZibal(&models.ZibalTransaction{UserID: 42, TrackID: 1, Amount: 10000, Status: models.ZibalStatusPending})
	_ = repo.CreateZibal(&models.ZibalTransaction{UserID: 42, TrackID: 2, Amount: 20000, Status: models.ZibalStatusSuccess})
	_ = repo.CreateZibal(&models.ZibalTransaction{UserID: 7, TrackID: 3, Amount: 30000, Status: models.ZibalStatusPending})
	_ = repo.CreateCrypto(&models.CryptoTransaction{UserID: 42, PaymentID: "p1", OrderID: "o1", AmountUSD: 3, PaymentStatus: models.CryptoStatusWaiting})

	zibals, err := repo.ZibalByUser(42, 10)
	if err != nil {
		t.Fatalf("zibal by user: %v", err)
	}
	if len(zibals) != 2 {
		t.Errorf("zibal rows = %d, want 2 (other users excluded)", len(zibals))
	}

	cryptos, err := repo.CryptoByUser(42, 10)
	if err != nil {
		t.Fatalf("crypto by user: %v", err)
	}
	if len(cryptos) != 1 {
		t.Errorf("crypto rows = %d, want 1", len(cryptos))
	}

	none, err := repo.CryptoByUser(999, 10)
	if err != nil || len(none) != 0 {
		t.Errorf("unknown user rows = (%d, %v), want (0, nil)", len(none), err)
	}
}

func TestGatewayStats(t *testing.T) {
	repo := NewPaymentRepository(newTestDB(t))

	_ = repo.CreateZibal(&models.ZibalTransaction{UserID: 1, TrackID: 1, Amount: 10000, Status: models.ZibalStatusPending})
	_ = repo.CreateZibal(&models.ZibalTransaction{UserID: 1, TrackID: 2, Amount: 20000, Status: models.ZibalStatusPending})
	if _, err := repo.MarkZibalSuccess(2, "r", "c"); err != nil {
		t.Fatalf("settle: %v", err)
	}
	_ = repo.CreateCrypto(&models.CryptoTransaction{UserID: 1, PaymentID: "p1", OrderID: "o1", AmountUSD: 3, PaymentStatus: models.CryptoStatusWaiting})

	stats, err := repo.Stats()
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.ZibalPaidCount != 1 || stats.ZibalPaidAmount != 20000 {
		t.Errorf("zibal paid = %d/%d, want 1/20000", stats.ZibalPaidCount, stats.ZibalPaidAmount)
	}
	if stats.ZibalPendingCount != 1 {
		t.Errorf("zibal pending = %d, want 1", stats.ZibalPendingCount)
	}
	if stats.CryptoWaiting != 1 {
		t.Errorf("crypto waiting = %d, want 1", stats.CryptoWaiting)
	}
}
