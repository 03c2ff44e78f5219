package storage

import (
	"context"
	"testing"
)

func TestCreditsCreatesDefaultRow(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	bal, err := store.Credits(ctx, "new-user")
	if err != nil {
		t.Fatalf("Credits: %v", err)
	}
	if bal.Credits != DefaultCredits || bal.TotalUsed != 0 {
		t.Fatalf("expected default balance, got %+v", bal)
	}

	// The row must have been persisted, not re-initialized on every read.
	if ok, err := store.ConsumeCredit(ctx, "new-user"); err != nil || !ok {
		t.Fatalf("ConsumeCredit: ok=%v err=%v", ok, err)
	}
	bal, err = store.Credits(ctx, "new-user")
	if err != nil {
		t.Fatalf("Credits after consume: %v", err)
	}
	if bal.Credits != DefaultCredits-1 || bal.TotalUsed != 1 {
		t.Fatalf("expected decremented balance, got %+v", bal)
	}
}

func TestConsumeCreditNeverGoesNegative(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < DefaultCredits; i++ {
		ok, err := store.ConsumeCredit(ctx, "heavy-user")
		if err != nil {
			t.Fatalf("ConsumeCredit %d: %v", i, err)
		}
		if !ok {
			t.Fatalf("consume %d should succeed", i)
		}
	}

	ok, err := store.ConsumeCredit(ctx, "heavy-user")
	if err != nil {
		t.Fatalf("ConsumeCredit past zero: %v", err)
	}
	if ok {
		t.Fatal("consume past zero should fail")
	}

	bal, err := store.Credits(ctx, "heavy-user")
	if err != nil {
		t.Fatalf("Credits: %v", err)
	}
	if bal.Credits != 0 {
		t.Errorf("balance should be exactly zero, got %d", bal.Credits)
	}
	if bal.TotalUsed != DefaultCredits {
		t.Errorf("total used should be %d, got %d", DefaultCredits, bal.TotalUsed)
	}
}

func TestConsumeCreditBeforeFirstRead(t *testing.T) {
	store := openTestStore(t)

	// Legal without a prior Credits call: the row is created internally.
	ok, err := store.ConsumeCredit(context.Background(), "fresh")
	if err != nil {
		t.Fatalf("ConsumeCredit: %v", err)
	}
	if !ok {
		t.Fatal("fresh user should have credits to spend")
	}
}

func TestAddCredits(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	bal, err := store.AddCredits(ctx, "topup-user", 5)
	if err != nil {
		t.Fatalf("AddCredits: %v", err)
	}
	if bal.Credits != DefaultCredits+5 {
		t.Errorf("expected %d credits, got %d", DefaultCredits+5, bal.Credits)
	}

	if _, err := store.AddCredits(ctx, "topup-user", 0); err == nil {
		t.Error("non-positive amount should be rejected")
	}
	if _, err := store.AddCredits(ctx, "topup-user", -3); err == nil {
		t.Error("negative amount should be rejected")
	}
}
