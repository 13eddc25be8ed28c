package integration

import (
	"context"
	"testing"
	"time"

	"github.com/yamori/ammoledger/internal/adapter/repository/postgres"
	"github.com/yamori/ammoledger/internal/domain"
	"github.com/yamori/ammoledger/internal/usecase"
	"github.com/yamori/ammoledger/tests/testutil"
)

func newLedgerStack(pool *testutil.TestDB) (*usecase.LedgerUseCase, *usecase.CorrectionUseCase, *usecase.BalanceUseCase, *usecase.IntegrityUseCase) {
	eventRepo := postgres.NewEventRepository(pool.Pool, 3*time.Second)
	typeRepo := postgres.NewTypeRepository(pool.Pool)
	txManager := postgres.NewTxManager(pool.Pool)
	retrier := postgres.NewRetrier()

	ledgerUC := usecase.NewLedgerUseCase(txManager, eventRepo, typeRepo, nil, nil, retrier)
	correctionUC := usecase.NewCorrectionUseCase(ledgerUC, eventRepo)
	balanceUC := usecase.NewBalanceUseCase(eventRepo, typeRepo, nil)
	integrityUC := usecase.NewIntegrityUseCase(eventRepo)

	return ledgerUC, correctionUC, balanceUC, integrityUC
}

func TestLedgerLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	ledgerUC, correctionUC, balanceUC, integrityUC := newLedgerStack(testDB)

	owner := testutil.GenerateID()
	ammoType := testDB.CreateTestType(ctx, owner, "rifle", ".308 Win")

	yesterday := time.Now().UTC().AddDate(0, 0, -1)

	acquisition, err := ledgerUC.Append(ctx, usecase.AppendEventInput{
		OwnerID:   owner,
		TypeID:    ammoType.ID,
		Kind:      domain.KindAcquisition,
		Quantity:  100,
		EventDate: yesterday,
	})
	if err != nil {
		t.Fatalf("failed to append acquisition: %v", err)
	}

	if acquisition.PreviousHash != nil {
		t.Errorf("first event must have no previous hash, got %q", *acquisition.PreviousHash)
	}

	consumption, err := ledgerUC.Append(ctx, usecase.AppendEventInput{
		OwnerID:   owner,
		TypeID:    ammoType.ID,
		Kind:      domain.KindConsumption,
		Quantity:  30,
		EventDate: yesterday,
	})
	if err != nil {
		t.Fatalf("failed to append consumption: %v", err)
	}

	if consumption.PreviousHash == nil || *consumption.PreviousHash != acquisition.RecordHash {
		t.Error("second event must link to the first event's hash")
	}

	if consumption.Quantity != -30 {
		t.Errorf("expected stored quantity -30, got %d", consumption.Quantity)
	}

	balance, err := balanceUC.CurrentBalance(ctx, owner, ammoType.ID)
	if err != nil {
		t.Fatalf("failed to get balance: %v", err)
	}

	if balance != 70 {
		t.Errorf("expected balance 70, got %d", balance)
	}

	// The acquisition was under-counted; amend it and re-derive.
	correction, err := correctionUC.Correct(ctx, usecase.CorrectEventInput{
		OwnerID:         owner,
		OriginalEventID: acquisition.ID,
		TargetQuantity:  120,
		Reason:          "supplier delivered an extra box",
	})
	if err != nil {
		t.Fatalf("failed to correct event: %v", err)
	}

	if correction.Quantity != 20 {
		t.Errorf("expected correction delta 20, got %d", correction.Quantity)
	}

	balance, err = balanceUC.CurrentBalance(ctx, owner, ammoType.ID)
	if err != nil {
		t.Fatalf("failed to get balance: %v", err)
	}

	if balance != 90 {
		t.Errorf("expected balance 90 after correction, got %d", balance)
	}

	stored, corrections, err := ledgerUC.GetEvent(ctx, owner, acquisition.ID)
	if err != nil {
		t.Fatalf("failed to get event: %v", err)
	}

	if stored.Quantity != 100 {
		t.Errorf("original event must be untouched, got quantity %d", stored.Quantity)
	}

	if len(corrections) != 1 || corrections[0].ID != correction.ID {
		t.Errorf("expected the correction to reference the original, got %v", corrections)
	}

	report, err := integrityUC.VerifyChain(ctx, owner)
	if err != nil {
		t.Fatalf("failed to verify chain: %v", err)
	}

	if !report.Valid {
		t.Error("expected a valid chain after append and correction")
	}

	if len(report.Results) != 3 {
		t.Errorf("expected 3 checked events, got %d", len(report.Results))
	}
}

func TestChainDetectsTampering(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	ledgerUC, _, _, integrityUC := newLedgerStack(testDB)

	owner := testutil.GenerateID()
	ammoType := testDB.CreateTestType(ctx, owner, "pistol", "9mm")

	yesterday := time.Now().UTC().AddDate(0, 0, -1)
	var second *domain.Event
	for i, quantity := range []int64{100, 30, 10} {
		kind := domain.KindAcquisition
		if i > 0 {
			kind = domain.KindConsumption
		}

		event, err := ledgerUC.Append(ctx, usecase.AppendEventInput{
			OwnerID:   owner,
			TypeID:    ammoType.ID,
			Kind:      kind,
			Quantity:  quantity,
			EventDate: yesterday,
		})
		if err != nil {
			t.Fatalf("failed to append event %d: %v", i, err)
		}

		if i == 1 {
			second = event
		}
	}

	// Falsify the middle event behind the trigger's back.
	if _, err := testDB.Pool.Exec(ctx, `ALTER TABLE ledger_events DISABLE TRIGGER ledger_events_immutable`); err != nil {
		t.Fatalf("failed to disable trigger: %v", err)
	}
	if _, err := testDB.Pool.Exec(ctx, `UPDATE ledger_events SET quantity = -5 WHERE id = $1`, second.ID); err != nil {
		t.Fatalf("failed to tamper with event: %v", err)
	}
	if _, err := testDB.Pool.Exec(ctx, `ALTER TABLE ledger_events ENABLE TRIGGER ledger_events_immutable`); err != nil {
		t.Fatalf("failed to re-enable trigger: %v", err)
	}

	report, err := integrityUC.VerifyChain(ctx, owner)
	if err != nil {
		t.Fatalf("failed to verify chain: %v", err)
	}

	if report.Valid {
		t.Fatal("expected tampering to be detected")
	}

	for _, result := range report.Results {
		if result.EventID == second.ID {
			if result.HashValid {
				t.Error("tampered event must fail hash validation")
			}
		} else if !result.Valid {
			t.Errorf("event %d should still be valid", result.EventID)
		}
	}
}
