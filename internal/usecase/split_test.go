package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"

	domainErrors "github.com/mobolade/chowpay/internal/domain/errors"
	"github.com/mobolade/chowpay/internal/domain/model"
	"github.com/mobolade/chowpay/internal/test"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newSplitFixture(orders *test.OrderRepositoryStub, ledger *test.LedgerRepositoryStub) *SplitUseCase {
	return NewSplitUseCase(orders, ledger,
		decimal.RequireFromString("0.04"), decimal.RequireFromString("0.06"), testLogger())
}

func vendorOrder(reference string, agentID int64) *model.Order {
	return &model.Order{
		ID:              1,
		Reference:       reference,
		SellerType:      model.SellerTypeVendor,
		DeliveryAgentID: &agentID,
		PaymentStatus:   model.PaymentStatusPending,
	}
}

func TestProcessChargeSuccess(t *testing.T) {
	order := vendorOrder("ord_1", 7)
	orders := test.NewOrderRepositoryStub(order)
	ledger := test.NewLedgerRepositoryStub()
	uc := newSplitFixture(orders, ledger)

	if err := uc.ProcessChargeSuccess(context.Background(), "ord_1", 500000); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got, want := ledger.Balance(7, model.WalletTypeFood).String(), "4500"; got != want {
		t.Errorf("food balance = %s, want %s", got, want)
	}
	if got, want := ledger.Balance(7, model.WalletTypeEarnings).String(), "300"; got != want {
		t.Errorf("earnings balance = %s, want %s", got, want)
	}
	if order.PaymentStatus != model.PaymentStatusPaid {
		t.Errorf("order status = %s, want paid", order.PaymentStatus)
	}
	if order.SplitDetails == nil {
		t.Fatal("split details not recorded on order")
	}
	if got, want := order.SplitDetails.PlatformFee.String(), "200"; got != want {
		t.Errorf("platform fee = %s, want %s", got, want)
	}
}

func TestProcessChargeSuccessOrderNotFound(t *testing.T) {
	uc := newSplitFixture(test.NewOrderRepositoryStub(), test.NewLedgerRepositoryStub())

	err := uc.ProcessChargeSuccess(context.Background(), "missing", 1000)
	if !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestProcessChargeSuccessCafeteriaSkipped(t *testing.T) {
	agentID := int64(7)
	order := &model.Order{Reference: "ord_caf", SellerType: model.SellerTypeCafeteria, DeliveryAgentID: &agentID}
	ledger := test.NewLedgerRepositoryStub()
	uc := newSplitFixture(test.NewOrderRepositoryStub(order), ledger)

	if err := uc.ProcessChargeSuccess(context.Background(), "ord_caf", 500000); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ledger.Calls) != 0 {
		t.Errorf("ledger touched for cafeteria order: %d calls", len(ledger.Calls))
	}
}

func TestProcessChargeSuccessNoAgent(t *testing.T) {
	order := &model.Order{Reference: "ord_2", SellerType: model.SellerTypeVendor}
	uc := newSplitFixture(test.NewOrderRepositoryStub(order), test.NewLedgerRepositoryStub())

	err := uc.ProcessChargeSuccess(context.Background(), "ord_2", 500000)
	if !errors.Is(err, domainErrors.ErrNoAgentAssigned) {
		t.Fatalf("error = %v, want ErrNoAgentAssigned", err)
	}
}

func TestProcessChargeSuccessRedelivery(t *testing.T) {
	order := vendorOrder("ord_3", 7)
	ledger := test.NewLedgerRepositoryStub()
	uc := newSplitFixture(test.NewOrderRepositoryStub(order), ledger)

	if err := uc.ProcessChargeSuccess(context.Background(), "ord_3", 500000); err != nil {
		t.Fatalf("first delivery: %v", err)
	}
	if err := uc.ProcessChargeSuccess(context.Background(), "ord_3", 500000); err != nil {
		t.Fatalf("redelivery: %v", err)
	}

	if len(ledger.AppliedSplits) != 1 {
		t.Errorf("split applied %d times, want 1", len(ledger.AppliedSplits))
	}
	if got, want := ledger.Balance(7, model.WalletTypeFood).String(), "4500"; got != want {
		t.Errorf("food balance after redelivery = %s, want %s", got, want)
	}
}

func TestProcessChargeSuccessConcurrentRace(t *testing.T) {
	order := vendorOrder("ord_4", 7)
	ledger := test.NewLedgerRepositoryStub()
	ledger.ApplyPaymentSplitFn = func(context.Context, *model.Order, int64, model.Split) error {
		return domainErrors.ErrAlreadyProcessed
	}
	uc := newSplitFixture(test.NewOrderRepositoryStub(order), ledger)

	if err := uc.ProcessChargeSuccess(context.Background(), "ord_4", 500000); err != nil {
		t.Fatalf("race loser should be a no-op, got %v", err)
	}
}

func TestComputeSplit(t *testing.T) {
	uc := newSplitFixture(test.NewOrderRepositoryStub(), test.NewLedgerRepositoryStub())

	tests := []struct {
		total    string
		food     string
		fee      string
		earnings string
	}{
		{"5000", "4500", "200", "300"},
		{"100.01", "90.01", "4", "6"},
		{"33.33", "30.01", "1.33", "1.99"},
		{"0.01", "0.01", "0", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.total, func(t *testing.T) {
			split := uc.ComputeSplit(decimal.RequireFromString(tt.total))
			if got := split.Food.String(); got != tt.food {
				t.Errorf("food = %s, want %s", got, tt.food)
			}
			if got := split.PlatformFee.String(); got != tt.fee {
				t.Errorf("fee = %s, want %s", got, tt.fee)
			}
			if got := split.AgentEarnings.String(); got != tt.earnings {
				t.Errorf("earnings = %s, want %s", got, tt.earnings)
			}
			sum := split.Food.Add(split.PlatformFee).Add(split.AgentEarnings)
			if !sum.Equal(split.Total) {
				t.Errorf("parts sum to %s, want %s", sum, split.Total)
			}
		})
	}
}
