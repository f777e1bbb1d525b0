package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/shopbooks/backend/internal/domain/inventory"
	"github.com/shopbooks/backend/internal/domain/ledger"
	"github.com/shopbooks/backend/internal/domain/shared"
)

// AuditService replays the append-only logs and checks them against the
// cached balances. It never repairs anything; it only reports drift.
type AuditService struct {
	scope  TransactionScope
	logger *zap.Logger
}

// NewAuditService creates a new audit service
func NewAuditService(scope TransactionScope, logger *zap.Logger) *AuditService {
	return &AuditService{scope: scope, logger: logger}
}

// SnapshotMismatch is one bank ledger row whose recorded BalanceAfter does
// not match the replayed running balance.
type SnapshotMismatch struct {
	TransactionID   uuid.UUID       `json:"transaction_id"`
	ExpectedBalance decimal.Decimal `json:"expected_balance"`
	RecordedBalance decimal.Decimal `json:"recorded_balance"`
}

// BankReconciliation is the result of replaying the bank ledger
type BankReconciliation struct {
	AccountID        uuid.UUID          `json:"account_id"`
	OpeningBalance   decimal.Decimal    `json:"opening_balance"`
	ComputedBalance  decimal.Decimal    `json:"computed_balance"`
	RecordedBalance  decimal.Decimal    `json:"recorded_balance"`
	Difference       decimal.Decimal    `json:"difference"`
	TransactionCount int                `json:"transaction_count"`
	Mismatches       []SnapshotMismatch `json:"mismatches"`
	Consistent       bool               `json:"consistent"`
}

// ReconcileBank replays every bank transaction in insertion order from the
// system bank account's opening balance and verifies both the per-row
// BalanceAfter snapshots and the account's cached CurrentBalance.
func (s *AuditService) ReconcileBank(ctx context.Context, tenantID uuid.UUID) (*BankReconciliation, error) {
	var report *BankReconciliation
	err := s.scope.Execute(ctx, func(repos Repositories) error {
		account, err := repos.Accounts().FindOrCreateSystem(ctx, tenantID, ledger.AccountTypeBank)
		if err != nil {
			return err
		}
		txs, err := repos.BankTransactions().FindAllInOrder(ctx, tenantID)
		if err != nil {
			return err
		}

		report = &BankReconciliation{
			AccountID:        account.ID,
			OpeningBalance:   account.OpeningBalance,
			RecordedBalance:  account.CurrentBalance,
			TransactionCount: len(txs),
			Mismatches:       []SnapshotMismatch{},
		}

		running := account.OpeningBalance
		for i := range txs {
			tx := &txs[i]
			running = running.Add(tx.SignedAmount())
			if !running.Sub(tx.BalanceAfter).Abs().LessThanOrEqual(ledger.DefaultBalanceTolerance) {
				report.Mismatches = append(report.Mismatches, SnapshotMismatch{
					TransactionID:   tx.ID,
					ExpectedBalance: running,
					RecordedBalance: tx.BalanceAfter,
				})
			}
		}

		report.ComputedBalance = running
		report.Difference = account.CurrentBalance.Sub(running)
		report.Consistent = len(report.Mismatches) == 0 &&
			report.Difference.Abs().LessThanOrEqual(ledger.DefaultBalanceTolerance)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !report.Consistent {
		s.logger.Warn("bank ledger reconciliation failed",
			zap.String("tenant_id", tenantID.String()),
			zap.String("difference", report.Difference.String()),
			zap.Int("mismatches", len(report.Mismatches)))
	}
	return report, nil
}

// StockReconciliation is the result of replaying one product's movement log
type StockReconciliation struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ComputedQty decimal.Decimal `json:"computed_qty"`
	RecordedQty decimal.Decimal `json:"recorded_qty"`
	ComputedAvg decimal.Decimal `json:"computed_avg"`
	RecordedAvg decimal.Decimal `json:"recorded_avg"`
	EntryCount  int             `json:"entry_count"`
	Consistent  bool            `json:"consistent"`
}

// ReconcileStock replays a product's stock entries in insertion order,
// recomputing quantity and moving weighted-average cost, and compares the
// result against the cached summary.
func (s *AuditService) ReconcileStock(ctx context.Context, tenantID, productID uuid.UUID) (*StockReconciliation, error) {
	var report *StockReconciliation
	err := s.scope.Execute(ctx, func(repos Repositories) error {
		summary, err := repos.StockSummaries().FindByProduct(ctx, tenantID, productID)
		if err != nil {
			return err
		}
		entries, err := repos.StockEntries().FindByProductInOrder(ctx, tenantID, productID)
		if err != nil {
			return err
		}

		replay, err := inventory.NewStockSummary(tenantID, productID)
		if err != nil {
			return err
		}
		for i := range entries {
			entry := &entries[i]
			var price *decimal.Decimal
			if entry.IsInbound() {
				p := entry.PurchasePrice
				price = &p
			}
			if err := replay.Apply(entry.Quantity, price); err != nil {
				return err
			}
		}

		report = &StockReconciliation{
			ProductID:   productID,
			ComputedQty: replay.TotalQty,
			RecordedQty: summary.TotalQty,
			ComputedAvg: replay.AvgPurchasePrice,
			RecordedAvg: summary.AvgPurchasePrice,
			EntryCount:  len(entries),
		}
		report.Consistent = report.ComputedQty.Equal(report.RecordedQty) &&
			report.ComputedAvg.Sub(report.RecordedAvg).Abs().LessThanOrEqual(ledger.DefaultBalanceTolerance)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !report.Consistent {
		s.logger.Warn("stock reconciliation failed",
			zap.String("tenant_id", tenantID.String()),
			zap.String("product_id", productID.String()))
	}
	return report, nil
}

// ReconcileAllStock replays every product summary the tenant has
func (s *AuditService) ReconcileAllStock(ctx context.Context, tenantID uuid.UUID) ([]StockReconciliation, error) {
	var productIDs []uuid.UUID
	err := s.scope.Execute(ctx, func(repos Repositories) error {
		filter := shared.DefaultFilter()
		filter.PageSize = 10000
		summaries, err := repos.StockSummaries().FindAllForTenant(ctx, tenantID, filter)
		if err != nil {
			return err
		}
		for i := range summaries {
			productIDs = append(productIDs, summaries[i].ProductID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	reports := make([]StockReconciliation, 0, len(productIDs))
	for _, pid := range productIDs {
		report, err := s.ReconcileStock(ctx, tenantID, pid)
		if err != nil {
			return nil, err
		}
		reports = append(reports, *report)
	}
	return reports, nil
}
