// Package ledger reads the aggregate report count from the contract's public ledger state.
package ledger

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	slogctx "github.com/veqryn/slog-context"

	"github.com/openkcm/report-wallet/internal/serviceerr"
	"github.com/openkcm/report-wallet/internal/wallet"
)

const TotalReportsField = "totalReports"

type Reader struct {
	contractAddress string
}

func NewReader(contractAddress string) *Reader {
	return &Reader{contractAddress: contractAddress}
}

func (r *Reader) ContractAddress() string {
	return r.contractAddress
}

// Query returns the total number of reports, or ErrReadQueryFailed.
func (r *Reader) Query(ctx context.Context, s wallet.Session) (decimal.Decimal, error) {
	if s == nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %w", serviceerr.ErrReadQueryFailed, serviceerr.ErrNoActiveSession)
	}

	state, err := s.ContractState(ctx, r.contractAddress)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %w", serviceerr.ErrReadQueryFailed, err)
	}

	total, err := DecodeCount(state[TotalReportsField])
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: decoding %s: %w", serviceerr.ErrReadQueryFailed, TotalReportsField, err)
	}

	return total, nil
}

// GetTotalReports is Query with every failure read as zero reports.
// Callers that must tell "none" from "unknown" use Query instead.
func (r *Reader) GetTotalReports(ctx context.Context, s wallet.Session) decimal.Decimal {
	total, err := r.Query(ctx, s)
	if err != nil {
		slogctx.Error(ctx, "Get total reports error", "contract_address", r.contractAddress, "error", err)
		return decimal.Zero
	}
	return total
}
