package trading

import (
	"strconv"

	"github.com/ethereum/go-ethereum/common"

	apierrors "github.com/pavelkarev/fourmeme-trader-mcp-server/internal/errors"
)

// MaxSlippagePct caps the slippage a swap tool accepts. Anything above this
// is almost certainly a fat-fingered input, not a trading decision.
const MaxSlippagePct = 50.0

// DefaultSlippagePct is used when a swap request leaves slippage unset.
// Meme tokens routinely carry transfer fees, so the default is generous.
const DefaultSlippagePct = 10.0

func validateTokenAddress(addr string) (common.Address, error) {
	if addr == "" {
		return common.Address{}, apierrors.NewValidationError("token_address", addr, "token address is required")
	}
	if !common.IsHexAddress(addr) {
		return common.Address{}, apierrors.NewValidationError("token_address", addr, "must be a 0x-prefixed 40-character hex address")
	}
	return common.HexToAddress(addr), nil
}

func validateAmount(field string, amount float64) error {
	if amount <= 0 {
		return apierrors.NewValidationError(field, strconv.FormatFloat(amount, 'f', -1, 64), "must be greater than zero")
	}
	return nil
}

// normalizeSlippage applies the default and bounds-checks the slippage.
func normalizeSlippage(pct float64) (float64, error) {
	if pct == 0 {
		return DefaultSlippagePct, nil
	}
	if pct < 0 || pct > MaxSlippagePct {
		return 0, apierrors.NewValidationError("slippage_pct", strconv.FormatFloat(pct, 'f', -1, 64), "must be between 0 and 50")
	}
	return pct, nil
}
