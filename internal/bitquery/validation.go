package bitquery

import (
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	apierrors "github.com/pavelkarev/fourmeme-trader-mcp-server/internal/errors"
)

// MaxLimit caps the number of rows a single query can request.
const MaxLimit = 100

// ValidateTokenAddress checks that addr is a well-formed hex contract address.
func ValidateTokenAddress(addr string) error {
	if addr == "" {
		return apierrors.NewValidationError("token_address", addr, "token address is required")
	}
	if !common.IsHexAddress(addr) {
		return apierrors.NewValidationError("token_address", addr, "must be a 0x-prefixed 40-character hex address")
	}
	return nil
}

// normalizeLimit applies the default and bounds-checks the requested row count.
func normalizeLimit(limit, def int) (int, error) {
	if limit == 0 {
		return def, nil
	}
	if limit < 0 || limit > MaxLimit {
		return 0, apierrors.NewValidationError("limit", strconv.Itoa(limit), "must be between 1 and 100")
	}
	return limit, nil
}

// normalizeAddress lowercases an address for use in cache keys so mixed-case
// checksummed input hits the same entry.
func normalizeAddress(addr string) string {
	return strings.ToLower(addr)
}
