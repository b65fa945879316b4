package trading

import (
	"math/big"
	"testing"
)

func TestBnbToWei(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1, "1000000000000000000"},
		{0.1, "100000000000000000"},
		{0.001, "1000000000000000"},
		{0, "0"},
	}
	for _, tt := range tests {
		if got := bnbToWei(tt.in); got.String() != tt.want {
			t.Errorf("bnbToWei(%v) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestWeiToBNB(t *testing.T) {
	wei, _ := new(big.Int).SetString("1500000000000000000", 10)
	if got := weiToBNB(wei); got != "1.5" {
		t.Errorf("weiToBNB = %q, want 1.5", got)
	}
	if got := weiToBNB(big.NewInt(0)); got != "0" {
		t.Errorf("weiToBNB(0) = %q, want 0", got)
	}
}

func TestTokensToRaw(t *testing.T) {
	if got := tokensToRaw(2.5, 18); got.String() != "2500000000000000000" {
		t.Errorf("tokensToRaw(2.5, 18) = %s", got)
	}
	if got := tokensToRaw(100, 6); got.String() != "100000000" {
		t.Errorf("tokensToRaw(100, 6) = %s", got)
	}
}

func TestRawToDecimal(t *testing.T) {
	raw, _ := new(big.Int).SetString("2500000000000000000", 10)
	if got := rawToDecimal(raw, 18); got != "2.5" {
		t.Errorf("rawToDecimal = %q, want 2.5", got)
	}
}

func TestApplySlippage(t *testing.T) {
	tests := []struct {
		out  int64
		pct  float64
		want int64
	}{
		{1000000, 10, 900000},
		{1000000, 0, 1000000},
		{1000000, 50, 500000},
		{1000, 0.5, 995},
	}
	for _, tt := range tests {
		got := applySlippage(big.NewInt(tt.out), tt.pct)
		if got.Int64() != tt.want {
			t.Errorf("applySlippage(%d, %v) = %d, want %d", tt.out, tt.pct, got.Int64(), tt.want)
		}
	}
}

func TestApplySlippageLargeAmount(t *testing.T) {
	// 10^24 raw units at 10% slippage; big.Float carries enough precision
	// for the magnitudes the router returns.
	out := new(big.Int).Exp(big.NewInt(10), big.NewInt(24), nil)
	want, _ := new(big.Int).SetString("900000000000000000000000", 10)
	if got := applySlippage(out, 10); got.Cmp(want) != 0 {
		t.Errorf("applySlippage = %s, want %s", got, want)
	}
}
