package trading

import (
	"math/big"
)

var weiPerBNB = new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil))

// bnbToWei converts a BNB amount to wei, truncating sub-wei precision.
func bnbToWei(amount float64) *big.Int {
	wei, _ := new(big.Float).Mul(big.NewFloat(amount), weiPerBNB).Int(nil)
	return wei
}

// weiToBNB formats a wei amount as a decimal BNB string.
func weiToBNB(wei *big.Int) string {
	return rawToDecimal(wei, 18)
}

// tokensToRaw converts a human token amount to raw units for the given
// decimals, truncating sub-unit precision.
func tokensToRaw(amount float64, decimals uint8) *big.Int {
	scale := new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil))
	raw, _ := new(big.Float).Mul(big.NewFloat(amount), scale).Int(nil)
	return raw
}

// rawToDecimal formats a raw integer amount as a decimal string for the given
// decimals.
func rawToDecimal(raw *big.Int, decimals uint8) string {
	scale := new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil))
	value := new(big.Float).Quo(new(big.Float).SetInt(raw), scale)
	return value.Text('f', -1)
}

// applySlippage scales an expected output down by slippagePct percent,
// truncating toward zero. This is the minimum-out bound passed to the router.
func applySlippage(out *big.Int, slippagePct float64) *big.Int {
	factor := big.NewFloat(1 - slippagePct/100)
	min, _ := new(big.Float).Mul(new(big.Float).SetInt(out), factor).Int(nil)
	return min
}
