package transfer

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// TokenDecimals is the fixed precision of the bridged stablecoin.
const TokenDecimals int32 = 6

// ParseAmount converts a user-facing decimal string ("12.5") to the integer
// smallest unit for a token with the given decimals. Values with more
// fractional digits than the token supports are rejected, never rounded.
func ParseAmount(s string, decimals int32) (*big.Int, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, &InvalidRequestError{Field: "amount", Reason: "is not a decimal number"}
	}
	if !d.IsPositive() {
		return nil, &InvalidRequestError{Field: "amount", Reason: "must be greater than zero"}
	}
	units := d.Shift(decimals)
	if !units.Equal(units.Truncate(0)) {
		return nil, &InvalidRequestError{Field: "amount", Reason: fmt.Sprintf("has more than %d decimal places", decimals)}
	}
	return units.BigInt(), nil
}

// FormatAmount renders smallest-unit amount as a decimal string.
func FormatAmount(amount *big.Int, decimals int32) string {
	return decimal.NewFromBigInt(amount, -decimals).String()
}

// MaxFee is the depositForBurn fee cap: 99% of the amount.
func MaxFee(amount *big.Int) *big.Int {
	fee := new(big.Int).Div(amount, big.NewInt(100))
	return fee.Sub(amount, fee)
}

// EncodeMintRecipient left-pads a 20-byte address into the 32-byte
// recipient field of a burn message.
func EncodeMintRecipient(addr common.Address) [32]byte {
	return common.BytesToHash(addr.Bytes())
}

// MinGasWei converts a native-unit threshold ("0.01") to wei.
func MinGasWei(threshold string) (*big.Int, error) {
	d, err := decimal.NewFromString(threshold)
	if err != nil {
		return nil, fmt.Errorf("invalid gas threshold %q: %w", threshold, err)
	}
	return d.Shift(18).BigInt(), nil
}
