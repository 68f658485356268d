package model

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// Decimals is the fixed-point scale of every token amount.
const Decimals = 18

var unit = new(big.Int).Exp(big.NewInt(10), big.NewInt(Decimals), nil)

// Tokens scales a whole token count to base units.
func Tokens(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), unit)
}

// FormatAmount renders base units as a decimal token string.
func FormatAmount(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return decimal.NewFromBigInt(v, -Decimals).String()
}

// ParseAmount parses a decimal token string ("12.5") into base units.
func ParseAmount(s string) (*big.Int, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, Revert(ErrInvalidArgument, "malformed amount")
	}
	if d.IsNegative() {
		return nil, Revert(ErrInvalidArgument, "negative amount")
	}
	scaled := d.Shift(Decimals)
	if !scaled.Equal(scaled.Truncate(0)) {
		return nil, Revert(ErrInvalidArgument, "amount has more than 18 decimals")
	}
	return scaled.BigInt(), nil
}

// Copy returns an independent copy of v, treating nil as zero.
func Copy(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(v)
}
