// Package unit converts between decimal strings and fixed-point base units.
package unit

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/xerrors"

	"github.com/x-xyz/auctiond/domain"
)

const (
	// EtherDecimals is the precision of the native currency
	EtherDecimals int32 = 18
	// DefaultTokenDecimals is used when a token does not report its decimals
	DefaultTokenDecimals int32 = 18
	// NativeDisplayDigits bounds fractional digits shown for currency amounts
	NativeDisplayDigits int32 = 6
)

// ToBaseUnits parses a decimal string into base units. The empty string is zero.
func ToBaseUnits(s string, decimals int32) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return new(big.Int), nil
	}
	if decimals < 0 {
		return nil, xerrors.Errorf("negative decimals %d: %w", decimals, domain.ErrInvalidAmount)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, xerrors.Errorf("parse %q: %w", s, domain.ErrInvalidAmount)
	}
	if d.IsNegative() {
		return nil, xerrors.Errorf("negative amount %q: %w", s, domain.ErrInvalidAmount)
	}
	scaled := d.Shift(decimals)
	if !scaled.Equal(scaled.Truncate(0)) {
		return nil, xerrors.Errorf("%q has more than %d fractional digits: %w", s, decimals, domain.ErrInvalidAmount)
	}
	return scaled.BigInt(), nil
}

// FromBaseUnits renders base units with the given precision, trailing zeros suppressed
func FromBaseUnits(v *big.Int, decimals int32) string {
	if v == nil {
		return "0"
	}
	return decimal.NewFromBigInt(v, -decimals).String()
}

// FormatNative renders a native currency amount truncated to NativeDisplayDigits
func FormatNative(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return decimal.NewFromBigInt(v, -EtherDecimals).Truncate(NativeDisplayDigits).String()
}

// FormatToken renders a token amount in the token's own precision
func FormatToken(v *big.Int, decimals int32) string {
	return FromBaseUnits(v, decimals)
}

// FormatDuration renders seconds as "{m}m {s}s"
func FormatDuration(seconds int64) string {
	if seconds <= 0 {
		return "0s"
	}
	return fmt.Sprintf("%dm %ds", seconds/60, seconds%60)
}

// Pct returns part/total*100 clamped to [0, 100]; 0 when total is zero
func Pct(part, total *big.Int) float64 {
	if total == nil || total.Sign() <= 0 || part == nil {
		return 0
	}
	pct, _ := decimal.NewFromBigInt(part, 0).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromBigInt(total, 0)).
		Float64()
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
