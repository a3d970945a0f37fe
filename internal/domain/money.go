package domain

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// ErrInvalidAmount is returned for amounts that cannot be parsed.
var ErrInvalidAmount = errors.New("invalid amount format")

// ParseCents converts a user-entered decimal currency amount ("12.5") into
// integer minor units (1250), rounding to the nearest unit.
//
// big.Rat is used instead of float64 so that amounts like "0.1" convert
// exactly; the rounding happens once, at the very end.
func ParseCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}

	amount := new(big.Rat)
	if _, ok := amount.SetString(s); !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	cents := new(big.Rat).Mul(amount, big.NewRat(100, 1))
	return ratRound(cents), nil
}

// CoerceCents is ParseCents with form semantics: anything unparsable is
// treated as zero rather than rejected. Required-field checks happen at the
// form layer, not here.
func CoerceCents(s string) int64 {
	cents, err := ParseCents(s)
	if err != nil {
		return 0
	}
	return cents
}

// FormatPrice renders minor units as whole currency units with the ruble
// sign, no decimals: 75000 -> "750 ₽".
func FormatPrice(cents int64) string {
	return fmt.Sprintf("%d ₽", roundToUnits(cents))
}

func roundToUnits(cents int64) int64 {
	if cents < 0 {
		return -((-cents + 50) / 100)
	}
	return (cents + 50) / 100
}

// ratRound rounds a rational to the nearest integer, half away from zero.
func ratRound(r *big.Rat) int64 {
	num := new(big.Int).Set(r.Num())
	den := r.Denom()

	quo, rem := new(big.Int).QuoRem(num, den, new(big.Int))
	rem.Abs(rem)
	rem.Lsh(rem, 1) // rem *= 2
	if rem.Cmp(den) >= 0 {
		if r.Sign() < 0 {
			quo.Sub(quo, big.NewInt(1))
		} else {
			quo.Add(quo, big.NewInt(1))
		}
	}
	return quo.Int64()
}
