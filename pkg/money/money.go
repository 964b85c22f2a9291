package money

import "fmt"

// Amount is a monetary value in micros (one millionth of a currency unit).
// All engine arithmetic is integer-only; there is no floating point anywhere
// in the settlement path.
type Amount int64

// Micros per whole currency unit.
const UnitMicros = 1_000_000

// Units builds an Amount from whole currency units.
func Units(n int64) Amount {
	return Amount(n * UnitMicros)
}

// Micros builds an Amount from raw micros.
func Micros(n int64) Amount {
	return Amount(n)
}

// Micros returns the raw micro value.
func (a Amount) Micros() int64 {
	return int64(a)
}

// IsPositive reports whether the amount is strictly greater than zero.
func (a Amount) IsPositive() bool {
	return a > 0
}

// Payout returns the insurance credit for a paid premium: 1.5x computed as
// premium + premium/2 so the result stays exact in integer micros.
func Payout(premium Amount) Amount {
	return premium + premium/2
}

// String renders the amount as a decimal number of units, e.g. "1.500000".
func (a Amount) String() string {
	sign := ""
	v := int64(a)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%06d", sign, v/UnitMicros, v%UnitMicros)
}
