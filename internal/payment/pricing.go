package payment

import "math"

const (
	// DefaultServiceFeeCOP is the fixed fee charged on top of the
	// trámite's base price.
	DefaultServiceFeeCOP int64 = 2500

	// DefaultTaxRate is the IVA rate applied to price plus fee.
	DefaultTaxRate float64 = 0.19
)

// ComputeTotal returns the total to charge for a trámite priced at base,
// with a fixed service fee and tax rate: round((base+fee)*(1+rate)).
// Deterministic for receipts.
func ComputeTotal(base, fee int64, rate float64) int64 {
	subtotal := float64(base + fee)
	return int64(math.Round(subtotal + subtotal*rate))
}

// Tax returns the tax portion of the total, rounded the same way.
func Tax(base, fee int64, rate float64) int64 {
	return ComputeTotal(base, fee, rate) - (base + fee)
}

// ToMinorUnits converts a peso amount to the smallest currency subunit
// expected by payment providers.
func ToMinorUnits(amount int64) int64 {
	return amount * 100
}
