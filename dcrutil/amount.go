// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package dcrutil collects convenience types built over the wire and
// blockchain packages: the Amount value type and thin wrappers around a
// parsed block or transaction for code that wants hash caching without
// pulling in the validation engine.
package dcrutil

import (
	"errors"
	"math"
	"strconv"
)

// AmountUnit describes a unit of a coin amount, parallel to the teacher's
// own AmountUnit used for log and display formatting.
type AmountUnit int

// These constants define various units used when formatting an Amount.
// COIN is fixed at 1e6 atoms, so the atom itself is the smallest,
// "micro", denomination - there is no separate micro unit below it.
const (
	AmountMegaCoin  AmountUnit = 6
	AmountKiloCoin  AmountUnit = 3
	AmountCoin      AmountUnit = 0
	AmountMilliCoin AmountUnit = -3
	AmountAtom      AmountUnit = -6
)

// String returns the unit as a string, for use in formatted amounts.
func (u AmountUnit) String() string {
	switch u {
	case AmountMegaCoin:
		return "MNOVA"
	case AmountKiloCoin:
		return "kNOVA"
	case AmountCoin:
		return "NOVA"
	case AmountMilliCoin:
		return "mNOVA"
	case AmountAtom:
		return "Atom"
	default:
		return "1e" + strconv.FormatInt(int64(u), 10) + " NOVA"
	}
}

// AmountAtomsPerCoin is the number of atoms (the smallest indivisible unit
// of a coin) in one whole coin. Every amount-carrying field in wire and
// blockchain — TxOut.Value, CoinEntry amounts, subsidy calculations,
// chaincfg's reward constants — is expressed in atoms against this same
// COIN; this is the single source of truth other packages reference
// instead of repeating the constant locally.
const AmountAtomsPerCoin = 1e6

// maxAtoms is the maximum number of atoms representable as an int64 amount
// before overflow, bounding NewAmount's float conversion.
const maxAtoms = math.MaxInt64

// Amount represents the base coin monetary unit (colloquially referred to
// as an "Atom") as an int64.
type Amount int64

// round converts a floating point number, which may or may not be negative,
// to its nearest integer value, rounding half away from zero.
func round(f float64) Amount {
	if f < 0 {
		return Amount(f - 0.5)
	}
	return Amount(f + 0.5)
}

// NewAmount creates an Amount from a floating point value representing
// whole coins, returning an error if the value is outside the range a
// coin amount may validly take.
func NewAmount(f float64) (Amount, error) {
	switch {
	case math.IsNaN(f), math.IsInf(f, 1), math.IsInf(f, -1):
		return 0, errors.New("invalid coin amount")
	}

	fAtoms := f * AmountAtomsPerCoin
	if fAtoms < -maxAtoms || fAtoms >= maxAtoms {
		return 0, errors.New("coin amount out of range")
	}
	return round(fAtoms), nil
}

// ToUnit converts a monetary amount counted in coin atoms to a floating
// point value representing an amount of the given unit.
func (a Amount) ToUnit(u AmountUnit) float64 {
	return float64(a) / math.Pow10(int(u)+6)
}

// ToCoin is a convenience function equivalent to ToUnit(AmountCoin).
func (a Amount) ToCoin() float64 {
	return a.ToUnit(AmountCoin)
}

// Format formats a monetary amount counted in coin atoms as a string for
// a given unit, appending the unit's symbol.
func (a Amount) Format(u AmountUnit) string {
	units := " " + u.String()
	formatted := strconv.FormatFloat(a.ToUnit(u), 'f', -int(u+6), 64)
	return formatted + units
}

// String is the equivalent of calling Format with AmountCoin.
func (a Amount) String() string {
	return a.Format(AmountCoin)
}

// MulF64 multiplies an Amount by a floating point value, rounding the
// result to the nearest atom.
func (a Amount) MulF64(f float64) Amount {
	return round(float64(a) * f)
}
