// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dcrutil

import (
	"math"
	"testing"
)

func TestNewAmount(t *testing.T) {
	tests := []struct {
		name    string
		amount  float64
		want    Amount
		wantErr bool
	}{
		{"one coin", 1, 1 * AmountAtomsPerCoin, false},
		{"fractional", 0.000001, 1, false},
		{"zero", 0, 0, false},
		{"negative", -1, -1 * AmountAtomsPerCoin, false},
		{"rounds half up", 0.0000015, 2, false},
		{"NaN rejected", math.NaN(), 0, true},
		{"+Inf rejected", math.Inf(1), 0, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := NewAmount(test.amount)
			if test.wantErr {
				if err == nil {
					t.Fatal("expected an error, got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != test.want {
				t.Errorf("got %d, want %d", got, test.want)
			}
		})
	}
}

func TestAmountToCoin(t *testing.T) {
	a := Amount(1500000)
	if got := a.ToCoin(); got != 1.5 {
		t.Errorf("ToCoin() = %v, want 1.5", got)
	}
}

func TestAmountString(t *testing.T) {
	a := Amount(AmountAtomsPerCoin)
	want := "1 NOVA"
	if got := a.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestAmountMulF64(t *testing.T) {
	a := Amount(100)
	if got := a.MulF64(0.5); got != 50 {
		t.Errorf("MulF64(0.5) = %d, want 50", got)
	}
}
