// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"testing"

	"github.com/novacore/novad/chaincfg"
)

func testSubsidyParams() *chaincfg.Params {
	return &chaincfg.Params{
		InitialProofOfWorkReward: 50 * coinUnit,
		SubsidyHalvingInterval:   210000,
		MaxProofOfStakeReward:    10 * coinUnit,
	}
}

func TestCalcProofOfWorkSubsidy(t *testing.T) {
	params := testSubsidyParams()

	tests := []struct {
		name   string
		height int64
		fees   int64
		want   int64
	}{
		{"genesis era", 0, 0, 50 * coinUnit},
		{"right before first halving", 209999, 0, 50 * coinUnit},
		{"first halving", 210000, 0, 25 * coinUnit},
		{"second halving", 420000, 0, 50 * coinUnit / 4},
		{"with fees", 0, 12345, 50*coinUnit + 12345},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := CalcProofOfWorkSubsidy(test.height, test.fees, params)
			if got != test.want {
				t.Errorf("got %d, want %d", got, test.want)
			}
		})
	}
}

func TestCalcProofOfWorkSubsidyExhausted(t *testing.T) {
	params := testSubsidyParams()
	height := params.SubsidyHalvingInterval * 65
	got := CalcProofOfWorkSubsidy(height, 500, params)
	if got != 500 {
		t.Errorf("expected only fees once the reward is fully halved away, got %d", got)
	}
}

func TestCalcProofOfStakeSubsidy(t *testing.T) {
	params := testSubsidyParams()
	const daysPerYear = 365

	tests := []struct {
		name    string
		coinAge int64
		fees    int64
		want    int64
	}{
		{"one coin held one year earns one percent", 1 * coinUnit * daysPerYear, 0, 1 * coinUnit / 100},
		{"zero coin age mints nothing but fees", 0, 777, 777},
		{"negative coin age clamps to zero", -100, 0, 0},
		{"reward capped at network maximum", 1000000 * coinUnit * daysPerYear, 0, params.MaxProofOfStakeReward},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := CalcProofOfStakeSubsidy(test.coinAge, test.fees, params)
			if got != test.want {
				t.Errorf("got %d, want %d", got, test.want)
			}
		})
	}
}
