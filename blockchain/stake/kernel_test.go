// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package stake

import (
	"testing"

	"github.com/novacore/novad/chainhash"
)

func TestGetWeight(t *testing.T) {
	const minAge = 60 * 60      // 1 hour
	const maxAge = 90 * 24 * 3600 // 90 days

	tests := []struct {
		name  string
		begin int64
		end   int64
		want  int64
	}{
		{"exactly min age held, zero weight", 0, minAge, 0},
		{"below min age clamps to zero", 0, minAge - 1, 0},
		{"one day past min age", 0, minAge + 86400, 86400},
		{"far beyond max age clamps", 0, maxAge * 10, maxAge},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := GetWeight(test.begin, test.end, minAge, maxAge)
			if got != test.want {
				t.Errorf("got %d, want %d", got, test.want)
			}
		})
	}
}

func TestGetStakeModifierSelectionInterval(t *testing.T) {
	const modifierInterval = 6 * 60 * 60 // 6 hours, novacoin-style

	total := GetStakeModifierSelectionInterval(modifierInterval)
	if total <= 0 {
		t.Fatalf("selection interval must be positive, got %d", total)
	}

	// Each section must itself be positive and the total must be the sum
	// of all 64 sections.
	var sum int64
	for section := 0; section < 64; section++ {
		width := GetStakeModifierSelectionIntervalSection(section, modifierInterval)
		if width <= 0 {
			t.Fatalf("section %d has non-positive width %d", section, width)
		}
		sum += width
	}
	if sum != total {
		t.Errorf("sum of sections = %d, want %d", sum, total)
	}
}

// fakeNode is a minimal NodeInfo used to exercise ComputeNextStakeModifier
// and GetKernelStakeModifier without pulling in the block index.
type fakeNode struct {
	height                  int64
	timestamp               int64
	hash                    chainhash.Hash
	parent                  *fakeNode
	next                    *fakeNode
	isProofOfStake          bool
	entropyBit              uint8
	generatedStakeModifier  bool
	stakeModifier           uint64
	hashProofOfStake        chainhash.Hash
}

func (n *fakeNode) Height() int64                   { return n.height }
func (n *fakeNode) Timestamp() int64                { return n.timestamp }
func (n *fakeNode) Hash() chainhash.Hash             { return n.hash }
func (n *fakeNode) IsProofOfStake() bool             { return n.isProofOfStake }
func (n *fakeNode) StakeEntropyBit() uint8           { return n.entropyBit }
func (n *fakeNode) GeneratedStakeModifier() bool     { return n.generatedStakeModifier }
func (n *fakeNode) StakeModifier() uint64            { return n.stakeModifier }
func (n *fakeNode) HashProofOfStake() chainhash.Hash { return n.hashProofOfStake }

func (n *fakeNode) Parent() NodeInfo {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func (n *fakeNode) Next() NodeInfo {
	if n.next == nil {
		return nil
	}
	return n.next
}

func TestComputeNextStakeModifierCarriesForwardWithinInterval(t *testing.T) {
	const modifierInterval = 6 * 60 * 60

	genesis := &fakeNode{height: 0, timestamp: 0, generatedStakeModifier: true, stakeModifier: 0}
	genesis.hash[0] = 0x01

	child := &fakeNode{height: 1, timestamp: 100, parent: genesis}
	child.hash[0] = 0x02

	modifier, generated, err := ComputeNextStakeModifier(child, modifierInterval)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if generated {
		t.Error("expected the modifier to be carried forward, not regenerated, within the same interval")
	}
	if modifier != genesis.stakeModifier {
		t.Errorf("carried-forward modifier = %d, want %d", modifier, genesis.stakeModifier)
	}
}

func TestComputeNextStakeModifierGenesisParent(t *testing.T) {
	genesis := &fakeNode{height: 0, timestamp: 0}
	modifier, generated, err := ComputeNextStakeModifier(genesis, 6*60*60)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !generated || modifier != 0 {
		t.Errorf("genesis node itself should report a generated zero modifier, got modifier=%d generated=%v", modifier, generated)
	}
}

func TestGetKernelStakeModifierBehindBestBlock(t *testing.T) {
	from := &fakeNode{height: 10, timestamp: 1000, generatedStakeModifier: true}
	_, _, _, err := GetKernelStakeModifier(from, 6*60*60)
	if err != ErrBehindBestBlock {
		t.Errorf("expected ErrBehindBestBlock with no chain past blockFrom, got %v", err)
	}
}

func TestCheckStakeKernelHashRejectsImmatureCoin(t *testing.T) {
	const minAge = 60 * 60
	const maxAge = 90 * 24 * 3600

	in := KernelInputs{
		StakeModifier: 42,
		BlockFromTime: 1000,
		TxPrevTime:    1000,
		TxTime:        1000 + minAge - 1, // one second short of eligibility
	}
	_, _, err := CheckStakeKernelHash(0x1d00ffff, in, 1000*100000000, minAge, maxAge)
	if err == nil {
		t.Error("expected an error for a coin that hasn't met the minimum stake age")
	}
}

func TestCheckStakeKernelHashRejectsTimeTravel(t *testing.T) {
	in := KernelInputs{
		TxPrevTime: 2000,
		TxTime:     1000,
	}
	_, _, err := CheckStakeKernelHash(0x1d00ffff, in, 100000000, 0, 1)
	if err == nil {
		t.Error("expected an error when the coinstake time precedes the funding transaction's time")
	}
}
