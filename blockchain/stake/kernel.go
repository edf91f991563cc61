// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package stake implements the proof-of-stake kernel: the stake modifier
// selection algorithm, the kernel hash target check, and the hardened
// modifier checkpoints (§4 "Proof of stake kernel").
package stake

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math/big"
	"sort"

	"github.com/novacore/novad/chainhash"
	"github.com/novacore/novad/dcrutil"
	"github.com/novacore/novad/primitives/compact"
)

// ModifierIntervalRatio controls how quickly the selection-interval weight
// decays across the 64 rounds read to build a stake modifier.
const ModifierIntervalRatio = 3

// NodeInfo is the read-only view of a block-index node the kernel
// algorithms need. blockchain.blockNode implements it; the stake package
// itself holds no reference to the concrete chain index to avoid an import
// cycle between the two packages.
type NodeInfo interface {
	Height() int64
	Timestamp() int64
	Hash() chainhash.Hash
	Parent() NodeInfo
	Next() NodeInfo
	IsProofOfStake() bool
	StakeEntropyBit() uint8
	GeneratedStakeModifier() bool
	StakeModifier() uint64
	HashProofOfStake() chainhash.Hash
}

// ErrNoGenerationAtGenesis is returned when the chain is walked back to the
// genesis block without finding a node with a generated stake modifier,
// which should never happen since the genesis modifier is always 0.
var ErrNoGenerationAtGenesis = errors.New("stake: no stake modifier generation found back to genesis")

// ErrBehindBestBlock is returned by GetKernelStakeModifier when the chain
// has not yet grown far enough past blockFrom to select a later modifier.
var ErrBehindBestBlock = errors.New("stake: insufficient chain depth past coin's block to compute kernel modifier")

// GetWeight returns the coin-day weight contributed by a span of time held,
// clamped to [0, StakeMaxAge] by subtracting StakeMinAge from the interval
// and capping at StakeMaxAge.
func GetWeight(intervalBeginning, intervalEnd, stakeMinAge, stakeMaxAge int64) int64 {
	w := intervalEnd - intervalBeginning - stakeMinAge
	if w > stakeMaxAge {
		return stakeMaxAge
	}
	if w < 0 {
		return 0
	}
	return w
}

func getLastStakeModifier(node NodeInfo) (modifier uint64, modifierTime int64, err error) {
	for node != nil && node.Parent() != nil && !node.GeneratedStakeModifier() {
		node = node.Parent()
	}
	if node == nil || !node.GeneratedStakeModifier() {
		return 0, 0, ErrNoGenerationAtGenesis
	}
	return node.StakeModifier(), node.Timestamp(), nil
}

// GetStakeModifierSelectionIntervalSection returns the width, in seconds,
// of selection round n out of the 64 rounds used to assemble a stake
// modifier; later rounds are wider, from a third of modifierInterval for
// round 0 up to the full modifierInterval for round 63.
func GetStakeModifierSelectionIntervalSection(section int, modifierInterval int64) int64 {
	return modifierInterval * 63 / (63 + int64(63-section)*(ModifierIntervalRatio-1))
}

// GetStakeModifierSelectionInterval returns the sum of all 64 section
// widths: the total lookback window used to gather modifier candidates.
func GetStakeModifierSelectionInterval(modifierInterval int64) int64 {
	var total int64
	for section := 0; section < 64; section++ {
		total += GetStakeModifierSelectionIntervalSection(section, modifierInterval)
	}
	return total
}

type timestampedHash struct {
	timestamp int64
	hash      chainhash.Hash
}

// selectBlockFromCandidates picks, among candidates with timestamp up to
// selectionIntervalStop and not already in selected, the one whose
// selection hash (proof-hash combined with the previous stake modifier) is
// numerically lowest — favoring proof-of-stake candidates by right-shifting
// their selection hash 32 bits, to keep energy-efficient coins favored over
// proof-of-work ones.
func selectBlockFromCandidates(candidates []timestampedHash, byHash map[chainhash.Hash]NodeInfo,
	selected map[chainhash.Hash]bool, selectionIntervalStop int64, stakeModifierPrev uint64) (NodeInfo, error) {

	var best *big.Int
	var bestNode NodeInfo
	found := false

	for _, c := range candidates {
		node, ok := byHash[c.hash]
		if !ok {
			return nil, errors.New("stake: candidate block not found in index")
		}
		if found && node.Timestamp() > selectionIntervalStop {
			break
		}
		if selected[node.Hash()] {
			continue
		}

		proofHash := node.Hash()
		if node.IsProofOfStake() {
			proofHash = node.HashProofOfStake()
		}

		var buf bytes.Buffer
		buf.Write(proofHash[:])
		var modBytes [8]byte
		binary.LittleEndian.PutUint64(modBytes[:], stakeModifierPrev)
		buf.Write(modBytes[:])
		selectionHash := new(big.Int).SetBytes(reverseBytes(chainhash.HashB(buf.Bytes())))
		if node.IsProofOfStake() {
			selectionHash.Rsh(selectionHash, 32)
		}

		if !found {
			found = true
			best = selectionHash
			bestNode = node
		} else if selectionHash.Cmp(best) < 0 {
			best = selectionHash
			bestNode = node
		}
	}

	if !found {
		return nil, nil
	}
	return bestNode, nil
}

func reverseBytes(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	return out
}

// ComputeNextStakeModifier computes the stake modifier effective as of
// current, walking back over the preceding selection interval (the sum
// returned by GetStakeModifierSelectionInterval) and selecting 64 blocks whose entropy bits are packed into the new
// modifier. If the previous modifier's generation interval has not yet
// elapsed, the previous modifier is carried forward unchanged.
func ComputeNextStakeModifier(current NodeInfo, modifierInterval int64) (modifier uint64, generated bool, err error) {
	prev := current.Parent()
	if prev == nil {
		return 0, true, nil
	}

	lastModifier, modifierTime, err := getLastStakeModifier(prev)
	if err != nil {
		return 0, false, err
	}
	if modifierTime/modifierInterval >= prev.Timestamp()/modifierInterval {
		return lastModifier, false, nil
	}
	if modifierTime/modifierInterval >= current.Timestamp()/modifierInterval {
		return lastModifier, false, nil
	}

	selectionInterval := GetStakeModifierSelectionInterval(modifierInterval)
	selectionIntervalStart := (prev.Timestamp()/modifierInterval)*modifierInterval - selectionInterval

	byHash := make(map[chainhash.Hash]NodeInfo)
	var candidates []timestampedHash
	for node := prev; node != nil && node.Timestamp() >= selectionIntervalStart; node = node.Parent() {
		candidates = append(candidates, timestampedHash{timestamp: node.Timestamp(), hash: node.Hash()})
		byHash[node.Hash()] = node
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].timestamp != candidates[j].timestamp {
			return candidates[i].timestamp < candidates[j].timestamp
		}
		return bytes.Compare(candidates[i].hash[:], candidates[j].hash[:]) < 0
	})

	selected := make(map[chainhash.Hash]bool)
	selectionIntervalStop := selectionIntervalStart
	var newModifier uint64
	rounds := len(candidates)
	if rounds > 64 {
		rounds = 64
	}
	for round := 0; round < rounds; round++ {
		selectionIntervalStop += GetStakeModifierSelectionIntervalSection(round, modifierInterval)
		node, err := selectBlockFromCandidates(candidates, byHash, selected, selectionIntervalStop, lastModifier)
		if err != nil {
			return 0, false, err
		}
		if node == nil {
			return 0, false, errors.New("stake: unable to select block for stake modifier round")
		}
		newModifier |= uint64(node.StakeEntropyBit()&1) << uint(round)
		selected[node.Hash()] = true
	}

	return newModifier, true, nil
}

// GetKernelStakeModifier returns the stake modifier that applies to a
// kernel whose coin was confirmed in blockFrom: the modifier generated a
// full selection-interval later than blockFrom, found by walking forward
// along the main chain.
func GetKernelStakeModifier(blockFrom NodeInfo, modifierInterval int64) (modifier uint64, height int64, timestamp int64, err error) {
	height = blockFrom.Height()
	timestamp = blockFrom.Timestamp()
	selectionInterval := GetStakeModifierSelectionInterval(modifierInterval)

	node := blockFrom
	for timestamp < blockFrom.Timestamp()+selectionInterval {
		next := node.Next()
		if next == nil {
			return 0, 0, 0, ErrBehindBestBlock
		}
		node = next
		if node.GeneratedStakeModifier() {
			height = node.Height()
			timestamp = node.Timestamp()
		}
	}

	return node.StakeModifier(), height, timestamp, nil
}

// KernelInputs bundles the fields CheckStakeKernelHash hashes together,
// mirroring the values the coinstake's first input and its funding output
// contribute to the kernel protocol.
type KernelInputs struct {
	StakeModifier   uint64
	BlockFromTime   int64
	TxPrevOffset    uint32
	TxPrevTime      uint32
	PrevOutIndex    uint32
	TxTime          uint32
}

// kernelHash computes hash(modifier || blockFromTime || txPrevOffset ||
// txPrevTime || prevout.n || txTime), the PPCoin kernel preimage.
func kernelHash(in KernelInputs) chainhash.Hash {
	var buf bytes.Buffer
	var b8 [8]byte
	binary.LittleEndian.PutUint64(b8[:], in.StakeModifier)
	buf.Write(b8[:])

	var b4 [4]byte
	binary.LittleEndian.PutUint32(b4[:], uint32(in.BlockFromTime))
	buf.Write(b4[:])
	binary.LittleEndian.PutUint32(b4[:], in.TxPrevOffset)
	buf.Write(b4[:])
	binary.LittleEndian.PutUint32(b4[:], in.TxPrevTime)
	buf.Write(b4[:])
	binary.LittleEndian.PutUint32(b4[:], in.PrevOutIndex)
	buf.Write(b4[:])
	binary.LittleEndian.PutUint32(b4[:], in.TxTime)
	buf.Write(b4[:])

	return chainhash.HashH(buf.Bytes())
}

// CheckStakeKernelHash validates a coinstake's kernel: the value-weighted
// coin-day target (bits converted to a per-coin-day target, multiplied by
// the funding output's coin-day weight) must be at least the kernel hash,
// interpreted as a big-endian integer.
//
// coinValue is the funding output's amount in the smallest unit; stakeMinAge
// and stakeMaxAge bound the coin-day weight per GetWeight.
func CheckStakeKernelHash(bits uint32, in KernelInputs, coinValue int64, stakeMinAge, stakeMaxAge int64) (ok bool, hashProofOfStake chainhash.Hash, err error) {
	if int64(in.TxTime) < int64(in.TxPrevTime) {
		return false, chainhash.Hash{}, errors.New("stake: coinstake time precedes funding transaction time")
	}
	if in.BlockFromTime+stakeMinAge > int64(in.TxTime) {
		return false, chainhash.Hash{}, errors.New("stake: funding coin has not met the minimum stake age")
	}

	target := compact.ToBig(bits)
	weight := GetWeight(int64(in.TxPrevTime), int64(in.TxTime), stakeMinAge, stakeMaxAge)
	coinDayWeight := new(big.Int).Mul(big.NewInt(coinValue), big.NewInt(weight))
	coinDayWeight.Div(coinDayWeight, big.NewInt(dcrutil.AmountAtomsPerCoin))
	coinDayWeight.Div(coinDayWeight, big.NewInt(24*60*60))

	targetProofOfStake := new(big.Int).Mul(coinDayWeight, target)

	hashProofOfStake = kernelHash(in)
	hashInt := new(big.Int).SetBytes(hashProofOfStake[:])

	return hashInt.Cmp(targetProofOfStake) <= 0, hashProofOfStake, nil
}

// GetStakeModifierChecksum returns the 32-bit checksum committed to a
// block-index node: the top 32 bits (the hash shifted right by 224) of
// hash(parent checksum || block flags || hashProofOfStake || stake
// modifier), used to cross-check
// deterministic modifier computation against the hardcoded checkpoint
// table.
func GetStakeModifierChecksum(parentChecksum uint32, flags uint32, hashProofOfStake chainhash.Hash, stakeModifier uint64) uint32 {
	var buf bytes.Buffer
	var b4 [4]byte
	binary.LittleEndian.PutUint32(b4[:], parentChecksum)
	buf.Write(b4[:])
	binary.LittleEndian.PutUint32(b4[:], flags)
	buf.Write(b4[:])
	buf.Write(hashProofOfStake[:])
	var b8 [8]byte
	binary.LittleEndian.PutUint64(b8[:], stakeModifier)
	buf.Write(b8[:])

	// The reference kernel shifts the 256-bit hash right by 224 bits and
	// keeps the remainder, which in this little-endian byte layout is the
	// top 4 bytes of the array.
	h := chainhash.HashH(buf.Bytes())
	return binary.LittleEndian.Uint32(h[chainhash.HashSize-4:])
}

// CheckStakeModifierCheckpoints reports whether checksum matches the
// hardcoded checkpoint for height, or true if height has no checkpoint.
func CheckStakeModifierCheckpoints(height int64, checksum uint32, checkpoints map[int64]uint32) bool {
	want, ok := checkpoints[height]
	if !ok {
		return true
	}
	return want == checksum
}
