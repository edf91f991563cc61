// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import "github.com/novacore/novad/wire"

// stakeSeenSet is the set of (coinstake kernel input, stake time) pairs
// already used to mint a block on the active chain. Two different blocks
// staking the exact same unspent output at the exact same time are each
// individually a valid kernel proof — the kernel hash alone can't tell them
// apart — so duplicate-stake rejection has to be enforced out of band by
// remembering every pair a connected block has already spent.
type stakeSeenSet struct {
	seen map[wire.OutPoint]uint32
}

// newStakeSeenSet returns an empty stakeSeenSet.
func newStakeSeenSet() *stakeSeenSet {
	return &stakeSeenSet{seen: make(map[wire.OutPoint]uint32)}
}

// overlay returns a scoped view over s for a single ProcessBlock call:
// staged adds and forgets are checked against s but never applied to it
// until commit, mirroring how CachedView defers its own writes until
// Flush. This keeps a reorg's speculative connect-then-maybe-discard
// attempt from polluting the committed set with stakes that never actually
// made it onto the best chain.
func (s *stakeSeenSet) overlay() *stakeSeenView {
	return &stakeSeenView{
		base:    s,
		added:   make(map[wire.OutPoint]uint32),
		removed: make(map[wire.OutPoint]bool),
	}
}

type stakeSeenView struct {
	base    *stakeSeenSet
	added   map[wire.OutPoint]uint32
	removed map[wire.OutPoint]bool
}

// seen reports whether outpoint already minted a block at exactly time,
// consulting this call's own staged adds and forgets ahead of the
// committed set.
func (v *stakeSeenView) seen(outpoint wire.OutPoint, time uint32) bool {
	if v.removed[outpoint] {
		return false
	}
	if t, ok := v.added[outpoint]; ok {
		return t == time
	}
	t, ok := v.base.seen[outpoint]
	return ok && t == time
}

// record stages outpoint/time as newly seen.
func (v *stakeSeenView) record(outpoint wire.OutPoint, time uint32) {
	v.added[outpoint] = time
	delete(v.removed, outpoint)
}

// forget stages outpoint as no longer seen, used when a reorg disconnects
// the coinstake that staked it, making the output eligible to be staked
// again by whichever branch ends up connecting it next.
func (v *stakeSeenView) forget(outpoint wire.OutPoint) {
	delete(v.added, outpoint)
	v.removed[outpoint] = true
}

// commit applies every staged add and forget to the underlying set. Called
// only once the same ProcessBlock call's CachedView has itself flushed, so
// the stake-seen set and the UTXO set always advance together.
func (v *stakeSeenView) commit() {
	for outpoint := range v.removed {
		delete(v.base.seen, outpoint)
	}
	for outpoint, t := range v.added {
		v.base.seen[outpoint] = t
	}
}
