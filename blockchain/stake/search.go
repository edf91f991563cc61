// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package stake

import (
	"context"
	"sync"

	"github.com/novacore/novad/chainhash"
	"github.com/novacore/novad/wire"
)

// Candidate is one unspent output eligible to fund a coinstake: its
// outpoint, the amount it carries, the timing of the transaction that
// created it, which bounds how early a kernel hash search may start, and
// that transaction's position in its block.
type Candidate struct {
	Outpoint      wire.OutPoint
	Value         int64
	BlockFromTime int64
	TxPrevTime    uint32
	TxIndex       uint32
}

// Found reports a candidate and timestamp whose kernel hash met the target,
// alongside the proof hash the coinstake must commit to.
type Found struct {
	Candidate        Candidate
	TxTime           uint32
	HashProofOfStake chainhash.Hash
}

// searchResult is the internal completion signal a worker sends once, either
// on success or once it exhausts its partition of candidates.
type searchResult struct {
	found *Found
	err   error
}

// SearchKernel looks for a coinstake-eligible (candidate, timestamp) pair
// whose kernel hash satisfies CheckStakeKernelHash against bits and
// modifier, scanning timestamps in [startTime, endTime) one second apart —
// the same granularity a coinstake's own time field is expressed in.
// Candidates are partitioned across workers goroutines; the first hit
// cancels every other worker and is returned. A zero or negative workers
// count is treated as one worker.
//
// The search stops early and returns ctx.Err() if ctx is cancelled first,
// so a miner can bound how long it spends per block template before giving
// up and waiting for the next tip.
func SearchKernel(ctx context.Context, candidates []Candidate, modifier uint64, bits uint32,
	stakeMinAge, stakeMaxAge int64, startTime, endTime int64, workers int) (*Found, error) {

	if len(candidates) == 0 {
		return nil, nil
	}
	if workers < 1 {
		workers = 1
	}
	if workers > len(candidates) {
		workers = len(candidates)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make(chan searchResult, workers)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		start := w
		stride := workers
		go func() {
			defer wg.Done()
			found, err := searchPartition(ctx, candidates, start, stride, modifier, bits,
				stakeMinAge, stakeMaxAge, startTime, endTime)
			if found != nil || err != nil {
				select {
				case results <- searchResult{found: found, err: err}:
				default:
				}
				cancel()
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	var best *Found
	var firstErr error
	for r := range results {
		if r.err != nil && firstErr == nil {
			firstErr = r.err
			continue
		}
		if r.found != nil && best == nil {
			best = r.found
		}
	}
	if best != nil {
		return best, nil
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return nil, ctx.Err()
}

// searchPartition scans candidates[start], candidates[start+stride], ...,
// each across the full [startTime, endTime) window, stopping as soon as one
// hashes below target or the context is cancelled.
func searchPartition(ctx context.Context, candidates []Candidate, start, stride int, modifier uint64,
	bits uint32, stakeMinAge, stakeMaxAge int64, startTime, endTime int64) (*Found, error) {

	checked := 0
	for i := start; i < len(candidates); i += stride {
		c := candidates[i]

		from := startTime
		if minStart := c.BlockFromTime + stakeMinAge + 1; minStart > from {
			from = minStart
		}

		for t := from; t < endTime; t++ {
			checked++
			if checked&0xFFF == 0 {
				select {
				case <-ctx.Done():
					return nil, nil
				default:
				}
			}

			in := KernelInputs{
				StakeModifier: modifier,
				BlockFromTime: c.BlockFromTime,
				TxPrevOffset:  c.TxIndex,
				TxPrevTime:    c.TxPrevTime,
				PrevOutIndex:  c.Outpoint.Index,
				TxTime:        uint32(t),
			}
			ok, hashProofOfStake, err := CheckStakeKernelHash(bits, in, c.Value, stakeMinAge, stakeMaxAge)
			if err != nil {
				continue
			}
			if ok {
				return &Found{Candidate: c, TxTime: uint32(t), HashProofOfStake: hashProofOfStake}, nil
			}
		}
	}
	return nil, nil
}
