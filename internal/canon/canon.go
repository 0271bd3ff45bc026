//
// FrankyGo - UCI chess engine in GO for learning purposes
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//

// Package canon reduces a Quarto board to a canonical 128-bit key that
// is invariant under the board's full symmetry group: relabeling which
// bit of a piece index means what (attribute complementation), which
// attribute plane is "first" (plane permutation), and the 32 geometric
// symmetries of the 4x4 grid enumerated by geometricOrbit. Two boards that are the same
// game up to relabeling and rotation/reflection canonicalize to the
// same key, which is what lets the transposition table treat them as
// one entry.
package canon

import (
	"math/bits"

	"github.com/0xleft/shminimaxing/internal/bitboard"
	"github.com/0xleft/shminimaxing/internal/position"
)

// Key128 is the canonical key. Only the top 16 bits of Hi and all of Lo
// (80 bits total) are meaningful; the remaining 48 bits of Hi are
// reserved and always zero, matching the transposition table's
// persisted format which drops them (see transpositiontable/codec.go).
type Key128 struct {
	Hi uint64
	Lo uint64
}

// Less orders keys so canonicalization can pick a unique minimum.
func (k Key128) Less(o Key128) bool {
	if k.Hi != o.Hi {
		return k.Hi < o.Hi
	}
	return k.Lo < o.Lo
}

func pack(s bitboard.State) Key128 {
	return Key128{
		Hi: uint64(s[4]) << 48,
		Lo: uint64(s[0]) | uint64(s[1])<<16 | uint64(s[2])<<32 | uint64(s[3])<<48,
	}
}

// Canonize computes the canonical key of pos's board.
func Canonize(pos *position.Position) Key128 {
	return CanonizeState(pos.B)
}

// CanonizeState computes the canonical key of a raw five-plane board,
// useful for testing the canonicalizer without a full Position.
func CanonizeState(b bitboard.State) Key128 {
	candidatesA := complementCandidates(b)

	seen := make(map[bitboard.State]struct{}, len(candidatesA)*8)
	var candidatesB []bitboard.State
	for _, c := range candidatesA {
		for _, perm := range planePermutations(c) {
			permuted := applyPermutation(c, perm)
			if _, ok := seen[permuted]; !ok {
				seen[permuted] = struct{}{}
				candidatesB = append(candidatesB, permuted)
			}
		}
	}

	var best Key128
	first := true
	for _, c := range candidatesB {
		for _, g := range geometricOrbit(c) {
			k := pack(g)
			if first || k.Less(best) {
				best = k
				first = false
			}
		}
	}
	return best
}

// complementCandidates implements Step A: for each of the four
// attribute planes, decide whether to complement it (XOR with
// occupancy) based on which orientation has fewer set bits among the
// occupied squares. A plane whose popcount is exactly half the
// occupancy count is ambiguous and forks into both orientations.
func complementCandidates(b bitboard.State) []bitboard.State {
	occ := b[4]
	occCount := bits.OnesCount16(occ)

	type choice int
	const (
		keep choice = iota
		flip
		fork
	)

	decisions := [4]choice{}
	for k := 0; k < 4; k++ {
		pc := bits.OnesCount16(b[k] & occ)
		switch {
		case pc*2 < occCount:
			decisions[k] = keep
		case pc*2 > occCount:
			decisions[k] = flip
		default:
			decisions[k] = fork
		}
	}

	candidates := []bitboard.State{b}
	for k := 0; k < 4; k++ {
		switch decisions[k] {
		case keep:
			// no change needed
		case flip:
			for i := range candidates {
				candidates[i][k] = occ ^ candidates[i][k]
			}
		case fork:
			forked := make([]bitboard.State, len(candidates))
			copy(forked, candidates)
			for i := range forked {
				forked[i][k] = occ ^ forked[i][k]
			}
			candidates = append(candidates, forked...)
		}
	}
	return candidates
}

// planePermutations implements Step B's pruning: only permutations of
// the four attribute planes that produce a non-decreasing popcount
// sequence are tried, collapsing the 24 possible orderings down to the
// ones that could plausibly be minimal, with a fork only across planes
// that tie in popcount.
func planePermutations(b bitboard.State) [][4]int {
	var pc [4]int
	for k := 0; k < 4; k++ {
		pc[k] = bits.OnesCount16(b[k])
	}
	var perms [][4]int
	var perm [4]int
	var used [4]bool
	var rec func(depth int)
	rec = func(depth int) {
		if depth == 4 {
			for i := 0; i < 3; i++ {
				if pc[perm[i]] > pc[perm[i+1]] {
					return
				}
			}
			cp := perm
			perms = append(perms, cp)
			return
		}
		for i := 0; i < 4; i++ {
			if used[i] {
				continue
			}
			used[i] = true
			perm[depth] = i
			rec(depth + 1)
			used[i] = false
		}
	}
	rec(0)
	return perms
}

func applyPermutation(b bitboard.State, perm [4]int) bitboard.State {
	var out bitboard.State
	for slot, plane := range perm {
		out[slot] = b[plane]
	}
	out[4] = b[4]
	return out
}

// geometricOrbit implements Step C: the four rotations composed with
// the eight combinations of mirror-vertical / inside-out / mid-flip,
// the 32-element symmetry group of the physical board.
func geometricOrbit(b bitboard.State) []bitboard.State {
	orbit := make([]bitboard.State, 0, 32)
	cur := b
	for rot := 0; rot < 4; rot++ {
		for combo := 0; combo < 8; combo++ {
			s := cur
			if combo&1 != 0 {
				s = bitboard.MirrorVrtState(s)
			}
			if combo&2 != 0 {
				s = bitboard.InsideOutState(s)
			}
			if combo&4 != 0 {
				s = bitboard.MidFlipState(s)
			}
			orbit = append(orbit, s)
		}
		cur = bitboard.RotateClkState(cur)
	}
	return orbit
}
