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

// Package bitboard provides the geometric transforms on a 4x4 Quarto
// board plane. A plane is a uint16 with bit (row*4+col) set for each
// occupied cell; row 0 / col 0 is the board's reference corner. All
// transforms are pure functions with no allocation, in the style of the
// shift/mask bit tricks used for chess bitboards.
package bitboard

// idx returns the bit index for a (row, col) pair, row and col in 0..3.
func idx(row, col int) uint {
	return uint(row*4 + col)
}

// transform rebuilds a plane by mapping every set bit of b through f,
// which returns the (row, col) in b that should be read for output
// position (row, col).
func transform(b uint16, f func(row, col int) (int, int)) uint16 {
	var out uint16
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			sr, sc := f(r, c)
			if b&(1<<idx(sr, sc)) != 0 {
				out |= 1 << idx(r, c)
			}
		}
	}
	return out
}

// RotateClk rotates a plane 90 degrees clockwise. Applying it four times
// is the identity.
func RotateClk(b uint16) uint16 {
	return transform(b, func(r, c int) (int, int) {
		return 3 - c, r
	})
}

// MirrorHor mirrors a plane across the horizontal axis, swapping row 0
// with row 3 and row 1 with row 2. It is its own inverse.
func MirrorHor(b uint16) uint16 {
	return transform(b, func(r, c int) (int, int) {
		return 3 - r, c
	})
}

// MirrorVrt mirrors a plane across the vertical axis, reversing the
// columns of every row. It is its own inverse.
func MirrorVrt(b uint16) uint16 {
	return transform(b, func(r, c int) (int, int) {
		return r, 3 - c
	})
}

// InsideOut swaps the board's outer ring with its inner 2x2 core by
// pairing row/col 0<->1 and 2<->3. It is its own inverse.
func InsideOut(b uint16) uint16 {
	return transform(b, func(r, c int) (int, int) {
		return r ^ 1, c ^ 1
	})
}

// MidFlip swaps the two middle rows (1 and 2) and the two middle
// columns (1 and 2) simultaneously, fixing the four corners and
// point-reflecting the inner 2x2 block through the board center. It is
// its own inverse.
func MidFlip(b uint16) uint16 {
	return transform(b, func(r, c int) (int, int) {
		return midSwap(r), midSwap(c)
	})
}

func midSwap(x int) int {
	switch x {
	case 1:
		return 2
	case 2:
		return 1
	default:
		return x
	}
}

// State is the five-plane representation of a Quarto board: four
// attribute planes followed by the occupancy plane, matching
// position.Position.B.
type State = [5]uint16

func stateWide(s State, f func(uint16) uint16) State {
	var out State
	for i, p := range s {
		out[i] = f(p)
	}
	return out
}

// RotateClkState applies RotateClk to every plane of s.
func RotateClkState(s State) State { return stateWide(s, RotateClk) }

// MirrorHorState applies MirrorHor to every plane of s.
func MirrorHorState(s State) State { return stateWide(s, MirrorHor) }

// MirrorVrtState applies MirrorVrt to every plane of s.
func MirrorVrtState(s State) State { return stateWide(s, MirrorVrt) }

// InsideOutState applies InsideOut to every plane of s.
func InsideOutState(s State) State { return stateWide(s, InsideOut) }

// MidFlipState applies MidFlip to every plane of s.
func MidFlipState(s State) State { return stateWide(s, MidFlip) }
