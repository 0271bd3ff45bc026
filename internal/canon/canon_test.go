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

package canon

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/0xleft/shminimaxing/internal/bitboard"
)

func TestCanonizeEmptyBoardIsZero(t *testing.T) {
	k := CanonizeState(bitboard.State{})
	assert.EqualValues(t, uint64(0), k.Hi)
	assert.EqualValues(t, uint64(0), k.Lo)
}

func TestCanonizeInvariantUnderRotation(t *testing.T) {
	b := bitboard.State{0x1248, 0x0842, 0x0021, 0x8001, 0x9421}
	rotated := bitboard.RotateClkState(b)

	assert.Equal(t, CanonizeState(b), CanonizeState(rotated))
}

func TestCanonizeInvariantUnderMirror(t *testing.T) {
	b := bitboard.State{0x1248, 0x0842, 0x0021, 0x8001, 0x9421}
	mirrored := bitboard.MirrorVrtState(b)

	assert.Equal(t, CanonizeState(b), CanonizeState(mirrored))
}

func TestCanonizeInvariantUnderAttributeComplement(t *testing.T) {
	b := bitboard.State{0x1248, 0x0842, 0x0021, 0x8001, 0x9421}
	occ := b[4]
	complemented := b
	complemented[0] = occ ^ complemented[0]

	assert.Equal(t, CanonizeState(b), CanonizeState(complemented))
}

func TestCanonizeInvariantUnderPlanePermutation(t *testing.T) {
	b := bitboard.State{0x1248, 0x0842, 0x0021, 0x8001, 0x9421}
	permuted := bitboard.State{b[1], b[2], b[3], b[0], b[4]}

	assert.Equal(t, CanonizeState(b), CanonizeState(permuted))
}

func TestCanonizeInvariantUnderComposedTransforms(t *testing.T) {
	b := bitboard.State{0xF000, 0x1000, 0x1000, 0x1000, 0xF000}
	transformed := bitboard.MidFlipState(bitboard.RotateClkState(bitboard.MirrorHorState(b)))

	assert.Equal(t, CanonizeState(b), CanonizeState(transformed))
}

func TestCanonizeInvariantUnderInsideOutAndMidFlip(t *testing.T) {
	b := bitboard.State{0x1248, 0x0842, 0x0021, 0x8001, 0x9421}

	assert.Equal(t, CanonizeState(b), CanonizeState(bitboard.InsideOutState(b)))
	assert.Equal(t, CanonizeState(b), CanonizeState(bitboard.MidFlipState(b)))
}

func TestCanonizeDistinguishesDifferentBoards(t *testing.T) {
	a := bitboard.State{0x0001, 0, 0, 0, 0x0001}
	b := bitboard.State{0x0001, 0, 0, 0, 0x0003}
	assert.NotEqual(t, CanonizeState(a), CanonizeState(b))
}
