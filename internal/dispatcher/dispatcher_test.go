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

package dispatcher

import (
	"os"
	"path"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/0xleft/shminimaxing/internal/position"
	"github.com/0xleft/shminimaxing/internal/search"
	"github.com/0xleft/shminimaxing/internal/transpositiontable"
)

// make tests run in the projects root directory
func init() {
	_, filename, _, _ := runtime.Caller(0)
	dir := path.Join(path.Dir(filename), "../..")
	err := os.Chdir(dir)
	if err != nil {
		panic(err)
	}
}

// buildForcedWin places 14 pieces onto squares 0..13 without ever
// forming a line, leaving squares 14 and 15 empty and piece 7 handed to
// the mover. Placing piece 7 on either empty square completes a line.
func buildForcedWin() *position.Position {
	p := position.NewPosition()
	pieces := []int{0, 9, 4, 14, 11, 5, 6, 10, 12, 3, 15, 2, 1, 8}
	square := 0
	for _, pc := range pieces {
		p.DoSelect(pc)
		p.DoMove(square)
		square++
	}
	p.DoSelect(7)
	return p
}

// buildForcedWinUnique is the same shape but with exactly one winning
// placement, square 15.
func buildForcedWinUnique() *position.Position {
	p := position.NewPosition()
	pieces := []int{6, 0, 14, 3, 8, 9, 11, 4, 5, 12, 1, 2, 15, 10}
	square := 0
	for _, pc := range pieces {
		p.DoSelect(pc)
		p.DoMove(square)
		square++
	}
	p.DoSelect(7)
	return p
}

func TestDispatchAlphaBetaFindsForcedWin(t *testing.T) {
	p := buildForcedWin()
	assert.False(t, p.IsQuarto(), "fixture must not already contain a line")
	tt := transpositiontable.NewTtTable()

	code := Dispatch(p, tt, 0)
	placement := int(code >> 4)

	assert.True(t, placement == 14 || placement == 15, "expected winning placement on square 14 or 15, got %d", placement)
	p.DoMove(placement)
	assert.True(t, p.IsQuarto())
}

func TestDispatchAlphaBetaFindsUniqueWinningSquare(t *testing.T) {
	p := buildForcedWinUnique()
	assert.False(t, p.IsQuarto(), "fixture must not already contain a line")
	tt := transpositiontable.NewTtTable()

	code := Dispatch(p, tt, 0)
	placement := int(code >> 4)

	assert.Equal(t, 15, placement)
	p.DoMove(placement)
	assert.True(t, p.IsQuarto())
}

func TestDispatchUsesMctsBelowOccupancyThreshold(t *testing.T) {
	p := position.NewPosition()
	p.DoSelect(0)
	tt := transpositiontable.NewTtTable()

	code := Dispatch(p, tt, 30*time.Millisecond)
	placement := code >> 4
	assert.GreaterOrEqual(t, placement, uint16(0))
	assert.Less(t, placement, uint16(16))
}

func TestEncodeUsesZeroForNoPiece(t *testing.T) {
	code := encode(search.Move{Square: 5, Piece: position.NoPiece})
	assert.EqualValues(t, uint16(5<<4), code)
}

func TestEncodePacksSquareAndPiece(t *testing.T) {
	code := encode(search.Move{Square: 9, Piece: 3})
	assert.EqualValues(t, uint16(9<<4)|3, code)
}
