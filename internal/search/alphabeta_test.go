/*
 * FrankyGo - UCI chess engine in GO for learning purposes
 *
 * MIT License
 *
 * Copyright (c) 2018-2020 Frank Kopp
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package search

import (
	"os"
	"path"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/0xleft/shminimaxing/internal/position"
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

// buildNearWin sets up a position one placement away from completing
// column 0 (mask 0x1111) on plane 3, with the winning piece already
// handed to the mover.
func buildNearWin() *position.Position {
	p := position.NewPosition()
	placements := []struct{ piece, square int }{
		{0, 4}, {1, 8}, {2, 12},
	}
	for _, m := range placements {
		p.DoSelect(m.piece)
		p.DoMove(m.square)
	}
	p.DoSelect(4) // piece 4 = 0b0100, shares bit3=0 with 0,1,2
	return p
}

func TestSearchFindsImmediateWin(t *testing.T) {
	p := buildNearWin()
	tt := transpositiontable.NewTtTable()

	move, value, stats := Search(p, tt, 10, true)

	assert.EqualValues(t, Win, value)
	assert.Equal(t, 0, move.Square)
	assert.True(t, stats.LeafEvaluations > 0)
}

func TestSearchDepthLimitedReturnsGameValue(t *testing.T) {
	p := buildNearWin()
	p.UndoMove() // undo the DoSelect(4), leave only 3 pieces placed
	p.DoSelect(5)

	tt := transpositiontable.NewTtTable()
	_, value, stats := Search(p, tt, 4, true)

	assert.True(t, value == Win || value == Draw || value == Loss)
	assert.True(t, stats.NodesVisited > 0 || stats.LeafEvaluations > 0)
}

func TestNegamaxStoresToTranspositionTable(t *testing.T) {
	p := buildNearWin()
	tt := transpositiontable.NewTtTable()
	var stats Statistics

	_ = negamax(p, 3, Loss, Win, tt, true, &stats)
	assert.True(t, tt.TotalSize() > 0)

	var second Statistics
	before := tt.TotalSize()
	_ = negamax(p, 3, Loss, Win, tt, true, &second)
	assert.True(t, second.TTHits > 0)
	assert.True(t, tt.TotalSize() >= before)
}

func TestSearchIsDeterministic(t *testing.T) {
	build := func() *position.Position {
		p := position.NewPosition()
		placements := []struct{ piece, square int }{
			{0, 0}, {9, 1}, {4, 2}, {14, 3}, {11, 4}, {5, 5}, {6, 6}, {10, 7},
		}
		for _, m := range placements {
			p.DoSelect(m.piece)
			p.DoMove(m.square)
		}
		p.DoSelect(7)
		return p
	}

	move1, value1, _ := Search(build(), transpositiontable.NewTtTable(), 4, true)
	move2, value2, _ := Search(build(), transpositiontable.NewTtTable(), 4, true)

	assert.Equal(t, move1, move2)
	assert.Equal(t, value1, value2)
}

func TestNegamaxDepthZeroIsNeutral(t *testing.T) {
	p := buildNearWin()
	tt := transpositiontable.NewTtTable()
	var stats Statistics
	v := negamax(p, 0, Loss, Win, tt, false, &stats)
	assert.Equal(t, Draw, v)
}
