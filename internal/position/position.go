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

// Package position represents the Quarto board state and its mutation
// operations. A board is five 16-bit planes (four piece-attribute
// planes and one occupancy plane), a bitmask of pieces still available
// for selection, and the piece currently handed to the player on turn.
//
// Create a new instance with NewPosition() to get the empty starting
// position.
package position

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/0xleft/shminimaxing/assert"
)

// NoPiece is the sentinel value of SelectedPiece() when no piece has
// been handed to the player on turn yet (e.g. the very first move of
// the game, where the first player only selects a piece to give away).
const NoPiece = 16

// maxHistory bounds the undo stack: 16 selects and 16 placements is the
// most a single game can ever produce.
const maxHistory = 32

// winning lines: the 4 rows, 4 columns and 2 diagonals of the 4x4 board,
// expressed as bit masks over a 16-bit plane using the row*4+col bit
// numbering shared with package bitboard.
var lines = [10]uint16{
	0x000F, 0x00F0, 0x0F00, 0xF000, // rows
	0x1111, 0x2222, 0x4444, 0x8888, // columns
	0x8421, 0x1248, // diagonals
}

// Position is the Quarto game state: four attribute planes and one
// occupancy plane (B), the set of pieces not yet used (selectionState,
// bit i set means piece i is still available) and the piece handed to
// the player on turn (selectedPiece, or NoPiece).
type Position struct {
	B              [5]uint16
	selectionState uint16
	selectedPiece  int

	historyCounter int
	history        [maxHistory]historyState
}

type historyState struct {
	b              [5]uint16
	selectionState uint16
	selectedPiece  int
}

// NewPosition creates a new position with an empty board and every
// piece available for selection.
func NewPosition() *Position {
	return &Position{
		selectionState: 0xFFFF,
		selectedPiece:  NoPiece,
	}
}

// NewPositionFrom constructs a position directly from its five board
// planes, the selection-state mask and the piece handed to the player
// on turn (or NoPiece). This is the host interface's entry point: the
// caller hands over exactly these fields and nothing else. Inputs are
// copied; the undo history starts empty.
func NewPositionFrom(b [5]uint16, selectionState uint16, selectedPiece int) *Position {
	return &Position{
		B:              b,
		selectionState: selectionState,
		selectedPiece:  selectedPiece,
	}
}

// Clone returns an independent copy of the board state. The undo
// history is not carried over: a clone is a fresh vantage point for
// search, not a continuation of this position's move sequence.
func (p *Position) Clone() *Position {
	c := &Position{
		B:              p.B,
		selectionState: p.selectionState,
		selectedPiece:  p.selectedPiece,
	}
	return c
}

func (p *Position) pushHistory() {
	if assert.DEBUG {
		assert.Assert(p.historyCounter < maxHistory, "Position: history overflow")
	}
	h := &p.history[p.historyCounter]
	h.b = p.B
	h.selectionState = p.selectionState
	h.selectedPiece = p.selectedPiece
	p.historyCounter++
}

// DoSelect hands piece to the opponent: it is removed from the
// available set and recorded as SelectedPiece() for the next DoMove.
func (p *Position) DoSelect(piece int) {
	if assert.DEBUG {
		assert.Assert(piece >= 0 && piece < 16, "Position DoSelect: piece out of range %d", piece)
		assert.Assert(p.selectionState&(1<<uint(piece)) != 0, "Position DoSelect: piece %d already used", piece)
	}
	p.pushHistory()
	p.selectionState &^= 1 << uint(piece)
	p.selectedPiece = piece
}

// DoMove places SelectedPiece() on square (0..15, row*4+col) and clears
// the selection so the next call must be DoSelect.
func (p *Position) DoMove(square int) {
	if assert.DEBUG {
		assert.Assert(square >= 0 && square < 16, "Position DoMove: square out of range %d", square)
		assert.Assert(p.selectedPiece != NoPiece, "Position DoMove: no piece selected")
		assert.Assert(p.B[4]&(1<<uint(square)) == 0, "Position DoMove: square %d already occupied", square)
	}
	p.pushHistory()
	piece := p.selectedPiece
	bit := uint16(1) << uint(square)
	for k := 0; k < 4; k++ {
		if piece&(1<<uint(k)) != 0 {
			p.B[k] |= bit
		}
	}
	p.B[4] |= bit
	p.selectedPiece = NoPiece
}

// UndoMove reverts the last DoMove or DoSelect call.
func (p *Position) UndoMove() {
	if assert.DEBUG {
		assert.Assert(p.historyCounter > 0, "Position UndoMove: nothing to undo")
	}
	p.historyCounter--
	h := &p.history[p.historyCounter]
	p.B = h.b
	p.selectionState = h.selectionState
	p.selectedPiece = h.selectedPiece
}

// SelectedPiece returns the piece currently handed to the player on
// turn, or NoPiece if none has been selected yet.
func (p *Position) SelectedPiece() int {
	return p.selectedPiece
}

// SelectionState returns the bitmask of pieces still available for
// selection (bit i set means piece i is unused).
func (p *Position) SelectionState() uint16 {
	return p.selectionState
}

// IsQuarto reports whether any of the ten winning lines is fully
// occupied and shares the same value (all set or all clear) on at
// least one of the four attribute planes.
func (p *Position) IsQuarto() bool {
	occ := p.B[4]
	for _, mask := range lines {
		if occ&mask != mask {
			continue
		}
		for k := 0; k < 4; k++ {
			v := p.B[k] & mask
			if v == 0 || v == mask {
				return true
			}
		}
	}
	return false
}

// IsGameOver reports whether the game has ended: a quarto has been
// formed, or the board is full with no quarto (a draw).
func (p *Position) IsGameOver() bool {
	return p.B[4] == 0xFFFF || p.IsQuarto()
}

// EmptySquares returns the list of unoccupied square indices.
func (p *Position) EmptySquares() []int {
	free := ^p.B[4]
	squares := make([]int, 0, 16-bits.OnesCount16(p.B[4]))
	for free != 0 {
		sq := bits.TrailingZeros16(free)
		squares = append(squares, sq)
		free &^= 1 << uint(sq)
	}
	return squares
}

// AvailablePieces returns the list of piece indices not yet selected.
func (p *Position) AvailablePieces() []int {
	avail := p.selectionState
	pieces := make([]int, 0, bits.OnesCount16(avail))
	for avail != 0 {
		pc := bits.TrailingZeros16(avail)
		pieces = append(pieces, pc)
		avail &^= 1 << uint(pc)
	}
	return pieces
}

// String renders the board as a 4x4 grid of two-hex-digit piece codes,
// purely for debugging and the CLI - never consulted by search.
func (p *Position) String() string {
	var sb strings.Builder
	for row := 3; row >= 0; row-- {
		for col := 0; col < 4; col++ {
			sq := row*4 + col
			bit := uint16(1) << uint(sq)
			if p.B[4]&bit == 0 {
				sb.WriteString(" .. ")
				continue
			}
			piece := 0
			for k := 0; k < 4; k++ {
				if p.B[k]&bit != 0 {
					piece |= 1 << uint(k)
				}
			}
			sb.WriteString(fmt.Sprintf(" %02x ", piece))
		}
		sb.WriteString("\n")
	}
	if p.selectedPiece != NoPiece {
		sb.WriteString(fmt.Sprintf("selected piece: %02x\n", p.selectedPiece))
	}
	return sb.String()
}
