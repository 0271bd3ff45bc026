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

// Package quarto is the host-facing entry point: a single call that
// takes a board, the selection state and the piece handed to the
// mover, and returns the engine's chosen (square, piece) pair packed
// into one 16-bit code. Everything else - which algorithm runs, the
// transposition table's lifetime, configuration loading - is this
// package's responsibility so the host never has to know about it.
package quarto

import (
	"sync"
	"time"

	"github.com/0xleft/shminimaxing/internal/config"
	"github.com/0xleft/shminimaxing/internal/dispatcher"
	myLogging "github.com/0xleft/shminimaxing/internal/logging"
	"github.com/0xleft/shminimaxing/internal/position"
	"github.com/0xleft/shminimaxing/internal/transpositiontable"
)

var log = myLogging.GetLog("quarto")

var (
	ttOnce sync.Once
	tt     *transpositiontable.TtTable
)

// Table returns the process-wide transposition table, creating it and
// loading it from config.Settings.TT.Path on the first call. A missing
// or unreadable file is logged and otherwise ignored - the table just
// starts empty, the same way a fresh install would.
func Table() *transpositiontable.TtTable {
	ttOnce.Do(func() {
		tt = transpositiontable.NewTtTable()
		if config.Settings.TT.LoadOnStartup {
			if err := tt.Load(config.Settings.TT.Path); err != nil {
				log.Warningf("could not load transposition table from %s: %v", config.Settings.TT.Path, err)
			}
		}
	})
	return tt
}

// ComputeMove is the host call. board holds the five bitboard planes,
// selectionState the pieces still available and selectedPiece the
// piece already handed to the mover, or any sentinel value >= 16 (see
// position.NoPiece) on the game's opening move, when the board is
// still empty and there is nothing yet to place. timeRemainingMs
// bounds the MCTS branch only; it is ignored once occupancy has
// crossed into alpha-beta territory. A non-positive budget falls back
// to config.Settings.Mcts.DefaultBudgetMs. The return value packs the
// chosen square into the top 12 bits and the chosen piece into the
// bottom 4, (square<<4)|piece - except on the opening move, which has
// no square to place and returns the chosen piece alone.
func ComputeMove(board [5]uint16, selectionState uint16, selectedPiece int, timeRemainingMs int) uint16 {
	config.Setup()

	if selectedPiece < 0 || selectedPiece >= 16 {
		return chooseOpeningPiece(selectionState)
	}

	p := position.NewPositionFrom(board, selectionState, selectedPiece)

	budget := time.Duration(timeRemainingMs) * time.Millisecond
	if budget <= 0 {
		budget = time.Duration(config.Settings.Mcts.DefaultBudgetMs) * time.Millisecond
	}

	return dispatcher.Dispatch(p, Table(), budget)
}

// chooseOpeningPiece handles the one call in a game where there is
// nothing on the board to place yet: every piece is interchangeable by
// the symmetry group that canon.Canonize minimizes over, so handing
// over the lowest-indexed available piece is as good as any other and
// avoids running a search that cannot distinguish its candidates.
func chooseOpeningPiece(selectionState uint16) uint16 {
	p := position.NewPositionFrom([5]uint16{}, selectionState, position.NoPiece)
	pieces := p.AvailablePieces()
	if len(pieces) == 0 {
		return 0
	}
	return uint16(pieces[0])
}

// Save persists the process-wide transposition table to
// config.Settings.TT.Path.
func Save() error {
	return Table().Save(config.Settings.TT.Path)
}
