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

// Package dispatcher picks which search algorithm answers a move
// request and fans the chosen one out across goroutines. Positions
// with few empty squares left are solved exactly by the exhaustive
// negamax in package search; everything before that is too wide to
// finish in time and goes to the UCT search in package mcts instead.
package dispatcher

import (
	"context"
	"math/bits"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/0xleft/shminimaxing/internal/config"
	myLogging "github.com/0xleft/shminimaxing/internal/logging"
	"github.com/0xleft/shminimaxing/internal/mcts"
	"github.com/0xleft/shminimaxing/internal/position"
	"github.com/0xleft/shminimaxing/internal/search"
	"github.com/0xleft/shminimaxing/internal/transpositiontable"
	"github.com/0xleft/shminimaxing/internal/util"
)

var log = myLogging.GetLog("dispatcher")

// Dispatch picks alpha-beta or MCTS for p based on occupancy and
// returns the chosen move encoded as (placement<<4)|selection, exactly
// the code the host interface returns. budget only bounds MCTS; the
// exhaustive solver runs to config.Settings.Search.MaxDepth regardless
// of wall clock. The occupancy threshold and search depth both come
// from package config, which seeds them with the same defaults
// (AlphaBetaFromPieces 7, MaxDepth 10) before any config file is read.
func Dispatch(p *position.Position, tt *transpositiontable.TtTable, budget time.Duration) uint16 {
	if bits.OnesCount16(p.B[4]) >= config.Settings.Search.AlphaBetaFromPieces {
		return dispatchAlphaBeta(p, tt)
	}
	move, stats := mcts.Search(p, budget)
	log.Debugf("mcts dispatch best=%v iterations=%d rootVisits=%d avgRolloutDepth=%.1f",
		move, stats.Iterations, stats.RootVisits, stats.AvgRolloutDepth)
	return encode(move)
}

// encode packs a move into the host interface's 16-bit code. A move
// whose placement already ends the game carries no real selection;
// NoPiece is encoded as 0 since the caller never consults it once the
// game is over.
func encode(m search.Move) uint16 {
	piece := m.Piece
	if piece == position.NoPiece {
		piece = 0
	}
	return uint16(m.Square<<4) | uint16(piece&0xF)
}

type placementResult struct {
	move search.Move
	eval int8
}

// dispatchAlphaBeta runs the exhaustive solver's top level: a cheap
// pre-scan for a one-ply win short-circuits the whole search, and
// otherwise every empty square is explored by its own goroutine,
// bounded by a weighted semaphore so a 16-wide fan-out doesn't
// oversubscribe a small machine the way one goroutine per placement
// unconditionally would.
func dispatchAlphaBeta(p *position.Position, tt *transpositiontable.TtTable) uint16 {
	for _, sq := range p.EmptySquares() {
		p.DoMove(sq)
		won := p.IsQuarto()
		p.UndoMove()
		if won {
			return uint16(sq << 4)
		}
	}

	squares := p.EmptySquares()
	results := make([]placementResult, len(squares))

	sem := semaphore.NewWeighted(int64(util.Max(1, runtime.NumCPU())))
	var wg sync.WaitGroup
	for i, sq := range squares {
		wg.Add(1)
		go func(i, sq int) {
			defer wg.Done()
			_ = sem.Acquire(context.Background(), 1)
			defer sem.Release(1)
			results[i] = evalPlacement(p, sq, tt)
		}(i, sq)
	}
	wg.Wait()

	best := 0
	for i := 1; i < len(results); i++ {
		if results[i].eval > results[best].eval {
			best = i
		}
	}

	if config.Settings.TT.PurgeZeroAfterSearch {
		tt.PurgeZero()
	}
	log.Debugf("alpha-beta dispatch best=%v eval=%d", results[best].move, results[best].eval)
	return encode(results[best].move)
}

// evalPlacement clones p, applies the placement at sq, and returns the
// best (selection, value) pair from the mover's perspective: for each
// still-available piece, hand it to the opponent and negate the
// opponent's negamax value.
func evalPlacement(p *position.Position, sq int, tt *transpositiontable.TtTable) placementResult {
	clone := p.Clone()
	clone.DoMove(sq)

	if clone.IsQuarto() {
		return placementResult{move: search.Move{Square: sq, Piece: position.NoPiece}, eval: search.Win}
	}
	if clone.B[4] == 0xFFFF {
		return placementResult{move: search.Move{Square: sq, Piece: position.NoPiece}, eval: search.Draw}
	}

	var stats search.Statistics
	best := search.Loss
	bestPiece := position.NoPiece
	for _, pc := range clone.AvailablePieces() {
		clone.DoSelect(pc)
		v := -search.Negamax(clone, config.Settings.Search.MaxDepth-1, search.Loss, search.Win, tt, config.Settings.Search.UseTT, &stats)
		clone.UndoMove()
		if v > best {
			best = v
			bestPiece = pc
		}
	}
	return placementResult{move: search.Move{Square: sq, Piece: bestPiece}, eval: best}
}
