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

// Package search implements the exhaustive alpha-beta endgame solver.
// Every placement ends the game, continues it, or forces the mover to
// also hand the next piece to the opponent - both decisions belong to
// the player on turn, so a "move" here is the pair (square, piece)
// and a node's value is simply maximized over every legal pair, exactly
// like a negamax ply in a one-player-decides-everything game.
package search

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/0xleft/shminimaxing/internal/canon"
	myLogging "github.com/0xleft/shminimaxing/internal/logging"
	"github.com/0xleft/shminimaxing/internal/position"
	"github.com/0xleft/shminimaxing/internal/transpositiontable"
)

var out = message.NewPrinter(language.German)

var log = myLogging.GetLog("search")

// Win, Draw and Loss are the only possible exact values this solver
// ever produces: Quarto has no intermediate positional evaluation,
// only won, drawn or lost once played out to the end.
const (
	Loss int8 = -2
	Draw int8 = 0
	Win  int8 = 2
)

// Move is a full turn: placing the piece handed to the mover on Square
// and selecting Piece to hand to the opponent next.
type Move struct {
	Square int
	Piece  int
}

// Search exhaustively solves p to depth maxDepth plies and returns the
// best move for the player on turn together with its exact value and
// the statistics collected along the way. maxDepth should only ever be
// reached when called close enough to the end of the game that it
// actually covers every remaining ply; the dispatcher is responsible
// for only invoking this solver then.
func Search(p *position.Position, tt *transpositiontable.TtTable, maxDepth int, useTT bool) (Move, int8, Statistics) {
	var stats Statistics

	bestMove := Move{Square: -1, Piece: position.NoPiece}
	best := Loss
	alpha, beta := Loss, Win

	for _, sq := range p.EmptySquares() {
		p.DoMove(sq)

		var v int8
		switch {
		case p.IsQuarto():
			v = Win
			stats.LeafEvaluations++
			p.UndoMove()
			if v > best {
				best = v
				bestMove = Move{Square: sq, Piece: position.NoPiece}
			}
		case p.B[4] == 0xFFFF:
			v = Draw
			stats.LeafEvaluations++
			p.UndoMove()
			if v > best {
				best = v
				bestMove = Move{Square: sq, Piece: position.NoPiece}
			}
		default:
			for _, pc := range p.AvailablePieces() {
				p.DoSelect(pc)
				v = -negamax(p, maxDepth-1, -beta, -alpha, tt, useTT, &stats)
				p.UndoMove()
				if v > best {
					best = v
					bestMove = Move{Square: sq, Piece: pc}
				}
			}
			p.UndoMove()
		}

		if best > alpha {
			alpha = best
		}
		if alpha >= beta {
			stats.BetaCuts++
			break
		}
	}

	log.Debugf("search depth=%d %s best=%v value=%d", maxDepth, stats.String(), bestMove, best)
	return bestMove, best, stats
}

// Negamax exposes the recursive negamax workhorse for callers that
// need to fan a single search out across goroutines themselves (the
// dispatcher's one-goroutine-per-placement root split) instead of
// going through the sequential Search entry point.
func Negamax(p *position.Position, depth int, alpha, beta int8, tt *transpositiontable.TtTable, useTT bool, stats *Statistics) int8 {
	return negamax(p, depth, alpha, beta, tt, useTT, stats)
}

// negamax is the recursive workhorse. p enters the call with
// p.SelectedPiece() already handed to the mover; the mover must place
// it (possibly ending the game), then choose a piece to hand over for
// the next ply. The returned value is from the perspective of the
// player who is about to move in p.
func negamax(p *position.Position, depth int, alpha, beta int8, tt *transpositiontable.TtTable, useTT bool, stats *Statistics) int8 {
	stats.NodesVisited++

	if p.IsQuarto() {
		return Loss
	}
	if p.B[4] == 0xFFFF {
		return Draw
	}
	if depth == 0 {
		return Draw
	}

	handedPiece := p.SelectedPiece()
	var key canon.Key128
	if useTT {
		key = canon.Canonize(p)
		if v, ok := tt.Lookup(key, handedPiece); ok {
			stats.TTHits++
			return int8(v)
		}
		stats.TTMisses++
	}

	// cheap pre-scan: if any empty square wins outright for the mover
	// there is no point expanding the full (square, piece) tree below
	// this node. The short-circuit value is stored like a fully searched
	// one; with Win being the maximum any expansion could return, it is
	// also exact.
	for _, sq := range p.EmptySquares() {
		p.DoMove(sq)
		won := p.IsQuarto()
		p.UndoMove()
		if won {
			stats.LeafEvaluations++
			if useTT {
				tt.Store(key, handedPiece, transpositiontable.Eval(Win))
			}
			return Win
		}
	}

	best := Loss
	cutoff := false

	for _, sq := range p.EmptySquares() {
		p.DoMove(sq)

		switch {
		case p.IsQuarto():
			stats.LeafEvaluations++
			p.UndoMove()
			if Win > best {
				best = Win
			}
		case p.B[4] == 0xFFFF:
			stats.LeafEvaluations++
			p.UndoMove()
			if Draw > best {
				best = Draw
			}
		default:
			for _, pc := range p.AvailablePieces() {
				p.DoSelect(pc)
				v := -negamax(p, depth-1, -beta, -alpha, tt, useTT, stats)
				p.UndoMove()
				if v > best {
					best = v
				}
				if best > alpha {
					alpha = best
				}
				if alpha >= beta {
					stats.BetaCuts++
					cutoff = true
					break
				}
			}
			p.UndoMove()
		}

		if best > alpha {
			alpha = best
		}
		if alpha >= beta {
			stats.BetaCuts++
			cutoff = true
		}
		if cutoff {
			break
		}
	}

	// a value cut short by beta is only a lower bound, not the node's
	// real value - memoizing it would poison later probes that arrive
	// with a wider window.
	if useTT && !cutoff {
		tt.Store(key, handedPiece, transpositiontable.Eval(best))
	}
	return best
}
