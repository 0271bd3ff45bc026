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

// Package mcts implements a plain UCT search for the middlegame, where
// the board is too open for the exhaustive solver in package search to
// finish in time. A fixed pool of worker goroutines shares one tree:
// each iteration walks down by UCT until it finds a node with an
// unvisited child, expands that node once, finishes the game with a
// biased random rollout, and backs the result up the path it took.
// There is no learned policy or value network - rollouts are plain
// random play with a one-ply lookahead so a move that wins outright is
// never missed.
package mcts

import (
	"context"
	"math"
	"math/bits"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/0xleft/shminimaxing/internal/config"
	"github.com/0xleft/shminimaxing/internal/position"
	"github.com/0xleft/shminimaxing/internal/search"
	"github.com/0xleft/shminimaxing/internal/util"
)

// Workers is the size of the rollout worker pool when the configuration
// does not override it.
const Workers = 16

// Exploration is the UCT constant C when the configuration does not
// override it. sqrt(2) is the textbook choice that balances
// exploitation of the best-known child against trying ones with few
// visits.
const Exploration = math.Sqrt2

// rollout reward constants. A loss is penalized far harder than a win
// is rewarded; changing these shifts move choice, so treat them as
// part of the engine's calibration rather than free parameters.
const (
	rewardLoss = -10
	rewardWin  = 3
	rewardElse = 1
)

// node is one tree node, shared by every worker goroutine. n and t are
// updated atomically so UCT scoring never blocks; only expansion
// (which populates children) takes the mutex, and only once per node.
// expanded is checked lock-free before falling back to the mutex, since
// every worker revisits a node's expansion state on every descent.
type node struct {
	parent *node
	move   search.Move // the (placement, selection) edge from parent to this node

	n int64 // atomic visit count
	t int64 // atomic accumulated reward

	mu       sync.Mutex
	expanded util.Bool
	children []*node
}

func (n *node) uct(parentVisits int64) float64 {
	visits := atomic.LoadInt64(&n.n)
	if visits == 0 {
		return math.Inf(1)
	}
	mean := float64(atomic.LoadInt64(&n.t)) / float64(visits)
	c := config.Settings.Mcts.ExplorationConstant
	if c <= 0 {
		c = Exploration
	}
	return mean + c*math.Sqrt(math.Log(float64(parentVisits))/float64(visits))
}

// Stats summarizes one Search call for logging and the CLI's bench
// mode; nothing in move selection consults it.
type Stats struct {
	Iterations      uint64
	RootVisits      int64
	AvgRolloutDepth float64
}

// Search runs config.Settings.Mcts.Workers UCT goroutines against p
// (Workers when unconfigured) until budget elapses
// and returns the root child with the highest visit count - the
// classic robust-child choice, more reliable with few playouts than
// the highest mean reward.
func Search(p *position.Position, budget time.Duration) (search.Move, Stats) {
	root := &node{}
	var iterations, rolloutDepthSum uint64

	ctx, cancel := context.WithTimeout(context.Background(), budget)
	defer cancel()

	workers := config.Settings.Mcts.Workers
	if workers <= 0 {
		workers = Workers
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			clone := p.Clone()
			for {
				select {
				case <-ctx.Done():
					return
				default:
				}
				depth := runIteration(clone, root, rng)
				atomic.AddUint64(&iterations, 1)
				atomic.AddUint64(&rolloutDepthSum, uint64(depth))
			}
		}(time.Now().UnixNano() + int64(w))
	}
	wg.Wait()

	root.mu.Lock()
	children := root.children
	root.mu.Unlock()

	best := search.Move{Square: -1, Piece: position.NoPiece}
	var bestVisits int64
	for _, c := range children {
		v := atomic.LoadInt64(&c.n)
		if v > bestVisits {
			bestVisits = v
			best = c.move
		}
	}

	stats := Stats{Iterations: atomic.LoadUint64(&iterations), RootVisits: atomic.LoadInt64(&root.n)}
	if stats.Iterations > 0 {
		stats.AvgRolloutDepth = float64(atomic.LoadUint64(&rolloutDepthSum)) / float64(stats.Iterations)
	}
	return best, stats
}

// runIteration performs one select -> expand -> rollout -> backpropagate
// pass against p, which starts and ends at the same game state: every
// DoMove/DoSelect this call makes on p is undone before it returns. It
// reports how many mutation steps the rollout itself took, a rough
// depth measure for the bench counters.
func runIteration(p *position.Position, root *node, rng *rand.Rand) int {
	path, steps := selectAndExpand(p, root, rng)
	reward, rolloutSteps := rollout(p, rng)
	steps += rolloutSteps

	for _, n := range path {
		atomic.AddInt64(&n.t, reward)
		atomic.AddInt64(&n.n, 1)
	}

	for i := 0; i < steps; i++ {
		p.UndoMove()
	}
	return rolloutSteps
}

// selectAndExpand walks from root down through the tree, applying each
// edge's move to p as it descends. A node is "fully expanded" once
// every one of its children has at least one visit; while that holds,
// descent follows the highest-UCT child. The first node found with an
// unvisited child has one of those children applied and returned as
// the new leaf. A terminal position (no legal children) is returned as
// its own leaf so rollout can score it directly.
func selectAndExpand(p *position.Position, root *node, rng *rand.Rand) ([]*node, int) {
	path := []*node{root}
	cur := root
	steps := 0

	for {
		if p.IsGameOver() {
			return path, steps
		}

		if !cur.expanded.Load() {
			cur.mu.Lock()
			if !cur.expanded.Load() {
				expandLocked(p, cur)
				cur.expanded.Store(true)
			}
			cur.mu.Unlock()
		}
		cur.mu.Lock()
		children := cur.children
		cur.mu.Unlock()

		if len(children) == 0 {
			return path, steps
		}

		var unvisited []*node
		for _, c := range children {
			if atomic.LoadInt64(&c.n) == 0 {
				unvisited = append(unvisited, c)
			}
		}

		if len(unvisited) > 0 {
			leaf := unvisited[rng.Intn(len(unvisited))]
			steps += applyEdge(p, leaf.move)
			return append(path, leaf), steps
		}

		next := selectByUCT(children, atomic.LoadInt64(&cur.n))
		steps += applyEdge(p, next.move)
		path = append(path, next)
		cur = next
	}
}

func selectByUCT(children []*node, parentVisits int64) *node {
	if parentVisits == 0 {
		parentVisits = 1
	}
	best := children[0]
	bestScore := math.Inf(-1)
	for _, c := range children {
		s := c.uct(parentVisits)
		if s > bestScore {
			bestScore = s
			best = c
		}
	}
	return best
}

// expandLocked populates n's children with every legal (placement,
// selection) pair reachable from p: the cross product of empty squares
// and still-available pieces. Called with the terminal check for p
// already known false and n.mu held; a terminal p gets no children,
// which marks the node as a leaf for every future visit.
func expandLocked(p *position.Position, n *node) {
	squares := p.EmptySquares()
	pieces := p.AvailablePieces()
	n.children = make([]*node, 0, len(squares)*len(pieces))
	for _, sq := range squares {
		for _, pc := range pieces {
			n.children = append(n.children, &node{parent: n, move: search.Move{Square: sq, Piece: pc}})
		}
	}
}

// applyEdge places m.Square and, unless that placement ends the game,
// hands m.Piece to the opponent. It returns how many DoMove/DoSelect
// calls it made so the caller can undo exactly that many.
func applyEdge(p *position.Position, m search.Move) int {
	p.DoMove(m.Square)
	if p.IsGameOver() {
		return 1
	}
	p.DoSelect(m.Piece)
	return 2
}

// sideToMove reads the rollout's terminal-state parity: the number of
// placed pieces, mod 2, distinguishes the two players since placements
// strictly alternate turn. Side 0 made the most recent placement on an
// odd occupancy count; side 1 is whichever side would place next.
func sideToMove(p *position.Position) int {
	return bits.OnesCount16(p.B[4]) % 2
}

// rollout finishes the game with a biased random policy: at each step,
// if some legal placement would immediately complete a quarto for the
// mover, a winning square is chosen uniformly from that subset;
// otherwise a placement is chosen uniformly from every empty square.
// Which piece to hand over next never affects whether a placement
// wins, so it is always chosen uniformly from the pieces available at
// that point. It returns the terminal reward and how many
// DoMove/DoSelect calls it made, so the caller can undo them together
// with the tree descent's own steps.
func rollout(p *position.Position, rng *rand.Rand) (int64, int) {
	steps := 0
	for !p.IsGameOver() {
		squares := p.EmptySquares()
		pieces := p.AvailablePieces()

		sq := pickSquare(p, squares, rng)
		p.DoMove(sq)
		steps++
		if p.IsGameOver() {
			break
		}
		p.DoSelect(pieces[rng.Intn(len(pieces))])
		steps++
	}

	return terminalReward(p), steps
}

// pickSquare returns a square uniformly drawn from the subset of
// squares that would complete a quarto if the currently selected piece
// were placed there, or uniformly from every empty square if no such
// square exists.
func pickSquare(p *position.Position, squares []int, rng *rand.Rand) int {
	var winning []int
	for _, sq := range squares {
		p.DoMove(sq)
		won := p.IsQuarto()
		p.UndoMove()
		if won {
			winning = append(winning, sq)
		}
	}
	if len(winning) > 0 {
		return winning[rng.Intn(len(winning))]
	}
	return squares[rng.Intn(len(squares))]
}

// terminalReward scores a game-over position p reached by rollout.
// A quarto scores rewardLoss or rewardWin by sideToMove; every other
// game-over position - a full board with no quarto, i.e. a draw -
// scores rewardElse.
func terminalReward(p *position.Position) int64 {
	if p.IsQuarto() {
		if sideToMove(p) == 1 {
			return rewardLoss
		}
		return rewardWin
	}
	return rewardElse
}
