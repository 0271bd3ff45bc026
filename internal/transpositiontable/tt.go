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

// Package transpositiontable implements the exact transposition table
// used by both search algorithms. Unlike a fixed hash-addressed table
// this one never collides: it stores one evaluation per (canonical
// board, piece about to be placed) pair, since a canonicalized Quarto
// position has no useful notion of a "good enough" slot to evict.
// TtTable is safe for concurrent use: many goroutines may call Lookup
// while one calls Store, guarded internally by a RWMutex.
package transpositiontable

import (
	"sync"
	"sync/atomic"

	"github.com/op/go-logging"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/0xleft/shminimaxing/internal/canon"
	myLogging "github.com/0xleft/shminimaxing/internal/logging"
	"github.com/0xleft/shminimaxing/internal/util"
)

var out = message.NewPrinter(language.German)

// Eval is a terminal/backed-up search value. Quarto evaluations are
// small (win/draw/loss family, plus alpha-beta's bounded scores), so a
// single signed byte is ample precision.
type Eval int8

// TtTable is the transposition table. Create with NewTtTable().
type TtTable struct {
	log   *logging.Logger
	mu    sync.RWMutex
	data  map[canon.Key128]map[int]Eval
	Stats TtStats
}

// TtStats holds statistical data on tt usage. The counters are updated
// atomically: Lookup increments hits/misses while holding only the read
// lock, so concurrent readers may count at the same time.
type TtStats struct {
	numberOfPuts   uint64
	numberOfHits   uint64
	numberOfMisses uint64
}

// NewTtTable creates an empty TtTable.
func NewTtTable() *TtTable {
	return &TtTable{
		log:  myLogging.GetLog("tt"),
		data: make(map[canon.Key128]map[int]Eval),
	}
}

// Store records the evaluation of placing piece on the position whose
// canonical key is key.
func (tt *TtTable) Store(key canon.Key128, piece int, eval Eval) {
	tt.mu.Lock()
	defer tt.mu.Unlock()
	atomic.AddUint64(&tt.Stats.numberOfPuts, 1)
	byPiece, ok := tt.data[key]
	if !ok {
		byPiece = make(map[int]Eval, 1)
		tt.data[key] = byPiece
	}
	byPiece[piece] = eval
}

// Lookup returns the stored evaluation for (key, piece) and whether it
// was present.
func (tt *TtTable) Lookup(key canon.Key128, piece int) (Eval, bool) {
	tt.mu.RLock()
	defer tt.mu.RUnlock()
	byPiece, ok := tt.data[key]
	if !ok {
		atomic.AddUint64(&tt.Stats.numberOfMisses, 1)
		return 0, false
	}
	v, ok := byPiece[piece]
	if ok {
		atomic.AddUint64(&tt.Stats.numberOfHits, 1)
	} else {
		atomic.AddUint64(&tt.Stats.numberOfMisses, 1)
	}
	return v, ok
}

// Contains reports whether key has any stored evaluation at all.
func (tt *TtTable) Contains(key canon.Key128) bool {
	tt.mu.RLock()
	defer tt.mu.RUnlock()
	_, ok := tt.data[key]
	return ok
}

// PurgeZero removes every stored evaluation equal to zero. Zero-value
// entries are frequently draws recorded defensively during search and
// are cheap to recompute, so dropping them after a top-level search
// keeps the table's long-term footprint down.
func (tt *TtTable) PurgeZero() {
	tt.mu.Lock()
	defer tt.mu.Unlock()
	for key, byPiece := range tt.data {
		for piece, eval := range byPiece {
			if eval == 0 {
				delete(byPiece, piece)
			}
		}
		if len(byPiece) == 0 {
			delete(tt.data, key)
		}
	}
	tt.log.Debug(util.MemStat())
}

// Clear empties the table and resets statistics.
func (tt *TtTable) Clear() {
	tt.mu.Lock()
	defer tt.mu.Unlock()
	tt.data = make(map[canon.Key128]map[int]Eval)
	tt.Stats = TtStats{}
}

// Size returns the number of distinct canonical positions stored.
func (tt *TtTable) Size() int {
	tt.mu.RLock()
	defer tt.mu.RUnlock()
	return len(tt.data)
}

// TotalSize returns the total number of (position, piece) evaluations
// stored across every canonical position.
func (tt *TtTable) TotalSize() int {
	tt.mu.RLock()
	defer tt.mu.RUnlock()
	n := 0
	for _, byPiece := range tt.data {
		n += len(byPiece)
	}
	return n
}

// String returns a human readable summary of table usage, in the style
// of the engine's locale-formatted stats dumps.
func (tt *TtTable) String() string {
	tt.mu.RLock()
	defer tt.mu.RUnlock()
	puts := atomic.LoadUint64(&tt.Stats.numberOfPuts)
	hits := atomic.LoadUint64(&tt.Stats.numberOfHits)
	misses := atomic.LoadUint64(&tt.Stats.numberOfMisses)
	return out.Sprintf("TT: positions %d puts %d hits %d (%d%%) misses %d (%d%%)",
		len(tt.data), puts,
		hits, (hits*100)/(1+hits+misses),
		misses, (misses*100)/(1+hits+misses))
}
