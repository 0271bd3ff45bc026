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

package transpositiontable

import (
	"os"
	"path"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/0xleft/shminimaxing/internal/canon"
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

func TestStoreAndLookup(t *testing.T) {
	tt := NewTtTable()
	key := canon.Key128{Hi: 1, Lo: 2}

	_, ok := tt.Lookup(key, 3)
	assert.False(t, ok)

	tt.Store(key, 3, Eval(1))
	v, ok := tt.Lookup(key, 3)
	assert.True(t, ok)
	assert.EqualValues(t, 1, v)

	// different piece, same key: no collision
	_, ok = tt.Lookup(key, 4)
	assert.False(t, ok)

	tt.Store(key, 4, Eval(-1))
	v, ok = tt.Lookup(key, 4)
	assert.True(t, ok)
	assert.EqualValues(t, -1, v)

	assert.Equal(t, 1, tt.Size())
	assert.Equal(t, 2, tt.TotalSize())
}

func TestContains(t *testing.T) {
	tt := NewTtTable()
	key := canon.Key128{Hi: 7, Lo: 8}
	assert.False(t, tt.Contains(key))
	tt.Store(key, 0, Eval(0))
	assert.True(t, tt.Contains(key))
}

func TestPurgeZero(t *testing.T) {
	tt := NewTtTable()
	zeroKey := canon.Key128{Hi: 1}
	mixedKey := canon.Key128{Hi: 2}

	tt.Store(zeroKey, 0, Eval(0))
	tt.Store(mixedKey, 0, Eval(0))
	tt.Store(mixedKey, 1, Eval(2))

	tt.PurgeZero()

	assert.False(t, tt.Contains(zeroKey))
	assert.True(t, tt.Contains(mixedKey))
	v, ok := tt.Lookup(mixedKey, 1)
	assert.True(t, ok)
	assert.EqualValues(t, 2, v)
	_, ok = tt.Lookup(mixedKey, 0)
	assert.False(t, ok)
}

func TestClear(t *testing.T) {
	tt := NewTtTable()
	tt.Store(canon.Key128{Hi: 1}, 0, Eval(2))
	assert.Equal(t, 1, tt.Size())
	tt.Clear()
	assert.Equal(t, 0, tt.Size())
	assert.EqualValues(t, 0, tt.Stats.numberOfPuts)
}

// keyWithOcc builds a Key128 shaped like canon.Canonize's actual output:
// occupancy packed into the top 16 bits of Hi, the low 48 bits of Hi
// always zero. Only keys of this shape survive the codec's 48-bit
// truncation round trip, which is why the fixture uses it instead of
// an arbitrary Hi value.
func keyWithOcc(occ uint16, lo uint64) canon.Key128 {
	return canon.Key128{Hi: uint64(occ) << 48, Lo: lo}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	tt := NewTtTable()
	tt.Store(keyWithOcc(1, 100), 0, Eval(2))
	tt.Store(keyWithOcc(1, 100), 5, Eval(-2))
	tt.Store(keyWithOcc(2, 200), 3, Eval(0))

	path := "ss_state_test.shmx"
	defer os.Remove(path)

	assert.NoError(t, tt.Save(path))

	loaded := NewTtTable()
	assert.NoError(t, loaded.Load(path))

	// the zero eval at keyWithOcc(2, 200) is never written to disk
	assert.Equal(t, 2, loaded.TotalSize())
	v, ok := loaded.Lookup(keyWithOcc(1, 100), 0)
	assert.True(t, ok)
	assert.EqualValues(t, 2, v)
	v, ok = loaded.Lookup(keyWithOcc(1, 100), 5)
	assert.True(t, ok)
	assert.EqualValues(t, -2, v)
	assert.False(t, loaded.Contains(keyWithOcc(2, 200)))
}

func TestSaveDropsKeyEntropyOutsideTop16AndLo(t *testing.T) {
	tt := NewTtTable()
	// Hi carries non-zero bits below the top 16 - not a shape Canonize
	// ever produces, but exercises that the codec truncates rather than
	// silently corrupting neighboring keys.
	corrupted := canon.Key128{Hi: uint64(3)<<48 | 0xBEEF, Lo: 42}
	tt.Store(corrupted, 7, Eval(2))

	path := "ss_state_test_trunc.shmx"
	defer os.Remove(path)
	assert.NoError(t, tt.Save(path))

	loaded := NewTtTable()
	assert.NoError(t, loaded.Load(path))
	v, ok := loaded.Lookup(keyWithOcc(3, 42), 7)
	assert.True(t, ok)
	assert.EqualValues(t, 2, v)
}

func TestLoadMissingFileIsNotError(t *testing.T) {
	tt := NewTtTable()
	assert.NoError(t, tt.Load("does-not-exist.shmx"))
	assert.Equal(t, 0, tt.Size())
}

func TestConcurrentAccess(t *testing.T) {
	tt := NewTtTable()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := canon.Key128{Hi: uint64(i)}
			tt.Store(key, i%16, Eval(i%2))
			tt.Lookup(key, i%16)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 32, tt.Size())
}
