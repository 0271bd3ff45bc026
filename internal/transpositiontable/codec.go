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

package transpositiontable

import (
	"bufio"
	"encoding/binary"
	"io"
	"os"
	"path/filepath"

	"github.com/0xleft/shminimaxing/internal/canon"
	"github.com/0xleft/shminimaxing/internal/util"
)

// Save writes every stored evaluation to path in the engine's compact
// binary layout: for each canonical position, a 2-byte big-endian
// truncation of the upper 16 bits of the 128-bit key, the 8-byte
// big-endian lower 64 bits, a one-byte count of (piece, eval) pairs and
// that many (piece byte, eval byte) pairs. There is no header, version
// marker or checksum; the file is read back to EOF. Zero-valued evals
// are never written: the format reserves zero as "absent", and in
// practice PurgeZero runs before every save path this engine uses
// anyway.
func (tt *TtTable) Save(path string) error {
	tt.mu.RLock()
	defer tt.mu.RUnlock()

	resolved, err := util.ResolveFile(path)
	if err != nil {
		return err
	}
	if _, err := util.ResolveCreateFolder(filepath.Dir(resolved)); err != nil {
		return err
	}

	f, err := os.Create(resolved)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for key, byPiece := range tt.data {
		var nonZero []int
		for piece, eval := range byPiece {
			if eval != 0 {
				nonZero = append(nonZero, piece)
			}
		}
		if len(nonZero) == 0 {
			continue
		}
		hi16 := uint16(key.Hi >> 48)
		if err := binary.Write(w, binary.BigEndian, hi16); err != nil {
			return err
		}
		if err := binary.Write(w, binary.BigEndian, key.Lo); err != nil {
			return err
		}
		if err := w.WriteByte(byte(len(nonZero))); err != nil {
			return err
		}
		for _, piece := range nonZero {
			if err := w.WriteByte(byte(piece)); err != nil {
				return err
			}
			if err := w.WriteByte(byte(byPiece[piece])); err != nil {
				return err
			}
		}
	}
	return w.Flush()
}

// Load replaces the table's contents with the entries read from path.
// An absent file is not an error: the table is simply left empty, the
// same state a fresh engine run would start from. The middle 48 bits of
// every reconstructed key are zero - the persisted format never stored
// them, relying on canon.Canonize always placing an empty, all-zero
// run there (see canon.pack).
func (tt *TtTable) Load(path string) error {
	resolved, err := util.ResolveFile(path)
	if err != nil {
		return err
	}
	f, err := os.Open(resolved)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()

	data := make(map[canon.Key128]map[int]Eval)
	r := bufio.NewReader(f)
	for {
		var hi16 uint16
		if err := binary.Read(r, binary.BigEndian, &hi16); err != nil {
			if err == io.EOF {
				break
			}
			return err
		}
		var lo uint64
		if err := binary.Read(r, binary.BigEndian, &lo); err != nil {
			return err
		}
		count, err := r.ReadByte()
		if err != nil {
			return err
		}
		key := canon.Key128{Hi: uint64(hi16) << 48, Lo: lo}
		byPiece := make(map[int]Eval, count)
		for i := 0; i < int(count); i++ {
			piece, err := r.ReadByte()
			if err != nil {
				return err
			}
			evalByte, err := r.ReadByte()
			if err != nil {
				return err
			}
			byPiece[int(piece)] = Eval(int8(evalByte))
		}
		data[key] = byPiece
	}

	tt.mu.Lock()
	tt.data = data
	tt.mu.Unlock()
	return nil
}
