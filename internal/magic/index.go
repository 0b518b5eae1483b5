// Copyright (c) 2025 The sigil authors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
package magic

import (
	"sort"
)

// Match is a successful signature lookup. Length is the total number
// of header bytes the winning record accounts for (offset + pattern
// length) and ranks the specificity of the match.
type Match struct {
	Type   string
	Length int
}

// Index answers "which known type, if any, best matches this header"
// over an immutable set of signature records. Signatures starting at
// different offsets live in separate tries keyed by offset, so
// unrelated signature families never share prefix state.
//
// An Index never mutates after NewIndex returns and is safe for
// concurrent lookups without locking.
type Index struct {
	roots   map[int]*trieNode
	offsets []int // ascending

	headerLen int
	count     int
}

// NewIndex validates records and builds the lookup structure.
// Duplicate (offset, pattern) pairs collapse to a single terminal
// accumulating all of their labels. Any structurally invalid record
// fails the whole build with ErrInvalidSignature: a database that
// cannot be trusted in part cannot be trusted at all.
func NewIndex(records []SignatureRecord) (*Index, error) {
	idx := &Index{
		roots: make(map[int]*trieNode),
	}

	for i := range records {
		rec := &records[i]
		if err := rec.validate(); err != nil {
			return nil, err
		}

		root, ok := idx.roots[rec.Offset]
		if !ok {
			root = newTrieNode()
			idx.roots[rec.Offset] = root
			idx.offsets = append(idx.offsets, rec.Offset)
		}
		root.insert(rec.Pattern, rec.Type)

		idx.headerLen = max(idx.headerLen, rec.Span())
		idx.count++
	}

	sort.Ints(idx.offsets)
	return idx, nil
}

// HeaderLen reports how many leading file bytes are needed to test
// every signature in the index. Zero for an empty index.
func (idx *Index) HeaderLen() int {
	return idx.headerLen
}

// Signatures reports the number of records the index was built from.
func (idx *Index) Signatures() int {
	return idx.count
}

// Lookup scans header for the most specific known signature and is a
// pure function of the index and the buffer.
//
// Specificity is the total number of header bytes a record accounts
// for. When two candidates at different offsets tie, the smallest
// offset wins; when a single terminal carries several labels, the
// lexicographically smallest wins. Equal inputs therefore always
// produce equal results.
//
// A header shorter than HeaderLen is a normal input, not a fault:
// candidates needing bytes past the end of the buffer are simply
// excluded from consideration.
func (idx *Index) Lookup(header []byte) (Match, bool) {
	var (
		best  Match
		found bool
	)

	for _, off := range idx.offsets {
		if off >= len(header) {
			// Offsets are ascending: nothing further can start inside the buffer.
			break
		}

		labels, depth := idx.roots[off].walk(header[off:])
		if depth == 0 {
			continue
		}

		length := off + depth
		if !found || length > best.Length {
			best = Match{
				Type:   minLabel(labels),
				Length: length,
			}
			found = true
		}
	}
	return best, found
}

// minLabel picks the lexicographically smallest label of a terminal.
func minLabel(labels []string) string {
	m := labels[0]
	for _, l := range labels[1:] {
		if l < m {
			m = l
		}
	}
	return m
}
