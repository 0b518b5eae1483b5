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

// Package sigdb loads magic number databases into signature records.
// A database is a JSON array of {type, offset, signature} entries;
// comments and trailing commas are tolerated so that an operator can
// annotate a database in place.
package sigdb

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sigildev/sigil/internal/magic"
	"github.com/tidwall/jsonc"
)

//go:embed default.jsonc
var defaultDB []byte

// entry mirrors one database record on disk.
type entry struct {
	Type      string `json:"type"`
	Offset    int    `json:"offset"`
	Signature []int  `json:"signature"`
}

// Load parses a signature database from r.
func Load(r io.Reader) ([]magic.SignatureRecord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return parse(data)
}

// LoadFile parses the signature database at path.
func LoadFile(path string) ([]magic.SignatureRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read signature database %q: %w", path, err)
	}

	records, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("signature database %q: %w", path, err)
	}
	return records, nil
}

// Default returns the database embedded in the binary.
func Default() []magic.SignatureRecord {
	records, err := parse(defaultDB)
	if err != nil {
		// The embedded database is validated by tests; failing to
		// parse it means the binary itself is broken.
		panic(fmt.Sprintf("embedded signature database is corrupt: %v", err))
	}
	return records
}

func parse(data []byte) ([]magic.SignatureRecord, error) {
	var entries []entry
	if err := json.Unmarshal(jsonc.ToJSON(data), &entries); err != nil {
		return nil, fmt.Errorf("malformed signature database: %w", err)
	}

	records := make([]magic.SignatureRecord, 0, len(entries))
	for i, e := range entries {
		rec, err := e.toRecord()
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// toRecord validates the on-disk shape of an entry. Structural limits
// on the resulting record (span ceiling, empty pattern) are enforced
// again at index build time.
func (e *entry) toRecord() (magic.SignatureRecord, error) {
	if e.Type == "" {
		return magic.SignatureRecord{}, fmt.Errorf("missing type label")
	}
	if e.Offset < 0 {
		return magic.SignatureRecord{}, fmt.Errorf("negative offset %d for type %q", e.Offset, e.Type)
	}

	pattern := make([]byte, len(e.Signature))
	for i, v := range e.Signature {
		if v < 0 || v > 255 {
			return magic.SignatureRecord{}, fmt.Errorf("byte value %d out of range for type %q", v, e.Type)
		}
		pattern[i] = byte(v)
	}

	return magic.SignatureRecord{
		Type:    e.Type,
		Offset:  e.Offset,
		Pattern: pattern,
	}, nil
}
