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
	"errors"
	"fmt"
)

// MaxSpan caps the number of leading file bytes a single signature may
// claim (offset + pattern length). A record exceeding it is almost
// certainly a corrupt database entry and would otherwise force
// arbitrarily large header reads.
const MaxSpan = 4096

var ErrInvalidSignature = errors.New("invalid signature")

// SignatureRecord associates a file type label with a byte pattern
// expected at a fixed offset from the start of the file.
type SignatureRecord struct {
	Type    string
	Offset  int
	Pattern []byte
}

// Span returns the number of leading file bytes the record claims.
func (r *SignatureRecord) Span() int {
	return r.Offset + len(r.Pattern)
}

func (r *SignatureRecord) validate() error {
	if len(r.Pattern) == 0 {
		return fmt.Errorf("%w: empty pattern for type %q", ErrInvalidSignature, r.Type)
	}
	if r.Offset < 0 {
		return fmt.Errorf("%w: negative offset %d for type %q", ErrInvalidSignature, r.Offset, r.Type)
	}
	if r.Span() > MaxSpan {
		return fmt.Errorf("%w: span of %d bytes exceeds the %d byte limit for type %q", ErrInvalidSignature, r.Span(), MaxSpan, r.Type)
	}
	return nil
}
