package magic_test

import (
	"testing"

	"github.com/sigildev/sigil/internal/magic"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte{137, 80, 78, 71, 13, 10, 26, 10}

func TestEmptyIndex(t *testing.T) {
	idx, err := magic.NewIndex(nil)
	require.NoError(t, err)

	require.Equal(t, 0, idx.HeaderLen())
	require.Equal(t, 0, idx.Signatures())

	_, ok := idx.Lookup([]byte{0xFF, 0xD8, 0xFF})
	require.False(t, ok)

	_, ok = idx.Lookup(nil)
	require.False(t, ok)
}

func TestInvalidRecords(t *testing.T) {
	_, err := magic.NewIndex([]magic.SignatureRecord{
		{Type: "PNG", Offset: 0, Pattern: nil},
	})
	require.ErrorIs(t, err, magic.ErrInvalidSignature)

	_, err = magic.NewIndex([]magic.SignatureRecord{
		{Type: "PNG", Offset: -1, Pattern: pngHeader},
	})
	require.ErrorIs(t, err, magic.ErrInvalidSignature)

	_, err = magic.NewIndex([]magic.SignatureRecord{
		{Type: "PNG", Offset: magic.MaxSpan, Pattern: []byte{1}},
	})
	require.ErrorIs(t, err, magic.ErrInvalidSignature)

	// One rotten record spoils the whole database.
	_, err = magic.NewIndex([]magic.SignatureRecord{
		{Type: "PNG", Offset: 0, Pattern: pngHeader},
		{Type: "BAD", Offset: 0, Pattern: nil},
	})
	require.ErrorIs(t, err, magic.ErrInvalidSignature)
}

func TestLookupExactMatch(t *testing.T) {
	idx, err := magic.NewIndex([]magic.SignatureRecord{
		{Type: "PNG", Offset: 0, Pattern: pngHeader},
	})
	require.NoError(t, err)
	require.Equal(t, 8, idx.HeaderLen())

	m, ok := idx.Lookup(append(append([]byte{}, pngHeader...), 0, 0, 13))
	require.True(t, ok)
	require.Equal(t, magic.Match{Type: "PNG", Length: 8}, m)

	// Agreement on the first 7 bytes only is not a match.
	corrupt := append([]byte{}, pngHeader...)
	corrupt[7] = 0x00
	_, ok = idx.Lookup(corrupt)
	require.False(t, ok)
}

func TestLookupPrefersLongerPattern(t *testing.T) {
	idx, err := magic.NewIndex([]magic.SignatureRecord{
		{Type: "SHORT", Offset: 0, Pattern: []byte("GIF8")},
		{Type: "GIF", Offset: 0, Pattern: []byte("GIF89a")},
	})
	require.NoError(t, err)

	m, ok := idx.Lookup([]byte("GIF89a...."))
	require.True(t, ok)
	require.Equal(t, "GIF", m.Type)
	require.Equal(t, 6, m.Length)

	// The longer pattern dies at byte 5, so the prefix record wins.
	m, ok = idx.Lookup([]byte("GIF87a...."))
	require.True(t, ok)
	require.Equal(t, "SHORT", m.Type)
	require.Equal(t, 4, m.Length)
}

func TestLookupPrefersLargerSpanAcrossOffsets(t *testing.T) {
	idx, err := magic.NewIndex([]magic.SignatureRecord{
		{Type: "RIFF", Offset: 0, Pattern: []byte("RIFF")},
		{Type: "WEBP", Offset: 8, Pattern: []byte("WEBP")},
	})
	require.NoError(t, err)
	require.Equal(t, 12, idx.HeaderLen())

	m, ok := idx.Lookup([]byte("RIFF\x00\x00\x00\x00WEBPVP8 "))
	require.True(t, ok)
	require.Equal(t, magic.Match{Type: "WEBP", Length: 12}, m)
}

func TestLookupTieBreak(t *testing.T) {
	// Both candidates account for 6 header bytes.
	records := []magic.SignatureRecord{
		{Type: "ZZZ", Offset: 2, Pattern: []byte{0x03, 0x04, 0x05, 0x06}},
		{Type: "AAA", Offset: 0, Pattern: []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06}},
	}
	buf := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07}

	idx, err := magic.NewIndex(records)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		m, ok := idx.Lookup(buf)
		require.True(t, ok)
		require.Equal(t, magic.Match{Type: "AAA", Length: 6}, m)
	}
}

func TestLookupDuplicateSignatureLabels(t *testing.T) {
	ebml := []byte{0x1A, 0x45, 0xDF, 0xA3}

	// MKV and WEBM share the exact same signature: the terminal keeps
	// both labels and lookup settles on the smaller one.
	idx, err := magic.NewIndex([]magic.SignatureRecord{
		{Type: "WEBM", Offset: 0, Pattern: ebml},
		{Type: "MKV", Offset: 0, Pattern: ebml},
		{Type: "MKV", Offset: 0, Pattern: ebml},
	})
	require.NoError(t, err)

	m, ok := idx.Lookup(append(append([]byte{}, ebml...), 0x42))
	require.True(t, ok)
	require.Equal(t, "MKV", m.Type)
}

func TestLookupTruncatedHeader(t *testing.T) {
	idx, err := magic.NewIndex([]magic.SignatureRecord{
		{Type: "PNG", Offset: 0, Pattern: pngHeader},
		{Type: "TAR", Offset: 257, Pattern: []byte("ustar")},
		{Type: "BMP", Offset: 0, Pattern: []byte("BM")},
	})
	require.NoError(t, err)
	require.Equal(t, 262, idx.HeaderLen())

	// A header shorter than every claimed span never faults and never
	// matches a candidate whose bytes are unavailable.
	_, ok := idx.Lookup(pngHeader[:7])
	require.False(t, ok)

	_, ok = idx.Lookup(nil)
	require.False(t, ok)

	m, ok := idx.Lookup([]byte("BM6"))
	require.True(t, ok)
	require.Equal(t, magic.Match{Type: "BMP", Length: 2}, m)
}

func TestRebuildIsDeterministic(t *testing.T) {
	records := []magic.SignatureRecord{
		{Type: "JPG", Offset: 0, Pattern: []byte{0xFF, 0xD8, 0xFF}},
		{Type: "PNG", Offset: 0, Pattern: pngHeader},
		{Type: "TAR", Offset: 257, Pattern: []byte("ustar")},
	}
	buf := append(append([]byte{}, pngHeader...), 0xAA, 0xBB)

	a, err := magic.NewIndex(records)
	require.NoError(t, err)
	b, err := magic.NewIndex(records)
	require.NoError(t, err)

	ma, oka := a.Lookup(buf)
	mb, okb := b.Lookup(buf)
	require.Equal(t, oka, okb)
	require.Equal(t, ma, mb)
}
