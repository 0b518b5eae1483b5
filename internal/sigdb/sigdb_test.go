package sigdb_test

import (
	"strings"
	"testing"

	"github.com/sigildev/sigil/internal/magic"
	"github.com/sigildev/sigil/internal/sigdb"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	db := `
	// annotated database
	[
		{ "type": "PNG", "offset": 0, "signature": [137, 80, 78, 71, 13, 10, 26, 10] },
		{ "type": "TAR", "offset": 257, "signature": [117, 115, 116, 97, 114] }, // trailing comma below
	]`

	records, err := sigdb.Load(strings.NewReader(db))
	require.NoError(t, err)
	require.Len(t, records, 2)

	require.Equal(t, magic.SignatureRecord{
		Type:    "PNG",
		Offset:  0,
		Pattern: []byte{137, 80, 78, 71, 13, 10, 26, 10},
	}, records[0])

	require.Equal(t, "TAR", records[1].Type)
	require.Equal(t, 257, records[1].Offset)
	require.Equal(t, []byte("ustar"), records[1].Pattern)
}

func TestLoadRejectsMalformedEntries(t *testing.T) {
	tests := []struct {
		name string
		db   string
	}{
		{
			name: "byte value out of range",
			db:   `[{ "type": "PNG", "offset": 0, "signature": [300] }]`,
		},
		{
			name: "negative byte value",
			db:   `[{ "type": "PNG", "offset": 0, "signature": [-1] }]`,
		},
		{
			name: "negative offset",
			db:   `[{ "type": "PNG", "offset": -4, "signature": [137] }]`,
		},
		{
			name: "missing type",
			db:   `[{ "offset": 0, "signature": [137] }]`,
		},
		{
			name: "not json",
			db:   `type: PNG`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := sigdb.Load(strings.NewReader(tc.db))
			require.Error(t, err)
		})
	}
}

func TestDefaultDatabase(t *testing.T) {
	records := sigdb.Default()
	require.NotEmpty(t, records)

	idx, err := magic.NewIndex(records)
	require.NoError(t, err)

	m, ok := idx.Lookup([]byte{137, 80, 78, 71, 13, 10, 26, 10, 0, 0})
	require.True(t, ok)
	require.Equal(t, "PNG", m.Type)

	// The tar signature sits past offset 256, which drives the header length.
	require.GreaterOrEqual(t, idx.HeaderLen(), 262)
}
