package magic_test

import (
	"testing"

	"github.com/sigildev/sigil/internal/magic"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	png := magic.Match{Type: "PNG", Length: 8}

	require.Equal(t, magic.Confirmed, magic.Classify("PNG", png, true))
	require.Equal(t, magic.Confirmed, magic.Classify("png", png, true))
	require.Equal(t, magic.Mismatch, magic.Classify("JPG", png, true))
	require.Equal(t, magic.Unknown, magic.Classify("TXT", magic.Match{}, false))
}

func TestVerdictString(t *testing.T) {
	require.Equal(t, "confirmed", magic.Confirmed.String())
	require.Equal(t, "mismatch", magic.Mismatch.String())
	require.Equal(t, "unknown", magic.Unknown.String())
}
