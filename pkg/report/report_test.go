package report_test

import (
	"bytes"
	"encoding/xml"
	"strings"
	"testing"

	"github.com/sigildev/sigil/pkg/report"
	"github.com/stretchr/testify/require"
)

func TestWriter(t *testing.T) {
	var buf bytes.Buffer

	w := report.NewWriter(&buf)
	err := w.WriteHeader(report.Header{
		XMLOutput: report.XMLOutputVersion,
		Creator: report.Creator{
			Package:              "sigil",
			Version:              "test",
			ExecutionEnvironment: report.GetExecEnv(),
		},
		Source: report.Source{
			Path:         "/tmp/files",
			Signatures:   42,
			HeaderLength: 262,
		},
	})
	require.NoError(t, err)

	require.NoError(t, w.WriteFileObject(report.FileObject{
		Filename:    "photo.png",
		Declared:    "PNG",
		Detected:    "PNG",
		Status:      "confirmed",
		HeaderBytes: 262,
	}))
	require.NoError(t, w.WriteFileObject(report.FileObject{
		Filename: "broken.bin",
		Status:   "error",
		Error:    "file has no extension",
	}))
	require.NoError(t, w.Close())

	out := buf.String()
	require.True(t, strings.HasPrefix(out, xml.Header))
	require.Contains(t, out, `<verification xmloutputversion="1.0">`)
	require.Contains(t, out, "<filename>photo.png</filename>")
	require.Contains(t, out, "<status>confirmed</status>")
	require.Contains(t, out, "</verification>")

	// The stream must be well-formed XML end to end.
	dec := xml.NewDecoder(strings.NewReader(out))
	for {
		_, err := dec.Token()
		if err != nil {
			require.Equal(t, "EOF", err.Error())
			break
		}
	}
}
