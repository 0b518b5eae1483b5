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
package cmd

import (
	"encoding/hex"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/sigildev/sigil/internal/magic"
	"github.com/sigildev/sigil/internal/sigdb"
	"github.com/spf13/cobra"
)

func DefineFormatsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "formats",
		Short: "List the signatures of the loaded database",
		Long: `The 'formats' command displays a table of every signature in the magic number database:
its type label, the offset the pattern is anchored at, and the pattern bytes in hex.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         RunFormats,
	}

	cmd.Flags().StringP("signatures", "s", "", "path to a JSON signature database (defaults to the embedded one)")
	return cmd
}

func RunFormats(cmd *cobra.Command, args []string) error {
	var (
		records []magic.SignatureRecord
		err     error
	)

	signatures, _ := cmd.Flags().GetString("signatures")
	if signatures != "" {
		records, err = sigdb.LoadFile(signatures)
		if err != nil {
			return err
		}
	} else {
		records = sigdb.Default()
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TYPE\tOFFSET\tSIGNATURE")

	for _, rec := range records {
		fmt.Fprintf(w, "%s\t%d\t%s\n",
			rec.Type,
			rec.Offset,
			hex.EncodeToString(rec.Pattern),
		)
	}
	return w.Flush()
}
