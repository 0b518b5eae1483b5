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
	"log/slog"
	"strings"

	"github.com/sigildev/sigil/internal/verify"
	"github.com/spf13/cobra"
)

func DefineVerifyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify <path>",
		Short: "Verify that file contents match their extension",
		Long: `The 'verify' command reads the leading bytes of a file and checks them against a database of magic number signatures.
When the path is a directory, every regular file in it is verified; with --recursive the whole tree is walked.
The command exits with a non-zero status when at least one file's header contradicts its extension.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         RunVerify,
	}

	cmd.Flags().StringP("signatures", "s", "", "path to a JSON signature database (defaults to the embedded one)")
	cmd.Flags().BoolP("recursive", "r", false, "recurse into subdirectories")
	cmd.Flags().Int("workers", 0, "number of concurrent workers (0 = number of CPUs)")
	cmd.Flags().StringP("output", "o", "", "write an XML verification report to the given path")
	cmd.Flags().Bool("no-log", false, "disable the session log file")
	cmd.Flags().Bool("no-color", false, "disable colored output")
	cmd.Flags().String("log-level", "INFO", "minimum level for the session log (DEBUG, INFO, WARN, ERROR)")

	return cmd
}

func RunVerify(cmd *cobra.Command, args []string) error {
	opts, err := parseVerifyOptions(cmd)
	if err != nil {
		return err
	}
	return verify.Verify(args[0], opts)
}

func parseVerifyOptions(cmd *cobra.Command) (verify.Options, error) {
	signatures, _ := cmd.Flags().GetString("signatures")
	recursive, _ := cmd.Flags().GetBool("recursive")
	workers, _ := cmd.Flags().GetInt("workers")
	reportFile, _ := cmd.Flags().GetString("output")
	disableLog, _ := cmd.Flags().GetBool("no-log")
	noColor, _ := cmd.Flags().GetBool("no-color")
	logLevel, _ := cmd.Flags().GetString("log-level")

	return verify.Options{
		SignaturesFile: signatures,
		Recursive:      recursive,
		Workers:        workers,
		ReportFile:     reportFile,
		DisableLog:     disableLog,
		NoColor:        noColor,
		LogLevel:       parseLogLevel(logLevel),
	}, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
