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
package verify

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/muesli/termenv"
	"github.com/sigildev/sigil/internal/env"
	"github.com/sigildev/sigil/internal/magic"
	"github.com/sigildev/sigil/internal/sigdb"
	"github.com/sigildev/sigil/pkg/report"
	fmtutil "github.com/sigildev/sigil/pkg/util/format"
)

type Options struct {
	SignaturesFile string
	Recursive      bool
	Workers        int
	ReportFile     string
	DisableLog     bool
	NoColor        bool
	LogLevel       slog.Level
}

// ErrMismatchFound signals that at least one file's header contradicts
// its extension; the command maps it to a non-zero exit code.
var ErrMismatchFound = errors.New("file type mismatch")

// ErrNoExtension marks files whose declared type cannot be derived.
var ErrNoExtension = errors.New("file has no extension")

// Verify checks the file (or every regular file under the directory)
// at path against the signature database and reports the outcome.
func Verify(path string, opts Options) error {
	var (
		records []magic.SignatureRecord
		err     error
	)
	if opts.SignaturesFile != "" {
		records, err = sigdb.LoadFile(opts.SignaturesFile)
		if err != nil {
			return err
		}
	} else {
		records = sigdb.Default()
	}

	idx, err := magic.NewIndex(records)
	if err != nil {
		return err
	}

	paths, err := listFiles(path, opts.Recursive)
	if err != nil {
		return err
	}

	session := GenSessionID()

	var logFilePath string
	if !opts.DisableLog {
		logFilePath = absPath(env.AppName + "_" + session + ".log")
	}

	logger, logFile, err := setupLogger(logFilePath, opts.LogLevel)
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}

	fmt.Println("[INFO] Starting verification...")
	fmt.Printf("[INFO] Source: \t%s\n", absPath(path))
	fmt.Printf("[INFO] Signatures: \t%d (header length %s)\n",
		idx.Signatures(), fmtutil.FormatBytes(int64(idx.HeaderLen())))

	outLog := "disabled"
	if !opts.DisableLog {
		outLog = logFilePath
	}
	fmt.Printf("[INFO] Output Log: \t%s\n", outLog)

	start := time.Now()
	results := run(paths, idx, opts.Workers, logger)
	summary := summarize(results)

	if opts.ReportFile != "" {
		if err := writeReport(opts.ReportFile, path, idx, results); err != nil {
			return fmt.Errorf("unable to write report %q: %w", opts.ReportFile, err)
		}
	}

	printSummary(summary, opts.NoColor, time.Since(start))

	if opts.ReportFile != "" {
		fmt.Printf("[INFO] Report saved to: \t%s\n", absPath(opts.ReportFile))
	}

	if summary.Mismatched > 0 {
		return fmt.Errorf("%w: %d of %d files", ErrMismatchFound, summary.Mismatched, len(results))
	}
	return nil
}

// run fans paths out over a bounded worker pool. The index is shared
// by reference: it never mutates after build, so no locking is needed.
// Results land at the position of their path, keeping output order
// independent of worker scheduling.
func run(paths []string, idx *magic.Index, workers int, logger *slog.Logger) []FileResult {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]FileResult, len(paths))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for i := range jobs {
				res := verifyFile(paths[i], idx)
				logResult(logger, res)
				results[i] = res
			}
		}()
	}

	for i := range paths {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}

func verifyFile(path string, idx *magic.Index) FileResult {
	res := FileResult{Path: path}

	ext := filepath.Ext(path)
	if ext == "" {
		res.Status = StatusError
		res.Err = ErrNoExtension
		return res
	}
	res.Declared = strings.ToUpper(strings.TrimPrefix(ext, "."))

	header, err := readHeader(path, idx.HeaderLen())
	if err != nil {
		res.Status = StatusError
		res.Err = err
		return res
	}
	res.HeaderBytes = len(header)

	m, ok := idx.Lookup(header)
	if ok {
		res.Detected = m.Type
	}

	switch magic.Classify(res.Declared, m, ok) {
	case magic.Confirmed:
		res.Status = StatusConfirmed
	case magic.Mismatch:
		res.Status = StatusMismatch
	default:
		res.Status = StatusUnknown
	}
	return res
}

// readHeader reads up to n leading bytes of the file at path. A file
// shorter than n yields a shorter buffer, never an error: truncated
// input is a normal shape for lookup.
func readHeader(path string, n int) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf := make([]byte, n)
	m, err := io.ReadFull(f, buf)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		err = nil
	}
	if err != nil {
		return nil, err
	}
	return buf[:m], nil
}

// listFiles resolves the set of files to verify. Directory entries are
// enumerated in lexical order in both modes, so a session over the
// same tree always processes the same sequence.
func listFiles(root string, recursive bool) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	var paths []string
	if !recursive {
		entries, err := os.ReadDir(root)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if e.Type().IsRegular() {
				paths = append(paths, filepath.Join(root, e.Name()))
			}
		}
		return paths, nil
	}

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			paths = append(paths, path)
		}
		return nil
	})
	return paths, err
}

func writeReport(path, source string, idx *magic.Index, results []FileResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := report.NewWriter(f)
	err = w.WriteHeader(report.Header{
		XMLOutput: report.XMLOutputVersion,
		Creator: report.Creator{
			Package:              env.AppName,
			Version:              env.Version,
			ExecutionEnvironment: report.GetExecEnv(),
		},
		Source: report.Source{
			Path:         absPath(source),
			Signatures:   idx.Signatures(),
			HeaderLength: idx.HeaderLen(),
		},
	})
	if err != nil {
		return err
	}

	for _, r := range results {
		obj := report.FileObject{
			Filename:    r.Path,
			Declared:    r.Declared,
			Detected:    r.Detected,
			Status:      r.Status.String(),
			HeaderBytes: r.HeaderBytes,
		}
		if r.Err != nil {
			obj.Error = r.Err.Error()
		}
		if err := w.WriteFileObject(obj); err != nil {
			return err
		}
	}
	return w.Close()
}

func printSummary(s *Summary, noColor bool, elapsed time.Duration) {
	out := termenv.NewOutput(os.Stdout)
	if noColor {
		out = termenv.NewOutput(os.Stdout, termenv.WithProfile(termenv.Ascii))
	}
	paint := func(c termenv.Color, str string) string {
		return out.String(str).Foreground(c).String()
	}

	fmt.Println()
	fmt.Println("[INFO] Verification completed!")
	fmt.Printf("[INFO] Files scanned: \t%d\n", len(s.Results))
	fmt.Printf("[INFO] %s\n", paint(termenv.ANSIGreen, fmt.Sprintf("Confirmed: \t%d", s.Confirmed)))
	fmt.Printf("[INFO] %s\n", paint(termenv.ANSIRed, fmt.Sprintf("Mismatched: \t%d", s.Mismatched)))
	fmt.Printf("[INFO] %s\n", paint(termenv.ANSIBlue, fmt.Sprintf("Unknown: \t%d", s.Unknown)))
	fmt.Printf("[INFO] %s\n", paint(termenv.ANSIYellow, fmt.Sprintf("Errors: \t%d", s.Errors)))
	fmt.Printf("[INFO] Duration: \t%s\n", FormatDurationHMS(elapsed))

	if s.Mismatched > 0 {
		fmt.Println()
		fmt.Println("--- Mismatched files ---")
		for _, r := range s.Results {
			if r.Status == StatusMismatch {
				fmt.Printf("%s: declared as %s, but header says %s\n",
					r.Path,
					paint(termenv.ANSIBlue, r.Declared),
					paint(termenv.ANSIRed, r.Detected),
				)
			}
		}
	}

	if s.Errors > 0 {
		fmt.Println()
		fmt.Println("--- Errors ---")
		for _, r := range s.Results {
			if r.Status == StatusError {
				fmt.Printf("%s: %s\n", r.Path, paint(termenv.ANSIYellow, r.Err.Error()))
			}
		}
	}
}

func logResult(logger *slog.Logger, res FileResult) {
	if res.Status == StatusError {
		logger.Error("unable to verify file", "path", res.Path, "err", res.Err)
		return
	}
	logger.Info("verified file",
		"path", res.Path,
		"declared", res.Declared,
		"detected", res.Detected,
		"status", res.Status.String(),
	)
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}

// GenSessionID creates a unique name for a verification session.
// The format is "YYYYMMDD_HHMMSS".
func GenSessionID() string {
	return time.Now().Format("20060102_150405")
}

// FormatDurationHMS formats a duration as HH:MM:SS, or fractional
// seconds below one second.
func FormatDurationHMS(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	totalSeconds := int64(d.Seconds())

	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60

	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

// setupLogger initializes a slog.Logger writing to logFilePath, or a
// discarding logger when the path is empty. The returned *os.File, if
// not nil, must be closed by the caller.
func setupLogger(logFilePath string, minLevel slog.Level) (*slog.Logger, *os.File, error) {
	var writer io.Writer
	var file *os.File

	if logFilePath == "" {
		writer = io.Discard
	} else {
		f, err := os.OpenFile(logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file %q: %w", logFilePath, err)
		}
		writer = f
		file = f
	}

	handler := slog.NewTextHandler(writer, &slog.HandlerOptions{
		Level: minLevel,
	})
	return slog.New(handler), file, nil
}
