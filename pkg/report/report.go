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

// Package report writes machine-readable verification reports as a
// stream of XML elements, so a session over a large directory tree
// never has to buffer its results.
package report

import (
	"encoding/xml"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/sigildev/sigil/pkg/sysinfo"
)

const XMLOutputVersion = "1.0"

// Header is the root element of a verification report.
type Header struct {
	XMLName   xml.Name `xml:"verification"`
	XMLOutput string   `xml:"xmloutputversion,attr,omitempty"`
	Creator   Creator  `xml:"creator"` // the software that produced the report
	Source    Source   `xml:"source"`  // what was verified, and with which database
}

// Creator describes the software and environment that generated the report.
type Creator struct {
	Package              string  `xml:"package"`
	Version              string  `xml:"version"`
	ExecutionEnvironment ExecEnv `xml:"execution_environment"`
}

// ExecEnv provides information about the host on which the report was created.
type ExecEnv struct {
	OS      string `xml:"os_sysname"`
	Release string `xml:"os_release"`
	Version string `xml:"os_version"`
	Host    string `xml:"host"`
	Arch    string `xml:"arch"`
	Start   string `xml:"start_time"`
}

// Source describes the verified path and the signature database in use.
type Source struct {
	Path         string `xml:"path"`
	Signatures   int    `xml:"signatures"`
	HeaderLength int    `xml:"header_length"`
}

// FileObject is the verification outcome for a single file.
type FileObject struct {
	XMLName     xml.Name `xml:"fileobject"`
	Filename    string   `xml:"filename"`
	Declared    string   `xml:"declared_type,omitempty"`
	Detected    string   `xml:"detected_type,omitempty"`
	Status      string   `xml:"status"`
	HeaderBytes int      `xml:"header_bytes"`
	Error       string   `xml:"error,omitempty"`
}

// GetExecEnv retrieves runtime information to populate the ExecEnv struct.
func GetExecEnv() ExecEnv {
	sinfo, err := sysinfo.Stat()
	if err != nil {
		sinfo = &sysinfo.SysUnknown
	}

	host, err := os.Hostname()
	if err != nil {
		host = "unknown_host"
	}

	return ExecEnv{
		OS:      sinfo.Name,
		Release: sinfo.Release,
		Version: sinfo.Version,
		Host:    host,
		Arch:    runtime.GOARCH,
		Start:   time.Now().UTC().Format("2006-01-02T15:04:05Z"),
	}
}

// Writer streams verification report elements to an io.Writer.
type Writer struct {
	w   io.Writer
	enc *xml.Encoder
}

// NewWriter creates a report writer with two-space indentation.
func NewWriter(w io.Writer) *Writer {
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")

	return &Writer{
		w:   w,
		enc: enc,
	}
}

// WriteHeader writes the XML declaration and the opening <verification>
// element together with the creator and source sections.
func (w *Writer) WriteHeader(hdr Header) error {
	_, _ = w.w.Write([]byte(xml.Header))

	// The version attribute lives on the root element, so the opening
	// tag is constructed by hand.
	start := xml.StartElement{
		Name: xml.Name{Local: "verification"},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "xmloutputversion"}, Value: hdr.XMLOutput},
		},
	}
	if err := w.enc.EncodeToken(start); err != nil {
		return err
	}

	if err := w.enc.EncodeElement(hdr.Creator, xml.StartElement{Name: xml.Name{Local: "creator"}}); err != nil {
		return err
	}
	return w.enc.EncodeElement(hdr.Source, xml.StartElement{Name: xml.Name{Local: "source"}})
}

// WriteFileObject encodes the outcome for a single file.
func (w *Writer) WriteFileObject(obj FileObject) error {
	return w.enc.Encode(obj)
}

// Close writes the closing </verification> tag and flushes the encoder.
func (w *Writer) Close() error {
	if err := w.enc.EncodeToken(xml.EndElement{Name: xml.Name{Local: "verification"}}); err != nil {
		return err
	}
	return w.enc.Flush()
}
