// This file is part of VideoOut.
//
// VideoOut is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// VideoOut is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with VideoOut.  If not, see <https://www.gnu.org/licenses/>.

package trace

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/jetsetilly/videoout/capture/signal"
	"github.com/jetsetilly/videoout/curated"
)

const fieldSep = " "

// Writer writes samples to a trace. Writes are buffered and Flush() must be
// called when writing is complete.
type Writer struct {
	w       *bufio.Writer
	columns []Column

	// the columns comment is written before the first sample
	header bool

	samples int
}

// NewWriter is the preferred method of initialisation for the Writer type.
// If no columns are specified then all columns are written.
func NewWriter(w io.Writer, columns ...Column) *Writer {
	if len(columns) == 0 {
		columns = AllColumns
	}
	return &Writer{
		w:       bufio.NewWriter(w),
		columns: columns,
	}
}

// Comment adds a comment line to the trace. Multiline comments are split
// into separate comment lines.
func (w *Writer) Comment(comment string) error {
	for _, l := range strings.Split(comment, "\n") {
		if _, err := fmt.Fprintf(w.w, "# %s\n", l); err != nil {
			return curated.Errorf(TraceError, err)
		}
	}
	return nil
}

func (w *Writer) writeHeader() error {
	names := make([]string, len(w.columns))
	for i, c := range w.columns {
		names[i] = c.String()
	}
	if _, err := fmt.Fprintf(w.w, "# %s %s\n", columnsPrefix, strings.Join(names, fieldSep)); err != nil {
		return curated.Errorf(TraceError, err)
	}
	w.header = true
	return nil
}

// Write a sample to the trace.
func (w *Writer) Write(s signal.Sample) error {
	if !w.header {
		if err := w.writeHeader(); err != nil {
			return err
		}
	}

	fields := make([]string, len(w.columns))
	for i, c := range w.columns {
		fields[i] = fmt.Sprintf("%x", c.get(s))
	}

	if _, err := fmt.Fprintln(w.w, strings.Join(fields, fieldSep)); err != nil {
		return curated.Errorf(TraceError, err)
	}
	w.samples++

	return nil
}

// Samples returns the number of samples written.
func (w *Writer) Samples() int {
	return w.samples
}

// Flush any buffered data to the underlying io.Writer.
func (w *Writer) Flush() error {
	if err := w.w.Flush(); err != nil {
		return curated.Errorf(TraceError, err)
	}
	return nil
}
