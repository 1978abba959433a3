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
	"io"
	"strconv"
	"strings"

	"github.com/jetsetilly/videoout/capture/signal"
	"github.com/jetsetilly/videoout/curated"
)

// Reader reads samples from a trace.
type Reader struct {
	scanner *bufio.Scanner
	columns []Column

	lineNum int
	samples int
}

// NewReader is the preferred method of initialisation for the Reader type.
func NewReader(r io.Reader) *Reader {
	return &Reader{
		scanner: bufio.NewScanner(r),
		columns: AllColumns,
	}
}

// Columns returns the columns currently expected in each line.
func (r *Reader) Columns() []Column {
	return r.columns
}

// Line returns the number of the most recently read line.
func (r *Reader) Line() int {
	return r.lineNum
}

// Samples returns the number of samples read so far.
func (r *Reader) Samples() int {
	return r.samples
}

// Next returns the next sample in the trace. Returns io.EOF when there are
// no more samples.
func (r *Reader) Next() (signal.Sample, error) {
	for r.scanner.Scan() {
		r.lineNum++

		line := strings.TrimSpace(r.scanner.Text())
		if line == "" {
			continue
		}

		if c, ok := strings.CutPrefix(line, "#"); ok {
			c = strings.TrimSpace(c)
			if cols, ok := strings.CutPrefix(c, columnsPrefix); ok {
				columns, err := parseColumns(r.lineNum, cols)
				if err != nil {
					return signal.Sample{}, err
				}
				r.columns = columns
			}
			continue
		}

		s, err := r.parse(line)
		if err != nil {
			return signal.Sample{}, err
		}
		r.samples++
		return s, nil
	}

	if err := r.scanner.Err(); err != nil {
		return signal.Sample{}, curated.Errorf(TraceError, err)
	}

	return signal.Sample{}, io.EOF
}

func (r *Reader) parse(line string) (signal.Sample, error) {
	var s signal.Sample

	fields := strings.Fields(line)
	if len(fields) != len(r.columns) {
		return s, curated.Errorf(FieldCount, r.lineNum, len(r.columns), len(fields))
	}

	for i, f := range fields {
		v, err := strconv.ParseUint(f, 16, 16)
		if err != nil {
			return s, curated.Errorf(InvalidField, r.lineNum, r.columns[i], f)
		}
		r.columns[i].set(&s, uint16(v))
	}

	return s, nil
}
