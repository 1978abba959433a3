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
	"strings"

	"github.com/jetsetilly/videoout/capture/signal"
	"github.com/jetsetilly/videoout/curated"
)

// Sentinal error patterns for the trace package.
const (
	UnknownColumn   = "trace: line %d: unknown column (%s)"
	DuplicateColumn = "trace: line %d: duplicate column (%s)"
	FieldCount      = "trace: line %d: expected %d fields but found %d"
	InvalidField    = "trace: line %d: invalid %s field (%s)"
	TraceError      = "trace: %v"
)

// Column is a field of a trace line.
type Column int

// List of valid Column values.
const (
	Clock Column = iota
	HSync
	VSync
	DataEnable
	ChromaEnable
	Channel0
	Channel1
	Channel2
	numColumns
)

var columnNames = []string{"clk", "hs", "vs", "de", "ce", "c0", "c1", "c2"}

func (c Column) String() string {
	if c < 0 || c >= numColumns {
		return "unknown"
	}
	return columnNames[c]
}

// AllColumns is the list of columns used when a trace has no columns comment.
var AllColumns = []Column{Clock, HSync, VSync, DataEnable, ChromaEnable, Channel0, Channel1, Channel2}

// the prefix of the comment that names the columns
const columnsPrefix = "columns:"

// parseColumns parses the names following the columns prefix
func parseColumns(lineNum int, s string) ([]Column, error) {
	var cols []Column
	seen := make(map[Column]bool)

	for _, n := range strings.Fields(s) {
		c := Column(-1)
		for i, m := range columnNames {
			if strings.EqualFold(n, m) {
				c = Column(i)
				break
			}
		}
		if c < 0 {
			return nil, curated.Errorf(UnknownColumn, lineNum, n)
		}
		if seen[c] {
			return nil, curated.Errorf(DuplicateColumn, lineNum, n)
		}
		seen[c] = true
		cols = append(cols, c)
	}

	return cols, nil
}

// get returns the value of the column in the sample
func (c Column) get(s signal.Sample) uint16 {
	level := func(b bool) uint16 {
		if b {
			return 1
		}
		return 0
	}

	switch c {
	case Clock:
		return level(s.Clock)
	case HSync:
		return level(s.HSync)
	case VSync:
		return level(s.VSync)
	case DataEnable:
		return level(s.DataEnable)
	case ChromaEnable:
		return level(s.ChromaEnable)
	case Channel0, Channel1, Channel2:
		return s.Channels[c-Channel0]
	}
	return 0
}

// set the value of the column in the sample. any non-zero value is a high
// level for the single bit columns
func (c Column) set(s *signal.Sample, v uint16) {
	switch c {
	case Clock:
		s.Clock = v != 0
	case HSync:
		s.HSync = v != 0
	case VSync:
		s.VSync = v != 0
	case DataEnable:
		s.DataEnable = v != 0
	case ChromaEnable:
		s.ChromaEnable = v != 0
	case Channel0, Channel1, Channel2:
		s.Channels[c-Channel0] = v
	}
}
