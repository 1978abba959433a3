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

package chroma

// LineRing is a circular buffer of scanlines. Samples are pushed one at a
// time and lines are numbered in the order that they are completed, starting
// from zero.
//
// Lines are overwritten once depth more lines have been started, so a line
// number is only meaningful for a short time. Use Available() to check that
// a line has not yet been overwritten.
type LineRing struct {
	lines [][]uint16
	width int

	// physical index of line zero. changed by Rewind() so that renumbering
	// the lines does not move them
	base int

	// number of lines completed and the column of the next sample
	completed int
	col       int
}

// NewLineRing is the preferred method of initialisation for the LineRing
// type. A width of zero or less creates a ring that never completes a line.
func NewLineRing(depth int, width int) *LineRing {
	if width < 0 {
		width = 0
	}
	r := &LineRing{
		lines: make([][]uint16, depth),
		width: width,
	}
	for i := range r.lines {
		r.lines[i] = make([]uint16, width)
	}
	return r
}

func (r *LineRing) index(line int) int {
	i := (line + r.base) % len(r.lines)
	if i < 0 {
		i += len(r.lines)
	}
	return i
}

// Push adds a sample to the line being filled. Returns true if the sample
// completed the line.
func (r *LineRing) Push(v uint16) bool {
	if r.width == 0 {
		return false
	}

	r.lines[r.index(r.completed)][r.col] = v
	r.col++
	if r.col < r.width {
		return false
	}

	r.col = 0
	r.completed++
	return true
}

// Completed returns the number of complete lines.
func (r *LineRing) Completed() int {
	return r.completed
}

// Available returns true if the line is complete and has not been
// overwritten. The line being filled occupies one slot of the ring once the
// first sample for it has been pushed.
func (r *LineRing) Available(line int) bool {
	if line < 0 || line >= r.completed {
		return false
	}
	oldest := r.completed - len(r.lines)
	if r.col > 0 {
		oldest++
	}
	return line >= oldest
}

// Line returns the samples of the numbered line. The returned slice is owned
// by the ring and will be overwritten.
func (r *LineRing) Line(line int) []uint16 {
	return r.lines[r.index(line)]
}

// Rewind renumbers the lines so that line n becomes line zero. The contents
// of the ring are not touched.
func (r *LineRing) Rewind(n int) {
	r.completed -= n
	r.base += n
	r.base %= len(r.lines)
}
