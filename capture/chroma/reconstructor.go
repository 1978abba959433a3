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

import (
	"image/color"

	"github.com/jetsetilly/videoout/capture/colourconv"
	"github.com/jetsetilly/videoout/capture/signal"
)

// the number of lines held by the rings of the YUV420 reconstructor
const (
	LumaDepth   = 4
	ChromaDepth = 2
)

// Plotter is called by the Reconstructor for every pixel it emits.
type Plotter func(x int, y int, col color.RGBA) error

// Event describes the result of presenting a sample to the Reconstructor.
type Event struct {
	// two scanlines were emitted starting at Line
	Emitted bool
	Line    int

	// the two scanlines starting at Line could not be emitted because the
	// lines had been overwritten in the rings
	Overwritten bool

	// the final scanlines of the frame were emitted
	Boundary bool
}

// Reconstructor rebuilds YUV420 pixels from separately enabled luma and
// chroma samples.
type Reconstructor struct {
	depth  colourconv.Depth
	width  int
	height int

	luma   *LineRing
	chroma *LineRing

	// the next output scanline. always even
	vcount int
}

// NewReconstructor is the preferred method of initialisation for the
// Reconstructor type. The width and height are the size of the active area.
func NewReconstructor(depth colourconv.Depth, width int, height int) *Reconstructor {
	return &Reconstructor{
		depth:  depth,
		width:  width,
		height: height,
		luma:   NewLineRing(LumaDepth, width),
		chroma: NewLineRing(ChromaDepth, width),
	}
}

// Position returns the next output scanline and the number of luma and
// chroma lines that have been completed in the current frame.
func (r *Reconstructor) Position() (int, int, int) {
	return r.vcount, r.luma.Completed(), r.chroma.Completed()
}

// ready is true when there are two luma lines beyond the last output line and
// a chroma line beyond the last consumed chroma line. the last pair of lines
// in a frame with an odd height needs only one luma line
func (r *Reconstructor) ready() bool {
	need := 2
	if r.height-r.vcount < need {
		need = r.height - r.vcount
	}
	return r.luma.Completed()-r.vcount >= need && r.chroma.Completed()*2-r.vcount >= 2
}

// Sample should be called once per rising clock edge. Pixels are sent to the
// plotter two scanlines at a time, one 2x2 block after another.
func (r *Reconstructor) Sample(s signal.Sample, plot Plotter) (Event, error) {
	var ev Event

	if r.width <= 0 || r.height <= 0 {
		return ev, nil
	}

	if s.DataEnable {
		r.luma.Push(s.Channels[signal.Luma])
	}
	if s.ChromaEnable {
		r.chroma.Push(s.Channels[signal.Chroma])
	}

	if !r.ready() {
		return ev, nil
	}

	ev.Line = r.vcount

	// the lines are skipped if the rings have moved on. pixels in the skipped
	// lines keep the value from the previous frame. a failed pixel does not
	// prevent the scanlines being counted
	var err error
	if r.overwritten() {
		ev.Overwritten = true
	} else {
		ev.Emitted = true
		err = r.emit(plot)
	}

	r.vcount += 2
	if r.vcount >= r.height {
		// renumber the lines of the rings rather than resetting them. luma
		// or chroma for the next frame may already have arrived
		r.luma.Rewind(min(r.vcount, r.height))
		r.chroma.Rewind(r.vcount / 2)
		r.vcount = 0
		ev.Boundary = true
	}

	return ev, err
}

// overwritten is true if any of the lines needed for the two output scanlines
// at vcount are no longer in the rings
func (r *Reconstructor) overwritten() bool {
	if !r.luma.Available(r.vcount) || !r.chroma.Available(r.vcount/2) {
		return true
	}
	return r.vcount+1 < r.height && !r.luma.Available(r.vcount+1)
}

// emit the 2x2 blocks of the two output scanlines starting at vcount
func (r *Reconstructor) emit(plot Plotter) error {
	upper := r.luma.Line(r.vcount)
	lower := r.luma.Line(r.vcount + 1)
	chroma := r.chroma.Line(r.vcount / 2)

	// a frame with an odd number of lines has no second line in the last
	// pair of scanlines
	lowerVisible := r.vcount+1 < r.height

	for x := 0; x+1 < r.width; x += 2 {
		cb := chroma[x]
		cr := chroma[x+1]

		if err := plot(x, r.vcount, r.depth.YUV(upper[x], cb, cr)); err != nil {
			return err
		}
		if err := plot(x+1, r.vcount, r.depth.YUV(upper[x+1], cb, cr)); err != nil {
			return err
		}

		if !lowerVisible {
			continue
		}

		if err := plot(x, r.vcount+1, r.depth.YUV(lower[x], cb, cr)); err != nil {
			return err
		}
		if err := plot(x+1, r.vcount+1, r.depth.YUV(lower[x+1], cb, cr)); err != nil {
			return err
		}
	}

	return nil
}
