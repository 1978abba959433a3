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

// Package chroma reconstructs full resolution pixels from buses that carry
// sub-sampled chroma.
//
// In the YUV422 format, a single chroma value is shared horizontally by two
// luma samples. The Pair type buffers the even sample until the odd sample
// arrives.
//
// In the YUV420 format, chroma is also shared vertically and the bus carries
// a chroma line for every other luma line. The Reconstructor type buffers
// luma and chroma lines in LineRing instances and emits two complete
// scanlines at a time.
//
// In both cases chroma values are replicated over the block of luma samples
// that share it. There is no interpolation.
package chroma

import (
	"image/color"

	"github.com/jetsetilly/videoout/capture/colourconv"
)

// Pair reconstructs YUV422 pixels.
type Pair struct {
	luma uint16
	cb   uint16
}

// Even stores the luma and blue-difference values of the even pixel.
func (p *Pair) Even(luma uint16, cb uint16) {
	p.luma = luma
	p.cb = cb
}

// Odd completes the pair with the luma and red-difference values of the odd
// pixel. Returns the colours of the even and odd pixels.
func (p *Pair) Odd(depth colourconv.Depth, luma uint16, cr uint16) (color.RGBA, color.RGBA) {
	return depth.YUV(p.luma, p.cb, cr), depth.YUV(luma, p.cb, cr)
}
