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

package capture

// FrameSink implementations receive the pixels of a frame. Coordinates are
// measured from the top-left of the active area and are always inside it.
//
// Pixels are sent in the order they are decoded, which is raster order for
// every colorspace except YUV420, where pixels arrive in 2x2 blocks.
type FrameSink interface {
	SetPixel(x, y int, red, green, blue uint8) error

	// Persist is called at the end of a complete frame. Implementations
	// should produce one self-contained artifact for each call. The sequence
	// number increases by one for every persisted frame and never resets
	Persist(seq int) error
}

// FrameTrigger implementations are notified of every frame boundary, whether
// or not the engine is persisting frames. frameNum is the number of complete
// boundaries seen so far, starting at one.
type FrameTrigger interface {
	NewFrame(frameNum int) error
}
