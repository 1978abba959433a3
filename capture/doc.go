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

// Package capture turns a clocked video bus into frames. The Engine type is
// the centre of the package. The host calls Evaluate() once per modelled
// clock tick with the levels of every bus signal, and the engine forwards
// decoded pixels to any number of FrameSink implementations.
//
// The engine is configured with a colorspace and a discipline. The
// colorspace says how the three channel values of a sample are interpreted:
//
//	RGB444  red, green, blue for every pixel
//	YUV444  luma, blue-difference, red-difference for every pixel
//	YUV422  luma on every pixel, chroma alternating Cb and Cr
//	YUV420  luma and chroma on separate enables, chroma on every other line
//
// The discipline says how the position of a sample on the screen is decided.
// The Sync discipline counts clocks between horizontal and vertical sync
// edges and captures the samples inside an active window (see the
// capture/scan package). The Enable discipline counts samples while the data
// enable signal is high and ignores the sync signals.
//
// The first frame boundary seen by an engine arms it and subsequent
// boundaries ask the sinks to persist the frame just completed. The very
// first frame is almost always partial so it is never persisted. An engine
// with an empty base name never arms.
//
// Engines share nothing. Independent engines can be run in separate
// goroutines but a single Engine must not be used concurrently.
package capture
