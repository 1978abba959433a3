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

// Package pattern generates a clocked video bus carrying colour bars. The
// output can be captured directly by a capture.Engine or written to a trace
// file with the trace package.
//
// The generated bus is used to test a capture configuration end to end. The
// Config() function of the Generator returns the capture configuration that
// will recover the bars.
package pattern
