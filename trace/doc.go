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

// Package trace reads and writes recordings of a video bus. A trace is a text
// file with one sample per line. Each line is a list of hexadecimal fields
// separated by whitespace:
//
//	# columns: clk hs vs de ce c0 c1 c2
//	0 0 0 1 0 ff 80 80
//	1 0 0 1 0 ff 80 80
//
// Lines beginning with # are comments. A comment of the form "# columns:"
// names the fields present in the lines that follow. Columns that are not
// named are zero in every sample. A trace without a columns comment has all
// eight columns in the order shown above.
//
// Each line is a single level of the bus. A clocked bus needs two lines for
// every sample, one with the clock low and one with the clock high.
package trace
