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

// Package test contains helper functions to remove common boilerplate to make
// testing easier.
//
// The Expect functions report failure with t.Errorf() and allow the test to
// continue. The Demand functions report failure with t.Fatalf() and stop the
// test immediately. Both families accept an optional list of tags which are
// prepended to any failure message, which is useful when the test is running
// through a table of values.
//
// The success and failure functions test for failure and success under
// generic conditions. Supported types are bool, error and nil. It is worth
// describing how nil is handled because it is not obvious. The nil type is
// considered a success and consequently will cause ExpectFailure() to fail
// and ExpectSuccess() to succeed. This is because of how errors usually work
// (nil to indicate no error).
//
// The CompareWriter type implements the io.Writer interface and should be
// used to capture output. RingWriter and CappedWriter are alternatives for
// when the output might be long.
package test
