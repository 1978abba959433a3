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

// Package modalflag wraps the flag package of the standard library. It adds
// program modes (and sub-modes), each with its own set of flags.
//
// Arguments are given with NewArgs() and then parsed with Parse(), which
// takes no arguments. This allows the arguments to be parsed in layers, one
// layer for each mode:
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("CAPTURE", "PATTERN", "INFO")
//	p, err := md.Parse()
//	switch p {
//	case modalflag.ParseHelp:
//		return
//	case modalflag.ParseError:
//		return err
//	}
//
// The first sub-mode is the default. Sub-mode comparisons are not case
// sensitive and the selected mode is always returned in upper case:
//
//	switch md.Mode() {
//	case "CAPTURE":
//		md.NewMode()
//		frames := md.AddInt("frames", 0, "stop after this many frames")
//		p, err := md.Parse()
//		...
//		capture(md.RemainingArgs(), *frames)
//	}
//
// A call to NewMode() discards the flags of the previous layer. The path of
// modes taken through the layers is available with Path().
//
// Explicitly set flags can be detected with Visited(). This is useful when a
// flag overrides a value that might also come from a file.
package modalflag
