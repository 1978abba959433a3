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

// Package curated wraps the construction of errors so that they can be
// identified later by the pattern they were created with.
//
// Curated errors are created with Errorf(). The first argument is a pattern
// rather than a format string because it also serves as the identity of the
// error:
//
//	const UnknownColumn = "trace: unknown column (%s)"
//
//	err := curated.Errorf(UnknownColumn, name)
//	if curated.Is(err, UnknownColumn) {
//		...
//	}
//
// Packages export their patterns as string constants. Has() is like Is() but
// searches the whole chain of wrapped errors:
//
//	f := curated.Errorf("capture: %v", err)
//	curated.Has(f, UnknownColumn) // true
//	curated.Is(f, UnknownColumn)  // false
//
// Errors passed as values to Errorf() are available to errors.Is() and
// errors.As() from the standard library, so io.EOF and friends can still be
// detected after being curated.
//
// Error messages are treated as a chain of parts separated by ": ". Adjacent
// duplicate parts are removed when the message is produced, so the
// following:
//
//	curated.Errorf("capture: %v", curated.Errorf("capture: %v", err))
//
// prints as "capture: <err>" rather than "capture: capture: <err>". This means
// that a function need not know whether its caller has already prefixed an
// error.
package curated
