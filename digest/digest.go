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

// Package digest contains implementations of the capture sink interfaces
// that produce a cryptographic hash of the captured video. The hash can be
// compared with the hash of a later capture. If the new hash differs from a
// previously recorded value then something has changed. This is the basis of
// the REGRESS mode of the videoout program.
package digest

// Digest implementations return a cryptographic hash of everything they have
// seen. How the hash is generated is a matter for the implementation.
type Digest interface {
	Hash() string
	ResetDigest()
}
