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

// Sentinal error patterns for the capture package.
const (
	UnknownColorspace  = "capture: unknown colorspace (%s)"
	UnknownDiscipline  = "capture: unknown discipline (%s)"
	UnsupportedPairing = "capture: %v is not supported with the %v discipline"
	SinkError          = "capture: sink: %v"
)
