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

import (
	"strings"

	"github.com/jetsetilly/videoout/curated"
)

// Colorspace says how the channel values of a sample are interpreted.
type Colorspace int

// List of valid Colorspace values.
const (
	RGB444 Colorspace = iota
	YUV444
	YUV422
	YUV420
)

// Colorspaces lists the names of all colorspaces. Suitable for use in help
// messages.
var Colorspaces = []string{"RGB444", "YUV444", "YUV422", "YUV420"}

func (cs Colorspace) String() string {
	if cs < 0 || int(cs) >= len(Colorspaces) {
		return "unknown"
	}
	return Colorspaces[cs]
}

// Subsampled returns true if chroma is shared between neighbouring pixels.
func (cs Colorspace) Subsampled() bool {
	return cs == YUV422 || cs == YUV420
}

// ParseColorspace converts a name to a Colorspace. The name is not case
// sensitive.
func ParseColorspace(s string) (Colorspace, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for i, n := range Colorspaces {
		if s == n {
			return Colorspace(i), nil
		}
	}
	return RGB444, curated.Errorf(UnknownColorspace, s)
}

// Discipline is the method used to decide the position of a sample.
type Discipline int

// List of valid Discipline values.
const (
	Sync Discipline = iota
	Enable
)

// Disciplines lists the names of the disciplines, as used on the command
// line. HV for horizontal and vertical sync. DE for data enable.
var Disciplines = []string{"HV", "DE"}

func (d Discipline) String() string {
	if d < 0 || int(d) >= len(Disciplines) {
		return "unknown"
	}
	return Disciplines[d]
}

// ParseDiscipline converts a name to a Discipline. The name is not case
// sensitive.
func ParseDiscipline(s string) (Discipline, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for i, n := range Disciplines {
		if s == n {
			return Discipline(i), nil
		}
	}
	return Sync, curated.Errorf(UnknownDiscipline, s)
}
