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

package pattern

import (
	"fmt"
	"sort"

	"github.com/jetsetilly/videoout/capture"
	"github.com/jetsetilly/videoout/capture/scan"
	"github.com/jetsetilly/videoout/curated"
)

// Sentinal error patterns for the pattern package.
const (
	InvalidTiming     = "pattern: invalid timing (%v)"
	UnknownTiming     = "pattern: unknown timing (%s)"
	UnsupportedFormat = "pattern: %v"
)

// Timing describes the shape of a frame in clocks and lines. Each line
// begins with the sync pulse, followed by the back porch, the active pixels
// and the front porch. Each frame begins with the vertical sync lines in the
// same way.
type Timing struct {
	HActive int
	HFront  int
	HSync   int
	HBack   int

	VActive int
	VFront  int
	VSync   int
	VBack   int
}

func (t Timing) String() string {
	return fmt.Sprintf("%dx%d h(%d %d %d) v(%d %d %d)",
		t.HActive, t.VActive,
		t.HFront, t.HSync, t.HBack,
		t.VFront, t.VSync, t.VBack)
}

// LineClocks returns the number of clocks in a line.
func (t Timing) LineClocks() int {
	return t.HSync + t.HBack + t.HActive + t.HFront
}

// FrameLines returns the number of lines in a frame.
func (t Timing) FrameLines() int {
	return t.VSync + t.VBack + t.VActive + t.VFront
}

// Validate returns an error if the timing cannot be captured.
func (t Timing) Validate() error {
	if t.HActive <= 0 || t.VActive <= 0 || t.HSync <= 0 || t.VSync <= 0 {
		return curated.Errorf(InvalidTiming, t)
	}
	if t.HFront < 0 || t.HBack < 0 || t.VFront < 0 || t.VBack < 0 {
		return curated.Errorf(InvalidTiming, t)
	}

	// a line must be long enough for its sync edge to pass the debounce
	// threshold
	if t.LineClocks()-1 <= capture.DefaultDebounce {
		return curated.Errorf(InvalidTiming, t)
	}

	return nil
}

// Window returns the active window of the timing for the discipline. For
// the Sync discipline, counting begins at zero on the clock after the
// horizontal sync edge so the horizontal offset is one less than the number
// of clocks before the active pixels.
func (t Timing) Window(disc capture.Discipline) scan.Window {
	if disc == capture.Enable {
		return scan.Window{HActive: t.HActive, VActive: t.VActive}
	}
	return scan.Window{
		HOffset: t.HSync + t.HBack - 1,
		HActive: t.HActive,
		VOffset: t.VSync + t.VBack,
		VActive: t.VActive,
	}
}

// Timings is a list of named timings.
var Timings = map[string]Timing{
	// 640x480 at 60Hz
	"vga": {
		HActive: 640, HFront: 16, HSync: 96, HBack: 48,
		VActive: 480, VFront: 10, VSync: 2, VBack: 33,
	},

	// 720x576 at 50Hz
	"pal": {
		HActive: 720, HFront: 12, HSync: 64, HBack: 68,
		VActive: 576, VFront: 5, VSync: 5, VBack: 39,
	},

	// a small frame for quick tests
	"small": {
		HActive: 28, HFront: 2, HSync: 3, HBack: 3,
		VActive: 8, VFront: 1, VSync: 2, VBack: 1,
	},
}

// TimingNames returns the sorted names of the entries in Timings.
func TimingNames() []string {
	n := make([]string, 0, len(Timings))
	for k := range Timings {
		n = append(n, k)
	}
	sort.Strings(n)
	return n
}

// LookupTiming returns the named timing.
func LookupTiming(name string) (Timing, error) {
	if t, ok := Timings[name]; ok {
		return t, nil
	}
	return Timing{}, curated.Errorf(UnknownTiming, name)
}
