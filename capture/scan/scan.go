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

// Package scan tracks the position of the beam, so to speak, as samples arrive
// from the video bus.
//
// Two disciplines are supported. The Sync tracker follows explicit horizontal
// and vertical synchronisation pulses and captures samples that fall inside
// an active window. The Enable tracker has no synchronisation signals to work
// with and instead counts the samples presented while the data enable signal
// is high. Both trackers implement the Tracker interface.
package scan

import (
	"fmt"

	"github.com/jetsetilly/videoout/capture/signal"
)

// Step is the result of presenting a single sample to a Tracker. The tracker
// will have moved on by the time Step is returned but the X and Y fields
// refer to the position at which the sample was taken.
type Step struct {
	// the sample falls inside the active area. X and Y are only meaningful
	// when Active is true and are measured from the top-left of the active
	// area
	Active bool
	X      int
	Y      int

	// the end of a scanline was recognised. Line is the vertical count at
	// the moment the event was recognised
	EndOfLine bool
	Line      int

	// the end of the frame was recognised
	Boundary bool
}

// Tracker is implemented by the Sync and Enable types.
type Tracker interface {
	// Step should be called once per rising clock edge
	Step(s signal.Sample) Step

	// Position returns the current horizontal and vertical counts
	Position() (int, int)
}

// Window describes the active area of the scan.
type Window struct {
	HOffset int
	HActive int
	VOffset int
	VActive int
}

func (w Window) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", w.HActive, w.VActive, w.HOffset, w.VOffset)
}

// Empty is true if the window has no area. An empty window never produces an
// active step.
func (w Window) Empty() bool {
	return w.HActive <= 0 || w.VActive <= 0
}

// Contains returns true if the horizontal and vertical counts fall inside the
// window.
func (w Window) Contains(hcount int, vcount int) bool {
	return vcount >= w.VOffset && vcount < w.VOffset+w.VActive &&
		hcount >= w.HOffset && hcount < w.HOffset+w.HActive
}

// Sync tracks position using explicit synchronisation signals.
type Sync struct {
	win      Window
	hpol     signal.Polarity
	vpol     signal.Polarity
	debounce int

	hcount int
	vcount int

	// sync levels at the previous rising clock edge
	prevHS bool
	prevVS bool
}

// NewSync is the preferred method of initialisation for the Sync type.
//
// The debounce value is the number of samples that must have been counted
// since the previous horizontal sync for a new horizontal sync to advance the
// vertical count. Short pulses, such as those seen during the vertical
// synchronisation period of some signals, are ignored as a result.
func NewSync(win Window, hpol signal.Polarity, vpol signal.Polarity, debounce int) *Sync {
	return &Sync{
		win:      win,
		hpol:     hpol,
		vpol:     vpol,
		debounce: debounce,
	}
}

// Step implements the Tracker interface. Events are processed in a fixed
// order: pixel capture, vertical sync and then horizontal sync. A sample that
// coincides with a vertical sync edge therefore belongs to the frame that is
// ending.
func (trk *Sync) Step(s signal.Sample) Step {
	var st Step

	if trk.win.Contains(trk.hcount, trk.vcount) {
		st.Active = true
		st.X = trk.hcount - trk.win.HOffset
		st.Y = trk.vcount - trk.win.VOffset
	}

	if trk.vpol.Rising(trk.prevVS, s.VSync) {
		trk.hcount = 0
		trk.vcount = 0
		st.Boundary = true
	}

	if trk.hpol.Rising(trk.prevHS, s.HSync) {
		st.EndOfLine = true
		st.Line = trk.vcount
		if trk.hcount > trk.debounce {
			trk.vcount++
		}
		trk.hcount = 0
	} else {
		trk.hcount++
	}

	trk.prevVS = s.VSync
	trk.prevHS = s.HSync

	return st
}

// Position implements the Tracker interface.
func (trk *Sync) Position() (int, int) {
	return trk.hcount, trk.vcount
}

// Enable tracks position by counting samples while the data enable signal is
// high. The offsets of the window are not used.
type Enable struct {
	win    Window
	hcount int
	vcount int
}

// NewEnable is the preferred method of initialisation for the Enable type.
func NewEnable(win Window) *Enable {
	return &Enable{win: win}
}

// Step implements the Tracker interface.
func (trk *Enable) Step(s signal.Sample) Step {
	if !s.DataEnable || trk.win.Empty() {
		return Step{}
	}

	st := Step{
		Active: true,
		X:      trk.hcount,
		Y:      trk.vcount,
	}

	trk.hcount++
	if trk.hcount >= trk.win.HActive {
		st.EndOfLine = true
		st.Line = trk.vcount
		trk.hcount = 0

		trk.vcount++
		if trk.vcount >= trk.win.VActive {
			trk.vcount = 0
			st.Boundary = true
		}
	}

	return st
}

// Position implements the Tracker interface.
func (trk *Enable) Position() (int, int) {
	return trk.hcount, trk.vcount
}
