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

// Package signal defines the observation of a video bus taken on a single
// clock edge, as it is presented to the capture engine.
//
// A bus carries at most three channels. What each channel means depends on
// the colourspace of the bus:
//
//	RGB444   Red, Green, Blue
//	YUV444   Luma, Cb, Cr
//	YUV422   Luma, Chroma (Cb on even pixels, Cr on odd pixels)
//	YUV420   Luma, Chroma (Cb and Cr interleaved on chroma lines)
package signal

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/videoout/curated"
)

// Sentinal error patterns for the signal package.
const (
	UnknownPolarity = "signal: unrecognised polarity (%s)"
)

// Polarity is the level at which a synchronisation signal is considered to be
// active.
type Polarity bool

// List of valid Polarity values.
const (
	ActiveLow  Polarity = false
	ActiveHigh Polarity = true
)

func (p Polarity) String() string {
	if p == ActiveHigh {
		return "POS"
	}
	return "NEG"
}

// ParsePolarity accepts the strings produced by Polarity.String() as well as
// the more casual forms used in device profiles.
func ParsePolarity(s string) (Polarity, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "POS", "HIGH", "+", "1", "TRUE":
		return ActiveHigh, nil
	case "NEG", "LOW", "-", "0", "FALSE":
		return ActiveLow, nil
	}
	return ActiveLow, curated.Errorf(UnknownPolarity, s)
}

// Active returns true if level is the active level for the polarity.
func (p Polarity) Active(level bool) bool {
	return level == bool(p)
}

// Level returns the signal level for the active or inactive state.
func (p Polarity) Level(active bool) bool {
	return active == bool(p)
}

// Rising returns true if the signal has become active since the previous
// level was sampled.
func (p Polarity) Rising(prev bool, level bool) bool {
	return p.Active(level) && !p.Active(prev)
}

// Rising is true when a positive signal, such as the pixel clock, goes from
// low to high.
func Rising(prev bool, level bool) bool {
	return level && !prev
}

// NumChannels is the maximum number of colour channels on the bus.
const NumChannels = 3

// Channel indexes for the Channels field of the Sample type.
const (
	Red   = 0
	Green = 1
	Blue  = 2

	Luma = 0
	Cb   = 1
	Cr   = 2

	// Chroma is the single shared chroma channel of the sub-sampled formats
	Chroma = 1
)

// Sample is one observation of the bus. Samples are transient and are not
// retained by the engine beyond the call they are passed to.
type Sample struct {
	Clock bool

	// explicit synchronisation signals. levels are raw, the interpretation
	// depends on the configured polarity
	HSync bool
	VSync bool

	// data enable signals are always active high. for YUV420 buses
	// DataEnable gates the luma channel and ChromaEnable gates the chroma
	// channel
	DataEnable   bool
	ChromaEnable bool

	// channel values occupy the low bits of each word. bits above the
	// configured depth are ignored
	Channels [NumChannels]uint16
}

func (s Sample) String() string {
	b := strings.Builder{}
	if s.Clock {
		b.WriteString("CLK ")
	}
	if s.HSync {
		b.WriteString("HS ")
	}
	if s.VSync {
		b.WriteString("VS ")
	}
	if s.DataEnable {
		b.WriteString("DE ")
	}
	if s.ChromaEnable {
		b.WriteString("CE ")
	}
	b.WriteString(fmt.Sprintf("%02x %02x %02x", s.Channels[0], s.Channels[1], s.Channels[2]))
	return b.String()
}
