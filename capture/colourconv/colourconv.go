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

// Package colourconv converts the channel values sampled from a video bus into
// 8-bit RGB colours.
//
// Channel values are first reduced to the configured bit depth and then
// shifted so that they occupy the high bits of a byte. RGB values need no
// further treatment. YUV values are converted with a fixed-point BT.601 style
// transform and saturated to the range of a byte.
package colourconv

import "image/color"

// MaxDepth is the widest channel that is converted without truncation.
const MaxDepth = 8

// Depth describes how channel values of a particular bit depth are scaled to
// 8 bits. The zero value behaves as a depth of eight bits.
type Depth struct {
	bits  int
	mask  int
	shift int
}

// NewDepth returns the Depth for the number of bits. Values outside of the
// range 1 to MaxDepth are treated as MaxDepth and any channel bits above the
// lowest eight are ignored.
func NewDepth(bits int) Depth {
	if bits < 1 || bits > MaxDepth {
		return Depth{bits: MaxDepth, mask: 0xff, shift: 0}
	}
	return Depth{
		bits:  bits,
		mask:  (1 << bits) - 1,
		shift: MaxDepth - bits,
	}
}

// Bits returns the effective depth.
func (d Depth) Bits() int {
	if d.bits == 0 {
		return MaxDepth
	}
	return d.bits
}

func (d Depth) normalise() Depth {
	if d.bits == 0 {
		return NewDepth(MaxDepth)
	}
	return d
}

// Scale returns v masked to the depth and shifted into the high bits of a
// byte.
func (d Depth) Scale(v uint16) uint8 {
	d = d.normalise()
	return uint8((int(v) & d.mask) << d.shift)
}

// RGB returns the colour for a full-rate RGB sample. No transform is applied
// other than scaling each channel.
func (d Depth) RGB(red, green, blue uint16) color.RGBA {
	return color.RGBA{
		R: d.Scale(red),
		G: d.Scale(green),
		B: d.Scale(blue),
		A: 255,
	}
}

// multiplier tables for the chroma contributions. the values are the BT.601
// coefficients in 1/128 units
const (
	crToRed   = 180
	cbToGreen = 44
	crToGreen = 91
	cbToBlue  = 226

	redBias   = 22906
	greenBias = 17264
	blueBias  = 28928
)

// YUV returns the colour for a luma/chroma sample. The results are clamped
// to the range 0 to 255.
func (d Depth) YUV(luma, cb, cr uint16) color.RGBA {
	d = d.normalise()

	y := (int(luma) & d.mask) << (d.shift + 7)
	u := (int(cb) & d.mask) << d.shift
	v := (int(cr) & d.mask) << d.shift

	r := (y + crToRed*v - redBias) >> 7
	g := (y - cbToGreen*u - crToGreen*v + greenBias) >> 7
	b := (y + cbToBlue*u - blueBias) >> 7

	return color.RGBA{
		R: clamp(r),
		G: clamp(g),
		B: clamp(b),
		A: 255,
	}
}

func clamp(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
