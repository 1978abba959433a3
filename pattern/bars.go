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
	"image"
	"image/color"
)

// the colours of the bars from left to right
var barColors = []color.RGBA{
	{R: 192, G: 192, B: 192, A: 255}, // grey
	{R: 192, G: 192, B: 0, A: 255},   // yellow
	{R: 0, G: 192, B: 192, A: 255},   // cyan
	{R: 0, G: 192, B: 0, A: 255},     // green
	{R: 192, G: 0, B: 192, A: 255},   // magenta
	{R: 192, G: 0, B: 0, A: 255},     // red
	{R: 0, G: 0, B: 192, A: 255},     // blue
}

// NumBars is the number of colour bars in the pattern.
var NumBars = len(barColors)

// barWidth is always even so that a pair of pixels sharing chroma is never
// split by the edge of a bar
func barWidth(width int) int {
	return max(2, (width/NumBars)&^1)
}

// Bar returns the colour of the bar at column x of a pattern that is width
// pixels wide. Any pixels to the right of the last full bar are the colour
// of the last bar.
func Bar(x int, width int) color.RGBA {
	return barColors[min(x/barWidth(width), NumBars-1)]
}

// Bars returns an image of the colour bars.
func Bars(width int, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := range height {
		for x := range width {
			c := Bar(x, width)
			img.SetNRGBA(x, y, color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A})
		}
	}
	return img
}
