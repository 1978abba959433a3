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

package renderers

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"

	"github.com/jetsetilly/videoout/curated"
)

// Sentinal error patterns for the renderers package.
const (
	UnknownFormat   = "renderers: unknown image format (%s)"
	InvalidGeometry = "renderers: invalid image geometry (%dx%d scale %d)"
	PixelRange      = "renderers: pixel out of range (%d, %d)"
	SaveError       = "renderers: %s: %v"
)

// Format of image files.
type Format int

// List of valid Format values.
const (
	PNG Format = iota
	BMP
	JPEG
)

// Formats lists the names of the image formats. The name of a format is also
// its filename extension.
var Formats = []string{"png", "bmp", "jpeg"}

func (f Format) String() string {
	if f < 0 || int(f) >= len(Formats) {
		return "unknown"
	}
	return Formats[f]
}

// ParseFormat converts a name to a Format. The name is not case sensitive.
// The name "jpg" is accepted for JPEG.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "jpg" {
		return JPEG, nil
	}
	for i, n := range Formats {
		if s == n {
			return Format(i), nil
		}
	}
	return PNG, curated.Errorf(UnknownFormat, s)
}

// jpeg quality used by ImageFile
const jpegQuality = 95

// ImageFile is an implementation of the capture.FrameSink interface. It
// keeps the current frame in memory and saves it to disk when Persist() is
// called.
//
// The frame is not cleared between frames. Pixels that are not written in a
// frame keep the value they had in the previous frame.
type ImageFile struct {
	basename string
	format   Format
	scale    int

	frame *image.NRGBA

	// filename of the most recent file written by Persist()
	last string
}

// NewImageFile is the preferred method of initialisation for the ImageFile
// type. The width and height are the size of the active area. Images are
// scaled by an integer factor when they are saved.
func NewImageFile(basename string, width int, height int, format Format, scale int) (*ImageFile, error) {
	if width <= 0 || height <= 0 || scale < 1 {
		return nil, curated.Errorf(InvalidGeometry, width, height, scale)
	}
	if format < PNG || format > JPEG {
		return nil, curated.Errorf(UnknownFormat, format)
	}

	img := &ImageFile{
		basename: basename,
		format:   format,
		scale:    scale,
		frame:    image.NewNRGBA(image.Rect(0, 0, width, height)),
	}

	// frames start black rather than transparent
	draw.Draw(img.frame, img.frame.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)

	return img, nil
}

func (img *ImageFile) String() string {
	b := img.frame.Bounds()
	return fmt.Sprintf("%s_####.%s (%dx%d scale %d)", img.basename, img.format, b.Dx(), b.Dy(), img.scale)
}

// Filename returns the name of the file that will be used for the sequence
// number.
func (img *ImageFile) Filename(seq int) string {
	return fmt.Sprintf("%s_%04d.%s", img.basename, seq, img.format)
}

// Last returns the filename of the most recent file written. Returns the
// empty string if no file has been written.
func (img *ImageFile) Last() string {
	return img.last
}

// Image returns the current frame. The image is live and will change as the
// capture continues.
func (img *ImageFile) Image() *image.NRGBA {
	return img.frame
}

// SetPixel implements the capture.FrameSink interface.
func (img *ImageFile) SetPixel(x, y int, red, green, blue uint8) error {
	if !(image.Point{X: x, Y: y}).In(img.frame.Rect) {
		return curated.Errorf(PixelRange, x, y)
	}
	img.frame.SetNRGBA(x, y, color.NRGBA{R: red, G: green, B: blue, A: 255})
	return nil
}

// Persist implements the capture.FrameSink interface.
func (img *ImageFile) Persist(seq int) error {
	fn := img.Filename(seq)

	f, err := os.Create(fn)
	if err != nil {
		return curated.Errorf(SaveError, fn, err)
	}

	err = img.Encode(f)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = cerr
	}
	if err != nil {
		return curated.Errorf(SaveError, fn, err)
	}

	img.last = fn
	return nil
}

// Encode the current frame to the io.Writer in the format and scale of the
// ImageFile.
func (img *ImageFile) Encode(w io.Writer) error {
	var m image.Image = img.frame
	if img.scale > 1 {
		b := img.frame.Bounds()
		scaled := image.NewNRGBA(image.Rect(0, 0, b.Dx()*img.scale, b.Dy()*img.scale))
		draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), img.frame, b, draw.Src, nil)
		m = scaled
	}

	switch img.format {
	case BMP:
		return bmp.Encode(w, m)
	case JPEG:
		return jpeg.Encode(w, m, &jpeg.Options{Quality: jpegQuality})
	}
	return png.Encode(w, m)
}
