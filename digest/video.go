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

package digest

import (
	"crypto/sha1"
	"fmt"
)

// Video is an implementation of the capture.FrameSink and
// capture.FrameTrigger interfaces. It generates a SHA-1 value of the image at
// every frame boundary. The value of each frame is chained to the value of
// the previous frame so that the final hash covers the entire capture.
//
// Note that the use of SHA-1 is fine for this application because this is
// not a cryptographic task.
type Video struct {
	digest [sha1.Size]byte

	// the first sha1.Size bytes of the pixels array hold the digest of the
	// previous frame
	pixels []byte

	width    int
	height   int
	frameNum int
}

const pixelDepth = 3

// NewVideo is the preferred method of initialisation for the Video type. The
// width and height are the size of the active area.
func NewVideo(width int, height int) *Video {
	width = max(0, width)
	height = max(0, height)
	return &Video{
		pixels: make([]byte, sha1.Size+width*height*pixelDepth),
		width:  width,
		height: height,
	}
}

func (dig *Video) String() string {
	return fmt.Sprintf("video digest (%dx%d) after %d frames", dig.width, dig.height, dig.frameNum)
}

// Hash implements the digest.Digest interface.
func (dig *Video) Hash() string {
	return fmt.Sprintf("%x", dig.digest)
}

// ResetDigest implements the digest.Digest interface.
func (dig *Video) ResetDigest() {
	clear(dig.digest[:])
	clear(dig.pixels)
	dig.frameNum = 0
}

// Frames returns the number of frames that have contributed to the digest.
func (dig *Video) Frames() int {
	return dig.frameNum
}

// SetPixel implements the capture.FrameSink interface. Pixels outside the
// active area are ignored.
func (dig *Video) SetPixel(x, y int, red, green, blue uint8) error {
	if x < 0 || x >= dig.width || y < 0 || y >= dig.height {
		return nil
	}

	i := sha1.Size + (y*dig.width+x)*pixelDepth
	dig.pixels[i] = red
	dig.pixels[i+1] = green
	dig.pixels[i+2] = blue

	return nil
}

// Persist implements the capture.FrameSink interface. The digest is updated
// on every frame, whether or not the frame is persisted, so this function
// does nothing.
func (dig *Video) Persist(_ int) error {
	return nil
}

// NewFrame implements the capture.FrameTrigger interface.
func (dig *Video) NewFrame(frameNum int) error {
	copy(dig.pixels, dig.digest[:])
	dig.digest = sha1.Sum(dig.pixels)
	dig.frameNum = frameNum
	return nil
}
