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

// Package paths prepares the paths of videoout resources, such as device
// profiles.
//
// The ResourcePath() function prepends the resource with the base resource
// directory. If a directory called ".videoout" is present in the current
// directory then that is used. Otherwise the base is in the user's config
// directory, as reported by os.UserConfigDir(). For example, the path of the
// profile called "vga" on a Linux system:
//
//	d := paths.ResourcePath(paths.Profiles, "vga")
//
// Will be:
//
//	/home/user/.config/videoout/profiles/vga
//
// The existence of the resource is not checked.
package paths
