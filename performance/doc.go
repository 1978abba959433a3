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

// Package performance contains helper functions relating to the performance
// of a capture.
//
// RunProfiler() wraps a function with CPU and memory profiling. Either
// profile can be omitted by giving an empty filename.
//
// Rate() calculates the aggregate sample rate of a capture. It is not
// suitable for live monitoring.
package performance
