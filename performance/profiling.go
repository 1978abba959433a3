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

package performance

import (
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/jetsetilly/videoout/curated"
)

// Sentinal error patterns for the performance package.
const (
	ProfileError = "performance: %v"
)

// RunProfiler runs the function with CPU profiling if cpuFile is not empty.
// A heap profile is written to memFile after the function has returned if
// memFile is not empty. The error from the function is returned in
// preference to any profiling error.
func RunProfiler(cpuFile string, memFile string, run func() error) error {
	err := cpuProfile(cpuFile, run)

	if merr := memProfile(memFile); merr != nil && err == nil {
		err = merr
	}

	return err
}

func cpuProfile(outFile string, run func() error) error {
	if outFile == "" {
		return run()
	}

	f, err := os.Create(outFile)
	if err != nil {
		return curated.Errorf(ProfileError, err)
	}
	defer f.Close()

	if err := pprof.StartCPUProfile(f); err != nil {
		return curated.Errorf(ProfileError, err)
	}
	defer pprof.StopCPUProfile()

	return run()
}

func memProfile(outFile string) error {
	if outFile == "" {
		return nil
	}

	f, err := os.Create(outFile)
	if err != nil {
		return curated.Errorf(ProfileError, err)
	}
	defer f.Close()

	runtime.GC()
	if err := pprof.WriteHeapProfile(f); err != nil {
		return curated.Errorf(ProfileError, err)
	}

	return nil
}

// Rate returns the number of samples per second.
func Rate(samples int, elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}
	return float64(samples) / elapsed.Seconds()
}

// FormatRate returns the rate with an SI prefix. For example, "1.50 MS/s".
func FormatRate(rate float64) string {
	switch {
	case rate >= 1e9:
		return fmt.Sprintf("%.2f GS/s", rate/1e9)
	case rate >= 1e6:
		return fmt.Sprintf("%.2f MS/s", rate/1e6)
	case rate >= 1e3:
		return fmt.Sprintf("%.2f kS/s", rate/1e3)
	}
	return fmt.Sprintf("%.0f S/s", rate)
}
