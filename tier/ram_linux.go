//go:build linux

/*
Copyright (C) 2026  Carl-Philip Hänsch

	This program is free software: you can redistribute it and/or modify
	it under the terms of the GNU General Public License as published by
	the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.

	This program is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU General Public License for more details.

	You should have received a copy of the GNU General Public License
	along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

package tier

import "golang.org/x/sys/unix"

// DetectPhysicalRAM queries total physical memory via sysinfo(2). It never
// fails outright: on error it falls back to a conservative default so a run
// degrades to the LOW tier rather than aborting.
func DetectPhysicalRAM() uint64 {
	var info unix.Sysinfo_t
	if err := unix.Sysinfo(&info); err != nil {
		return fallbackRAM
	}
	return uint64(info.Totalram) * uint64(info.Unit)
}
