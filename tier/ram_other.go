//go:build !linux

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

// DetectPhysicalRAM falls back to a conservative default on platforms this
// tool has no syscall binding for; it only affects which tier is picked, not
// correctness, so a run still completes (possibly in a smaller tier than the
// host could actually support).
func DetectPhysicalRAM() uint64 {
	return fallbackRAM
}
