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

// Command groupfinder is the batch spatial-clustering engine: it ingests a
// flat list of (x, z) points, builds a uniform grid over them, and
// enumerates every 3- or 4-point group whose members lie within a
// user-supplied radius of their shared centroid. See SPEC_FULL.md for the
// full pipeline and the optional flags layered on top of the interactive
// wizard.
package main

import "os"

import "github.com/launix-de/groupfinder/cli"

func main() {
	os.Exit(cli.Main(os.Args[1:]))
}
