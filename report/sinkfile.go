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

package report

import (
	"io"
	"os"
	"path/filepath"
)

// FileSink creates the report on local disk in Dir (the working directory
// when empty). This is the spec.md §6 default — byte-identical local-file
// output when no alternate sink is selected.
type FileSink struct {
	Dir string
}

func (f FileSink) Create(name string) (io.WriteCloser, error) {
	dir := f.Dir
	if dir == "" {
		dir = "."
	}
	return os.Create(filepath.Join(dir, name))
}
