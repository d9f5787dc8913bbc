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

// Package report formats and writes the final groups_<radius>.txt output
// (spec.md §6): a header, one block per emitted group, and a summary
// footer. Where the report ends up is abstracted behind a Sink so the same
// Writer works whether the destination is local disk, S3, or (behind the
// ceph build tag) a Ceph RGW pool.
package report

import "io"

// Sink is a destination for the finished report. Create opens name (e.g.
// "groups_128.txt") for writing; the returned WriteCloser's Close finalizes
// the destination (flush to disk, PutObject to S3, etc).
type Sink interface {
	Create(name string) (io.WriteCloser, error)
}
