//go:build !ceph

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

package cli

import (
	"errors"
	"io"

	"github.com/launix-de/groupfinder/report"
)

// newCephSink is a stub for builds without the ceph tag (the default — it
// requires cgo and a local librados). Selecting --output=ceph on such a
// build fails fast with a clear message instead of a missing-symbol error.
func newCephSink(f Flags) report.Sink {
	return cephUnavailableSink{}
}

type cephUnavailableSink struct{}

func (cephUnavailableSink) Create(name string) (io.WriteCloser, error) {
	return nil, errors.New("cli: built without the 'ceph' tag; --output=ceph is unavailable")
}
