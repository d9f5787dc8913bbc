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

package ingest

import (
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
)

// stableWindow is how long the input file's size must stay unchanged before
// WaitForStableInput returns.
const stableWindow = 2 * time.Second

// WaitForStableInput watches path and returns once its size has stopped
// changing for stableWindow, for the case where the external point producer
// is still appending to the file when this tool starts. It does not make
// Load itself incremental: once it returns, Load still reads the file once,
// start to finish (SPEC_FULL.md §6's --input-wait).
func WaitForStableInput(path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return err
	}

	lastSize, err := fileSize(path)
	if err != nil {
		return err
	}
	timer := time.NewTimer(stableWindow)
	defer timer.Stop()

	for {
		select {
		case _, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			size, err := fileSize(path)
			if err != nil {
				return err
			}
			if size != lastSize {
				lastSize = size
				if !timer.Stop() {
					<-timer.C
				}
				timer.Reset(stableWindow)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return err
		case <-timer.C:
			return nil
		}
	}
}

func fileSize(path string) (int64, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return fi.Size(), nil
}
