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

// Package ingest turns an external point producer into a stream of (x, z)
// pairs handed to a sink callback during Load. The line-oriented text format
// of spec.md §6 is the default and only required source; LoadMySQL and
// LoadPostgres are alternate sources that call the same kind of sink for
// deployments where the
// producer writes into a staging database table instead of a file.
package ingest

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// maxLineLength is the hard cap on one input line (spec.md §6).
const maxLineLength = 256

// arrow is the required separator between ignored leading content and the
// "(<x>,<z>)" pair.
const arrow = "->"

// ParseLine extracts (x, z) from one input line, per spec.md §6: any content
// before "->" or after the closing ")" is ignored; lines that don't contain
// "->(<int>,<int>)" are reported as not-ok rather than as an error, since
// malformed lines are silently skipped, not fatal.
func ParseLine(line string) (x, z int32, ok bool) {
	if len(line) > maxLineLength {
		line = line[:maxLineLength]
	}
	i := strings.Index(line, arrow)
	if i < 0 {
		return 0, 0, false
	}
	rest := line[i+len(arrow):]
	open := strings.IndexByte(rest, '(')
	if open < 0 {
		return 0, 0, false
	}
	rest = rest[open+1:]
	close := strings.IndexByte(rest, ')')
	if close < 0 {
		return 0, 0, false
	}
	pair := rest[:close]
	comma := strings.IndexByte(pair, ',')
	if comma < 0 {
		return 0, 0, false
	}
	xs := strings.TrimSpace(pair[:comma])
	zs := strings.TrimSpace(pair[comma+1:])
	xi, err := strconv.ParseInt(xs, 10, 32)
	if err != nil {
		return 0, 0, false
	}
	zi, err := strconv.ParseInt(zs, 10, 32)
	if err != nil {
		return 0, 0, false
	}
	return int32(xi), int32(zi), true
}

// LoadText scans r line by line, feeding every successfully parsed (x, z)
// pair into sink. It returns the number of points fed, or an error if
// reading itself failed (not if individual lines were malformed — those are
// silently skipped per spec.md §7). Scanning happens on a background
// goroutine so the caller can start appending into the point store as soon
// as lines arrive, the same producer/consumer split storage.LoadCSV uses for
// its own line-oriented import.
func LoadText(r io.Reader, sink func(x, z int32)) (count int64, err error) {
	scanner := bufio.NewScanner(r)
	// Lines are capped at maxLineLength for parsing (spec.md §6), but the
	// scan buffer is generous so an oversized line is truncated by
	// ParseLine rather than aborting the whole scan with ErrTooLong.
	scanner.Buffer(make([]byte, 4096), 1<<20)

	lines := make(chan string, 4096)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		scanErr <- scanner.Err()
	}()

	for line := range lines {
		if line == "" {
			continue
		}
		x, z, ok := ParseLine(line)
		if !ok {
			continue
		}
		sink(x, z)
		count++
	}
	return count, <-scanErr
}
