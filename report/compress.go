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
	"fmt"
	"io"

	lz4 "github.com/pierrec/lz4/v4"
	"github.com/ulikunitz/xz"
)

// Compression selects the stream wrapper WrapCompressor applies to a sink's
// WriteCloser, grounded on the gzip/xz stream-wrapper helpers the engine
// this tool descends from exposes for its own exported streams.
type Compression string

const (
	CompressNone Compression = "none"
	CompressLZ4  Compression = "lz4"
	CompressXZ   Compression = "xz"
)

// compressingWriteCloser closes the compressor first (flushing its trailer)
// and only then the underlying sink writer.
type compressingWriteCloser struct {
	inner io.WriteCloser
	under io.WriteCloser
}

func (c *compressingWriteCloser) Write(p []byte) (int, error) { return c.inner.Write(p) }

func (c *compressingWriteCloser) Close() error {
	if err := c.inner.Close(); err != nil {
		c.under.Close()
		return err
	}
	return c.under.Close()
}

// WrapCompressor wraps under in the requested stream compressor. Default
// (CompressNone) returns under unchanged, matching spec.md §6's plain-text
// output exactly.
func WrapCompressor(under io.WriteCloser, kind Compression) (io.WriteCloser, error) {
	switch kind {
	case "", CompressNone:
		return under, nil
	case CompressLZ4:
		return &compressingWriteCloser{inner: lz4.NewWriter(under), under: under}, nil
	case CompressXZ:
		zw, err := xz.NewWriter(under)
		if err != nil {
			return nil, err
		}
		return &compressingWriteCloser{inner: zw, under: under}, nil
	default:
		return nil, fmt.Errorf("report: unknown compression %q", kind)
	}
}
