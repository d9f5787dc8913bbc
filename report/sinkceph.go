//go:build ceph

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
	"bytes"
	"io"
	"path"
	"sync"

	"github.com/ceph/go-ceph/rados"
)

// CephSink writes the finished report to a Ceph RGW/RADOS pool, gated behind
// the ceph build tag exactly as the storage engine this tool grew out of
// gates its own Ceph backend: it requires cgo and a local librados, not
// something every build environment has.
type CephSink struct {
	UserName    string
	ClusterName string
	ConfFile    string
	Pool        string
	Prefix      string

	mu    sync.Mutex
	conn  *rados.Conn
	ioctx *rados.IOContext
}

func (s *CephSink) ensureOpen() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ioctx != nil {
		return nil
	}

	conn, err := rados.NewConnWithClusterAndUser(s.ClusterName, s.UserName)
	if err != nil {
		return err
	}
	if s.ConfFile != "" {
		if err := conn.ReadConfigFile(s.ConfFile); err != nil {
			return err
		}
	} else {
		_ = conn.ReadDefaultConfigFile()
	}
	if err := conn.Connect(); err != nil {
		return err
	}
	ioctx, err := conn.OpenIOContext(s.Pool)
	if err != nil {
		conn.Shutdown()
		return err
	}
	s.conn = conn
	s.ioctx = ioctx
	return nil
}

func (s *CephSink) obj(name string) string {
	return path.Join(s.Prefix, name)
}

func (s *CephSink) Create(name string) (io.WriteCloser, error) {
	if err := s.ensureOpen(); err != nil {
		return nil, err
	}
	return &cephWriteCloser{sink: s, obj: s.obj(name)}, nil
}

type cephWriteCloser struct {
	sink   *CephSink
	obj    string
	buf    bytes.Buffer
	closed bool
}

func (w *cephWriteCloser) Write(p []byte) (int, error) {
	if w.closed {
		return 0, io.ErrClosedPipe
	}
	return w.buf.Write(p)
}

func (w *cephWriteCloser) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	return w.sink.ioctx.WriteFull(w.obj, w.buf.Bytes())
}
