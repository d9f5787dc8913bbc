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

// Package cli wires the staged pipeline (Configure → Load → Index →
// Enumerate → Report) into a single binary: the interactive wizard from
// spec.md §6, the optional flags SPEC_FULL.md §4.8/§4.9/§6 add on top of it,
// and the errgroup-supervised run itself.
package cli

import (
	"flag"

	"github.com/launix-de/groupfinder/report"
)

// Flags are the optional, non-interactive additions SPEC_FULL.md layers on
// top of the spec.md §6 prompt wizard. None of them change default
// behavior: every zero value reproduces spec.md's plain-file, unsorted,
// uncompressed, single-process output exactly.
type Flags struct {
	Output      string // "file" (default), "s3", "ceph"
	Source      string // "text" (default), "mysql", "postgres"
	DSN         string // connection string for --source=mysql|postgres
	Table       string // source table name for --source=mysql|postgres
	InputWait   bool   // wait for the input file's size to stabilize before Load
	ProgressWS  string // ":PORT" to serve a progress websocket, empty to disable
	SortedOut   bool   // buffer and flush groups in deterministic order
	Compress    string // "none" (default), "lz4", "xz"
	S3Bucket    string
	S3Prefix    string
	S3Region    string
	S3Endpoint  string
	CephPool    string
	CephCluster string
	CephUser    string
	CephConf    string
}

// ParseFlags parses args (typically os.Args[1:]) into Flags. Unset flags
// keep their spec.md §6 default behavior.
func ParseFlags(args []string) (Flags, error) {
	fs := flag.NewFlagSet("groupfinder", flag.ContinueOnError)
	f := Flags{}
	fs.StringVar(&f.Output, "output", "file", "report destination: file, s3, ceph")
	fs.StringVar(&f.Source, "source", "text", "point source: text, mysql, postgres")
	fs.StringVar(&f.DSN, "dsn", "", "data source name for --source=mysql|postgres")
	fs.StringVar(&f.Table, "table", "", "source table for --source=mysql|postgres")
	fs.BoolVar(&f.InputWait, "input-wait", false, "wait for the input file to stop growing before reading it")
	fs.StringVar(&f.ProgressWS, "progress-ws", "", "serve a progress websocket on :PORT")
	fs.BoolVar(&f.SortedOut, "sorted-output", false, "buffer and flush groups in deterministic order")
	fs.StringVar(&f.Compress, "compress", "none", "output compression: none, lz4, xz")
	fs.StringVar(&f.S3Bucket, "s3-bucket", "", "S3 bucket for --output=s3")
	fs.StringVar(&f.S3Prefix, "s3-prefix", "", "S3 key prefix for --output=s3")
	fs.StringVar(&f.S3Region, "s3-region", "", "S3 region for --output=s3")
	fs.StringVar(&f.S3Endpoint, "s3-endpoint", "", "custom S3 endpoint (MinIO etc.) for --output=s3")
	fs.StringVar(&f.CephPool, "ceph-pool", "", "RADOS pool for --output=ceph")
	fs.StringVar(&f.CephCluster, "ceph-cluster", "ceph", "RADOS cluster name for --output=ceph")
	fs.StringVar(&f.CephUser, "ceph-user", "client.admin", "RADOS user for --output=ceph")
	fs.StringVar(&f.CephConf, "ceph-conf", "", "ceph.conf path for --output=ceph")
	if err := fs.Parse(args); err != nil {
		return Flags{}, err
	}
	return f, nil
}

// Sink builds the report.Sink the --output flag selects.
func (f Flags) Sink() report.Sink {
	switch f.Output {
	case "s3":
		return &report.S3Sink{
			Bucket:   f.S3Bucket,
			Prefix:   f.S3Prefix,
			Region:   f.S3Region,
			Endpoint: f.S3Endpoint,
		}
	case "ceph":
		return newCephSink(f)
	default:
		return report.FileSink{}
	}
}

// Compression maps the --compress flag to a report.Compression value.
func (f Flags) Compression() report.Compression {
	switch f.Compress {
	case "lz4":
		return report.CompressLZ4
	case "xz":
		return report.CompressXZ
	default:
		return report.CompressNone
	}
}
