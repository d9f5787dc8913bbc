package cli

import (
	"testing"

	"github.com/launix-de/groupfinder/report"
)

func TestParseFlagsDefaults(t *testing.T) {
	f, err := ParseFlags(nil)
	if err != nil {
		t.Fatal(err)
	}
	if f.Output != "file" {
		t.Fatalf("expected default output 'file', got %q", f.Output)
	}
	if f.Source != "text" {
		t.Fatalf("expected default source 'text', got %q", f.Source)
	}
	if f.Compress != "none" {
		t.Fatalf("expected default compress 'none', got %q", f.Compress)
	}
	if f.SortedOut {
		t.Fatal("expected sorted-output default off")
	}
}

func TestFlagsSinkSelectsFileByDefault(t *testing.T) {
	f, err := ParseFlags(nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := f.Sink().(report.FileSink); !ok {
		t.Fatalf("expected default sink to be a FileSink, got %T", f.Sink())
	}
}

func TestFlagsSinkSelectsS3(t *testing.T) {
	f, err := ParseFlags([]string{"-output=s3", "-s3-bucket=my-bucket"})
	if err != nil {
		t.Fatal(err)
	}
	s3, ok := f.Sink().(*report.S3Sink)
	if !ok {
		t.Fatalf("expected *report.S3Sink, got %T", f.Sink())
	}
	if s3.Bucket != "my-bucket" {
		t.Fatalf("expected bucket 'my-bucket', got %q", s3.Bucket)
	}
}

func TestCompressionMapping(t *testing.T) {
	cases := map[string]report.Compression{
		"none": report.CompressNone,
		"lz4":  report.CompressLZ4,
		"xz":   report.CompressXZ,
		"":     report.CompressNone,
	}
	for in, want := range cases {
		f := Flags{Compress: in}
		if got := f.Compression(); got != want {
			t.Fatalf("Compression(%q) = %q, want %q", in, got, want)
		}
	}
}
