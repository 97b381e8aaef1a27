package zip

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"
)

func TestArchiveRoundTrip(t *testing.T) {
	entries := []Entry{
		{Filename: "nanomerch-a.png", Data: []byte("first")},
		{Filename: "nanomerch-b.png", Data: []byte("second")},
	}
	raw, err := Archive(entries)
	if err != nil {
		t.Fatalf("Archive() error: %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		t.Fatalf("zip.NewReader() error: %v", err)
	}
	if len(zr.File) != len(entries) {
		t.Fatalf("files = %d, want %d", len(zr.File), len(entries))
	}
	for i, f := range zr.File {
		if f.Name != entries[i].Filename {
			t.Fatalf("file[%d] = %q, want %q", i, f.Name, entries[i].Filename)
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", f.Name, err)
		}
		got, _ := io.ReadAll(rc)
		rc.Close()
		if string(got) != string(entries[i].Data) {
			t.Fatalf("%s = %q, want %q", f.Name, got, entries[i].Data)
		}
	}
}

func TestArchiveRejectsBadNames(t *testing.T) {
	if _, err := Archive([]Entry{{Filename: ""}}); err == nil {
		t.Fatalf("expected error for empty name")
	}
	if _, err := Archive([]Entry{{Filename: "a.png"}, {Filename: "a.png"}}); err == nil {
		t.Fatalf("expected error for duplicate name")
	}
}

func TestArchiveEmpty(t *testing.T) {
	raw, err := Archive(nil)
	if err != nil {
		t.Fatalf("Archive(nil) error: %v", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		t.Fatalf("zip.NewReader() error: %v", err)
	}
	if len(zr.File) != 0 {
		t.Fatalf("empty archive has %d files", len(zr.File))
	}
}
