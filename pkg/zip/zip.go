package zip

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"time"
)

// Entry is one file placed in an archive.
type Entry struct {
	Filename string
	Modified time.Time
	Data     []byte
}

// Archive packs entries into an in-memory zip. Entries are stored without
// compression since PNG payloads are already compressed. Duplicate names are
// rejected.
func Archive(entries []Entry) ([]byte, error) {
	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)
	seen := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		if entry.Filename == "" {
			return nil, errors.New("zip: entry filename is required")
		}
		if _, dup := seen[entry.Filename]; dup {
			return nil, fmt.Errorf("zip: duplicate entry %q", entry.Filename)
		}
		seen[entry.Filename] = struct{}{}

		hdr := &zip.FileHeader{Name: entry.Filename, Method: zip.Store}
		if !entry.Modified.IsZero() {
			hdr.Modified = entry.Modified
		}
		w, err := zw.CreateHeader(hdr)
		if err != nil {
			return nil, fmt.Errorf("zip: create %s: %w", entry.Filename, err)
		}
		if _, err := w.Write(entry.Data); err != nil {
			return nil, fmt.Errorf("zip: write %s: %w", entry.Filename, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("zip: close: %w", err)
	}
	return buf.Bytes(), nil
}
