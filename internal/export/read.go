package export

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/v0xg/themeforge/internal/theme"
)

// maxEntrySize bounds a single archive entry.
const maxEntrySize = 32 << 20

// Read loads an archive written by Write. Entries outside the seven
// buckets are ignored. JSON files of the config and locales buckets are
// decoded; everything else is kept as text.
func Read(r io.ReaderAt, size int64) (*theme.Structure, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}

	known := map[string]theme.Bucket{}
	for _, b := range theme.Buckets {
		known[string(b)] = b
	}

	s := theme.New()
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		dir, name, ok := strings.Cut(strings.TrimPrefix(f.Name, "/"), "/")
		b, isBucket := known[dir]
		if !ok || !isBucket || name == "" || strings.Contains(name, "/") {
			continue
		}
		data, err := readFile(f)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", f.Name, err)
		}
		s.Put(b, name, value(b, name, data))
	}
	return s, nil
}

// ReadBytes is Read over an in-memory archive.
func ReadBytes(data []byte) (*theme.Structure, error) {
	return Read(bytes.NewReader(data), int64(len(data)))
}

func readFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	data, err := io.ReadAll(io.LimitReader(rc, maxEntrySize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxEntrySize {
		return nil, fmt.Errorf("entry larger than %d bytes", maxEntrySize)
	}
	return data, nil
}

func value(b theme.Bucket, name string, data []byte) any {
	if (b == theme.Config || b == theme.Locales) && strings.HasSuffix(name, ".json") {
		var v any
		if json.Unmarshal(data, &v) == nil {
			return v
		}
	}
	return string(data)
}
