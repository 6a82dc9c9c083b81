// Package export packages a theme structure as an installable zip archive
// and reads such archives back.
package export

import (
	"archive/zip"
	"bytes"
	"compress/flate"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/v0xg/themeforge/internal/theme"
)

// modTime is fixed so equal themes give byte-identical archives.
var modTime = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// Write streams s as a zip archive to w. Each bucket maps to its directory
// and each file sits directly inside it. Any entry error aborts the archive,
// and nothing is written when two files map to the same entry path.
func Write(w io.Writer, s *theme.Structure) error {
	if err := CheckPaths(s); err != nil {
		return err
	}
	zw := zip.NewWriter(w)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.BestCompression)
	})

	for _, b := range theme.Buckets {
		for _, name := range s.Names(b) {
			if err := writeEntry(zw, b, name, s); err != nil {
				return err
			}
		}
	}
	return zw.Close()
}

func writeEntry(zw *zip.Writer, b theme.Bucket, name string, s *theme.Structure) error {
	v, _ := s.Get(b, name)
	text, err := theme.Encode(v)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", b, name, err)
	}
	fw, err := zw.CreateHeader(&zip.FileHeader{
		Name:     EntryPath(b, name),
		Method:   zip.Deflate,
		Modified: modTime,
	})
	if err != nil {
		return fmt.Errorf("create %s/%s: %w", b, name, err)
	}
	if _, err := io.WriteString(fw, text); err != nil {
		return fmt.Errorf("write %s/%s: %w", b, name, err)
	}
	return nil
}

// EntryPath is the archive path of a bucket file.
func EntryPath(b theme.Bucket, name string) string {
	return string(b) + "/" + path.Base(name)
}

// CheckPaths reports the first pair of files that share an archive path,
// such as sections/a/x.liquid and sections/b/x.liquid.
func CheckPaths(s *theme.Structure) error {
	seen := map[string]string{}
	for _, b := range theme.Buckets {
		for _, name := range s.Names(b) {
			p := EntryPath(b, name)
			if prev, ok := seen[p]; ok {
				return fmt.Errorf("%s/%s and %s/%s both map to %s", b, prev, b, name, p)
			}
			seen[p] = name
		}
	}
	return nil
}

// Bytes returns the archive in memory.
func Bytes(s *theme.Structure) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
