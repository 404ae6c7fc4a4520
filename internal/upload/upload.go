package upload

import (
	"fmt"
	"io"
	"math/rand"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// MaxProductImages caps how many images a listing may carry.
const MaxProductImages = 4

// Saver writes multipart uploads into a local directory that the
// server serves statically. Stored paths are returned relative to the
// server root, e.g. "uploads/images-1712345678-123456789.png".
type Saver struct {
	dir string
}

// NewSaver ensures the upload directory exists.
func NewSaver(dir string) (*Saver, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Saver{dir: dir}, nil
}

// Save stores one uploaded file under a unique name derived from the
// form field and the original extension.
func (s *Saver) Save(field string, fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	name := fmt.Sprintf("%s-%d-%d%s", field, time.Now().UnixMilli(), rand.Int63n(1e9), ext(fh.Filename))
	path := filepath.Join(s.dir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write upload file: %w", err)
	}
	return filepath.ToSlash(path), nil
}

// SaveAll stores up to max files from the field, in order.
func (s *Saver) SaveAll(field string, fhs []*multipart.FileHeader, max int) ([]string, error) {
	if len(fhs) > max {
		fhs = fhs[:max]
	}
	paths := make([]string, 0, len(fhs))
	for _, fh := range fhs {
		path, err := s.Save(field, fh)
		if err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func ext(filename string) string {
	e := filepath.Ext(filename)
	if e == "" {
		return ""
	}
	return strings.ToLower(e)
}
