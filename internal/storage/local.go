package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// PublicMount is the URL path the upload directory is served under. Issued
// references live below it, so a reference doubles as the download URL.
const PublicMount = "/uploads"

// Local stores uploaded artifacts on disk and hands back an opaque reference
// string. References carry only the mount prefix and the flat file name,
// never the disk location of Dir.
type Local struct {
	Dir     string
	MaxSize int64 // bytes
}

// NewLocal creates the upload directory if needed.
func NewLocal(dir string, maxSizeMB int64) (*Local, error) {
	if dir == "" {
		dir = "uploads/videos"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	maxSize := maxSizeMB * 1024 * 1024
	if maxSize <= 0 {
		maxSize = 50 * 1024 * 1024
	}
	return &Local{Dir: dir, MaxSize: maxSize}, nil
}

// Save writes the stream to a uniquely named file and returns its reference.
func (l *Local) Save(src io.Reader, originalName string) (string, error) {
	name := fmt.Sprintf("%d-%s", time.Now().UnixNano(), sanitize(originalName))
	path := filepath.Join(l.Dir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create artifact file: %w", err)
	}
	defer dst.Close()

	written, err := io.Copy(dst, io.LimitReader(src, l.MaxSize+1))
	if err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write artifact: %w", err)
	}
	if written > l.MaxSize {
		os.Remove(path)
		return "", fmt.Errorf("artifact exceeds size limit of %d bytes", l.MaxSize)
	}

	return PublicMount + "/" + name, nil
}

// sanitize keeps references flat: path separators and oddities are stripped
// from client-supplied filenames.
func sanitize(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
	if name == "" || name == "." {
		name = "upload"
	}
	return name
}
