package storage

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

const (
	// MaxImageSize is the upload ceiling for profile images.
	MaxImageSize = 5 << 20

	urlPrefix = "/static/uploads/"
)

var (
	ErrImageTooLarge    = errors.New("image exceeds the 5 MB limit")
	ErrUnsupportedImage = errors.New("image must be JPEG, PNG, or WebP")
)

var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// Uploads stores profile images under a managed directory. Filenames are
// random hex, never derived from the client-supplied name, so uploads
// cannot traverse outside the directory.
type Uploads struct {
	dir string
}

func NewUploads(dir string) (*Uploads, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &Uploads{dir: dir}, nil
}

// SaveImage validates type and size, then streams the file to disk. It
// returns the public URL path of the stored file. Nothing is written when
// validation fails.
func (u *Uploads) SaveImage(file *multipart.FileHeader) (string, error) {
	if file.Size > MaxImageSize {
		return "", ErrImageTooLarge
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(src, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}

	// The extension follows the sniffed type, never the client filename, so
	// the served Content-Type always matches the stored bytes.
	contentType := http.DetectContentType(head[:n])
	ext, ok := allowedTypes[contentType]
	if !ok {
		return "", ErrUnsupportedImage
	}

	name := randomHex(16) + ext
	path := filepath.Join(u.dir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := dst.Write(head[:n]); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write upload: %w", err)
	}

	// Stream-limit the rest instead of buffering the whole payload; the
	// header size is client-asserted and cannot be trusted.
	written, err := io.Copy(dst, io.LimitReader(src, MaxImageSize))
	if err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write upload: %w", err)
	}
	if int64(n)+written > MaxImageSize {
		os.Remove(path)
		return "", ErrImageTooLarge
	}

	return urlPrefix + name, nil
}

// Remove deletes a previously stored image given its public URL path.
// Best effort: paths outside the managed directory are ignored, and a
// missing file is not an error.
func (u *Uploads) Remove(urlPath string) {
	if !strings.HasPrefix(urlPath, urlPrefix) {
		return
	}
	name := filepath.Base(urlPath)
	_ = os.Remove(filepath.Join(u.dir, name))
}

func randomHex(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		panic(err) // crypto/rand failure means the process cannot run safely
	}
	return hex.EncodeToString(buf)
}
