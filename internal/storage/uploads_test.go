package storage

import (
	"bytes"
	"errors"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var (
	jpegHeader = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F'}
	pngHeader  = []byte("\x89PNG\r\n\x1a\n")
)

// fileHeader builds a real multipart.FileHeader by writing and re-parsing a
// multipart body, the same shape Fiber hands to the handler.
func fileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatal(err)
	}
	if err := writer.Close(); err != nil {
		t.Fatal(err)
	}

	form, err := multipart.NewReader(&body, writer.Boundary()).ReadForm(32 << 20)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { form.RemoveAll() })
	return form.File["image"][0]
}

func dirEntries(t *testing.T, dir string) []os.DirEntry {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	return entries
}

func TestSaveImage_StoresJPEG(t *testing.T) {
	dir := t.TempDir()
	uploads, err := NewUploads(dir)
	if err != nil {
		t.Fatal(err)
	}

	content := append(append([]byte{}, jpegHeader...), bytes.Repeat([]byte{0}, 1024)...)
	url, err := uploads.SaveImage(fileHeader(t, "portrait.jpg", content))
	if err != nil {
		t.Fatalf("SaveImage: %v", err)
	}
	if !strings.HasPrefix(url, "/static/uploads/") {
		t.Fatalf("url = %q, want /static/uploads/ prefix", url)
	}
	if !strings.HasSuffix(url, ".jpg") {
		t.Fatalf("url = %q, want .jpg suffix", url)
	}
	if strings.Contains(url, "portrait") {
		t.Fatalf("url %q leaks the client filename", url)
	}

	stored, err := os.ReadFile(filepath.Join(dir, filepath.Base(url)))
	if err != nil {
		t.Fatalf("stored file missing: %v", err)
	}
	if !bytes.Equal(stored, content) {
		t.Fatal("stored bytes differ from upload")
	}
}

func TestSaveImage_SniffsTypeNotExtension(t *testing.T) {
	dir := t.TempDir()
	uploads, err := NewUploads(dir)
	if err != nil {
		t.Fatal(err)
	}

	// PNG bytes behind a lying .jpg name: the sniffed type decides both
	// acceptance and the stored extension, so the served Content-Type
	// matches the bytes.
	content := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, 64)...)
	url, err := uploads.SaveImage(fileHeader(t, "photo.jpg", content))
	if err != nil {
		t.Fatalf("SaveImage: %v", err)
	}
	if !strings.HasSuffix(url, ".png") {
		t.Fatalf("url = %q, want .png for PNG content", url)
	}

	// Executable content behind an image name is refused outright.
	if _, err := uploads.SaveImage(fileHeader(t, "evil.png", []byte("#!/bin/sh\nrm -rf /\n"))); !errors.Is(err, ErrUnsupportedImage) {
		t.Fatalf("expected ErrUnsupportedImage, got %v", err)
	}
	if entries := dirEntries(t, dir); len(entries) != 1 {
		t.Fatalf("rejected upload left files behind: %d entries", len(entries))
	}
}

func TestSaveImage_RejectsPlainText(t *testing.T) {
	dir := t.TempDir()
	uploads, err := NewUploads(dir)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := uploads.SaveImage(fileHeader(t, "notes.txt", []byte("hello world"))); !errors.Is(err, ErrUnsupportedImage) {
		t.Fatalf("expected ErrUnsupportedImage, got %v", err)
	}
	if entries := dirEntries(t, dir); len(entries) != 0 {
		t.Fatalf("rejected upload left files behind: %d entries", len(entries))
	}
}

func TestSaveImage_RejectsOversized(t *testing.T) {
	dir := t.TempDir()
	uploads, err := NewUploads(dir)
	if err != nil {
		t.Fatal(err)
	}

	content := append(append([]byte{}, jpegHeader...), bytes.Repeat([]byte{0}, 6<<20)...)
	if _, err := uploads.SaveImage(fileHeader(t, "huge.jpg", content)); !errors.Is(err, ErrImageTooLarge) {
		t.Fatalf("expected ErrImageTooLarge, got %v", err)
	}
	if entries := dirEntries(t, dir); len(entries) != 0 {
		t.Fatalf("oversized upload left files behind: %d entries", len(entries))
	}
}

func TestSaveImage_UniqueNames(t *testing.T) {
	uploads, err := NewUploads(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	content := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, 16)...)
	first, err := uploads.SaveImage(fileHeader(t, "a.png", content))
	if err != nil {
		t.Fatal(err)
	}
	second, err := uploads.SaveImage(fileHeader(t, "a.png", content))
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Fatalf("two uploads of the same file collided on %q", first)
	}
}

func TestRemove(t *testing.T) {
	dir := t.TempDir()
	uploads, err := NewUploads(dir)
	if err != nil {
		t.Fatal(err)
	}

	content := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, 16)...)
	url, err := uploads.SaveImage(fileHeader(t, "a.png", content))
	if err != nil {
		t.Fatal(err)
	}

	uploads.Remove(url)
	if _, err := os.Stat(filepath.Join(dir, filepath.Base(url))); !os.IsNotExist(err) {
		t.Fatal("file survived Remove")
	}

	// Missing files and paths outside the managed prefix are ignored.
	uploads.Remove(url)
	uploads.Remove("/etc/passwd")
	uploads.Remove("../../go.mod")
}
