// Package uploads saves product images submitted through multipart forms.
// Files with disallowed extensions are skipped, never failing the request,
// and accepted files keep their (sanitized) original name so re-uploading
// the same file overwrites it in place.
package uploads

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/nfnt/resize"
)

var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
	".bmp":  true,
}

type Saver struct {
	// Dir is where files land on disk, e.g. "static/uploads". Stored paths
	// are relative to its parent so templates can prefix them with /static/.
	Dir string
}

func NewSaver(dir string) (*Saver, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "thumbs"), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create thumbnail directory: %w", err)
	}
	return &Saver{Dir: dir}, nil
}

// Allowed reports whether the filename's extension is on the image allow-list.
func Allowed(filename string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// SanitizeFilename flattens a client-supplied filename to a safe basename:
// path separators are stripped, spaces become underscores, and anything
// outside [A-Za-z0-9_.-] is removed. Returns "" if nothing survives.
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(name)
	name = strings.ReplaceAll(name, " ", "_")
	name = unsafeChars.ReplaceAllString(name, "")
	name = strings.Trim(name, "._-")
	if name == "" || strings.Trim(name, ".") == "" {
		return ""
	}
	return name
}

// SaveAll writes each accepted upload to the upload directory and returns the
// stored relative paths in submission order. Rejected files (bad extension,
// unusable name) are skipped silently; write failures abort.
func (s *Saver) SaveAll(files []*multipart.FileHeader) ([]string, error) {
	var stored []string
	for _, header := range files {
		if header == nil || header.Filename == "" {
			continue
		}
		if !Allowed(header.Filename) {
			slog.Debug("Skipping upload with disallowed extension", "filename", header.Filename)
			continue
		}
		filename := SanitizeFilename(header.Filename)
		if filename == "" {
			slog.Debug("Skipping upload with unusable filename", "filename", header.Filename)
			continue
		}

		if err := s.saveOne(header, filename); err != nil {
			return nil, err
		}
		stored = append(stored, path.Join(filepath.Base(s.Dir), filename))
	}
	return stored, nil
}

func (s *Saver) saveOne(header *multipart.FileHeader, filename string) error {
	src, err := header.Open()
	if err != nil {
		return fmt.Errorf("failed to open upload %s: %w", filename, err)
	}
	defer src.Close()

	diskPath := filepath.Join(s.Dir, filename)
	dst, err := os.Create(diskPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", diskPath, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("failed to write %s: %w", diskPath, err)
	}

	// Thumbnail generation is best-effort; a corrupt or exotic image never
	// fails the upload.
	if err := s.writeThumbnail(diskPath, filename); err != nil {
		slog.Warn("Failed to generate thumbnail", "filename", filename, "error", err)
	}
	return nil
}

// writeThumbnail renders an 800px-wide JPEG preview next to the upload.
// Only PNG and JPEG sources are decoded; other allowed formats are skipped.
func (s *Saver) writeThumbnail(diskPath, filename string) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".png" && ext != ".jpg" && ext != ".jpeg" {
		return nil
	}

	f, err := os.Open(diskPath)
	if err != nil {
		return err
	}
	defer f.Close()

	var img image.Image
	if ext == ".png" {
		img, err = png.Decode(f)
	} else {
		img, err = jpeg.Decode(f)
	}
	if err != nil {
		return err
	}

	thumb := resize.Resize(800, 0, img, resize.Lanczos3)
	base := strings.TrimSuffix(filename, ext)
	out, err := os.Create(filepath.Join(s.Dir, "thumbs", base+".jpg"))
	if err != nil {
		return err
	}
	defer out.Close()
	return jpeg.Encode(out, thumb, &jpeg.Options{Quality: 80})
}

// Remove best-effort deletes a stored relative path (e.g. "uploads/a.png")
// from disk. The database image list is the source of truth, so failures are
// for the caller to log, not propagate.
func (s *Saver) Remove(storedPath string) error {
	filename := path.Base(storedPath)
	if filename == "." || filename == "/" || filename == "" {
		return fmt.Errorf("invalid stored path %q", storedPath)
	}
	diskPath := filepath.Join(s.Dir, filename)
	if _, err := os.Stat(diskPath); os.IsNotExist(err) {
		return nil
	}
	return os.Remove(diskPath)
}
