package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
)

// Storage persists uploaded media files and hands back a URL that can be
// stored on the owning record and served to clients.
type Storage interface {
	Save(file multipart.File, filename, contentType, folder string) (string, error)
	Delete(url string) error
}

// Disk stores files under a local media directory. URLs are relative
// ("/media/<folder>/<name>") and served by the router's static route.
type Disk struct {
	dir string
}

func NewDisk(dir string) (*Disk, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating media dir: %w", err)
	}
	return &Disk{dir: dir}, nil
}

func (d *Disk) Save(file multipart.File, filename, contentType, folder string) (string, error) {
	dir := filepath.Join(d.dir, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	dst, err := os.Create(filepath.Join(dir, filename))
	if err != nil {
		return "", err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, file); err != nil {
		return "", err
	}
	return fmt.Sprintf("/media/%s/%s", folder, filename), nil
}

func (d *Disk) Delete(url string) error {
	rel := strings.TrimPrefix(url, "/media/")
	if rel == url || rel == "" {
		// Not one of ours, nothing to remove.
		return nil
	}
	err := os.Remove(filepath.Join(d.dir, filepath.FromSlash(rel)))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
