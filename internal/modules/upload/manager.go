// Package upload stores blog post images on local disk and keeps the
// stored filename in sync with the user-chosen base name.
package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// PublicPrefix is the URL prefix under which stored files are served.
const PublicPrefix = "/uploads"

// Manager owns the on-disk file referenced by a record's image field.
type Manager struct {
	dir string
	log *zap.Logger
}

func NewManager(dir string, log *zap.Logger) *Manager {
	return &Manager{dir: dir, log: log}
}

// Dir returns the managed upload directory.
func (m *Manager) Dir() string { return m.dir }

// Save writes an uploaded file as {baseName}{ext} into the upload
// directory and returns its public URL path. An empty or unsafe
// baseName falls back to "default".
func (m *Manager) Save(fh *multipart.FileHeader, baseName string) (string, error) {
	name := buildImageName(baseName, fh.Filename)
	if err := m.saveFile(fh, filepath.Join(m.dir, name)); err != nil {
		return "", fmt.Errorf("save upload %q: %w", name, err)
	}
	return publicPath(name), nil
}

// Replace saves a newly uploaded file and removes the previously stored
// one, unless both resolve to the same path. A previous file that is
// already gone is skipped silently.
func (m *Manager) Replace(fh *multipart.FileHeader, oldPublic, baseName string) (string, error) {
	newPublic, err := m.Save(fh, baseName)
	if err != nil {
		return "", err
	}

	oldPath := m.localPath(oldPublic)
	if oldPath != "" && oldPath != m.localPath(newPublic) {
		if err := os.Remove(oldPath); err != nil && !os.IsNotExist(err) {
			return "", fmt.Errorf("remove old upload %q: %w", oldPath, err)
		}
	}
	return newPublic, nil
}

// Rename moves the stored file to {baseName}{old extension} and returns
// the public path the record should now hold. When the source file is
// missing the rename is logged and the previous path is kept, so the
// record never points at a file that was never created.
func (m *Manager) Rename(oldPublic, baseName string) (string, error) {
	oldPath := m.localPath(oldPublic)
	if oldPath == "" {
		return oldPublic, nil
	}

	base := safeBaseName(baseName)
	if base == "" {
		return oldPublic, nil
	}

	name := base + filepath.Ext(oldPath)
	newPath := filepath.Join(m.dir, name)
	if newPath == oldPath {
		return oldPublic, nil
	}

	if err := os.Rename(oldPath, newPath); err != nil {
		if os.IsNotExist(err) {
			m.log.Warn("rename source missing, keeping previous image path",
				zap.String("from", oldPath),
				zap.String("to", newPath),
			)
			return oldPublic, nil
		}
		return "", fmt.Errorf("rename upload %q: %w", oldPath, err)
	}
	return publicPath(name), nil
}

func (m *Manager) saveFile(fh *multipart.FileHeader, dst string) error {
	src, err := fh.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, src)
	return err
}

// localPath maps a stored public path back to a file inside the upload
// directory. Anything unsafe resolves to "".
func (m *Manager) localPath(public string) string {
	name := safeName(public)
	if name == "" {
		return ""
	}
	return filepath.Join(m.dir, name)
}

func publicPath(name string) string {
	return PublicPrefix + "/" + name
}
