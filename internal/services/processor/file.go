package processor

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/phambaophuc/image-autocrop/internal/models"
)

// CropFile crops the image at path and replaces the file with the result.
// Nothing is written when the image is already tight or when any step fails;
// the replacement itself goes through a temporary file and a rename.
func (p *ImageProcessor) CropFile(path string, req *models.CropRequest) (*models.CropReport, error) {
	path = filepath.Clean(path)
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("stat %q err, %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s is not a regular file", ErrDecode, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file %q err, %w", path, err)
	}

	buffer, report, err := p.CropBytes(data, req)
	if report != nil {
		report.Path = path
	}
	if err != nil {
		return report, fmt.Errorf("%s: %w", path, err)
	}
	if !report.Changed {
		return report, nil
	}

	if err := replaceFile(path, buffer.Bytes(), info.Mode().Perm()); err != nil {
		return report, fmt.Errorf("%w: %s: %w", ErrEncode, path, err)
	}
	return report, nil
}

// replaceFile writes data next to path and renames it over path.
func replaceFile(path string, data []byte, perm fs.FileMode) (err error) {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return err
	}
	if err = tmp.Chmod(perm); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
