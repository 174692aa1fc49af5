package storage

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/meinhoongagan/portfolio-api/utils"
)

// URLPrefix is where the local store is served from.
const URLPrefix = "/uploads"

// Local writes uploads to a directory served statically under URLPrefix.
type Local struct {
	dir string
	now func() time.Time
}

func NewLocal(dir string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir %s: %w", dir, err)
	}
	return &Local{dir: dir, now: time.Now}, nil
}

func (l *Local) Dir() string {
	return l.dir
}

func (l *Local) Save(ctx context.Context, file *multipart.FileHeader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	name := utils.UploadFilename(file.Filename, l.now())
	dst, err := os.Create(filepath.Join(l.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", name, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(dst.Name())
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", name, err)
	}
	return path.Join(URLPrefix, name), nil
}

func (l *Local) Delete(_ context.Context, ref string) error {
	if !strings.HasPrefix(ref, URLPrefix+"/") {
		return fmt.Errorf("not a local upload: %s", ref)
	}
	name := path.Base(ref)
	if err := os.Remove(filepath.Join(l.dir, name)); err != nil {
		return fmt.Errorf("failed to remove %s: %w", name, err)
	}
	return nil
}
