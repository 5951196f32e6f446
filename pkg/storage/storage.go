// Package storage provides file storage operations with a local
// filesystem implementation.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/JaimeStill/adjuster/pkg/lifecycle"
)

// System manages file storage operations and lifecycle coordination.
// Keys are slash-separated paths relative to the storage root.
type System interface {
	// Start registers a startup hook that initializes the storage root.
	Start(lc *lifecycle.Coordinator) error
	// Upload writes data to the file at the given key. The write is staged
	// through a temporary file and renamed into place, so a concurrent
	// reader never observes partial content.
	Upload(ctx context.Context, key string, reader io.Reader) error
	// Download returns a stream for the file at the given key along with
	// its detected content type and length. The caller must close the body.
	// Returns ErrNotFound if the file does not exist.
	Download(ctx context.Context, key string) (*DownloadResult, error)
	// Delete removes the file at the given key. Returns ErrNotFound if the
	// file does not exist.
	Delete(ctx context.Context, key string) error
	// Exists reports whether a file exists at the given key.
	Exists(ctx context.Context, key string) (bool, error)
	// List returns the keys of all files under the given prefix.
	List(ctx context.Context, prefix string) ([]string, error)
}

// DownloadResult carries a file stream with its content metadata.
type DownloadResult struct {
	Body          io.ReadCloser
	ContentType   string
	ContentLength int64
}

type filesystem struct {
	root   string
	logger *slog.Logger
}

// New creates a storage system rooted at the configured directory.
// The directory is not created until Start is called.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	if cfg.Root == "" {
		return nil, fmt.Errorf("storage root required")
	}

	return &filesystem{
		root:   filepath.Clean(cfg.Root),
		logger: logger.With("system", "storage"),
	}, nil
}

func (f *filesystem) Start(lc *lifecycle.Coordinator) error {
	f.logger.Info("starting storage system")

	lc.OnStartup(func() {
		if err := os.MkdirAll(f.root, 0o755); err != nil {
			f.logger.Error("storage root initialization failed", "error", err)
			return
		}

		f.logger.Info("storage root ready", "root", f.root)
	})

	return nil
}

func (f *filesystem) Upload(_ context.Context, key string, reader io.Reader) error {
	if err := validateKey(key); err != nil {
		return err
	}

	target := f.resolve(key)
	dir := filepath.Dir(target)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create storage directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".staged-*")
	if err != nil {
		return fmt.Errorf("stage file %s: %w", key, err)
	}

	if _, err := io.Copy(tmp, reader); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write file %s: %w", key, err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close file %s: %w", key, err)
	}

	if err := os.Rename(tmp.Name(), target); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("commit file %s: %w", key, err)
	}

	return nil
}

func (f *filesystem) Download(_ context.Context, key string) (*DownloadResult, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	file, err := os.Open(f.resolve(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("open file %s: %w", key, err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("stat file %s: %w", key, err)
	}

	contentType, err := detectContentType(file, key)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("detect content type %s: %w", key, err)
	}

	return &DownloadResult{
		Body:          file,
		ContentType:   contentType,
		ContentLength: info.Size(),
	}, nil
}

func (f *filesystem) Delete(_ context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	if err := os.Remove(f.resolve(key)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrNotFound
		}
		return fmt.Errorf("delete file %s: %w", key, err)
	}

	return nil
}

func (f *filesystem) Exists(_ context.Context, key string) (bool, error) {
	if err := validateKey(key); err != nil {
		return false, err
	}

	if _, err := os.Stat(f.resolve(key)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("check file existence %s: %w", key, err)
	}

	return true, nil
}

func (f *filesystem) List(_ context.Context, prefix string) ([]string, error) {
	if prefix != "" {
		if err := validateKey(prefix); err != nil {
			return nil, err
		}
	}

	base := f.resolve(prefix)
	if _, err := os.Stat(base); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	var keys []string
	err := filepath.WalkDir(base, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(f.root, p)
		if err != nil {
			return err
		}

		keys = append(keys, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list files under %s: %w", prefix, err)
	}

	return keys, nil
}

func (f *filesystem) resolve(key string) string {
	return filepath.Join(f.root, filepath.FromSlash(key))
}

// detectContentType resolves the content type from the key's extension,
// falling back to sniffing the first bytes of the file.
func detectContentType(file *os.File, key string) (string, error) {
	if ct := mime.TypeByExtension(path.Ext(key)); ct != "" {
		return ct, nil
	}

	buf := make([]byte, 512)
	n, err := file.Read(buf)
	if err != nil && err != io.EOF {
		return "", err
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	return http.DetectContentType(buf[:n]), nil
}

func validateKey(key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if strings.HasPrefix(key, "/") || strings.Contains(key, "\\") {
		return ErrInvalidKey
	}
	for _, segment := range strings.Split(key, "/") {
		if segment == ".." || segment == "" {
			return ErrInvalidKey
		}
	}
	return nil
}
