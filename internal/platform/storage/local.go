package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	pagesports "venuenouveau/contexts/content-publishing/page-service/ports"
	pricingports "venuenouveau/contexts/pricing-catalog/pricing-package-service/ports"

	"github.com/google/uuid"
)

// ErrUnsafePath is returned for directories that escape the media root.
var ErrUnsafePath = errors.New("unsafe storage path")

// Local stores uploads below Root and serves them under BaseURL.
// Stored paths are relative, slash separated and never reused.
type Local struct {
	Root    string
	BaseURL string
	Logger  *slog.Logger
}

func NewLocal(root string, baseURL string, logger *slog.Logger) (*Local, error) {
	if strings.TrimSpace(root) == "" {
		return nil, errors.New("media root is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create media root: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Local{Root: root, BaseURL: baseURL, Logger: logger}, nil
}

// Put writes body to dir/<uuid>-<name> and returns the stored relative path.
func (l *Local) Put(ctx context.Context, dir string, name string, body io.Reader) (string, error) {
	if body == nil {
		return "", errors.New("upload body is required")
	}
	cleanDir := path.Clean("/" + filepath.ToSlash(dir))[1:]
	if cleanDir == "" || strings.HasPrefix(cleanDir, "..") {
		return "", ErrUnsafePath
	}
	stored := path.Join(cleanDir, uuid.NewString()+"-"+safeName(name))

	target := filepath.Join(l.Root, filepath.FromSlash(stored))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("create media dir: %w", err)
	}
	file, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create media file: %w", err)
	}
	written, copyErr := io.Copy(file, readerWithContext{ctx: ctx, r: body})
	closeErr := file.Close()
	if copyErr != nil || closeErr != nil {
		_ = os.Remove(target)
		return "", fmt.Errorf("write media file: %w", errors.Join(copyErr, closeErr))
	}

	l.Logger.Info("media stored",
		"event", "media_stored",
		"module", "internal/platform/storage",
		"layer", "platform",
		"path", stored,
		"bytes", written,
	)
	return stored, nil
}

func (l *Local) URL(stored string) string {
	return strings.TrimSuffix(l.BaseURL, "/") + "/" + strings.TrimPrefix(stored, "/")
}

// Dir is the directory served under BaseURL.
func (l *Local) Dir() string {
	return l.Root
}

// PackageFiles adapts Local to the pricing catalog file port.
type PackageFiles struct {
	*Local
}

func (p PackageFiles) Save(ctx context.Context, dir string, upload pricingports.FileUpload) (string, error) {
	return p.Put(ctx, dir, upload.Name, upload.Body)
}

// GalleryMedia adapts Local to the page service media port.
type GalleryMedia struct {
	*Local
}

func (g GalleryMedia) Save(ctx context.Context, dir string, upload pagesports.MediaUpload) (string, error) {
	return g.Put(ctx, dir, upload.Name, upload.Body)
}

func safeName(name string) string {
	base := path.Base(filepath.ToSlash(strings.TrimSpace(name)))
	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteByte('_')
		}
	}
	cleaned := strings.TrimLeft(b.String(), ".")
	if cleaned == "" {
		return "upload"
	}
	if len(cleaned) > 100 {
		cleaned = cleaned[len(cleaned)-100:]
	}
	return cleaned
}

type readerWithContext struct {
	ctx context.Context
	r   io.Reader
}

func (r readerWithContext) Read(p []byte) (int, error) {
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}
	return r.r.Read(p)
}
