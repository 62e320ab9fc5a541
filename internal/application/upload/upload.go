// Package upload stores user supplied files in the object store and hands
// back their public URLs.
package upload

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// Store is the object store port
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// Counter observes stored files by kind
type Counter interface {
	Upload(kind string)
}

// File is an uploaded file as received by a transport
type File struct {
	Filename    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// Uploader writes files under per-owner directories
type Uploader struct {
	store   Store
	counter Counter
}

// NewUploader creates an Uploader. counter may be nil.
func NewUploader(store Store, counter Counter) *Uploader {
	return &Uploader{store: store, counter: counter}
}

// SaveImage stores an image under dir and returns its public URL. kind labels
// the upload for metrics ("product", "profile", ...).
func (u *Uploader) SaveImage(ctx context.Context, kind, dir string, f File) (string, error) {
	_, url, err := u.save(ctx, kind, dir, f)
	return url, err
}

func (u *Uploader) save(ctx context.Context, kind, dir string, f File) (string, string, error) {
	contentType := strings.ToLower(strings.TrimSpace(strings.SplitN(f.ContentType, ";", 2)[0]))
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		return "", "", shared.ErrInvalidInput.WithMessage(fmt.Sprintf("File %s bukan gambar yang didukung", f.Filename))
	}
	if e := strings.ToLower(filepath.Ext(f.Filename)); e == ".jpeg" || e == ".jpg" || e == ".png" || e == ".webp" || e == ".gif" {
		ext = e
	}

	rc, err := f.Open()
	if err != nil {
		return "", "", fmt.Errorf("open upload %s: %w", f.Filename, err)
	}
	defer rc.Close()

	key := path.Join(dir, uuid.NewString()+ext)
	url, err := u.store.Put(ctx, key, rc, contentType)
	if err != nil {
		return "", "", fmt.Errorf("store upload %s: %w", f.Filename, err)
	}
	if u.counter != nil {
		u.counter.Upload(kind)
	}
	return key, url, nil
}

// Batch remembers the objects stored while handling one request so they can
// be removed when the request fails after uploading
type Batch struct {
	uploader *Uploader
	keys     []string
}

// NewBatch starts an empty batch
func (u *Uploader) NewBatch() *Batch {
	return &Batch{uploader: u}
}

// SaveImage stores an image like Uploader.SaveImage and records its key
func (b *Batch) SaveImage(ctx context.Context, kind, dir string, f File) (string, error) {
	key, url, err := b.uploader.save(ctx, kind, dir, f)
	if err != nil {
		return "", err
	}
	b.keys = append(b.keys, key)
	return url, nil
}

// Len returns the number of objects stored through the batch
func (b *Batch) Len() int {
	return len(b.keys)
}

// Discard deletes every object stored through the batch. It runs even when
// ctx is already cancelled; delete failures are logged and skipped.
func (b *Batch) Discard(ctx context.Context) {
	ctx = context.WithoutCancel(ctx)
	for _, key := range b.keys {
		if err := b.uploader.store.Delete(ctx, key); err != nil {
			logger.L(ctx).Warn("discard upload failed", zap.String("key", key), zap.Error(err))
		}
	}
	b.keys = nil
}

// ProductDir is where a seller's product photos live
func ProductDir(sellerID uuid.UUID) string {
	return "uploads/products/" + sellerID.String()
}

// ProfileDir is where a user's avatar lives
func ProfileDir(userID uuid.UUID) string {
	return "uploads/profiles/" + userID.String()
}
