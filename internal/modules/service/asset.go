package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/sangamhq/sangam/internal/infra/blob"
)

// maxUploadBytes bounds profile images and payment proofs.
const maxUploadBytes = 10 << 20

// AssetService moves image bytes to the blob store and hands back opaque
// keys. Nothing above this layer ever sees image content.
type AssetService interface {
	UploadImage(ctx context.Context, fh *multipart.FileHeader, prefix string) (string, error)
	URL(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

type assetService struct {
	blob       *blob.S3Deps
	presignTTL func() time.Duration
}

func NewAssetService(b *blob.S3Deps, presignTTL func() time.Duration) AssetService {
	return &assetService{blob: b, presignTTL: presignTTL}
}

func (s *assetService) UploadImage(ctx context.Context, fh *multipart.FileHeader, prefix string) (string, error) {
	if fh.Size > maxUploadBytes {
		return "", &ValidationError{Field: "image", Reason: "file too large"}
	}

	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	// Sniff the real content type; the client-declared header is not
	// trusted
	head := make([]byte, 3072)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", err
	}
	mtype := mimetype.Detect(head[:n])
	if !strings.HasPrefix(mtype.String(), "image/") {
		return "", &ValidationError{Field: "image", Reason: "only image uploads are allowed"}
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	key := path.Join(prefix, fmt.Sprintf("%s%s", uuid.NewString(), mtype.Extension()))
	if err := s.blob.Upload(ctx, key, mtype.String(), f); err != nil {
		return "", err
	}
	return key, nil
}

func (s *assetService) URL(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", nil
	}
	return s.blob.PresignGet(ctx, key, s.presignTTL())
}

func (s *assetService) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	return s.blob.Delete(ctx, key)
}
