package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/contactbook/engine/internal/storage"
	appErr "github.com/contactbook/engine/pkg/errors"
	"github.com/contactbook/engine/pkg/logger"
)

type PictureService interface {
	// Upload stores an image and returns the URL to put in a contact's
	// profile_picture.
	Upload(ctx context.Context, userID uuid.UUID, p storage.Picture) (string, error)
}

type pictureService struct {
	store    storage.PictureStore
	maxBytes int64
}

// NewPictureService rejects uploads above maxBytes; zero means no limit.
func NewPictureService(store storage.PictureStore, maxBytes int64) PictureService {
	return &pictureService{store: store, maxBytes: maxBytes}
}

var _ PictureService = (*pictureService)(nil)

func (s *pictureService) Upload(ctx context.Context, userID uuid.UUID, p storage.Picture) (string, error) {
	if !strings.HasPrefix(p.ContentType, "image/") {
		return "", appErr.New(appErr.CodeInvalid, "file must be an image")
	}
	if s.maxBytes > 0 && int64(len(p.Data)) > s.maxBytes {
		return "", appErr.Newf(appErr.CodeInvalid, "file exceeds the %d byte limit", s.maxBytes)
	}

	url, err := s.store.Save(ctx, userID, p)
	if err != nil {
		logger.L().Error("store picture failed", logger.UserID(userID), zap.Error(err))
		return "", appErr.Wrap(err, appErr.CodeInternal, "store picture failed")
	}
	logger.L().Info("picture uploaded", logger.UserID(userID), zap.String("content_type", p.ContentType), zap.Int("bytes", len(p.Data)))
	return url, nil
}
