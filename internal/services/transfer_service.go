package services

import (
	"context"
	"io"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/contactbook/engine/internal/models"
	"github.com/contactbook/engine/internal/repository"
	"github.com/contactbook/engine/internal/transfer"
	appErr "github.com/contactbook/engine/pkg/errors"
	"github.com/contactbook/engine/pkg/logger"
)

type TransferService interface {
	// Import decodes data and inserts every record whose name is not yet
	// taken. It returns how many contacts were inserted.
	Import(ctx context.Context, userID uuid.UUID, format transfer.Format, data []byte) (int, error)
	Export(ctx context.Context, userID uuid.UUID, format transfer.Format, w io.Writer) error
}

type transferService struct {
	repos repository.Manager
	now   Clock
}

func NewTransferService(repos repository.Manager, now Clock) TransferService {
	if now == nil {
		now = SystemClock
	}
	return &transferService{repos: repos, now: now}
}

var _ TransferService = (*transferService)(nil)

func (s *transferService) Import(ctx context.Context, userID uuid.UUID, format transfer.Format, data []byte) (int, error) {
	records, err := transfer.Decode(format, data)
	if err != nil {
		return 0, err
	}
	for i, r := range records {
		if err := checkEmails(r.Emails); err != nil {
			return 0, appErr.Newf(appErr.CodeMalformedInput, "record %d: %v", i+1, err).WithMeta("record", i+1)
		}
	}

	imported := 0
	at := s.now()
	err = s.repos.InTx(ctx, func(tx repository.Manager) error {
		for _, r := range records {
			name := strings.TrimSpace(r.Name)
			if name == "" {
				continue
			}
			exists, err := tx.Contacts().NameExistsFold(ctx, userID, name)
			if err != nil {
				return err
			}
			if exists {
				continue
			}

			ts := stagger(at, imported)
			c := &models.Contact{
				UserID:         userID,
				Name:           name,
				Phones:         orEmpty(r.Phones),
				Emails:         orEmpty(r.Emails),
				Category:       models.DefaultCategory,
				ProfilePicture: r.ProfilePicture,
				CreatedAt:      ts,
				UpdatedAt:      ts,
			}
			if r.Category != nil {
				c.Category = *r.Category
			}
			if r.Notes != nil {
				c.Notes = *r.Notes
			}
			if err := tx.Contacts().Create(ctx, c); err != nil {
				return err
			}
			imported++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	logger.L().Info("contacts imported", logger.UserID(userID), zap.String("format", string(format)),
		zap.Int("records", len(records)), zap.Int("imported", imported))
	return imported, nil
}

func (s *transferService) Export(ctx context.Context, userID uuid.UUID, format transfer.Format, w io.Writer) error {
	contacts, err := s.repos.Contacts().ListForExport(ctx, userID)
	if err != nil {
		return err
	}
	if err := transfer.Encode(w, format, contacts); err != nil {
		return appErr.Wrap(err, appErr.CodeInternal, "encode export failed")
	}
	return nil
}
