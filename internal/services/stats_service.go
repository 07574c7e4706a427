package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/contactbook/engine/internal/repository"
)

// Stats summarises a user's address book. ByCategory is keyed by the category
// string stored on each contact, whether or not such a category still exists.
type Stats struct {
	TotalContacts int64            `json:"total_contacts"`
	ByCategory    map[string]int64 `json:"by_category"`
}

type StatsService interface {
	Stats(ctx context.Context, userID uuid.UUID) (*Stats, error)
}

type statsService struct {
	contacts repository.ContactRepository
}

func NewStatsService(contacts repository.ContactRepository) StatsService {
	return &statsService{contacts: contacts}
}

var _ StatsService = (*statsService)(nil)

func (s *statsService) Stats(ctx context.Context, userID uuid.UUID) (*Stats, error) {
	total, err := s.contacts.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	rows, err := s.contacts.CountByCategory(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := &Stats{TotalContacts: total, ByCategory: make(map[string]int64, len(rows))}
	for _, r := range rows {
		out.ByCategory[r.Category] = r.Count
	}
	return out, nil
}
