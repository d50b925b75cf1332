package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/shoplite/catalog-system/internal/api/metrics"
	"github.com/shoplite/catalog-system/internal/core/domain"
	"github.com/shoplite/catalog-system/internal/core/ports"
)

const defaultAuditLimit = 50

// AuditService persists auth events delivered by the queue dispatcher and
// serves the admin audit listing.
type AuditService struct {
	repo   ports.AuditRepository
	logger zerolog.Logger
}

func NewAuditService(repo ports.AuditRepository, logger zerolog.Logger) *AuditService {
	return &AuditService{repo: repo, logger: logger}
}

// Process stores one auth event. Called from dispatcher workers.
func (s *AuditService) Process(ctx context.Context, event ports.AuthEventInput) error {
	record := &domain.AuthEvent{
		Username:  event.Username,
		Action:    event.Action,
		Result:    event.Result,
		Detail:    event.Detail,
		CreatedAt: event.At,
	}

	if err := s.repo.Insert(ctx, record); err != nil {
		s.logger.Error().Err(err).Str("username", event.Username).Str("action", event.Action).Msg("audit event insert failed")
		return err
	}

	metrics.AuditEventsTotal.WithLabelValues(event.Action, event.Result).Inc()
	return nil
}

// Recent returns the latest events, newest first.
func (s *AuditService) Recent(ctx context.Context, limit int) ([]domain.AuthEvent, error) {
	if limit <= 0 {
		limit = defaultAuditLimit
	}
	return s.repo.FindRecent(ctx, limit)
}
