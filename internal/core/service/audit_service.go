package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/messagely/messaging-api/internal/core/domain"
	"github.com/messagely/messaging-api/internal/core/ports"
)

// AuditService persists audit events drained from the dispatcher.
type AuditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) *AuditService {
	return &AuditService{repo: repo, log: log}
}

// Record persists a single audit event.
func (s *AuditService) Record(ctx context.Context, event domain.AuditEvent) error {
	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}
	if err := s.repo.Insert(ctx, &event); err != nil {
		return fmt.Errorf("record audit event: %w", err)
	}

	s.log.Debug().Str("username", event.Username).Str("action", event.Action).Msg("audit event recorded")
	return nil
}
