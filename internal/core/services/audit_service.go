package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/finanzap/finanzap_backend/internal/core/domain"
	portsrepo "github.com/finanzap/finanzap_backend/internal/core/ports/repositories"
	portssvc "github.com/finanzap/finanzap_backend/internal/core/ports/services"
	"github.com/google/uuid"
)

const auditWriteTimeout = 5 * time.Second

// AuditService is the fire-and-forget audit side channel. Events go through
// a buffered channel drained by a single goroutine, so LogEvent never blocks
// the mutation that produced the event. A full buffer drops the event and
// logs the drop; audit failures never fail the primary write.
type AuditService struct {
	auditRepo portsrepo.AuditWriter
	events    chan domain.AuditEvent
	logger    *slog.Logger
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewAuditService creates the emitter and starts its drain goroutine.
func NewAuditService(ar portsrepo.AuditWriter, bufferSize int, logger *slog.Logger) *AuditService {
	if bufferSize <= 0 {
		bufferSize = 256
	}
	s := &AuditService{
		auditRepo: ar,
		events:    make(chan domain.AuditEvent, bufferSize),
		logger:    logger,
	}
	s.wg.Add(1)
	go s.drain()
	return s
}

var _ portssvc.AuditEmitter = (*AuditService)(nil)

// LogEvent appends one audit event asynchronously. Before and after are
// JSON-serialized here, on the caller's goroutine, so the snapshots capture
// the state at emission time.
func (s *AuditService) LogEvent(tenantID, entityType, entityID string, action domain.AuditAction, before, after any, actorID string) {
	event := domain.AuditEvent{
		AuditID:    uuid.NewString(),
		TenantID:   tenantID,
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		Before:     marshalSnapshot(s.logger, before),
		After:      marshalSnapshot(s.logger, after),
		ActorID:    actorID,
		OccurredAt: time.Now(),
	}

	select {
	case s.events <- event:
	default:
		s.logger.Error("Audit buffer full, event dropped",
			slog.String("tenant_id", tenantID),
			slog.String("entity_type", entityType),
			slog.String("entity_id", entityID),
			slog.String("action", string(action)))
	}
}

// Close stops accepting events, drains what is buffered and waits for the
// drain goroutine to finish.
func (s *AuditService) Close() {
	s.closeOnce.Do(func() {
		close(s.events)
	})
	s.wg.Wait()
}

func (s *AuditService) drain() {
	defer s.wg.Done()
	for event := range s.events {
		ctx, cancel := context.WithTimeout(context.Background(), auditWriteTimeout)
		if err := s.auditRepo.SaveAuditEvent(ctx, event); err != nil {
			s.logger.Error("Failed to persist audit event",
				slog.String("audit_id", event.AuditID),
				slog.String("tenant_id", event.TenantID),
				slog.String("entity_type", event.EntityType),
				slog.String("error", err.Error()))
		}
		cancel()
	}
}

func marshalSnapshot(logger *slog.Logger, v any) json.RawMessage {
	if v == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		logger.Error("Failed to marshal audit snapshot", slog.String("error", err.Error()))
		return nil
	}
	return data
}
