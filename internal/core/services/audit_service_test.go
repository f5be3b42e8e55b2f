package services_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/finanzap/finanzap_backend/internal/core/domain"
	"github.com/finanzap/finanzap_backend/internal/core/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAuditService_LogEventPersistsOnClose(t *testing.T) {
	mockWriter := new(MockAuditWriter)
	tenantID := uuid.NewString()
	actorID := uuid.NewString()

	var saved domain.AuditEvent
	mockWriter.On("SaveAuditEvent", mock.Anything, mock.AnythingOfType("domain.AuditEvent")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.AuditEvent)
		}).Return(nil).Once()

	emitter := services.NewAuditService(mockWriter, 8, discardLogger())
	emitter.LogEvent(tenantID, "posting", "p-1", domain.AuditCreate, nil, map[string]string{"notes": "test"}, actorID)
	emitter.Close()

	mockWriter.AssertExpectations(t)
	assert.Equal(t, tenantID, saved.TenantID)
	assert.Equal(t, "posting", saved.EntityType)
	assert.Equal(t, domain.AuditCreate, saved.Action)
	assert.Equal(t, actorID, saved.ActorID)
	assert.NotEmpty(t, saved.AuditID)
	assert.Nil(t, saved.Before)

	var after map[string]string
	require.NoError(t, json.Unmarshal(saved.After, &after))
	assert.Equal(t, "test", after["notes"])
}

func TestAuditService_DrainsAllBufferedEvents(t *testing.T) {
	mockWriter := new(MockAuditWriter)
	mockWriter.On("SaveAuditEvent", mock.Anything, mock.AnythingOfType("domain.AuditEvent")).
		Return(nil).Times(5)

	emitter := services.NewAuditService(mockWriter, 16, discardLogger())
	for i := 0; i < 5; i++ {
		emitter.LogEvent(uuid.NewString(), "budget", uuid.NewString(), domain.AuditUpdate, nil, nil, uuid.NewString())
	}
	emitter.Close()

	mockWriter.AssertExpectations(t)
}

func TestAuditService_CloseIsIdempotent(t *testing.T) {
	mockWriter := new(MockAuditWriter)

	emitter := services.NewAuditService(mockWriter, 4, discardLogger())
	emitter.Close()
	emitter.Close() // must not panic
}

func TestAuditService_WriteFailureDoesNotPropagate(t *testing.T) {
	mockWriter := new(MockAuditWriter)
	mockWriter.On("SaveAuditEvent", mock.Anything, mock.AnythingOfType("domain.AuditEvent")).
		Return(assert.AnError).Once()

	emitter := services.NewAuditService(mockWriter, 4, discardLogger())
	emitter.LogEvent(uuid.NewString(), "tenant", uuid.NewString(), domain.AuditCreate, nil, nil, uuid.NewString())
	emitter.Close() // drain completes despite the failed write

	mockWriter.AssertExpectations(t)
}
