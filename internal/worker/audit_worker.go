package worker

import (
	"github.com/spec-kit/helpdesk-assignment/internal/events"
	"github.com/spec-kit/helpdesk-assignment/internal/service"
)

// StartAuditWorker registers audit handlers on the dispatcher.
func StartAuditWorker(auditService *service.AuditService, dispatcher events.Dispatcher) {
	if auditService == nil || dispatcher == nil {
		return
	}
	auditService.RegisterHandlers(dispatcher)
}
