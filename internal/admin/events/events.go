package events

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Type names a mapping change notification.
type Type string

const (
	TypeMappingAdded         Type = "mapping.added"
	TypeEmployeeCreated      Type = "employee.created"
	TypeEmployeeStatusUpdate Type = "employee.status_updated"
	TypeSupervisorAssigned   Type = "supervisor.assigned"
)

// Event describes a change applied to the report dataset.
type Event struct {
	Type         Type      `json:"type"`
	ReportID     string    `json:"reportId,omitempty"`
	EmployeeID   string    `json:"employeeId,omitempty"`
	SupervisorID string    `json:"supervisorId,omitempty"`
	IsActive     *bool     `json:"isActive,omitempty"`
	OccurredAt   time.Time `json:"occurredAt"`
}

// Publisher delivers change events to interested consumers.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// PublisherFunc adapts a function to Publisher.
type PublisherFunc func(ctx context.Context, event Event) error

// Publish calls f.
func (f PublisherFunc) Publish(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// LogPublisher writes events to the structured log. Used when no broker is configured.
type LogPublisher struct {
	logger *zap.Logger
}

// NewLogPublisher constructs a LogPublisher.
func NewLogPublisher(logger *zap.Logger) *LogPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogPublisher{logger: logger}
}

// Publish logs the event at info level.
func (p *LogPublisher) Publish(_ context.Context, event Event) error {
	fields := []zap.Field{
		zap.String("event_type", string(event.Type)),
		zap.Time("occurred_at", event.OccurredAt),
	}
	if event.ReportID != "" {
		fields = append(fields, zap.String("report_id", event.ReportID))
	}
	if event.EmployeeID != "" {
		fields = append(fields, zap.String("employee_id", event.EmployeeID))
	}
	if event.SupervisorID != "" {
		fields = append(fields, zap.String("supervisor_id", event.SupervisorID))
	}
	if event.IsActive != nil {
		fields = append(fields, zap.Bool("is_active", *event.IsActive))
	}
	p.logger.Info("dataset changed", fields...)
	return nil
}
