package reports

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"finitefield.org/roster-admin/internal/admin/events"
)

// StaticService keeps the dataset in memory. Reads return copies; writes take the lock.
type StaticService struct {
	mu          sync.RWMutex
	regions     []Region
	supervisors []Supervisor
	reports     []Report
	employees   []Employee

	logger    *zap.Logger
	publisher events.Publisher
	validate  *validator.Validate
	newID     func() string
	now       func() time.Time
}

// Option customises a StaticService.
type Option func(*StaticService)

// WithLogger sets the logger used for action logging.
func WithLogger(logger *zap.Logger) Option {
	return func(s *StaticService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithPublisher sets the change event publisher.
func WithPublisher(p events.Publisher) Option {
	return func(s *StaticService) {
		if p != nil {
			s.publisher = p
		}
	}
}

// WithIDGenerator overrides how new employee identifiers are generated.
func WithIDGenerator(fn func() string) Option {
	return func(s *StaticService) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// WithClock overrides the clock used for event timestamps.
func WithClock(fn func() time.Time) Option {
	return func(s *StaticService) {
		if fn != nil {
			s.now = fn
		}
	}
}

// NewStaticService builds a store seeded with a copy of ds.
func NewStaticService(ds Dataset, opts ...Option) (*StaticService, error) {
	if err := ValidateDataset(ds); err != nil {
		return nil, err
	}
	ds = ds.Clone()

	svc := &StaticService{
		regions:     ds.Regions,
		supervisors: ds.Supervisors,
		reports:     ds.Reports,
		employees:   ds.Employees,
		logger:      zap.NewNop(),
		validate:    newValidator(),
		newID:       func() string { return "e-" + strings.ToLower(ulid.Make().String()) },
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.publisher == nil {
		svc.publisher = events.NewLogPublisher(svc.logger)
	}
	return svc, nil
}

// NewSeededService builds a store from the embedded dataset.
func NewSeededService(opts ...Option) (*StaticService, error) {
	ds, err := SeedDataset()
	if err != nil {
		return nil, err
	}
	return NewStaticService(ds, opts...)
}

// Regions returns every region in stable order.
func (s *StaticService) Regions(_ context.Context) []Region {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.regions)
}

// Reports returns every report in collection order.
func (s *StaticService) Reports(_ context.Context) []Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Report, 0, len(s.reports))
	for _, r := range s.reports {
		out = append(out, cloneReport(r))
	}
	return out
}

// ReportsByRegion filters on the exact region id. Empty or "all" returns every report.
func (s *StaticService) ReportsByRegion(ctx context.Context, regionID string) []Report {
	regionID = strings.TrimSpace(regionID)
	if regionID == "" || regionID == AllRegions {
		return s.Reports(ctx)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Report, 0)
	for _, r := range s.reports {
		if r.Region == regionID {
			out = append(out, cloneReport(r))
		}
	}
	return out
}

// Report returns ErrReportNotFound for unknown ids.
func (s *StaticService) Report(_ context.Context, id string) (Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := s.reportIndex(id)
	if idx < 0 {
		return Report{}, fmt.Errorf("%w: %s", ErrReportNotFound, id)
	}
	return cloneReport(s.reports[idx]), nil
}

// Employees returns every employee in collection order.
func (s *StaticService) Employees(_ context.Context) []Employee {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.employees)
}

// Employee returns ErrEmployeeNotFound for unknown ids.
func (s *StaticService) Employee(_ context.Context, id string) (Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.employees {
		if e.ID == id {
			return e, nil
		}
	}
	return Employee{}, fmt.Errorf("%w: %s", ErrEmployeeNotFound, id)
}

// EmployeesByReport returns the report's mapped employees in employee order. Unknown reports yield an empty slice.
func (s *StaticService) EmployeesByReport(_ context.Context, reportID string) []Employee {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Employee, 0)
	idx := s.reportIndex(reportID)
	if idx < 0 {
		return out
	}
	report := s.reports[idx]
	for _, e := range s.employees {
		if report.HasEmployee(e.ID) {
			out = append(out, e)
		}
	}
	return out
}

// ReportsForEmployee returns the reports whose mappings list the employee.
func (s *StaticService) ReportsForEmployee(_ context.Context, employeeID string) []Report {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Report, 0)
	for _, r := range s.reports {
		if r.HasEmployee(employeeID) {
			out = append(out, cloneReport(r))
		}
	}
	return out
}

// SupervisorByName matches names exactly and case-sensitively. Input is not trimmed.
func (s *StaticService) SupervisorByName(_ context.Context, name string) (Supervisor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sup := range s.supervisors {
		if sup.Name == name {
			return cloneSupervisor(sup), nil
		}
	}
	return Supervisor{}, fmt.Errorf("%w: %q", ErrSupervisorNotFound, name)
}

// SupervisorsForReport resolves the report's supervisor names. Unknown names are skipped.
func (s *StaticService) SupervisorsForReport(_ context.Context, reportID string) []Supervisor {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Supervisor, 0)
	idx := s.reportIndex(reportID)
	if idx < 0 {
		return out
	}
	names := s.reports[idx].Supervisors
	for _, sup := range s.supervisors {
		if slices.Contains(names, sup.Name) {
			out = append(out, cloneSupervisor(sup))
		}
	}
	return out
}

// EmployeesBySupervisor returns employees mapped to any report the supervisor manages, once each.
func (s *StaticService) EmployeesBySupervisor(_ context.Context, supervisorID string) []Employee {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Employee, 0)
	var managed []string
	for _, sup := range s.supervisors {
		if sup.ID == supervisorID {
			managed = sup.ReportsManaged
			break
		}
	}
	if len(managed) == 0 {
		return out
	}

	mapped := make(map[string]struct{})
	for _, r := range s.reports {
		if !slices.Contains(managed, r.ID) {
			continue
		}
		for _, id := range r.Mappings {
			mapped[id] = struct{}{}
		}
	}
	for _, e := range s.employees {
		if _, ok := mapped[e.ID]; ok {
			out = append(out, e)
		}
	}
	return out
}

// UniqueDepartments returns distinct employee departments in first-seen order.
func (s *StaticService) UniqueDepartments(_ context.Context) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return uniqueValues(s.employees, func(e Employee) string { return e.Department })
}

// UniquePositions returns distinct employee positions in first-seen order.
func (s *StaticService) UniquePositions(_ context.Context) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return uniqueValues(s.employees, func(e Employee) string { return e.Position })
}

// Departments summarises each department. The first matching supervisor is its manager.
func (s *StaticService) Departments(_ context.Context) []DepartmentSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := uniqueValues(s.employees, func(e Employee) string { return e.Department })
	out := make([]DepartmentSummary, 0, len(names))
	for _, name := range names {
		summary := DepartmentSummary{Name: name}
		members := make(map[string]struct{})
		for _, e := range s.employees {
			if e.Department == name {
				summary.EmployeeCount++
				members[e.ID] = struct{}{}
			}
		}
		for _, sup := range s.supervisors {
			if sup.Department != name {
				continue
			}
			if summary.Manager == "" {
				summary.Manager = sup.Name
			}
			summary.Supervisors = append(summary.Supervisors, sup.Name)
		}
		for _, r := range s.reports {
			for _, id := range r.Mappings {
				if _, ok := members[id]; ok {
					summary.ReportIDs = append(summary.ReportIDs, r.ID)
					break
				}
			}
		}
		out = append(out, summary)
	}
	return out
}

// SearchEmployees matches term case-insensitively. A blank term matches nothing.
func (s *StaticService) SearchEmployees(_ context.Context, term string) []Employee {
	out := make([]Employee, 0)
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return out
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.employees {
		for _, field := range []string{e.Name, e.Email, e.Position, e.Department} {
			if strings.Contains(strings.ToLower(field), needle) {
				out = append(out, e)
				break
			}
		}
	}
	return out
}

// Snapshot returns a deep copy, safe for exporters to read without the lock.
func (s *StaticService) Snapshot(_ context.Context) Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Dataset{
		Regions:     s.regions,
		Supervisors: s.supervisors,
		Reports:     s.reports,
		Employees:   s.employees,
	}.Clone()
}

// AddEmployeeToReport leaves LastUpdated untouched. The failure result always
// carries the same user-facing message; err identifies the cause.
func (s *StaticService) AddEmployeeToReport(ctx context.Context, employeeID, reportID string) (ActionResult, error) {
	logger := s.logger.With(zap.String("employee_id", employeeID), zap.String("report_id", reportID))
	failure := ActionResult{Success: false, Error: addToReportFailure}

	s.mu.Lock()
	idx := s.reportIndex(reportID)
	var err error
	switch {
	case idx < 0:
		err = fmt.Errorf("%w: %s", ErrReportNotFound, reportID)
	case !s.hasEmployee(employeeID):
		err = fmt.Errorf("%w: %s", ErrEmployeeNotFound, employeeID)
	case s.reports[idx].HasEmployee(employeeID):
		err = fmt.Errorf("%w: %s in %s", ErrAlreadyMapped, employeeID, reportID)
	default:
		s.reports[idx].Mappings = append(s.reports[idx].Mappings, employeeID)
	}
	s.mu.Unlock()

	if err != nil {
		logger.Warn("add employee to report rejected", zap.Error(err))
		return failure, err
	}

	logger.Info("employee added to report")
	s.publish(ctx, events.Event{Type: events.TypeMappingAdded, ReportID: reportID, EmployeeID: employeeID})
	return ActionResult{Success: true}, nil
}

// UpdateEmployeeStatus logs and publishes each update. Nothing is stored.
func (s *StaticService) UpdateEmployeeStatus(ctx context.Context, updates []StatusUpdate) (ActionResult, error) {
	for _, u := range updates {
		s.logger.Info("employee status update",
			zap.String("employee_id", u.EmployeeID),
			zap.String("report_id", u.ReportID),
			zap.Bool("is_active", u.IsActive),
		)
		active := u.IsActive
		s.publish(ctx, events.Event{
			Type:       events.TypeEmployeeStatusUpdate,
			ReportID:   u.ReportID,
			EmployeeID: u.EmployeeID,
			IsActive:   &active,
		})
	}
	return ActionResult{Success: true}, nil
}

// AssignSupervisor logs and publishes the assignment. Nothing is stored.
func (s *StaticService) AssignSupervisor(ctx context.Context, employeeID, supervisorID string) (ActionResult, error) {
	s.logger.Info("supervisor assigned",
		zap.String("employee_id", employeeID),
		zap.String("supervisor_id", supervisorID),
	)
	s.publish(ctx, events.Event{Type: events.TypeSupervisorAssigned, EmployeeID: employeeID, SupervisorID: supervisorID})
	return ActionResult{Success: true}, nil
}

// AddEmployee validates input, assigns a generated id, and optionally maps the
// new employee to input.ReportID in the same critical section.
func (s *StaticService) AddEmployee(ctx context.Context, input NewEmployee) (Employee, error) {
	input = normalizeNewEmployee(input)
	if err := s.validate.Struct(input); err != nil {
		return Employee{}, toValidationError(err)
	}

	employee := Employee{
		ID:         s.newID(),
		Name:       input.Name,
		Email:      input.Email,
		Phone:      input.Phone,
		Position:   input.Position,
		Department: input.Department,
	}

	s.mu.Lock()
	reportIdx := -1
	if input.ReportID != "" {
		reportIdx = s.reportIndex(input.ReportID)
		if reportIdx < 0 {
			s.mu.Unlock()
			return Employee{}, &ValidationError{Fields: []FieldError{{Field: "reportId", Rule: "exists"}}}
		}
	}
	if s.hasEmployee(employee.ID) {
		s.mu.Unlock()
		return Employee{}, fmt.Errorf("reports: generated employee id %s already in use", employee.ID)
	}
	s.employees = append(s.employees, employee)
	if reportIdx >= 0 {
		s.reports[reportIdx].Mappings = append(s.reports[reportIdx].Mappings, employee.ID)
	}
	s.mu.Unlock()

	s.logger.Info("employee created",
		zap.String("employee_id", employee.ID),
		zap.String("department", employee.Department),
		zap.String("report_id", input.ReportID),
	)
	s.publish(ctx, events.Event{Type: events.TypeEmployeeCreated, EmployeeID: employee.ID, ReportID: input.ReportID})
	if reportIdx >= 0 {
		s.publish(ctx, events.Event{Type: events.TypeMappingAdded, EmployeeID: employee.ID, ReportID: input.ReportID})
	}
	return employee, nil
}

func (s *StaticService) publish(ctx context.Context, event events.Event) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = s.now().UTC()
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("publish dataset event failed",
			zap.String("event_type", string(event.Type)),
			zap.Error(err),
		)
	}
}

// reportIndex must be called with the lock held.
func (s *StaticService) reportIndex(id string) int {
	return slices.IndexFunc(s.reports, func(r Report) bool { return r.ID == id })
}

// hasEmployee must be called with the lock held.
func (s *StaticService) hasEmployee(id string) bool {
	return slices.ContainsFunc(s.employees, func(e Employee) bool { return e.ID == id })
}

func uniqueValues(employees []Employee, key func(Employee) string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, e := range employees {
		v := key(e)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func normalizeNewEmployee(in NewEmployee) NewEmployee {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)
	in.Position = strings.TrimSpace(in.Position)
	in.Department = strings.TrimSpace(in.Department)
	in.ReportID = strings.TrimSpace(in.ReportID)
	return in
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	return v
}

func toValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("reports: validate input: %w", err)
	}
	out := &ValidationError{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Rule: fe.Tag()})
	}
	return out
}
