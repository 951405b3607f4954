package orgchart

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"finitefield.org/roster-admin/internal/admin/observability"
	"finitefield.org/roster-admin/internal/admin/reports"
)

const defaultConcurrency = 4

// Node is one entry of the two-level chart. Supervisors carry employee children.
type Node struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Position     string `json:"position"`
	Department   string `json:"department"`
	Email        string `json:"email"`
	IsSupervisor bool   `json:"isSupervisor"`
	Children     []Node `json:"children"`
}

// SupervisorLookup resolves a supervisor by exact name.
type SupervisorLookup interface {
	SupervisorByName(ctx context.Context, name string) (reports.Supervisor, error)
}

// Builder assembles org charts for reports.
type Builder struct {
	lookup      SupervisorLookup
	concurrency int
	logger      *zap.Logger
}

// Option customises a Builder.
type Option func(*Builder)

// WithConcurrency bounds the number of concurrent supervisor lookups.
func WithConcurrency(n int) Option {
	return func(b *Builder) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// WithLogger sets the builder logger.
func WithLogger(logger *zap.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// NewBuilder constructs a Builder on top of lookup.
func NewBuilder(lookup SupervisorLookup, opts ...Option) *Builder {
	b := &Builder{
		lookup:      lookup,
		concurrency: defaultConcurrency,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build resolves the report's supervisors in name order and gives each
// employee to the first supervisor sharing its department. Names that do not
// resolve and employees with no matching supervisor are left out. The only
// error returned is the context's.
func (b *Builder) Build(ctx context.Context, report reports.Report, employees []reports.Employee) ([]Node, error) {
	ctx, span := observability.Tracer().Start(ctx, "orgchart.Build")
	defer span.End()
	span.SetAttributes(
		attribute.String("report.id", report.ID),
		attribute.Int("report.supervisors", len(report.Supervisors)),
	)

	resolved := make([]*reports.Supervisor, len(report.Supervisors))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)
	for i, name := range report.Supervisors {
		i, name := i, name
		g.Go(func() error {
			sup, err := b.lookup.SupervisorByName(gctx, name)
			if err != nil {
				if cerr := gctx.Err(); cerr != nil {
					return cerr
				}
				if !errors.Is(err, reports.ErrSupervisorNotFound) {
					b.logger.Warn("supervisor lookup failed", zap.String("name", name), zap.Error(err))
				} else {
					b.logger.Debug("supervisor not found", zap.String("name", name))
				}
				return nil
			}
			resolved[i] = &sup
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "cancelled")
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	nodes := make([]Node, 0, len(resolved))
	for _, sup := range resolved {
		if sup == nil {
			continue
		}
		nodes = append(nodes, Node{
			ID:           sup.ID,
			Name:         sup.Name,
			Position:     sup.Title,
			Department:   sup.Department,
			Email:        sup.Email,
			IsSupervisor: true,
			Children:     []Node{},
		})
	}

	placed := 0
	for _, e := range employees {
		for i := range nodes {
			if nodes[i].Department != e.Department {
				continue
			}
			nodes[i].Children = append(nodes[i].Children, Node{
				ID:         e.ID,
				Name:       e.Name,
				Position:   e.Position,
				Department: e.Department,
				Email:      e.Email,
				Children:   []Node{},
			})
			placed++
			break
		}
	}

	span.SetAttributes(
		attribute.Int("orgchart.supervisors_resolved", len(nodes)),
		attribute.Int("orgchart.employees_placed", placed),
		attribute.Int("orgchart.employees_dropped", len(employees)-placed),
	)
	return nodes, nil
}
