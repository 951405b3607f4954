package orgchart_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"finitefield.org/roster-admin/internal/admin/orgchart"
	"finitefield.org/roster-admin/internal/admin/reports"
)

func seededStore(t *testing.T) *reports.StaticService {
	t.Helper()
	svc, err := reports.NewSeededService()
	require.NoError(t, err)
	return svc
}

func TestBuildQ1SalesReport(t *testing.T) {
	t.Parallel()

	store := seededStore(t)
	ctx := context.Background()

	report, err := store.Report(ctx, "r1")
	require.NoError(t, err)

	nodes, err := orgchart.NewBuilder(store).Build(ctx, report, store.EmployeesByReport(ctx, "r1"))
	require.NoError(t, err)
	require.Len(t, nodes, 2)

	require.Equal(t, "John Doe", nodes[0].Name)
	require.Equal(t, "Regional Sales Director", nodes[0].Position)
	require.True(t, nodes[0].IsSupervisor)
	require.Len(t, nodes[0].Children, 2)
	require.Equal(t, "e1", nodes[0].Children[0].ID)
	require.Equal(t, "e2", nodes[0].Children[1].ID)

	require.Equal(t, "Jane Smith", nodes[1].Name)
	require.Empty(t, nodes[1].Children, "first matching supervisor takes the employees")

	for _, n := range nodes {
		for _, c := range n.Children {
			require.Equal(t, n.Department, c.Department)
			require.False(t, c.IsSupervisor)
			require.Empty(t, c.Children)
			require.NotEqual(t, "e3", c.ID, "Analytics has no supervisor")
		}
	}
}

func TestBuildDropsUnknownSupervisors(t *testing.T) {
	t.Parallel()

	store := seededStore(t)
	report := reports.Report{
		ID:          "rx",
		Supervisors: []string{"Nobody Here", "Robert Johnson"},
	}
	employees := []reports.Employee{
		{ID: "e4", Department: "Finance"},
		{ID: "e9", Department: "Customer Support"},
	}

	nodes, err := orgchart.NewBuilder(store).Build(context.Background(), report, employees)
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	require.Equal(t, "sup3", nodes[0].ID)
	require.Len(t, nodes[0].Children, 1)
	require.Equal(t, "e4", nodes[0].Children[0].ID)
}

func TestBuildPreservesNameOrderUnderConcurrency(t *testing.T) {
	t.Parallel()

	store := seededStore(t)
	report := reports.Report{Supervisors: []string{"Carlos Rodriguez", "Li Wei", "John Doe", "Maria Garcia", "Hans Mueller"}}

	nodes, err := orgchart.NewBuilder(store, orgchart.WithConcurrency(5)).Build(context.Background(), report, nil)
	require.NoError(t, err)

	names := make([]string, 0, len(nodes))
	for _, n := range nodes {
		names = append(names, n.Name)
	}
	require.Equal(t, report.Supervisors, names)
}

type failingLookup struct{ calls atomic.Int32 }

func (f *failingLookup) SupervisorByName(context.Context, string) (reports.Supervisor, error) {
	f.calls.Add(1)
	return reports.Supervisor{}, errors.New("backend unavailable")
}

func TestBuildToleratesLookupFailures(t *testing.T) {
	t.Parallel()

	lookup := &failingLookup{}
	nodes, err := orgchart.NewBuilder(lookup).Build(context.Background(), reports.Report{Supervisors: []string{"A", "B"}}, nil)
	require.NoError(t, err)
	require.Empty(t, nodes)
	require.EqualValues(t, 2, lookup.calls.Load())
}

func TestBuildReturnsContextError(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := orgchart.NewBuilder(seededStore(t)).Build(ctx, reports.Report{Supervisors: []string{"John Doe"}}, nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestHTTPLookup(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/supervisors", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("name") {
		case "Hans Mueller":
			_ = json.NewEncoder(w).Encode(reports.Supervisor{ID: "sup5", Name: "Hans Mueller", Department: "Market Research"})
		case "":
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"Supervisor name is required"}`))
		case "Broken":
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":"Failed to fetch supervisor data"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"Supervisor not found"}`))
		}
	}))
	t.Cleanup(ts.Close)

	lookup, err := orgchart.NewHTTPLookup(ts.URL, ts.Client())
	require.NoError(t, err)
	ctx := context.Background()

	sup, err := lookup.SupervisorByName(ctx, "Hans Mueller")
	require.NoError(t, err)
	require.Equal(t, "sup5", sup.ID)

	_, err = lookup.SupervisorByName(ctx, "Nobody")
	require.ErrorIs(t, err, reports.ErrSupervisorNotFound)

	_, err = lookup.SupervisorByName(ctx, "Broken")
	require.Error(t, err)
	require.Contains(t, err.Error(), "Failed to fetch supervisor data")
	require.NotErrorIs(t, err, reports.ErrSupervisorNotFound)

	_, err = orgchart.NewHTTPLookup("  ", nil)
	require.Error(t, err)
}
