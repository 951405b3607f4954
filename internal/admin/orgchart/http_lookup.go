package orgchart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"finitefield.org/roster-admin/internal/admin/reports"
)

// HTTPClient matches the subset of http.Client used by HTTPLookup.
type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

// HTTPLookup resolves supervisors through the supervisor endpoint of a running admin.
type HTTPLookup struct {
	base   *url.URL
	client HTTPClient
}

// NewHTTPLookup constructs a lookup against baseURL (scheme and host, optional path prefix).
func NewHTTPLookup(baseURL string, client HTTPClient) (*HTTPLookup, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("orgchart: base URL is required")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("orgchart: parse base URL: %w", err)
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPLookup{base: parsed, client: client}, nil
}

// SupervisorByName calls GET /api/supervisors?name=. A 404 maps to reports.ErrSupervisorNotFound.
func (l *HTTPLookup) SupervisorByName(ctx context.Context, name string) (reports.Supervisor, error) {
	endpoint := l.base.JoinPath("api", "supervisors")
	endpoint.RawQuery = url.Values{"name": []string{name}}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return reports.Supervisor{}, fmt.Errorf("orgchart: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return reports.Supervisor{}, fmt.Errorf("orgchart: request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return reports.Supervisor{}, fmt.Errorf("%w: %q", reports.ErrSupervisorNotFound, name)
	default:
		return reports.Supervisor{}, errorFromResponse(resp)
	}

	var sup reports.Supervisor
	if err := json.NewDecoder(resp.Body).Decode(&sup); err != nil {
		return reports.Supervisor{}, fmt.Errorf("orgchart: decode supervisor: %w", err)
	}
	return sup, nil
}

func errorFromResponse(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))

	var payload struct {
		Error string `json:"error"`
	}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
			return fmt.Errorf("orgchart: supervisor lookup error (%d): %s", resp.StatusCode, payload.Error)
		}
		return fmt.Errorf("orgchart: supervisor lookup error (%d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return fmt.Errorf("orgchart: supervisor lookup error (%d): %s", resp.StatusCode, http.StatusText(resp.StatusCode))
}
