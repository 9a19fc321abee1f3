package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/demirhan/taportal/internal/app/models"
	"github.com/demirhan/taportal/internal/app/models/dto"
	"github.com/demirhan/taportal/internal/pkg/apperrors"
)

// flakyHandler simulates connection-level failures on demand: while down,
// it hijacks the connection and closes it without writing a response, which
// the client sees as an unreachable host rather than an HTTP error.
type flakyHandler struct {
	down  atomic.Bool
	inner http.Handler
}

func (h *flakyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.down.Load() {
		hj, ok := w.(http.Hijacker)
		if !ok {
			panic("test server does not support hijacking")
		}
		conn, _, err := hj.Hijack()
		if err != nil {
			panic(err)
		}
		conn.Close()
		return
	}
	h.inner.ServeHTTP(w, r)
}

func writeData(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dto.APIResponse{Data: data, Timestamp: time.Now()})
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeInternalServer, message)))
}

func newTestClient(t *testing.T, inner http.Handler) (*Client, *flakyHandler) {
	t.Helper()

	handler := &flakyHandler{inner: inner}
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c := New(Config{
		BaseURL:         server.URL,
		Timeout:         2 * time.Second,
		OfflineFallback: true,
		FallbackDelay:   time.Millisecond,
	})
	return c, handler
}

func TestListDepartmentsDecodesEnvelope(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/departments", func(w http.ResponseWriter, r *http.Request) {
		writeData(w, []models.Department{
			{ID: 7, Name: "Physics", Code: "PHYS"},
		})
	})
	c, _ := newTestClient(t, mux)

	departments, err := c.ListDepartments(context.Background())
	require.NoError(t, err)
	require.Len(t, departments, 1)
	assert.Equal(t, int64(7), departments[0].ID)
	assert.Equal(t, "PHYS", departments[0].Code)
	assert.False(t, c.Degraded())
}

func TestUnauthorizedNeverFallsBack(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/departments", func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusUnauthorized, "token expired")
	})
	c, _ := newTestClient(t, mux)

	departments, err := c.ListDepartments(context.Background())
	require.ErrorIs(t, err, apperrors.ErrUnauthorized)
	assert.Nil(t, departments)
	assert.False(t, c.Degraded())
}

func TestServerErrorCarriesDetail(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/positions", func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusInternalServerError, "database connection lost")
	})
	c, _ := newTestClient(t, mux)

	positions, err := c.ListPositions(context.Background(), "")
	require.ErrorIs(t, err, apperrors.ErrRemoteError)
	assert.Contains(t, err.Error(), "database connection lost")
	assert.Nil(t, positions)
	// An HTTP error is not unreachability; the fixture path must not run
	assert.False(t, c.Degraded())
}

func TestConnectionFailureLatchesDegradedMode(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/departments", func(w http.ResponseWriter, r *http.Request) {
		writeData(w, []models.Department{{ID: 1, Name: "Live", Code: "LIVE"}})
	})
	c, handler := newTestClient(t, mux)

	handler.down.Store(true)
	departments, err := c.ListDepartments(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fixtureDepartments(), departments)
	assert.True(t, c.Degraded())

	// Connectivity returns, but the latch stays set
	handler.down.Store(false)
	departments, err = c.ListDepartments(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "LIVE", departments[0].Code)
	assert.True(t, c.Degraded())

	c.ResetDegraded()
	assert.False(t, c.Degraded())
}

func TestMutationNeverFallsBack(t *testing.T) {
	c, handler := newTestClient(t, http.NewServeMux())
	handler.down.Store(true)

	app, err := c.SubmitApplication(context.Background(), dto.SubmitApplicationRequest{
		PositionID:  1,
		ApplyReason: "matches my field",
	})
	require.ErrorIs(t, err, apperrors.ErrUnreachable)
	assert.Nil(t, app)
	assert.False(t, c.Degraded())
}

func TestTimeoutTreatedAsUnreachable(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/notices", func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		writeData(w, []models.PublicNotice{})
	})

	handler := &flakyHandler{inner: mux}
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c := New(Config{
		BaseURL:         server.URL,
		Timeout:         50 * time.Millisecond,
		OfflineFallback: true,
		FallbackDelay:   time.Millisecond,
	})

	notices, err := c.ListNotices(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fixtureNotices(), notices)
	assert.True(t, c.Degraded())
}

func TestFallbackDisabledSurfacesError(t *testing.T) {
	c := New(Config{
		BaseURL:         "http://127.0.0.1:1", // nothing listens here
		Timeout:         100 * time.Millisecond,
		OfflineFallback: false,
		FallbackDelay:   time.Millisecond,
	})

	departments, err := c.ListDepartments(context.Background())
	require.ErrorIs(t, err, apperrors.ErrUnreachable)
	assert.Nil(t, departments)
	assert.False(t, c.Degraded())
}

func TestLoginAttachesBearerToken(t *testing.T) {
	var seenAuth atomic.Value
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req dto.LoginRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "S2023001", req.Username)
		writeData(w, dto.TokenResponse{AccessToken: "access-token-1", RoleType: "STUDENT"})
	})
	mux.HandleFunc("/applications/mine", func(w http.ResponseWriter, r *http.Request) {
		seenAuth.Store(r.Header.Get("Authorization"))
		writeData(w, []models.Application{})
	})
	c, _ := newTestClient(t, mux)

	tokens, err := c.Login(context.Background(), "S2023001", "Passw0rd1")
	require.NoError(t, err)
	assert.Equal(t, "access-token-1", tokens.AccessToken)

	_, err = c.MyApplications(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer access-token-1", seenAuth.Load())
}

func TestStatusDistributionFixture(t *testing.T) {
	c, handler := newTestClient(t, http.NewServeMux())
	handler.down.Store(true)

	dist, err := c.StatusDistribution(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, dist.Pending)
	assert.Equal(t, 2, dist.Approved)
	assert.Equal(t, 0, dist.Rejected)
	assert.True(t, c.Degraded())
}

func TestExportURL(t *testing.T) {
	c := New(Config{BaseURL: "http://portal.local/api/v1"})

	url := c.ExportURL(ExportWorkloads, dto.ReportFilter{Year: 2023, DepartmentID: 4})
	assert.Equal(t, "http://portal.local/api/v1/admin/reports/workloads?dept=4&format=csv&year=2023", url)

	url = c.ExportURL(ExportPositions, dto.ReportFilter{Year: 2023})
	assert.Equal(t, "http://portal.local/api/v1/admin/reports/positions?format=csv&year=2023", url)

	url = c.ExportURL(ExportRoster, dto.ReportFilter{})
	assert.Equal(t, "http://portal.local/api/v1/admin/reports/roster?format=csv", url)
}

func TestPositionReportFallbackHonorsFilter(t *testing.T) {
	c, handler := newTestClient(t, http.NewServeMux())
	handler.down.Store(true)

	list, err := c.PositionReport(context.Background(), dto.ReportFilter{Year: 2023, DepartmentID: 1})
	require.NoError(t, err)
	assert.Len(t, list.Results, 3)

	list, err = c.PositionReport(context.Background(), dto.ReportFilter{Year: 2020})
	require.NoError(t, err)
	assert.Empty(t, list.Results)
	assert.True(t, c.Degraded())
}

func TestPeriodTotalsFallbackCarriesFilter(t *testing.T) {
	c, handler := newTestClient(t, http.NewServeMux())
	handler.down.Store(true)

	totals, err := c.PeriodTotals(context.Background(), dto.ReportFilter{Year: 2023, DepartmentID: 1})
	require.NoError(t, err)
	assert.Equal(t, 2023, totals.Year)
	assert.Equal(t, int64(1), totals.DepartmentID)
	assert.Equal(t, 8700.0, totals.Gross)
	assert.Equal(t, 0.0, totals.Deductions)
	assert.Equal(t, 8700.0, totals.Net)
}
