package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	httpadapter "notpickedup/internal/adapters/in/http"
	"notpickedup/internal/core/application/usecases/commands"
	"notpickedup/internal/core/application/usecases/queries"
	"notpickedup/internal/core/domain/model/bulkaction"
	"notpickedup/internal/core/domain/model/kernel"
	"notpickedup/internal/core/domain/model/status"
	"notpickedup/internal/support/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const notPickedUp status.Key = "wc-not-picked-up"

type stubHost struct {
	menu       bulkaction.Menu
	dispatched []bulkaction.Dispatch
	redirect   func(d bulkaction.Dispatch) (string, error)
	notices    string
}

func (h *stubHost) BulkActions(context.Context) (bulkaction.Menu, error) {
	return h.menu, nil
}

func (h *stubHost) HandleBulkAction(_ context.Context, d bulkaction.Dispatch) (string, error) {
	h.dispatched = append(h.dispatched, d)
	if h.redirect == nil {
		return d.Redirect, nil
	}
	return h.redirect(d)
}

func (h *stubHost) RenderAdminNotices(_ context.Context, query url.Values, w io.Writer) error {
	if _, ok := query["marked_not_picked_up"]; ok {
		_, err := io.WriteString(w, h.notices)
		return err
	}
	return nil
}

type stubCreator struct {
	created []commands.CreateOrderCommand
	err     error
}

func (c *stubCreator) Handle(_ context.Context, cmd commands.CreateOrderCommand) error {
	c.created = append(c.created, cmd)
	return c.err
}

type stubLister struct {
	orders []queries.GetOrdersQueryResponse
	seen   []queries.GetOrdersQuery
}

func (l *stubLister) Handle(_ context.Context, q queries.GetOrdersQuery) ([]queries.GetOrdersQueryResponse, error) {
	l.seen = append(l.seen, q)
	key, ok := q.Status()
	if !ok {
		return l.orders, nil
	}
	out := make([]queries.GetOrdersQueryResponse, 0)
	for _, o := range l.orders {
		if o.Status == key {
			out = append(out, o)
		}
	}
	return out, nil
}

type stubStatuses struct {
	err error
}

func (s stubStatuses) Handle(context.Context, queries.GetOrderStatusesQuery) ([]queries.GetOrderStatusesQueryResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []queries.GetOrderStatusesQueryResponse{
		{Key: status.Processing, Label: "Processing", Count: 1, CountLabel: "Processing (1)"},
		{Key: status.OnHold, Label: "On hold", Count: 0, CountLabel: "On hold (0)"},
		{Key: notPickedUp, Label: "Not Picked Up", Count: 2, CountLabel: "Not Picked Up (2)"},
	}, nil
}

type fixture struct {
	host    *stubHost
	creator *stubCreator
	lister  *stubLister
	reg     *prometheus.Registry
	e       *echo.Echo
}

func newFixture(statuses stubStatuses) fixture {
	f := fixture{
		host: &stubHost{
			menu:    bulkaction.DefaultMenu().Add("mark_not-picked-up", "Change status to Not Picked Up"),
			notices: `<div class="notice notice-success is-dismissible"><p>3 orders marked as Not Picked Up.</p></div>`,
		},
		creator: &stubCreator{},
		lister: &stubLister{orders: []queries.GetOrdersQueryResponse{
			{ID: 101, Status: notPickedUp},
			{ID: 102, Status: status.Processing},
			{ID: 103, Status: notPickedUp},
		}},
		reg: prometheus.NewRegistry(),
	}
	server := httpadapter.NewServer(f.host, f.creator, f.lister, statuses)
	f.e = httpadapter.NewRouter(server, metrics.New(f.reg), f.reg, nil)
	return f
}

func (f fixture) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func postForm(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return req
}

func TestHealth(t *testing.T) {
	rec := newFixture(stubStatuses{}).do(httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Healthy", rec.Body.String())
}

func TestGetOrders_FilteredByStatus(t *testing.T) {
	f := newFixture(stubStatuses{})

	rec := f.do(httptest.NewRequest(http.MethodGet, "/api/v1/orders?status=wc-not-picked-up", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var got []httpadapter.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, []httpadapter.Order{
		{ID: 101, Status: "wc-not-picked-up"},
		{ID: 103, Status: "wc-not-picked-up"},
	}, got)
}

func TestGetOrders_WithoutFilter(t *testing.T) {
	f := newFixture(stubStatuses{})

	rec := f.do(httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, f.lister.seen, 1)
	_, filtered := f.lister.seen[0].Status()
	assert.False(t, filtered)
}

func TestGetOrders_InvalidFilter(t *testing.T) {
	rec := newFixture(stubStatuses{}).do(httptest.NewRequest(http.MethodGet, "/api/v1/orders?status=Not%20Picked", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetStatuses(t *testing.T) {
	rec := newFixture(stubStatuses{}).do(httptest.NewRequest(http.MethodGet, "/api/v1/statuses", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var got []queries.GetOrderStatusesQueryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 3)
	assert.Equal(t, "Not Picked Up (2)", got[2].CountLabel)
}

func TestGetStatuses_Failure(t *testing.T) {
	rec := newFixture(stubStatuses{err: errors.New("boom")}).
		do(httptest.NewRequest(http.MethodGet, "/api/v1/statuses", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGetBulkActions(t *testing.T) {
	rec := newFixture(stubStatuses{}).do(httptest.NewRequest(http.MethodGet, "/api/v1/bulk-actions", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var got []bulkaction.Item
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, bulkaction.Key("mark_not-picked-up"), got[len(got)-1].Key)
}

func TestCreateOrder(t *testing.T) {
	f := newFixture(stubStatuses{})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(`{"id":101,"status":"wc-processing"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	rec := f.do(req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, f.creator.created, 1)
	assert.Equal(t, kernel.OrderID(101), f.creator.created[0].OrderID())
	assert.Equal(t, status.Processing, f.creator.created[0].InitialStatus())
}

func TestCreateOrder_InvalidID(t *testing.T) {
	f := newFixture(stubStatuses{})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(`{"id":0}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	rec := f.do(req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, f.creator.created)
}

func TestBulkAction_RedirectsWithCount(t *testing.T) {
	f := newFixture(stubStatuses{})
	f.host.redirect = func(d bulkaction.Dispatch) (string, error) {
		return bulkaction.AddQueryArg(d.Redirect, "marked_not_picked_up", len(d.OrderIDs))
	}

	rec := f.do(postForm("/admin/orders/bulk", url.Values{
		"action":      {"mark_not-picked-up"},
		"post":        {"101", "102", "103"},
		"redirect_to": {"/admin/orders?status=wc-processing"},
	}))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	location, err := url.Parse(rec.Header().Get(echo.HeaderLocation))
	require.NoError(t, err)
	assert.Equal(t, "/admin/orders", location.Path)
	assert.Equal(t, "3", location.Query().Get("marked_not_picked_up"))
	assert.Equal(t, "wc-processing", location.Query().Get("status"))

	require.Len(t, f.host.dispatched, 1)
	assert.Equal(t, bulkaction.Key("mark_not-picked-up"), f.host.dispatched[0].Action)
	assert.Equal(t, []kernel.OrderID{101, 102, 103}, f.host.dispatched[0].OrderIDs)
}

func TestBulkAction_ForeignRedirectReplaced(t *testing.T) {
	f := newFixture(stubStatuses{})

	rec := f.do(postForm("/admin/orders/bulk", url.Values{
		"action":      {"mark_not-picked-up"},
		"post":        {"101"},
		"redirect_to": {"https://evil.example/steal"},
	}))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/orders", f.host.dispatched[0].Redirect)
}

func TestBulkAction_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		form url.Values
	}{
		{name: "missing action", form: url.Values{"post": {"1"}}},
		{name: "empty action", form: url.Values{"action": {""}, "post": {"1"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(stubStatuses{})

			rec := f.do(postForm("/admin/orders/bulk", tt.form))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Empty(t, f.host.dispatched)
		})
	}
}

func TestBulkAction_UnresolvableReferencesAreDispatched(t *testing.T) {
	f := newFixture(stubStatuses{})
	f.host.redirect = func(d bulkaction.Dispatch) (string, error) {
		return bulkaction.AddQueryArg(d.Redirect, "marked_not_picked_up", len(d.OrderIDs))
	}

	rec := f.do(postForm("/admin/orders/bulk", url.Values{
		"action": {"mark_not-picked-up"},
		"post":   {"101", "0", "abc", "103"},
	}))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	location, err := url.Parse(rec.Header().Get(echo.HeaderLocation))
	require.NoError(t, err)
	assert.Equal(t, "4", location.Query().Get("marked_not_picked_up"))

	require.Len(t, f.host.dispatched, 1)
	assert.Equal(t, []kernel.OrderID{101, 0, 0, 103}, f.host.dispatched[0].OrderIDs)
}

func TestBulkAction_HandlerFailure(t *testing.T) {
	f := newFixture(stubStatuses{})
	f.host.redirect = func(bulkaction.Dispatch) (string, error) { return "", errors.New("db down") }

	rec := f.do(postForm("/admin/orders/bulk", url.Values{"action": {"mark_not-picked-up"}, "post": {"1"}}))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestAdminOrders_RendersNoticeAndList(t *testing.T) {
	f := newFixture(stubStatuses{})

	rec := f.do(httptest.NewRequest(http.MethodGet, "/admin/orders?marked_not_picked_up=3", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `<div class="notice notice-success is-dismissible"><p>3 orders marked as Not Picked Up.</p></div>`)
	assert.Contains(t, body, "Not Picked Up (2)")
	assert.Contains(t, body, `<option value="mark_not-picked-up">Change status to Not Picked Up</option>`)
	assert.Contains(t, body, "<td>#101</td><td>Not Picked Up</td>")
	assert.Less(t, strings.Index(body, "notice-success"), strings.Index(body, "<table"))
}

func TestAdminOrders_NoNoticeWithoutQueryArg(t *testing.T) {
	f := newFixture(stubStatuses{})

	rec := f.do(httptest.NewRequest(http.MethodGet, "/admin/orders?status=wc-processing", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.NotContains(t, body, "notice-success")
	assert.Contains(t, body, "<td>#102</td>")
	assert.NotContains(t, body, "<td>#101</td>")
}

func TestMetricsEndpoint(t *testing.T) {
	f := newFixture(stubStatuses{})
	f.do(httptest.NewRequest(http.MethodGet, "/api/v1/statuses", nil))

	rec := f.do(httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `notpickedup_http_requests_total{method="GET",path="/api/v1/statuses",status="200"} 1`)
}
