package notpickedup_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/url"
	"testing"

	"notpickedup/internal/core/application/usecases/commands"
	"notpickedup/internal/core/domain/model/bulkaction"
	"notpickedup/internal/core/domain/model/kernel"
	"notpickedup/internal/core/domain/model/notification"
	"notpickedup/internal/core/domain/model/order"
	"notpickedup/internal/core/domain/model/status"
	"notpickedup/internal/pkg/errs"
	"notpickedup/internal/plugin/hook"
	"notpickedup/internal/plugin/host"
	"notpickedup/internal/plugin/notpickedup"
	"notpickedup/internal/support/i18n"
	"notpickedup/internal/support/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	hooks    *hook.Registry
	host     *host.Host
	statuses *status.Registry
	store    *memoryStore
	registry *prometheus.Registry
	ext      *notpickedup.Extension
}

func newFixture(t *testing.T, orders ...*order.Order) fixture {
	t.Helper()

	catalog, err := i18n.NewCatalog()
	require.NoError(t, err)

	f := fixture{
		hooks:    hook.NewRegistry(),
		statuses: status.NewRegistry(),
		store:    newMemoryStore(orders...),
		registry: prometheus.NewRegistry(),
	}
	f.host = host.New(f.hooks)

	handler := commands.NewMarkOrdersCommandHandler(f.store, f.host, slog.Default())
	f.ext, err = notpickedup.New(f.statuses, handler, catalog, "en", metrics.New(f.registry), nil)
	require.NoError(t, err)
	f.ext.Install(f.hooks)

	return f
}

func (f fixture) counter(name string) float64 {
	families, _ := f.registry.Gather()
	var total float64
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, m := range family.GetMetric() {
			total += m.GetCounter().GetValue()
		}
	}
	return total
}

func mustOrder(t *testing.T, id kernel.OrderID, s status.Key) *order.Order {
	t.Helper()
	o, err := order.NewOrder(id, s)
	require.NoError(t, err)
	return o
}

func TestNew_RequiresCollaborators(t *testing.T) {
	catalog, err := i18n.NewCatalog()
	require.NoError(t, err)
	marker := new(MockOrderMarker)

	_, err = notpickedup.New(nil, marker, catalog, "en", nil, nil)
	assert.Error(t, err)
	_, err = notpickedup.New(status.NewRegistry(), nil, catalog, "en", nil, nil)
	assert.Error(t, err)
	_, err = notpickedup.New(status.NewRegistry(), marker, nil, "en", nil, nil)
	assert.Error(t, err)
}

func TestInit_RegistersStatusIdempotently(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.host.Init(context.Background()))
	require.NoError(t, f.host.Init(context.Background()))

	all := f.statuses.All()
	require.Len(t, all, 1)
	def := all[0]
	assert.Equal(t, notpickedup.StatusKey, def.Key())
	assert.Equal(t, "Not Picked Up", def.Label())
	assert.Equal(t, status.Visibility{
		Public:                true,
		ExcludeFromSearch:     false,
		ShowInAdminAllList:    true,
		ShowInAdminStatusList: true,
	}, def.Visibility())
	assert.Equal(t, "Not Picked Up (3)", def.LabelCount().Format(3))
}

func TestOrderStatuses_InsertedAfterOnHold(t *testing.T) {
	f := newFixture(t)

	got, err := f.host.Statuses(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []status.Key{
		status.Pending,
		status.Processing,
		status.OnHold,
		notpickedup.StatusKey,
		status.Completed,
		status.Cancelled,
		status.Refunded,
		status.Failed,
	}, got.Keys())
	label, ok := got.Label(notpickedup.StatusKey)
	require.True(t, ok)
	assert.Equal(t, "Not Picked Up", label)
}

func TestAddToOrderStatuses_AnchorAbsentLeavesListUnchanged(t *testing.T) {
	f := newFixture(t)
	input := status.NewList(
		status.Entry{Key: status.Pending, Label: "Pending payment"},
		status.Entry{Key: status.Completed, Label: "Completed"},
	)

	got, err := f.ext.AddToOrderStatuses(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, input.Entries(), got.Entries())
}

func TestRemoveEmailNotifications(t *testing.T) {
	f := newFixture(t)
	input := notification.Actions{
		"order_status_pending_to_processing",
		"order_status_not-picked-up",
		"order_status_completed",
		"order_status_not-picked-up_to_processing",
		"order_status_pending_to_processing",
		"order_status_not-picked-up_to_completed",
	}

	once, err := f.ext.RemoveEmailNotifications(context.Background(), input)
	require.NoError(t, err)
	twice, err := f.ext.RemoveEmailNotifications(context.Background(), once)
	require.NoError(t, err)

	want := notification.Actions{
		"order_status_pending_to_processing",
		"order_status_completed",
		"order_status_pending_to_processing",
	}
	assert.Equal(t, want, once)
	assert.Equal(t, want, twice)
}

func TestEmailActions_ThroughHost(t *testing.T) {
	f := newFixture(t)

	got, err := f.host.EmailActions(context.Background())

	require.NoError(t, err)
	for _, suppressed := range notpickedup.SuppressedEmails {
		assert.NotContains(t, got, suppressed)
	}
	assert.Equal(t, notification.DefaultActions().Without(notpickedup.SuppressedEmails...), got)
}

func TestBulkActions_AddedOnceEvenWhenAppliedTwice(t *testing.T) {
	f := newFixture(t)
	f.ext.Install(f.hooks)

	menu, err := f.host.BulkActions(context.Background())

	require.NoError(t, err)
	assert.Equal(t, bulkaction.DefaultMenu().Len()+1, menu.Len())
	items := menu.Items()
	last := items[len(items)-1]
	assert.Equal(t, notpickedup.BulkAction, last.Key)
	assert.Equal(t, "Change status to Not Picked Up", last.Label)
}

func TestHandleBulkAction_EndToEnd(t *testing.T) {
	f := newFixture(t,
		mustOrder(t, 101, status.Processing),
		mustOrder(t, 103, status.OnHold),
	)

	redirect, err := f.host.HandleBulkAction(context.Background(), bulkaction.Dispatch{
		Action:   notpickedup.BulkAction,
		Redirect: "/admin/orders?paged=2",
		OrderIDs: []kernel.OrderID{101, 102, 103},
	})

	require.NoError(t, err)
	u, err := url.Parse(redirect)
	require.NoError(t, err)
	assert.Equal(t, "/admin/orders", u.Path)
	assert.Equal(t, "3", u.Query().Get(notpickedup.NoticeQueryArg))
	assert.Equal(t, "2", u.Query().Get("paged"))

	for _, id := range []kernel.OrderID{101, 103} {
		o := f.store.get(id)
		require.NotNil(t, o)
		assert.Equal(t, notpickedup.StatusKey, o.Status())
		require.Len(t, o.Notes(), 1)
		assert.Contains(t, o.Notes()[0].Content, "Order marked as Not Picked Up")
	}
	assert.Nil(t, f.store.get(102))

	assert.Equal(t, 2.0, f.counter("notpickedup_bulk_orders_marked_total"))
	assert.Equal(t, 1.0, f.counter("notpickedup_bulk_orders_skipped_total"))
	assert.Equal(t, 1.0, f.counter("notpickedup_bulk_dispatches_total"))
}

func TestHandleBulkAction_UnresolvableReferencesCount(t *testing.T) {
	f := newFixture(t,
		mustOrder(t, 101, status.Processing),
		mustOrder(t, 103, status.OnHold),
	)

	redirect, err := f.host.HandleBulkAction(context.Background(), bulkaction.Dispatch{
		Action:   notpickedup.BulkAction,
		Redirect: "/admin/orders",
		OrderIDs: []kernel.OrderID{101, 0, 103},
	})

	require.NoError(t, err)
	u, err := url.Parse(redirect)
	require.NoError(t, err)
	assert.Equal(t, "3", u.Query().Get(notpickedup.NoticeQueryArg))
	assert.Equal(t, notpickedup.StatusKey, f.store.get(101).Status())
	assert.Equal(t, notpickedup.StatusKey, f.store.get(103).Status())
	assert.Equal(t, 1.0, f.counter("notpickedup_bulk_orders_skipped_total"))
}

func TestHandleBulkAction_OtherActionPassesThrough(t *testing.T) {
	marker := new(MockOrderMarker)
	catalog, err := i18n.NewCatalog()
	require.NoError(t, err)
	ext, err := notpickedup.New(status.NewRegistry(), marker, catalog, "en", nil, nil)
	require.NoError(t, err)

	in := bulkaction.Dispatch{Action: "mark_completed", Redirect: "/admin/orders", OrderIDs: []kernel.OrderID{1}}
	out, err := ext.HandleBulkAction(context.Background(), in)

	require.NoError(t, err)
	assert.Equal(t, in, out)
	marker.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestHandleBulkAction_EmptySelection(t *testing.T) {
	f := newFixture(t)

	redirect, err := f.host.HandleBulkAction(context.Background(), bulkaction.Dispatch{
		Action:   notpickedup.BulkAction,
		Redirect: "/admin/orders",
	})

	require.NoError(t, err)
	assert.Equal(t, "/admin/orders?marked_not_picked_up=0", redirect)
}

func TestHandleBulkAction_MarkerFailure(t *testing.T) {
	boom := errors.New("connection reset")
	marker := new(MockOrderMarker)
	marker.On("Handle", mock.Anything, mock.Anything).
		Return(commands.MarkOrdersResult{Requested: 2, Applied: []kernel.OrderID{1}}, boom).Once()

	catalog, err := i18n.NewCatalog()
	require.NoError(t, err)
	ext, err := notpickedup.New(status.NewRegistry(), marker, catalog, "en", nil, nil)
	require.NoError(t, err)

	in := bulkaction.Dispatch{Action: notpickedup.BulkAction, Redirect: "/admin/orders", OrderIDs: []kernel.OrderID{1, 2}}
	out, err := ext.HandleBulkAction(context.Background(), in)

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "/admin/orders", out.Redirect)
	marker.AssertExpectations(t)
}

func TestHandleBulkAction_InvalidRedirect(t *testing.T) {
	f := newFixture(t, mustOrder(t, 1, status.Pending))

	_, err := f.ext.HandleBulkAction(context.Background(), bulkaction.Dispatch{
		Action:   notpickedup.BulkAction,
		Redirect: "http://[::1",
		OrderIDs: []kernel.OrderID{1},
	})

	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestRenderNotice(t *testing.T) {
	tests := []struct {
		name  string
		query url.Values
		want  string
	}{
		{
			name:  "singular",
			query: url.Values{notpickedup.NoticeQueryArg: {"1"}},
			want:  `<div class="notice notice-success is-dismissible"><p>1 order marked as Not Picked Up.</p></div>`,
		},
		{
			name:  "plural",
			query: url.Values{notpickedup.NoticeQueryArg: {"5"}},
			want:  `<div class="notice notice-success is-dismissible"><p>5 orders marked as Not Picked Up.</p></div>`,
		},
		{
			name:  "absent",
			query: url.Values{"paged": {"2"}},
			want:  "",
		},
		{
			name:  "not numeric",
			query: url.Values{notpickedup.NoticeQueryArg: {"<script>"}},
			want:  `<div class="notice notice-success is-dismissible"><p>0 orders marked as Not Picked Up.</p></div>`,
		},
		{
			name:  "numeric prefix",
			query: url.Values{notpickedup.NoticeQueryArg: {" 12abc"}},
			want:  `<div class="notice notice-success is-dismissible"><p>12 orders marked as Not Picked Up.</p></div>`,
		},
		{
			name:  "empty value",
			query: url.Values{notpickedup.NoticeQueryArg: {""}},
			want:  `<div class="notice notice-success is-dismissible"><p>0 orders marked as Not Picked Up.</p></div>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			var out bytes.Buffer

			err := f.host.RenderAdminNotices(context.Background(), tt.query, &out)

			require.NoError(t, err)
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestRegisterStatus_German(t *testing.T) {
	catalog, err := i18n.NewCatalog()
	require.NoError(t, err)
	statuses := status.NewRegistry()
	ext, err := notpickedup.New(statuses, new(MockOrderMarker), catalog, "de", nil, nil)
	require.NoError(t, err)

	require.NoError(t, ext.RegisterStatus(context.Background(), nil))

	def, err := statuses.Get(notpickedup.StatusKey)
	require.NoError(t, err)
	assert.Equal(t, "Nicht abgeholt", def.Label())
	assert.Equal(t, "Nicht abgeholt (2)", def.LabelCount().Format(2))
	assert.Equal(t, "Nicht abgeholt (1)", def.LabelCount().Format(1))
}

func TestRenderNotice_German(t *testing.T) {
	catalog, err := i18n.NewCatalog()
	require.NoError(t, err)
	ext, err := notpickedup.New(status.NewRegistry(), new(MockOrderMarker), catalog, "de-DE", nil, nil)
	require.NoError(t, err)

	var out bytes.Buffer
	err = ext.RenderNotice(context.Background(), host.AdminPage{
		Query: url.Values{notpickedup.NoticeQueryArg: {"1"}},
		Out:   &out,
	})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "1 Bestellung als nicht abgeholt markiert.")
}
