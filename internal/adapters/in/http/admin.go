package http

import (
	"bytes"
	"html/template"
	"net/http"

	"notpickedup/internal/core/application/usecases/queries"
	"notpickedup/internal/core/domain/model/bulkaction"
	"notpickedup/internal/core/domain/model/status"

	"github.com/labstack/echo/v4"
)

var adminOrdersPage = template.Must(template.New("orders").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Orders</title></head>
<body>
<div class="wrap">
<h1>Orders</h1>
{{.Notices}}
<ul class="subsubsub">
<li><a href="/admin/orders">All</a></li>
{{- range .Statuses}}
<li><a href="/admin/orders?status={{.Key}}">{{.CountLabel}}</a></li>
{{- end}}
</ul>
<form method="post" action="/admin/orders/bulk">
<input type="hidden" name="redirect_to" value="{{.Redirect}}">
<select name="action">
{{- range .Actions}}
<option value="{{.Key}}">{{.Label}}</option>
{{- end}}
</select>
<button type="submit">Apply</button>
<table class="wp-list-table">
<thead><tr><th></th><th>Order</th><th>Status</th></tr></thead>
<tbody>
{{- range .Orders}}
<tr><td><input type="checkbox" name="post" value="{{.ID}}"></td><td>#{{.ID}}</td><td>{{index $.Labels .Status}}</td></tr>
{{- end}}
</tbody>
</table>
</form>
</div>
</body>
</html>
`))

type adminOrdersView struct {
	Notices  template.HTML
	Statuses []queries.GetOrderStatusesQueryResponse
	Actions  []bulkaction.Item
	Orders   []queries.GetOrdersQueryResponse
	Labels   map[status.Key]string
	Redirect string
}

// AdminOrders handles GET /admin/orders: notices first, then the status
// filter links, the bulk-action menu and the order table.
func (s *Server) AdminOrders(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var notices bytes.Buffer
	if err := s.host.RenderAdminNotices(reqCtx, ctx.QueryParams(), &notices); err != nil {
		return ctx.String(http.StatusInternalServerError, "Failed to render notices")
	}

	statuses, err := s.getOrderStatusesHandler.Handle(reqCtx, queries.NewGetOrderStatusesQuery())
	if err != nil {
		return ctx.String(statusCode(err), "Failed to retrieve statuses")
	}

	menu, err := s.host.BulkActions(reqCtx)
	if err != nil {
		return ctx.String(statusCode(err), "Failed to retrieve bulk actions")
	}

	query, err := s.ordersQuery(ctx)
	if err != nil {
		return ctx.String(http.StatusBadRequest, "Invalid status filter")
	}
	orders, err := s.getOrdersHandler.Handle(reqCtx, query)
	if err != nil {
		return ctx.String(statusCode(err), "Failed to retrieve orders")
	}

	labels := make(map[status.Key]string, len(statuses))
	for _, st := range statuses {
		labels[st.Key] = st.Label
	}

	redirect := defaultAdminRedirect
	if key, ok := query.Status(); ok {
		redirect += "?status=" + key.String()
	}

	view := adminOrdersView{
		// Notices are markup produced by extensions, which escape their own text.
		Notices:  template.HTML(notices.String()), //nolint:gosec
		Statuses: statuses,
		Actions:  menu.Items(),
		Orders:   orders,
		Labels:   labels,
		Redirect: redirect,
	}

	var page bytes.Buffer
	if err = adminOrdersPage.Execute(&page, view); err != nil {
		return ctx.String(http.StatusInternalServerError, "Failed to render page")
	}
	return ctx.HTMLBlob(http.StatusOK, page.Bytes())
}
