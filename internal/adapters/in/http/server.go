// Package http exposes the admin order list and the JSON API over echo.
package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"

	"notpickedup/internal/core/application/usecases/commands"
	"notpickedup/internal/core/application/usecases/queries"
	"notpickedup/internal/core/domain/model/bulkaction"
	"notpickedup/internal/core/domain/model/kernel"
	"notpickedup/internal/core/domain/model/status"
	"notpickedup/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

const defaultAdminRedirect = "/admin/orders"

type (
	// AdminHost runs the admin extension points.
	AdminHost interface {
		BulkActions(ctx context.Context) (bulkaction.Menu, error)
		HandleBulkAction(ctx context.Context, d bulkaction.Dispatch) (string, error)
		RenderAdminNotices(ctx context.Context, query url.Values, w io.Writer) error
	}

	OrderCreator interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) error
	}

	OrderLister interface {
		Handle(ctx context.Context, query queries.GetOrdersQuery) ([]queries.GetOrdersQueryResponse, error)
	}

	StatusLister interface {
		Handle(ctx context.Context, query queries.GetOrderStatusesQuery) ([]queries.GetOrderStatusesQueryResponse, error)
	}
)

// Error is the JSON error body.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewOrder is the body of POST /api/v1/orders.
type NewOrder struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}

// Order is one element of GET /api/v1/orders.
type Order struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	host AdminHost

	createOrderHandler OrderCreator

	getOrdersHandler        OrderLister
	getOrderStatusesHandler StatusLister
}

// NewServer creates the handlers for the API and the admin pages.
func NewServer(
	host AdminHost,
	createOrderHandler OrderCreator,
	getOrdersHandler OrderLister,
	getOrderStatusesHandler StatusLister,
) *Server {
	return &Server{
		host:                    host,
		createOrderHandler:      createOrderHandler,
		getOrdersHandler:        getOrdersHandler,
		getOrderStatusesHandler: getOrderStatusesHandler,
	}
}

// GetStatuses handles GET /api/v1/statuses.
func (s *Server) GetStatuses(ctx echo.Context) error {
	statuses, err := s.getOrderStatusesHandler.Handle(ctx.Request().Context(), queries.NewGetOrderStatusesQuery())
	if err != nil {
		return jsonError(ctx, http.StatusInternalServerError, "Failed to retrieve statuses")
	}
	return ctx.JSON(http.StatusOK, statuses)
}

// GetBulkActions handles GET /api/v1/bulk-actions.
func (s *Server) GetBulkActions(ctx echo.Context) error {
	menu, err := s.host.BulkActions(ctx.Request().Context())
	if err != nil {
		return jsonError(ctx, http.StatusInternalServerError, "Failed to retrieve bulk actions")
	}
	return ctx.JSON(http.StatusOK, menu.Items())
}

// GetOrders handles GET /api/v1/orders with an optional status filter.
func (s *Server) GetOrders(ctx echo.Context) error {
	query, err := s.ordersQuery(ctx)
	if err != nil {
		return jsonError(ctx, http.StatusBadRequest, "Invalid status filter: "+err.Error())
	}

	orders, err := s.getOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return jsonError(ctx, http.StatusInternalServerError, "Failed to retrieve orders")
	}

	response := make([]Order, len(orders))
	for i, o := range orders {
		response[i] = Order{ID: o.ID.Int64(), Status: o.Status.String()}
	}
	return ctx.JSON(http.StatusOK, response)
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body NewOrder
	if err := ctx.Bind(&body); err != nil {
		return jsonError(ctx, http.StatusBadRequest, "Invalid request body")
	}

	initial := status.Pending
	if body.Status != "" {
		initial = status.Key(body.Status)
	}

	cmd, err := commands.NewCreateOrderCommand(kernel.OrderID(body.ID), initial)
	if err != nil {
		return jsonError(ctx, http.StatusBadRequest, "Invalid order data: "+err.Error())
	}

	if err = s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return jsonError(ctx, http.StatusConflict, "Failed to create order")
	}

	return ctx.NoContent(http.StatusCreated)
}

// BulkAction handles POST /admin/orders/bulk. The form carries action, the
// selected ids as repeated post values and an optional redirect_to.
func (s *Server) BulkAction(ctx echo.Context) error {
	form, err := ctx.FormParams()
	if err != nil {
		return ctx.String(http.StatusBadRequest, "Invalid form")
	}

	action := form.Get("action")
	if action == "" {
		return ctx.String(http.StatusBadRequest, "Missing action")
	}

	var raw *[]string
	if err = runtime.BindQueryParameter("form", true, false, "post", form, &raw); err != nil {
		return ctx.String(http.StatusBadRequest, "Invalid order selection")
	}

	var selected []string
	if raw != nil {
		selected = *raw
	}

	// References that are not order ids stay in the selection; they are
	// skipped when applied and still count toward the notice.
	ids := make([]kernel.OrderID, 0, len(selected))
	for _, r := range selected {
		ids = append(ids, kernel.OrderIDFromReference(r))
	}

	redirect, err := s.host.HandleBulkAction(ctx.Request().Context(), bulkaction.Dispatch{
		Action:   bulkaction.Key(action),
		Redirect: sameSiteRedirect(form.Get("redirect_to")),
		OrderIDs: ids,
	})
	if err != nil {
		ctx.Logger().Errorf("bulk action %s failed: %v", action, err)
		return ctx.String(http.StatusInternalServerError, "Bulk action failed")
	}

	return ctx.Redirect(http.StatusSeeOther, redirect)
}

func (s *Server) ordersQuery(ctx echo.Context) (queries.GetOrdersQuery, error) {
	var filter *string
	if err := runtime.BindQueryParameter("form", true, false, "status", ctx.QueryParams(), &filter); err != nil {
		return queries.GetOrdersQuery{}, err
	}
	if filter == nil || *filter == "" {
		return queries.NewGetOrdersQuery(nil)
	}

	key := status.Key(*filter)
	return queries.NewGetOrdersQuery(&key)
}

// sameSiteRedirect keeps redirects on this site; anything else goes back to the order list.
func sameSiteRedirect(raw string) string {
	if raw == "" {
		return defaultAdminRedirect
	}
	u, err := url.Parse(raw)
	if err != nil || u.IsAbs() || u.Host != "" || u.Path == "" || u.Path[0] != '/' {
		return defaultAdminRedirect
	}
	return u.String()
}

func jsonError(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, Error{Code: code, Message: message})
}

// statusCode maps use-case errors to HTTP codes for the admin pages.
func statusCode(err error) int {
	switch {
	case errors.Is(err, errs.ErrValueIsInvalid), errors.Is(err, errs.ErrValueIsRequired):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
