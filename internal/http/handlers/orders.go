package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Marat1506/apple-admin/internal/api"
	"github.com/Marat1506/apple-admin/internal/http/flash"
	"github.com/Marat1506/apple-admin/internal/http/middleware"
	"github.com/Marat1506/apple-admin/internal/http/render"
	"github.com/Marat1506/apple-admin/internal/shared/apperr"
	"github.com/Marat1506/apple-admin/pkg/view"
)

type OrdersHandler struct {
	Flash  *flash.Codec
	Render *render.Renderer
}

func NewOrdersHandler(f *flash.Codec, r *render.Renderer) *OrdersHandler {
	return &OrdersHandler{Flash: f, Render: r}
}

func (h *OrdersHandler) List(c *gin.Context) {
	cl, ok := apiClient(c)
	if !ok {
		return
	}

	filter := strings.TrimSpace(c.Query("status"))
	if !validStatus(filter) {
		filter = ""
	}

	page := view.OrdersPage{
		Base:         basePage(c, "Orders", "orders"),
		StatusFilter: filter,
		Statuses:     api.OrderStatuses,
	}

	orders, err := cl.ListOrders(c.Request.Context())
	if err != nil {
		if abortOnAuth(c, err) {
			return
		}
		page.Flash = errorFlash("Could not load orders from the storefront.")
		h.Render.HTML(c, http.StatusOK, "orders_list", page)
		return
	}

	for _, o := range orders {
		if filter != "" && o.Status != filter {
			continue
		}
		page.Rows = append(page.Rows, orderRow(o))
	}

	h.Render.HTML(c, http.StatusOK, "orders_list", page)
}

func (h *OrdersHandler) Detail(c *gin.Context) {
	cl, ok := apiClient(c)
	if !ok {
		return
	}

	o, err := cl.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		if abortOnAuth(c, err) {
			return
		}
		if errors.Is(err, api.ErrNotFound) {
			middleware.Fail(c, apperr.NotFoundErr("No such order."))
			return
		}
		render.RedirectWithFlash(c, h.Flash, "/orders", view.FlashError, "Could not load the order.")
		return
	}

	page := view.OrderDetailPage{
		Base:           basePage(c, "Order "+view.ShortID(o.ID), "orders"),
		ID:             o.ID,
		ShortID:        view.ShortID(o.ID),
		Customer:       o.User.Name,
		Email:          o.User.Email,
		Status:         o.Status,
		StatusClass:    view.StatusClass(o.Status),
		Total:          view.Money(o.Total),
		Placed:         view.FormatDateTime(o.CreatedAt),
		ShippingMethod: o.ShippingMethod,
		NextStatuses:   api.NextStatuses(o.Status),
	}
	page.ShippingAddress = addressLines(o.ShippingAddress)
	for _, it := range o.Items {
		page.Items = append(page.Items, view.OrderItemRow{
			Name:     it.Name,
			Variant:  it.Variant,
			Unit:     view.Money(it.Price),
			Quantity: it.Quantity,
			Line:     view.Money(it.Price * float64(it.Quantity)),
		})
	}

	h.Render.HTML(c, http.StatusOK, "order_detail", page)
}

func (h *OrdersHandler) UpdateStatus(c *gin.Context) {
	cl, ok := apiClient(c)
	if !ok {
		return
	}
	id := c.Param("id")
	next := strings.TrimSpace(c.PostForm("status"))

	o, err := cl.GetOrder(c.Request.Context(), id)
	if err != nil {
		if abortOnAuth(c, err) {
			return
		}
		if errors.Is(err, api.ErrNotFound) {
			middleware.Fail(c, apperr.NotFoundErr("No such order."))
			return
		}
		render.RedirectWithFlash(c, h.Flash, "/orders", view.FlashError, "Could not load the order.")
		return
	}

	if !api.CanTransition(o.Status, next) {
		render.RedirectWithFlash(c, h.Flash, "/orders/"+id, view.FlashError,
			"An order cannot go from "+o.Status+" to "+next+".")
		return
	}

	if _, err := cl.UpdateOrderStatus(c.Request.Context(), id, next); err != nil {
		if abortOnAuth(c, err) {
			return
		}
		render.RedirectWithFlash(c, h.Flash, "/orders/"+id, view.FlashError,
			apiMessage(err, "The storefront rejected the status change."))
		return
	}

	render.RedirectWithFlash(c, h.Flash, "/orders/"+id, view.FlashSuccess, "Order marked "+next+".")
}

func orderRow(o api.Order) view.OrderRow {
	return view.OrderRow{
		ID:          o.ID,
		ShortID:     view.ShortID(o.ID),
		Customer:    o.User.Name,
		Email:       o.User.Email,
		Status:      o.Status,
		StatusClass: view.StatusClass(o.Status),
		Total:       view.Money(o.Total),
		Placed:      view.FormatDateTime(o.CreatedAt),
	}
}

func validStatus(s string) bool {
	if s == "" {
		return true
	}
	for _, st := range api.OrderStatuses {
		if s == st {
			return true
		}
	}
	return false
}

func addressLines(a *api.ShippingAddress) []string {
	if a == nil {
		return nil
	}
	var lines []string
	for _, s := range []string{a.FullName, a.Phone, a.Address, a.City, a.ZIP, a.Country} {
		if s = strings.TrimSpace(s); s != "" {
			lines = append(lines, s)
		}
	}
	return lines
}
