package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Marat1506/apple-admin/internal/api"
	"github.com/Marat1506/apple-admin/internal/http/render"
	"github.com/Marat1506/apple-admin/pkg/view"
)

type DashboardHandler struct {
	Render *render.Renderer
}

func NewDashboardHandler(r *render.Renderer) *DashboardHandler {
	return &DashboardHandler{Render: r}
}

func (h *DashboardHandler) Show(c *gin.Context) {
	cl, ok := apiClient(c)
	if !ok {
		return
	}

	page := view.DashboardPage{Base: basePage(c, "Dashboard", "dashboard")}

	stats, err := cl.Dashboard(c.Request.Context())
	if err != nil {
		if abortOnAuth(c, err) {
			return
		}
		page.Flash = errorFlash("Could not load dashboard stats from the storefront.")
		h.Render.HTML(c, http.StatusOK, "dashboard", page)
		return
	}

	page.TotalProducts = stats.TotalProducts
	page.TotalCategories = stats.TotalCategories
	page.TotalOrders = stats.TotalOrders
	page.TotalRevenue = view.Money(stats.TotalRevenue)

	for _, s := range api.OrderStatuses {
		if n := stats.OrdersByStatus[s]; n > 0 {
			page.ByStatus = append(page.ByStatus, view.StatusCount{
				Status:      s,
				StatusClass: view.StatusClass(s),
				Count:       n,
			})
		}
	}
	for _, o := range stats.RecentOrders {
		page.Recent = append(page.Recent, orderRow(o))
	}

	h.Render.HTML(c, http.StatusOK, "dashboard", page)
}
