package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yogswara/gearzone/internal/application"
	"github.com/yogswara/gearzone/pkg/response"
)

// OrderHandler renders order history read models. Orders are written by the
// checkout flow, never here.
type OrderHandler struct {
	Orders *application.OrderService
}

func NewOrderHandler(orders *application.OrderService) *OrderHandler {
	return &OrderHandler{Orders: orders}
}

// List GET /api/orders
func (h *OrderHandler) List(c *gin.Context) {
	uid := c.GetString("userID")
	orders, err := h.Orders.History(c.Request.Context(), uid)
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "failed to load orders", nil)
		return
	}
	out := make([]gin.H, 0, len(orders))
	for _, o := range orders {
		out = append(out, gin.H{
			"order_number": o.OrderNumber,
			"order_total":  o.OrderTotal,
			"tax":          o.Tax,
			"status":       o.Status,
			"created_at":   o.CreatedAt,
		})
	}
	response.Success(c, http.StatusOK, out, "orders", nil)
}

// Detail GET /api/orders/:order_number
func (h *OrderHandler) Detail(c *gin.Context) {
	uid := c.GetString("userID")
	d, err := h.Orders.Detail(c.Request.Context(), uid, c.Param("order_number"))
	if err != nil {
		if errors.Is(err, application.ErrOrderNotFound) {
			response.Error[any](c, http.StatusNotFound, "order not found", nil)
			return
		}
		response.Error[any](c, http.StatusInternalServerError, "failed to load order", nil)
		return
	}

	products := make([]gin.H, 0, len(d.Products))
	for _, p := range d.Products {
		products = append(products, gin.H{
			"product_name":  p.ProductName,
			"product_price": p.ProductPrice,
			"quantity":      p.Quantity,
		})
	}
	response.Success(c, http.StatusOK, gin.H{
		"order": gin.H{
			"order_number": d.Order.OrderNumber,
			"order_total":  d.Order.OrderTotal,
			"tax":          d.Order.Tax,
			"status":       d.Order.Status,
			"created_at":   d.Order.CreatedAt,
		},
		"order_detail": products,
		"subtotal":     d.Subtotal,
	}, "order detail", nil)
}
