package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shopverse/internal/domain"
)

func (h *handlers) orderHistory(c *gin.Context) {
	orders, err := h.orders.OrderHistory(c.Request.Context(), sessionOf(c, domain.RoleUser))
	if err != nil {
		h.fail(c, "order history", err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *handlers) getOrder(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	order, err := h.orders.GetOrder(c.Request.Context(), sessionOf(c, domain.RoleUser), id)
	if err != nil {
		h.fail(c, "get order", err)
		return
	}
	c.JSON(http.StatusOK, order)
}
