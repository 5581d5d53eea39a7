package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shopverse/internal/domain"
)

type addToCartRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

type updateCartItemRequest struct {
	Delta int `json:"delta"`
}

func (h *handlers) getCart(c *gin.Context) {
	cart, err := h.cart.Cart(c.Request.Context(), sessionOf(c, domain.RoleUser))
	if err != nil {
		h.fail(c, "get cart", err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *handlers) addToCart(c *gin.Context) {
	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid JSON body")
		return
	}
	cart, err := h.cart.AddToCart(c.Request.Context(), sessionOf(c, domain.RoleUser), req.ProductID, req.Quantity)
	if err != nil {
		h.fail(c, "add to cart", err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *handlers) updateCartItem(c *gin.Context) {
	id, ok := idParam(c, "productId")
	if !ok {
		return
	}
	var req updateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid JSON body")
		return
	}
	cart, err := h.cart.UpdateCartQuantity(c.Request.Context(), sessionOf(c, domain.RoleUser), id, req.Delta)
	if err != nil {
		h.fail(c, "update cart item", err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *handlers) removeCartItem(c *gin.Context) {
	id, ok := idParam(c, "productId")
	if !ok {
		return
	}
	cart, err := h.cart.RemoveFromCart(c.Request.Context(), sessionOf(c, domain.RoleUser), id)
	if err != nil {
		h.fail(c, "remove cart item", err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *handlers) checkout(c *gin.Context) {
	var ship domain.ShippingDetails
	if err := c.ShouldBindJSON(&ship); err != nil {
		badRequest(c, "invalid JSON body")
		return
	}
	order, err := h.cart.Checkout(c.Request.Context(), sessionOf(c, domain.RoleUser), ship)
	if err != nil {
		h.fail(c, "checkout", err)
		return
	}
	c.JSON(http.StatusCreated, order)
}
