package httpserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"shopverse/internal/domain"
	"shopverse/internal/service/catalog"
)

func (h *handlers) listProducts(c *gin.Context) {
	f := domain.ProductFilter{
		Category: strings.TrimSpace(c.Query("category")),
		Search:   strings.TrimSpace(c.Query("search")),
	}
	if strings.EqualFold(f.Category, "all") {
		f.Category = ""
	}
	products, err := h.catalog.ListProducts(c.Request.Context(), f)
	if err != nil {
		h.fail(c, "list products", err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *handlers) getProduct(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	p, err := h.catalog.GetProduct(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "get product", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *handlers) categories(c *gin.Context) {
	cats, err := h.catalog.Categories(c.Request.Context())
	if err != nil {
		h.fail(c, "categories", err)
		return
	}
	c.JSON(http.StatusOK, cats)
}

func (h *handlers) adminProducts(c *gin.Context) {
	admin := sessionOf(c, domain.RoleAdmin)
	products, err := h.catalog.AdminProducts(c.Request.Context(), *admin)
	if err != nil {
		h.fail(c, "admin products", err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *handlers) createProduct(c *gin.Context) {
	var in catalog.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid JSON body")
		return
	}
	admin := sessionOf(c, domain.RoleAdmin)
	p, err := h.catalog.CreateProduct(c.Request.Context(), *admin, in)
	if err != nil {
		h.fail(c, "create product", err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *handlers) updateProduct(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var patch catalog.ProductPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, "invalid JSON body")
		return
	}
	admin := sessionOf(c, domain.RoleAdmin)
	p, err := h.catalog.UpdateProduct(c.Request.Context(), *admin, id, patch)
	if err != nil {
		h.fail(c, "update product", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *handlers) deleteProduct(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	admin := sessionOf(c, domain.RoleAdmin)
	if err := h.catalog.DeleteProduct(c.Request.Context(), *admin, id); err != nil {
		h.fail(c, "delete product", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) adminStats(c *gin.Context) {
	admin := sessionOf(c, domain.RoleAdmin)
	stats, err := h.catalog.AdminStats(c.Request.Context(), *admin)
	if err != nil {
		h.fail(c, "admin stats", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
