package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shopverse/internal/domain"
	"shopverse/internal/service/account"
)

type registerRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (h *handlers) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid JSON body")
		return
	}
	if req.Password != req.ConfirmPassword {
		badRequest(c, "passwords do not match")
		return
	}
	user, err := h.accounts.Register(c.Request.Context(), account.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.fail(c, "register", err)
		return
	}
	c.JSON(http.StatusCreated, viewOf(user, domain.RoleUser))
}

func (h *handlers) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid JSON body")
		return
	}
	role, err := domain.ParseRole(req.Role)
	if err != nil {
		h.fail(c, "login", err)
		return
	}
	identity, err := h.accounts.Login(c.Request.Context(), role, req.Email, req.Password)
	if err != nil {
		h.fail(c, "login", err)
		return
	}
	c.JSON(http.StatusOK, viewOf(identity, role))
}

func (h *handlers) logout(c *gin.Context) {
	role, err := domain.ParseRole(c.Query("role"))
	if err != nil {
		h.fail(c, "logout", err)
		return
	}
	if err := h.accounts.ClearSession(c.Request.Context(), role); err != nil {
		h.fail(c, "logout", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) session(c *gin.Context) {
	ctx := c.Request.Context()
	user, err := h.accounts.CurrentSession(ctx, domain.RoleUser)
	if err != nil {
		h.fail(c, "session", err)
		return
	}
	admin, err := h.accounts.CurrentSession(ctx, domain.RoleAdmin)
	if err != nil {
		h.fail(c, "session", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user":  viewOf(user, domain.RoleUser),
		"admin": viewOf(admin, domain.RoleAdmin),
	})
}
