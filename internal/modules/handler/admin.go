package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sangamhq/sangam/internal/middleware"
	"github.com/sangamhq/sangam/internal/modules/serializer"
	"github.com/sangamhq/sangam/internal/modules/service"
)

type AdminHandler struct {
	svc service.AdminService
}

func NewAdminHandler(s service.AdminService) *AdminHandler {
	return &AdminHandler{svc: s}
}

func (h *AdminHandler) Stats(c *gin.Context) {
	ident := middleware.IdentityFrom(c)

	stats, err := h.svc.Stats(c.Request.Context(), *ident)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: stats})
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	ident := middleware.IdentityFrom(c)

	users, err := h.svc.ListUsers(c.Request.Context(), *ident)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: users})
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	ident := middleware.IdentityFrom(c)

	if err := h.svc.DeleteUser(c.Request.Context(), *ident, id); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Msg: "user deleted"})
}
