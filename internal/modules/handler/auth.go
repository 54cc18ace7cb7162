package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangamhq/sangam/internal/middleware"
	"github.com/sangamhq/sangam/internal/modules/serializer"
	"github.com/sangamhq/sangam/internal/modules/service"
)

type AuthHandler struct {
	svc service.AuthService
}

func NewAuthHandler(s service.AuthService) *AuthHandler {
	return &AuthHandler{svc: s}
}

type RegisterReq struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Age      *int   `json:"age" binding:"omitempty,min=18,max=100"`
	Gender   string `json:"gender" binding:"omitempty,oneof=Male Female Other"`
	Phone    string `json:"phone"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	req := RegisterReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	out, err := h.svc.Register(c.Request.Context(), service.RegisterInput{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
		Age:      req.Age,
		Gender:   req.Gender,
		Phone:    req.Phone,
	})
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, serializer.Response{Data: out})
}

type LoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	req := LoginReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	out, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

// Me returns the identity behind the presented token. Useful for clients
// restoring a session.
func (h *AuthHandler) Me(c *gin.Context) {
	ident := middleware.IdentityFrom(c)
	if ident == nil {
		c.JSON(http.StatusUnauthorized, serializer.AuthErr(""))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: gin.H{
		"user_id": ident.UserID,
		"role":    ident.Role,
	}})
}
