package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sangamhq/sangam/internal/middleware"
	"github.com/sangamhq/sangam/internal/modules/serializer"
	"github.com/sangamhq/sangam/internal/modules/service"
)

type InquiryHandler struct {
	svc service.InquiryService
}

func NewInquiryHandler(s service.InquiryService) *InquiryHandler {
	return &InquiryHandler{svc: s}
}

type SubmitInquiryReq struct {
	UserName  string `json:"user_name" binding:"required"`
	UserEmail string `json:"user_email" binding:"required,email"`
	UserPhone string `json:"user_phone" binding:"required"`
	Message   string `json:"message" binding:"required"`
}

func (h *InquiryHandler) Submit(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	ident := middleware.IdentityFrom(c)

	req := SubmitInquiryReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	inquiry, err := h.svc.Submit(c.Request.Context(), service.SubmitInquiryInput{
		User:      *ident,
		ProfileID: id,
		UserName:  req.UserName,
		UserEmail: req.UserEmail,
		UserPhone: req.UserPhone,
		Message:   req.Message,
	})
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, serializer.Response{Data: inquiry, Msg: "inquiry submitted"})
}

func (h *InquiryHandler) ListOwn(c *gin.Context) {
	ident := middleware.IdentityFrom(c)

	inquiries, err := h.svc.ListOwn(c.Request.Context(), ident.UserID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: inquiries})
}

func (h *InquiryHandler) ListAll(c *gin.Context) {
	ident := middleware.IdentityFrom(c)

	inquiries, err := h.svc.ListAll(c.Request.Context(), *ident)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: inquiries})
}

type UpdateInquiryReq struct {
	Status     string `json:"status" binding:"omitempty,oneof=pending contacted completed rejected"`
	AdminNotes string `json:"admin_notes"`
	IsRead     *bool  `json:"is_read"`
}

func (h *InquiryHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	ident := middleware.IdentityFrom(c)

	req := UpdateInquiryReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	inquiry, err := h.svc.Update(c.Request.Context(), id, *ident, service.InquiryUpdateInput{
		Status:     req.Status,
		AdminNotes: req.AdminNotes,
		IsRead:     req.IsRead,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: inquiry})
}

func (h *InquiryHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	ident := middleware.IdentityFrom(c)

	if err := h.svc.Delete(c.Request.Context(), id, *ident); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Msg: "inquiry deleted"})
}
