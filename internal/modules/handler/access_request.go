package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sangamhq/sangam/internal/middleware"
	"github.com/sangamhq/sangam/internal/modules/serializer"
	"github.com/sangamhq/sangam/internal/modules/service"
)

type AccessRequestHandler struct {
	access service.AccessService
	assets service.AssetService
	log    *zap.Logger
}

func NewAccessRequestHandler(access service.AccessService, assets service.AssetService, log *zap.Logger) *AccessRequestHandler {
	return &AccessRequestHandler{access: access, assets: assets, log: log}
}

// SubmitAccessRequestReq is the multipart payment-claim form. The proof
// screenshot rides along as the "payment_proof" file part.
type SubmitAccessRequestReq struct {
	UserName      string  `form:"user_name" binding:"required"`
	UserEmail     string  `form:"user_email" binding:"required,email"`
	UserPhone     string  `form:"user_phone" binding:"required"`
	AmountPaid    float64 `form:"amount_paid" binding:"required,gt=0"`
	UTRNumber     string  `form:"utr_number" binding:"required,utr"`
	PaymentMethod string  `form:"payment_method" binding:"required,oneof=UPI 'QR Code'"`
}

func (h *AccessRequestHandler) Submit(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	ident := middleware.IdentityFrom(c)

	req := SubmitAccessRequestReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	proofKey := ""
	if fh, err := c.FormFile("payment_proof"); err == nil && fh != nil {
		key, err := h.assets.UploadImage(c.Request.Context(), fh, "payment-proofs")
		if err != nil {
			respondErr(c, err)
			return
		}
		proofKey = key
	}

	claim, err := h.access.Submit(c.Request.Context(), service.SubmitClaimInput{
		Viewer:      *ident,
		ProfileID:   id,
		ViewerName:  req.UserName,
		ViewerEmail: req.UserEmail,
		ViewerPhone: req.UserPhone,
		Amount:      req.AmountPaid,
		UTRNumber:   req.UTRNumber,
		Channel:     req.PaymentMethod,
		ProofKey:    proofKey,
	})
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, serializer.Response{
		Data: serializer.BuildAccessClaim(claim, h.proofURL(c, claim.ProofKey)),
		Msg:  "access request submitted",
	})
}

// CheckAccess tells the caller whether the gate is open for them on one
// profile, and returns the approved claim when it is.
func (h *AccessRequestHandler) CheckAccess(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	ident := middleware.IdentityFrom(c)

	granted, claim, err := h.access.CheckAccess(c.Request.Context(), ident.UserID, id)
	if err != nil {
		respondErr(c, err)
		return
	}

	data := gin.H{"has_access": granted}
	if claim != nil {
		data["request"] = serializer.BuildAccessClaim(claim, "")
	}
	c.JSON(http.StatusOK, serializer.Response{Data: data})
}

func (h *AccessRequestHandler) ListOwn(c *gin.Context) {
	ident := middleware.IdentityFrom(c)

	claims, err := h.access.ListForViewer(c.Request.Context(), ident.UserID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: serializer.BuildAccessClaimList(claims, nil)})
}

func (h *AccessRequestHandler) ListAll(c *gin.Context) {
	claims, err := h.access.ListAll(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: serializer.BuildAccessClaimList(claims, func(key string) string {
		return h.proofURL(c, key)
	})})
}

type DecideAccessRequestReq struct {
	Approve    *bool  `json:"approve" binding:"required"`
	AdminNotes string `json:"admin_notes"`
}

// Decide settles a pending request. Deciding twice is a conflict, not an
// overwrite.
func (h *AccessRequestHandler) Decide(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	ident := middleware.IdentityFrom(c)

	req := DecideAccessRequestReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	claim, err := h.access.Decide(c.Request.Context(), id, *req.Approve, *ident, req.AdminNotes)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{
		Data: serializer.BuildAccessClaim(claim, h.proofURL(c, claim.ProofKey)),
	})
}

func (h *AccessRequestHandler) proofURL(c *gin.Context, key string) string {
	url, err := h.assets.URL(c.Request.Context(), key)
	if err != nil {
		h.log.Warn("failed to presign proof url", zap.Error(err))
		return ""
	}
	return url
}
