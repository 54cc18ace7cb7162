package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sangamhq/sangam/internal/middleware"
	"github.com/sangamhq/sangam/internal/modules/serializer"
	"github.com/sangamhq/sangam/internal/modules/service"
)

type PaymentSettingsHandler struct {
	svc    service.PaymentSettingsService
	assets service.AssetService
	log    *zap.Logger
}

func NewPaymentSettingsHandler(s service.PaymentSettingsService, assets service.AssetService, log *zap.Logger) *PaymentSettingsHandler {
	return &PaymentSettingsHandler{svc: s, assets: assets, log: log}
}

// Active serves the payment destination the access-request form shows.
// Public: visitors see it before they have an account.
func (h *PaymentSettingsHandler) Active(c *gin.Context) {
	settings, err := h.svc.Active(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	if settings == nil {
		c.JSON(http.StatusNotFound, serializer.NotFoundErr("payment settings not configured"))
		return
	}

	qrURL := ""
	if settings.QRCodeKey != "" {
		if url, err := h.assets.URL(c.Request.Context(), settings.QRCodeKey); err == nil {
			qrURL = url
		} else {
			h.log.Warn("failed to presign qr code url", zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, serializer.Response{Data: gin.H{
		"upi_id":     settings.UPIID,
		"qr_code":    qrURL,
		"access_fee": settings.AccessFee,
		"updated_at": settings.UpdatedAt,
	}})
}

type UpdatePaymentSettingsReq struct {
	UPIID     string  `form:"upi_id" binding:"required"`
	AccessFee float64 `form:"access_fee" binding:"required,gt=0"`
}

func (h *PaymentSettingsHandler) Update(c *gin.Context) {
	ident := middleware.IdentityFrom(c)

	req := UpdatePaymentSettingsReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	qrKey := ""
	if fh, err := c.FormFile("qr_code"); err == nil && fh != nil {
		key, err := h.assets.UploadImage(c.Request.Context(), fh, "payment-qr")
		if err != nil {
			respondErr(c, err)
			return
		}
		qrKey = key
	}

	settings, err := h.svc.Update(c.Request.Context(), *ident, service.PaymentSettingsInput{
		UPIID:     req.UPIID,
		QRCodeKey: qrKey,
		AccessFee: req.AccessFee,
	})
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: settings})
}
