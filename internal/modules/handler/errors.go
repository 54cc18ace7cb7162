package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangamhq/sangam/internal/modules/serializer"
	"github.com/sangamhq/sangam/internal/modules/service"
)

// respondErr maps service errors onto HTTP responses in one place so every
// handler reports the same way.
func respondErr(c *gin.Context, err error) {
	var vErr *service.ValidationError

	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, serializer.ParamErr(vErr.Error(), nil))

	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, serializer.AuthErr(err.Error()))

	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, serializer.ForbiddenErr(""))

	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrProfileNotFound),
		errors.Is(err, service.ErrClaimNotFound),
		errors.Is(err, service.ErrInquiryNotFound):
		c.JSON(http.StatusNotFound, serializer.NotFoundErr(err.Error()))

	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrDuplicateUTR),
		errors.Is(err, service.ErrClaimPending),
		errors.Is(err, service.ErrClaimApproved),
		errors.Is(err, service.ErrClaimDecided):
		c.JSON(http.StatusConflict, serializer.ConflictErr(err.Error(), nil))

	default:
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
	}
}
