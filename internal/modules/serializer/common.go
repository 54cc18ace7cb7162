package serializer

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var log = zap.NewNop()

// SetLogger wires the package logger so server-side errors carried by
// responses are also recorded.
func SetLogger(l *zap.Logger) {
	if l != nil {
		log = l
	}
}

// Response
type Response struct {
	Code  int         `json:"code"`
	Data  interface{} `json:"data,omitempty"`
	Msg   string      `json:"msg"`
	Error string      `json:"error,omitempty"`
}

// TrackedErrorResponse
type TrackedErrorResponse struct {
	Response
	TraceID string `json:"trace_id"`
}

// Err
func Err(errCode int, msg string, err error) Response {
	res := Response{
		Code: errCode,
		Msg:  msg,
	}
	// development mode, show error detail
	if err != nil && gin.Mode() != gin.ReleaseMode {
		res.Error = fmt.Sprintf("%+v", err)
	}
	return res
}

// DBErr
func DBErr(msg string, err error) Response {
	if msg == "" {
		msg = "database error"
	}
	if err != nil {
		log.Error("database error", zap.Error(err))
	}
	return Err(http.StatusInternalServerError, msg, err)
}

// ParamErr
func ParamErr(msg string, err error) Response {
	if msg == "" {
		msg = "parameter error"
	}
	return Err(http.StatusBadRequest, msg, err)
}

// AuthErr
func AuthErr(msg string) Response {
	if msg == "" {
		msg = "authentication error"
	}
	return Err(http.StatusUnauthorized, msg, nil)
}

// ForbiddenErr
func ForbiddenErr(msg string) Response {
	if msg == "" {
		msg = "forbidden"
	}
	return Err(http.StatusForbidden, msg, nil)
}

// NotFoundErr
func NotFoundErr(msg string) Response {
	if msg == "" {
		msg = "not found"
	}
	return Err(http.StatusNotFound, msg, nil)
}

// ConflictErr
func ConflictErr(msg string, err error) Response {
	if msg == "" {
		msg = "conflict"
	}
	return Err(http.StatusConflict, msg, err)
}
