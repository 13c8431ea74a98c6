package httperr

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func BadGateway(c *gin.Context, code, message string) {
	Write(c, http.StatusBadGateway, code, message)
}

// IsUniqueViolation recognises duplicate-key errors from PostgreSQL (23505)
// and SQLite.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// FromError maps use-case errors onto responses: business codes become 400
// (404 for *_not_found), upstream failures 502, missing rows 404, duplicates
// 409, anything else 500.
func FromError(c *gin.Context, err error, fallbackCode string) {
	var up UpstreamError
	if errors.As(err, &up) {
		BadGateway(c, up.Code, up.Error())
		return
	}
	if code, ok := AsBusiness(err); ok {
		if strings.HasSuffix(code, "_not_found") {
			NotFound(c, code, code)
			return
		}
		BadRequest(c, code, code)
		return
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		NotFound(c, "not_found", "resource not found")
	case IsUniqueViolation(err):
		Conflict(c, "duplicate", "resource already exists")
	default:
		Internal(c, fallbackCode, "internal error")
	}
}
