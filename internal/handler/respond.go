package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"storefront-backend/internal/apperror"
	"storefront-backend/internal/dto"
)

var statusByCode = map[string]int{
	apperror.EINVALID:    http.StatusBadRequest,
	apperror.ECONFLICT:   http.StatusConflict,
	apperror.ENOTFOUND:   http.StatusNotFound,
	apperror.EGATEWAY:    http.StatusBadGateway,
	apperror.ETRANSITION: http.StatusConflict,
	apperror.EREFUND:     http.StatusUnprocessableEntity,
	apperror.EREFUNDAMT:  http.StatusUnprocessableEntity,
	apperror.EDELIVERY:   http.StatusBadGateway,
}

// ok wraps a payload in the success envelope under the given key.
func ok(c echo.Context, key string, payload interface{}) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		key:       payload,
	})
}

// fail maps an error onto the error envelope and an HTTP status.
func fail(c echo.Context, err error) error {
	code := apperror.Code(err)

	status, okStatus := statusByCode[code]
	if !okStatus {
		status = http.StatusInternalServerError
	}

	body := dto.ErrorBody{
		Code:    code,
		Message: apperror.Message(err),
	}
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		body.Field = appErr.Field
	}

	return c.JSON(status, dto.ErrorResponse{
		Success: false,
		Error:   body,
	})
}

func badRequest(c echo.Context, message string) error {
	return fail(c, apperror.Invalid("", message))
}
