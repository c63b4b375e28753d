package delivery

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/x-xyz/auctiond/domain"
)

type JsonResponseStatus string

const (
	JsonResponseStatusSuccess JsonResponseStatus = "success"
	JsonResponseStatusFail    JsonResponseStatus = "fail"
)

type JsonResponse struct {
	Data   interface{}        `json:"data"`
	Status JsonResponseStatus `json:"status"`
}

var errStatus = []struct {
	err    error
	status int
}{
	{domain.ErrNotFound, http.StatusNotFound},
	{domain.ErrNoAuction, http.StatusNotFound},
	{domain.ErrNoSnapshot, http.StatusNotFound},
	{domain.ErrTokenNotFound, http.StatusNotFound},
	{domain.ErrBadParamInput, http.StatusBadRequest},
	{domain.ErrInvalidAddress, http.StatusBadRequest},
	{domain.ErrInvalidAmount, http.StatusBadRequest},
	{domain.ErrInvalidPriceOrdering, http.StatusBadRequest},
	{domain.ErrNoWallet, http.StatusForbidden},
	{domain.ErrWrongChain, http.StatusForbidden},
	{domain.ErrSignerUnavailable, http.StatusForbidden},
	{domain.ErrNotPermitted, http.StatusForbidden},
	{domain.ErrWorkflowBusy, http.StatusConflict},
	{domain.ErrCallReverted, http.StatusUnprocessableEntity},
	{domain.ErrUserRejected, http.StatusUnprocessableEntity},
	{domain.ErrAddressNotFound, http.StatusUnprocessableEntity},
	{domain.ErrCapabilityUnavailable, http.StatusUnprocessableEntity},
}

// StatusOf maps a domain error to an http status, defaulting to fallback
func StatusOf(err error, fallback int) int {
	for _, e := range errStatus {
		if errors.Is(err, e.err) {
			return e.status
		}
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return http.StatusBadRequest
	}
	return fallback
}

func MakeJsonResp(c echo.Context, status int, data interface{}) error {
	if err, ok := data.(error); ok {
		status = StatusOf(err, status)
		data = err.Error()
	}

	if status >= 400 {
		return c.JSON(status, JsonResponse{data, JsonResponseStatusFail})
	}

	if status >= 200 && status < 300 {
		return c.JSON(status, JsonResponse{data, JsonResponseStatusSuccess})
	}

	return c.JSON(status, data)
}
