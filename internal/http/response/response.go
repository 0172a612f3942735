package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/storynest-backend/internal/pkg/apperr"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}

// RespondMapped translates service-layer errors to the API surface:
// not-found → 404, ownership → 403, bad input → 400, upstream
// generation failures → 502 with the failure kind as the code, anything
// else → 500.
func RespondMapped(c *gin.Context, err error) {
	if genErr, ok := apperr.AsGeneration(err); ok {
		RespondError(c, http.StatusBadGateway, "generation_"+string(genErr.Kind), err)
		return
	}
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		RespondError(c, http.StatusNotFound, "not_found", err)
	case errors.Is(err, apperr.ErrUnauthorized):
		RespondError(c, http.StatusForbidden, "forbidden", err)
	case errors.Is(err, apperr.ErrInvalidArgument):
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
	default:
		RespondError(c, http.StatusInternalServerError, "internal_error", err)
	}
}
