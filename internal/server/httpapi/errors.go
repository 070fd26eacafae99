package httpapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dmitrijs2005/authgate/internal/common"
)

type errorResponse struct {
	Error string `json:"error"`
}

// httpError is the single place where internal errors become HTTP
// responses. Credential failures stay undifferentiated here: the split
// between unknown email and wrong secret is logged at the service layer
// and never reaches the wire.
func (s *Server) httpError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, common.ErrMissingCredential),
		errors.Is(err, common.ErrMalformedCredential):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid authorization data"})
	case errors.Is(err, common.ErrValidation):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, common.ErrAuthenticationFailed):
		return c.JSON(http.StatusUnauthorized, errorResponse{Error: "invalid email or password"})
	case errors.Is(err, common.ErrTokenExpired):
		return c.JSON(http.StatusUnauthorized, errorResponse{Error: "session expired, please log in again"})
	case errors.Is(err, common.ErrTokenInvalid):
		return c.JSON(http.StatusUnauthorized, errorResponse{Error: "session invalid, please log in again"})
	case errors.Is(err, common.ErrUserNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{Error: "user not found"})
	case errors.Is(err, common.ErrStoreUnavailable):
		return c.JSON(http.StatusServiceUnavailable, errorResponse{Error: "service temporarily unavailable"})
	default:
		s.logger.Error(c.Request().Context(), "unhandled error", "error", err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}
