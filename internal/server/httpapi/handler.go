package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dmitrijs2005/authgate/internal/common"
	"github.com/dmitrijs2005/authgate/internal/server/models"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	Data *models.PublicUser `json:"data"`
	JWT  string             `json:"jwt"`
}

type tokenResponse struct {
	JWT string `json:"jwt"`
}

func (s *Server) handleRegister(c echo.Context) error {
	ctx := c.Request().Context()

	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return s.httpError(c, common.ErrValidation)
	}

	user, err := s.users.Register(ctx, req.Email, req.Password)
	if err != nil {
		return s.httpError(c, err)
	}

	tok, err := s.codec.Mint(user.ID)
	if err != nil {
		return s.httpError(c, err)
	}

	s.logger.Info(ctx, "user registered", "user_id", user.ID)
	return c.JSON(http.StatusCreated, userResponse{Data: user.Public(), JWT: tok})
}

func (s *Server) handleLogin(c echo.Context) error {
	ac, ok := getAuthContext(c)
	if !ok || ac.Token == "" {
		s.logger.Error(c.Request().Context(), "login handler reached without a token")
		return s.httpError(c, common.ErrInternalState)
	}

	s.logger.Info(c.Request().Context(), "user logged in", "user_id", ac.SubjectID)
	return c.JSON(http.StatusOK, tokenResponse{JWT: ac.Token})
}

func (s *Server) handleGetUser(c echo.Context) error {
	ctx := c.Request().Context()

	ac, ok := getAuthContext(c)
	if !ok || ac.User == nil {
		s.logger.Error(ctx, "user handler reached without an authenticated subject")
		return s.httpError(c, common.ErrInternalState)
	}

	view, err := s.users.ResolveView(ctx, ac.SubjectID, c.Param("id"), ac.User)
	if err != nil {
		return s.httpError(c, err)
	}

	return c.JSON(http.StatusOK, userResponse{Data: view, JWT: ac.Token})
}

func (s *Server) handleHealthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "OK"})
}
