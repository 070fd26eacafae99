package httpapi

import (
	"github.com/labstack/echo/v4"

	"github.com/dmitrijs2005/authgate/internal/common"
	"github.com/dmitrijs2005/authgate/internal/server/auth"
	"github.com/dmitrijs2005/authgate/internal/server/models"
)

const authContextKey = "authgate.auth"

// AuthContext carries the outcome of the authentication middleware to
// downstream handlers: the verified subject, the live user record, and
// the token to return with the response.
type AuthContext struct {
	SubjectID string
	User      *models.User
	Token     string
}

func setAuthContext(c echo.Context, ac *AuthContext) {
	c.Set(authContextKey, ac)
}

func getAuthContext(c echo.Context) (*AuthContext, bool) {
	ac, ok := c.Get(authContextKey).(*AuthContext)
	return ac, ok
}

// verifyBasicCredential authenticates the request by the Basic
// credential in the Authorization header and stores the matched user
// in the request context.
func (s *Server) verifyBasicCredential(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if header == "" {
			return s.httpError(c, common.ErrMissingCredential)
		}

		email, secret, err := auth.DecodeBasic(header)
		if err != nil {
			return s.httpError(c, err)
		}

		user, err := s.users.Login(ctx, email, secret)
		if err != nil {
			return s.httpError(c, err)
		}

		setAuthContext(c, &AuthContext{SubjectID: user.ID, User: user})
		return next(c)
	}
}

// issueToken mints a session token for the user authenticated earlier
// in the chain. It must run after verifyBasicCredential.
func (s *Server) issueToken(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ac, ok := getAuthContext(c)
		if !ok || ac.User == nil {
			s.logger.Error(c.Request().Context(), "token requested without an authenticated user")
			return s.httpError(c, common.ErrInternalState)
		}

		tok, err := s.codec.Mint(ac.User.ID)
		if err != nil {
			return s.httpError(c, err)
		}

		ac.Token = tok
		return next(c)
	}
}

// resolveToken authenticates the request by the Bearer token in the
// Authorization header, re-resolves the subject to a live user record
// and mints a fresh token so an active session keeps sliding forward.
func (s *Server) resolveToken(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if header == "" {
			return s.httpError(c, common.ErrMissingCredential)
		}

		subjectID, err := s.codec.Verify(auth.ExtractBearer(header))
		if err != nil {
			return s.httpError(c, err)
		}

		user, err := s.users.ResolveSubject(ctx, subjectID)
		if err != nil {
			return s.httpError(c, err)
		}

		tok, err := s.codec.Mint(user.ID)
		if err != nil {
			return s.httpError(c, err)
		}

		setAuthContext(c, &AuthContext{SubjectID: user.ID, User: user, Token: tok})
		return next(c)
	}
}
