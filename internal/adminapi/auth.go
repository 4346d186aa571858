package adminapi

import (
	"github.com/labstack/echo/v4"

	"github.com/vinoteca/catalog/internal/domain"
	"github.com/vinoteca/catalog/internal/webserver"
)

type authResponse struct {
	User  *domain.Account `json:"user"`
	Token string          `json:"token"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

func registerAuthRoutes() {
	webserver.ApiPOST("/register", register)
	webserver.ApiPOST("/login", login)
	webserver.ApiPOST("/refresh", refresh, webserver.Auth()...)
	webserver.ApiPOST("/logout", logout, webserver.Auth()...)
	webserver.ApiGET("/user", currentUser, webserver.Auth()...)
}

func register(c echo.Context) error {
	fields, err := readFields(c)
	if err != nil {
		return handleValidationError(c, err)
	}
	acc, tok, err := GetAppContext(c).Identity().Register(c.Request().Context(), fields)
	if err != nil {
		return handleServiceError(c, err)
	}
	return ok(c, authResponse{User: acc, Token: tok.Plain})
}

func login(c echo.Context) error {
	fields, err := readFields(c)
	if err != nil {
		return handleValidationError(c, err)
	}
	acc, tok, err := GetAppContext(c).Identity().Login(c.Request().Context(), fields)
	if err != nil {
		return handleServiceError(c, err)
	}
	return ok(c, authResponse{User: acc, Token: tok.Plain})
}

func refresh(c echo.Context) error {
	id := GetAppContext(c).Identity()
	acc, err := id.ResolveCurrentAccount(c)
	if err != nil {
		return handleServiceError(c, err)
	}
	tok, err := id.Refresh(c.Request().Context(), acc)
	if err != nil {
		return handleServiceError(c, err)
	}
	return ok(c, tokenResponse{Token: tok.Plain})
}

func logout(c echo.Context) error {
	id := GetAppContext(c).Identity()
	acc, err := id.ResolveCurrentAccount(c)
	if err != nil {
		return handleServiceError(c, err)
	}
	if err := id.RevokeAllTokens(c.Request().Context(), acc); err != nil {
		return handleServiceError(c, err)
	}
	return ok(c, map[string]string{"message": "Session closed."})
}

func currentUser(c echo.Context) error {
	acc, err := GetAppContext(c).Identity().ResolveCurrentAccount(c)
	if err != nil {
		return handleServiceError(c, err)
	}
	return ok(c, acc)
}
