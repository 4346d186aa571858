package adminapi

import (
	"github.com/labstack/echo/v4"

	"github.com/vinoteca/catalog/internal/catalog"
	"github.com/vinoteca/catalog/internal/domain"
	"github.com/vinoteca/catalog/internal/webserver"
)

// registerDenominationRoutes registers designation of origin CRUD routes
func registerDenominationRoutes() {
	h := lookupRoutes[domain.Denomination]{
		label: "denomination",
		resource: func(c echo.Context) *catalog.Resource[domain.Denomination] {
			return GetAppContext(c).Denominations()
		},
	}
	webserver.ApiGET("/denominacion", h.list)
	webserver.ApiGET("/denominacion/:id", h.get)
	webserver.ApiPOST("/denominacion", h.create)
	webserver.ApiPUT("/denominacion/:id", h.update)
	webserver.ApiDELETE("/denominacion/:id", h.delete)
}
