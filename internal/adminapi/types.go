package adminapi

import (
	"github.com/labstack/echo/v4"

	"github.com/vinoteca/catalog/internal/catalog"
	"github.com/vinoteca/catalog/internal/domain"
	"github.com/vinoteca/catalog/internal/webserver"
)

func registerTypeRoutes() {
	h := lookupRoutes[domain.ProductType]{
		label: "type",
		resource: func(c echo.Context) *catalog.Resource[domain.ProductType] {
			return GetAppContext(c).Types()
		},
	}
	webserver.ApiGET("/tipo", h.list)
	webserver.ApiGET("/tipo/:id", h.get)
	webserver.ApiPOST("/tipo", h.create)
	webserver.ApiPUT("/tipo/:id", h.update)
	webserver.ApiDELETE("/tipo/:id", h.delete)
}
