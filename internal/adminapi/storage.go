package adminapi

import (
	"io"
	"net/http"
	"path"

	"github.com/gabriel-vasile/mimetype"
	"github.com/labstack/echo/v4"

	"github.com/vinoteca/catalog/internal/assets"
	"github.com/vinoteca/catalog/internal/webserver"
)

func registerStorageRoutes() {
	webserver.GET("/storage/:ns/:name", serveAsset)
}

// serveAsset streams a stored image through the asset store.
func serveAsset(c echo.Context) error {
	store := GetAppContext(c).Assets()
	if c.Param("ns") != store.Namespace() {
		return fail(c, http.StatusNotFound, "IMAGE_NOT_FOUND", "Image not found", nil)
	}
	ref := assets.Ref(path.Join(store.Namespace(), c.Param("name")))
	rc, err := store.Open(c.Request().Context(), ref)
	if err != nil {
		return handleServiceError(c, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, store.MaxBytes()+1))
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORAGE_ERROR", "Image storage failed", "open")
	}
	c.Response().Header().Set("Cache-Control", "public, max-age=86400")
	return c.Blob(http.StatusOK, mimetype.Detect(data).String(), data)
}
