package adminapi

import (
	"net/http"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/labstack/echo/v4"

	"github.com/vinoteca/catalog/internal/assets"
	"github.com/vinoteca/catalog/internal/domain"
	"github.com/vinoteca/catalog/internal/repository"
	"github.com/vinoteca/catalog/internal/webserver"
)

// productView is the wire shape of a product; Imagen is the public URL.
type productView struct {
	ID             int64     `json:"id" csv:"id"`
	Nombre         string    `json:"nombre" csv:"nombre"`
	Bodega         *string   `json:"bodega" csv:"bodega"`
	Descripcion    string    `json:"descripcion" csv:"descripcion"`
	Maridaje       string    `json:"maridaje" csv:"maridaje"`
	Precio         float64   `json:"precio" csv:"precio"`
	Graduacion     float64   `json:"graduacion" csv:"graduacion"`
	Ano            *int64    `json:"ano" csv:"ano"`
	Sabor          *string   `json:"sabor" csv:"sabor"`
	TipoID         int64     `json:"tipo_id" csv:"tipo_id"`
	DenominacionID int64     `json:"denominacion_id" csv:"denominacion_id"`
	Imagen         *string   `json:"imagen" csv:"imagen"`
	CreatedAt      time.Time `json:"created_at" csv:"-"`
	UpdatedAt      time.Time `json:"updated_at" csv:"-"`
}

func newProductView(p domain.Product, r *assets.URLResolver) productView {
	return productView{
		ID:             p.ID,
		Nombre:         p.Nombre,
		Bodega:         p.Bodega,
		Descripcion:    p.Descripcion,
		Maridaje:       p.Maridaje,
		Precio:         p.Precio,
		Graduacion:     p.Graduacion,
		Ano:            p.Ano,
		Sabor:          p.Sabor,
		TipoID:         p.TipoID,
		DenominacionID: p.DenominacionID,
		Imagen:         r.Resolve(p.Imagen),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

// registerProductRoutes registers product CRUD endpoints
func registerProductRoutes() {
	webserver.ApiGET("/producto", listProducts)
	webserver.ApiGET("/producto/export", exportProducts)
	webserver.ApiGET("/producto/:id", getProduct)
	webserver.ApiPOST("/producto", createProduct)
	webserver.ApiPUT("/producto/:id", updateProduct)
	webserver.ApiDELETE("/producto/:id", deleteProduct)
}

func listProducts(c echo.Context) error {
	req, err := parsePagination(c, true)
	if err != nil {
		return handleValidationError(c, err)
	}
	appCtx := GetAppContext(c)
	page, err := appCtx.Products().List(c.Request().Context(), req)
	if err != nil {
		return handleServiceError(c, err)
	}
	resolver := appCtx.Resolver()
	views := repository.Map(page, func(p domain.Product) productView {
		return newProductView(p, resolver)
	})
	return paged(c, views, views.Data)
}

func getProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	appCtx := GetAppContext(c)
	p, err := appCtx.Products().Get(c.Request().Context(), id)
	if err != nil {
		return handleServiceError(c, err)
	}
	return ok(c, newProductView(*p, appCtx.Resolver()))
}

func createProduct(c echo.Context) error {
	appCtx := GetAppContext(c)
	fields, err := readFields(c)
	if err != nil {
		return handleValidationError(c, err)
	}
	up, err := readUpload(c, appCtx.Assets().MaxBytes())
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_FILE", "Unable to read the uploaded file", err.Error())
	}
	p, err := appCtx.Products().Create(c.Request().Context(), fields, up)
	if err != nil {
		return handleServiceError(c, err)
	}
	return created(c, newProductView(*p, appCtx.Resolver()))
}

func updateProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	appCtx := GetAppContext(c)
	fields, err := readFields(c)
	if err != nil {
		return handleValidationError(c, err)
	}
	up, err := readUpload(c, appCtx.Assets().MaxBytes())
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_FILE", "Unable to read the uploaded file", err.Error())
	}
	p, err := appCtx.Products().Update(c.Request().Context(), id, fields, up)
	if err != nil {
		return handleServiceError(c, err)
	}
	return ok(c, newProductView(*p, appCtx.Resolver()))
}

func deleteProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	if err := GetAppContext(c).Products().Delete(c.Request().Context(), id); err != nil {
		return handleServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// exportProducts writes every product as CSV
func exportProducts(c echo.Context) error {
	appCtx := GetAppContext(c)
	page, err := appCtx.Products().List(c.Request().Context(), nil)
	if err != nil {
		return handleServiceError(c, err)
	}
	rows := make([]productView, 0, len(page.Data))
	for _, p := range page.Data {
		rows = append(rows, newProductView(p, appCtx.Resolver()))
	}
	data, err := gocsv.MarshalBytes(&rows)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "EXPORT_ERROR", "Failed to export products", err.Error())
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="productos.csv"`)
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", data)
}
