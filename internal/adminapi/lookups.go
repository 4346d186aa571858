package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vinoteca/catalog/internal/catalog"
)

// lookupRoutes serves the plain name/description catalog tables.
type lookupRoutes[T any] struct {
	label    string
	resource func(c echo.Context) *catalog.Resource[T]
}

func (h lookupRoutes[T]) list(c echo.Context) error {
	req, err := parsePagination(c, false)
	if err != nil {
		return handleValidationError(c, err)
	}
	page, err := h.resource(c).List(c.Request().Context(), req)
	if err != nil {
		return handleServiceError(c, err)
	}
	if req == nil {
		return ok(c, page.Data)
	}
	return paged(c, page, page.Data)
}

func (h lookupRoutes[T]) get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid "+h.label+" ID", nil)
	}
	rec, err := h.resource(c).Get(c.Request().Context(), id)
	if err != nil {
		return handleServiceError(c, err)
	}
	return ok(c, rec)
}

func (h lookupRoutes[T]) create(c echo.Context) error {
	fields, err := readFields(c)
	if err != nil {
		return handleValidationError(c, err)
	}
	rec, err := h.resource(c).Create(c.Request().Context(), fields)
	if err != nil {
		return handleServiceError(c, err)
	}
	return created(c, rec)
}

func (h lookupRoutes[T]) update(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid "+h.label+" ID", nil)
	}
	fields, err := readFields(c)
	if err != nil {
		return handleValidationError(c, err)
	}
	rec, err := h.resource(c).Update(c.Request().Context(), id, fields)
	if err != nil {
		return handleServiceError(c, err)
	}
	return ok(c, rec)
}

func (h lookupRoutes[T]) delete(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid "+h.label+" ID", nil)
	}
	if err := h.resource(c).Delete(c.Request().Context(), id); err != nil {
		return handleServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
