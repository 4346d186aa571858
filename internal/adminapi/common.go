package adminapi

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/vinoteca/catalog/internal/app"
	"github.com/vinoteca/catalog/internal/assets"
	"github.com/vinoteca/catalog/internal/catalog"
	"github.com/vinoteca/catalog/internal/identity"
	"github.com/vinoteca/catalog/internal/repository"
	"github.com/vinoteca/catalog/internal/webserver"
)

// ErrorResponse is the body of every non-validation failure.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// ValidationResponse is the body of every 422.
type ValidationResponse struct {
	Errors map[string][]string `json:"errors"`
}

type pageLinks struct {
	First string  `json:"first"`
	Last  string  `json:"last"`
	Prev  *string `json:"prev"`
	Next  *string `json:"next"`
}

type pageResponse struct {
	Data        interface{} `json:"data"`
	Total       int64       `json:"total"`
	CurrentPage int         `json:"current_page"`
	PerPage     int         `json:"per_page"`
	LastPage    int         `json:"last_page"`
	From        int         `json:"from"`
	To          int         `json:"to"`
	Links       pageLinks   `json:"links"`
}

type listQuery struct {
	Page    int `query:"page" validate:"omitempty,min=1"`
	PerPage int `query:"per_page" validate:"omitempty,min=1"`
}

func GetAppContext(c echo.Context) app.AppContext {
	return webserver.GetAppContext(c)
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}

func created(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusCreated, data)
}

func fail(c echo.Context, status int, code, msg string, detail interface{}) error {
	return c.JSON(status, ErrorResponse{Error: code, Message: msg, Details: detail})
}

func invalid(c echo.Context, fields map[string][]string) error {
	return c.JSON(http.StatusUnprocessableEntity, ValidationResponse{Errors: fields})
}

// paged renders p with first/prev/next/last links built from the request URL.
func paged[T any](c echo.Context, p *repository.Page[T], data interface{}) error {
	link := func(page int) string {
		u := url.URL{
			Scheme: c.Scheme(),
			Host:   c.Request().Host,
			Path:   c.Request().URL.Path,
		}
		q := url.Values{}
		q.Set("page", strconv.Itoa(page))
		q.Set("per_page", strconv.Itoa(p.PerPage))
		u.RawQuery = q.Encode()
		return u.String()
	}
	links := pageLinks{First: link(1), Last: link(p.LastPage)}
	if p.HasPrev() {
		prev := link(p.CurrentPage - 1)
		links.Prev = &prev
	}
	if p.HasNext() {
		next := link(p.CurrentPage + 1)
		links.Next = &next
	}
	return ok(c, pageResponse{
		Data:        data,
		Total:       p.Total,
		CurrentPage: p.CurrentPage,
		PerPage:     p.PerPage,
		LastPage:    p.LastPage,
		From:        p.From,
		To:          p.To,
		Links:       links,
	})
}

// parsePagination returns nil when the request asks for no page and
// paginate is false.
func parsePagination(c echo.Context, paginate bool) (*repository.PageRequest, error) {
	var q listQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return nil, err
	}
	if err := c.Validate(&q); err != nil {
		return nil, err
	}
	if !paginate && q.Page == 0 && q.PerPage == 0 {
		return nil, nil
	}
	return &repository.PageRequest{Page: q.Page, PerPage: q.PerPage}, nil
}

func parseIDParam(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}

// handleValidationError renders struct validation failures in the 422 envelope.
func handleValidationError(c echo.Context, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		var he *echo.HTTPError
		if errors.As(err, &he) {
			return fail(c, http.StatusBadRequest, "INVALID_REQUEST", fmt.Sprint(he.Message), nil)
		}
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
	}
	fields := map[string][]string{}
	for _, fe := range verrs {
		name := snake(fe.Field())
		fields[name] = append(fields[name], fmt.Sprintf("The %s field must be %s %s.", name, describeTag(fe.Tag()), fe.Param()))
	}
	return invalid(c, fields)
}

func describeTag(tag string) string {
	switch tag {
	case "min":
		return "at least"
	case "max":
		return "at most"
	default:
		return tag
	}
}

func snake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

// handleServiceError maps catalog and identity errors to responses.
func handleServiceError(c echo.Context, err error) error {
	var (
		vf      *catalog.ValidationFailed
		nf      *catalog.NotFound
		bad     *catalog.InvalidAsset
		missing *catalog.AssetNotFound
		failure *catalog.AssetStoreFailure
	)
	switch {
	case errors.As(err, &vf):
		return invalid(c, vf.Fields)
	case errors.As(err, &bad):
		return invalid(c, map[string][]string{"file": {sentence(bad.Reason)}})
	case errors.As(err, &nf):
		return fail(c, http.StatusNotFound, "NOT_FOUND", fmt.Sprintf("%s %d not found", nf.Entity, nf.ID), nil)
	case errors.As(err, &missing):
		return fail(c, http.StatusNotFound, "IMAGE_NOT_FOUND", "Image not found", missing.Ref.String())
	case errors.As(err, &failure):
		zap.L().Error("asset store failure", zap.String("op", failure.Op), zap.Error(failure.Err))
		return fail(c, http.StatusInternalServerError, "STORAGE_ERROR", "Image storage failed", failure.Op)
	case errors.Is(err, identity.ErrUnauthorized):
		return c.JSON(http.StatusUnauthorized, ValidationResponse{Errors: map[string][]string{
			"email": {"The provided credentials are incorrect."},
		}})
	case errors.Is(err, identity.ErrUnauthenticated):
		return fail(c, http.StatusUnauthorized, "UNAUTHENTICATED", "Unauthenticated.", nil)
	default:
		zap.L().Error("request failed", zap.String("path", c.Path()), zap.Error(err))
		return fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
	}
}

func sentence(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:] + "."
}

// readFields decodes a JSON, urlencoded or multipart body into a field map.
func readFields(c echo.Context) (map[string]interface{}, error) {
	fields := map[string]interface{}{}
	if err := (&echo.DefaultBinder{}).BindBody(c, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// readUpload returns the "file" part of a multipart request, or nil.
func readUpload(c echo.Context, limit int64) (*assets.Upload, error) {
	if !strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		return nil, nil
	}
	fh, err := c.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	up, err := assets.ReadUpload(f, fh.Filename, fh.Header.Get(echo.HeaderContentType), limit)
	if err != nil {
		return nil, err
	}
	return &up, nil
}
