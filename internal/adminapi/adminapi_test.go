package adminapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vinoteca/catalog/config"
	"github.com/vinoteca/catalog/internal/app"
	"github.com/vinoteca/catalog/internal/testutil"
	"github.com/vinoteca/catalog/internal/webserver"
)

type env struct {
	t       *testing.T
	backend *testutil.MemBackend
}

func setup(t *testing.T) *env {
	t.Helper()
	cfg := config.DefaultAppConfig()
	cfg.System.Workdir = t.TempDir()
	cfg.System.Debug = false
	cfg.Web.Secret = "test-secret"

	a := app.NewApplication(cfg)
	a.OverrideDB(testutil.NewTestDB(t))
	backend := testutil.NewMemBackend()
	a.OverrideAssets(backend)
	a.Wire()

	webserver.Init(a)
	Init()
	return &env{t: t, backend: backend}
}

func (e *env) do(method, target string, body io.Reader, contentType, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	webserver.Handler().ServeHTTP(rec, req)
	return rec
}

func (e *env) json(method, target string, payload interface{}, token string) *httptest.ResponseRecorder {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(e.t, err)
		body = bytes.NewReader(data)
	}
	return e.do(method, target, body, "application/json", token)
}

func (e *env) multipart(method, target string, fields map[string]string, file []byte, filename string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(e.t, w.WriteField(k, v))
	}
	if file != nil {
		part, err := w.CreateFormFile("file", filename)
		require.NoError(e.t, err)
		_, err = part.Write(file)
		require.NoError(e.t, err)
	}
	require.NoError(e.t, w.Close())
	return e.do(method, target, &buf, w.FormDataContentType(), "")
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func (e *env) seedLookups() (tipoID, doID string) {
	rec := e.json(http.MethodPost, "/api/tipo", map[string]string{"nombre": "Tinto", "descripcion": "Vino tinto"}, "")
	require.Equal(e.t, http.StatusCreated, rec.Code, rec.Body.String())
	tipoID = fmt.Sprint(decode(e.t, rec)["id"])

	rec = e.json(http.MethodPost, "/api/denominacion", map[string]string{"nombre": "Rioja", "descripcion": "D.O.Ca. Rioja"}, "")
	require.Equal(e.t, http.StatusCreated, rec.Code, rec.Body.String())
	doID = fmt.Sprint(decode(e.t, rec)["id"])
	return tipoID, doID
}

func riojaForm(tipoID, doID string) map[string]string {
	return map[string]string{
		"nombre":          "Rioja Reserva",
		"bodega":          "Muga",
		"descripcion":     "Reserva de Rioja alta",
		"maridaje":        "Carnes rojas",
		"precio":          "24.90",
		"graduacion":      "14",
		"ano":             "2018",
		"tipo_id":         tipoID,
		"denominacion_id": doID,
	}
}

func TestProductScenario_RiojaReserva(t *testing.T) {
	e := setup(t)
	tipoID, doID := e.seedLookups()

	rec := e.multipart(http.MethodPost, "/api/producto", riojaForm(tipoID, doID), testutil.JPEG(8192), "valid.jpg")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode(t, rec)

	imagen, isStr := created["imagen"].(string)
	require.True(t, isStr)
	assert.True(t, strings.HasPrefix(imagen, "http://localhost:8000/storage/images/"), imagen)
	assert.True(t, strings.HasSuffix(imagen, ".jpg"), imagen)

	rec = e.do(http.MethodGet, fmt.Sprintf("/api/producto/%v", created["id"]), nil, "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode(t, rec)
	assert.Equal(t, 24.9, got["precio"])
	assert.Equal(t, 14.0, got["graduacion"])
	assert.Equal(t, float64(2018), got["ano"])
	assert.Equal(t, "Muga", got["bodega"])
	assert.Nil(t, got["sabor"])

	// the image resolves through the storage route
	rec = e.do(http.MethodGet, strings.TrimPrefix(imagen, "http://localhost:8000"), nil, "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/jpeg", rec.Header().Get("Content-Type"))
	assert.Equal(t, 8192, rec.Body.Len())
}

func TestProductCreate_ValidationEnvelope(t *testing.T) {
	e := setup(t)

	rec := e.json(http.MethodPost, "/api/producto", map[string]interface{}{"nombre": "Solo nombre"}, "")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decode(t, rec)
	errs, isMap := body["errors"].(map[string]interface{})
	require.True(t, isMap, rec.Body.String())
	assert.NotContains(t, errs, "nombre")
	assert.Contains(t, errs, "descripcion")
	assert.Contains(t, errs, "tipo_id")
	assert.Contains(t, errs, "file")
	assert.Zero(t, e.backend.Len())
}

func TestProductCreate_UnknownReference(t *testing.T) {
	e := setup(t)
	_, doID := e.seedLookups()

	rec := e.multipart(http.MethodPost, "/api/producto", riojaForm("999", doID), testutil.JPEG(512), "valid.jpg")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	errs := decode(t, rec)["errors"].(map[string]interface{})
	assert.Equal(t, []interface{}{"The selected tipo_id was not found in tipos."}, errs["tipo_id"])
}

func TestProductCreate_RejectsNonImage(t *testing.T) {
	e := setup(t)
	tipoID, doID := e.seedLookups()

	rec := e.multipart(http.MethodPost, "/api/producto", riojaForm(tipoID, doID), []byte("hello, plain text"), "notes.txt")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	errs := decode(t, rec)["errors"].(map[string]interface{})
	assert.Contains(t, errs, "file")
}

func TestProductCreate_RejectsOversize(t *testing.T) {
	e := setup(t)
	tipoID, doID := e.seedLookups()

	rec := e.multipart(http.MethodPost, "/api/producto", riojaForm(tipoID, doID), testutil.PNG(3<<20), "big.png")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Zero(t, e.backend.Len())
}

func TestProductCreate_BodyTooLarge(t *testing.T) {
	e := setup(t)
	tipoID, doID := e.seedLookups()

	rec := e.multipart(http.MethodPost, "/api/producto", riojaForm(tipoID, doID), testutil.PNG(5<<20), "huge.png")
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Zero(t, e.backend.Len())
}

func TestProductCreate_RejectsNonFiniteNumbers(t *testing.T) {
	e := setup(t)
	tipoID, doID := e.seedLookups()

	cases := []struct{ field, value string }{
		{"precio", "NaN"},
		{"precio", "Inf"},
		{"precio", "-Inf"},
		{"graduacion", "NaN"},
		{"graduacion", "Inf"},
		{"graduacion", "-Inf"},
	}
	for _, tc := range cases {
		form := riojaForm(tipoID, doID)
		form[tc.field] = tc.value
		rec := e.multipart(http.MethodPost, "/api/producto", form, testutil.JPEG(2048), "valid.jpg")
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code, "%s=%s: %s", tc.field, tc.value, rec.Body.String())
		errs := decode(t, rec)["errors"].(map[string]interface{})
		assert.Equal(t, []interface{}{"The " + tc.field + " field must be a number."}, errs[tc.field], "%s=%s", tc.field, tc.value)
	}

	rec := e.do(http.MethodGet, "/api/producto", nil, "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 0, decode(t, rec)["total"])
	assert.Zero(t, e.backend.Len())
}

func TestProductUpdateAndDelete(t *testing.T) {
	e := setup(t)
	tipoID, doID := e.seedLookups()

	rec := e.multipart(http.MethodPost, "/api/producto", riojaForm(tipoID, doID), testutil.JPEG(512), "valid.jpg")
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decode(t, rec)["id"]

	form := riojaForm(tipoID, doID)
	form["nombre"] = "Rioja Gran Reserva"
	rec = e.multipart(http.MethodPut, fmt.Sprintf("/api/producto/%v", id), form, testutil.PNG(512), "new.png")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode(t, rec)
	assert.Equal(t, "Rioja Gran Reserva", updated["nombre"])
	assert.True(t, strings.HasSuffix(updated["imagen"].(string), ".png"))
	assert.Equal(t, 1, e.backend.Len())

	rec = e.do(http.MethodDelete, fmt.Sprintf("/api/producto/%v", id), nil, "", "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Zero(t, e.backend.Len())

	rec = e.do(http.MethodGet, fmt.Sprintf("/api/producto/%v", id), nil, "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProductDelete_MissingImageKeepsRecord(t *testing.T) {
	e := setup(t)
	tipoID, doID := e.seedLookups()

	rec := e.multipart(http.MethodPost, "/api/producto", riojaForm(tipoID, doID), testutil.JPEG(512), "valid.jpg")
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decode(t, rec)["id"]
	for k := range e.backend.Objects {
		delete(e.backend.Objects, k)
	}

	rec = e.do(http.MethodDelete, fmt.Sprintf("/api/producto/%v", id), nil, "", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "IMAGE_NOT_FOUND", decode(t, rec)["error"])

	rec = e.do(http.MethodGet, fmt.Sprintf("/api/producto/%v", id), nil, "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProductListAndExport(t *testing.T) {
	e := setup(t)
	tipoID, doID := e.seedLookups()
	for i := 0; i < 3; i++ {
		rec := e.multipart(http.MethodPost, "/api/producto", riojaForm(tipoID, doID), testutil.JPEG(256), "valid.jpg")
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := e.do(http.MethodGet, "/api/producto?per_page=2", nil, "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	page := decode(t, rec)
	assert.Equal(t, float64(3), page["total"])
	assert.Equal(t, float64(2), page["last_page"])
	assert.Len(t, page["data"], 2)
	links := page["links"].(map[string]interface{})
	assert.Nil(t, links["prev"])
	assert.Contains(t, links["next"], "page=2")

	rec = e.do(http.MethodGet, "/api/producto/export", nil, "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "id,nombre,bodega"), lines[0])
	assert.Contains(t, lines[1], "Rioja Reserva")
}

func TestLookupRoutes(t *testing.T) {
	e := setup(t)
	e.seedLookups()

	rec := e.json(http.MethodPost, "/api/denominacion", map[string]string{"nombre": "Toro", "descripcion": "D.O. Toro"}, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decode(t, rec)["id"]

	rec = e.do(http.MethodGet, "/api/denominacion", nil, "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var all []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	assert.Len(t, all, 2)

	rec = e.do(http.MethodGet, "/api/denominacion?page=2&per_page=1", nil, "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	page := decode(t, rec)
	assert.Equal(t, float64(2), page["current_page"])
	assert.Equal(t, float64(2), page["from"])

	rec = e.json(http.MethodPut, fmt.Sprintf("/api/denominacion/%v", id), map[string]string{"nombre": "Toro", "descripcion": "Zamora"}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Zamora", decode(t, rec)["descripcion"])

	rec = e.json(http.MethodPut, fmt.Sprintf("/api/denominacion/%v", id), map[string]string{"nombre": strings.Repeat("x", 256), "descripcion": "x"}, "")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = e.do(http.MethodDelete, fmt.Sprintf("/api/denominacion/%v", id), nil, "", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = e.do(http.MethodDelete, fmt.Sprintf("/api/denominacion/%v", id), nil, "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = e.do(http.MethodGet, "/api/tipo/abc", nil, "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = e.do(http.MethodGet, "/api/tipo?page=0&per_page=-1", nil, "", "")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decode(t, rec)["errors"], "per_page")
}

func TestAuthFlow(t *testing.T) {
	e := setup(t)

	rec := e.json(http.MethodPost, "/api/register", map[string]string{
		"name": "John Doe", "email": "john@example.com", "password": "secret123",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode(t, rec)
	token := body["token"].(string)
	assert.Equal(t, "john@example.com", body["user"].(map[string]interface{})["email"])
	assert.NotContains(t, body["user"], "password")

	rec = e.do(http.MethodGet, "/api/user", nil, "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "John Doe", decode(t, rec)["name"])

	rec = e.do(http.MethodGet, "/api/user", nil, "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = e.json(http.MethodPost, "/api/login", map[string]string{"email": "john@example.com", "password": "nope-nope"}, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, decode(t, rec)["errors"], "email")

	rec = e.json(http.MethodPost, "/api/refresh", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	fresh := decode(t, rec)["token"].(string)

	rec = e.do(http.MethodGet, "/api/user", nil, "", token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "refresh revokes the previous token")

	rec = e.json(http.MethodPost, "/api/logout", nil, fresh)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(http.MethodGet, "/api/user", nil, "", fresh)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = e.json(http.MethodPost, "/api/login", map[string]string{"email": "john@example.com", "password": "secret123"}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, decode(t, rec)["token"])
}

func TestRegister_ValidationEnvelope(t *testing.T) {
	e := setup(t)
	rec := e.json(http.MethodPost, "/api/register", map[string]string{"email": "bad"}, "")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	errs := decode(t, rec)["errors"].(map[string]interface{})
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")
}

func TestStorageRoute_NotFound(t *testing.T) {
	e := setup(t)
	rec := e.do(http.MethodGet, "/storage/images/none.png", nil, "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = e.do(http.MethodGet, "/storage/secrets/none.png", nil, "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSwaggerDoc(t *testing.T) {
	e := setup(t)
	rec := e.do(http.MethodGet, "/swagger/doc.json", nil, "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, "2.0", doc["swagger"])
	paths, ok := doc["paths"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, paths, "/producto/{id}")
	assert.Contains(t, paths, "/login")
}
