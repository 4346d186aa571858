package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vinoteca/catalog/internal/assets"
	"github.com/vinoteca/catalog/internal/domain"
	"github.com/vinoteca/catalog/internal/repository"
	"github.com/vinoteca/catalog/internal/testutil"
	"github.com/vinoteca/catalog/internal/validation"
)

// spyRepo counts writes and can fail updates.
type spyRepo[T any] struct {
	repository.Repository[T]
	inserts   int
	updates   int
	failWrite error
}

func (s *spyRepo[T]) Insert(ctx context.Context, rec *T) error {
	s.inserts++
	if s.failWrite != nil {
		return s.failWrite
	}
	return s.Repository.Insert(ctx, rec)
}

func (s *spyRepo[T]) Update(ctx context.Context, id int64, fields map[string]interface{}) error {
	s.updates++
	if s.failWrite != nil {
		return s.failWrite
	}
	return s.Repository.Update(ctx, id, fields)
}

type fixture struct {
	db       *gorm.DB
	backend  *testutil.MemBackend
	store    *assets.Store
	products *ProductService
	repo     *spyRepo[domain.Product]
	tipoID   int64
	doID     int64
}

func newFixture(t *testing.T, opts ...ProductOption) *fixture {
	t.Helper()
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	tipo := &domain.ProductType{Nombre: "Tinto", Descripcion: "Vino tinto"}
	require.NoError(t, db.WithContext(ctx).Create(tipo).Error)
	do := &domain.Denomination{Nombre: "Rioja", Descripcion: "D.O.Ca. Rioja"}
	require.NoError(t, db.WithContext(ctx).Create(do).Error)

	backend := testutil.NewMemBackend()
	store := assets.NewStore(backend)
	repo := &spyRepo[domain.Product]{Repository: repository.NewGormRepository[domain.Product](db)}
	v := validation.New(repository.NewTableChecker(db, "tipos", "denominaciones"))

	return &fixture{
		db:       db,
		backend:  backend,
		store:    store,
		products: NewProductService(repo, v, store, opts...),
		repo:     repo,
		tipoID:   tipo.ID,
		doID:     do.ID,
	}
}

func (f *fixture) riojaFields() map[string]any {
	return map[string]any{
		"nombre":          "Rioja Reserva",
		"bodega":          "Muga",
		"descripcion":     "Reserva de Rioja alta",
		"maridaje":        "Carnes rojas",
		"precio":          "24.90",
		"graduacion":      "14",
		"ano":             "2018",
		"tipo_id":         f.tipoID,
		"denominacion_id": f.doID,
	}
}

func jpegUpload() *assets.Upload {
	return &assets.Upload{Filename: "valid.jpg", DeclaredType: "image/jpeg", Data: testutil.JPEG(4096)}
}

func TestProductCreate_RiojaReserva(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.products.Create(ctx, f.riojaFields(), jpegUpload())
	require.NoError(t, err)
	require.True(t, p.HasImage())
	assert.True(t, f.backend.Has(*p.Imagen))

	got, err := f.products.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rioja Reserva", got.Nombre)
	assert.Equal(t, "Muga", *got.Bodega)
	assert.Equal(t, 24.90, got.Precio)
	assert.Equal(t, 14.0, got.Graduacion)
	assert.Equal(t, int64(2018), *got.Ano)
	assert.Nil(t, got.Sabor)
	assert.Equal(t, f.tipoID, got.TipoID)

	url := assets.NewURLResolver("http://localhost:8000/storage").Resolve(got.Imagen)
	require.NotNil(t, url)
	assert.Equal(t, "http://localhost:8000/storage/"+*got.Imagen, *url)
}

func TestProductCreate_MissingRequiredFieldSkipsWrite(t *testing.T) {
	f := newFixture(t)
	fields := f.riojaFields()
	delete(fields, "maridaje")

	_, err := f.products.Create(context.Background(), fields, jpegUpload())
	var vf *ValidationFailed
	require.True(t, errors.As(err, &vf))
	assert.Equal(t, []string{"maridaje"}, keys(vf.Fields))
	assert.Zero(t, f.repo.inserts)
	assert.Zero(t, f.backend.Len())
}

func TestProductCreate_UnknownReferences(t *testing.T) {
	f := newFixture(t)
	fields := f.riojaFields()
	fields["tipo_id"] = 999
	fields["denominacion_id"] = 998

	_, err := f.products.Create(context.Background(), fields, jpegUpload())
	var ref *ReferenceNotFound
	require.True(t, errors.As(err, &ref))

	var vf *ValidationFailed
	require.True(t, errors.As(err, &vf))
	require.Len(t, vf.References, 2)
	assert.Equal(t, "tipo_id", vf.References[0].Field)
	assert.Equal(t, "tipos", vf.References[0].Table)
	assert.Equal(t, "denominacion_id", vf.References[1].Field)
	assert.Zero(t, f.repo.inserts)
}

func TestProductCreate_FileRequired(t *testing.T) {
	f := newFixture(t)

	_, err := f.products.Create(context.Background(), f.riojaFields(), nil)
	var vf *ValidationFailed
	require.True(t, errors.As(err, &vf))
	assert.Equal(t, []string{"The file field is required."}, vf.Fields["file"])

	fields := f.riojaFields()
	delete(fields, "nombre")
	_, err = f.products.Create(context.Background(), fields, nil)
	require.True(t, errors.As(err, &vf))
	assert.ElementsMatch(t, []string{"file", "nombre"}, keys(vf.Fields))
}

func TestProductCreate_FileOptional(t *testing.T) {
	f := newFixture(t, WithImageRequired(false))

	p, err := f.products.Create(context.Background(), f.riojaFields(), nil)
	require.NoError(t, err)
	assert.False(t, p.HasImage())
}

func TestProductCreate_InvalidAsset(t *testing.T) {
	f := newFixture(t)
	up := &assets.Upload{Filename: "notes.txt", Data: []byte("plain text")}

	_, err := f.products.Create(context.Background(), f.riojaFields(), up)
	var invalid *InvalidAsset
	require.True(t, errors.As(err, &invalid))
	assert.Zero(t, f.repo.inserts)
}

func TestProductCreate_InsertFailureRemovesStagedImage(t *testing.T) {
	f := newFixture(t)
	f.repo.failWrite = errors.New("db down")

	_, err := f.products.Create(context.Background(), f.riojaFields(), jpegUpload())
	require.Error(t, err)
	assert.Zero(t, f.backend.Len())
}

func TestProductUpdate_Idempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p, err := f.products.Create(ctx, f.riojaFields(), jpegUpload())
	require.NoError(t, err)

	fields := f.riojaFields()
	fields["nombre"] = "Rioja Gran Reserva"
	fields["bodega"] = nil

	first, err := f.products.Update(ctx, p.ID, fields, nil)
	require.NoError(t, err)
	second, err := f.products.Update(ctx, p.ID, fields, nil)
	require.NoError(t, err)

	assert.Equal(t, "Rioja Gran Reserva", second.Nombre)
	assert.Nil(t, second.Bodega)
	assert.Equal(t, first.Nombre, second.Nombre)
	assert.Equal(t, first.Precio, second.Precio)
	assert.Equal(t, *first.Imagen, *second.Imagen)
	assert.Equal(t, *p.Imagen, *second.Imagen)
}

func TestProductUpdate_NotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.products.Update(context.Background(), 404, f.riojaFields(), nil)
	var nf *NotFound
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, int64(404), nf.ID)
}

func TestProductUpdate_ReplacesImage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p, err := f.products.Create(ctx, f.riojaFields(), jpegUpload())
	require.NoError(t, err)
	old := *p.Imagen

	up := &assets.Upload{Filename: "new.png", Data: testutil.PNG(2048)}
	updated, err := f.products.Update(ctx, p.ID, f.riojaFields(), up)
	require.NoError(t, err)

	assert.NotEqual(t, old, *updated.Imagen)
	assert.False(t, f.backend.Has(old))
	assert.True(t, f.backend.Has(*updated.Imagen))
}

func TestProductUpdate_MissingPreviousImageIsIgnored(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p, err := f.products.Create(ctx, f.riojaFields(), jpegUpload())
	require.NoError(t, err)
	delete(f.backend.Objects, *p.Imagen)

	updated, err := f.products.Update(ctx, p.ID, f.riojaFields(), jpegUpload())
	require.NoError(t, err)
	assert.True(t, f.backend.Has(*updated.Imagen))
}

func TestProductUpdate_OldImageLeakDoesNotFail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p, err := f.products.Create(ctx, f.riojaFields(), jpegUpload())
	require.NoError(t, err)
	f.backend.FailRemove[*p.Imagen] = true

	updated, err := f.products.Update(ctx, p.ID, f.riojaFields(), jpegUpload())
	require.NoError(t, err)
	assert.NotEqual(t, *p.Imagen, *updated.Imagen)
	assert.True(t, f.backend.Has(*p.Imagen))
}

func TestProductUpdate_WriteFailureRevertsStagedImage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p, err := f.products.Create(ctx, f.riojaFields(), jpegUpload())
	require.NoError(t, err)

	f.repo.failWrite = errors.New("db down")
	_, err = f.products.Update(ctx, p.ID, f.riojaFields(), jpegUpload())
	require.Error(t, err)

	assert.Equal(t, 1, f.backend.Len())
	assert.True(t, f.backend.Has(*p.Imagen))
}

func TestProductDelete_RemovesRecordAndImage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p, err := f.products.Create(ctx, f.riojaFields(), jpegUpload())
	require.NoError(t, err)

	require.NoError(t, f.products.Delete(ctx, p.ID))
	assert.False(t, f.backend.Has(*p.Imagen))

	_, err = f.products.Get(ctx, p.ID)
	var nf *NotFound
	assert.True(t, errors.As(err, &nf))
}

func TestProductDelete_MissingImageStrictAborts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p, err := f.products.Create(ctx, f.riojaFields(), jpegUpload())
	require.NoError(t, err)
	delete(f.backend.Objects, *p.Imagen)

	err = f.products.Delete(ctx, p.ID)
	var missing *AssetNotFound
	require.True(t, errors.As(err, &missing))

	_, err = f.products.Get(ctx, p.ID)
	assert.NoError(t, err)
}

func TestProductDelete_ExternalImageStrict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p, err := f.products.Create(ctx, f.riojaFields(), jpegUpload())
	require.NoError(t, err)
	require.NoError(t, f.db.Model(&domain.Product{}).Where("id = ?", p.ID).
		Update("imagen", "https://cdn.example.com/rioja.jpg").Error)
	before := f.backend.Len()

	require.NoError(t, f.products.Delete(ctx, p.ID))
	assert.Equal(t, before, f.backend.Len())

	_, err = f.products.Get(ctx, p.ID)
	var nf *NotFound
	assert.True(t, errors.As(err, &nf))
}

func TestProductDelete_MissingImageLenient(t *testing.T) {
	f := newFixture(t, WithStrictDelete(false))
	ctx := context.Background()
	p, err := f.products.Create(ctx, f.riojaFields(), jpegUpload())
	require.NoError(t, err)
	delete(f.backend.Objects, *p.Imagen)

	require.NoError(t, f.products.Delete(ctx, p.ID))
}

func TestProductDelete_StoreFailurePreservesRecord(t *testing.T) {
	f := newFixture(t, WithStrictDelete(false))
	ctx := context.Background()
	p, err := f.products.Create(ctx, f.riojaFields(), jpegUpload())
	require.NoError(t, err)
	f.backend.FailRemove[*p.Imagen] = true

	err = f.products.Delete(ctx, p.ID)
	var failure *AssetStoreFailure
	require.True(t, errors.As(err, &failure))

	_, err = f.products.Get(ctx, p.ID)
	assert.NoError(t, err)
}

func TestProductDelete_NotFound(t *testing.T) {
	f := newFixture(t)
	err := f.products.Delete(context.Background(), 12)
	var nf *NotFound
	assert.True(t, errors.As(err, &nf))
}

func TestResource_DenominationCRUD(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := &spyRepo[domain.Denomination]{Repository: repository.NewGormRepository[domain.Denomination](db)}
	res := NewResource[domain.Denomination]("denominacion", repo, validation.New(nil), DenominationRules)

	_, err := res.Create(ctx, map[string]any{"nombre": "Ribera del Duero"})
	var vf *ValidationFailed
	require.True(t, errors.As(err, &vf))
	assert.Equal(t, []string{"descripcion"}, keys(vf.Fields))
	assert.Zero(t, repo.inserts)

	d, err := res.Create(ctx, map[string]any{"nombre": "Ribera del Duero", "descripcion": "D.O. Ribera del Duero"})
	require.NoError(t, err)

	got, err := res.Get(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ribera del Duero", got.Nombre)
	assert.Equal(t, "D.O. Ribera del Duero", got.Descripcion)

	updated, err := res.Update(ctx, d.ID, map[string]any{"nombre": "Toro", "descripcion": "D.O. Toro"})
	require.NoError(t, err)
	assert.Equal(t, "Toro", updated.Nombre)

	_, err = res.Update(ctx, d.ID, map[string]any{"nombre": "Toro"})
	require.True(t, errors.As(err, &vf))

	page, err := res.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, page.Data, 1)

	page, err = res.List(ctx, &repository.PageRequest{Page: 1, PerPage: 5})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)

	require.NoError(t, res.Delete(ctx, d.ID))
	err = res.Delete(ctx, d.ID)
	var nf *NotFound
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "denominacion", nf.Entity)
}

func keys(m map[string][]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
