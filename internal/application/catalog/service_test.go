package catalog_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/application/catalog"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/application/dto"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/application/inventory"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/infrastructure/memory"
)

type fixture struct {
	db    *memory.DB
	svc   *catalog.Service
	catID string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := memory.New()
	svc := catalog.NewService(db, db.Store(), inventory.NewProvisioner(), zerolog.Nop())
	cat, err := svc.CreateCategory(context.Background(), dto.CreateCategoryRequest{Name: "Ropa"})
	require.NoError(t, err)
	return &fixture{db: db, svc: svc, catID: cat.ID}
}

func (f *fixture) group(t *testing.T, name string, sizes ...string) string {
	t.Helper()
	ctx := context.Background()
	g, err := f.svc.CreateSizeGroup(ctx, dto.CreateSizeGroupRequest{Name: name})
	require.NoError(t, err)
	for i, s := range sizes {
		_, err := f.svc.CreateSize(ctx, g.ID, dto.CreateSizeRequest{Name: s, SortOrder: i})
		require.NoError(t, err)
	}
	return g.ID
}

func intPtr(v int) *int { return &v }

func TestCreateProduct_ProvisionsOneRecordPerSize(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	groupID := f.group(t, "Camisetas", "S", "M", "L")
	sub, err := f.svc.CreateSubcategory(ctx, dto.CreateSubcategoryRequest{CategoryID: f.catID, SizeGroupID: groupID, Name: "Camisetas", MinStock: intPtr(7)})
	require.NoError(t, err)

	p, err := f.svc.CreateProduct(ctx, dto.CreateProductRequest{SubcategoryID: sub.ID, Name: "Camiseta básica", Price: decimal.NewFromInt(35000)})
	require.NoError(t, err)

	require.Len(t, p.Stock, 3)
	for _, r := range p.Stock {
		assert.Equal(t, 0, r.EffectiveStock)
		assert.Equal(t, 7, r.MinStock)
	}
	assert.Equal(t, "camiseta-basica", p.Slug)
}

func TestCreateProduct_SinGrupoNoCreaInventario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sub, err := f.svc.CreateSubcategory(ctx, dto.CreateSubcategoryRequest{CategoryID: f.catID, Name: "Accesorios"})
	require.NoError(t, err)
	assert.Equal(t, 5, sub.MinStock)

	p, err := f.svc.CreateProduct(ctx, dto.CreateProductRequest{SubcategoryID: sub.ID, Name: "Gorra", Price: decimal.NewFromInt(20000)})
	require.NoError(t, err)
	assert.Empty(t, p.Stock)
}

func TestCreateProduct_Validaciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sub, err := f.svc.CreateSubcategory(ctx, dto.CreateSubcategoryRequest{CategoryID: f.catID, Name: "Pantalones"})
	require.NoError(t, err)

	_, err = f.svc.CreateProduct(ctx, dto.CreateProductRequest{SubcategoryID: sub.ID, Name: "Jean", Price: decimal.Zero})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.svc.CreateProduct(ctx, dto.CreateProductRequest{SubcategoryID: "no-existe", Name: "Jean", Price: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.svc.CreateProduct(ctx, dto.CreateProductRequest{SubcategoryID: sub.ID, Name: "Jean", Price: decimal.NewFromInt(1)})
	require.NoError(t, err)
	_, err = f.svc.CreateProduct(ctx, dto.CreateProductRequest{SubcategoryID: sub.ID, Name: "Jéan", Price: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrDuplicate, "el slug ya existe")
}

func TestCreateSize_ProvisionsExistingProducts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	groupID := f.group(t, "Calzado", "38", "39")
	sub, err := f.svc.CreateSubcategory(ctx, dto.CreateSubcategoryRequest{CategoryID: f.catID, SizeGroupID: groupID, Name: "Tenis"})
	require.NoError(t, err)
	p, err := f.svc.CreateProduct(ctx, dto.CreateProductRequest{SubcategoryID: sub.ID, Name: "Tenis blancos", Price: decimal.NewFromInt(150000)})
	require.NoError(t, err)
	require.Len(t, p.Stock, 2)

	_, err = f.svc.CreateSize(ctx, groupID, dto.CreateSizeRequest{Name: "40", SortOrder: 2})
	require.NoError(t, err)

	got, err := f.svc.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, got.Stock, 3)
}

func TestUpdateSubcategory_CambioDeGrupoRecreaInventario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	letras := f.group(t, "Letras", "S", "M", "L")
	numeros := f.group(t, "Números", "6", "8")
	sub, err := f.svc.CreateSubcategory(ctx, dto.CreateSubcategoryRequest{CategoryID: f.catID, SizeGroupID: letras, Name: "Infantil"})
	require.NoError(t, err)
	p, err := f.svc.CreateProduct(ctx, dto.CreateProductRequest{SubcategoryID: sub.ID, Name: "Buzo", Price: decimal.NewFromInt(60000)})
	require.NoError(t, err)

	// stock previo que se pierde con el cambio
	rec := p.Stock[0]
	_, err = inventory.NewUseCase(f.db, f.db.Store(), nil, zerolog.Nop()).AdjustStock(ctx, rec.ID, dto.AdjustStockRequest{StockForSize: intPtr(9)})
	require.NoError(t, err)

	updated, err := f.svc.UpdateSubcategory(ctx, sub.ID, dto.UpdateSubcategoryRequest{SizeGroupID: &numeros})
	require.NoError(t, err)
	assert.Equal(t, 3, updated.DiscardedRecords)
	assert.Equal(t, numeros, updated.SizeGroupID)

	got, err := f.svc.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, got.Stock, 2)
	for _, r := range got.Stock {
		assert.Equal(t, 0, r.EffectiveStock)
	}
}

func TestCreateSubcategory_GrupoInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.CreateSubcategory(context.Background(), dto.CreateSubcategoryRequest{CategoryID: f.catID, SizeGroupID: "nope", Name: "X"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListProducts_Paginado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sub, err := f.svc.CreateSubcategory(ctx, dto.CreateSubcategoryRequest{CategoryID: f.catID, Name: "Medias"})
	require.NoError(t, err)
	for _, n := range []string{"Media A", "Media B", "Media C"} {
		_, err := f.svc.CreateProduct(ctx, dto.CreateProductRequest{SubcategoryID: sub.ID, Name: n, Price: decimal.NewFromInt(5000)})
		require.NoError(t, err)
	}

	page, err := f.svc.ListProducts(ctx, sub.ID, dto.PageRequest{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)

	page, err = f.svc.ListProducts(ctx, sub.ID, dto.PageRequest{Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
}
