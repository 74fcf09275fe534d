// Package memtest arma catálogos mínimos sobre el almacén en memoria para las pruebas de casos de uso.
package memtest

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain/entity"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/infrastructure/memory"
)

// IDs fijos del catálogo base.
const (
	CategoryID    = "cat-ropa"
	SizeGroupID   = "grp-letras"
	SubcategoryID = "sub-camisetas"
	SizeS         = "size-s"
	SizeM         = "size-m"
	SizeL         = "size-l"
)

// Fixture catálogo base: una categoría, un grupo S/M/L y una subcategoría con umbral 5.
type Fixture struct {
	DB  *memory.DB
	Now time.Time
}

// New crea el almacén con el catálogo base.
func New(t testing.TB) *Fixture {
	t.Helper()
	ctx := context.Background()
	f := &Fixture{DB: memory.New(), Now: time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)}
	st := f.DB.Store()
	require.NoError(t, st.Categories().Create(ctx, &entity.Category{ID: CategoryID, Name: "Ropa", Slug: "ropa", CreatedAt: f.Now}))
	require.NoError(t, st.Sizes().CreateGroup(ctx, &entity.SizeGroup{ID: SizeGroupID, Name: "Letras", CreatedAt: f.Now}))
	for i, id := range []string{SizeS, SizeM, SizeL} {
		name := []string{"S", "M", "L"}[i]
		require.NoError(t, st.Sizes().Create(ctx, &entity.Size{ID: id, SizeGroupID: SizeGroupID, Name: name, SortOrder: i, CreatedAt: f.Now}))
	}
	require.NoError(t, st.Subcategories().Create(ctx, &entity.Subcategory{
		ID: SubcategoryID, CategoryID: CategoryID, SizeGroupID: SizeGroupID,
		Name: "Camisetas", Slug: "camisetas", MinStock: entity.DefaultMinStock, CreatedAt: f.Now, UpdatedAt: f.Now,
	}))
	return f
}

// Product crea un producto sin inventario.
func (f *Fixture) Product(t testing.TB, id, name string, price int64) *entity.Product {
	t.Helper()
	p := &entity.Product{
		ID: id, SubcategoryID: SubcategoryID, Name: name, Slug: id,
		Price: decimal.NewFromInt(price), CreatedAt: f.Now, UpdatedAt: f.Now,
	}
	require.NoError(t, f.DB.Store().Products().Create(context.Background(), p))
	return p
}

// Stock crea (o reescribe) el registro del par con el stock dado y umbral 5.
func (f *Fixture) Stock(t testing.TB, productID, sizeID string, stock int) *entity.InventoryRecord {
	t.Helper()
	ctx := context.Background()
	repo := f.DB.Store().Inventory()
	rec := &entity.InventoryRecord{ID: "inv-" + productID + "-" + sizeID, ProductID: productID, SizeID: sizeID, MinStock: entity.DefaultMinStock, UpdatedAt: f.Now}
	_, err := repo.CreateIfMissing(ctx, rec)
	require.NoError(t, err)
	got, err := repo.GetForUpdate(ctx, productID, sizeID)
	require.NoError(t, err)
	got.SetStockForSize(stock)
	require.NoError(t, repo.Update(ctx, got))
	return got
}

// StockOf stock efectivo actual del par; -1 si no hay registro.
func (f *Fixture) StockOf(t testing.TB, productID, sizeID string) int {
	t.Helper()
	rec, err := f.DB.Store().Inventory().GetForUpdate(context.Background(), productID, sizeID)
	require.NoError(t, err)
	if rec == nil {
		return -1
	}
	return rec.EffectiveStock()
}

// User crea un usuario activo.
func (f *Fixture) User(t testing.TB, id, email, role string) *entity.User {
	t.Helper()
	u := &entity.User{ID: id, Email: email, Name: id, Role: role, Status: entity.UserStatusActive, CreatedAt: f.Now, UpdatedAt: f.Now}
	require.NoError(t, f.DB.Store().Users().Create(context.Background(), u))
	return u
}
