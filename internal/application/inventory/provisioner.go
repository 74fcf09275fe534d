package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain/entity"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain/repository"
)

// Provisioner mantiene un registro de inventario por cada (producto, talla) del grupo de tallas
// de la subcategoría del producto. Los métodos corren con los repos de la transacción del caller,
// así el alta del catálogo y su inventario se confirman juntos.
// Los registros que crea no pasan por el StockWatcher.
type Provisioner struct {
	now func() time.Time
}

// NewProvisioner construye el aprovisionador.
func NewProvisioner() *Provisioner {
	return &Provisioner{now: time.Now}
}

// OnProductCreated crea los registros en cero para cada talla del grupo de la subcategoría.
// Sin grupo de tallas no hace nada. Devuelve cuántos registros creó.
func (p *Provisioner) OnProductCreated(ctx context.Context, tx repository.Store, product *entity.Product) (int, error) {
	sub, err := tx.Subcategories().GetByID(ctx, product.SubcategoryID)
	if err != nil {
		return 0, err
	}
	if sub == nil || sub.SizeGroupID == "" {
		return 0, nil
	}
	sizes, err := tx.Sizes().ListByGroup(ctx, sub.SizeGroupID)
	if err != nil {
		return 0, err
	}
	return p.provision(ctx, tx, []*entity.Product{product}, sizes, sub.MinStock)
}

// OnSubcategoryCreated aprovisiona los productos que ya cuelgan de la subcategoría.
func (p *Provisioner) OnSubcategoryCreated(ctx context.Context, tx repository.Store, sub *entity.Subcategory) (int, error) {
	if sub.SizeGroupID == "" {
		return 0, nil
	}
	products, err := tx.Products().ListBySubcategory(ctx, sub.ID)
	if err != nil {
		return 0, err
	}
	sizes, err := tx.Sizes().ListByGroup(ctx, sub.SizeGroupID)
	if err != nil {
		return 0, err
	}
	return p.provision(ctx, tx, products, sizes, sub.MinStock)
}

// OnSizeGroupChanged borra todo el inventario de los productos de la subcategoría y lo recrea en
// cero contra el grupo nuevo. Es destructivo: el stock previo se pierde. Devuelve los registros
// descartados y los creados.
func (p *Provisioner) OnSizeGroupChanged(ctx context.Context, tx repository.Store, sub *entity.Subcategory) (discarded, created int, err error) {
	products, err := tx.Products().ListBySubcategory(ctx, sub.ID)
	if err != nil {
		return 0, 0, err
	}
	ids := make([]string, len(products))
	for i, prod := range products {
		ids[i] = prod.ID
	}
	discarded, err = tx.Inventory().DeleteByProducts(ctx, ids)
	if err != nil {
		return 0, 0, err
	}
	if sub.SizeGroupID == "" {
		return discarded, 0, nil
	}
	sizes, err := tx.Sizes().ListByGroup(ctx, sub.SizeGroupID)
	if err != nil {
		return discarded, 0, err
	}
	created, err = p.provision(ctx, tx, products, sizes, sub.MinStock)
	return discarded, created, err
}

// OnSizeCreated agrega la talla nueva a cada producto cuya subcategoría usa su grupo.
// Los pares existentes no se tocan.
func (p *Provisioner) OnSizeCreated(ctx context.Context, tx repository.Store, size *entity.Size) (int, error) {
	subs, err := tx.Subcategories().ListBySizeGroup(ctx, size.SizeGroupID)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, sub := range subs {
		products, err := tx.Products().ListBySubcategory(ctx, sub.ID)
		if err != nil {
			return total, err
		}
		n, err := p.provision(ctx, tx, products, []*entity.Size{size}, sub.MinStock)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func (p *Provisioner) provision(ctx context.Context, tx repository.Store, products []*entity.Product, sizes []*entity.Size, minStock int) (int, error) {
	now := p.now()
	created := 0
	for _, prod := range products {
		for _, size := range sizes {
			rec := &entity.InventoryRecord{
				ID:        uuid.New().String(),
				ProductID: prod.ID,
				SizeID:    size.ID,
				MinStock:  minStock,
				UpdatedAt: now,
			}
			rec.SetStockForSize(0)
			ok, err := tx.Inventory().CreateIfMissing(ctx, rec)
			if err != nil {
				return created, fmt.Errorf("aprovisionar %s/%s: %w", prod.ID, size.ID, err)
			}
			if ok {
				created++
			}
		}
	}
	return created, nil
}
