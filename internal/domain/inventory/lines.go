package inventory

import (
	"sort"

	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain/entity"
)

// Line cantidad pedida de un producto en una talla.
type Line struct {
	ProductID string
	SizeID    string
	Quantity  int
}

// Consolidate suma las cantidades de líneas repetidas y las ordena por (producto, talla).
// El orden fijo hace que dos transacciones concurrentes bloqueen filas en la misma secuencia.
func Consolidate(lines []Line) ([]Line, error) {
	type key struct{ p, s string }
	idx := make(map[key]int, len(lines))
	out := make([]Line, 0, len(lines))
	for _, l := range lines {
		if l.ProductID == "" || l.SizeID == "" {
			return nil, domain.Invalid("product_id/size_id", "producto y talla son requeridos")
		}
		if l.Quantity <= 0 {
			return nil, domain.Invalid("quantity", "la cantidad debe ser mayor que cero")
		}
		k := key{l.ProductID, l.SizeID}
		if i, ok := idx[k]; ok {
			out[i].Quantity += l.Quantity
			continue
		}
		idx[k] = len(out)
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ProductID != out[j].ProductID {
			return out[i].ProductID < out[j].ProductID
		}
		return out[i].SizeID < out[j].SizeID
	})
	return out, nil
}

// CheckAvailable verifica que el registro cubra la línea. rec nil = no existe inventario.
func CheckAvailable(rec *entity.InventoryRecord, l Line) error {
	if rec == nil {
		return &domain.StockError{ProductID: l.ProductID, SizeID: l.SizeID, Requested: l.Quantity, Missing: true}
	}
	if avail := rec.EffectiveStock(); avail < l.Quantity {
		return &domain.StockError{ProductID: l.ProductID, SizeID: l.SizeID, Requested: l.Quantity, Available: avail}
	}
	return nil
}
