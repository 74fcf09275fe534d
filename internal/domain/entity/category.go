package entity

import "time"

// Category agrupa subcategorías del catálogo.
type Category struct {
	ID        string
	Name      string
	Slug      string
	CreatedAt time.Time
}

// Subcategory pertenece a una Category. SizeGroupID determina en qué tallas se
// inventarían sus productos (vacío = sin grupo, no se crea inventario).
type Subcategory struct {
	ID          string
	CategoryID  string
	SizeGroupID string
	Name        string
	Slug        string
	MinStock    int // umbral de stock mínimo heredado por cada registro de inventario
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
