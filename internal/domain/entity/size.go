package entity

import "time"

// SizeGroup conjunto de tallas (ej. S/M/L, 36..44).
type SizeGroup struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// Size talla que pertenece a un SizeGroup.
type Size struct {
	ID          string
	SizeGroupID string
	Name        string
	SortOrder   int
	CreatedAt   time.Time
}
