package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain/entity"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain/repository"
)

var (
	_ repository.CategoryRepository    = (*CategoryRepo)(nil)
	_ repository.SubcategoryRepository = (*SubcategoryRepo)(nil)
	_ repository.SizeRepository        = (*SizeRepo)(nil)
)

// CategoryRepo implementación de CategoryRepository sobre PostgreSQL.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	query := `INSERT INTO categories (id, name, slug, created_at) VALUES ($1, $2, $3, $4)`
	if _, err := r.q.Exec(ctx, query, c.ID, c.Name, c.Slug, c.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert category: %w", domain.ErrDuplicate)
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	query := `SELECT id, name, slug, created_at FROM categories WHERE id = $1`
	var c entity.Category
	err := r.q.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

func (r *CategoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, slug, created_at FROM categories ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// SubcategoryRepo implementación de SubcategoryRepository.
type SubcategoryRepo struct {
	q Querier
}

// NewSubcategoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSubcategoryRepository(q Querier) *SubcategoryRepo {
	return &SubcategoryRepo{q: q}
}

const subcategoryColumns = `id, category_id, size_group_id, name, slug, min_stock, created_at, updated_at`

func scanSubcategory(row pgx.Row) (*entity.Subcategory, error) {
	var s entity.Subcategory
	var groupID *string
	if err := row.Scan(&s.ID, &s.CategoryID, &groupID, &s.Name, &s.Slug, &s.MinStock, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	s.SizeGroupID = derefString(groupID)
	return &s, nil
}

func (r *SubcategoryRepo) Create(ctx context.Context, s *entity.Subcategory) error {
	query := `
		INSERT INTO subcategories (` + subcategoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.CategoryID, nullIfEmpty(s.SizeGroupID), s.Name, s.Slug, s.MinStock, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert subcategory: %w", domain.ErrDuplicate)
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("insert subcategory: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("insert subcategory: %w", err)
	}
	return nil
}

func (r *SubcategoryRepo) GetByID(ctx context.Context, id string) (*entity.Subcategory, error) {
	return r.get(ctx, `SELECT `+subcategoryColumns+` FROM subcategories WHERE id = $1`, id)
}

// GetForUpdate bloquea la subcategoría mientras se cambia su grupo de tallas.
func (r *SubcategoryRepo) GetForUpdate(ctx context.Context, id string) (*entity.Subcategory, error) {
	return r.get(ctx, `SELECT `+subcategoryColumns+` FROM subcategories WHERE id = $1 FOR UPDATE`, id)
}

func (r *SubcategoryRepo) get(ctx context.Context, query, id string) (*entity.Subcategory, error) {
	s, err := scanSubcategory(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get subcategory: %w", err)
	}
	return s, nil
}

func (r *SubcategoryRepo) Update(ctx context.Context, s *entity.Subcategory) error {
	query := `
		UPDATE subcategories
		SET category_id = $2, size_group_id = $3, name = $4, slug = $5, min_stock = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, s.ID, s.CategoryID, nullIfEmpty(s.SizeGroupID), s.Name, s.Slug, s.MinStock, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update subcategory: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SubcategoryRepo) ListByCategory(ctx context.Context, categoryID string) ([]*entity.Subcategory, error) {
	if categoryID == "" {
		return r.list(ctx, `SELECT `+subcategoryColumns+` FROM subcategories ORDER BY created_at, id`)
	}
	return r.list(ctx, `SELECT `+subcategoryColumns+` FROM subcategories WHERE category_id = $1 ORDER BY created_at, id`, categoryID)
}

func (r *SubcategoryRepo) ListBySizeGroup(ctx context.Context, sizeGroupID string) ([]*entity.Subcategory, error) {
	return r.list(ctx, `SELECT `+subcategoryColumns+` FROM subcategories WHERE size_group_id = $1 ORDER BY created_at, id`, sizeGroupID)
}

func (r *SubcategoryRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Subcategory, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list subcategories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Subcategory
	for rows.Next() {
		s, err := scanSubcategory(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// SizeRepo grupos de tallas y tallas.
type SizeRepo struct {
	q Querier
}

// NewSizeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSizeRepository(q Querier) *SizeRepo {
	return &SizeRepo{q: q}
}

func (r *SizeRepo) CreateGroup(ctx context.Context, g *entity.SizeGroup) error {
	_, err := r.q.Exec(ctx, `INSERT INTO size_groups (id, name, created_at) VALUES ($1, $2, $3)`, g.ID, g.Name, g.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert size group: %w", domain.ErrDuplicate)
		}
		return fmt.Errorf("insert size group: %w", err)
	}
	return nil
}

func (r *SizeRepo) GetGroup(ctx context.Context, id string) (*entity.SizeGroup, error) {
	var g entity.SizeGroup
	err := r.q.QueryRow(ctx, `SELECT id, name, created_at FROM size_groups WHERE id = $1`, id).Scan(&g.ID, &g.Name, &g.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get size group: %w", err)
	}
	return &g, nil
}

func (r *SizeRepo) ListGroups(ctx context.Context) ([]*entity.SizeGroup, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, created_at FROM size_groups ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list size groups: %w", err)
	}
	defer rows.Close()
	var list []*entity.SizeGroup
	for rows.Next() {
		var g entity.SizeGroup
		if err := rows.Scan(&g.ID, &g.Name, &g.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, &g)
	}
	return list, rows.Err()
}

func (r *SizeRepo) Create(ctx context.Context, s *entity.Size) error {
	query := `
		INSERT INTO sizes (id, size_group_id, name, sort_order, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.q.Exec(ctx, query, s.ID, s.SizeGroupID, s.Name, s.SortOrder, s.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert size: %w", domain.ErrDuplicate)
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("insert size: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("insert size: %w", err)
	}
	return nil
}

func (r *SizeRepo) GetByID(ctx context.Context, id string) (*entity.Size, error) {
	var s entity.Size
	err := r.q.QueryRow(ctx, `SELECT id, size_group_id, name, sort_order, created_at FROM sizes WHERE id = $1`, id).
		Scan(&s.ID, &s.SizeGroupID, &s.Name, &s.SortOrder, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get size: %w", err)
	}
	return &s, nil
}

func (r *SizeRepo) ListByGroup(ctx context.Context, groupID string) ([]*entity.Size, error) {
	query := `
		SELECT id, size_group_id, name, sort_order, created_at
		FROM sizes WHERE size_group_id = $1
		ORDER BY sort_order, name`
	rows, err := r.q.Query(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("list sizes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Size
	for rows.Next() {
		var s entity.Size
		if err := rows.Scan(&s.ID, &s.SizeGroupID, &s.Name, &s.SortOrder, &s.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
