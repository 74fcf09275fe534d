package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/application/catalog"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/application/dto"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain"
	domaincatalog "github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain/catalog"
)

var columns = []string{"categoria", "subcategoria", "grupo_tallas", "tallas", "producto", "precio", "descripcion", "min_stock"}

type row struct {
	Line        int
	Category    string
	Subcategory string
	SizeGroup   string
	Sizes       []string
	Product     string
	Price       decimal.Decimal
	Description string
	MinStock    *int
}

// parseCatalog decodifica el CSV. Si el contenido no es UTF-8 válido se asume ISO-8859-1.
func parseCatalog(data []byte) ([]row, error) {
	var r io.Reader = bytes.NewReader(data)
	if !utf8.Valid(data) {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("encabezado: %w", err)
	}
	idx := map[string]int{}
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, c := range []string{"categoria", "subcategoria", "producto", "precio"} {
		if _, ok := idx[c]; !ok {
			return nil, fmt.Errorf("falta la columna %q (esperadas: %s)", c, strings.Join(columns, ";"))
		}
	}
	get := func(rec []string, col string) string {
		i, ok := idx[col]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var out []row
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		if strings.TrimSpace(strings.Join(rec, "")) == "" {
			continue
		}
		r := row{
			Line:        line,
			Category:    get(rec, "categoria"),
			Subcategory: get(rec, "subcategoria"),
			SizeGroup:   get(rec, "grupo_tallas"),
			Product:     get(rec, "producto"),
			Description: get(rec, "descripcion"),
		}
		for _, s := range strings.Split(get(rec, "tallas"), "|") {
			if s = strings.TrimSpace(s); s != "" {
				r.Sizes = append(r.Sizes, s)
			}
		}
		// Excel en español exporta el precio con coma decimal.
		price, err := decimal.NewFromString(strings.ReplaceAll(get(rec, "precio"), ",", "."))
		if err != nil {
			return nil, fmt.Errorf("línea %d: precio inválido: %w", line, err)
		}
		r.Price = price
		if v := get(rec, "min_stock"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return nil, fmt.Errorf("línea %d: min_stock inválido: %w", line, err)
			}
			r.MinStock = &n
		}
		out = append(out, r)
	}
	return out, nil
}

type result struct {
	Products int
	Skipped  int
	Failed   int
}

// seeder resuelve por slug lo que ya existe y crea solo lo que falta.
type seeder struct {
	svc        *catalog.Service
	log        zerolog.Logger
	categories map[string]string          // slug -> id
	groups     map[string]string          // slug -> id
	sizes      map[string]map[string]bool // group id -> slug de talla
	subcats    map[string]string          // category id + "/" + slug -> id
}

func newSeeder(ctx context.Context, svc *catalog.Service, log zerolog.Logger) (*seeder, error) {
	s := &seeder{
		svc:        svc,
		log:        log,
		categories: map[string]string{},
		groups:     map[string]string{},
		sizes:      map[string]map[string]bool{},
		subcats:    map[string]string{},
	}
	cats, err := svc.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range cats {
		s.categories[c.Slug] = c.ID
	}
	groups, err := svc.ListSizeGroups(ctx)
	if err != nil {
		return nil, err
	}
	for _, g := range groups {
		s.groups[domaincatalog.Slug(g.Name)] = g.ID
		s.sizes[g.ID] = map[string]bool{}
		for _, size := range g.Sizes {
			s.sizes[g.ID][domaincatalog.Slug(size.Name)] = true
		}
	}
	subs, err := svc.ListSubcategories(ctx, "")
	if err != nil {
		return nil, err
	}
	for _, sub := range subs {
		s.subcats[sub.CategoryID+"/"+sub.Slug] = sub.ID
	}
	return s, nil
}

func (s *seeder) load(ctx context.Context, rows []row) result {
	var res result
	for _, r := range rows {
		err := s.loadRow(ctx, r)
		switch {
		case err == nil:
			res.Products++
		case errors.Is(err, domain.ErrDuplicate):
			res.Skipped++
			s.log.Debug().Int("linea", r.Line).Str("producto", r.Product).Msg("producto ya existe")
		default:
			res.Failed++
			s.log.Warn().Err(err).Int("linea", r.Line).Str("producto", r.Product).Msg("fila omitida")
		}
	}
	return res
}

func (s *seeder) loadRow(ctx context.Context, r row) error {
	categoryID, err := s.category(ctx, r.Category)
	if err != nil {
		return err
	}
	groupID, err := s.sizeGroup(ctx, r.SizeGroup, r.Sizes)
	if err != nil {
		return err
	}
	subID, err := s.subcategory(ctx, categoryID, groupID, r)
	if err != nil {
		return err
	}
	_, err = s.svc.CreateProduct(ctx, dto.CreateProductRequest{
		SubcategoryID: subID,
		Name:          r.Product,
		Description:   r.Description,
		Price:         r.Price,
	})
	return err
}

func (s *seeder) category(ctx context.Context, name string) (string, error) {
	slug := domaincatalog.Slug(name)
	if id, ok := s.categories[slug]; ok {
		return id, nil
	}
	c, err := s.svc.CreateCategory(ctx, dto.CreateCategoryRequest{Name: name})
	if err != nil {
		return "", fmt.Errorf("categoría %q: %w", name, err)
	}
	s.categories[slug] = c.ID
	return c.ID, nil
}

// sizeGroup crea el grupo y las tallas que falten; las tallas nuevas provisionan stock en cero.
func (s *seeder) sizeGroup(ctx context.Context, name string, sizes []string) (string, error) {
	if name == "" {
		return "", nil
	}
	slug := domaincatalog.Slug(name)
	id, ok := s.groups[slug]
	if !ok {
		g, err := s.svc.CreateSizeGroup(ctx, dto.CreateSizeGroupRequest{Name: name})
		if err != nil {
			return "", fmt.Errorf("grupo de tallas %q: %w", name, err)
		}
		id = g.ID
		s.groups[slug] = id
		s.sizes[id] = map[string]bool{}
	}
	for _, size := range sizes {
		key := domaincatalog.Slug(size)
		if s.sizes[id][key] {
			continue
		}
		if _, err := s.svc.CreateSize(ctx, id, dto.CreateSizeRequest{Name: size, SortOrder: len(s.sizes[id])}); err != nil {
			return "", fmt.Errorf("talla %q: %w", size, err)
		}
		s.sizes[id][key] = true
	}
	return id, nil
}

func (s *seeder) subcategory(ctx context.Context, categoryID, groupID string, r row) (string, error) {
	key := categoryID + "/" + domaincatalog.Slug(r.Subcategory)
	if id, ok := s.subcats[key]; ok {
		return id, nil
	}
	sub, err := s.svc.CreateSubcategory(ctx, dto.CreateSubcategoryRequest{
		CategoryID:  categoryID,
		SizeGroupID: groupID,
		Name:        r.Subcategory,
		MinStock:    r.MinStock,
	})
	if err != nil {
		return "", fmt.Errorf("subcategoría %q: %w", r.Subcategory, err)
	}
	s.subcats[key] = sub.ID
	return sub.ID, nil
}
