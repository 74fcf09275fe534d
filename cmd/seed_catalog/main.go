// seed_catalog carga un catálogo desde CSV (separado por ';') usando los mismos casos de uso
// que la API, de modo que el aprovisionamiento de inventario por talla corre igual que en producción.
//
// Uso: go run ./cmd/seed_catalog [ruta/catalogo.csv]
// Por defecto busca catalogo.csv en el directorio actual. Acepta UTF-8 o ISO-8859-1 (export de Excel).
//
// Columnas: categoria;subcategoria;grupo_tallas;tallas;producto;precio;descripcion;min_stock
// tallas va separado por '|' (ej. S|M|L). grupo_tallas y min_stock pueden ir vacíos.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/application/catalog"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/application/inventory"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/infrastructure/postgres"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/pkg/config"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/pkg/logger"
)

func main() {
	csvPath := "catalogo.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	data, err := os.ReadFile(csvPath)
	if err != nil {
		log.Fatal().Err(err).Str("file", csvPath).Msg("abrir CSV")
	}
	rows, err := parseCatalog(data)
	if err != nil {
		log.Fatal().Err(err).Msg("leer CSV")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	svc := catalog.NewService(postgres.NewTxRunner(pool), postgres.NewStore(pool), inventory.NewProvisioner(), log.Component("catalog"))
	s, err := newSeeder(ctx, svc, log.Component("seed"))
	if err != nil {
		log.Error().Err(err).Msg("leer catálogo existente")
		return
	}
	res := s.load(ctx, rows)
	log.Info().
		Int("filas", len(rows)).
		Int("productos", res.Products).
		Int("omitidos", res.Skipped).
		Int("errores", res.Failed).
		Msg("catálogo cargado")
}
