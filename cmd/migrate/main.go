// migrate aplica en orden los archivos migrations/*.sql sobre la base
// configurada vía variables de entorno (DB_HOST, DB_USER, ...).
//
// Uso: go run ./cmd/migrate [directorio]
// Por defecto lee el directorio migrations/ del repositorio.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/jhoicas/Costeo-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Costeo-api/pkg/config"
)

func main() {
	dir := "migrations"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	if !cfg.DB.Configured() {
		fmt.Fprintln(os.Stderr, "DB_HOST no configurado; nada que migrar")
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conectar a la base: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Listar migraciones: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Fprintf(os.Stderr, "Sin archivos .sql en %s\n", dir)
		os.Exit(1)
	}
	sort.Strings(files)

	for _, file := range files {
		sqlBytes, err := os.ReadFile(file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Leer %s: %v\n", file, err)
			os.Exit(1)
		}
		if _, err := pool.Exec(ctx, string(sqlBytes)); err != nil {
			fmt.Fprintf(os.Stderr, "Aplicar %s: %v\n", file, err)
			os.Exit(1)
		}
		fmt.Printf("Aplicada %s\n", filepath.Base(file))
	}
}
