// import_products carga un catálogo CSV/XLSX en la cuenta de un distribuidor.
//
// Uso: go run ./cmd/import_products -email dist@example.com -file catalogo.xlsx [-dry-run]
// La contraseña se lee de IMPORT_PASSWORD. Los CSV pueden venir en UTF-8 o Windows-1252.
// Se descartan las filas sin nombre o sin precio positivo.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jhoicas/orderly-console/internal/application/auth"
	"github.com/jhoicas/orderly-console/internal/application/usecase"
	"github.com/jhoicas/orderly-console/internal/domain/entity"
	"github.com/jhoicas/orderly-console/internal/infrastructure/remote"
	"github.com/jhoicas/orderly-console/internal/infrastructure/sheet"
	"github.com/jhoicas/orderly-console/pkg/config"
	"github.com/jhoicas/orderly-console/pkg/logger"
)

func main() {
	email := flag.String("email", "", "email del distribuidor")
	file := flag.String("file", "", "archivo .csv o .xlsx")
	dryRun := flag.Bool("dry-run", false, "solo leer y validar el archivo")
	flag.Parse()

	if *file == "" || (*email == "" && !*dryRun) {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	f, err := os.Open(*file)
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("abrir archivo")
	}
	defer f.Close()

	rows, err := sheet.NewCatalogParser().ParseCatalog(filepath.Base(*file), f)
	if err != nil {
		log.Fatal().Err(err).Msg("leer catálogo")
	}
	items := usecase.ImportableRows(rows)
	log.Info().Int("rows", len(rows)).Int("importable", len(items)).Msg("catálogo leído")
	if len(items) == 0 {
		log.Fatal().Msg("nada que importar: revise nombre y precio de las filas")
	}
	if *dryRun {
		for _, it := range items {
			fmt.Printf("%s\t%s\t%d\n", it.Name, it.Price.StringFixed(2), it.Stock)
		}
		return
	}

	client, err := remote.NewClient(remote.Config{
		BaseURL:   cfg.Upstream.BaseURL,
		Timeout:   cfg.Upstream.Timeout,
		UserAgent: cfg.Upstream.UserAgent,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("cliente remoto")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	res, err := auth.NewUseCase(client).Login(ctx, auth.LoginInput{
		Email:    *email,
		Password: os.Getenv("IMPORT_PASSWORD"),
		Role:     entity.RoleDistributor,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("login")
	}
	if res.User.Role != entity.RoleDistributor {
		log.Fatal().Str("role", string(res.User.Role)).Msg("la cuenta no es de distribuidor")
	}

	out, err := client.BulkCreateProducts(ctx, items)
	if err != nil {
		log.Fatal().Err(err).Msg("alta masiva")
	}
	log.Info().Int("created", out.Created).Str("distributor", res.User.Email).Msg("importación terminada")
	_ = client.Logout(ctx)
}
