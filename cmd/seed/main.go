// seed carga los datos maestros de demostración en PostgreSQL.
//
// Uso: go run ./cmd/seed [password]
// La clave del usuario demo también puede venir de SEED_PASSWORD; por defecto "demo1234".
package main

import (
	"context"
	"os"
	"time"

	"github.com/jhoicas/salecart-api/internal/infrastructure/postgres"
	"github.com/jhoicas/salecart-api/internal/migrate"
	"github.com/jhoicas/salecart-api/internal/seed"
	"github.com/jhoicas/salecart-api/pkg/config"
	"github.com/jhoicas/salecart-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	password := os.Getenv("SEED_PASSWORD")
	if len(os.Args) > 1 {
		password = os.Args[1]
	}
	if password == "" {
		password = "demo1234"
	}

	data, err := seed.Demo(password, time.Now().UTC())
	if err != nil {
		log.Fatal().Err(err).Msg("datos de demostración")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := migrate.Apply(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("aplicar migraciones")
		}
	}
	if err := postgres.WriteSeed(ctx, pool, data); err != nil {
		log.Fatal().Err(err).Msg("cargar datos")
	}
	log.Info().
		Str("email", seed.DemoEmail).
		Int("products", len(data.Products)).
		Int("parties", len(data.Parties)).
		Msg("datos de demostración cargados")
}
