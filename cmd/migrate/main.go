// migrate aplica las migraciones embebidas. Uso: migrate [up|down]; "down" revierte un paso.
package main

import (
	"context"
	"os"

	"github.com/jhoicas/salecart-api/internal/infrastructure/postgres"
	"github.com/jhoicas/salecart-api/internal/migrate"
	"github.com/jhoicas/salecart-api/pkg/config"
	"github.com/jhoicas/salecart-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	direction := "up"
	if len(os.Args) > 1 {
		direction = os.Args[1]
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	switch direction {
	case "up":
		err = migrate.Apply(ctx, pool)
	case "down":
		err = migrate.Rollback(ctx, pool)
	default:
		log.Fatal().Str("direction", direction).Msg("dirección inválida, use up o down")
	}
	if err != nil {
		log.Fatal().Err(err).Str("direction", direction).Msg("migraciones")
	}
	log.Info().Str("direction", direction).Msg("migraciones aplicadas")
}
