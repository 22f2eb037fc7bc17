package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"golang.org/x/text/language"

	"github.com/jhoicas/salecart-api/internal/application/auth"
	"github.com/jhoicas/salecart-api/internal/application/cart"
	"github.com/jhoicas/salecart-api/internal/application/ports"
	"github.com/jhoicas/salecart-api/internal/application/pricing"
	"github.com/jhoicas/salecart-api/internal/application/sale"
	"github.com/jhoicas/salecart-api/internal/domain/repository"
	"github.com/jhoicas/salecart-api/internal/infrastructure/cache"
	"github.com/jhoicas/salecart-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/salecart-api/internal/infrastructure/pdf"
	"github.com/jhoicas/salecart-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/salecart-api/internal/interfaces/http"
	"github.com/jhoicas/salecart-api/internal/migrate"
	"github.com/jhoicas/salecart-api/internal/seed"
	"github.com/jhoicas/salecart-api/pkg/config"
	"github.com/jhoicas/salecart-api/pkg/logger"
)

// repos repositorios del driver de almacenamiento elegido.
type repos struct {
	cart      repository.CartLineRepository
	sale      repository.SaleRepository
	party     repository.PartyRepository
	product   repository.ProductRepository
	tax       repository.TaxRepository
	currency  repository.CurrencyRepository
	priceList repository.PriceListRepository
	shop      repository.ShopRepository
	company   repository.CompanyRepository
	user      repository.UserRepository
	tx        sale.TxRunner
	close     func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.App.Storage).
		Msg("iniciando aplicación")

	ctx := context.Background()
	r, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("storage", cfg.App.Storage).Msg("abrir almacenamiento")
	}
	defer r.close()

	// Caché de precios opcional (REDIS_ADDR vacío la desactiva)
	var priceCache ports.PriceCache
	if cfg.Redis.Enabled() {
		client, err := cache.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis no disponible, precios sin caché")
		} else {
			defer client.Close()
			priceCache = cache.NewPriceCache(client, cfg.Redis.PriceTTL, cfg.App.Name+":")
		}
	}

	prices := pricing.NewService(r.product, r.priceList, priceCache, log.Component("pricing"))
	cartUC := cart.NewUseCase(
		r.cart, r.party, r.product, r.tax, r.currency, r.shop, r.company, r.user,
		prices, cart.Config{UnitPriceDigits: cfg.Cart.UnitPriceDigits},
	)
	builder := sale.NewSkeletonService(r.shop, r.company, r.user, r.currency, r.tax, prices)

	// PDF: resumen imprimible del pedido de venta
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(language.Spanish)
	consolidator := sale.NewConsolidator(
		r.tx, builder, r.sale, r.party, r.product, r.company, r.currency, pdfGenerator, log.Component("sale"),
	)
	authUC := auth.NewAuthUseCase(r.user, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Sale Cart API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		CartUC:       cartUC,
		Consolidator: consolidator,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// openStorage construye los repositorios según STORAGE_DRIVER. En memoria se cargan los datos de demostración.
func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*repos, error) {
	if cfg.App.Storage == config.StorageMemory {
		store := memory.NewStore()
		data, err := seed.Demo(envOr("SEED_PASSWORD", "demo1234"), time.Now().UTC())
		if err != nil {
			return nil, err
		}
		data.LoadMemory(store)
		log.Info().Str("email", seed.DemoEmail).Msg("almacenamiento en memoria con datos de demostración")
		return &repos{
			cart:      memory.NewCartLineRepository(store),
			sale:      memory.NewSaleRepository(store),
			party:     memory.NewPartyRepository(store),
			product:   memory.NewProductRepository(store),
			tax:       memory.NewTaxRepository(store),
			currency:  memory.NewCurrencyRepository(store),
			priceList: memory.NewPriceListRepository(store),
			shop:      memory.NewShopRepository(store),
			company:   memory.NewCompanyRepository(store),
			user:      memory.NewUserRepository(store),
			tx:        memory.NewTxRunner(store),
			close:     func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}
	if cfg.DB.AutoMigrate {
		if err := migrate.Apply(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Msg("migraciones aplicadas")
	}
	return &repos{
		cart:      postgres.NewCartLineRepository(pool),
		sale:      postgres.NewSaleRepository(pool),
		party:     postgres.NewPartyRepository(pool),
		product:   postgres.NewProductRepository(pool),
		tax:       postgres.NewTaxRepository(pool),
		currency:  postgres.NewCurrencyRepository(pool),
		priceList: postgres.NewPriceListRepository(pool),
		shop:      postgres.NewShopRepository(pool),
		company:   postgres.NewCompanyRepository(pool),
		user:      postgres.NewUserRepository(pool),
		tx:        postgres.NewTxRunner(pool),
		close:     pool.Close,
	}, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
