package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/marketplace/backend/internal/infrastructure/config"
	"github.com/marketplace/backend/internal/infrastructure/logger"
	"github.com/marketplace/backend/internal/infrastructure/persistence"
	"github.com/marketplace/backend/internal/infrastructure/seed"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	opts := seed.DefaultOptions()
	flag.IntVar(&opts.Sellers, "sellers", opts.Sellers, "Number of seller accounts")
	flag.IntVar(&opts.Buyers, "buyers", opts.Buyers, "Number of buyer accounts")
	flag.IntVar(&opts.ProductsPerSeller, "products", opts.ProductsPerSeller, "Products per seller")
	flag.IntVar(&opts.Articles, "articles", opts.Articles, "Number of published articles")
	flag.Uint64Var(&opts.Seed, "seed", 0, "Random seed (0 = random)")
	flag.Parse()

	log, err := logger.New(&logger.Config{Level: "info", Format: "console", Output: "stdout"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	if err := config.LoadDotEnv(); err != nil {
		log.Fatal("Failed to load .env", zap.Error(err))
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}
	if cfg.App.IsProduction() {
		log.Fatal("Refusing to seed a production database")
	}

	db, err := persistence.NewDatabase(&cfg.Database, logger.NewGormLogger(log, gormlogger.Warn, 0))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()

	seeder := seed.New(seed.Repositories{
		Users:          persistence.NewGormUserRepository(db.DB),
		Categories:     persistence.NewGormCategoryRepository(db.DB),
		Products:       persistence.NewGormProductRepository(db.DB),
		Addresses:      persistence.NewGormAddressRepository(db.DB),
		Orders:         persistence.NewGormOrderRepository(db.DB),
		Reviews:        persistence.NewGormReviewRepository(db.DB),
		Articles:       persistence.NewGormArticleRepository(db.DB),
		PaymentMethods: persistence.NewGormPaymentMethodRepository(db.DB),
	}, opts, log)

	if _, err := seeder.Run(context.Background()); err != nil {
		if errors.Is(err, seed.ErrAlreadySeeded) {
			log.Warn("Database already seeded, nothing to do")
			return
		}
		log.Fatal("Seed failed", zap.Error(err))
	}
	log.Info("Demo accounts use the same password", zap.String("password", seed.DemoPassword))
}
