// Package app wires the checkout components into one object graph shared by
// the HTTP server and the demo command.
package app

import (
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	limiter "github.com/ulule/limiter/v3"

	"github.com/noah-isme/toko-checkout/internal/cart"
	"github.com/noah-isme/toko-checkout/internal/catalog"
	"github.com/noah-isme/toko-checkout/internal/checkout"
	"github.com/noah-isme/toko-checkout/internal/common"
	"github.com/noah-isme/toko-checkout/internal/events"
	"github.com/noah-isme/toko-checkout/internal/inventory"
	"github.com/noah-isme/toko-checkout/internal/lock"
	"github.com/noah-isme/toko-checkout/internal/order"
	"github.com/noah-isme/toko-checkout/internal/pricing"
	"github.com/noah-isme/toko-checkout/internal/ratelimit"
	"github.com/noah-isme/toko-checkout/internal/report"
)

// Options configures New. Redis is optional; without it locks, rate limit
// counters and the report cache stay in process.
type Options struct {
	Redis          *redis.Client
	Logger         *zerolog.Logger
	SeedDemoData   bool
	LockTTL        time.Duration
	ReportCacheTTL time.Duration
	RateLimit      string
	IdempotencyTTL time.Duration
}

// App enumerates the services shared across modules.
type App struct {
	Redis  *redis.Client
	Logger *zerolog.Logger

	Catalog  *catalog.Catalog
	Stock    *inventory.Stock
	Engine   *pricing.Engine
	Carts    *cart.Store
	Events   *events.MemoryStore
	Bus      *events.Bus
	Orders   *order.Service
	Checkout *checkout.Service
	Sales    *report.Sales
	Reports  *report.Service
	Limiter  *limiter.Limiter
	Idem     common.Idem
}

// New builds the object graph.
func New(opts Options) (*App, error) {
	logger := opts.Logger
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	cat := catalog.New()
	stock := inventory.New()
	if opts.SeedDemoData {
		var err error
		if cat, err = catalog.Seed(); err != nil {
			return nil, fmt.Errorf("seed catalog: %w", err)
		}
		if stock, err = inventory.NewWithLevels(catalog.DemoStockLevels()); err != nil {
			return nil, fmt.Errorf("seed stock: %w", err)
		}
	}

	rateLimit := opts.RateLimit
	if rateLimit == "" {
		rateLimit = "30-M"
	}
	lim, err := ratelimit.New(rateLimit, opts.Redis)
	if err != nil {
		return nil, err
	}

	var locker lock.Locker = &lock.Local{}
	var cache redis.UniversalClient
	if opts.Redis != nil {
		locker = &lock.Redis{R: opts.Redis}
		cache = opts.Redis
	}

	engine := pricing.NewEngine(cat, logger)
	eventStore := &events.MemoryStore{}
	bus := &events.Bus{Store: eventStore}
	orders := &order.Service{Store: order.NewStore(), Events: bus, Logger: logger}
	sales := &report.Sales{Catalog: cat}
	bus.Subscribe(sales.PaidNotifier(orders))

	return &App{
		Redis:    opts.Redis,
		Logger:   logger,
		Catalog:  cat,
		Stock:    stock,
		Engine:   engine,
		Carts:    cart.NewStore(cat, stock),
		Events:   eventStore,
		Bus:      bus,
		Orders:   orders,
		Checkout: &checkout.Service{
			Catalog: cat,
			Stock:   stock,
			Engine:  engine,
			Orders:  orders,
			Locker:  locker,
			LockTTL: opts.LockTTL,
			Logger:  logger,
		},
		Sales:   sales,
		Reports: &report.Service{Sales: sales, R: cache, TTL: opts.ReportCacheTTL, TopN: report.DefaultTopN},
		Limiter: lim,
		Idem:    common.Idem{R: opts.Redis, TTL: opts.IdempotencyTTL},
	}, nil
}
