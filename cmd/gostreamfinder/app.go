package main

import (
	"github.com/amaumene/gostreamfinder/internal/cache"
	"github.com/amaumene/gostreamfinder/internal/catalog"
	"github.com/amaumene/gostreamfinder/internal/config"
	"github.com/amaumene/gostreamfinder/internal/database"
	"github.com/amaumene/gostreamfinder/internal/handlers"
	"github.com/amaumene/gostreamfinder/internal/rag"
	"github.com/amaumene/gostreamfinder/internal/services"
	"github.com/amaumene/gostreamfinder/pkg/logger"
)

var _ services.RAGChain = (*rag.Chain)(nil)

var (
	Logger           logger.Logger
	Config           *config.Config
	DB               database.Database
	embeddingCache   *cache.LRUCache[[]float32]
	handler          *handlers.Handler
	serviceContainer *services.Container
)

// InitializeConfig loads configuration and sets up the logger. A missing TMDB
// key stops the process before any request is served.
func InitializeConfig() {
	cfg, err := config.Load()
	if err != nil {
		logger.New().Fatalf("[App] failed to load configuration: %v", err)
	}
	Config = cfg

	Logger = logger.NewWithConfig(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	for _, w := range cfg.Warnings() {
		Logger.Warnf("[App] %s", w)
	}
}

// InitializeDatabase opens the vector index. Retrieval needs the language
// model for query embeddings, so without a Gemini key no index is opened.
func InitializeDatabase() {
	if err := Config.RequireGemini(); err != nil {
		Logger.Warnf("[App] %v; /recommend is disabled", err)
		return
	}

	db, err := database.NewBolt(Config.Vector.Path, Config.Vector.Index)
	if err != nil {
		Logger.Fatalf("[App] failed to initialize vector index: %v", err)
	}
	DB = db

	count, err := db.Count()
	if err != nil {
		Logger.Warnf("[App] failed to count indexed documents: %v", err)
	} else if count == 0 {
		Logger.Warnf("[App] vector index %q is empty; run the ingest command first", Config.Vector.Index)
	} else {
		Logger.Infof("[App] vector index %q opened with %d documents", Config.Vector.Index, count)
	}
}

func InitializeServices() {
	tmdb, err := services.NewTMDB(Config.TMDB, nil, nil, Logger)
	if err != nil {
		Logger.Fatalf("[App] failed to initialize TMDB client: %v", err)
	}

	var catalogSource services.CatalogService = tmdb
	if Config.Catalog.BreakerEnabled {
		catalogSource = services.NewBreakerCatalog(tmdb, services.DefaultBreakerConfig(), Logger)
	}

	regions := catalog.DefaultRegions()
	aggregator := services.NewAggregator(catalogSource, regions, Config.Catalog.DefaultRegion, Logger)

	serviceContainer = &services.Container{
		Catalog:      catalogSource,
		Regions:      regions,
		Availability: aggregator,
		Resolver:     services.NewResolver(catalogSource, aggregator, Config.Catalog.Concurrency, Logger),
		Logger:       Logger,
	}

	if DB != nil {
		gemini, err := rag.NewGemini(Config.Gemini, nil, nil, Logger)
		if err != nil {
			Logger.Fatalf("[App] failed to initialize Gemini client: %v", err)
		}

		embeddingCache = cache.New[[]float32](Config.Vector.CacheSize, Config.Vector.CacheTTL)
		retriever := rag.NewRetriever(gemini, DB, embeddingCache, Config.Vector.TopK, Logger)
		chain := rag.NewChain(retriever, gemini, Logger)

		serviceContainer.DB = DB
		serviceContainer.Recommender = services.NewRecommender(chain, aggregator,
			Config.Catalog.DefaultRecommendLocation, Config.Catalog.Concurrency, Logger)
	}

	handler = handlers.New(serviceContainer, Config)

	Logger.Infof("[App] services initialized successfully (regions: %d, breaker: %t, recommendations: %t)",
		regions.Len(), Config.Catalog.BreakerEnabled, serviceContainer.Recommender != nil)
}
