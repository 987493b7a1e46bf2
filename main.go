package main

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"qmatch/config"
	"qmatch/database"
	"qmatch/extractor"
	"qmatch/handlers"
	"qmatch/logger"
	"qmatch/middleware"
	"qmatch/repository"
	"qmatch/scheduler"
	"qmatch/scraper"
	"qmatch/services"
	"qmatch/services/cache"
	"qmatch/services/feed"
	"qmatch/services/publisher"
)

func main() {
	envErr := godotenv.Load()
	logger.Init()
	if envErr != nil {
		logger.Info("No .env file found, using environment variables")
	}

	cfg := config.Load()
	log := logger.ForComponent("main")

	if err := database.InitDatabase(); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer database.CloseDatabase()

	if err := database.CreateTables(); err != nil {
		log.Fatal().Err(err).Msg("failed to create tables")
	}

	catalogRepo := repository.NewCatalogRepository()
	snapRepo := repository.NewSnapshotRepository()
	changeRepo := repository.NewChangeRepository()

	classifier := extractor.NewClassifier(extractor.ClassifierConfig{
		MinPrice: cfg.MinPrice,
		MaxPrice: cfg.MaxPrice,
	})
	feedClient := feed.NewClient(cfg.CatalogBaseURL, cfg.UserAgent)
	engine := extractor.NewEngine(classifier, feedClient)

	renderer := scraper.NewRenderer(cfg.UserAgent, cfg.RenderTimeout, cfg.SettleWait)
	defer renderer.Close()

	catalogScraper, err := scraper.NewCatalogScraper(renderer, engine, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create catalog scraper")
	}

	var cooldownCache cache.CacheService
	if cfg.MemcacheAddr != "" {
		cooldownCache = cache.NewMemcacheService(cfg.MemcacheAddr)
		log.Info().Str("addr", cfg.MemcacheAddr).Msg("using memcache for scrape cooldowns")
	} else {
		cooldownCache = cache.NewMemoryCache()
	}

	var eventPublisher publisher.Publisher = publisher.Noop{}
	if cfg.RedisAddr != "" {
		redisPub := publisher.NewRedisPublisher(
			context.Background(), cfg.RedisAddr, cfg.RedisDB, cfg.RedisStream, cfg.RedisStreamSize)
		eventPublisher = redisPub
		log.Info().Str("addr", cfg.RedisAddr).Str("stream", cfg.RedisStream).Msg("publishing price changes to redis")
	}
	defer eventPublisher.Close()

	service := services.NewCatalogService(
		catalogScraper, catalogRepo, snapRepo, changeRepo,
		cooldownCache, eventPublisher,
		cfg.ScrapeCooldown, cfg.BatchPause,
	)

	priceChecker := scheduler.NewPriceChecker(catalogRepo, service, cfg.CheckCron)
	priceChecker.Start()
	defer priceChecker.Stop()

	h := handlers.NewHandlers(catalogRepo, snapRepo, changeRepo, catalogScraper, service)

	r := mux.NewRouter()
	r.Use(middleware.LoggingMiddleware)
	r.Use(middleware.RateLimitMiddleware(cfg.RateLimitRPS))

	r.HandleFunc("/health", h.HealthCheck).Methods("GET")

	apiV1 := r.PathPrefix("/api/v1").Subrouter()
	apiV1.HandleFunc("/catalogs", h.AddCatalog).Methods("POST")
	apiV1.HandleFunc("/catalogs", h.GetCatalogs).Methods("GET")
	apiV1.HandleFunc("/catalogs/{catalogNo}", h.DeleteCatalog).Methods("DELETE")
	apiV1.HandleFunc("/catalogs/{catalogNo}/scrape", h.ScrapeCatalog).Methods("POST")
	apiV1.HandleFunc("/scrape-batch", h.ScrapeBatch).Methods("POST")
	apiV1.HandleFunc("/catalogs/{catalogNo}/snapshot", h.GetSnapshot).Methods("GET")
	apiV1.HandleFunc("/catalogs/{catalogNo}/history", h.GetChangeHistory).Methods("GET")
	apiV1.HandleFunc("/catalogs/{catalogNo}/recent-drops", h.GetRecentDrops).Methods("GET")
	apiV1.HandleFunc("/catalogs/{catalogNo}/debug", h.GetDebugScreenshot).Methods("GET")
	apiV1.HandleFunc("/price-changes", h.RecordPriceChange).Methods("POST")

	c := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.AllowedOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	addr := cfg.Host + ":" + cfg.Port
	log.Info().Str("addr", addr).Msg("server starting")
	if err := http.ListenAndServe(addr, c.Handler(r)); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
