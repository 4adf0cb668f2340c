package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fortuna/gametime/internal/api/rest"
	"github.com/fortuna/gametime/internal/cache"
	"github.com/fortuna/gametime/internal/links"
	"github.com/fortuna/gametime/internal/scrape"
	"github.com/fortuna/gametime/internal/teams"
	"github.com/joho/godotenv"
)

const (
	serviceName    = "gametime"
	serviceVersion = "1.0.0"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	log.Printf("Starting %s v%s - Sports Schedule Service", serviceName, serviceVersion)

	config := loadConfig()

	// The registry is built once and shared read-only by every request.
	registry := teams.NewRegistry()

	var fetcher scrape.Fetcher
	if config.RenderJS {
		browser := scrape.NewBrowserFetcher()
		defer browser.Close()
		fetcher = browser
		log.Println("✓ Headless browser fetcher enabled")
	} else {
		fetcher = scrape.NewHTTPFetcher()
	}

	scraper, err := scrape.NewScraper(fetcher, registry, config.ScheduleBaseURL)
	if err != nil {
		log.Fatalf("Failed to create scraper: %v", err)
	}

	harvester := links.NewHarvester(registry)

	// Redis is optional: no REDIS_URL means every read scrapes fresh.
	var scheduleCache *cache.ScheduleCache
	if config.RedisURL != "" {
		scheduleCache, err = cache.New(config.RedisURL, config.CacheTTL)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer scheduleCache.Close()
		log.Printf("✓ Connected to Redis (schedule TTL %v)", config.CacheTTL)
	}

	handler := rest.NewHandler(scraper, harvester, registry, scheduleCache)
	restServer := rest.NewServer(config.RESTPort, handler)
	go func() {
		log.Printf("Starting REST API server on port %s", config.RESTPort)
		if err := restServer.Start(); err != nil {
			log.Printf("REST server error: %v", err)
		}
	}()

	log.Printf("✓ REST API server listening on :%s", config.RESTPort)
	log.Printf("✓ %s v%s started successfully", serviceName, serviceVersion)

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Printf("Shutting down %s gracefully...", serviceName)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := restServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("REST API server shutdown error: %v", err)
	}

	log.Printf("%s stopped", serviceName)
}

type Config struct {
	RESTPort        string
	RedisURL        string
	CacheTTL        time.Duration
	ScheduleBaseURL string
	RenderJS        bool
}

func loadConfig() Config {
	ttl := 60 * time.Second
	if raw := getEnv("CACHE_TTL", ""); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			ttl = parsed
		} else {
			log.Printf("Invalid CACHE_TTL %q, using default %v", raw, ttl)
		}
	}
	return Config{
		RESTPort:        getEnv("REST_PORT", "8080"),
		RedisURL:        getEnv("REDIS_URL", ""),
		CacheTTL:        ttl,
		ScheduleBaseURL: getEnv("SCHEDULE_BASE_URL", scrape.DefaultBaseURL),
		RenderJS:        getEnv("SCRAPE_RENDER_JS", "false") == "true",
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
