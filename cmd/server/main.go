package main

import (
	"fmt"
	"log"
	"os"

	"github.com/cataloglens/backend/config"
	httpDelivery "github.com/cataloglens/backend/internal/delivery/http"
	"github.com/cataloglens/backend/internal/domain"
	"github.com/cataloglens/backend/internal/infrastructure/cache"
	"github.com/cataloglens/backend/internal/infrastructure/imagesearch"
	"github.com/cataloglens/backend/internal/infrastructure/ollama"
	"github.com/cataloglens/backend/internal/infrastructure/schemafile"
	"github.com/cataloglens/backend/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting CatalogLens Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)

	// The schema is mined offline by schemagen; a missing document means
	// the server cannot normalize anything, so it refuses to start.
	schema, err := schemafile.Load(cfg.Schema.Path)
	if err != nil {
		log.Fatalf("Failed to load schema: %v", err)
	}
	log.Printf("Schema loaded: %s (%d properties)", cfg.Schema.Path, len(schema.Properties))

	memoryCache := cache.NewMemoryCache()
	log.Printf("Cache TTL: %s", cfg.Cache.TTL)

	modelClient := ollama.NewClient(cfg.Ollama.BaseURL, cfg.Ollama.Model)
	if cfg.Server.Environment == "development" {
		modelClient.SetDebug(true)
		log.Printf("Ollama client debug mode enabled")
	}
	log.Printf("Ollama configured: %s (model: %s)", cfg.Ollama.BaseURL, cfg.Ollama.Model)

	var imageSearcher domain.ImageSearcher
	if cfg.Images.Enabled {
		imageSearcher = imagesearch.NewClient(cfg.Images.BaseURL)
		log.Printf("Image search configured: %s", cfg.Images.BaseURL)
	} else {
		log.Printf("Image search disabled")
	}

	parseService := usecase.NewParseService(
		memoryCache,
		modelClient,
		imageSearcher,
		schema,
		usecase.ParseServiceConfig{
			CacheTTL:       cfg.Cache.TTL,
			MatchThreshold: cfg.Matching.Threshold,
		},
	)

	log.Printf("Matching: threshold=%.2f", cfg.Matching.Threshold)

	handler := httpDelivery.NewHandler(parseService)
	router := httpDelivery.SetupRouter(cfg, handler)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
