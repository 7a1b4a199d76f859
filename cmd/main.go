package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"tally/internal/api"
	"tally/internal/config"
	"tally/internal/database"
	"tally/internal/insights"
	"tally/internal/planner"
)

var (
	port        = flag.Int("port", 0, "API server port (overrides config)")
	metricsPort = flag.Int("metrics-port", 0, "Metrics server port (overrides config)")
	configFile  = flag.String("config", "configs/config.yaml", "Path to configuration file")
	seed        = flag.Bool("seed", true, "Seed the database with sample data when empty")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *metricsPort != 0 {
		cfg.Server.MetricsPort = *metricsPort
	}

	if err := database.InitDB(cfg.Database.Driver, cfg.Database.DSN); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.CloseDB()

	db := database.GetDB()
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	if *seed {
		database.Seed(db)
	}

	repo := database.NewRepository(db)
	pl := planner.New(repo)

	var generator insights.Generator
	if model := initializeLLM(cfg); model != nil {
		generator = insights.NewLLMGenerator(model)
	}
	assistant := insights.NewAssistant(generator, repo)

	server := api.NewServer(db, pl, assistant, cfg.Auth.Secret)

	go startMetricsServer(cfg.Server.MetricsPort)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: server.Router,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down servers...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("API server shutdown error: %v", err)
		}
	}()

	log.Printf("Starting API server on port %d", cfg.Server.Port)
	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("API server error: %v", err)
	}
}

// initializeLLM builds the OpenAI client, or returns nil when no key is
// configured so the assistant degrades instead of failing startup.
func initializeLLM(cfg *config.Config) llms.Model {
	if cfg.OpenAI.APIKey == "" {
		log.Println("No OpenAI API key configured; AI chat will return degraded responses")
		return nil
	}

	model, err := openai.New(
		openai.WithModel(cfg.OpenAI.Model),
		openai.WithToken(cfg.OpenAI.APIKey),
	)
	if err != nil {
		log.Printf("Failed to initialize OpenAI client: %v", err)
		return nil
	}
	return model
}

func startMetricsServer(port int) {
	metricsRouter := gin.Default()
	metricsRouter.GET("/metrics", gin.WrapH(promhttp.Handler()))

	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: metricsRouter,
	}

	log.Printf("Starting metrics server on port %d", port)
	if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
		log.Printf("Metrics server error: %v", err)
	}
}
