package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/go-redis/redis_rate/v10"
	"github.com/milecraft/award-search-service/internal/app/config"
	"github.com/milecraft/award-search-service/internal/app/dto"
	"github.com/milecraft/award-search-service/internal/app/endpoints"
	"github.com/milecraft/award-search-service/internal/app/service"
	"github.com/milecraft/award-search-service/internal/app/transport"
	"github.com/milecraft/award-search-service/internal/pkg/logger"
	"github.com/milecraft/award-search-service/internal/pkg/modelprovider"
	"github.com/milecraft/award-search-service/internal/pkg/modelprovider/gemini"
	"github.com/redis/go-redis/v9"
)

// @title           Award Flight Search Service API
// @version         0.0.1
// @description     award-search-service
// @host      localhost:8080
// @BasePath  /
func main() {

	cfg := config.MustInitConfig(".env")
	logger.InitStructuredLogger(cfg.LogLevel)

	slog.Debug("config loaded successfully", slog.Any("config", cfg))
	runApp(cfg)
}

func runApp(cfg config.Config) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	slog.InfoContext(ctx, "starting...", slog.String("log_level", string(cfg.LogLevel)))

	var waitGroup sync.WaitGroup
	// Starts the server in a go routine
	waitGroup.Add(1)
	go func() {
		defer waitGroup.Done()
		startHTTPServer(ctx, cfg)
	}()

	sigChannel := make(chan os.Signal, 1)
	signal.Notify(sigChannel, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)

	select {
	case sig := <-sigChannel:
		cancel()
		slog.InfoContext(ctx, "received OS signal. Exiting...", slog.String("signal", sig.String()))
	case <-ctx.Done():
		slog.ErrorContext(ctx, "failed to start HTTP server")
	}

	waitGroup.Wait()
	slog.InfoContext(ctx, "All service closed...")
}

func startHTTPServer(ctx context.Context, cfg config.Config) {
	endpts := makeEndpoints(ctx, &cfg)
	router := transport.MakeHTTPRouter(&cfg, endpts)
	server := &http.Server{
		Handler:      router,
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		WriteTimeout: cfg.HTTP.Timeout,
		ReadTimeout:  cfg.HTTP.Timeout,
	}

	slog.Info("running HTTP server...", slog.Int("port", cfg.HTTP.Port))

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.ErrorContext(ctx, "failed to start HTTP server", slog.String("error", err.Error()))
		}
	}()

	<-ctx.Done()

	if err := server.Shutdown(ctx); err != nil {
		slog.ErrorContext(ctx, "failed to shutdown HTTP server", slog.String("error", err.Error()))
	}

	slog.InfoContext(ctx, "HTTP server shutdown gracefully")
}

func makeEndpoints(ctx context.Context, cfg *config.Config) endpoints.Endpoints {
	// init redis for outbound rate limiting
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// init validator
	if err := dto.InitValidator(); err != nil {
		slog.ErrorContext(ctx, "failed to init validator", slog.String("error", err.Error()))
		panic(err)
	}

	// init factory
	providerFactory := initModelProviderFactory(cfg, redisClient)

	// init service endpoint
	return endpoints.Endpoints{
		AwardSearchEndpoint: makeAwardSearchEndpoint(providerFactory, cfg),
	}
}

// register model provider
func initModelProviderFactory(cfg *config.Config, redisClient *redis.Client) *modelprovider.ModelProviderFactory {

	limiter := redis_rate.NewLimiter(redisClient)

	factory := modelprovider.NewModelProviderFactory()
	factory.AddProvider(gemini.ProviderName, gemini.NewProvider(modelprovider.ModelProviderConfig{
		APIKey:         cfg.Gemini.APIKey,
		BaseURL:        cfg.Gemini.BaseURL,
		Model:          cfg.Gemini.Model,
		Timeout:        cfg.Gemini.Timeout,
		ThinkingBudget: cfg.Gemini.ThinkingBudget,
		RateLimitRPS:   cfg.Gemini.RateLimitRPS,
		Limiter:        limiter,
	}))

	return factory
}

func makeAwardSearchEndpoint(factory *modelprovider.ModelProviderFactory,
	cfg *config.Config) endpoints.AwardSearchEndpoint {

	provider := factory.GetProvider(gemini.ProviderName)

	// service
	searchService := service.NewSearchService(provider, cfg.Gemini.Model, cfg.Search.MaxRetries)

	// endpoint
	return endpoints.MakeAwardSearchEndpoint(searchService)
}
