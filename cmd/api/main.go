package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"nanomerch/internal/http/handlers"
	httpapi "nanomerch/internal/http/httpapi"
	"nanomerch/internal/infra"
	"nanomerch/internal/infra/credentials"
	"nanomerch/internal/infra/geoip"
	appmw "nanomerch/internal/middleware"
	"nanomerch/internal/providers/gemini"
	"nanomerch/internal/session"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	// The key is read on every generation, never cached here.
	client := gemini.NewClient(gemini.Options{
		Credentials: credentials.NewEnv(),
		BaseURL:     cfg.GeminiBaseURL,
		Model:       cfg.GeminiModel,
		Timeout:     cfg.GeminiTimeout,
		Logger:      &logger,
	})
	store := session.NewStore(session.Options{Generator: client, Logger: &logger})

	app, err := handlers.NewApp(store, &logger, cfg.MaxUploadBytes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build handlers")
	}
	resolver, err := geoip.Open(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip disabled")
	}
	defer resolver.Close()

	router := httpapi.NewRouter(app, countryLookup(resolver))
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Str("model", client.Model()).Msgf("studio listening on %s", cfg.Addr())
		if err := server.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}

// countryLookup keeps a disabled resolver out of the access log path.
func countryLookup(r *geoip.Resolver) appmw.CountryLookup {
	if r == nil {
		return nil
	}
	return r
}
