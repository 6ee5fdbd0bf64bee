package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/albumstudio/album-web/internal/config"
	"github.com/albumstudio/album-web/internal/domain/album"
	"github.com/albumstudio/album-web/internal/domain/photo"
	"github.com/albumstudio/album-web/internal/domain/video"
	"github.com/albumstudio/album-web/internal/middleware"
	"github.com/albumstudio/album-web/internal/pkg/gateway"
	"github.com/albumstudio/album-web/internal/pkg/response"
)

func main() {
	cfg := config.Load()
	setupLogger(cfg)

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Str("backend", cfg.BackendURL).
		Msg("Starting album web tier")

	gw := gateway.New(gateway.Config{
		BackendURL:   cfg.BackendURL,
		PublicAPIURL: cfg.PublicAPIURL,
	}, gateway.ModeServer)

	// ---------- Services ----------
	photoService := photo.NewService(gw, cfg.TmpDir)
	albumService := album.NewService(gw, cfg.TmpDir)
	videoService := video.NewService(gw)

	// ---------- Handlers ----------
	photoHandler := photo.NewHandler(photoService)
	albumHandler := album.NewHandler(albumService)
	videoHandler := video.NewHandler(videoService)

	// ---------- Router ----------
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))
	r.Use(chimw.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		response.OK(w, map[string]string{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	r.Route("/api", func(r chi.Router) {
		photoHandler.Register(r)
		albumHandler.Register(r)
		videoHandler.Register(r)
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}

func setupLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: "15:04:05",
		})
	}
}
