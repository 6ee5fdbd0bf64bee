package main

import (
	"context"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/albumstudio/album-web/internal/config"
	"github.com/albumstudio/album-web/internal/domain/album"
	"github.com/albumstudio/album-web/internal/domain/photo"
	"github.com/albumstudio/album-web/internal/domain/video"
	"github.com/albumstudio/album-web/internal/pkg/gateway"
	"github.com/albumstudio/album-web/internal/ui"
)

func main() {
	cfg := config.Load()

	// Logs go to a file so they don't interfere with TUI rendering.
	logPath := filepath.Join(cfg.TmpDir, "albumtui.log")
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err == nil {
		defer logFile.Close()
		log.Logger = zerolog.New(logFile).With().Timestamp().Logger()
	}

	gw := gateway.New(gateway.Config{
		BackendURL:   cfg.BackendURL,
		PublicAPIURL: cfg.PublicAPIURL,
	}, gateway.ModeClient)

	photoService := photo.NewService(gw, cfg.TmpDir)
	albumService := album.NewService(gw, cfg.TmpDir)
	videoService := video.NewService(gw)

	model := ui.NewModel(context.Background(), photoService, albumService, videoService)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		log.Fatal().Err(err).Msg("TUI exited with error")
	}
}
