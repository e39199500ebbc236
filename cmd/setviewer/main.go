// setviewer shows the sector wireframe of one scene and lets an actor walk
// over its walk boxes.
//
// Keys: arrows walk, S toggles the walk-box shrink, G glides the actor to
// the nearest shrink-safe point, O jumps to the opposite edge of the
// current box, H shows hidden sectors, N toggles names.
//
// Usage:
//
//	go run ./cmd/setviewer -scene mo
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/udisondev/grimset/internal/config"
	"github.com/udisondev/grimset/internal/debugdraw"
	"github.com/udisondev/grimset/internal/scene"
	"github.com/udisondev/grimset/internal/set"
)

const ConfigPath = "config/engine.yaml"

func main() {
	configPath := flag.String("config", "", "config file (default $GRIMSET_CONFIG or "+ConfigPath+")")
	sceneName := flag.String("scene", "", "scene to show")
	flag.Parse()

	if err := run(*configPath, *sceneName); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(configPath, sceneName string) error {
	cfgPath := ConfigPath
	if p := os.Getenv("GRIMSET_CONFIG"); p != "" {
		cfgPath = p
	}
	if configPath != "" {
		cfgPath = configPath
	}
	cfg, err := config.LoadEngine(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))

	if sceneName == "" {
		return errors.New("no scene given, use -scene")
	}
	sc, err := scene.NewLibrary(cfg.ScenesDir).Get(sceneName)
	if err != nil {
		return fmt.Errorf("loading scene: %w", err)
	}
	s := sc.Build(set.WithGridCellSize(cfg.GridCellSize), set.WithStrict(cfg.StrictShrink))

	vc := cfg.Viewer
	overlay := &debugdraw.Overlay{
		View:       debugdraw.Fit(s, vc.Width, vc.Height),
		ShowNames:  vc.ShowNames,
		ShowHidden: vc.ShowHidden,
		LineWidth:  1.5,
	}
	game := newGame(s, overlay, vc)

	ebiten.SetWindowSize(vc.Width, vc.Height)
	ebiten.SetWindowTitle("setviewer: " + s.Name())
	slog.Info("viewer started", "scene", s.Name(), "sectors", s.Len())

	if err := ebiten.RunGame(game); err != nil {
		return fmt.Errorf("running viewer: %w", err)
	}
	return nil
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
