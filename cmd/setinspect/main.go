// setinspect loads scene files and prints what the sector index makes of
// them: sector counts per type, geometry fingerprints and, optionally,
// the answer to a point query. With save state enabled it also stores a
// snapshot of every scene.
//
// Usage:
//
//	go run ./cmd/setinspect
//	go run ./cmd/setinspect -scene mo -point 1,0.5,0 -type walk -margin 0.1
package main

import (
	"context"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"strconv"
	"strings"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/grimset/internal/config"
	"github.com/udisondev/grimset/internal/geom"
	"github.com/udisondev/grimset/internal/nav"
	"github.com/udisondev/grimset/internal/savestate"
	"github.com/udisondev/grimset/internal/scene"
	"github.com/udisondev/grimset/internal/sector"
	"github.com/udisondev/grimset/internal/set"
)

const ConfigPath = "config/engine.yaml"

type options struct {
	configPath string
	scene      string
	point      string
	typ        string
	margin     float64
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "config file (default $GRIMSET_CONFIG or "+ConfigPath+")")
	flag.StringVar(&opts.scene, "scene", "", "inspect only this scene")
	flag.StringVar(&opts.point, "point", "", "point query x,y,z (needs -scene)")
	flag.StringVar(&opts.typ, "type", "walk", "sector type for the point query")
	flag.Float64Var(&opts.margin, "margin", 0, "also find the nearest shrink-safe point with this margin")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx, opts); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	cfgPath := ConfigPath
	if p := os.Getenv("GRIMSET_CONFIG"); p != "" {
		cfgPath = p
	}
	if opts.configPath != "" {
		cfgPath = opts.configPath
	}
	cfg, err := config.LoadEngine(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))
	slog.Info("config loaded", "path", cfgPath, "scenes_dir", cfg.ScenesDir, "grid", cfg.GridCellSize)

	lib := scene.NewLibrary(cfg.ScenesDir)
	names := []string{opts.scene}
	if opts.scene == "" {
		if _, err := lib.LoadAll(ctx, cfg.PreloadWorkers); err != nil {
			return fmt.Errorf("loading scenes: %w", err)
		}
		names = lib.Names()
		slices.Sort(names)
	}

	setOpts := []set.Option{
		set.WithGridCellSize(cfg.GridCellSize),
		set.WithStrict(cfg.StrictShrink),
	}
	sets := make([]*set.Set, 0, len(names))
	for _, name := range names {
		sc, err := lib.Get(name)
		if err != nil {
			return fmt.Errorf("loading scene %s: %w", name, err)
		}
		s := sc.Build(setOpts...)
		logSummary(s)
		sets = append(sets, s)
	}

	if opts.point != "" {
		if len(sets) != 1 {
			return errors.New("-point needs -scene")
		}
		if err := queryPoint(sets[0], opts); err != nil {
			return err
		}
	}

	if cfg.SaveState.Enabled {
		if err := saveSnapshots(ctx, cfg, sets); err != nil {
			return fmt.Errorf("saving snapshots: %w", err)
		}
	}

	return nil
}

func logSummary(s *set.Set) {
	counts := s.CountByType()
	types := make([]sector.Type, 0, len(counts))
	for t := range counts {
		types = append(types, t)
	}
	slices.Sort(types)

	args := []any{"scene", s.Name(), "sectors", s.Len(), "fingerprint", hex.EncodeToString(s.Fingerprint()[:8])}
	for _, t := range types {
		args = append(args, t.String(), counts[t])
	}
	slog.Info("scene", args...)
}

func queryPoint(s *set.Set, opts options) error {
	p, err := parsePoint(opts.point)
	if err != nil {
		return err
	}
	mask, err := sector.ParseType(opts.typ)
	if err != nil {
		return err
	}
	if mask == sector.TypeNone {
		mask = sector.TypeAny
	}

	n := nav.New(s)
	if sec := n.ActorCurrentSector(p, mask); sec != nil {
		slog.Info("point sector", "point", p, "id", sec.ID(), "name", sec.Name(), "type", sec.Type())
	} else {
		slog.Info("point sector", "point", p, "found", false)
	}

	if opts.margin > 0 {
		if nearest, ok := n.ShrinkAndFindNearest(p, opts.margin); ok {
			slog.Info("shrink position", "point", p, "margin", opts.margin, "nearest", nearest)
		} else {
			slog.Info("shrink position", "point", p, "margin", opts.margin, "found", false)
		}
	}
	return nil
}

func saveSnapshots(ctx context.Context, cfg config.Engine, sets []*set.Set) error {
	ctx, cancel := context.WithTimeout(ctx, cfg.SaveState.Timeout)
	defer cancel()

	dsn := cfg.Database.DSN()
	if err := savestate.RunMigrations(ctx, dsn); err != nil {
		return err
	}
	slog.Info("database migrations applied")

	pool, err := savestate.Connect(ctx, dsn)
	if err != nil {
		return err
	}
	defer pool.Close()

	repo := savestate.NewRepository(pool)
	g, gctx := errgroup.WithContext(ctx)
	for _, s := range sets {
		st := s.Snapshot()
		g.Go(func() error {
			return repo.Save(gctx, cfg.SaveState.Slot, st)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	slog.Info("snapshots saved", "slot", cfg.SaveState.Slot, "scenes", len(sets))
	return nil
}

// parsePoint parses "x,y,z".
func parsePoint(s string) (geom.Vector, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return geom.Vector{}, fmt.Errorf("point %q: want x,y,z", s)
	}
	var xyz [3]float64
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return geom.Vector{}, fmt.Errorf("point %q: %w", s, err)
		}
		xyz[i] = f
	}
	return geom.NewVector(xyz[0], xyz[1], xyz[2]), nil
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
