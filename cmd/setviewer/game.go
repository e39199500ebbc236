package main

import (
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/udisondev/grimset/internal/config"
	"github.com/udisondev/grimset/internal/debugdraw"
	"github.com/udisondev/grimset/internal/geom"
	"github.com/udisondev/grimset/internal/script"
	"github.com/udisondev/grimset/internal/set"
	"github.com/udisondev/grimset/internal/walk"
)

// actor is the walking marker of the viewer.
type actor struct {
	pos    geom.Vector
	facing geom.Vector
}

func (a *actor) Pos() geom.Vector        { return a.pos }
func (a *actor) PuckVector() geom.Vector { return a.facing }

type game struct {
	set     *set.Set
	overlay *debugdraw.Overlay
	cfg     config.Viewer

	machine *script.Machine
	walker  *walk.Walker
	glide   *walk.Glide
	actor   *actor
	status  string
}

func newGame(s *set.Set, overlay *debugdraw.Overlay, cfg config.Viewer) *game {
	m := script.NewMachine()
	m.SetScene(s)

	g := &game{
		set:     s,
		overlay: overlay,
		cfg:     cfg,
		machine: m,
		walker:  walk.NewWalker(s),
		actor:   &actor{facing: geom.NewVector(0, 1, 0)},
	}

	// Start on the walk box closest to the middle of the view.
	if _, p, ok := s.FindClosestSector(overlay.View.Center); ok {
		g.actor.pos = p
	}
	return g
}

func (g *game) Update() error {
	dt := time.Second / time.Duration(ebiten.TPS())

	if g.glide != nil {
		pos, done := g.glide.Update(dt)
		g.actor.pos = pos
		if done {
			g.glide = nil
		}
		return nil
	}

	var dir geom.Vector
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		dir.Y++
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		dir.Y--
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		dir.X--
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		dir.X++
	}
	if !dir.IsZero() {
		g.actor.facing = dir.Unit()
		step := g.actor.facing.Scale(g.cfg.WalkSpeed * dt.Seconds())
		g.actor.pos = g.walker.Step(g.actor.pos, step)
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		g.toggleShrink()
	case inpututil.IsKeyJustPressed(ebiten.KeyG):
		g.glideToShrinkPos()
	case inpututil.IsKeyJustPressed(ebiten.KeyO):
		g.jumpToOppositeEdge()
	case inpututil.IsKeyJustPressed(ebiten.KeyH):
		g.overlay.ShowHidden = !g.overlay.ShowHidden
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		g.overlay.ShowNames = !g.overlay.ShowNames
	}

	g.status = g.describe()
	return nil
}

func (g *game) toggleShrink() {
	if _, shrunk := g.set.ShrinkMargin(); shrunk {
		_, err := g.machine.Call("UnShrinkBoxes")
		g.report("unshrink", err)
		return
	}
	_, err := g.machine.Call("ShrinkBoxes", script.Number(g.cfg.ShrinkMargin))
	g.report("shrink", err)
}

func (g *game) glideToShrinkPos() {
	p := g.actor.pos
	res, err := g.machine.Call("GetShrinkPos",
		script.Number(p.X), script.Number(p.Y), script.Number(p.Z), script.Number(g.cfg.ShrinkMargin))
	if err != nil || len(res) != 3 {
		g.report("shrink pos", err)
		return
	}
	g.glide = walk.NewGlide(p, vectorOf(res), g.cfg.GlideDuration)
}

func (g *game) jumpToOppositeEdge() {
	cur, err := g.machine.Call("GetActorSector", script.ActorValue(g.actor))
	if err != nil || len(cur) == 0 {
		g.report("opposite edge", err)
		return
	}
	name, _ := cur[1].Str()
	res, err := g.machine.Call("GetSectorOppositeEdge", script.ActorValue(g.actor), script.String(name))
	if err != nil || len(res) != 3 {
		g.report("opposite edge", err)
		return
	}
	g.glide = walk.NewGlide(g.actor.pos, vectorOf(res), g.cfg.GlideDuration)
}

func (g *game) report(action string, err error) {
	if err != nil {
		slog.Warn("viewer action failed", "action", action, "err", err)
	}
}

func (g *game) describe() string {
	var b strings.Builder
	p := g.actor.pos
	fmt.Fprintf(&b, "%s  pos %.2f %.2f %.2f  heading %.0f\n", g.set.Name(), p.X, p.Y, p.Z,
		math.Atan2(g.actor.facing.Y, g.actor.facing.X)*180/math.Pi)

	res, err := g.machine.Call("GetActorSector", script.ActorValue(g.actor))
	if err == nil && len(res) > 0 {
		name, _ := res[1].Str()
		fmt.Fprintf(&b, "walk box %s\n", name)
	} else {
		b.WriteString("off the walk boxes\n")
	}
	if margin, ok := g.set.ShrinkMargin(); ok {
		fmt.Fprintf(&b, "shrunk by %.2f\n", margin)
	}
	return b.String()
}

func (g *game) Draw(screen *ebiten.Image) {
	g.overlay.Draw(screen, g.set, debugdraw.Marker{
		Pos:    g.actor.pos,
		Facing: g.actor.facing,
	})
	ebitenutil.DebugPrint(screen, g.status)
}

func (g *game) Layout(_, _ int) (int, int) {
	return g.overlay.View.Width, g.overlay.View.Height
}

func vectorOf(xyz []script.Value) geom.Vector {
	x, _ := xyz[0].Number()
	y, _ := xyz[1].Number()
	z, _ := xyz[2].Number()
	return geom.NewVector(x, y, z)
}
