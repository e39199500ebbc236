package walk

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/udisondev/grimset/internal/geom"
)

// Glide eases an actor from one point to another, e.g. onto the position
// found by a shrink query, instead of teleporting it.
type Glide struct {
	x, y, z *gween.Tween
	to      geom.Vector
	done    bool
}

// NewGlide starts a glide from from to to that takes duration. A
// non-positive duration finishes on the first Update.
func NewGlide(from, to geom.Vector, duration time.Duration) *Glide {
	d := float32(duration.Seconds())
	if d <= 0 {
		return &Glide{to: to, done: true}
	}
	return &Glide{
		x:  gween.New(float32(from.X), float32(to.X), d, ease.OutQuad),
		y:  gween.New(float32(from.Y), float32(to.Y), d, ease.OutQuad),
		z:  gween.New(float32(from.Z), float32(to.Z), d, ease.OutQuad),
		to: to,
	}
}

// Update advances the glide by dt and returns the current position and
// whether the glide has finished. The final position is exactly the
// target.
func (g *Glide) Update(dt time.Duration) (geom.Vector, bool) {
	if g.done {
		return g.to, true
	}

	step := float32(dt.Seconds())
	x, doneX := g.x.Update(step)
	y, doneY := g.y.Update(step)
	z, doneZ := g.z.Update(step)
	if doneX && doneY && doneZ {
		g.done = true
		return g.to, true
	}
	return geom.NewVector(float64(x), float64(y), float64(z)), false
}

// Target returns the end point of the glide.
func (g *Glide) Target() geom.Vector { return g.to }
