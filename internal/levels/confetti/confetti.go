// Package confetti implements the victory celebration: a fixed set of
// drifting, spinning squares that fall forever, recycled to the top
// whenever they leave the bottom of the surface.
package confetti

import (
	"math"

	"github.com/vovakirdan/tui-quest/internal/core"
)

// Simulation constants. Sizes and speeds are in surface pixels and
// pixels per frame.
const (
	Count    = 150
	RecycleY = -20.0

	minSize   = 4.0
	sizeRange = 8.0
	minSpeed  = 2.0
	speedSpan = 3.0
	driftSpan = 2.0  // drift in [-1, 1)
	spinSpan  = 10.0 // spin in [-5, 5) degrees per frame
)

// Palette is the fixed set of particle colors.
var Palette = [5]core.Color{
	core.ColorConfettiRed,
	core.ColorConfettiGreen,
	core.ColorConfettiBlue,
	core.ColorConfettiOrange,
	core.ColorConfettiWhite,
}

// Surface is the drawing context particles render to.
type Surface interface {
	Clear()
	Save()
	Restore()
	Translate(x, y float64)
	Rotate(rad float64)
	FillRect(x, y, w, h float64, c core.Color)
}

// Particle is one piece of confetti. Angle is in degrees and is never
// normalized.
type Particle struct {
	X, Y   float64
	Size   float64
	SpeedX float64
	SpeedY float64
	Angle  float64
	Spin   float64
	Color  core.Color
}

// Simulator owns the particle set.
type Simulator struct {
	rng       core.Rand
	particles []Particle
	width     float64
	height    float64
	running   bool
}

// New creates an idle simulator.
func New(rng core.Rand) *Simulator {
	return &Simulator{rng: rng}
}

// Start spawns the particles above a surface of the given size. It only
// has an effect the first time; it reports whether this call started it.
func (s *Simulator) Start(width, height float64) bool {
	if s.running {
		return false
	}
	s.width, s.height = width, height
	s.particles = make([]Particle, Count)
	for i := range s.particles {
		s.particles[i] = s.spawn()
	}
	s.running = true
	return true
}

// spawn draws random values in a fixed order: x, y, size, speedY,
// speedX, color, angle, spin.
func (s *Simulator) spawn() Particle {
	p := Particle{
		X:      s.rng.Float64() * s.width,
		Y:      s.rng.Float64()*s.height - s.height,
		Size:   s.rng.Float64()*sizeRange + minSize,
		SpeedY: s.rng.Float64()*speedSpan + minSpeed,
		SpeedX: s.rng.Float64()*driftSpan - driftSpan/2,
	}
	idx := int(s.rng.Float64() * float64(len(Palette)))
	p.Color = Palette[core.Clamp(idx, 0, len(Palette)-1)]
	p.Angle = s.rng.Float64() * 360
	p.Spin = s.rng.Float64()*spinSpan - spinSpan/2
	return p
}

// Running reports whether Start has been called.
func (s *Simulator) Running() bool {
	return s.running
}

// Resize changes the surface size used for recycling.
func (s *Simulator) Resize(width, height float64) {
	s.width, s.height = width, height
}

// Step advances every particle by one frame. Particles that fall past
// the bottom of the surface restart just above the top at a new random
// column; one recycle effect is emitted per recycled particle.
func (s *Simulator) Step() core.Effects {
	if !s.running {
		return nil
	}

	var fx core.Effects
	for i := range s.particles {
		p := &s.particles[i]
		p.Y += p.SpeedY
		p.X += math.Sin(p.Angle*math.Pi/180) + p.SpeedX
		p.Angle += p.Spin

		if p.Y > s.height {
			p.Y = RecycleY
			p.X = s.rng.Float64() * s.width
			fx = append(fx, core.Effect{Kind: core.EffectRecycle, At: core.Pt(p.X, p.Y)})
		}
	}
	return fx
}

// Draw clears dst and renders every particle as a square centered on its
// position and rotated by its angle.
func (s *Simulator) Draw(dst Surface) {
	dst.Clear()
	for _, p := range s.particles {
		dst.Save()
		dst.Translate(p.X, p.Y)
		dst.Rotate(p.Angle * math.Pi / 180)
		dst.FillRect(-p.Size/2, -p.Size/2, p.Size, p.Size, p.Color)
		dst.Restore()
	}
}

// Particles returns a copy of the particle set.
func (s *Simulator) Particles() []Particle {
	out := make([]Particle, len(s.particles))
	copy(out, s.particles)
	return out
}
