// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package erosion

import (
	"github.com/SoftbearStudios/erosion/server/terrain"
	"github.com/SoftbearStudios/erosion/server/world"
	"github.com/chewxy/math32"
)

// Drop is a simulated raindrop. It only interacts with the grid, never other drops.
type Drop struct {
	Position  world.Vec2f `json:"position"`
	Direction world.Vec2f `json:"direction"` // unit length or zero
	Velocity  float32     `json:"velocity"`
	Water     float32     `json:"water"`
	Sediment  float32     `json:"sediment"`
	Height    float32     `json:"height"` // last sampled height
	Cell      world.Vec2i `json:"cell"`   // grid point at or below Position
}

// Fate is how a drop's life ended.
type Fate uint8

const (
	Alive Fate = iota
	// OffMap drops left [0, Size-2] or could not pick a direction.
	OffMap
	// Evaporated drops ran out of water.
	Evaporated
	// Exhausted drops were still alive after MaxSteps.
	Exhausted
)

func (fate Fate) String() string {
	switch fate {
	case Alive:
		return "alive"
	case OffMap:
		return "offMap"
	case Evaporated:
		return "evaporated"
	case Exhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// stepper advances drops over one grid and accumulates what they did to it.
type stepper struct {
	cfg    Config
	kernel *Kernel
	grid   grid
	rng    Rand

	steps     int
	eroded    float64 // height actually removed
	deposited float64
	clipped   float64 // erosion owed by out-of-bounds or clamped cells
}

// limit is the largest coordinate with a full bilinear neighborhood.
func (s *stepper) limit() float32 {
	return float32(s.grid.Size() - 2)
}

// spawn creates a drop at a normalized [0, 1]^2 position.
func (s *stepper) spawn(x, y float64) Drop {
	limit := s.limit()
	pos := world.Vec2f{
		X: world.Clamp(float32(x), 0, 1) * limit,
		Y: world.Clamp(float32(y), 0, 1) * limit,
	}.Clamp(0, limit)

	return Drop{
		Position: pos,
		Velocity: s.cfg.InitialVelocity,
		Water:    s.cfg.InitialWater,
		Height:   terrain.Bilinear(s.grid, pos),
		Cell:     pos.Cell(),
	}
}

// run advances drop up to MaxSteps times, appending committed positions to path if non-nil.
func (s *stepper) run(drop *Drop, path *[]world.Vec2f) Fate {
	if path != nil {
		*path = append(*path, drop.Position)
	}
	for i := 0; i < s.cfg.MaxSteps; i++ {
		if fate := s.step(drop); fate != Alive {
			return fate
		}
		if path != nil {
			*path = append(*path, drop.Position)
		}
	}
	return Exhausted
}

// step does one iteration of one drop. The drop is only updated if it survives.
func (s *stepper) step(drop *Drop) Fate {
	s.steps++

	// 1. Gradient of the cell under the drop
	offset := drop.Position.Sub(drop.Cell.Vec2f())
	gradient := terrain.CornersOf(s.grid, drop.Cell).Gradient(offset)

	// 2. New direction
	dir := drop.Direction.Mul(s.cfg.Inertia).AddScaled(gradient, s.cfg.Inertia-1)
	if dir.IsZero() {
		dir = randomDirection(s.rng)
	}
	dir = dir.Norm()

	// 3. New position, stop if it flowed off the map, or if it is not moving
	pos := drop.Position.Add(dir)
	limit := s.limit()
	if dir.IsZero() || pos.X < 0 || pos.X > limit || pos.Y < 0 || pos.Y > limit {
		return OffMap
	}

	// 4. New height
	height := terrain.Bilinear(s.grid, pos)
	heightDiff := height - drop.Height

	// 5. Based on height difference, gain or deposit sediment
	carry := world.Max(-heightDiff, s.cfg.MinSlope) * drop.Velocity * drop.Water * s.cfg.Capacity
	if heightDiff >= 0 || drop.Sediment > carry {
		var amount float32
		if heightDiff >= 0 {
			// Fill the pit it climbed out of
			amount = world.Min(heightDiff, drop.Sediment)
		} else {
			amount = (drop.Sediment - carry) * s.cfg.Deposition
		}
		s.deposit(drop.Position, amount)
		drop.Sediment -= amount
	} else {
		amount := world.Min((carry-drop.Sediment)*s.cfg.Erosion, -heightDiff)
		s.erode(drop.Position, amount)
		drop.Sediment += amount
	}

	// 6. Adjust speed, a steep climb stops the drop instead of producing NaN
	velocity := math32.Sqrt(world.Max(0, drop.Velocity*drop.Velocity-heightDiff*s.cfg.Gravity))

	// 7. Evaporate water
	water := drop.Water * (1 - s.cfg.Evaporation)
	if water <= 0 {
		return Evaporated
	}

	// 8. Commit
	drop.Water = water
	drop.Velocity = velocity
	drop.Position = pos
	drop.Direction = dir
	drop.Height = height
	drop.Cell = pos.Cell()
	return Alive
}

// deposit spreads amount over the four corners of the cell containing pos.
func (s *stepper) deposit(pos world.Vec2f, amount float32) {
	if amount == 0 {
		return
	}

	cell := pos.Cell()
	weights := terrain.Weights(pos.Fract())
	corners := [4]world.Vec2i{
		cell,
		cell.Add(world.Vec2i{X: 1}),
		cell.Add(world.Vec2i{Y: 1}),
		cell.Add(world.Vec2i{X: 1, Y: 1}),
	}

	for i, c := range corners {
		delta := weights[i] * amount
		s.grid.Add(c.X, c.Y, delta)
		s.deposited += float64(delta)
	}
}

// erode removes amount spread by the kernel around the grid point nearest pos.
// No cell loses more height than it has. Cells outside the grid are skipped.
func (s *stepper) erode(pos world.Vec2f, amount float32) {
	if amount == 0 {
		return
	}

	size := s.grid.Size()
	center := pos.Nearest()
	r := s.kernel.Radius()

	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			w := s.kernel.Weight(dx, dy)
			if w == 0 {
				continue
			}
			weighted := w * amount

			x, y := center.X+dx, center.Y+dy
			if x < 0 || x >= size || y < 0 || y >= size {
				s.clipped += float64(weighted)
				continue
			}

			removed := world.Min(s.grid.At(x, y), weighted)
			s.grid.Add(x, y, -removed)
			s.eroded += float64(removed)
			s.clipped += float64(weighted - removed)
		}
	}
}
