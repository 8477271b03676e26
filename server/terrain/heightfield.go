// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package terrain

import (
	"errors"
	"fmt"
	"github.com/SoftbearStudios/erosion/server/world"
)

// MinSize is the smallest grid that still has a full bilinear neighborhood.
const MinSize = 2

var ErrSize = errors.New("terrain: size must be at least 2")

// Reader is read access to a square grid of heights.
type Reader interface {
	Size() int
	At(x, y int) float32
}

// HeightField is a square grid of height samples stored row-major.
// It is never resized after creation. A HeightField has exactly one writer at a time;
// it must not be read by other goroutines while an erosion pass is mutating it.
type HeightField struct {
	size    int
	samples []float32
}

// New creates a flat HeightField of size*size zero samples.
func New(size int) (*HeightField, error) {
	if size < MinSize {
		return nil, fmt.Errorf("%w, got %d", ErrSize, size)
	}
	return &HeightField{
		size:    size,
		samples: make([]float32, size*size),
	}, nil
}

// FromSamples wraps samples (not copied), which must hold size*size heights.
func FromSamples(size int, samples []float32) (*HeightField, error) {
	if size < MinSize {
		return nil, fmt.Errorf("%w, got %d", ErrSize, size)
	}
	if len(samples) != size*size {
		return nil, fmt.Errorf("terrain: expected %d samples, got %d", size*size, len(samples))
	}
	return &HeightField{size: size, samples: samples}, nil
}

// Flat creates a HeightField with every sample set to height.
func Flat(size int, height float32) (*HeightField, error) {
	field, err := New(size)
	if err != nil {
		return nil, err
	}
	for i := range field.samples {
		field.samples[i] = height
	}
	return field, nil
}

func (field *HeightField) Size() int {
	return field.size
}

// Samples returns the backing row-major samples, e.g. for per-vertex elevation lookup.
func (field *HeightField) Samples() []float32 {
	return field.samples
}

func (field *HeightField) Index(x, y int) int {
	return y*field.size + x
}

func (field *HeightField) InBounds(x, y int) bool {
	return x >= 0 && x < field.size && y >= 0 && y < field.size
}

func (field *HeightField) At(x, y int) float32 {
	return field.samples[field.Index(x, y)]
}

func (field *HeightField) Set(x, y int, height float32) {
	field.samples[field.Index(x, y)] = height
}

func (field *HeightField) Add(x, y int, delta float32) {
	field.samples[field.Index(x, y)] += delta
}

// Sample returns the bilinear height at a continuous position.
// pos must lie within [0, Size-2] on both axes.
func (field *HeightField) Sample(pos world.Vec2f) float32 {
	return Bilinear(field, pos)
}

func (field *HeightField) Clone() *HeightField {
	samples := make([]float32, len(field.samples))
	copy(samples, field.samples)
	return &HeightField{size: field.size, samples: samples}
}

// CopyFrom overwrites field with other, which must have the same size.
func (field *HeightField) CopyFrom(other *HeightField) {
	if other.size != field.size {
		panic("terrain: CopyFrom size mismatch")
	}
	copy(field.samples, other.samples)
}

func (field *HeightField) Equal(other *HeightField) bool {
	if field.size != other.size {
		return false
	}
	for i, h := range field.samples {
		if other.samples[i] != h {
			return false
		}
	}
	return true
}

// Sum is accumulated in float64 so it can be compared across passes.
func (field *HeightField) Sum() float64 {
	var sum float64
	for _, h := range field.samples {
		sum += float64(h)
	}
	return sum
}

// Range returns the lowest and highest samples.
func (field *HeightField) Range() (lo, hi float32) {
	lo, hi = field.samples[0], field.samples[0]
	for _, h := range field.samples[1:] {
		lo = world.Min(lo, h)
		hi = world.Max(hi, h)
	}
	return
}

// Normalized returns a copy with heights rescaled to [0, 1] for display.
// A flat field normalizes to all zeros.
func (field *HeightField) Normalized() *HeightField {
	lo, hi := field.Range()
	norm := field.Clone()
	if hi == lo {
		for i := range norm.samples {
			norm.samples[i] = 0
		}
		return norm
	}
	scale := 1 / (hi - lo)
	for i, h := range norm.samples {
		norm.samples[i] = (h - lo) * scale
	}
	return norm
}
