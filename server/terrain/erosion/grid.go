// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package erosion

import (
	"github.com/SoftbearStudios/erosion/server/terrain"
)

// grid is what a drop reads and writes: a HeightField or an overlay over one.
type grid interface {
	terrain.Reader
	Add(x, y int, delta float32)
}

// overlay records one drop's height changes over a base field that is not written
// until the batch merges. Reads see the base plus the drop's own changes.
type overlay struct {
	base   *terrain.HeightField
	deltas map[int]float32
	order  []int // indices in the order they were first written
}

func newOverlay(base *terrain.HeightField) *overlay {
	return &overlay{
		base:   base,
		deltas: make(map[int]float32),
	}
}

func (o *overlay) Size() int {
	return o.base.Size()
}

func (o *overlay) At(x, y int) float32 {
	return o.base.At(x, y) + o.deltas[o.base.Index(x, y)]
}

func (o *overlay) Add(x, y int, delta float32) {
	i := o.base.Index(x, y)
	if _, ok := o.deltas[i]; !ok {
		o.order = append(o.order, i)
	}
	o.deltas[i] += delta
}

// merge applies the deltas to the base. A cell pushed below zero by overlapping
// erosion from several drops is clamped to zero; the clamped mass is returned.
func (o *overlay) merge() (clamped float64) {
	samples := o.base.Samples()
	for _, i := range o.order {
		d := o.deltas[i]
		h := samples[i] + d
		if h < 0 && d < 0 {
			clamped += float64(-h)
			h = 0
		}
		samples[i] = h
	}
	return
}
