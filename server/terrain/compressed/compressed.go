// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package compressed encodes HeightField snapshots for clients and storage.
package compressed

import (
	"errors"
	"fmt"
	"github.com/SoftbearStudios/erosion/server/terrain"
	"io"
)

// DefaultPrecision keeps every bit of the quantized height.
const DefaultPrecision = 8

var ErrCorrupt = errors.New("compressed: corrupt terrain data")

// Encode quantizes field over its own range and run length encodes it.
// Lower precision produces longer runs on smooth terrain.
func Encode(field *terrain.HeightField, precision uint8) *terrain.Data {
	lo, hi := field.Range()
	size := field.Size()

	data := terrain.NewData()
	var buffer Buffer
	buffer.Reset(data.Data, precision)
	buffer.Grow(size * size / 4)

	for _, h := range field.Samples() {
		buffer.writeByte(terrain.Quantize(h, lo, hi))
	}

	data.Data = buffer.Buffer()
	data.Stride = size
	data.Length = size * size
	data.Min = lo
	data.Max = hi
	data.Precision = uint8(buffer.precision)

	return data
}

// Decode restores an approximate HeightField from data.
func Decode(data *terrain.Data) (*terrain.HeightField, error) {
	if data.Stride < terrain.MinSize || data.Length != data.Stride*data.Stride {
		return nil, fmt.Errorf("%w: stride %d length %d", ErrCorrupt, data.Stride, data.Length)
	}
	if len(data.Data)%2 != 0 {
		return nil, fmt.Errorf("%w: odd tuple bytes", ErrCorrupt)
	}

	raw := make([]byte, data.Length)
	var buffer Buffer
	buffer.Reset(data.Data, data.Precision)

	n, err := io.ReadFull(&buffer, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: read %d of %d samples", ErrCorrupt, n, data.Length)
	}
	if len(buffer.Buffer()) != 0 {
		return nil, fmt.Errorf("%w: trailing samples", ErrCorrupt)
	}

	samples := make([]float32, data.Length)
	for i, b := range raw {
		samples[i] = terrain.Dequantize(b, data.Min, data.Max)
	}

	return terrain.FromSamples(data.Stride, samples)
}

// MaxError is the largest height difference Decode(Encode(field, precision)) can introduce.
func MaxError(lo, hi float32, precision uint8) float32 {
	dropped := 8 - uint(clampPrecision(precision))
	step := float32(int(1)<<dropped) * (hi - lo) / 255
	return step
}
