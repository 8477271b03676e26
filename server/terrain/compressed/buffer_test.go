// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package compressed

import (
	"bytes"
	"errors"
	"github.com/SoftbearStudios/erosion/server/terrain"
	"github.com/SoftbearStudios/erosion/server/terrain/noise"
	"github.com/chewxy/math32"
	"math/rand"
	"testing"
)

func TestCompressedBuffer_Write(t *testing.T) {
	const n = 1024
	buffer := NewBuffer(8)

	_, _ = buffer.Write(make([]byte, n))

	if buf := buffer.Buffer(); len(buf) != 2*n/maxRun {
		t.Error("Buffer.Write(make([]byte, 1024) expected", 2*n/maxRun, "got", len(buf))
		t.Error(buf)
	}
}

func TestCompressedBuffer_Read(t *testing.T) {
	const n = 1024

	for _, precision := range []uint8{4, 8} {
		buffer := NewBuffer(precision)

		input := make([]byte, n)
		for i := range input {
			// Runs of random length
			if i > 0 && rand.Intn(3) > 0 {
				input[i] = input[i-1]
			} else {
				input[i] = buffer.round(byte(rand.Intn(256)))
			}
		}

		_, _ = buffer.Write(input)

		output := make([]byte, n*2)
		r, _ := buffer.Read(output)
		output = output[:r]

		if !bytes.Equal(input, output) {
			t.Error("Buffer.Read expected", len(input), "got", len(output), "\ninput:", input, "\noutput:", output)
		}
	}
}

func TestEncode(t *testing.T) {
	cfg := noise.DefaultConfig()
	cfg.Size = 64
	cfg.Octaves = 3
	field, err := noise.Generate(cfg)
	if err != nil {
		t.Fatal(err)
	}

	for _, precision := range []uint8{3, 8} {
		data := Encode(field, precision)
		if data.Stride != 64 || data.Length != 64*64 {
			t.Fatal("unexpected stride/length", data.Stride, data.Length)
		}

		decoded, err := Decode(data)
		if err != nil {
			t.Fatal(err)
		}

		maxErr := MaxError(data.Min, data.Max, precision)
		for i, h := range field.Samples() {
			if d := math32.Abs(decoded.Samples()[i] - h); d > maxErr {
				t.Fatalf("precision %d: sample %d off by %v (max %v)", precision, i, d, maxErr)
			}
		}
		data.Pool()
	}
}

func TestEncode_Flat(t *testing.T) {
	field, _ := terrain.Flat(32, 4)
	data := Encode(field, 8)

	// 1024 equal bytes fit in 4 tuples.
	if len(data.Data) != 8 {
		t.Error("expected 8 bytes for a flat field, got", len(data.Data))
	}

	decoded, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	if !decoded.Equal(field) {
		t.Error("expected flat field to round trip exactly")
	}
}

func TestDecode_Corrupt(t *testing.T) {
	field, _ := terrain.Flat(8, 1)
	data := Encode(field, 8)
	data.Length = 100
	if _, err := Decode(data); !errors.Is(err, ErrCorrupt) {
		t.Error("expected ErrCorrupt for bad length, got", err)
	}

	data = Encode(field, 8)
	data.Data = data.Data[:1]
	if _, err := Decode(data); !errors.Is(err, ErrCorrupt) {
		t.Error("expected ErrCorrupt for truncated data, got", err)
	}
}
