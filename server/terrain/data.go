// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package terrain

import (
	"sync"
)

// Data describes an encoded HeightField snapshot.
// Heights are quantized to bytes over [Min, Max] and may be run length encoded.
type Data struct {
	Data      []byte  `json:"data"`      // Data is a possibly compressed quantized heightmap.
	Stride    int     `json:"stride"`    // Stride is width of the heightmap.
	Length    int     `json:"length"`    // Length is uncompressed length of Data for faster reading.
	Min       float32 `json:"min"`       // Min is the height of byte 0.
	Max       float32 `json:"max"`       // Max is the height of byte 255.
	Precision uint8   `json:"precision"` // Precision is the number of significant bits kept per sample.
}

var dataPool = sync.Pool{
	New: func() interface{} {
		return &Data{
			Data: make([]byte, 0, 2048),
		}
	},
}

func NewData() *Data {
	return dataPool.Get().(*Data)
}

func (data *Data) Pool() {
	*data = Data{
		Data: data.Data[:0],
	}
	dataPool.Put(data)
}

// Clone copies data into a pooled Data, so each receiver can Pool its own.
func (data *Data) Clone() *Data {
	clone := NewData()
	buf := append(clone.Data[:0], data.Data...)
	*clone = *data
	clone.Data = buf
	return clone
}
