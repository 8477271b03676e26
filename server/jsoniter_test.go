// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"github.com/SoftbearStudios/erosion/server/terrain"
	"github.com/SoftbearStudios/erosion/server/terrain/erosion"
	"reflect"
	"testing"
)

func TestJsonIter_Outbound(t *testing.T) {
	testUpdate := Message{Data: &TerrainUpdate{
		Terrain: &terrain.Data{Data: []byte{1, 2}, Stride: 2, Length: 4, Max: 1.5, Precision: 8},
		Clouds:  []erosion.Circle{{X: 0.5, Y: 0.25, Radius: 0.125}},
		Pass:    &PassStats{Drops: 10, Steps: 42, OffMap: 3, Exhausted: 7, Eroded: 0.25},
		Passes:  3,
		Seed:    56,
	}}

	const testUpdateString = `{"data":{"terrain":{"data":"AQI=","stride":2,"length":4,"min":0,"max":1.5,"precision":8},` +
		`"clouds":[{"x":0.5,"y":0.25,"radius":0.125}],` +
		`"pass":{"drops":10,"steps":42,"offMap":3,"evaporated":0,"exhausted":7,"eroded":0.25,"deposited":0},` +
		`"passes":3,"seed":56},"type":"terrainUpdate"}`

	buf, err := json.Marshal(testUpdate)
	if err != nil {
		t.Fatal("error marshaling:", err)
	}
	if string(buf) != testUpdateString {
		t.Errorf("different output:\nexpected: %s\ngot:      %s", testUpdateString, buf)
	}
}

func TestJsonIter_Inbound(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected interface{}
	}{
		{
			"type first",
			`{"type":"rain","data":{"drops":500}}`,
			Rain{Drops: 500},
		},
		{
			"type last",
			`{"data":{"clouds":[{"x":0.5,"y":0.25,"radius":0.1}]},"type":"setClouds"}`,
			SetClouds{Clouds: []erosion.Circle{{X: 0.5, Y: 0.25, Radius: 0.1}}},
		},
		{
			"regenerate",
			`{"type":"regenerate","data":{"seed":46,"offsetX":0,"offsetY":1,"octaves":4}}`,
			Regenerate{Seed: 46, OffsetY: 1, Octaves: 4},
		},
		{
			"no data",
			`{"type":"rain"}`,
			Rain{},
		},
		{
			"unknown type",
			`{"type":"invalidInbound","data":{}}`,
			InvalidInbound{messageType: "invalidInbound"},
		},
	}

	for _, test := range tests {
		var message Message
		if err := json.Unmarshal([]byte(test.input), &message); err != nil {
			t.Errorf("%s: error unmarshaling: %v", test.name, err)
			continue
		}
		if !reflect.DeepEqual(message.Data, test.expected) {
			t.Errorf("%s: expected %#v, got %#v", test.name, test.expected, message.Data)
		}
	}
}

func TestJsonIter_InboundErrors(t *testing.T) {
	for _, input := range []string{
		`{"data":{"drops":5}}`,
		`{"type":"rain","data":{"drops":"many"}}`,
		`[]`,
	} {
		var message Message
		if err := json.Unmarshal([]byte(input), &message); err == nil {
			t.Errorf("expected error unmarshaling %s, got %#v", input, message.Data)
		}
	}
}
