// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"github.com/SoftbearStudios/erosion/server/terrain/compressed"
	"github.com/SoftbearStudios/erosion/server/terrain/erosion"
	"math"
	"strings"
	"testing"
	"time"
)

// testClient records what it is sent.
type testClient struct {
	ClientData
	sent      []*TerrainUpdate
	destroyed bool
}

func (client *testClient) Init()  {}
func (client *testClient) Close() {}

func (client *testClient) Send(out outbound) {
	client.sent = append(client.sent, out.(*TerrainUpdate))
}

func (client *testClient) Destroy() {
	client.destroyed = true
}

func (client *testClient) Bot() bool {
	return false
}

func (client *testClient) Data() *ClientData {
	return &client.ClientData
}

// recordingCloud is an Offline cloud that reports recorded passes.
type recordingCloud struct {
	Offline
	passes chan erosion.Result
}

func (cloud recordingCloud) RecordPass(seed int64, size int, result erosion.Result) error {
	cloud.passes <- result
	return nil
}

func testHubOptions() HubOptions {
	options := DefaultHubOptions()
	options.Noise.Size = 32
	options.Noise.Octaves = 3
	options.Noise.Amplitude = 4
	options.Erosion.Radius = 2
	options.Erosion.NumRaindrops = 200
	options.MaxRain = 500
	return options
}

func newTestHub(t *testing.T, options HubOptions) *Hub {
	h, err := NewHub(options)
	if err != nil {
		t.Fatal(err)
	}
	return h
}

func TestNewHub_Invalid(t *testing.T) {
	options := testHubOptions()
	options.Erosion.Inertia = 2
	if _, err := NewHub(options); err == nil {
		t.Error("expected error for invalid erosion config")
	}

	options = testHubOptions()
	options.Noise.Octaves = 0
	if _, err := NewHub(options); err == nil {
		t.Error("expected error for invalid noise config")
	}

	options = testHubOptions()
	options.ErodePeriod = 0
	if _, err := NewHub(options); err == nil {
		t.Error("expected error for zero erode period")
	}
}

func TestHub_Erode(t *testing.T) {
	h := newTestHub(t, testHubOptions())
	before := h.Field().Clone()

	result, err := h.Erode(200)
	if err != nil {
		t.Fatal(err)
	}
	if result.Drops != 200 || h.passes != 1 || h.total.Drops != 200 {
		t.Error("unexpected pass", result, h.passes, h.total)
	}
	if h.Field().Equal(before) {
		t.Error("expected the terrain to change")
	}

	// No drops is not a pass
	if _, err := h.Erode(0); err != nil {
		t.Fatal(err)
	}
	if h.passes != 1 {
		t.Error("expected empty pass not to count, passes", h.passes)
	}
}

func TestHub_Deterministic(t *testing.T) {
	a := newTestHub(t, testHubOptions())
	b := newTestHub(t, testHubOptions())

	for i := 0; i < 3; i++ {
		if _, err := a.Erode(100); err != nil {
			t.Fatal(err)
		}
		if _, err := b.Erode(100); err != nil {
			t.Fatal(err)
		}
	}

	if !a.Field().Equal(b.Field()) {
		t.Error("expected hubs with the same options to erode identically")
	}
}

func TestHub_AddSendsTerrain(t *testing.T) {
	h := newTestHub(t, testHubOptions())
	client := &testClient{}
	h.add(client)

	if len(client.sent) != 1 {
		t.Fatal("expected 1 update on register, got", len(client.sent))
	}
	update := client.sent[0]
	if update.Pass != nil || update.Passes != 0 || update.Seed != h.noise.Seed {
		t.Error("unexpected update", update)
	}

	decoded, err := compressed.Decode(update.Terrain)
	if err != nil {
		t.Fatal(err)
	}
	lo, hi := h.Field().Range()
	maxError := compressed.MaxError(lo, hi, h.precision)
	for i, expected := range h.Field().Samples() {
		if d := math.Abs(float64(decoded.Samples()[i] - expected)); d > float64(maxError) {
			t.Fatalf("sample %d: decoded %v, expected %v", i, decoded.Samples()[i], expected)
		}
	}
}

func TestHub_Update(t *testing.T) {
	h := newTestHub(t, testHubOptions())
	client := &testClient{}
	bot := &BotClient{}
	h.add(client)
	h.add(bot)
	client.sent = nil

	h.Update()
	if len(client.sent) != 0 {
		t.Error("expected no update without changes")
	}

	if _, err := h.Erode(50); err != nil {
		t.Fatal(err)
	}
	h.Update()
	if len(client.sent) != 1 {
		t.Fatal("expected 1 update after erosion, got", len(client.sent))
	}
	if update := client.sent[0]; update.Passes != 1 || update.Pass == nil || update.Pass.Drops != 50 {
		t.Error("unexpected update", update)
	}

	h.Update()
	if len(client.sent) != 1 {
		t.Error("expected no update without further changes")
	}
}

func TestHub_SetClouds(t *testing.T) {
	h := newTestHub(t, testHubOptions())
	client := &testClient{}
	h.add(client)

	cloud := erosion.Circle{X: 0.25, Y: 0.75, Radius: 0.1}
	SetClouds{Clouds: []erosion.Circle{cloud}}.Inbound(h, client)
	if !h.cloudsChanged {
		t.Fatal("expected clouds to change")
	}

	h.rebuildSpawn()
	if len(h.circles) != 1 || h.circles[0] != cloud {
		t.Fatal("expected the client's cloud, got", h.circles)
	}
	for i := 0; i < 100; i++ {
		x, y := h.spawn.Sample()
		if math.Hypot(x-cloud.X, y-cloud.Y) > cloud.Radius+1e-9 {
			t.Fatalf("sample (%v, %v) is outside the cloud", x, y)
		}
	}

	// Invalid clouds are ignored
	for _, invalid := range []erosion.Circle{
		{X: 0.5, Y: 0.5, Radius: 0},
		{X: 1.5, Y: 0.5, Radius: 0.1},
		{X: math.NaN(), Y: 0.5, Radius: 0.1},
	} {
		SetClouds{Clouds: []erosion.Circle{invalid}}.Inbound(h, client)
		if h.cloudsChanged {
			t.Error("expected invalid cloud to be ignored", invalid)
		}
	}

	// Removing the client stops its rain
	h.remove(client)
	h.rebuildSpawn()
	if len(h.circles) != 0 {
		t.Error("expected no clouds after remove, got", h.circles)
	}
	if _, ok := h.spawn.(erosion.UniformSpawn); !ok {
		t.Errorf("expected uniform spawn without clouds, got %T", h.spawn)
	}
}

func TestHub_Rain(t *testing.T) {
	h := newTestHub(t, testHubOptions())
	client := &testClient{}
	h.add(client)

	Rain{Drops: 1000000}.Inbound(h, client)
	if h.lastPass.Drops != h.maxRain {
		t.Error("expected rain to be limited to", h.maxRain, "got", h.lastPass.Drops)
	}

	Rain{Drops: -5}.Inbound(h, client)
	if h.passes != 1 {
		t.Error("expected negative rain to be ignored")
	}
}

func TestHub_Regenerate(t *testing.T) {
	h := newTestHub(t, testHubOptions())
	client := &testClient{}
	h.add(client)
	before := h.Field().Clone()

	Regenerate{Octaves: maxOctaves + 1}.Inbound(h, client)
	if !h.Field().Equal(before) {
		t.Error("expected too many octaves to be ignored")
	}

	Regenerate{Seed: 46, OffsetY: 1}.Inbound(h, client)
	if h.Field().Equal(before) {
		t.Error("expected regenerated terrain to differ")
	}
	if h.Field().Size() != before.Size() || h.noise.Seed != 46 || h.noise.Octaves != 3 {
		t.Error("unexpected noise config", h.noise)
	}
	if !h.terrainChanged {
		t.Error("expected terrain to be sent")
	}
}

func TestHub_Cloud(t *testing.T) {
	options := testHubOptions()
	cloud := recordingCloud{passes: make(chan erosion.Result, 1)}
	options.Cloud = cloud
	h := newTestHub(t, options)

	for i := 0; i < 2; i++ {
		if _, err := h.Erode(100); err != nil {
			t.Fatal(err)
		}
	}
	h.Cloud()

	select {
	case result := <-cloud.passes:
		if result.Drops != 200 {
			t.Error("expected both passes in one record, got", result.Drops)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("pass was not recorded")
	}

	status, _ := h.statusJSON.Load().([]byte)
	if !strings.Contains(string(status), `"passes":2`) || !strings.Contains(string(status), `"drops":200`) {
		t.Error("unexpected status", string(status))
	}

	// Nothing new to record
	h.Cloud()
	select {
	case result := <-cloud.passes:
		t.Error("unexpected record", result)
	case <-time.After(10 * time.Millisecond):
	}
}

func TestHub_Bots(t *testing.T) {
	options := testHubOptions()
	options.MinClouds = 3
	h := newTestHub(t, options)

	h.Bots()
	if len(h.register) != 3 {
		t.Fatal("expected 3 bots to register, got", len(h.register))
	}
	for len(h.register) > 0 {
		h.add(<-h.register)
	}
	if _, bots := h.clients.Count(); bots != 3 {
		t.Fatal("expected 3 bots, got", bots)
	}

	h.Bots()
	if len(h.register) != 0 {
		t.Error("expected no more bots")
	}
	if !h.cloudsChanged {
		t.Error("expected bot clouds to drift")
	}

	h.rebuildSpawn()
	if len(h.circles) != 3 {
		t.Error("expected a cloud per bot, got", h.circles)
	}
	for _, c := range h.circles {
		if !validCloud(c) {
			t.Error("invalid bot cloud", c)
		}
	}
}

func TestBotClient_Drift(t *testing.T) {
	bot := &BotClient{life: 1000}
	bot.Clouds = []erosion.Circle{{X: 0.999, Y: 0.5, Radius: 0.1}}
	bot.velocity.X = botSpeed

	if !bot.drift() {
		t.Fatal("expected bot to keep drifting")
	}
	if c := bot.Clouds[0]; c.X != 1 || bot.velocity.X >= 0 {
		t.Error("expected bot to bounce off the edge, got", c, bot.velocity)
	}

	bot.life = 1
	if bot.drift() {
		t.Error("expected bot to dissipate")
	}
}
