// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"github.com/SoftbearStudios/erosion/server/terrain/erosion"
	"github.com/SoftbearStudios/erosion/server/world"
	"io"
	"math/rand"
)

const (
	botMinRadius = 0.05
	botMaxRadius = 0.2
	// botSpeed is in normalized terrain units per bot tick.
	botSpeed = 0.005
	// botLife is how many bot ticks a cloud rains before it dissipates.
	botMinLife = 40
	botMaxLife = 400
)

// BotClient is a cloud that drifts over the terrain and makes it rain until it runs out of water.
type BotClient struct {
	ClientData
	velocity   world.Vec2f
	life       int
	destroying bool
}

func (bot *BotClient) Bot() bool {
	return true
}

func (bot *BotClient) Close() {}

func (bot *BotClient) Data() *ClientData {
	return &bot.ClientData
}

func (bot *BotClient) Destroy() {
	if bot.destroying {
		return // In case goroutine hasn't run yet
	}

	bot.destroying = true
	hub := bot.Hub

	// Needs to go through always.
	select {
	case hub.unregister <- bot:
	default:
		go func() {
			hub.unregister <- bot
		}()
	}
}

func (bot *BotClient) Init() {
	r := getRand()
	bot.spawn(r)
	poolRand(r)
}

// spawn places the cloud somewhere on the terrain with a random heading.
func (bot *BotClient) spawn(r *rand.Rand) {
	radius := botMinRadius + r.Float64()*(botMaxRadius-botMinRadius)
	bot.Clouds = append(bot.Clouds[:0], erosion.Circle{
		X:      r.Float64(),
		Y:      r.Float64(),
		Radius: radius,
	})
	bot.velocity = world.ToAngle(r.Float32()).Vec2f().Mul(botSpeed)
	bot.life = botMinLife + r.Intn(botMaxLife-botMinLife)
}

// Send is only used to check that outbounds marshal.
func (bot *BotClient) Send(out outbound) {
	if encodeBotMessages {
		// Discard output
		if err := json.NewEncoder(io.Discard).Encode(Message{Data: out}); err != nil {
			panic("bot test marshal: " + err.Error())
		}
	}
	out.Pool()
}

// drift moves the cloud, bouncing off the edges of the terrain. Returns false once
// the cloud has dissipated.
func (bot *BotClient) drift() bool {
	if bot.destroying || len(bot.Clouds) == 0 {
		return false
	}
	if bot.life--; bot.life <= 0 {
		return false
	}

	c := &bot.Clouds[0]
	c.X += float64(bot.velocity.X)
	c.Y += float64(bot.velocity.Y)

	if c.X < 0 || c.X > 1 {
		bot.velocity.X = -bot.velocity.X
		c.X = clamp01(c.X)
	}
	if c.Y < 0 || c.Y > 1 {
		bot.velocity.Y = -bot.velocity.Y
		c.Y = clamp01(c.Y)
	}
	return true
}

// Bots drifts the bot clouds and keeps at least minClouds of them.
func (h *Hub) Bots() {
	_, bots := h.clients.Count()

	for client := h.clients.First; client != nil; client = client.Data().Next {
		if bot, ok := client.(*BotClient); ok {
			if bot.drift() {
				h.cloudsChanged = true
			} else if !bot.destroying {
				bot.Destroy()
				bots--
			}
		}
	}

	// Add as many as fit in the channel but don't block because it would deadlock
	for i := bots + len(h.register); i < h.minClouds; i++ {
		select {
		case h.register <- &BotClient{}:
		default:
			return
		}
	}
}
