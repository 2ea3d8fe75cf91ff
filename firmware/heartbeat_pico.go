//go:build rp2040 && !pico_w

package main

import (
	"log/slog"
	"machine"
)

// heartbeat blinks the onboard LED (GP25 on the Pico) once per breath.
type heartbeat struct {
	led machine.Pin
	on  bool
}

func newHeartbeat(logger *slog.Logger) *heartbeat {
	led := machine.LED
	led.Configure(machine.PinConfig{Mode: machine.PinOutput})
	logger.Info("heartbeat:onboard-led", slog.Int("gpio", int(led)))
	return &heartbeat{led: led}
}

func (h *heartbeat) toggle() {
	h.on = !h.on
	h.led.Set(h.on)
}
