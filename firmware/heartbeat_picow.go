//go:build rp2040 && pico_w

package main

import (
	"log/slog"
	"time"

	"github.com/soypat/cyw43439"
)

// heartbeat blinks the Pico W onboard LED once per breath. The LED hangs off
// GPIO 0 of the CYW43439 wireless chip rather than the RP2040.
type heartbeat struct {
	dev    *cyw43439.Device
	logger *slog.Logger
	on     bool
}

// newHeartbeat initializes the CYW43439. If that fails the heartbeat is a
// no-op; breathing does not depend on it.
func newHeartbeat(logger *slog.Logger) *heartbeat {
	start := time.Now()
	dev := cyw43439.NewPicoWDevice()
	dev.SetLogger(logger)

	logger.Info("initializing pico W device...")
	err := dev.Init(cyw43439.DefaultWifiConfig())
	if err != nil {
		logger.Error("heartbeat disabled", slog.String("reason", "cyw43439 init: "+err.Error()))
		return &heartbeat{logger: logger}
	}
	logger.Info("cyw43439:Init", slog.Duration("duration", time.Since(start)))
	return &heartbeat{dev: dev, logger: logger}
}

func (h *heartbeat) toggle() {
	if h.dev == nil {
		return
	}
	h.on = !h.on
	if err := h.dev.GPIOSet(0, h.on); err != nil {
		h.logger.Error("heartbeat:gpio-set", slog.String("err", err.Error()))
	}
}
