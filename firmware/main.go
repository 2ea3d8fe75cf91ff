//go:build rp2040

// Firmware for an RGB LED on GP18 (red), GP19 (green) and GP20 (blue) that
// breathes each colour in turn.
//
//	tinygo flash -target=pico ./firmware
//	tinygo flash -target=pico-w ./firmware
package main

import (
	"context"
	"log/slog"
	"machine"
	"time"

	"github.com/harveysanders/picobreathe/breathe"
	"github.com/harveysanders/picobreathe/config"
	"github.com/harveysanders/picobreathe/pwm"
	"github.com/harveysanders/picobreathe/rp2pwm"
	"github.com/harveysanders/picobreathe/status"
)

func main() {
	logger := slog.New(slog.NewTextHandler(machine.Serial, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		printErrForever(logger, "invalid profile", slog.String("reason", err.Error()))
	}

	var periph rp2pwm.Peripheral
	outs := cfg.Outputs()
	pwm.Configure(periph, outs, cfg.PWMPolarity())
	for _, o := range outs {
		logger.Info("pwm:configured",
			slog.String("output", o.Name),
			slog.Int("gpio", int(o.GPIO)),
			slog.Int("slice", int(o.Slice)),
			slog.String("channel", o.Channel.String()),
		)
	}

	driver := &breathe.Driver{
		Peripheral: periph,
		Outputs:    outs,
		Step:       cfg.Step,
		Delay:      cfg.Delay,
		Sleeper:    breathe.TimerSleeper{},
		Logger:     logger,
	}

	// The LCD is optional; without it the LEDs still breathe.
	lcd, err := configureLCD(machine.I2C0)
	if err != nil {
		logger.Error("status display disabled", slog.String("reason", err.Error()))
	} else {
		messages := make(chan status.Message, 4)
		go status.NewHandler(&lcd, messages, logger).Run()
		status.Send(messages, "picobreathe", "starting")
		driver.OnStep = status.NewReporter(messages).Step
	}

	beat := newHeartbeat(logger)
	driver.OnBreath = func(out *pwm.Output) {
		beat.toggle()
	}

	// Never cancelled: the board breathes until reset.
	driver.Run(context.Background())
}

// printErrForever logs msg @ 1hz. It blocks forever.
func printErrForever(logger *slog.Logger, msg string, args ...any) {
	for {
		logger.Error(msg, args...)
		time.Sleep(time.Second)
	}
}
