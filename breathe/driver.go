package breathe

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/harveysanders/picobreathe/pwm"
)

// Driver runs the breathing sequence over a fixed list of outputs.
//
// Outputs must already be configured (see pwm.Configure). The Driver is the
// only writer of their registers while it runs.
type Driver struct {
	Peripheral pwm.Peripheral
	Outputs    []*pwm.Output // Breathed in this order.
	Step       int           // Duty increment in percent, read on the first breath.
	Delay      time.Duration // Hold time of every duty value.
	Sleeper    Sleeper       // Defaults to TimerSleeper.
	Logger     *slog.Logger

	// OnStep is called after the registers of out were written, with the
	// wrap value returned by pwm.SetFreqDuty.
	OnStep func(out *pwm.Output, wrap uint32)
	// OnBreath is called after out completed its up and down ramp.
	OnBreath func(out *pwm.Output)

	ramp []int
}

// Run breathes every output in turn, forever, until ctx is done. It always
// returns ctx.Err().
func (d *Driver) Run(ctx context.Context) error {
	d.logger().Info("breathe:start",
		slog.Int("outputs", len(d.Outputs)),
		slog.Int("step", d.Step),
		slog.Duration("delay", d.Delay),
	)
	if len(d.Outputs) == 0 {
		<-ctx.Done()
		return ctx.Err()
	}
	for {
		if err := d.Cycle(ctx); err != nil {
			return err
		}
	}
}

// Cycle breathes each output once, in order.
func (d *Driver) Cycle(ctx context.Context) error {
	for _, out := range d.Outputs {
		if err := d.Breathe(ctx, out); err != nil {
			return err
		}
	}
	return nil
}

// Breathe ramps out from 0 to 100 percent duty and back, holding each value
// for Delay.
func (d *Driver) Breathe(ctx context.Context, out *pwm.Output) error {
	if d.ramp == nil {
		d.ramp = Ramp(d.Step)
	}
	sleeper := d.Sleeper
	if sleeper == nil {
		sleeper = TimerSleeper{}
	}
	slice := d.Peripheral.Slice(out.Slice)

	for _, duty := range d.ramp {
		out.SetDuty(duty)
		wrap := pwm.SetFreqDuty(slice, out.Channel, out.Frequency, out.DutyCycle)
		if d.OnStep != nil {
			d.OnStep(out, wrap)
		}
		if err := sleeper.Sleep(ctx, d.Delay); err != nil {
			return err
		}
	}

	d.logger().Debug("breathe:done", slog.String("output", out.Name))
	if d.OnBreath != nil {
		d.OnBreath(out)
	}
	return nil
}

func (d *Driver) logger() *slog.Logger {
	if d.Logger == nil {
		d.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return d.Logger
}
