// Command breathesim runs the breathing light sequence on a host against an
// in-memory PWM peripheral, so profiles can be tried without a board.
//
//	go run ./breathesim -config profile.yaml -cycles 2 -v
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/harveysanders/picobreathe/breathe"
	"github.com/harveysanders/picobreathe/config"
	"github.com/harveysanders/picobreathe/pwm"
)

func main() {
	var (
		configFlag   = flag.String("config", "breathe.yaml", "Profile YAML path; defaults are used if missing")
		cyclesFlag   = flag.Int("cycles", 1, "Full colour cycles to run (0 = until interrupted)")
		realtimeFlag = flag.Bool("realtime", false, "Sleep for real between steps instead of simulating time")
		verboseFlag  = flag.Bool("v", false, "Log every step and register write")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verboseFlag {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := config.Load(*configFlag)
	if err != nil {
		logger.Error("config load failed", slog.Any("reason", err))
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var sleeper breathe.Sleeper = &breathe.VirtualClock{}
	if *realtimeFlag {
		sleeper = breathe.TimerSleeper{}
	}

	sim := newSimulation(cfg, sleeper, logger)
	err = sim.run(ctx, *cyclesFlag)
	sim.summary(os.Stdout)
	if err != nil && ctx.Err() == nil {
		logger.Error("simulation failed", slog.Any("reason", err))
		os.Exit(1)
	}
}

type simulation struct {
	cfg     *config.Config
	rec     *pwm.Recorder
	driver  *breathe.Driver
	clock   *breathe.VirtualClock // nil when running in real time
	started time.Time
	steps   map[string]int
	peaks   map[string]uint16
	cycles  int
}

func newSimulation(cfg *config.Config, sleeper breathe.Sleeper, logger *slog.Logger) *simulation {
	rec := pwm.NewRecorder(logger, false)
	outs := cfg.Outputs()
	pwm.Configure(rec, outs, cfg.PWMPolarity())

	s := &simulation{
		cfg:   cfg,
		rec:   rec,
		steps: make(map[string]int),
		peaks: make(map[string]uint16),
	}
	s.clock, _ = sleeper.(*breathe.VirtualClock)
	s.driver = &breathe.Driver{
		Peripheral: rec,
		Outputs:    outs,
		Step:       cfg.Step,
		Delay:      cfg.Delay,
		Sleeper:    sleeper,
		Logger:     logger,
		OnStep: func(out *pwm.Output, wrap uint32) {
			s.steps[out.Name]++
			level := rec.State(out.Slice).Level[out.Channel]
			if level > s.peaks[out.Name] {
				s.peaks[out.Name] = level
			}
			logger.Debug("breathe:step",
				slog.String("output", out.Name),
				slog.Int("duty", out.DutyCycle),
				slog.Uint64("wrap", uint64(wrap)),
				slog.Uint64("level", uint64(level)),
			)
		},
	}
	return s
}

// run breathes cycles full colour cycles, or forever when cycles is 0.
func (s *simulation) run(ctx context.Context, cycles int) error {
	s.started = time.Now()
	if cycles <= 0 {
		return s.driver.Run(ctx)
	}
	for ; s.cycles < cycles; s.cycles++ {
		if err := s.driver.Cycle(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (s *simulation) summary(w io.Writer) {
	elapsed := time.Since(s.started)
	if s.clock != nil {
		elapsed = s.clock.Elapsed()
	}
	fmt.Fprintf(w, "cycles: %d  elapsed: %s\n", s.cycles, elapsed)
	for _, ch := range s.cfg.Channels {
		slice := pwm.SliceNum(ch.GPIO)
		state := s.rec.State(slice)
		fmt.Fprintf(w, "%-8s gpio=%-2d slice=%d/%s steps=%-5d peak=%-5d div=%.4f wrap=%d enabled=%t\n",
			ch.Name, ch.GPIO, slice, pwm.ChannelNum(ch.GPIO),
			s.steps[ch.Name], s.peaks[ch.Name], state.Divider, state.Wrap, state.Enabled)
	}
}
