// Package config holds the breathing light profile: which pins to drive, at
// what frequency, and how fast to ramp. The firmware uses the compiled-in
// Default; the host simulator can load a YAML profile instead.
package config

import (
	"errors"
	"strconv"
	"time"

	"github.com/harveysanders/picobreathe/pwm"
)

// MaxGPIO is the highest user GPIO on the RP2040.
const MaxGPIO = 29

// Config is a breathing light profile.
type Config struct {
	FrequencyHz float32         `yaml:"frequency_hz"`
	Step        int             `yaml:"step"`  // Duty increment in percent.
	Delay       time.Duration   `yaml:"delay"` // Hold time per duty value.
	Polarity    PolarityConfig  `yaml:"polarity"`
	Channels    []ChannelConfig `yaml:"channels"` // Breathed in this order.
}

// PolarityConfig selects inverted outputs per slice channel.
type PolarityConfig struct {
	InvertA bool `yaml:"invert_a"`
	InvertB bool `yaml:"invert_b"`
}

// ChannelConfig is one LED channel.
type ChannelConfig struct {
	Name        string `yaml:"name"`
	GPIO        uint8  `yaml:"gpio"`
	InitialDuty int    `yaml:"initial_duty"` // Percent, clamped to [0,100].
}

// Default returns the RGB LED profile: blue on GP20, green on GP19 and red
// on GP18, all at 500 Hz, stepping 2% every 10 ms.
func Default() *Config {
	return &Config{
		FrequencyHz: 500,
		Step:        2,
		Delay:       10 * time.Millisecond,
		Polarity: PolarityConfig{
			InvertA: true,
			InvertB: true,
		},
		Channels: []ChannelConfig{
			{Name: "blue", GPIO: 20, InitialDuty: 100},
			{Name: "green", GPIO: 19, InitialDuty: 0},
			{Name: "red", GPIO: 18, InitialDuty: 0},
		},
	}
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	if c.Step < 1 || c.Step > 100 {
		return errors.New("step must be within 1..100, got " + strconv.Itoa(c.Step))
	}
	if c.Delay < 0 {
		return errors.New("delay must not be negative")
	}
	if len(c.Channels) == 0 {
		return errors.New("no channels configured")
	}
	for i, ch := range c.Channels {
		if ch.Name == "" {
			return errors.New("channel " + strconv.Itoa(i) + ": empty name")
		}
		if ch.GPIO > MaxGPIO {
			return errors.New("channel " + ch.Name + ": gpio " + strconv.Itoa(int(ch.GPIO)) + " out of range")
		}
	}
	return nil
}

// Outputs builds the PWM outputs for the configured channels, in order.
func (c *Config) Outputs() []*pwm.Output {
	outs := make([]*pwm.Output, 0, len(c.Channels))
	for _, ch := range c.Channels {
		outs = append(outs, pwm.NewOutput(ch.Name, ch.GPIO, c.FrequencyHz, ch.InitialDuty))
	}
	return outs
}

// PWMPolarity converts the polarity settings for pwm.Configure.
func (c *Config) PWMPolarity() pwm.Polarity {
	return pwm.Polarity{InvertA: c.Polarity.InvertA, InvertB: c.Polarity.InvertB}
}

// ensureDefaults fills zero-valued fields from Default.
func (c *Config) ensureDefaults() {
	def := Default()

	if c.FrequencyHz == 0 {
		c.FrequencyHz = def.FrequencyHz
	}
	if c.Step == 0 {
		c.Step = def.Step
	}
	if c.Delay == 0 {
		c.Delay = def.Delay
	}
	if len(c.Channels) == 0 {
		c.Channels = def.Channels
	}
}
