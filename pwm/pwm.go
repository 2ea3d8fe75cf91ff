// Package pwm computes and applies RP2040 PWM slice settings for a target
// frequency and duty cycle.
//
// The math mirrors what the Pico SDK examples do: pick a clock divider that
// gives roughly 4096 counter steps per period, derive the wrap (TOP) value from
// it and scale the compare level by the duty cycle percentage. Hardware access
// goes through the Peripheral and Slice interfaces so the same code runs on the
// board (see package rp2pwm) and on a host against a Recorder.
package pwm

import "github.com/chewxy/math32"

const (
	ClockHz    float32 = 125e6 // System clock feeding the PWM block.
	Resolution float32 = 4096  // Target counter steps per period.
	MinDivider float32 = 1
	MaxDivider float32 = 256    // 8.4 fixed point, INT=0 means 256.
	MaxWrap    uint32  = 0xffff // TOP is a 16-bit register.
)

// Channel selects one of the two outputs of a slice.
type Channel uint8

const (
	ChannelA Channel = 0
	ChannelB Channel = 1
)

func (c Channel) String() string {
	if c == ChannelB {
		return "B"
	}
	return "A"
}

// Slice is one hardware PWM slice: a counter with a clock divider shared by
// two compare channels.
type Slice interface {
	SetClockDivider(div float32)
	SetWrap(wrap uint16)
	SetChannelLevel(ch Channel, level uint16)
	SetOutputPolarity(invertA, invertB bool)
	SetEnabled(enabled bool)
}

// Peripheral is the PWM block plus the pin muxing needed to route a GPIO to it.
type Peripheral interface {
	// SetFunction routes gpio to its PWM slice output.
	SetFunction(gpio uint8)
	Slice(num uint8) Slice
}

// Registers holds the values written for one frequency/duty pair.
type Registers struct {
	Divider float32
	Wrap    uint32
	Level   uint16
}

// Compute returns the divider, wrap and level for freq (Hz) and duty (percent).
// ok is false when freq is not positive; no registers should be written then.
// duty is not validated. The level is kept within [0, Wrap] so the compare
// register always holds a defined value.
func Compute(freq float32, duty int) (regs Registers, ok bool) {
	if !(freq > 0) {
		return Registers{}, false
	}

	divider := ClockHz / (Resolution * freq)
	divider = math32.Max(MinDivider, math32.Min(divider, MaxDivider))

	var wrap uint32
	if ticks := (ClockHz / divider) / freq; ticks >= 1 {
		// Truncate before subtracting, the wrap counts from zero.
		// Capping ticks at MaxWrap+1 is the same as clamping wrap to MaxWrap.
		wrap = uint32(math32.Min(ticks, float32(MaxWrap)+1)) - 1
	}

	level := float32(wrap) * (float32(duty) / 100)
	level = math32.Max(0, math32.Min(level, float32(wrap)))

	return Registers{
		Divider: divider,
		Wrap:    wrap,
		Level:   uint16(level),
	}, true
}

// SetFreqDuty computes the registers for freq and duty and writes the clock
// divider, wrap and ch compare level of s. It returns the wrap value, or 0
// without touching s when freq is not positive.
//
// The divider is not re-derived after the wrap is clamped, so very low
// frequencies run slightly faster than requested.
func SetFreqDuty(s Slice, ch Channel, freq float32, duty int) uint32 {
	regs, ok := Compute(freq, duty)
	if !ok {
		return 0
	}
	s.SetClockDivider(regs.Divider)
	s.SetWrap(uint16(regs.Wrap))
	s.SetChannelLevel(ch, regs.Level)
	return regs.Wrap
}

// DividerBits encodes div into the 8.4 fixed point layout of the DIV register:
// integer part in bits 11:4 and sixteenths in bits 3:0. A divider of 256
// encodes as integer 0.
func DividerBits(div float32) uint32 {
	div = math32.Max(MinDivider, math32.Min(div, MaxDivider))
	whole := uint32(div)
	frac := uint32((div - float32(whole)) * 16)
	return (whole&0xff)<<4 | frac&0xf
}
