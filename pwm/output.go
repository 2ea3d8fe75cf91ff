package pwm

// RP2040 GPIO N drives slice (N>>1)&7, channel A for even pins and B for odd.
func SliceNum(gpio uint8) uint8 { return (gpio >> 1) & 0x7 }

func ChannelNum(gpio uint8) Channel { return Channel(gpio & 1) }

// Output is the per-pin configuration of one LED channel.
type Output struct {
	Name      string
	GPIO      uint8
	Slice     uint8
	Channel   Channel
	Frequency float32 // Hz
	DutyCycle int     // Percent, always within [0,100].
}

// NewOutput resolves the slice and channel for gpio.
func NewOutput(name string, gpio uint8, freq float32, duty int) *Output {
	out := &Output{
		Name:      name,
		GPIO:      gpio,
		Slice:     SliceNum(gpio),
		Channel:   ChannelNum(gpio),
		Frequency: freq,
	}
	out.SetDuty(duty)
	return out
}

// SetDuty stores duty clamped to [0,100].
func (o *Output) SetDuty(duty int) {
	o.DutyCycle = min(max(duty, 0), 100)
}

// Apply writes the output's frequency and current duty to its slice and
// returns the wrap value.
func (o *Output) Apply(p Peripheral) uint32 {
	return SetFreqDuty(p.Slice(o.Slice), o.Channel, o.Frequency, o.DutyCycle)
}

// Polarity selects which channel outputs of a slice are inverted.
type Polarity struct {
	InvertA bool
	InvertB bool
}

// Configure routes every output's pin to PWM, applies its initial frequency
// and duty, sets polarity and enables its slice. Each stage runs over all
// outputs before the next one starts. Slices shared by two outputs are
// configured once per output, which writes the same values again.
func Configure(p Peripheral, outs []*Output, pol Polarity) {
	for _, o := range outs {
		p.SetFunction(o.GPIO)
	}
	for _, o := range outs {
		o.Apply(p)
	}
	for _, o := range outs {
		p.Slice(o.Slice).SetOutputPolarity(pol.InvertA, pol.InvertB)
	}
	for _, o := range outs {
		p.Slice(o.Slice).SetEnabled(true)
	}
}
