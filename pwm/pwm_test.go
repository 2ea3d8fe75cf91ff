package pwm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute_500Hz(t *testing.T) {
	regs, ok := Compute(500, 50)
	require.True(t, ok)

	assert.InDelta(t, 61.035, regs.Divider, 0.001)
	assert.Equal(t, uint32(4095), regs.Wrap)
	assert.Equal(t, uint16(2047), regs.Level)
}

func TestCompute_DutyEndpoints(t *testing.T) {
	tests := []struct {
		name      string
		duty      int
		wantLevel uint16
	}{
		{name: "off", duty: 0, wantLevel: 0},
		{name: "two percent", duty: 2, wantLevel: 81},
		{name: "half", duty: 50, wantLevel: 2047},
		{name: "full", duty: 100, wantLevel: 4095},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			regs, ok := Compute(500, tt.duty)
			require.True(t, ok)
			assert.Equal(t, tt.wantLevel, regs.Level)
		})
	}
}

func TestCompute_NonPositiveFrequency(t *testing.T) {
	for _, f := range []float32{0, -1, -500} {
		regs, ok := Compute(f, 50)
		assert.False(t, ok, "freq %v", f)
		assert.Equal(t, Registers{}, regs)
	}
}

func TestCompute_Ranges(t *testing.T) {
	freqs := []float32{0.5, 1, 7, 100, 500, 1000, 30517.578, 1e5, 1e6, 1e8, 2e8}

	for _, f := range freqs {
		prev := uint16(0)
		for d := 0; d <= 100; d++ {
			regs, ok := Compute(f, d)
			require.True(t, ok)

			assert.GreaterOrEqual(t, regs.Divider, MinDivider, "f=%v d=%d", f, d)
			assert.LessOrEqual(t, regs.Divider, MaxDivider, "f=%v d=%d", f, d)
			assert.LessOrEqual(t, regs.Wrap, MaxWrap, "f=%v d=%d", f, d)
			assert.LessOrEqual(t, uint32(regs.Level), regs.Wrap, "f=%v d=%d", f, d)
			assert.GreaterOrEqual(t, regs.Level, prev, "level must not decrease, f=%v d=%d", f, d)
			prev = regs.Level

			switch d {
			case 0:
				assert.Zero(t, regs.Level)
			case 100:
				assert.Equal(t, regs.Wrap, uint32(regs.Level))
			}
		}
	}
}

func TestCompute_Clamping(t *testing.T) {
	// 1 Hz wants a divider of ~30517 and a wrap far beyond 16 bits.
	regs, _ := Compute(1, 100)
	assert.Equal(t, MaxDivider, regs.Divider)
	assert.Equal(t, MaxWrap, regs.Wrap)

	// 200 MHz wants a divider below 1 and less than one tick per period.
	regs, _ = Compute(2e8, 100)
	assert.Equal(t, MinDivider, regs.Divider)
	assert.Zero(t, regs.Wrap)
	assert.Zero(t, regs.Level)

	// 1 MHz runs the undivided clock: 125 ticks per period.
	regs, _ = Compute(1e6, 100)
	assert.Equal(t, MinDivider, regs.Divider)
	assert.Equal(t, uint32(124), regs.Wrap)
}

func TestCompute_OutOfRangeDuty(t *testing.T) {
	regs, _ := Compute(500, -20)
	assert.Zero(t, regs.Level)

	regs, _ = Compute(500, 150)
	assert.Equal(t, uint16(4095), regs.Level)
}

func TestSetFreqDuty(t *testing.T) {
	rec := NewRecorder(nil, true)

	wrap := SetFreqDuty(rec.Slice(2), ChannelA, 500, 50)
	assert.Equal(t, uint32(4095), wrap)

	writes := rec.Writes()
	require.Len(t, writes, 3)
	assert.Equal(t, OpDivider, writes[0].Op)
	assert.InDelta(t, 61.035, writes[0].Divider, 0.001)
	assert.Equal(t, Write{Op: OpWrap, Slice: 2, Value: 4095}, writes[1])
	assert.Equal(t, Write{Op: OpLevel, Slice: 2, Channel: ChannelA, Value: 2047}, writes[2])

	state := rec.State(2)
	assert.Equal(t, uint16(4095), state.Wrap)
	assert.Equal(t, [2]uint16{2047, 0}, state.Level)
}

func TestSetFreqDuty_ZeroFrequencyWritesNothing(t *testing.T) {
	rec := NewRecorder(nil, true)

	wrap := SetFreqDuty(rec.Slice(1), ChannelB, 0, 100)

	assert.Zero(t, wrap)
	assert.Empty(t, rec.Writes())
	assert.Equal(t, SliceState{}, rec.State(1))
}

func TestDividerBits(t *testing.T) {
	tests := []struct {
		div  float32
		want uint32
	}{
		{div: 1, want: 1 << 4},
		{div: 1.5, want: 1<<4 | 8},
		{div: 61.03515625, want: 61 << 4},
		{div: 255.9375, want: 255<<4 | 15},
		{div: 256, want: 0},
		{div: 0.25, want: 1 << 4},
		{div: 1000, want: 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DividerBits(tt.div), "div=%v", tt.div)
	}
}
