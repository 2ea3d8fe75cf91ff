package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/harveysanders/picobreathe/pwm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, float32(500), cfg.FrequencyHz)
	assert.Equal(t, 2, cfg.Step)
	assert.Equal(t, 10*time.Millisecond, cfg.Delay)
	assert.Equal(t, PolarityConfig{InvertA: true, InvertB: true}, cfg.Polarity)
	assert.Equal(t, []ChannelConfig{
		{Name: "blue", GPIO: 20, InitialDuty: 100},
		{Name: "green", GPIO: 19, InitialDuty: 0},
		{Name: "red", GPIO: 18, InitialDuty: 0},
	}, cfg.Channels)
	assert.NoError(t, cfg.Validate())
}

func TestOutputs(t *testing.T) {
	outs := Default().Outputs()
	require.Len(t, outs, 3)

	assert.Equal(t, "blue", outs[0].Name)
	assert.Equal(t, uint8(2), outs[0].Slice)
	assert.Equal(t, pwm.ChannelA, outs[0].Channel)
	assert.Equal(t, 100, outs[0].DutyCycle)

	assert.Equal(t, "green", outs[1].Name)
	assert.Equal(t, uint8(1), outs[1].Slice)
	assert.Equal(t, pwm.ChannelB, outs[1].Channel)

	assert.Equal(t, "red", outs[2].Name)
	assert.Equal(t, uint8(1), outs[2].Slice)
	assert.Equal(t, pwm.ChannelA, outs[2].Channel)

	for _, o := range outs {
		assert.Equal(t, float32(500), o.Frequency)
	}
	assert.Equal(t, pwm.Polarity{InvertA: true, InvertB: true}, Default().PWMPolarity())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(c *Config)
		wantErr string
	}{
		{name: "zero step", modify: func(c *Config) { c.Step = 0 }, wantErr: "step must be within 1..100, got 0"},
		{name: "huge step", modify: func(c *Config) { c.Step = 101 }, wantErr: "step must be within 1..100, got 101"},
		{name: "negative delay", modify: func(c *Config) { c.Delay = -time.Millisecond }, wantErr: "delay must not be negative"},
		{name: "no channels", modify: func(c *Config) { c.Channels = nil }, wantErr: "no channels configured"},
		{name: "empty name", modify: func(c *Config) { c.Channels[1].Name = "" }, wantErr: "channel 1: empty name"},
		{name: "bad gpio", modify: func(c *Config) { c.Channels[2].GPIO = 30 }, wantErr: "channel red: gpio 30 out of range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			assert.EqualError(t, cfg.Validate(), tt.wantErr)
		})
	}
}

func TestLoad_FileNotExists(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_ValidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	yamlContent := `
frequency_hz: 1000
step: 5
delay: 20ms
polarity:
  invert_a: false
  invert_b: true
channels:
  - name: amber
    gpio: 2
    initial_duty: 50
  - name: white
    gpio: 3
`
	require.NoError(t, os.WriteFile(path, []byte(yamlContent), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, float32(1000), cfg.FrequencyHz)
	assert.Equal(t, 5, cfg.Step)
	assert.Equal(t, 20*time.Millisecond, cfg.Delay)
	assert.Equal(t, PolarityConfig{InvertA: false, InvertB: true}, cfg.Polarity)
	assert.Equal(t, []ChannelConfig{
		{Name: "amber", GPIO: 2, InitialDuty: 50},
		{Name: "white", GPIO: 3},
	}, cfg.Channels)
}

func TestLoad_PartialYAMLKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte("step: 10\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	def := Default()
	assert.Equal(t, 10, cfg.Step)
	assert.Equal(t, def.FrequencyHz, cfg.FrequencyHz)
	assert.Equal(t, def.Delay, cfg.Delay)
	assert.Equal(t, def.Polarity, cfg.Polarity)
	assert.Equal(t, def.Channels, cfg.Channels)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte("step: [1, 2\n"), 0644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "failed to parse config file")
}

func TestLoad_InvalidProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte("channels:\n  - name: x\n    gpio: 40\n"), 0644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "gpio 40 out of range")
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	cfg := Default()
	cfg.Step = 4
	cfg.Channels = cfg.Channels[:1]

	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
