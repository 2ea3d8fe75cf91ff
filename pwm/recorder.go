package pwm

import (
	"context"
	"io"
	"log/slog"
	"sync"
)

// Op names a register write seen by a Recorder.
type Op uint8

const (
	OpFunction Op = iota
	OpDivider
	OpWrap
	OpLevel
	OpPolarity
	OpEnable
)

var opNames = [...]string{
	OpFunction: "function",
	OpDivider:  "divider",
	OpWrap:     "wrap",
	OpLevel:    "level",
	OpPolarity: "polarity",
	OpEnable:   "enable",
}

func (op Op) String() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	return "unknown"
}

// Write is one recorded register access. Only the fields relevant to Op are set.
type Write struct {
	Op      Op
	GPIO    uint8 // OpFunction
	Slice   uint8
	Channel Channel // OpLevel
	Divider float32 // OpDivider
	Value   uint16  // OpWrap, OpLevel
	InvertA bool    // OpPolarity
	InvertB bool    // OpPolarity
	Enabled bool    // OpEnable
}

// SliceState is the last value written to each register of a slice.
type SliceState struct {
	Divider float32
	Wrap    uint16
	Level   [2]uint16
	InvertA bool
	InvertB bool
	Enabled bool
}

// Recorder is an in-memory Peripheral. It keeps the current state of all
// eight slices plus a log of every write, for host simulation and tests.
// It is safe for concurrent use.
type Recorder struct {
	Logger *slog.Logger

	mu     sync.Mutex
	slices [8]SliceState
	pins   map[uint8]bool
	writes []Write
	keep   bool
}

// NewRecorder returns a Recorder. When keepWrites is false only the current
// slice state is tracked, which keeps long simulations from growing memory.
func NewRecorder(logger *slog.Logger, keepWrites bool) *Recorder {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Recorder{
		Logger: logger,
		pins:   make(map[uint8]bool),
		keep:   keepWrites,
	}
}

var _ Peripheral = (*Recorder)(nil)

func (r *Recorder) SetFunction(gpio uint8) {
	r.mu.Lock()
	r.pins[gpio] = true
	r.mu.Unlock()
	r.record(Write{Op: OpFunction, GPIO: gpio, Slice: SliceNum(gpio)})
}

func (r *Recorder) Slice(num uint8) Slice {
	return &recordedSlice{r: r, num: num & 0x7}
}

// PWMFunction reports whether gpio was routed to the PWM block.
func (r *Recorder) PWMFunction(gpio uint8) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pins[gpio]
}

// State returns the current register state of slice num.
func (r *Recorder) State(num uint8) SliceState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.slices[num&0x7]
}

// Writes returns a copy of the recorded writes.
func (r *Recorder) Writes() []Write {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Write(nil), r.writes...)
}

// Reset clears the write log, leaving slice state untouched.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.writes = r.writes[:0]
	r.mu.Unlock()
}

func (r *Recorder) record(w Write) {
	r.mu.Lock()
	s := &r.slices[w.Slice]
	switch w.Op {
	case OpDivider:
		s.Divider = w.Divider
	case OpWrap:
		s.Wrap = w.Value
	case OpLevel:
		s.Level[w.Channel&1] = w.Value
	case OpPolarity:
		s.InvertA, s.InvertB = w.InvertA, w.InvertB
	case OpEnable:
		s.Enabled = w.Enabled
	}
	if r.keep {
		r.writes = append(r.writes, w)
	}
	r.mu.Unlock()

	if r.Logger.Enabled(context.Background(), slog.LevelDebug) {
		r.Logger.Debug("pwm:write",
			slog.String("op", w.Op.String()),
			slog.Int("slice", int(w.Slice)),
			slog.Int("value", int(w.Value)),
		)
	}
}

type recordedSlice struct {
	r   *Recorder
	num uint8
}

func (s *recordedSlice) SetClockDivider(div float32) {
	s.r.record(Write{Op: OpDivider, Slice: s.num, Divider: div})
}

func (s *recordedSlice) SetWrap(wrap uint16) {
	s.r.record(Write{Op: OpWrap, Slice: s.num, Value: wrap})
}

func (s *recordedSlice) SetChannelLevel(ch Channel, level uint16) {
	s.r.record(Write{Op: OpLevel, Slice: s.num, Channel: ch, Value: level})
}

func (s *recordedSlice) SetOutputPolarity(invertA, invertB bool) {
	s.r.record(Write{Op: OpPolarity, Slice: s.num, InvertA: invertA, InvertB: invertB})
}

func (s *recordedSlice) SetEnabled(enabled bool) {
	s.r.record(Write{Op: OpEnable, Slice: s.num, Enabled: enabled})
}
