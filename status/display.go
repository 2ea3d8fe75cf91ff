// Package status shows the breathing state on a 16x2 character LCD.
//
// The display is owned by a Handler goroutine fed through a channel, so the
// drive loop never waits on the I2C bus:
//
//	messages := make(chan status.Message, 4)
//	handler := status.NewHandler(&lcd, messages, logger)
//	go handler.Run()
//
//	reporter := status.NewReporter(messages)
//	driver.OnStep = reporter.Step
package status

import (
	"io"
	"log/slog"
	"strconv"

	"github.com/harveysanders/picobreathe/pwm"
)

// Device is the subset of an HD44780 driver the handler needs.
// *hd44780i2c.Device satisfies it.
type Device interface {
	ClearDisplay()
	SetCursor(col, row uint8)
	Print(data []byte)
}

// Message represents a two-line LCD message.
type Message struct {
	Line1 []byte
	Line2 []byte
}

// Handler processes LCD messages from a channel.
type Handler struct {
	device   Device
	messages <-chan Message
	logger   *slog.Logger
	rows     int
	columns  int
}

// NewHandler creates a new 16x2 LCD message handler.
func NewHandler(device Device, messages <-chan Message, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Handler{
		device:   device,
		messages: messages,
		logger:   logger,
		rows:     2,
		columns:  16,
	}
}

// Run processes messages until the channel is closed.
// Run should be called in a separate goroutine.
func (h *Handler) Run() {
	for msg := range h.messages {
		h.display(msg)
	}
	h.logger.Debug("status:handler-stopped")
}

// display prints msg to the LCD.
func (h *Handler) display(msg Message) {
	h.device.ClearDisplay()
	h.device.SetCursor(0, 0)
	h.device.Print(truncate(msg.Line1, h.columns))
	h.device.SetCursor(0, 1)
	h.device.Print(truncate(msg.Line2, h.columns))
}

// Truncate in-place, no allocation
func truncate(line []byte, columns int) []byte {
	if len(line) > columns {
		return line[:columns]
	}
	return line
}

// Send queues a message without blocking. It reports false when the
// channel is full and the message was dropped.
func Send(messages chan<- Message, line1, line2 string) bool {
	select {
	case messages <- Message{Line1: []byte(line1), Line2: []byte(line2)}:
		return true
	default:
		return false
	}
}

// Reporter turns drive loop steps into status messages.
type Reporter struct {
	// Every limits updates to duty values that are a multiple of it.
	Every    int
	messages chan<- Message
	dropped  int
}

// NewReporter returns a Reporter that updates every 10% of duty.
func NewReporter(messages chan<- Message) *Reporter {
	return &Reporter{Every: 10, messages: messages}
}

// Step matches breathe.Driver.OnStep.
func (r *Reporter) Step(out *pwm.Output, wrap uint32) {
	if r.Every > 1 && out.DutyCycle%r.Every != 0 {
		return
	}
	msg := Message{
		Line1: []byte(out.Name),
		Line2: FormatStep(make([]byte, 0, 16), out.DutyCycle, wrap),
	}
	select {
	case r.messages <- msg:
	default:
		r.dropped++
	}
}

// Dropped is the number of messages discarded because the handler was busy.
func (r *Reporter) Dropped() int { return r.dropped }

// FormatStep appends "duty NNN% wNNNNN" to buf.
func FormatStep(buf []byte, duty int, wrap uint32) []byte {
	buf = append(buf, "duty "...)
	if duty < 100 {
		buf = append(buf, ' ')
	}
	if duty < 10 {
		buf = append(buf, ' ')
	}
	buf = strconv.AppendInt(buf, int64(duty), 10)
	buf = append(buf, "% w"...)
	buf = strconv.AppendUint(buf, uint64(wrap), 10)
	return buf
}
